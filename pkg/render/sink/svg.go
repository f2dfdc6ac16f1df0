package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"iter"
	"math"
	"strconv"

	"github.com/matzehuels/smartview/pkg/draw"
)

const svgStyle = `
    line { stroke: #333; stroke-width: 1; vector-effect: non-scaling-stroke; }
    rect.outline { fill: #ddd; stroke: #999; stroke-width: 0.5; vector-effect: non-scaling-stroke; }
    rect.tooltip { fill: transparent; }
    text { font-family: sans-serif; fill: #111; }
    text.label { fill: #555; }
    text.aligned { fill: #0b4f8a; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	zoom   draw.Zoom
	margin float64
	gap    float64
	title  string
}

// WithZoom sets the size of the document to the drawing's size scaled by z.
func WithZoom(z draw.Zoom) SVGOption { return func(r *svgRenderer) { r.zoom = z } }

// WithMargin sets the blank space around the drawing, in tree units.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithAlignGap sets the space between the tree and the aligned column.
func WithAlignGap(g float64) SVGOption { return func(r *svgRenderer) { r.gap = g } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws the primitives of seq as an SVG document and returns it
// with the number of primitives drawn.
func RenderSVG(seq iter.Seq[draw.Primitive], opts ...SVGOption) ([]byte, int, error) {
	r := svgRenderer{zoom: draw.Zoom{X: 1, Y: 1}, margin: 4, gap: 10}
	for _, opt := range opts {
		opt(&r)
	}

	var tree, aligned []draw.Primitive
	for p := range seq {
		if a, ok := p.(draw.Aligned); ok {
			aligned = append(aligned, a.Inner)
			continue
		}
		tree = append(tree, p)
	}

	b := newBounds()
	for _, p := range tree {
		if err := b.add(p); err != nil {
			return nil, 0, err
		}
	}
	if b.empty() {
		b.addRect(draw.Rect{})
	}
	alignX := b.maxX + r.gap
	for _, p := range aligned {
		rect, err := draw.RectOf(p)
		if err != nil {
			return nil, 0, err
		}
		b.addRect(draw.Rect{X: alignX, Y: rect.Y, W: textWidth(p), H: rect.H})
	}

	minX, minY := b.minX-r.margin, b.minY-r.margin
	w, h := b.maxX-b.minX+2*r.margin, b.maxY-b.minY+2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f" preserveAspectRatio="none">`+"\n",
		num(minX), num(minY), num(w), num(h), w*r.zoom.X, h*r.zoom.Y)
	if r.title != "" {
		buf.WriteString("  <title>")
		xml.EscapeText(&buf, []byte(r.title))
		buf.WriteString("</title>\n")
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)

	for _, p := range tree {
		writePrimitive(&buf, p)
	}
	for _, p := range aligned {
		if t, ok := p.(draw.Text); ok {
			t.X = alignX
			writeText(&buf, t, "aligned")
			continue
		}
		writePrimitive(&buf, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), len(tree) + len(aligned), nil
}

func writePrimitive(buf *bytes.Buffer, p draw.Primitive) {
	switch p := p.(type) {
	case draw.Line:
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
			num(p.X1), num(p.Y1), num(p.X2), num(p.Y2))
	case draw.Rectangle:
		fmt.Fprintf(buf, `  <rect class="outline" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			num(p.X), num(p.Y), num(p.W), num(p.H))
	case draw.Text:
		class := "name"
		if p.Kind == draw.KindLabel {
			class = "label"
		}
		writeText(buf, p, class)
	}
}

func writeText(buf *bytes.Buffer, t draw.Text, class string) {
	if t.Kind == draw.KindTooltip {
		fmt.Fprintf(buf, `  <rect class="tooltip" x="%s" y="%s" width="%s" height="%s"><title>`,
			num(t.X), num(t.Y-t.H), num(t.W), num(t.H))
		xml.EscapeText(buf, []byte(t.Text))
		buf.WriteString("</title></rect>\n")
		return
	}

	fmt.Fprintf(buf, `  <text class="%s" x="%s" y="%s" font-size="%s"`, class, num(t.X), num(t.Y), num(t.H))
	if t.W > 0 {
		fmt.Fprintf(buf, ` textLength="%s" lengthAdjust="spacingAndGlyphs"`, num(math.Min(t.W, textWidth(t))))
	}
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(t.Text))
	buf.WriteString("</text>\n")
}

// textWidth estimates the rendered width of a text with an average glyph
// width of 0.6 em.
func textWidth(p draw.Primitive) float64 {
	t, ok := p.(draw.Text)
	if !ok {
		return 0
	}
	return 0.6 * t.H * float64(len([]rune(t.Text)))
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func newBounds() *bounds {
	return &bounds{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
}

func (b *bounds) empty() bool { return math.IsInf(b.minX, 1) }

func (b *bounds) add(p draw.Primitive) error {
	r, err := draw.RectOf(p)
	if err != nil {
		return err
	}
	if t, ok := p.(draw.Text); ok && t.W == 0 {
		r.W = textWidth(t)
	}
	b.addRect(r)
	return nil
}

func (b *bounds) addRect(r draw.Rect) {
	b.minX = math.Min(b.minX, r.X)
	b.minY = math.Min(b.minY, r.Y)
	b.maxX = math.Max(b.maxX, r.X+r.W)
	b.maxY = math.Max(b.maxY, r.Y+r.H)
}

// num formats coordinates with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
