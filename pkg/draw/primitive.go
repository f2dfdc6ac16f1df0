package draw

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/smartview/pkg/errors"
)

// Primitive is a single drawing instruction. Every primitive encodes to
// JSON as a tagged array, for example ["l", x1, y1, x2, y2].
type Primitive interface {
	json.Marshaler

	// Tag is the leading element of the primitive's encoding.
	Tag() string
}

// Line is a segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Rectangle is an outline box standing for collapsed content.
type Rectangle struct {
	X, Y, W, H float64
}

// TextKind is the role of a text label.
type TextKind string

const (
	KindName    TextKind = "n"
	KindLabel   TextKind = "l"
	KindTooltip TextKind = "t"
)

// Text is a label with its baseline at (X, Y) that must fit in a box of
// size W x H. A zero W means the text may extend freely to the right.
type Text struct {
	Kind       TextKind
	X, Y, W, H float64
	Text       string
}

// Aligned wraps a primitive that belongs to the aligned panel instead of
// the tree panel.
type Aligned struct {
	Inner Primitive
}

func (Line) Tag() string      { return "l" }
func (Rectangle) Tag() string { return "r" }
func (t Text) Tag() string    { return "t" + string(t.Kind) }
func (Aligned) Tag() string   { return "a" }

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Tag(), l.X1, l.Y1, l.X2, l.Y2})
}

func (r Rectangle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Tag(), r.X, r.Y, r.W, r.H})
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Tag(), t.X, t.Y, t.W, t.H, t.Text})
}

// MarshalJSON flattens the inner primitive: ["a", "tn", x, y, w, h, text].
func (a Aligned) MarshalJSON() ([]byte, error) {
	if a.Inner == nil {
		return nil, errors.New(errors.ErrCodeUnrecognizedPrimitive, "aligned primitive without content")
	}
	inner, err := a.Inner.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(inner, &elems); err != nil {
		return nil, err
	}
	return json.Marshal(append([]json.RawMessage{json.RawMessage(`"a"`)}, elems...))
}

// Bounds returns the rectangle as a [Rect].
func (r Rectangle) Bounds() Rect { return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// RectOf returns the area covered by a primitive. A text's box sits above
// its baseline. Aligned primitives and primitives of unknown types have no
// place in the tree panel and yield an UNRECOGNIZED_PRIMITIVE error.
func RectOf(p Primitive) (Rect, error) {
	switch p := p.(type) {
	case Rectangle:
		return p.Bounds(), nil
	case Line:
		return Rect{
			X: math.Min(p.X1, p.X2),
			Y: math.Min(p.Y1, p.Y2),
			W: math.Abs(p.X2 - p.X1),
			H: math.Abs(p.Y2 - p.Y1),
		}, nil
	case Text:
		return Rect{X: p.X, Y: p.Y - p.H, W: p.W, H: p.H}, nil
	default:
		return Rect{}, errors.New(errors.ErrCodeUnrecognizedPrimitive, "cannot compute the area of primitive %s", describe(p))
	}
}

func describe(p Primitive) string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q", p.Tag())
}

// ParsePrimitive decodes a primitive from its tagged-array encoding.
func ParsePrimitive(data []byte) (Primitive, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnrecognizedPrimitive, err, "primitive is not a JSON array")
	}
	return parseElems(elems)
}

// ParsePrimitives decodes a JSON array of encoded primitives.
func ParsePrimitives(data []byte) ([]Primitive, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnrecognizedPrimitive, err, "primitives are not a JSON array")
	}
	ps := make([]Primitive, 0, len(raw))
	for i, r := range raw {
		p, err := ParsePrimitive(r)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func parseElems(elems []json.RawMessage) (Primitive, error) {
	if len(elems) == 0 {
		return nil, errors.New(errors.ErrCodeUnrecognizedPrimitive, "empty primitive")
	}
	var tag string
	if err := json.Unmarshal(elems[0], &tag); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnrecognizedPrimitive, err, "primitive tag is not a string")
	}
	args := elems[1:]

	switch tag {
	case "l":
		v, err := floats(tag, args, 4)
		if err != nil {
			return nil, err
		}
		return Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
	case "r":
		v, err := floats(tag, args, 4)
		if err != nil {
			return nil, err
		}
		return Rectangle{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
	case "tn", "tl", "tt":
		if len(args) != 5 {
			return nil, arity(tag, 5, len(args))
		}
		v, err := floats(tag, args[:4], 4)
		if err != nil {
			return nil, err
		}
		var text string
		if err := json.Unmarshal(args[4], &text); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnrecognizedPrimitive, err, "text of %q is not a string", tag)
		}
		return Text{Kind: TextKind(tag[1:]), X: v[0], Y: v[1], W: v[2], H: v[3], Text: text}, nil
	case "a":
		inner, err := parseElems(args)
		if err != nil {
			return nil, err
		}
		if _, nested := inner.(Aligned); nested {
			return nil, errors.New(errors.ErrCodeUnrecognizedPrimitive, "nested aligned primitive")
		}
		return Aligned{Inner: inner}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnrecognizedPrimitive, "unrecognized primitive tag %q", tag)
	}
}

func floats(tag string, args []json.RawMessage, n int) ([]float64, error) {
	if len(args) != n {
		return nil, arity(tag, n, len(args))
	}
	v := make([]float64, n)
	for i, a := range args {
		if err := json.Unmarshal(a, &v[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnrecognizedPrimitive, err, "argument %d of %q is not a number", i, tag)
		}
	}
	return v, nil
}

func arity(tag string, want, got int) error {
	return errors.New(errors.ErrCodeUnrecognizedPrimitive, "primitive %q takes %d arguments, got %d", tag, want, got)
}
