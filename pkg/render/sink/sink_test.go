package sink

import (
	"encoding/xml"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/newick"
)

func drawing(t *testing.T, text string, d draw.Drawer) []draw.Primitive {
	t.Helper()
	root, err := newick.Read(text)
	if err != nil {
		t.Fatal(err)
	}
	return slices.Collect(draw.Draw(root, draw.StoreSizes(root), d, draw.Options{}))
}

func TestRenderJSON(t *testing.T) {
	prims := drawing(t, "(a:1,b:2)r;", draw.Simple)
	data, n, err := RenderJSON(slices.Values(prims))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if n != len(prims) {
		t.Errorf("n = %d, want %d", n, len(prims))
	}

	want := "[\n" +
		`["l",0,8,1,8],` + "\n" +
		`["l",1,8,1,4],` + "\n" +
		`["l",1,4,2,4],` + "\n" +
		`["l",1,8,1,12],` + "\n" +
		`["l",1,12,3,12]` + "\n" +
		"]\n"
	if string(data) != want {
		t.Errorf("RenderJSON =\n%s\nwant\n%s", data, want)
	}

	back, err := draw.ParsePrimitives(data)
	if err != nil {
		t.Fatalf("ParsePrimitives: %v", err)
	}
	if !slices.Equal(back, prims) {
		t.Errorf("decoded %v, want %v", back, prims)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, n, err := RenderJSON(slices.Values([]draw.Primitive(nil)))
	if err != nil || n != 0 {
		t.Fatalf("RenderJSON = %d, %v", n, err)
	}
	if strings.TrimSpace(string(data)) != "[\n]" {
		t.Errorf("RenderJSON = %q", data)
	}
}

func TestRenderSVG(t *testing.T) {
	prims := drawing(t, "((a:1,b:2)c:1[&&NHX:support=0.9],d:3)r;", draw.Align)
	prims = append(prims, draw.Rectangle{X: 0, Y: 0, W: 1, H: 1})

	svg, n, err := RenderSVG(slices.Values(prims), WithTitle("a < b"), WithZoom(draw.Zoom{X: 2, Y: 2}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if n != len(prims) {
		t.Errorf("n = %d, want %d", n, len(prims))
	}

	var doc struct {
		XMLName xml.Name `xml:"svg"`
		Lines   []struct{} `xml:"line"`
		Rects   []struct {
			Class string `xml:"class,attr"`
		} `xml:"rect"`
		Texts []struct {
			Class string `xml:"class,attr"`
			Value string `xml:",chardata"`
		} `xml:"text"`
		Title string `xml:"title"`
	}
	if err := xml.Unmarshal(svg, &doc); err != nil {
		t.Fatalf("invalid SVG: %v\n%s", err, svg)
	}
	if doc.Title != "a < b" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Lines) == 0 {
		t.Error("no lines")
	}
	if len(doc.Rects) != 1 || doc.Rects[0].Class != "outline" {
		t.Errorf("rects = %+v", doc.Rects)
	}

	var aligned []string
	for _, text := range doc.Texts {
		if text.Class == "aligned" {
			aligned = append(aligned, text.Value)
		}
	}
	if !slices.Equal(aligned, []string{"a", "b", "d"}) {
		t.Errorf("aligned names = %v", aligned)
	}
}

func TestRenderSVGTooltips(t *testing.T) {
	prims := drawing(t, "(a:1[&&NHX:support=0.9],b:2)r;", draw.Tooltips)
	svg, _, err := RenderSVG(slices.Values(prims))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `support: 0.9</title></rect>`) {
		t.Errorf("missing tooltip:\n%s", svg)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		12:       "12",
		0.5:      "0.5",
		1.0 / 3:  "0.333",
		-2.25:    "-2.25",
		123456.7: "123456.7",
	}
	for v, want := range tests {
		if got := num(v); got != want {
			t.Errorf("num(%g) = %q, want %q", v, got, want)
		}
	}
}
