package draw

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/smartview/pkg/errors"
)

func TestPrimitiveJSON(t *testing.T) {
	tests := []struct {
		p    Primitive
		want string
	}{
		{Line{0, 12, 1.5, 12}, `["l",0,12,1.5,12]`},
		{Rectangle{1, 2, 3, 4}, `["r",1,2,3,4]`},
		{Text{KindName, 3, 5.5, 0, 4, "a"}, `["tn",3,5.5,0,4,"a"]`},
		{Text{KindTooltip, 0, 4, 2, 4, "a\nb: c"}, `["tt",0,4,2,4,"a\nb: c"]`},
		{Aligned{Text{KindName, 5, 8, 0, 4, "a"}}, `["a","tn",5,8,0,4,"a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			data, err := json.Marshal(tt.p)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}

			back, err := ParsePrimitive(data)
			if err != nil {
				t.Fatalf("ParsePrimitive: %v", err)
			}
			if !reflect.DeepEqual(back, tt.p) {
				t.Errorf("ParsePrimitive = %#v, want %#v", back, tt.p)
			}
		})
	}
}

func TestParsePrimitiveErrors(t *testing.T) {
	for _, data := range []string{
		`{}`,
		`[]`,
		`[1,2]`,
		`["x",1,2,3,4]`,
		`["l",1,2,3]`,
		`["r",1,2,3,"4"]`,
		`["tn",1,2,3,4]`,
		`["tl",1,2,3,4,5]`,
		`["a"]`,
		`["a","a","l",1,2,3,4]`,
	} {
		t.Run(data, func(t *testing.T) {
			if _, err := ParsePrimitive([]byte(data)); !errors.Is(err, errors.ErrCodeUnrecognizedPrimitive) {
				t.Errorf("ParsePrimitive(%s) error = %v, want UNRECOGNIZED_PRIMITIVE", data, err)
			}
		})
	}
}

func TestParsePrimitives(t *testing.T) {
	ps, err := ParsePrimitives([]byte(`[["l",0,1,2,3],["r",0,0,1,1]]`))
	if err != nil {
		t.Fatalf("ParsePrimitives: %v", err)
	}
	want := []Primitive{Line{0, 1, 2, 3}, Rectangle{0, 0, 1, 1}}
	if !reflect.DeepEqual(ps, want) {
		t.Errorf("got %#v, want %#v", ps, want)
	}

	if _, err := ParsePrimitives([]byte(`[["l",0,1,2,3],["q"]]`)); !errors.Is(err, errors.ErrCodeUnrecognizedPrimitive) {
		t.Errorf("error = %v, want UNRECOGNIZED_PRIMITIVE", err)
	}
}

func TestRectOf(t *testing.T) {
	tests := []struct {
		p    Primitive
		want Rect
	}{
		{Rectangle{1, 2, 3, 4}, Rect{1, 2, 3, 4}},
		{Line{3, 4, 1, 1}, Rect{1, 1, 2, 3}},
		{Text{KindLabel, 0, 4, 2, 4, "x"}, Rect{0, 0, 2, 4}},
	}
	for _, tt := range tests {
		got, err := RectOf(tt.p)
		if err != nil || got != tt.want {
			t.Errorf("RectOf(%#v) = %v, %v; want %v", tt.p, got, err, tt.want)
		}
	}

	if _, err := RectOf(Aligned{Text{KindName, 0, 0, 0, 4, "a"}}); !errors.Is(err, errors.ErrCodeUnrecognizedPrimitive) {
		t.Errorf("RectOf(Aligned) error = %v, want UNRECOGNIZED_PRIMITIVE", err)
	}
}
