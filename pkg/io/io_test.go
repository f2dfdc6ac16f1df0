package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/newick"
)

func TestRoundTrip(t *testing.T) {
	const text = "((B:2,(C:2.5,D:0)E:3.5[&&NHX:support=0.9:color=red])A:1)F;"
	root, err := newick.Read(text)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "tree.json")
	if err := ExportJSON(root, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got := newick.Write(back); got != text {
		t.Errorf("round trip = %s, want %s", got, text)
	}
}

func TestWriteJSONLengths(t *testing.T) {
	root, _ := newick.Read("(a:0,b)r;")
	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"length": 0`) {
		t.Errorf("zero length was dropped:\n%s", out)
	}
	if strings.Count(out, `"length"`) != 1 {
		t.Errorf("missing length was written:\n%s", out)
	}
}

func TestReadJSONErrors(t *testing.T) {
	for _, input := range []string{
		`not json`,
		`{"name": 1}`,
		`{"name": "a", "colour": "red"}`,
		`{"children": {"name": "a"}}`,
	} {
		if _, err := ReadJSON(strings.NewReader(input)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ReadJSON(%s) error = %v, want INVALID_FORMAT", input, err)
		}
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error")
	}
}
