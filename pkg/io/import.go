package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/tree"
)

func (n node) toTree() *tree.Node {
	out := &tree.Node{Name: n.Name}
	if n.Length != nil {
		out.Length, out.HasLength = *n.Length, true
	}
	for _, p := range n.Properties {
		out.Properties.Set(p.Key, p.Value)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.toTree())
	}
	return out
}

// ReadJSON decodes a tree from r. Malformed input yields an INVALID_FORMAT
// error. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	var root node
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return root.toTree(), nil
}

// ImportJSON reads the tree stored as JSON in the file at path.
func ImportJSON(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
