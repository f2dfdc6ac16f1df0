package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/smartview/pkg/tree"
)

type node struct {
	Name       string     `json:"name,omitempty"`
	Length     *float64   `json:"length,omitempty"`
	Properties []property `json:"properties,omitempty"`
	Children   []node     `json:"children,omitempty"`
}

type property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func fromTree(n *tree.Node) node {
	out := node{Name: n.Name}
	if length, ok := n.BranchLength(); ok {
		out.Length = &length
	}
	for _, p := range n.Properties {
		out.Properties = append(out.Properties, property{Key: p.Key, Value: p.Value})
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, fromTree(c))
	}
	return out
}

// WriteJSON encodes the tree rooted at root as indented JSON.
func WriteJSON(root *tree.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromTree(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree to a JSON file at path.
func ExportJSON(root *tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(root, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
