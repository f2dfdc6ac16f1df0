package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/smartview/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes node properties in the labels.
	Detailed bool

	// Lengths labels edges with branch lengths.
	Lengths bool

	// LeftToRight lays the tree out horizontally, like a phylogram.
	LeftToRight bool
}

// ToDOT converts a tree to Graphviz DOT format. Nodes are identified by
// their pre-order index; anonymous internal nodes are drawn as points.
func ToDOT(root *tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	if opts.LeftToRight {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, fontsize=10];\n")
	buf.WriteString("\n")

	ids := make(map[*tree.Node]int)
	for n := range root.Walk() {
		id := len(ids)
		ids[n] = id
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for n := range root.Walk() {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  n%d -> n%d", ids[n], ids[c])
			if length, ok := c.BranchLength(); ok && opts.Lengths {
				fmt.Fprintf(&buf, " [label=%q]", strconv.FormatFloat(length, 'g', 4, 64))
			}
			buf.WriteString(";\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	if !detailed || len(n.Properties) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		parts[i] = p.Key + ": " + p.Value
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tree.Node, detailed bool) []string {
	label := fmtLabel(n, detailed)
	if label == "" && !n.IsLeaf() {
		return []string{"label=\"\"", "shape=point", "width=0.08"}
	}
	return []string{fmt.Sprintf("label=%q", label)}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element, which sizes the
// document in points, with one sized in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
