package draw

import (
	"fmt"
	"iter"
	"strings"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/tree"
)

// MaxTooltipHeight caps the height of tooltip boxes, in tree units.
const MaxTooltipHeight = 20

// Content is what a capability sees of the node being drawn: the node, the
// top-left point and size of its content rectangle, and the zoom.
type Content struct {
	Node  *tree.Node
	Point Point
	Size  Size
	Zoom  Zoom
}

// Capability is one named piece of content a node can show.
type Capability struct {
	Name string
	Emit func(c Content) iter.Seq[Primitive]
}

// Hook is an ordered list of capabilities.
type Hook []Capability

// Seq returns the primitives of all capabilities of the hook, in order.
func (h Hook) Seq(c Content) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		for _, capability := range h {
			for p := range capability.Emit(c) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Names returns the names of the hook's capabilities.
func (h Hook) Names() []string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.Name
	}
	return names
}

// Drawer decides what a node shows besides its branch line.
//
// Inline primitives belong to the node's content rectangle and disappear
// when it collapses. Float primitives (like leaf names) are drawn next to
// the node regardless. Align primitives go to the aligned panel.
type Drawer struct {
	Name   string
	Inline Hook
	Float  Hook
	Align  Hook
}

func (d Drawer) String() string {
	var parts []string
	for _, h := range []struct {
		name string
		hook Hook
	}{{"inline", d.Inline}, {"float", d.Float}, {"align", d.Align}} {
		if len(h.hook) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", h.name, strings.Join(h.hook.Names(), "+")))
		}
	}
	if len(parts) == 0 {
		return d.Name
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(parts, " "))
}

// Capabilities.
var (
	// LeafName writes the name of named leaves to the right of their branch.
	LeafName = Capability{Name: "leaf-name", Emit: leafName}

	// BranchLength writes the length of the branch on top of it, or an
	// outline of where it would go when there is no room for text.
	BranchLength = Capability{Name: "branch-length", Emit: branchLength}

	// Tooltip attaches the node's name and properties to its branch.
	Tooltip = Capability{Name: "tooltip", Emit: tooltip}

	// AlignedName writes leaf names in the aligned panel.
	AlignedName = Capability{Name: "aligned-name", Emit: alignedName}
)

func leafName(c Content) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		if !c.Node.IsLeaf() || c.Node.Name == "" {
			return
		}
		h := c.Size.H
		yield(Text{
			Kind: KindName,
			X:    c.Point.X + c.Size.W + 2/c.Zoom.X,
			Y:    c.Point.Y + h/1.5,
			H:    h / 2,
			Text: c.Node.Name,
		})
	}
}

func branchLength(c Content) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		length, ok := c.Node.BranchLength()
		if !ok || length < 0 {
			return
		}
		h := c.Size.H
		text := Text{
			Kind: KindLabel,
			X:    c.Point.X,
			Y:    c.Point.Y + h/2,
			W:    c.Size.W,
			H:    h / 2,
			Text: fmt.Sprintf("%.2g", length),
		}
		if h*c.Zoom.Y > 1 {
			yield(text)
			return
		}
		r, _ := RectOf(text)
		yield(Rectangle(r))
	}
}

func tooltip(c Content) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		var parts []string
		if c.Node.Name != "" {
			parts = append(parts, c.Node.Name)
		}
		if props := c.Node.Properties.String(); props != "" {
			parts = append(parts, props)
		}
		if len(parts) == 0 {
			return
		}
		h := c.Size.H
		yield(Text{
			Kind: KindTooltip,
			X:    c.Point.X,
			Y:    c.Point.Y + h/2,
			W:    c.Size.W / 2,
			H:    min(h/2, MaxTooltipHeight),
			Text: strings.Join(parts, "\n"),
		})
	}
}

func alignedName(c Content) iter.Seq[Primitive] {
	return func(yield func(Primitive) bool) {
		if !c.Node.IsLeaf() || c.Node.Name == "" {
			return
		}
		yield(Aligned{Inner: Text{
			Kind: KindName,
			X:    c.Point.X,
			Y:    c.Point.Y,
			H:    c.Size.H / 2,
			Text: c.Node.Name,
		}})
	}
}

// Strategies.
var (
	Simple    = Drawer{Name: "Simple"}
	Lengths   = Drawer{Name: "Lengths", Inline: Hook{BranchLength}}
	LeafNames = Drawer{Name: "LeafNames", Float: Hook{LeafName}}
	Full      = Drawer{Name: "Full", Inline: Hook{BranchLength}, Float: Hook{LeafName}}
	Tooltips  = Drawer{Name: "Tooltips", Inline: Hook{BranchLength, Tooltip}, Float: Hook{LeafName}}
	Align     = Drawer{Name: "Align", Inline: Hook{BranchLength}, Float: Hook{LeafName}, Align: Hook{AlignedName}}
)

// DefaultDrawer is used when no drawer is named.
const DefaultDrawer = "Full"

var drawers = []Drawer{Simple, Lengths, LeafNames, Full, Tooltips, Align}

// Drawers returns all known strategies.
func Drawers() []Drawer {
	return append([]Drawer(nil), drawers...)
}

// Names returns the names of all known strategies.
func Names() []string {
	names := make([]string, len(drawers))
	for i, d := range drawers {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the strategy with the given (case-sensitive) name.
func Lookup(name string) (Drawer, error) {
	for _, d := range drawers {
		if d.Name == name {
			return d, nil
		}
	}
	return Drawer{}, errors.New(errors.ErrCodeInvalidDrawer, "unknown drawer %q (available: %s)", name, strings.Join(Names(), ", "))
}
