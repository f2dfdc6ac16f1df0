// Package newick reads and writes trees in the Newick format, including
// New Hampshire eXtended (NHX) node annotations:
//
//	((B:2,(C:2.5,D:3)E:3.5)A:1[&&NHX:support=0.9])F;
//
// Each node's label has the form name[:length][[&&NHX:key=value:...]].
// Names cannot contain any of ",();:[]". All errors returned by this
// package carry the INVALID_NEWICK code.
package newick

import (
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/tree"
)

const nhxOpening = "[&&NHX:"

// Read parses a tree from its Newick representation.
func Read(text string) (*tree.Node, error) {
	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, ";") {
		return nil, errors.New(errors.ErrCodeInvalidNewick, `text ends with no ";"`)
	}

	p := &parser{text: text}
	root, err := p.node()
	if err != nil {
		return nil, err
	}
	if p.pos != len(text)-1 {
		return nil, errors.New(errors.ErrCodeInvalidNewick, "unexpected text at position %d: %q", p.pos, clip(text[p.pos:]))
	}
	return root, nil
}

// ReadFile parses the tree stored in the file at path.
func ReadFile(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(string(data))
}

type parser struct {
	text string
	pos  int
}

// node reads an optional parenthesized list of children followed by the
// node's own content.
func (p *parser) node() (*tree.Node, error) {
	var children []*tree.Node
	if p.peek() == '(' {
		var err error
		if children, err = p.children(); err != nil {
			return nil, err
		}
	}

	start := p.pos
	content := p.content()
	n, err := readFields(content)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNewick, err, "invalid node between positions %d and %d", start, p.pos)
	}
	n.Children = children
	return n, nil
}

// children reads "(a,b,...)" starting at the opening parenthesis.
func (p *parser) children() ([]*tree.Node, error) {
	var nodes []*tree.Node
	for {
		p.pos++ // skip '(' or ','
		if p.pos >= len(p.text) {
			return nil, errors.New(errors.ErrCodeInvalidNewick, `nodes text ends missing a matching ")"`)
		}
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)

		switch p.peek() {
		case ',':
			continue
		case ')':
			p.pos++
			return nodes, nil
		default:
			return nil, errors.New(errors.ErrCodeInvalidNewick, `expected "," or ")" at position %d`, p.pos)
		}
	}
}

// content reads up to the next separator. NHX brackets may contain ':' and
// '=' but never ',' or ')', so they need no special treatment here.
func (p *parser) content() string {
	end := p.pos
	for end < len(p.text) && !strings.ContainsRune(",);(", rune(p.text[end])) {
		end++
	}
	s := p.text[p.pos:end]
	p.pos = end
	return s
}

func (p *parser) peek() byte {
	if p.pos >= len(p.text) {
		return 0
	}
	return p.text[p.pos]
}

// readFields splits "name:length[&&NHX:k=v]" into a node.
func readFields(content string) (*tree.Node, error) {
	n := &tree.Node{}
	nameLength := content
	if i := strings.IndexByte(content, '['); i != -1 {
		nameLength = content[:i]
		props, err := readProperties(content[i:])
		if err != nil {
			return nil, err
		}
		n.Properties = props
	}

	name, lengthText, hasLength := strings.Cut(nameLength, ":")
	n.Name = strings.TrimSpace(name)
	if hasLength {
		length, err := strconv.ParseFloat(strings.TrimSpace(lengthText), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidNewick, "invalid length %q", lengthText)
		}
		n.Length, n.HasLength = length, true
	}
	return n, nil
}

// readProperties parses "[&&NHX:x=foo:y=bar]".
func readProperties(text string) (tree.Properties, error) {
	if !strings.HasPrefix(text, nhxOpening) || !strings.HasSuffix(text, "]") {
		return nil, errors.New(errors.ErrCodeInvalidNewick, "properties not contained between %q and \"]\" in %q", nhxOpening, text)
	}
	body := text[len(nhxOpening) : len(text)-1]
	var props tree.Properties
	for _, pair := range strings.Split(body, ":") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidNewick, "invalid NHX pair %q in %q", pair, text)
		}
		props.Set(k, v)
	}
	return props, nil
}

func clip(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}
