package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/errors"
	treeio "github.com/matzehuels/smartview/pkg/io"
	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/tree"
)

const (
	formatNewick = "newick"
	formatJSON   = "json"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	to          string   // output format: newick or json (default from the output extension)
	sort        string   // sort children: leaves or name
	reverse     bool     // reverse the sort order
	standardize bool     // move numeric internal names to the support property
	prune       []string // paths of subtrees to remove
	move        []string // path=shift sibling moves
	rootAt      string   // path of the node to reroot above
	unroot      bool     // merge a bifurcating root into a multifurcation
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file|url|-> [output]",
		Short: "Convert trees between Newick and JSON",
		Long: `Convert a tree between Newick and JSON, optionally editing it on the way.

Nodes are addressed by paths of child indices from the root ("0,1" is the
second child of the first child).

Examples:
  smartview convert tree.nw tree.json
  smartview convert tree.json --sort leaves --reverse
  smartview convert tree.nw --standardize --prune 0,1 -t newick
  smartview convert tree.nw --root-at 1,0 --sort leaves`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pipeline.Load(cmd.Context(), nil, pipeline.Options{Source: args[0]})
			if err != nil {
				return err
			}
			root, err = opts.apply(root)
			if err != nil {
				return err
			}

			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return writeTree(root, output, opts.to)
		},
	}

	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "output format: newick, json (default: from output extension)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort children: leaves, name")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "reverse the sort order")
	cmd.Flags().BoolVar(&opts.standardize, "standardize", false, "move numeric internal node names to the support property")
	cmd.Flags().StringArrayVar(&opts.prune, "prune", nil, "remove the subtree at a path (repeatable)")
	cmd.Flags().StringArrayVar(&opts.move, "move", nil, "move the node at a path among its siblings, as path=shift (repeatable)")
	cmd.Flags().StringVar(&opts.rootAt, "root-at", "", "reroot on the branch above the node at a path")
	cmd.Flags().BoolVar(&opts.unroot, "unroot", false, "merge a bifurcating root into a multifurcation")
	return cmd
}

// apply edits the tree: standardize, prune, move, reroot, then sort.
// It returns the root of the edited tree, which changes with --root-at.
func (o *convertOpts) apply(root *tree.Node) (*tree.Node, error) {
	if o.standardize {
		tree.Standardize(root)
	}
	for _, s := range o.prune {
		p, err := tree.ParsePath(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--prune %q", s)
		}
		if _, err := tree.Remove(root, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--prune %q", s)
		}
	}
	for _, s := range o.move {
		pathStr, shiftStr, ok := strings.Cut(s, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--move %q: want path=shift", s)
		}
		p, err := tree.ParsePath(pathStr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--move %q", s)
		}
		shift, err := strconv.Atoi(shiftStr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--move %q", s)
		}
		if err := tree.Move(root, p, shift); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--move %q", s)
		}
	}
	if o.rootAt != "" {
		p, err := tree.ParsePath(o.rootAt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--root-at %q", o.rootAt)
		}
		if root, err = tree.RootAt(root, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "--root-at %q", o.rootAt)
		}
	}
	if o.unroot {
		tree.Unroot(root)
	}
	switch o.sort {
	case "":
	case "leaves":
		tree.Sort(root, tree.ByLeafCount, o.reverse)
	case "name":
		tree.Sort(root, tree.ByName, o.reverse)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid sort: %q (must be 'leaves' or 'name')", o.sort)
	}
	return root, nil
}

// writeTree writes root to output (stdout if empty) as Newick or JSON.
func writeTree(root *tree.Node, output, format string) error {
	if format == "" {
		format = formatNewick
		if strings.EqualFold(filepath.Ext(output), ".json") {
			format = formatJSON
		}
	}

	switch format {
	case formatJSON:
		if output == "" {
			return treeio.WriteJSON(root, os.Stdout)
		}
		if err := treeio.ExportJSON(root, output); err != nil {
			return err
		}
	case formatNewick:
		text := newick.Write(root) + "\n"
		if output == "" {
			_, err := os.Stdout.WriteString(text)
			return err
		}
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be 'newick' or 'json')", format)
	}

	printSuccess("Converted to %s", format)
	printFile(output)
	return nil
}
