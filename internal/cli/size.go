package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/draw"
	"github.com/matzehuels/smartview/pkg/pipeline"
)

// sizeCommand creates the size command.
func (c *CLI) sizeCommand() *cobra.Command {
	var newickText string

	cmd := &cobra.Command{
		Use:   "size [file|url|-]",
		Short: "Print the size of a tree's drawing",
		Long: `Print the width and height of a tree's drawing in tree units, with its node
and leaf counts. Use these to choose a viewport for draw and render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{Newick: newickText, Logger: c.Logger}
			if len(args) > 0 {
				opts.Source = args[0]
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			root, err := runner.Parse(ctx, opts)
			if err != nil {
				return err
			}
			sizes := draw.StoreSizes(root)
			size := sizes.Node(root)

			var leaves int
			for range root.Leaves() {
				leaves++
			}

			printKeyValue("Width", formatFloat(size.W))
			printKeyValue("Height", formatFloat(size.H))
			printKeyValue("Nodes", fmt.Sprint(sizes.Len()))
			printKeyValue("Leaves", fmt.Sprint(leaves))
			return nil
		},
	}

	cmd.Flags().StringVar(&newickText, "newick", "", "inline Newick text instead of a file or URL")
	return cmd
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
