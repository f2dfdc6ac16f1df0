package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/draw"
)

// drawersCommand creates the drawers command.
func (c *CLI) drawersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drawers",
		Short: "List the available drawers",
		Long: `List the available drawers and the capabilities each one runs.

Inline capabilities draw inside a node's own box and only when the box is
large enough; float capabilities draw next to it; align capabilities draw
in a column aligned to the right of the tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(drawersTable(draw.Drawers(), c.Config.Draw.Drawer))
			return nil
		},
	}
}

func drawersTable(drawers []draw.Drawer, current string) string {
	rows := make([][]string, 0, len(drawers))
	for _, d := range drawers {
		name := d.Name
		if d.Name == current {
			name += " *"
		}
		rows = append(rows, []string{name, hookCell(d.Inline), hookCell(d.Float), hookCell(d.Align)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Drawer", "Inline", "Float", "Align").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0 && drawers[row].Name == current:
				return cellStyle.Foreground(colorGreen).Bold(true)
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			default:
				return cellStyle.Foreground(colorGray)
			}
		})
	return t.Render()
}

func hookCell(h draw.Hook) string {
	if len(h) == 0 {
		return "—"
	}
	return strings.Join(h.Names(), ", ")
}
