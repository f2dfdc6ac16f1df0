package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/newick"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/store"
)

// treesCommand creates the stored-tree management command.
func (c *CLI) treesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Manage stored trees",
		Long: `Manage the trees served by 'smartview serve'.

Trees are kept in the configured store; commands that change it need a
persistent backend (store.backend = "mongo").`,
	}

	cmd.AddCommand(c.treesAddCommand())
	cmd.AddCommand(c.treesListCommand())
	cmd.AddCommand(c.treesShowCommand())
	cmd.AddCommand(c.treesRemoveCommand())
	cmd.AddCommand(c.treesPickCommand())

	return cmd
}

// withStore opens the persistent store, runs fn and closes the store.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.newPersistentStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	return fn(st)
}

// lookupTree finds a stored tree by ID or, failing that, by name.
func lookupTree(ctx context.Context, st store.Store, ref string) (*store.Record, error) {
	if store.ValidID(ref) {
		if rec, err := st.Get(ctx, ref); err == nil {
			return rec, nil
		}
	}
	return st.GetByName(ctx, ref)
}

func (c *CLI) treesAddCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name> <file|url|->",
		Short: "Store a tree under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root, err := pipeline.Load(ctx, nil, pipeline.Options{Source: args[1]})
			if err != nil {
				return err
			}
			rec := &store.Record{Name: args[0], Description: description, Newick: newick.Write(root)}

			return c.withStore(ctx, func(st store.Store) error {
				if err := st.Create(ctx, rec); err != nil {
					return err
				}
				printSuccess("Stored %s", styleName.Render(rec.Name))
				printKeyValue("ID", rec.ID)
				printKeyValue("Nodes", fmt.Sprint(root.Count()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "description of the tree")
	return cmd
}

func (c *CLI) treesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				recs, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No trees stored")
					printNextStep("Add one", "smartview trees add <name> <file>")
					return nil
				}
				fmt.Println(treesTable(recs, -1))
				return nil
			})
		},
	}
}

func (c *CLI) treesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|id>",
		Short: "Print a stored tree as Newick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				rec, err := lookupTree(ctx, st, args[0])
				if err != nil {
					return err
				}
				fmt.Println(rec.Newick)
				return nil
			})
		},
	}
}

func (c *CLI) treesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name|id>",
		Aliases: []string{"remove"},
		Short:   "Delete a stored tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				rec, err := lookupTree(ctx, st, args[0])
				if err != nil {
					return err
				}
				if err := st.Delete(ctx, rec.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", styleName.Render(rec.Name))
				return nil
			})
		},
	}
}

func (c *CLI) treesPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a stored tree interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				recs, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No trees stored")
					return nil
				}

				final, err := tea.NewProgram(NewTreeListModel(recs), tea.WithContext(ctx)).Run()
				if err != nil {
					return err
				}
				m := final.(TreeListModel)
				if m.Selected == nil {
					return nil
				}

				printSuccess("Selected %s", styleName.Render(m.Selected.Name))
				printKeyValue("ID", m.Selected.ID)
				printNextStep("Render it", fmt.Sprintf("smartview trees show %q | smartview render - -o tree.svg", m.Selected.Name))
				return nil
			})
		},
	}
}
