package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse a GML graph interactively",
		Long: `Open an interactive browser over the nodes of a GML file.

The list shows every node in creation order with its label and degree.
Nodes that were only referenced by edges are dimmed. The side panel lists
the selected node's attributes and its outgoing and incoming edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errors.New(errors.ErrCodeInvalidInput, "inspect reads a file; stdin is used by the terminal UI")
			}
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			g, err := pipeline.NewRunner(nil, nil, c.Logger).Parse(ctx, src)
			if err != nil {
				printParseError(src, err)
				return err
			}

			p := tea.NewProgram(NewInspectModel(g, displayName(args[0])),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}
