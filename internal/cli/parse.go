package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/pipeline"
)

// parseFormats are the text formats `gml parse` can emit.
var parseFormats = []string{pipeline.FormatJSON, pipeline.FormatText, pipeline.FormatDOT}

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output string // output file, stdout when empty or "-"
	format string // json, text or dot
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a GML file and print it as JSON, text or DOT",
		Long: `Parse a GML file and print the resulting graph.

FILE may be "-" to read from stdin. A summary of the graph is written to
stderr; the converted graph goes to stdout unless --output is given.

Malformed input is reported with its error code and the index of the
offending token.`,
		Example: `  gml parse deps.gml
  gml parse deps.gml -f dot -o deps.dot
  cat deps.gml | gml parse - -f text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, text, dot")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, path string, opts parseOpts) error {
	if err := errors.ValidateFormat(opts.format, parseFormats...); err != nil {
		return err
	}

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(cmd.Context()))
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.Render(cmd.Context(), src, pipeline.Options{
		Format:   opts.format,
		Detailed: c.Config.Render.Detailed,
		RankDir:  c.Config.Render.RankDir,
	})
	if err != nil {
		printParseError(src, err)
		return err
	}
	prog.done("Parsed " + displayName(path))

	if err := writeOutput(cmd, opts.output, res.Data); err != nil {
		return err
	}
	printSummary(res.Stats, false)
	return nil
}
