package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/pipeline"
	"github.com/matzehuels/gml/pkg/render/nodelink"
)

// renderFormats are the formats `gml render` can emit.
var renderFormats = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJPG, pipeline.FormatDOT}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output path; derived from the input name when empty
	format   string // svg, png, jpg or dot
	detailed bool   // list attributes inside node and edge labels
	rankDir  string // Graphviz rank direction
	noCache  bool   // skip the artifact cache entirely
	refresh  bool   // re-render and overwrite the cached artifact
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a GML file with Graphviz",
		Long: `Draw a GML file as a node-link diagram.

Nodes are labelled with their "label" attribute or their id. Nodes that only
appear as edge endpoints are drawn dashed. Rendered images are cached by
content, so re-rendering an unchanged file is instant.

Without --output the result is written next to FILE with the format as its
extension, or to stdout when reading from stdin.`,
		Example: `  gml render deps.gml
  gml render deps.gml -f png --rankdir LR
  gml render deps.gml --detailed -o - > deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			if !flags.Changed("rankdir") {
				opts.rankDir = c.Config.Render.RankDir
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, jpg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show all attributes in labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "TB", "layout direction: "+strings.Join(nodelink.RankDirs, ", "))
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached images and re-render")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	if err := errors.ValidateFormat(opts.format, renderFormats...); err != nil {
		return err
	}

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, "Rendering "+displayName(path)+"...")
	spin.Start()
	res, err := runner.Render(ctx, src, pipeline.Options{
		Format:   opts.format,
		Detailed: opts.detailed,
		RankDir:  opts.rankDir,
		Refresh:  opts.refresh,
	})
	spin.Stop()
	if err != nil {
		printParseError(src, err)
		return err
	}

	out := opts.output
	if out == "" && path != "-" {
		out = defaultOutputPath(path, opts.format)
	}
	if err := writeOutput(cmd, out, res.Data); err != nil {
		return err
	}
	printSummary(res.Stats, res.CacheHit)
	return nil
}

// defaultOutputPath swaps the input's extension for the format.
func defaultOutputPath(input, format string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	printFile(path)
	return nil
}

// displayName returns a short name for path suitable for status lines.
func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}
