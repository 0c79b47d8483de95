package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/xmlman/internal/config"
	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/linker"
	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/transcode"
	"github.com/standardbeagle/xmlman/internal/version"
	"github.com/standardbeagle/xmlman/internal/writer"

	"github.com/standardbeagle/xmlman/internal/builder"
)

var Version = version.Version

// loadConfigWithOverrides loads the project's `.xmlman.kdl` (if any) and
// applies the invocation's CLI flag overrides field by field.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	dir := c.String("project-dir")
	if dir == "" {
		dir = "."
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", dir, err)
	}

	cfg.Apply(config.Overrides{
		InputRoot:  c.String("input"),
		OutputRoot: c.String("output"),
		Modes:      c.StringSlice("mode"),
		Encoding:   c.String("encoding"),
		LineEnding: c.String("line-ending"),
		PageWidth:  c.Int("page-width"),
		Strict:     c.Bool("strict"),
	})
	return cfg, nil
}

func runCompile(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sink := diag.NewSink(cfg.Strict)

	tree := doctree.New()
	b := builder.New(tree, sink)
	root := b.BuildFile(cfg.InputRoot)
	if root == doctree.NilNode {
		sink.Flush()
		return cli.Exit("xmlman: could not parse "+cfg.InputRoot, 1)
	}
	tree.SetRoot(root)

	lk := linker.New(tree, sink)
	lk.Link(root)

	target, ok := transcode.LookupTarget(cfg.Encoding)
	if !ok {
		target = transcode.UTF8
	}
	lineEnding, ok := lineEndingFor(cfg.LineEnding)
	if !ok {
		lineEnding = transcode.LF
	}

	opts := writer.Options{
		OutputRoot:  cfg.OutputRoot,
		DefaultName: "ReadMe",
		PageWidth:   cfg.PageWidth,
		Target:      target,
		LineEnding:  lineEnding,
	}

	start := time.Now()
	nodeCount := tree.Len()
	for _, mode := range cfg.Modes {
		if err := writer.DispatchMode(tree, sink, mode, opts); err != nil {
			sink.Flush()
			return cli.Exit(err.Error(), 1)
		}
	}
	elapsed := time.Since(start)

	sink.Flush()
	fmt.Fprintf(c.App.Writer, "xmlman: compiled %s node(s) in %s across %d mode(s)\n",
		humanize.Comma(int64(nodeCount)), elapsed.Round(time.Millisecond), len(cfg.Modes))

	if sink.HasErrors() {
		return cli.Exit("xmlman: completed with errors", 1)
	}
	return nil
}

func lineEndingFor(name string) (transcode.LineEnding, bool) {
	switch name {
	case "CR":
		return transcode.CR, true
	case "LF":
		return transcode.LF, true
	case "CRLF":
		return transcode.CRLF, true
	case "LFCR":
		return transcode.LFCR, true
	default:
		return transcode.LF, false
	}
}

func runCheck(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sink := diag.NewSink(cfg.Strict)
	tree := doctree.New()
	b := builder.New(tree, sink)
	root := b.BuildFile(cfg.InputRoot)
	if root == doctree.NilNode {
		sink.Flush()
		return cli.Exit("xmlman: could not parse "+cfg.InputRoot, 1)
	}
	tree.SetRoot(root)

	lk := linker.New(tree, sink)
	lk.Link(root)

	sink.Flush()
	if sink.HasErrors() {
		return cli.Exit("xmlman: document has errors", 1)
	}
	fmt.Fprintf(c.App.Writer, "xmlman: %s is well-formed (%s node(s))\n", cfg.InputRoot, humanize.Comma(int64(tree.Len())))
	return nil
}

func main() {
	app := &cli.App{
		Name:    "xmlman",
		Usage:   "compile an XML technical manual to text, legacy hypertext, and web hypertext",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project-dir", Usage: "directory to load .xmlman.kdl from", Value: "."},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input root filename (overrides config)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output root filename or directory (overrides config)"},
			&cli.StringSliceFlag{Name: "mode", Aliases: []string{"m"}, Usage: fmt.Sprintf("output mode, repeatable (%s|%s|%s|%s)", resources.ModeText, resources.ModeLegacyHypertext, resources.ModeWebHypertext, resources.ModeDebug)},
			&cli.StringFlag{Name: "encoding", Usage: "target character encoding for text output"},
			&cli.StringFlag{Name: "line-ending", Usage: "line ending for text output (CR|LF|CRLF|LFCR)"},
			&cli.IntFlag{Name: "page-width", Usage: "page width for text output"},
			&cli.BoolFlag{Name: "strict", Usage: "promote recoverable diagnostics to fatal"},
		},
		Action: runCompile,
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "compile the manual into its configured output modes",
				Action: runCompile,
			},
			{
				Name:   "check",
				Usage:  "parse and link the manual, reporting diagnostics without writing output",
				Action: runCheck,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, filepath.Base(os.Args[0])+": "+err.Error())
		os.Exit(1)
	}
}
