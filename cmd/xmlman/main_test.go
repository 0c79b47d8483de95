package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/goleak"
)

// TestMain guards the single-threaded promise: a render run spawns no
// goroutines of its own, so nothing should be left running once app.Run
// returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newApp(out *bytes.Buffer) *cli.App {
	app := &cli.App{
		Name: "xmlman",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project-dir", Value: "."},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
			&cli.StringSliceFlag{Name: "mode", Aliases: []string{"m"}},
			&cli.StringFlag{Name: "encoding"},
			&cli.StringFlag{Name: "line-ending"},
			&cli.IntFlag{Name: "page-width"},
			&cli.BoolFlag{Name: "strict"},
		},
		Action: runCompile,
		Commands: []*cli.Command{
			{Name: "render", Action: runCompile},
			{Name: "check", Action: runCheck},
		},
		Writer:         out,
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app
}

func TestRenderCommandWritesTextOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "manual.xml")
	require.NoError(t, os.WriteFile(input, []byte(
		`<manual><title>Guide</title><chapter id="intro"><title>Intro</title><p>Hello there.</p></chapter></manual>`,
	), 0o644))
	outPath := filepath.Join(dir, "out.txt")

	var stdout bytes.Buffer
	app := newApp(&stdout)
	err := app.Run([]string{"xmlman", "--input", input, "--output", outPath, "--mode", "text"})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Hello there.")
	assert.Contains(t, stdout.String(), "compiled")
}

func TestCheckCommandReportsWellFormedness(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "manual.xml")
	require.NoError(t, os.WriteFile(input, []byte(
		`<manual><chapter id="c"><title>C</title><p>Text.</p></chapter></manual>`,
	), 0o644))

	var stdout bytes.Buffer
	app := newApp(&stdout)
	err := app.Run([]string{"xmlman", "--input", input, "check"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "well-formed")
}

func TestCheckCommandFailsOnUnresolvedReference(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "manual.xml")
	require.NoError(t, os.WriteFile(input, []byte(
		`<manual><chapter id="c"><title>C</title><p>See <ref id="missing"/>.</p></chapter></manual>`,
	), 0o644))

	var stdout bytes.Buffer
	app := newApp(&stdout)
	err := app.Run([]string{"xmlman", "--input", input, "--strict", "check"})
	assert.Error(t, err)
}
