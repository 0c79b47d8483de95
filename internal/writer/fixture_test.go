package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/xmlman/internal/builder"
	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/linker"
)

// buildTree parses content as a root manual file and links it, returning a
// ready-to-render tree the same way cmd/xmlman's render command does.
func buildTree(t *testing.T, content string) (*doctree.Tree, doctree.NodeID, *diag.Sink) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "manual.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sink := diag.NewSink(false)
	tree := doctree.New()
	root := builder.New(tree, sink).BuildFile(path)
	require.NotEqual(t, doctree.NilNode, root)
	tree.SetRoot(root)

	linker.New(tree, sink).Link(root)
	require.False(t, sink.HasErrors(), sink.All())
	return tree, root, sink
}

func testOptions() Options {
	return Options{DefaultName: "ReadMe", PageWidth: 40}
}
