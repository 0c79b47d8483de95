package writer

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/resources"
)

// readContainerFrames parses the minimal pieces of the container format this
// test needs: a flat list of (name, body) pairs in write order.
func readContainerFrames(t *testing.T, data []byte) []struct {
	name string
	body string
} {
	t.Helper()
	require.True(t, len(data) >= 8)
	require.Equal(t, []byte("XMCN"), data[:4])
	pos := 8
	var frames []struct {
		name string
		body string
	}
	for pos < len(data) {
		pos += 4 // depth
		nameLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4
		name := string(data[pos : pos+int(nameLen)])
		pos += int(nameLen)
		pos += 4 // filetype
		bodyLen := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4
		body := string(data[pos : pos+int(bodyLen)])
		pos += int(bodyLen)
		frames = append(frames, struct {
			name string
			body string
		}{name, body})
	}
	return frames
}

func renderLegacy(t *testing.T, tree *doctree.Tree, root doctree.NodeID, opts Options) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	sink := diag.NewSink(false)
	r := NewLegacyRenderer(sink, opts)
	require.NoError(t, r.Open(f))
	require.NoError(t, r.WriteFile(tree, root, resources.ModeLegacyHypertext, func(doctree.NodeID) {}))
	require.NoError(t, r.Close())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	return out
}

func TestLegacyRendererWritesRootAndNestedSection(t *testing.T) {
	tree, root, _ := buildTree(t, `<manual><title>Guide</title>
		<chapter id="c"><title>Chapter</title>
			<section id="s"><title>Section</title><p>Body text.</p></section>
		</chapter>
	</manual>`)
	out := renderLegacy(t, tree, root, testOptions())
	frames := readContainerFrames(t, out)

	// Every chapter/section becomes its own nested sub-file, serialized as
	// soon as SubClose runs: the section closes first, then its chapter,
	// then the root.
	require.Len(t, frames, 3)
	assert.Equal(t, "Section", frames[0].name)
	assert.Contains(t, frames[0].body, "Body text.")
	assert.Equal(t, "Chapter", frames[1].name)
	assert.Equal(t, "!Root", frames[2].name)
	assert.Contains(t, frames[2].body, "\\heading\\Guide\\endheading\\")
}

func TestLegacyRendererEntityEscape(t *testing.T) {
	tree, root, _ := buildTree(t, `<manual><chapter id="c"><title>C</title><p>A&mdash;B</p></chapter></manual>`)
	out := renderLegacy(t, tree, root, testOptions())
	frames := readContainerFrames(t, out)
	require.Len(t, frames, 2)
	assert.Contains(t, frames[0].body, "\\mdash\\")
}

func TestLegacyRendererListsTablesAndCode(t *testing.T) {
	tree, root, _ := buildTree(t, `<manual><chapter id="c"><title>C</title>
		<ol><li>First.</li><li>Second.</li></ol>
		<table id="tbl"><row><col>A1</col><col>B1</col></row></table>
		<code>raw text</code>
	</chapter></manual>`)
	out := renderLegacy(t, tree, root, testOptions())
	frames := readContainerFrames(t, out)
	body := frames[0].body

	assert.Contains(t, body, "\\item\\First.")
	assert.Contains(t, body, "\\cell\\A1")
	assert.Contains(t, body, "\\endrow\\")
	assert.Contains(t, body, "\\code\\raw text\\endcode\\")
}

func TestLegacyRendererFileSplittingProducesStubAndSeparateFile(t *testing.T) {
	tree, root, _ := buildTree(t, `<manual><title>Guide</title>
		<chapter id="intro">
			<title>Intro</title>
			<resources><mode name="strong"><filename>intro.bin</filename></mode></resources>
			<p>Body.</p>
		</chapter>
	</manual>`)

	path := filepath.Join(t.TempDir(), "out.bin")
	f, err := os.Create(path)
	require.NoError(t, err)

	var enqueued []doctree.NodeID
	sink := diag.NewSink(false)
	r := NewLegacyRenderer(sink, testOptions())
	require.NoError(t, r.Open(f))
	require.NoError(t, r.WriteFile(tree, root, resources.ModeLegacyHypertext, func(id doctree.NodeID) {
		enqueued = append(enqueued, id)
	}))
	require.NoError(t, r.Close())

	require.Len(t, enqueued, 1)
	out, err := os.ReadFile(path)
	require.NoError(t, err)
	frames := readContainerFrames(t, out)
	assert.Contains(t, frames[0].body, "\\link\\")
	assert.NotContains(t, frames[0].body, "Body.")
}
