package debugmode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
)

func buildSample(t *testing.T) (*doctree.Tree, doctree.NodeID) {
	t.Helper()
	tree := doctree.New()

	manual := tree.NewNode(element.Manual)
	tree.Node(manual).TitleText = "Guide"
	tree.Node(manual).HasTitle = true
	tree.SetRoot(manual)

	chapter := tree.NewNode(element.Chapter)
	tree.Node(chapter).TitleText = "Intro"
	tree.Node(chapter).HasTitle = true
	tree.Node(chapter).Chapter = &doctree.ChapterPayload{ID: "intro"}
	tree.AppendChild(manual, chapter)

	p := tree.NewNode(element.P)
	tree.AppendChild(chapter, p)

	return tree, manual
}

func TestDumpProducesValidSelfDescribingJSON(t *testing.T) {
	tree, root := buildSample(t)

	var buf bytes.Buffer
	require.NoError(t, Dump(tree, root, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "manual", decoded["kind"])
	assert.Equal(t, "Guide", decoded["title"])

	children, ok := decoded["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)

	chapter, ok := children[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "chapter", chapter["kind"])
	assert.Equal(t, "intro", chapter["id"])
}

func TestDumpOmitsEmptyOptionalFields(t *testing.T) {
	tree := doctree.New()
	manual := tree.NewNode(element.Manual)
	tree.SetRoot(manual)

	var buf bytes.Buffer
	require.NoError(t, Dump(tree, manual, &buf))

	assert.NotContains(t, buf.String(), `"title"`)
	assert.NotContains(t, buf.String(), `"id"`)
	assert.NotContains(t, buf.String(), `"children"`)
}

func TestBuildRecursesThroughEveryChild(t *testing.T) {
	tree, root := buildSample(t)
	n := build(tree, root)
	require.Len(t, n.Children, 1)
	require.Len(t, n.Children[0].Children, 1)
	assert.Equal(t, "p", n.Children[0].Children[0].Kind)
}
