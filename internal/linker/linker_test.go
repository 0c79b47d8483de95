package linker

import (
	"testing"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapterWithID(tr *doctree.Tree, id string) doctree.NodeID {
	n := tr.NewNode(element.Chapter)
	node := tr.Node(n)
	node.HasTitle = true
	node.TitleText = "T"
	node.Chapter = &doctree.ChapterPayload{ID: id}
	return n
}

func TestSiblingIndexAssignedInDocumentOrder(t *testing.T) {
	tr := doctree.New()
	root := tr.NewNode(element.Manual)
	tr.SetRoot(root)

	a := chapterWithID(tr, "a")
	b := chapterWithID(tr, "b")
	tr.AppendChild(root, a)
	tr.AppendChild(root, b)

	sink := diag.NewSink(false)
	l := New(tr, sink)
	l.Link(root)

	assert.Equal(t, 1, tr.Node(a).Index)
	assert.Equal(t, 2, tr.Node(b).Index)
	assert.False(t, sink.HasErrors())
}

func TestDuplicateIDFirstWins(t *testing.T) {
	tr := doctree.New()
	root := tr.NewNode(element.Manual)
	tr.SetRoot(root)

	first := chapterWithID(tr, "dup")
	second := chapterWithID(tr, "dup")
	tr.AppendChild(root, first)
	tr.AppendChild(root, second)

	sink := diag.NewSink(false)
	l := New(tr, sink)
	l.Link(root)

	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.CodeDuplicateID, sink.All()[0].Code)
	got, ok := l.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestRefResolvesToIndexedTarget(t *testing.T) {
	tr := doctree.New()
	root := tr.NewNode(element.Manual)
	tr.SetRoot(root)

	target := chapterWithID(tr, "intro")
	tr.AppendChild(root, target)

	ref := tr.NewNode(element.Ref)
	tr.EnsureChunk(ref).TargetID = "intro"
	tr.AppendChild(root, ref)

	sink := diag.NewSink(false)
	l := New(tr, sink)
	l.Link(root)

	assert.False(t, sink.HasErrors())
	assert.Equal(t, target, tr.Node(ref).Chunk.Target)
	assert.Empty(t, tr.Node(ref).Chunk.TargetID)
}

func TestUnresolvedRefIsReportedAndLeftAsPlaceholder(t *testing.T) {
	tr := doctree.New()
	root := tr.NewNode(element.Manual)
	tr.SetRoot(root)

	ref := tr.NewNode(element.Link)
	tr.EnsureChunk(ref).TargetID = "nowhere"
	tr.AppendChild(root, ref)

	sink := diag.NewSink(false)
	l := New(tr, sink)
	l.Link(root)

	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.CodeLinkNotFound, sink.All()[0].Code)
	assert.Equal(t, doctree.NilNode, tr.Node(ref).Chunk.Target)
	assert.Equal(t, "nowhere", tr.Node(ref).Chunk.TargetID)
}
