package resources

import (
	"testing"
	"testing/fstest"

	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addText(tree *doctree.Tree, parent doctree.NodeID, text string) {
	leaf := tree.NewNode(element.TextData)
	tree.EnsureChunk(leaf).Text = []byte(text)
	tree.AppendChild(parent, leaf)
}

func TestFoldModeCopiesFilenameFolderStylesheet(t *testing.T) {
	tree := doctree.New()
	chapter := tree.NewNode(element.Chapter)

	resourcesNode := tree.NewNode(element.Resources)
	modeNode := tree.NewNode(element.Mode)
	modeNode2 := tree.Node(modeNode)
	modeNode2.Chapter = &doctree.ChapterPayload{ID: "html"}
	tree.AppendChild(resourcesNode, modeNode)

	filenameNode := tree.NewNode(element.Filename)
	addText(tree, filenameNode, "index.html")
	tree.AppendChild(modeNode, filenameNode)

	folderNode := tree.NewNode(element.Folder)
	addText(tree, folderNode, "chapters")
	tree.AppendChild(modeNode, folderNode)

	Fold(tree, chapter, resourcesNode)

	m := tree.EnsureMode(chapter, "html")
	assert.Equal(t, "index.html", m.Filename)
	assert.Equal(t, "chapters", m.Folder)
}

func TestFoldImagesAndDownloadsSplitOnWhitespaceAndCommas(t *testing.T) {
	tree := doctree.New()
	chapter := tree.NewNode(element.Chapter)

	resourcesNode := tree.NewNode(element.Resources)
	imagesNode := tree.NewNode(element.Images)
	addText(tree, imagesNode, "a.png, b.png\nc.png")
	tree.AppendChild(resourcesNode, imagesNode)

	downloadsNode := tree.NewNode(element.Downloads)
	addText(tree, downloadsNode, "d.zip")
	tree.AppendChild(resourcesNode, downloadsNode)

	Fold(tree, chapter, resourcesNode)

	res := tree.EnsureResources(chapter)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, res.Images)
	assert.Equal(t, []string{"d.zip"}, res.Downloads)
}

func TestFoldWithNilScratchIsNoOp(t *testing.T) {
	tree := doctree.New()
	chapter := tree.NewNode(element.Chapter)
	Fold(tree, chapter, doctree.NilNode)
	assert.Nil(t, tree.Node(chapter).Chapter)
}

func TestOwnsFileRequiresFilenameOrFolder(t *testing.T) {
	tree := doctree.New()
	chapter := tree.NewNode(element.Chapter)
	assert.False(t, OwnsFile(tree, chapter, ModeText))

	tree.EnsureMode(chapter, ModeText).Filename = "out.txt"
	assert.True(t, OwnsFile(tree, chapter, ModeText))
}

func TestOwnsFileIndexNodeAlwaysOwnsWebFile(t *testing.T) {
	tree := doctree.New()
	idx := tree.NewNode(element.Index)
	assert.True(t, OwnsFile(tree, idx, ModeWebHypertext))
	assert.False(t, OwnsFile(tree, idx, ModeText))
}

func TestOwningFileWalksUpToNearestFileOwningAncestor(t *testing.T) {
	tree := doctree.New()
	root := tree.NewNode(element.Manual)
	chapter := tree.NewNode(element.Chapter)
	tree.AppendChild(root, chapter)
	section := tree.NewNode(element.Section)
	tree.AppendChild(chapter, section)
	para := tree.NewNode(element.P)
	tree.AppendChild(section, para)

	tree.EnsureMode(chapter, ModeText).Filename = "chapter.txt"

	require.Equal(t, chapter, OwningFile(tree, para, ModeText))
	assert.Equal(t, doctree.NilNode, OwningFile(tree, para, ModeWebHypertext))
}

func TestPathJoinsFolderAndFilename(t *testing.T) {
	tree := doctree.New()
	root := tree.NewNode(element.Manual)
	chapter := tree.NewNode(element.Chapter)
	tree.AppendChild(root, chapter)

	tree.EnsureMode(root, ModeText).Folder = "out"
	tree.EnsureMode(chapter, ModeText).Filename = "intro.txt"

	got := Path(tree, chapter, ModeText, "ReadMe")
	assert.Equal(t, "out/intro.txt", got)
}

func TestPathFallsBackToDefaultName(t *testing.T) {
	tree := doctree.New()
	root := tree.NewNode(element.Manual)
	assert.Equal(t, "ReadMe", Path(tree, root, ModeText, "ReadMe"))
}

func TestRelativeLinkFromSiblingFile(t *testing.T) {
	got := RelativeLink("chapters/one.html", "chapters/two.html")
	assert.Equal(t, "two.html", got)
}

func TestRelativeLinkAcrossDirectories(t *testing.T) {
	got := RelativeLink("chapters/one/index.html", "chapters/two/index.html")
	assert.Equal(t, "../two/index.html", got)
}

func TestExpandAssetsDeduplicatesAndSorts(t *testing.T) {
	fsys := fstest.MapFS{
		"images/a.png": {Data: []byte("a")},
		"images/b.png": {Data: []byte("b")},
		"images/c.gif": {Data: []byte("c")},
	}

	got, err := ExpandAssets(fsys, []string{"images/*.png", "images/a.png"})
	require.NoError(t, err)
	assert.Equal(t, []string{"images/a.png", "images/b.png"}, got)
}

func TestExpandAssetsDropsNonMatchingPatternSilently(t *testing.T) {
	fsys := fstest.MapFS{"images/a.png": {Data: []byte("a")}}
	got, err := ExpandAssets(fsys, []string{"images/*.png", "downloads/*.zip"})
	require.NoError(t, err)
	assert.Equal(t, []string{"images/a.png"}, got)
}
