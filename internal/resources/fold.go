// Package resources folds the raw <resources> subtree the builder parses
// like any other element into a chapter/index/section node's lazily
// allocated doctree.Resources block, and resolves which file a node's
// content lands in for a given output mode.
package resources

import (
	"strings"

	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
)

// Fold reads scratch — the root of a <resources> element built structurally
// like any other subtree — and copies its mode/images/downloads content
// onto owner's resources block. scratch itself is discarded; it is never
// linked into owner's child chain.
func Fold(tree *doctree.Tree, owner, scratch doctree.NodeID) {
	if scratch == doctree.NilNode {
		return
	}
	for _, c := range tree.Children(scratch) {
		switch tree.Node(c).Kind {
		case element.Mode:
			foldMode(tree, owner, c)
		case element.Images:
			res := tree.EnsureResources(owner)
			res.Images = append(res.Images, splitList(flatten(tree, c))...)
		case element.Downloads:
			res := tree.EnsureResources(owner)
			res.Downloads = append(res.Downloads, splitList(flatten(tree, c))...)
		}
	}
}

func foldMode(tree *doctree.Tree, owner, modeNode doctree.NodeID) {
	n := tree.Node(modeNode)
	var name string
	if n.Chapter != nil {
		name = n.Chapter.ID // stashed by builder.applyAttributes off the "name" attribute
	}
	if name == "" {
		return
	}
	m := tree.EnsureMode(owner, name)
	for _, c := range tree.Children(modeNode) {
		text := flatten(tree, c)
		switch tree.Node(c).Kind {
		case element.Filename:
			m.Filename = text
		case element.Folder:
			m.Folder = text
		case element.Stylesheet:
			m.Stylesheet = text
		}
	}
}

// splitList breaks a glob-pattern list on commas, whitespace, and newlines;
// manuals write one pattern per line or comma-separate them inline.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
}

func flatten(tree *doctree.Tree, id doctree.NodeID) string {
	var out []byte
	for _, c := range tree.Children(id) {
		n := tree.Node(c)
		switch n.Kind {
		case element.TextData:
			out = append(out, n.Chunk.Text...)
		case element.EntityData:
			if n.Chunk.HasEntity {
				if cp := entity.Kind(n.Chunk.EntityKind).CodePoint(); cp != entity.NoCodePoint {
					out = append(out, string(cp)...)
				}
			}
		}
	}
	return string(out)
}
