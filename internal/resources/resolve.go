package resources

import (
	"path"
	"path/filepath"

	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
)

// OwningFile walks up from node to the nearest ancestor (inclusive) whose
// resources block names a filename or folder for mode, returning that
// ancestor's NodeID. A node with no file-producing ancestor returns
// doctree.NilNode, meaning the whole manual shares one caller-named file.
func OwningFile(tree *doctree.Tree, node doctree.NodeID, mode string) doctree.NodeID {
	for id := node; id != doctree.NilNode; id = tree.Node(id).Parent {
		if OwnsFile(tree, id, mode) {
			return id
		}
	}
	return doctree.NilNode
}

// OwnsFile reports whether node itself should become its own output file
// under mode: its resources block names a filename or folder for that mode,
// or (for the web-hypertext mode) it is an index node, which always gets
// its own root-index file.
func OwnsFile(tree *doctree.Tree, node doctree.NodeID, mode string) bool {
	n := tree.Node(node)
	if n == nil {
		return false
	}
	if mode == ModeWebHypertext && n.Kind == element.Index {
		return true
	}
	if n.Chapter == nil || n.Chapter.Resources == nil {
		return false
	}
	m, ok := n.Chapter.Resources.Modes[mode]
	if !ok {
		return false
	}
	return m.Filename != "" || m.Folder != ""
}

// Output mode names: "text", "strong" (legacy hypertext), "html" (web
// hypertext), "debug".
const (
	ModeText            = "text"
	ModeLegacyHypertext = "strong"
	ModeWebHypertext    = "html"
	ModeDebug           = "debug"
)

// Path returns the relative file path node's own content is written to
// under mode, joining every file-owning ancestor's folder segment down to
// node's own filename. defaultName is used when no ancestor names a
// filename for this mode (the root of a single-file manual).
func Path(tree *doctree.Tree, node doctree.NodeID, mode, defaultName string) string {
	var folders []string
	filename := ""
	for id := node; id != doctree.NilNode; id = tree.Node(id).Parent {
		n := tree.Node(id)
		if n.Chapter == nil || n.Chapter.Resources == nil {
			continue
		}
		m, ok := n.Chapter.Resources.Modes[mode]
		if !ok {
			continue
		}
		if filename == "" && m.Filename != "" {
			filename = m.Filename // the nearest named filename wins
		}
		if m.Folder != "" {
			folders = append([]string{m.Folder}, folders...) // outer folders prepend
		}
	}
	if filename == "" {
		if len(folders) == 0 {
			return defaultName
		}
		filename = defaultName
	}
	return path.Join(append(folders, filename)...)
}

// RelativeLink returns the path used to link from a file ending at fromPath
// to a file at toPath, expressed relative to fromPath's directory.
func RelativeLink(fromPath, toPath string) string {
	fromDir := path.Dir(fromPath)
	if fromDir == "." {
		return toPath
	}
	rel, err := filepath.Rel(fromDir, toPath)
	if err != nil {
		return toPath
	}
	return filepath.ToSlash(rel)
}
