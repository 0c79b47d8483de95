// Package linker implements the ID index and link resolver: a
// single document-order walk that assigns parent/previous pointers, builds
// the ID index (first-wins on duplicate), assigns chapter/section sibling
// indices, and then resolves every ref/link chunk's target ID string
// against that index.
package linker

import (
	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
)

// Linker owns the ID index built from one Link pass and the pending
// ref/link chunks collected along the way.
type Linker struct {
	tree *doctree.Tree
	sink *diag.Sink

	index    map[string]doctree.NodeID
	seen     map[uint64]struct{} // xxhash pre-check ahead of the authoritative map
	siblings map[element.Kind]int
	refs     []doctree.NodeID
}

// New creates a Linker over tree, reporting to sink.
func New(tree *doctree.Tree, sink *diag.Sink) *Linker {
	return &Linker{
		tree:     tree,
		sink:     sink,
		index:    make(map[string]doctree.NodeID),
		seen:     make(map[uint64]struct{}),
		siblings: make(map[element.Kind]int),
	}
}

// Link performs the full linker pass rooted at root: the document-order
// walk followed by reference resolution.
func (l *Linker) Link(root doctree.NodeID) {
	l.walk(root, doctree.NilNode)
	l.resolveReferences()
}

// walk runs the per-node linking sequence: set
// previous/parent (already done by doctree.AppendChild at build time, so
// this pass only needs to (re)confirm it for the root, which AppendChild
// never touches), ID-index insertion, sibling-index assignment, then
// recurse into children.
func (l *Linker) walk(id, parent doctree.NodeID) {
	if id == doctree.NilNode {
		return
	}
	n := l.tree.Node(id)
	n.Parent = parent

	if n.Chapter != nil && n.Chapter.ID != "" && n.Kind.IsIDable() {
		l.insertID(n.Chapter.ID, id)
	}

	if n.Kind.IsNumbered() && n.HasTitle {
		n.Index = 1
		for p := n.Previous; p != doctree.NilNode; p = l.tree.Node(p).Previous {
			if pn := l.tree.Node(p); pn.Kind == n.Kind && pn.HasTitle {
				n.Index = pn.Index + 1
				break
			}
		}
	}

	if n.Kind == element.Ref || n.Kind == element.Link {
		if n.Chunk != nil && n.Chunk.TargetID != "" {
			l.refs = append(l.refs, id)
		}
	}

	for _, c := range l.tree.Children(id) {
		l.walk(c, id)
	}
}

// insertID inserts id under key into the index. Duplicate keys raise a
// diagnostic and the existing entry wins. The xxhash set
// is a fast negative check: a hash miss proves the key is new without
// touching the authoritative map at all; a hash hit (including the rare
// collision between two different keys) falls through to the map to get
// the real answer.
func (l *Linker) insertID(key string, id doctree.NodeID) {
	h := xxhash.Sum64String(key)
	if _, maybeSeen := l.seen[h]; maybeSeen {
		if _, exists := l.index[key]; exists {
			l.sink.Report(diag.CodeDuplicateID, diag.Position{}, key)
			return
		}
	}
	l.seen[h] = struct{}{}
	l.index[key] = id
}

// Lookup resolves an ID string to its indexed node.
func (l *Linker) Lookup(key string) (doctree.NodeID, bool) {
	id, ok := l.index[key]
	return id, ok
}

// resolveReferences resolves every ref/link
// chunk whose target is an ID string; on success the target
// pointer is set and the ID string released, on failure a diagnostic is
// raised and the chunk keeps its placeholder text.
func (l *Linker) resolveReferences() {
	for _, id := range l.refs {
		n := l.tree.Node(id)
		target, ok := l.Lookup(n.Chunk.TargetID)
		if !ok {
			l.sink.Report(diag.CodeLinkNotFound, diag.Position{}, n.Chunk.TargetID)
			continue
		}
		n.Chunk.Target = target
		n.Chunk.TargetID = ""
	}
}
