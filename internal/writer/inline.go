package writer

import (
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
)

// InlineHandler receives one writer's reaction to each chunk kind found
// while walking a block's inline content. OpenSpan returns whether WalkInline should descend into the
// span's own children (a span body is made of further TextData/EntityData
// leaves only, per the grammar, but the handler decides whether it cares).
type InlineHandler interface {
	Text(b []byte)
	Entity(k entity.Kind)
	Br()
	OpenSpan(kind element.Kind, node doctree.NodeID) bool
	CloseSpan(kind element.Kind, node doctree.NodeID)
}

// WalkInline visits every chunk child of id (a paragraph, list item,
// table cell, title, or other chunk-bearing node) in document order.
func WalkInline(tree *doctree.Tree, id doctree.NodeID, h InlineHandler) {
	for _, child := range tree.Children(id) {
		n := tree.Node(child)
		switch n.Kind {
		case element.TextData:
			h.Text(n.Chunk.Text)
		case element.EntityData:
			h.Entity(entity.Kind(n.Chunk.EntityKind))
		case element.Br:
			h.Br()
		default:
			if h.OpenSpan(n.Kind, child) {
				WalkInline(tree, child, h)
			}
			h.CloseSpan(n.Kind, child)
		}
	}
}

// plainInline is an InlineHandler that flattens every run into one byte
// slice, ignoring span styling — used wherever a writer needs a node's
// visible text without per-kind markup (table cells, code blocks, columns,
// reference link bodies).
type plainInline struct {
	buf      []byte
	onEntity func(k entity.Kind) []byte
}

func (p *plainInline) Text(b []byte) { p.buf = append(p.buf, b...) }
func (p *plainInline) Entity(k entity.Kind) {
	if p.onEntity != nil {
		p.buf = append(p.buf, p.onEntity(k)...)
		return
	}
	if r := k.CodePoint(); r != entity.NoCodePoint {
		p.buf = append(p.buf, []byte(string(r))...)
	}
}
func (p *plainInline) Br() { p.buf = append(p.buf, ' ') }
func (p *plainInline) OpenSpan(element.Kind, doctree.NodeID) bool { return true }
func (p *plainInline) CloseSpan(element.Kind, doctree.NodeID)     {}

// FlattenText renders id's inline content as plain text, entities resolved
// through their Unicode code point (or dropped, for application-private
// entities with none).
func FlattenText(tree *doctree.Tree, id doctree.NodeID) []byte {
	p := &plainInline{}
	WalkInline(tree, id, p)
	return p.buf
}
