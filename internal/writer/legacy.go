package writer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/writer/container"
)

// legacyEntity renders an entity as the dialect's own escape sequence
//, a backslash-bracketed name the legacy hypertext browser itself
// would recognize.
func legacyEntity(k entity.Kind) []byte {
	return []byte("\\" + k.Name() + "\\")
}

// legacyInline collects one block's inline content as the legacy dialect's
// marked-up text, resolving references to `\link\...\endlink\` escapes.
type legacyInline struct {
	tree     *doctree.Tree
	mode     string
	fromPath string
	opts     Options
	buf      bytes.Buffer
}

func (p *legacyInline) Text(b []byte)        { p.buf.Write(escapeLegacy(b)) }
func (p *legacyInline) Entity(k entity.Kind) { p.buf.Write(legacyEntity(k)) }
func (p *legacyInline) Br()                  { p.buf.WriteString("\\par\\") }
func (p *legacyInline) CloseSpan(element.Kind, doctree.NodeID) {}

func (p *legacyInline) OpenSpan(kind element.Kind, node doctree.NodeID) bool {
	if kind != element.Ref && kind != element.Link {
		return true
	}
	n := p.tree.Node(node)
	chunk := n.Chunk
	body := FlattenText(p.tree, node)

	if chunk.Flags&doctree.FlagLinkExternal != 0 {
		fmt.Fprintf(&p.buf, "\\link\\%s\\%s\\endlink\\", chunk.TargetID, escapeLegacy(body))
		return false
	}
	if chunk.Target == doctree.NilNode {
		p.buf.Write(escapeLegacy(body))
		return false
	}
	anchor := RefAnchor(p.tree, chunk.Target)
	targetPath := resources.Path(p.tree, chunk.Target, p.mode, p.opts.DefaultName)
	href := anchor
	if targetPath != p.fromPath {
		href = resources.RelativeLink(p.fromPath, targetPath) + "#" + anchor
	}
	fmt.Fprintf(&p.buf, "\\link\\%s\\%s\\endlink\\", href, escapeLegacy(body))
	return false
}

// escapeLegacy backslash-escapes the dialect's own control characters.
func escapeLegacy(b []byte) []byte {
	if !bytes.ContainsRune(b, '\\') {
		return b
	}
	return bytes.ReplaceAll(b, []byte("\\"), []byte("\\\\"))
}

// LegacyRenderer is the legacy-hypertext writer: it drives a
// container.Writer directly, never the line formatter, since the dialect
// has no column layout of its own.
type LegacyRenderer struct {
	sink     *diag.Sink
	opts     Options
	cw       *container.Writer
	fromPath string
}

// NewLegacyRenderer builds the factory Run uses for legacy-hypertext output.
func NewLegacyRenderer(sink *diag.Sink, opts Options) Renderer {
	return &LegacyRenderer{sink: sink, opts: opts}
}

func (r *LegacyRenderer) Open(f *os.File) error {
	cw, err := container.Open(f)
	r.cw = cw
	return err
}

func (r *LegacyRenderer) Close() error {
	return r.cw.Close()
}

func (r *LegacyRenderer) WriteFile(tree *doctree.Tree, root doctree.NodeID, mode string, enqueue func(doctree.NodeID)) error {
	r.fromPath = resources.Path(tree, root, mode, r.opts.DefaultName)
	r.cw.SubOpen(container.RootName, container.PageFileType)
	n := tree.Node(root)
	if n.HasTitle {
		r.cw.WritePlain("\\heading\\%s\\endheading\\", escapeLegacy([]byte(n.TitleText)))
		r.cw.WriteNewline()
	}
	r.writeChildren(tree, root, mode, enqueue)
	return r.cw.SubClose()
}

func (r *LegacyRenderer) writeChildren(tree *doctree.Tree, parent doctree.NodeID, mode string, enqueue func(doctree.NodeID)) {
	for _, child := range tree.Children(parent) {
		r.writeBlock(tree, child, mode, enqueue)
	}
}

func (r *LegacyRenderer) writeBlock(tree *doctree.Tree, id doctree.NodeID, mode string, enqueue func(doctree.NodeID)) {
	n := tree.Node(id)

	switch n.Kind {
	case element.Chapter, element.Section, element.Index:
		if resources.OwnsFile(tree, id, mode) {
			r.writeStub(tree, id, mode)
			enqueue(id)
			return
		}
		name := n.TitleText
		if name == "" {
			name = RefAnchor(tree, id)
		}
		r.cw.SubOpen(name, container.PageFileType)
		if n.HasTitle {
			r.cw.WritePlain("\\heading\\%s\\endheading\\", escapeLegacy([]byte(n.TitleText)))
			r.cw.WriteNewline()
		}
		r.writeChildren(tree, id, mode, enqueue)
		r.cw.SubClose()

	case element.P:
		r.writeParagraph(tree, id, mode)

	case element.Ol, element.Ul:
		for _, li := range tree.Children(id) {
			r.cw.WritePlain("\\item\\")
			p := &legacyInline{tree: tree, mode: mode, fromPath: r.fromPath, opts: r.opts}
			WalkInline(tree, li, p)
			r.cw.WriteText(p.buf.Bytes())
			r.cw.WriteNewline()
		}

	case element.Table:
		for _, row := range tree.Children(id) {
			if tree.Node(row).Kind != element.Row {
				continue
			}
			for _, col := range tree.Children(row) {
				r.cw.WritePlain("\\cell\\")
				r.cw.WriteText(escapeLegacy(FlattenText(tree, col)))
			}
			r.cw.WritePlain("\\endrow\\")
			r.cw.WriteNewline()
		}

	case element.Code:
		r.cw.WritePlain("\\code\\")
		r.cw.WriteText(escapeLegacy(FlattenText(tree, id)))
		r.cw.WritePlain("\\endcode\\")
		r.cw.WriteNewline()

	case element.Footnote, element.Callout:
		r.cw.WritePlain("\\note\\")
		r.writeParagraph(tree, id, mode)
		r.cw.WritePlain("\\endnote\\")

	case element.Columns:
		for _, col := range tree.Children(id) {
			r.cw.WritePlain("\\cell\\")
			r.cw.WriteText(escapeLegacy(FlattenText(tree, col)))
		}
		r.cw.WriteNewline()

	case element.Chapterlist:
		for _, ch := range tree.Children(tree.Root()) {
			if tree.Node(ch).Kind != element.Chapter {
				continue
			}
			r.cw.WritePlain("\\item\\")
			r.cw.WriteText([]byte(escapeLegacy([]byte(tree.Node(ch).TitleText))))
			r.cw.WriteNewline()
		}

	default:
		r.sink.Report(diag.CodeUnsupportedElement, diag.Position{}, n.Kind.Name())
	}
}

func (r *LegacyRenderer) writeParagraph(tree *doctree.Tree, id doctree.NodeID, mode string) {
	p := &legacyInline{tree: tree, mode: mode, fromPath: r.fromPath, opts: r.opts}
	WalkInline(tree, id, p)
	r.cw.WriteText(p.buf.Bytes())
	r.cw.WriteNewline()
}

func (r *LegacyRenderer) writeStub(tree *doctree.Tree, id doctree.NodeID, mode string) {
	n := tree.Node(id)
	targetPath := resources.Path(tree, id, mode, r.opts.DefaultName)
	link := resources.RelativeLink(r.fromPath, targetPath)
	r.cw.WritePlain("\\link\\%s\\%s\\endlink\\", link, escapeLegacy([]byte(n.TitleText)))
	r.cw.WriteNewline()
}
