package writer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/encoding"
	"github.com/standardbeagle/xmlman/internal/entity"
	"github.com/standardbeagle/xmlman/internal/lineformat"
	"github.com/standardbeagle/xmlman/internal/numbering"
	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/transcode"
)

// transcodingWriter adapts an os.File into the UTF-8-in / target-encoded-out
// boundary: lineformat writes raw UTF-8 column text (wrap.go decodes it with
// utf8.DecodeRune), so transcoding happens at the point bytes leave the
// formatter rather than before they enter it.
type transcodingWriter struct {
	w  *os.File
	tc *transcode.Transcoder
}

func (t *transcodingWriter) Write(p []byte) (int, error) {
	var out bytes.Buffer
	buf := make([]byte, 4)
	pos := 0
	for pos < len(p) {
		r, ok := transcode.ParseUTF8(p, &pos)
		if !ok {
			out.WriteByte('?')
			continue
		}
		n, ok := t.tc.WriteUnicode(buf, r)
		if !ok {
			out.WriteByte('?')
			continue
		}
		out.Write(buf[:n])
	}
	if _, err := t.w.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *transcodingWriter) Close() error {
	return t.w.Close()
}

// textEntity maps an entity to the text writer's idiom: plain ASCII
// substitutes for typographic punctuation, two/three-byte idioms for
// application-private marks, and everything else through the transcoder
// (handled by the caller passing the raw code point through).
func textEntity(k entity.Kind) []byte {
	switch k {
	case entity.Le:
		return []byte("<=")
	case entity.Ge:
		return []byte(">=")
	case entity.Ne:
		return []byte("!=")
	case entity.Copy:
		return []byte("(C)")
	case entity.Reg:
		return []byte("(R)")
	case entity.Trade:
		return []byte("(TM)")
	case entity.Smile:
		return []byte(":-)")
	case entity.Shy:
		return nil
	case entity.Mdash:
		return []byte("--")
	case entity.Ndash:
		return []byte("-")
	case entity.Hellip:
		return []byte("...")
	case entity.Lsquo, entity.Rsquo, entity.Apos:
		return []byte("'")
	case entity.Ldquo, entity.Rdquo, entity.Quot:
		return []byte("\"")
	default:
		if r := k.CodePoint(); r != entity.NoCodePoint {
			return []byte(string(r))
		}
		return nil
	}
}

// textInline collects one block's inline content into plain bytes for the
// text writer, resolving references to their rendered form as it goes.
type textInline struct {
	tree     *doctree.Tree
	sink     *diag.Sink
	mode     string
	fromPath string
	opts     Options
	buf      bytes.Buffer
}

func (p *textInline) Text(b []byte)         { p.buf.Write(b) }
func (p *textInline) Entity(k entity.Kind)  { p.buf.Write(textEntity(k)) }
func (p *textInline) Br()                   { p.buf.WriteByte('\n') }
func (p *textInline) CloseSpan(element.Kind, doctree.NodeID) {}

func (p *textInline) OpenSpan(kind element.Kind, node doctree.NodeID) bool {
	if kind != element.Ref && kind != element.Link {
		return true
	}
	n := p.tree.Node(node)
	body := FlattenText(p.tree, node)
	p.buf.Write(body)

	chunk := n.Chunk
	if chunk.Flags&doctree.FlagLinkExternal != 0 {
		if len(body) > 0 {
			p.buf.WriteByte(' ')
		}
		fmt.Fprintf(&p.buf, "<%s>", chunk.TargetID)
		return false
	}
	if chunk.Flags&doctree.FlagLinkFlatten != 0 {
		return false
	}
	if chunk.Target == doctree.NilNode {
		p.buf.WriteString(" (see ?)")
		return false
	}
	anchor := RefAnchor(p.tree, chunk.Target)
	targetPath := resources.Path(p.tree, chunk.Target, p.mode, p.opts.DefaultName)
	if targetPath == p.fromPath {
		fmt.Fprintf(&p.buf, " (see %s)", anchor)
	} else {
		link := resources.RelativeLink(p.fromPath, targetPath)
		fmt.Fprintf(&p.buf, " (see %s#%s)", link, anchor)
	}
	return false
}

// RefAnchor returns the anchor a reference to node resolves to: its
// declared id if it has one, otherwise a stable computed anchor built from
// its kind name and arena index, base-63 encoded to match the short
// hand-typed-anchor style a legacy hypertext reader expects.
func RefAnchor(tree *doctree.Tree, node doctree.NodeID) string {
	n := tree.Node(node)
	if n.Chapter != nil && n.Chapter.ID != "" {
		return n.Chapter.ID
	}
	return fmt.Sprintf("%s-%s", n.Kind.Name(), encoding.Base63Encode(uint64(node)))
}

// TextRenderer is the plain-text output writer: it drives
// the line formatter directly, one pushed line instance per block.
type TextRenderer struct {
	sink *diag.Sink
	opts Options

	tc       *transcode.Transcoder
	f        *lineformat.Formatter
	fromPath string
}

// NewTextRenderer builds the factory Run uses for text-mode output.
func NewTextRenderer(sink *diag.Sink, opts Options) Renderer {
	return &TextRenderer{sink: sink, opts: opts}
}

func (r *TextRenderer) Open(f *os.File) error {
	r.tc = transcode.NewTranscoder(r.opts.Target)
	r.tc.SelectLineEnding(r.opts.LineEnding)
	w := &transcodingWriter{w: f, tc: r.tc}
	r.f = lineformat.Open(w, r.opts.PageWidth, r.tc.LineEndingBytes(), r.sink)
	return nil
}

func (r *TextRenderer) Close() error {
	return r.f.Close()
}

func (r *TextRenderer) WriteFile(tree *doctree.Tree, root doctree.NodeID, mode string, enqueue func(doctree.NodeID)) error {
	r.fromPath = resources.Path(tree, root, mode, r.opts.DefaultName)

	r.f.PushAbsolute(0)
	col := r.f.AddColumn(0, lineformat.FULL)
	r.f.Reset()

	n := tree.Node(root)
	if n.HasTitle {
		r.f.AddText(col, []byte(n.TitleText))
		r.f.Write(true, false)
		r.f.WriteNewline()
	}

	r.writeChildren(tree, root, mode, enqueue)
	r.f.Pop()
	return nil
}

func (r *TextRenderer) writeChildren(tree *doctree.Tree, parent doctree.NodeID, mode string, enqueue func(doctree.NodeID)) {
	for _, child := range tree.Children(parent) {
		r.writeBlock(tree, child, mode, enqueue)
	}
}

func (r *TextRenderer) writeStub(tree *doctree.Tree, id doctree.NodeID, mode string) {
	n := tree.Node(id)
	col := r.f.AddColumn(0, lineformat.FULL)
	r.f.Reset()
	summary := ""
	if n.Chapter != nil && n.Chapter.Resources != nil {
		summary = n.Chapter.Resources.Summary
	}
	targetPath := resources.Path(tree, id, mode, r.opts.DefaultName)
	link := resources.RelativeLink(r.fromPath, targetPath)
	text := fmt.Sprintf("%s -- see %s", n.TitleText, link)
	if summary != "" {
		text = fmt.Sprintf("%s -- %s (see %s)", n.TitleText, summary, link)
	}
	r.f.AddText(col, []byte(text))
	r.f.Write(false, false)
}

func (r *TextRenderer) writeParagraphText(col int, tree *doctree.Tree, id doctree.NodeID, mode string) {
	p := &textInline{tree: tree, sink: r.sink, mode: mode, fromPath: r.fromPath, opts: r.opts}
	WalkInline(tree, id, p)
	r.f.Reset()
	r.f.AddText(col, p.buf.Bytes())
	r.f.Write(false, false)
}

func (r *TextRenderer) writeBlock(tree *doctree.Tree, id doctree.NodeID, mode string, enqueue func(doctree.NodeID)) {
	n := tree.Node(id)

	switch n.Kind {
	case element.Chapter, element.Section, element.Index:
		if resources.OwnsFile(tree, id, mode) {
			r.writeStub(tree, id, mode)
			enqueue(id)
			return
		}
		col := r.f.AddColumn(0, lineformat.FULL)
		r.f.Reset()
		if n.HasTitle {
			r.f.AddText(col, []byte(n.TitleText))
			r.f.Write(true, false)
		}
		r.writeChildren(tree, id, mode, enqueue)

	case element.P:
		col := r.f.AddColumn(0, lineformat.FULL)
		r.writeParagraphText(col, tree, id, mode)

	case element.Ol, element.Ul:
		r.writeList(tree, id, mode, enqueue)

	case element.Table:
		r.writeTable(tree, id, mode)

	case element.Code:
		col := r.f.AddColumn(0, lineformat.FULL)
		r.f.SetColumnFlags(col, lineformat.FlagPreformatted)
		r.f.Reset()
		r.f.AddText(col, FlattenText(tree, id))
		r.f.Write(false, false)

	case element.Footnote, element.Callout:
		r.f.Push(2, 0)
		col := r.f.AddColumn(0, lineformat.FULL)
		r.writeParagraphText(col, tree, id, mode)
		r.f.Pop()

	case element.Columns:
		r.writeColumns(tree, id, mode)

	case element.Chapterlist:
		r.writeChapterlist(tree, mode)

	default:
		r.sink.Report(diag.CodeUnsupportedElement, diag.Position{}, n.Kind.Name())
	}
}

func (r *TextRenderer) writeList(tree *doctree.Tree, id doctree.NodeID, mode string, enqueue func(doctree.NodeID)) {
	style := numbering.Numeric
	if tree.Node(id).Kind == element.Ul {
		style = numbering.Unordered
	}
	list := numbering.New(style, 0)
	items := tree.Children(id)

	r.f.Push(0, 0)
	label := r.f.AddColumn(0, list.MaxWidth()+1)
	body := r.f.AddColumn(1, lineformat.FULL)
	r.f.Reset()
	r.f.SetHangingIndent(body, list.MaxWidth()+1)

	for i, li := range items {
		marker, _ := list.Next(i + 1)
		r.f.Reset()
		r.f.AddText(label, []byte(marker))
		p := &textInline{tree: tree, sink: r.sink, mode: mode, fromPath: r.fromPath, opts: r.opts}
		WalkInline(tree, li, p)
		r.f.AddText(body, p.buf.Bytes())
		r.f.Write(false, false)
	}
	r.f.Pop()
}

func (r *TextRenderer) writeTable(tree *doctree.Tree, id doctree.NodeID, mode string) {
	n := tree.Node(id)
	defs := n.Chapter.ColumnDefs

	r.f.Push(0, 0)
	cols := make([]int, 0, len(defs))
	for _, d := range defs {
		w := lineformat.FULL
		if d.Width > 0 {
			w = d.Width
		}
		c := r.f.AddColumn(1, w)
		switch d.Align {
		case "right":
			r.f.SetColumnAlign(c, lineformat.AlignRight)
		case "centre":
			r.f.SetColumnAlign(c, lineformat.AlignCentre)
		case "pre":
			r.f.SetColumnFlags(c, lineformat.FlagPreformatted)
		}
		cols = append(cols, c)
	}

	for _, row := range tree.Children(id) {
		if tree.Node(row).Kind != element.Row {
			continue
		}
		r.f.Reset()
		for i, col := range tree.Children(row) {
			if i >= len(cols) {
				break
			}
			r.f.AddText(cols[i], FlattenText(tree, col))
		}
		r.f.Write(false, true)
	}
	r.f.Pop()
}

func (r *TextRenderer) writeColumns(tree *doctree.Tree, id doctree.NodeID, mode string) {
	children := tree.Children(id)
	r.f.Push(0, 0)
	cols := make([]int, 0, len(children))
	for range children {
		cols = append(cols, r.f.AddColumn(1, lineformat.FULL))
	}
	r.f.Reset()
	for i, col := range children {
		r.f.AddText(cols[i], FlattenText(tree, col))
	}
	r.f.Write(false, true)
	r.f.Pop()
}

// writeChapterlist renders a table of contents of every top-level chapter.
// Its content is writer-generated rather than markup-sourced, unlike every
// other block this renderer's per-kind switch handles.
func (r *TextRenderer) writeChapterlist(tree *doctree.Tree, mode string) {
	col := r.f.AddColumn(0, lineformat.FULL)
	for _, id := range tree.Children(tree.Root()) {
		n := tree.Node(id)
		if n.Kind != element.Chapter {
			continue
		}
		targetPath := resources.Path(tree, id, mode, r.opts.DefaultName)
		link := resources.RelativeLink(r.fromPath, targetPath)
		r.f.Reset()
		r.f.AddText(col, []byte(fmt.Sprintf("%s -- %s", n.TitleText, link)))
		r.f.Write(false, false)
	}
}
