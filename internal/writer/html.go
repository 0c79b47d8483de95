package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
	"github.com/standardbeagle/xmlman/internal/resources"
)

// htmlEntity renders an entity as a numeric HTML character reference, or nothing for an entity with no Unicode mapping.
func htmlEntity(k entity.Kind) []byte {
	r := k.CodePoint()
	if r == entity.NoCodePoint {
		return nil
	}
	return []byte(fmt.Sprintf("&#%d;", r))
}

var spanTags = map[element.Kind][2]string{
	element.Em:     {"<em>", "</em>"},
	element.Strong: {"<strong>", "</strong>"},
	element.Cite:   {"<cite>", "</cite>"},
	element.Code:   {"<code>", "</code>"},
	element.Key:    {"<kbd>", "</kbd>"},
	element.Variable: {"<var>", "</var>"},
}

// htmlInline renders one block's inline content as HTML markup.
type htmlInline struct {
	tree     *doctree.Tree
	mode     string
	fromPath string
	opts     Options
	buf      bytes.Buffer
}

func (p *htmlInline) Text(b []byte)        { p.buf.WriteString(html.EscapeString(string(b))) }
func (p *htmlInline) Entity(k entity.Kind) { p.buf.Write(htmlEntity(k)) }
func (p *htmlInline) Br()                  { p.buf.WriteString("<br>") }

func (p *htmlInline) CloseSpan(kind element.Kind, node doctree.NodeID) {
	if kind == element.Ref || kind == element.Link {
		p.buf.WriteString("</a>")
		return
	}
	if tags, ok := spanTags[kind]; ok {
		p.buf.WriteString(tags[1])
	}
}

func (p *htmlInline) OpenSpan(kind element.Kind, node doctree.NodeID) bool {
	if kind != element.Ref && kind != element.Link {
		if tags, ok := spanTags[kind]; ok {
			p.buf.WriteString(tags[0])
		}
		return true
	}

	n := p.tree.Node(node)
	chunk := n.Chunk

	if chunk.Flags&doctree.FlagLinkExternal != 0 {
		fmt.Fprintf(&p.buf, `<a href="%s">`, html.EscapeString(chunk.TargetID))
		return true
	}
	if chunk.Target == doctree.NilNode {
		p.buf.WriteString(`<a href="#">`)
		return true
	}
	anchor := RefAnchor(p.tree, chunk.Target)
	targetPath := resources.Path(p.tree, chunk.Target, p.mode, p.opts.DefaultName)
	href := "#" + anchor
	if targetPath != p.fromPath {
		href = resources.RelativeLink(p.fromPath, targetPath) + "#" + anchor
	}
	fmt.Fprintf(&p.buf, `<a href="%s">`, html.EscapeString(href))
	return true
}

// HTMLRenderer is the web-hypertext writer: it writes
// plain HTML markup directly, file per file-owning node, linked by
// relative paths.
type HTMLRenderer struct {
	sink     *diag.Sink
	opts     Options
	w        *bufio.Writer
	fromPath string
}

// NewHTMLRenderer builds the factory Run uses for web-hypertext output.
func NewHTMLRenderer(sink *diag.Sink, opts Options) Renderer {
	return &HTMLRenderer{sink: sink, opts: opts}
}

func (r *HTMLRenderer) Open(f *os.File) error {
	r.w = bufio.NewWriter(f)
	return nil
}

func (r *HTMLRenderer) Close() error {
	return r.w.Flush()
}

func (r *HTMLRenderer) WriteFile(tree *doctree.Tree, root doctree.NodeID, mode string, enqueue func(doctree.NodeID)) error {
	r.fromPath = resources.Path(tree, root, mode, r.opts.DefaultName)
	n := tree.Node(root)

	fmt.Fprintf(r.w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	if n.HasTitle {
		fmt.Fprintf(r.w, "<title>%s</title>", html.EscapeString(n.TitleText))
	}
	if style := stylesheetFor(tree, root, mode); style != "" {
		fmt.Fprintf(r.w, `<link rel="stylesheet" href="%s">`, html.EscapeString(style))
	}
	r.w.WriteString("</head><body>")
	if n.HasTitle {
		fmt.Fprintf(r.w, "<h1>%s</h1>", html.EscapeString(n.TitleText))
	}

	r.writeChildren(tree, root, mode, enqueue, 2)
	r.w.WriteString("</body></html>\n")
	return nil
}

func stylesheetFor(tree *doctree.Tree, id doctree.NodeID, mode string) string {
	n := tree.Node(id)
	if n.Chapter != nil && n.Chapter.Resources != nil {
		if m, ok := n.Chapter.Resources.Modes[mode]; ok {
			return m.Stylesheet
		}
	}
	return ""
}

func (r *HTMLRenderer) writeChildren(tree *doctree.Tree, parent doctree.NodeID, mode string, enqueue func(doctree.NodeID), level int) {
	for _, child := range tree.Children(parent) {
		r.writeBlock(tree, child, mode, enqueue, level)
	}
}

func (r *HTMLRenderer) writeStub(tree *doctree.Tree, id doctree.NodeID, mode string) {
	n := tree.Node(id)
	targetPath := resources.Path(tree, id, mode, r.opts.DefaultName)
	link := resources.RelativeLink(r.fromPath, targetPath)
	summary := ""
	if n.Chapter != nil && n.Chapter.Resources != nil {
		summary = n.Chapter.Resources.Summary
	}
	fmt.Fprintf(r.w, `<p><a href="%s">%s</a>`, html.EscapeString(link), html.EscapeString(n.TitleText))
	if summary != "" {
		fmt.Fprintf(r.w, " -- %s", html.EscapeString(summary))
	}
	r.w.WriteString("</p>\n")
}

func (r *HTMLRenderer) writeBlock(tree *doctree.Tree, id doctree.NodeID, mode string, enqueue func(doctree.NodeID), level int) {
	n := tree.Node(id)

	switch n.Kind {
	case element.Chapter, element.Section, element.Index:
		if resources.OwnsFile(tree, id, mode) {
			r.writeStub(tree, id, mode)
			enqueue(id)
			return
		}
		fmt.Fprintf(r.w, `<section id="%s">`, RefAnchor(tree, id))
		if n.HasTitle {
			fmt.Fprintf(r.w, "<h%d>%s</h%d>", level, html.EscapeString(n.TitleText), level)
		}
		r.writeChildren(tree, id, mode, enqueue, level+1)
		r.w.WriteString("</section>")

	case element.P:
		r.w.WriteString("<p>")
		r.writeInline(tree, id, mode)
		r.w.WriteString("</p>\n")

	case element.Ol:
		r.w.WriteString("<ol>")
		for _, li := range tree.Children(id) {
			r.w.WriteString("<li>")
			r.writeInline(tree, li, mode)
			r.w.WriteString("</li>")
		}
		r.w.WriteString("</ol>\n")

	case element.Ul:
		r.w.WriteString("<ul>")
		for _, li := range tree.Children(id) {
			r.w.WriteString("<li>")
			r.writeInline(tree, li, mode)
			r.w.WriteString("</li>")
		}
		r.w.WriteString("</ul>\n")

	case element.Table:
		fmt.Fprintf(r.w, `<table id="%s">`, RefAnchor(tree, id))
		for _, row := range tree.Children(id) {
			if tree.Node(row).Kind != element.Row {
				continue
			}
			r.w.WriteString("<tr>")
			for _, col := range tree.Children(row) {
				fmt.Fprintf(r.w, "<td>%s</td>", html.EscapeString(string(FlattenText(tree, col))))
			}
			r.w.WriteString("</tr>")
		}
		r.w.WriteString("</table>\n")

	case element.Code:
		fmt.Fprintf(r.w, `<pre id="%s">%s</pre>`, RefAnchor(tree, id), html.EscapeString(string(FlattenText(tree, id))))

	case element.Footnote:
		fmt.Fprintf(r.w, `<aside id="%s" class="footnote">`, RefAnchor(tree, id))
		r.writeInline(tree, id, mode)
		r.w.WriteString("</aside>\n")

	case element.Callout:
		r.w.WriteString(`<aside class="callout">`)
		r.writeInline(tree, id, mode)
		r.w.WriteString("</aside>\n")

	case element.Columns:
		r.w.WriteString(`<div class="columns">`)
		for _, col := range tree.Children(id) {
			r.w.WriteString(`<div class="column">`)
			fmt.Fprintf(r.w, "%s", html.EscapeString(string(FlattenText(tree, col))))
			r.w.WriteString("</div>")
		}
		r.w.WriteString("</div>\n")

	case element.Chapterlist:
		r.w.WriteString("<ul>")
		for _, ch := range tree.Children(tree.Root()) {
			if tree.Node(ch).Kind != element.Chapter {
				continue
			}
			targetPath := resources.Path(tree, ch, mode, r.opts.DefaultName)
			link := resources.RelativeLink(r.fromPath, targetPath)
			fmt.Fprintf(r.w, `<li><a href="%s">%s</a></li>`, html.EscapeString(link), html.EscapeString(tree.Node(ch).TitleText))
		}
		r.w.WriteString("</ul>\n")

	default:
		r.sink.Report(diag.CodeUnsupportedElement, diag.Position{}, n.Kind.Name())
	}
}

func (r *HTMLRenderer) writeInline(tree *doctree.Tree, id doctree.NodeID, mode string) {
	p := &htmlInline{tree: tree, mode: mode, fromPath: r.fromPath, opts: r.opts}
	WalkInline(tree, id, p)
	r.w.Write(p.buf.Bytes())
}
