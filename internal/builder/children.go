package builder

import (
	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/token"
	"github.com/standardbeagle/xmlman/internal/tokenizer"
	"github.com/standardbeagle/xmlman/internal/transcode"
)

// parseChildren reads tokens until the end tag that closes parent, wiring
// permitted element children, implied paragraphs, and character data.
func (b *Builder) parseChildren(tz *tokenizer.Tokenizer, file string, parent doctree.NodeID, parentKind element.Kind, depth int) {
	rule := element.RuleFor(parentKind)
	implied := doctree.NilNode

	closeImplied := func() { implied = doctree.NilNode }

	ensureImplied := func() doctree.NodeID {
		if implied == doctree.NilNode {
			implied = b.tree.NewNode(element.P)
			b.tree.AppendChild(parent, implied)
		}
		return implied
	}

	for {
		tok := tz.ReadNext()
		switch tok.Kind {
		case token.Eof, token.Error:
			return

		case token.EndTag:
			return

		case token.Whitespace:
			if rule.AllowCharData || implied != doctree.NilNode {
				b.appendText(targetFor(parent, implied), parentKind, tok.Bytes)
			}
			// Pure layout whitespace between block children is silently
			// discarded; it is never a parse error.

		case token.Text:
			switch {
			case rule.AllowCharData:
				b.appendText(parent, parentKind, tok.Bytes)
			case parentKind.IsBlockCollection():
				b.appendText(ensureImplied(), element.P, tok.Bytes)
			default:
				b.sink.Report(diag.CodeUnexpectedText, diag.Position{File: file}, parentKind.Name())
			}

		case token.EntityRef:
			switch {
			case rule.AllowCharData:
				b.appendEntity(parent, tok.Entity)
			case parentKind.IsBlockCollection():
				b.appendEntity(ensureImplied(), tok.Entity)
			default:
				b.sink.Report(diag.CodeUnexpectedEntity, diag.Position{File: file}, parentKind.Name(), tok.Entity)
			}

		case token.StartTag, token.EmptyTag:
			kind, ok := tz.Element()
			if !ok {
				b.sink.ReportWithSuggestion(diag.CodeUnexpectedStartTag, diag.Position{File: file}, tok.Name, element.Names(), tok.Name)
				if tok.Kind == token.StartTag {
					b.skipSubtree(tz)
				}
				continue
			}

			switch {
			case rule.Permits(kind):
				closeImplied()
				b.attachChild(tz, file, parent, kind, tok, depth)

			case parentKind.IsBlockCollection() && kind.Category() == element.CategoryChunk:
				// Bare inline content directly inside a block-collection
				// parent gets wrapped in an implied paragraph.
				host := ensureImplied()
				child := b.buildElement(tz, file, kind, tok, depth)
				if child != doctree.NilNode {
					b.tree.AppendChild(host, child)
				}

			default:
				b.sink.Report(diag.CodeUnexpectedStartTag, diag.Position{File: file}, parentKind.Name(), kind.Name())
				if tok.Kind == token.StartTag {
					b.skipSubtree(tz)
				}
			}
		}
	}
}

// attachChild builds a permitted child element and either appends it as an
// ordinary child or, for metadata kinds (title/summary/strapline/credit/
// version/date), routes its flattened text content into the parent's
// dedicated slot instead of the generic child list.
func (b *Builder) attachChild(tz *tokenizer.Tokenizer, file string, parent doctree.NodeID, kind element.Kind, tok token.Token, depth int) {
	switch {
	case kind.Category() == element.CategoryMetadata:
		text := b.readPlainText(tz, file, kind, tok, depth)
		b.storeMetadata(parent, kind, text)

	case kind == element.Resources:
		// Built structurally like any other subtree, then folded into
		// parent's lazily-allocated resources block and discarded — it
		// never becomes an ordinary child.
		scratch := b.buildElement(tz, file, kind, tok, depth)
		resources.Fold(b.tree, parent, scratch)

	case kind == element.Coldef:
		b.attachColumnDef(tz, parent, tok)

	default:
		child := b.buildElement(tz, file, kind, tok, depth)
		if child != doctree.NilNode {
			b.tree.AppendChild(parent, child)
		}
	}
}

// attachColumnDef reads a <coldef align="..." width="..."/> declaration
// straight off the current tag into parent's table payload; coldef carries
// no children of its own, so it never becomes a tree node.
func (b *Builder) attachColumnDef(tz *tokenizer.Tokenizer, parent doctree.NodeID, tok token.Token) {
	align, _ := tz.ReadOption("align", []string{"left", "right", "centre", "pre"})
	width := tz.ReadInteger("width", 0, 0, 999)
	if tok.Kind == token.StartTag {
		b.skipSubtree(tz)
	}
	cp := b.chapterPayload(parent)
	cp.ColumnDefs = append(cp.ColumnDefs, doctree.ColumnDef{Align: align, Width: width})
}

// readPlainText parses a metadata element's content into a throwaway node
// and flattens it to plain text, since doctree's metadata slots are plain
// strings rather than rich inline trees.
func (b *Builder) readPlainText(tz *tokenizer.Tokenizer, file string, kind element.Kind, tok token.Token, depth int) string {
	scratch := b.tree.NewNode(kind)
	if tok.Kind == token.EmptyTag {
		return ""
	}
	b.parseChildren(tz, file, scratch, kind, depth)
	return flattenText(b.tree, scratch)
}

func (b *Builder) storeMetadata(parent doctree.NodeID, kind element.Kind, text string) {
	n := b.tree.Node(parent)
	switch kind {
	case element.Title:
		n.TitleText = text
		n.HasTitle = true
	case element.Summary:
		b.tree.EnsureResources(parent).Summary = text
	case element.Strapline:
		b.tree.EnsureResources(parent).Strapline = text
	case element.Credit:
		b.tree.EnsureResources(parent).Credit = text
	case element.Version:
		b.tree.EnsureResources(parent).Version = text
	case element.Date:
		b.tree.EnsureResources(parent).Date = text
	}
}

// appendText creates a text leaf node under host, flattening whitespace
// unless host's element preserves preformatted content (code).
func (b *Builder) appendText(host doctree.NodeID, hostKind element.Kind, raw []byte) {
	text := raw
	if hostKind != element.Code {
		text = transcode.FlattenWhitespace(append([]byte{}, raw...))
	}
	if len(text) == 0 {
		return
	}
	leaf := b.tree.NewNode(element.TextData)
	b.chunkPayload(leaf).Text = text
	b.tree.AppendChild(host, leaf)
}

func (b *Builder) appendEntity(host doctree.NodeID, name string) {
	leaf := b.tree.NewNode(element.EntityData)
	payload := b.chunkPayload(leaf)
	payload.HasEntity = true
	if k, ok := entity.Lookup(name); ok {
		payload.EntityKind = int(k)
	}
	b.tree.AppendChild(host, leaf)
}

// skipSubtree discards an unpermitted element's entire subtree by bracket
// counting start/end tags, then resumes parsing after it.
func (b *Builder) skipSubtree(tz *tokenizer.Tokenizer) {
	depth := 1
	for depth > 0 {
		tok := tz.ReadNext()
		switch tok.Kind {
		case token.Eof, token.Error:
			return
		case token.StartTag:
			depth++
		case token.EndTag:
			depth--
		}
	}
}

// targetFor returns the node whitespace between element boundaries should
// be attached to: the open implied paragraph if one exists, else parent
// itself.
func targetFor(parent, implied doctree.NodeID) doctree.NodeID {
	if implied != doctree.NilNode {
		return implied
	}
	return parent
}

// flattenText concatenates every text/entity leaf under id, in document
// order, into a plain string.
func flattenText(tree *doctree.Tree, id doctree.NodeID) string {
	var out []byte
	for _, c := range tree.Children(id) {
		n := tree.Node(c)
		switch n.Kind {
		case element.TextData:
			out = append(out, n.Chunk.Text...)
		case element.EntityData:
			if n.Chunk.HasEntity {
				cp := entity.Kind(n.Chunk.EntityKind).CodePoint()
				if cp != entity.NoCodePoint {
					out = append(out, string(cp)...)
				}
			}
		default:
			out = append(out, flattenText(tree, c)...)
		}
	}
	return string(out)
}
