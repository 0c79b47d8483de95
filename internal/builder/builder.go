// Package builder implements the recursive-descent document builder: it drives an internal/tokenizer stream through the internal/element
// grammar table, synthesizing implied paragraphs where a block-collection
// parent receives bare inline content directly, and resolving chapter/index
// file-includes eagerly with a depth guard.
package builder

import (
	"path/filepath"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/token"
	"github.com/standardbeagle/xmlman/internal/tokenizer"
)

// MaxIncludeDepth bounds nested chapter/index file-includes.
const MaxIncludeDepth = 16

// Builder owns the tree a document is built into and the diagnostic sink
// every parse error is reported to.
type Builder struct {
	sink *diag.Sink
	tree *doctree.Tree
}

// New creates a Builder writing into tree.
func New(tree *doctree.Tree, sink *diag.Sink) *Builder {
	return &Builder{sink: sink, tree: tree}
}

// BuildFile parses path as a top-level document (or include target) and
// returns the NodeID of its root element, or NilNode on a fatal tokenizer
// failure.
func (b *Builder) BuildFile(path string) doctree.NodeID {
	return b.buildFileAt(path, 0)
}

func (b *Builder) buildFileAt(path string, depth int) doctree.NodeID {
	tz, err := tokenizer.Open(path, b.sink)
	if err != nil {
		return doctree.NilNode
	}
	defer tz.Close()

	tok := tz.ReadNext()
	for tok.Kind == token.Whitespace || tok.Kind == token.Comment {
		tok = tz.ReadNext()
	}
	if tok.Kind != token.StartTag && tok.Kind != token.EmptyTag {
		b.sink.Report(diag.CodeUnexpectedText, diag.Position{File: path}, "expected a root element")
		return doctree.NilNode
	}
	kind, ok := tz.Element()
	if !ok {
		b.sink.ReportWithSuggestion(diag.CodeUnexpectedStartTag, diag.Position{File: path}, tok.Name, element.Names(), tok.Name)
		return doctree.NilNode
	}
	return b.buildElement(tz, path, kind, tok, depth)
}

// buildElement constructs one element node from an already-consumed
// StartTag/EmptyTag token, including its attributes and (for StartTag) its
// children up to the matching end tag.
func (b *Builder) buildElement(tz *tokenizer.Tokenizer, file string, kind element.Kind, tok token.Token, depth int) doctree.NodeID {
	id := b.tree.NewNode(kind)
	b.applyAttributes(tz, id, kind, tok)

	if tok.Kind == token.EmptyTag {
		if replacement, handled := b.tryResolveInclude(tz, file, id, kind, tok, depth); handled {
			return replacement
		}
		return id
	}

	b.parseChildren(tz, file, id, kind, depth)
	return id
}

// applyAttributes reads known attributes off the opening tag into the
// node's payload.
func (b *Builder) applyAttributes(tz *tokenizer.Tokenizer, id doctree.NodeID, kind element.Kind, tok token.Token) {
	rule := element.RuleFor(kind)
	for _, a := range tok.Attrs {
		if !rule.IsKnownAttribute(a.Name) {
			b.sink.ReportWithSuggestion(diag.CodeUnknownAttribute, diag.Position{}, a.Name,
				append(append([]string{}, rule.Required...), rule.Known...), kind.Name(), a.Name)
			continue
		}
		switch {
		case a.Name == "id" && kind.IsIDable():
			b.chapterPayload(id).ID = string(a.Value)
		case a.Name == "id" && (kind == element.Ref || kind == element.Link):
			b.chunkPayload(id).TargetID = string(a.Value)
		case a.Name == "href" && kind == element.Link:
			b.chunkPayload(id).TargetID = string(a.Value)
		case a.Name == "external" && kind == element.Link:
			if string(a.Value) == "true" {
				b.chunkPayload(id).Flags |= doctree.FlagLinkExternal
			}
		case a.Name == "flatten":
			if string(a.Value) == "true" {
				b.chunkPayload(id).Flags |= doctree.FlagLinkFlatten
			}
		case a.Name == "name" && kind == element.Mode:
			// Stashed in the generic "declared id" slot; internal/resources
			// reads it back off the raw mode subtree when folding resources
			// onto the owning chapter/section/index node.
			b.chapterPayload(id).ID = string(a.Value)
		}
	}
}

func (b *Builder) chapterPayload(id doctree.NodeID) *doctree.ChapterPayload {
	n := b.tree.Node(id)
	if n.Chapter == nil {
		n.Chapter = &doctree.ChapterPayload{}
	}
	return n.Chapter
}

func (b *Builder) chunkPayload(id doctree.NodeID) *doctree.ChunkPayload {
	return b.tree.EnsureChunk(id)
}

// tryResolveInclude resolves an included external chapter/index:
// an empty chapter/index tag carrying a file attribute is replaced by the
// parsed root of that file. Returns (replacementID, true) when the node
// passed in should be discarded in favor of the replacement (which may be
// NilNode if the include failed or was too deep).
func (b *Builder) tryResolveInclude(tz *tokenizer.Tokenizer, file string, id doctree.NodeID, kind element.Kind, tok token.Token, depth int) (doctree.NodeID, bool) {
	if kind != element.Chapter && kind != element.Index {
		return doctree.NilNode, false
	}
	target, ok := tok.Get("file")
	if !ok {
		return doctree.NilNode, false
	}
	if depth+1 > MaxIncludeDepth {
		b.sink.Report(diag.CodeIncludeTooDeep, diag.Position{File: file}, string(target))
		return doctree.NilNode, true
	}
	resolved := filepath.Join(filepath.Dir(file), string(target))
	replacement := b.buildFileAt(resolved, depth+1)
	if replacement == doctree.NilNode {
		b.sink.Report(diag.CodeIncludeNotFound, diag.Position{File: file}, resolved)
		return doctree.NilNode, true
	}
	return replacement, true
}
