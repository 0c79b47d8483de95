// Package writer implements the output dispatcher and the per-mode writers
//: it seeds the manual queue with the document root, and for
// each dequeued node determines whether that node owns its own output file
// (internal/resources.OwnsFile), opens a sink via pkg/pathutil, and asks a
// mode-specific Renderer to walk the node's subtree. When the walk meets a
// descendant that owns its own file, the Renderer writes a stub and
// re-enqueues it instead of recursing further — the dispatcher drains the
// queue until every file-owning node has been emitted.
package writer

import (
	"fmt"
	"os"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/doctree"
	"github.com/standardbeagle/xmlman/internal/queue"
	"github.com/standardbeagle/xmlman/internal/resources"
	"github.com/standardbeagle/xmlman/internal/transcode"
	"github.com/standardbeagle/xmlman/internal/writer/debugmode"
	pathutil "github.com/standardbeagle/xmlman/pkg/pathutil"
)

// Options carries every per-run setting a Renderer needs: page width
// override, encoding/line-ending choice for text output, and the output
// root and fallback filename for a single-file run.
type Options struct {
	OutputRoot  string
	DefaultName string
	PageWidth   int
	Target      transcode.TargetKind
	LineEnding  transcode.LineEnding
}

// Renderer is one output mode's writer, bound to a single open file at a
// time. WriteFile writes root's header, every child block not itself
// file-owning, and a footer; enqueue is called (instead of recursing) for
// any descendant resources.OwnsFile reports true for, after writing that
// descendant's stub.
type Renderer interface {
	Open(f *os.File) error
	WriteFile(tree *doctree.Tree, root doctree.NodeID, mode string, enqueue func(doctree.NodeID)) error
	Close() error
}

// RendererFactory builds a fresh Renderer for one output file.
type RendererFactory func(sink *diag.Sink, opts Options) Renderer

// Run drains the manual queue for mode, starting at tree's root, writing
// one file per dequeued node via factory.
func Run(tree *doctree.Tree, sink *diag.Sink, mode string, opts Options, factory RendererFactory) error {
	q := queue.New()
	q.Push(tree.Root())

	for {
		id, ok := q.Pop()
		if !ok {
			break
		}

		rel := resources.Path(tree, id, mode, opts.DefaultName)
		full := pathutil.Join(opts.OutputRoot, rel)
		if err := pathutil.EnsureDir(full); err != nil {
			return fmt.Errorf("xmlman: creating output directory for %s: %w", full, err)
		}

		f, err := os.Create(full)
		if err != nil {
			sink.Report(diag.CodeInputNotFound, diag.Position{}, full)
			continue
		}

		r := factory(sink, opts)
		if err := r.Open(f); err != nil {
			f.Close()
			return fmt.Errorf("xmlman: opening %s for %s output: %w", full, mode, err)
		}
		writeErr := r.WriteFile(tree, id, mode, q.Push)
		closeErr := r.Close()
		if writeErr != nil {
			return fmt.Errorf("xmlman: writing %s: %w", full, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("xmlman: closing %s: %w", full, closeErr)
		}
	}
	return nil
}

// DispatchMode runs the writer registered for mode against tree, or the
// debug mode's single whole-tree dump, which has no per-node file
// splitting to drive through the manual queue.
func DispatchMode(tree *doctree.Tree, sink *diag.Sink, mode string, opts Options) error {
	switch mode {
	case resources.ModeText:
		return Run(tree, sink, mode, opts, NewTextRenderer)
	case resources.ModeLegacyHypertext:
		return Run(tree, sink, mode, opts, NewLegacyRenderer)
	case resources.ModeWebHypertext:
		return Run(tree, sink, mode, opts, NewHTMLRenderer)
	case resources.ModeDebug:
		return runDebug(tree, opts)
	default:
		return fmt.Errorf("xmlman: unknown output mode %q", mode)
	}
}

func runDebug(tree *doctree.Tree, opts Options) error {
	root := tree.Root()
	rel := resources.Path(tree, root, resources.ModeDebug, opts.DefaultName)
	full := pathutil.Join(opts.OutputRoot, rel)
	if err := pathutil.EnsureDir(full); err != nil {
		return fmt.Errorf("xmlman: creating output directory for %s: %w", full, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("xmlman: opening %s for debug output: %w", full, err)
	}
	defer f.Close()
	return debugmode.Dump(tree, root, f)
}
