// Package lineformat implements the text line formatter, the
// hard engineering core of the output side: a stack of line instances so
// writers can recursively push insets for nested lists, callouts, block
// quotes, and footnotes, and pop them at scope end with no bookkeeping of
// their own.
package lineformat

import (
	"io"

	"github.com/standardbeagle/xmlman/internal/diag"
)

// FULL is the column-width sentinel meaning "take whatever remains"; when
// multiple columns on one line request FULL, the remainder splits equally.
const FULL = -1

// Alignment is a column's text alignment within its resolved width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCentre
	AlignPre // preformatted alignment; wrapping is turned off by FlagPreformatted, not by this value
)

// ColumnFlags are per-column rendering flags set via SetColumnFlags.
type ColumnFlags uint8

const (
	// FlagPreformatted disables wrapping for a column.
	FlagPreformatted ColumnFlags = 1 << iota
)

// column is one column descriptor on a line instance.
type column struct {
	margin int
	width  int // FULL or an explicit column count
	flags  ColumnFlags
	align  Alignment

	hangingIndent int

	resolvedStart int
	resolvedWidth int

	buf      []byte
	writePos int
	firstRow bool
	done     bool
	skipRows int // bottom-alignment padding rows remaining
}

// lineInstance is one pushed line: a left margin, an effective width, and
// its columns.
type lineInstance struct {
	left     int
	width    int // effective page width available to this line
	columns  []*column
	prepared bool
}

// Formatter is the stack-structured line formatter bound to one output
// sink.
type Formatter struct {
	w          io.WriteCloser
	pageWidth  int
	lineEnding []byte
	sink       *diag.Sink

	stack []*lineInstance
}

// Open binds a Formatter to w with the given page width.
func Open(w io.WriteCloser, pageWidth int, lineEnding []byte, sink *diag.Sink) *Formatter {
	return &Formatter{w: w, pageWidth: pageWidth, lineEnding: lineEnding, sink: sink}
}

// Close releases the underlying sink.
func (f *Formatter) Close() error {
	return f.w.Close()
}

func (f *Formatter) top() *lineInstance {
	if len(f.stack) == 0 {
		return nil
	}
	return f.stack[len(f.stack)-1]
}

// PushAbsolute pushes a new line instance at an absolute left margin from
// the page origin.
func (f *Formatter) PushAbsolute(left int) {
	f.stack = append(f.stack, &lineInstance{left: left, width: f.pageWidth - left})
}

// Push pushes a new line instance inset relative to the current top of
// stack's left margin, narrowed on the right by right.
func (f *Formatter) Push(left, right int) {
	base := 0
	width := f.pageWidth
	if t := f.top(); t != nil {
		base = t.left
		width = t.width
	}
	newLeft := base + left
	newWidth := width - left - right
	f.stack = append(f.stack, &lineInstance{left: newLeft, width: newWidth})
}

// PushToColumn pushes a new line instance inset relative to a named
// column's resolved start on the current top of stack.
func (f *Formatter) PushToColumn(col, left, right int) {
	t := f.top()
	base := 0
	width := f.pageWidth
	if t != nil && col >= 0 && col < len(t.columns) {
		base = t.left + t.columns[col].resolvedStart
		width = f.pageWidth - base
	}
	newLeft := base + left
	newWidth := width - left - right
	f.stack = append(f.stack, &lineInstance{left: newLeft, width: newWidth})
}

// Pop destroys and removes the top line instance.
func (f *Formatter) Pop() {
	if len(f.stack) == 0 {
		f.sink.Report(diag.CodeFormatterUnbalanced, diag.Position{})
		return
	}
	f.stack = f.stack[:len(f.stack)-1]
}

// AddColumn appends a column to the top line and returns its index.
func (f *Formatter) AddColumn(margin, width int) int {
	t := f.top()
	t.columns = append(t.columns, &column{margin: margin, width: width, align: AlignLeft})
	return len(t.columns) - 1
}

// SetColumnFlags sets col's rendering flags.
func (f *Formatter) SetColumnFlags(col int, flags ColumnFlags) {
	c := f.top().columns[col]
	c.flags = flags
	if flags&FlagPreformatted != 0 {
		c.align = AlignPre
	}
}

// SetColumnAlign sets col's text alignment.
func (f *Formatter) SetColumnAlign(col int, align Alignment) {
	f.top().columns[col].align = align
}

// SetColumnWidth sets col's width to the length of text already added to
// it via AddText.
func (f *Formatter) SetColumnWidth(col int) {
	c := f.top().columns[col]
	c.width = len(c.buf)
}

// SetHangingIndent flags that line-wrapped text in col should indent to
// spaces columns on every row after the first. A hanging indent that would meet or
// exceed the column's resolved width is reported and silently cleared.
func (f *Formatter) SetHangingIndent(col, spaces int) {
	c := f.top().columns[col]
	if c.resolvedWidth > 0 && spaces >= c.resolvedWidth {
		f.sink.Report(diag.CodeHangingIndentTooBig, diag.Position{}, spaces, c.resolvedWidth)
		c.hangingIndent = 0
		return
	}
	c.hangingIndent = spaces
}

// SetHangingIndentAuto sets col's hanging indent to its current write
// position, for use once a column's leading label text has already been
// added.
func (f *Formatter) SetHangingIndentAuto(col int) {
	f.SetHangingIndent(col, len(f.top().columns[col].buf))
}

// Reset computes every column's resolved start and width, clears write
// state, and marks the line prepared. FULL columns
// share the width remaining after fixed-width columns and margins are
// subtracted; if that allocation would overflow the line's width, a
// diagnostic is raised and each FULL column is clamped to zero.
func (f *Formatter) Reset() {
	t := f.top()
	fixed := 0
	fullCount := 0
	for _, c := range t.columns {
		fixed += c.margin
		if c.width == FULL {
			fullCount++
		} else {
			fixed += c.width
		}
	}

	remaining := t.width - fixed
	fullWidth := 0
	if fullCount > 0 {
		if remaining < 0 {
			f.sink.Report(diag.CodeColumnOverflow, diag.Position{}, fixed, t.width)
			remaining = 0
		}
		fullWidth = remaining / fullCount
	} else if remaining < 0 {
		f.sink.Report(diag.CodeColumnOverflow, diag.Position{}, fixed, t.width)
	}

	pos := 0
	for _, c := range t.columns {
		pos += c.margin
		c.resolvedStart = pos
		if c.width == FULL {
			c.resolvedWidth = fullWidth
		} else {
			c.resolvedWidth = c.width
		}
		pos += c.resolvedWidth

		c.buf = c.buf[:0]
		c.writePos = 0
		c.firstRow = true
		c.done = false
		c.skipRows = 0
	}
	t.prepared = true
}

// AddText appends bytes to col's growable text buffer.
func (f *Formatter) AddText(col int, text []byte) {
	c := f.top().columns[col]
	c.buf = append(c.buf, text...)
}
