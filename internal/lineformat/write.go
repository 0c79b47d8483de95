package lineformat

import "bytes"

// spacePadding is reused across pad() calls rather than allocated per call.
var spacePadding = bytes.Repeat([]byte{' '}, 256)

func (f *Formatter) pad(n int) {
	for n > 0 {
		chunk := n
		if chunk > len(spacePadding) {
			chunk = len(spacePadding)
		}
		f.w.Write(spacePadding[:chunk])
		n -= chunk
	}
}

// Write flushes the prepared top line to the sink, returning once every
// column is fully drained.
// With alignBottom, shorter columns are front-padded with blank rows so
// every column's last row lines up; with underline, one further row of
// dashes is written under the extent of each column.
func (f *Formatter) Write(underline, alignBottom bool) {
	t := f.top()
	if !t.prepared {
		f.Reset()
		t = f.top()
	}

	if alignBottom {
		f.applyBottomAlignment(t)
	}

	for {
		cells := make([][]byte, len(t.columns))
		any := false
		for i, c := range t.columns {
			switch {
			case c.skipRows > 0:
				c.skipRows--
				any = true
			case c.done:
				// no content left; emits only padding via writeRow
			default:
				wasFirstRow := c.firstRow
				res := wrapOneRow(c, c.effectiveWidth())
				text := res.text
				if !wasFirstRow && c.hangingIndent > 0 && c.align != AlignPre {
					indented := make([]byte, 0, c.hangingIndent+len(text))
					indented = append(indented, bytes.Repeat([]byte{' '}, c.hangingIndent)...)
					indented = append(indented, text...)
					text = indented
				}
				cells[i] = text
				c.firstRow = false
				c.done = res.done
				any = true
			}
		}
		if !any {
			break
		}
		f.writeRow(t, cells)
	}

	if underline {
		f.writeUnderline(t)
	}
}

func (f *Formatter) writeRow(t *lineInstance, cells [][]byte) {
	// Trailing columns with nothing to write this row contribute no
	// padding; a row's trailing whitespace is never explicitly emitted.
	last := len(cells) - 1
	for last >= 0 && len(cells[last]) == 0 {
		last--
	}

	cursor := 0
	for i := 0; i <= last; i++ {
		c := t.columns[i]
		target := t.left + c.resolvedStart
		f.pad(target - cursor)
		cursor = target

		text := substituteSpecials(cells[i])
		switch c.align {
		case AlignRight:
			if pad := c.resolvedWidth - len(text); pad > 0 {
				f.pad(pad)
				cursor += pad
			}
		case AlignCentre:
			if pad := (c.resolvedWidth - len(text)) / 2; pad > 0 {
				f.pad(pad)
				cursor += pad
			}
		}
		f.w.Write(text)
		cursor += len(text)
	}
	f.w.Write(f.lineEnding)
}

func (f *Formatter) writeUnderline(t *lineInstance) {
	cursor := 0
	for _, c := range t.columns {
		target := t.left + c.resolvedStart
		f.pad(target - cursor)
		cursor = target
		dashes := bytes.Repeat([]byte{'-'}, c.resolvedWidth)
		f.w.Write(dashes)
		cursor += len(dashes)
	}
	f.w.Write(f.lineEnding)
}

// applyBottomAlignment dry-wraps a throwaway copy of every column to count
// its rows, then sets skipRows on the real columns so shorter ones start
// with blank padding rows.
func (f *Formatter) applyBottomAlignment(t *lineInstance) {
	max := 0
	counts := make([]int, len(t.columns))
	for i, c := range t.columns {
		counts[i] = countRows(c)
		if counts[i] > max {
			max = counts[i]
		}
	}
	for i, c := range t.columns {
		c.skipRows = max - counts[i]
	}
}

// countRows dry-runs the wrap algorithm over a private copy of c so the
// real column's write position is untouched.
func countRows(c *column) int {
	clone := *c
	clone.buf = append([]byte{}, c.buf...)
	rows := 0
	for {
		res := wrapOneRow(&clone, clone.effectiveWidth())
		rows++
		clone.firstRow = false
		if res.done {
			return rows
		}
	}
}

// WriteRuleoff writes one full-width line of char from the current line's
// left margin to the page width.
func (f *Formatter) WriteRuleoff(char byte) {
	t := f.top()
	f.pad(t.left)
	f.w.Write(bytes.Repeat([]byte{char}, f.pageWidth-t.left))
	f.w.Write(f.lineEnding)
}

// WriteNewline writes the selected line-ending sequence.
func (f *Formatter) WriteNewline() {
	f.w.Write(f.lineEnding)
}
