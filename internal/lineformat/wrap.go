package lineformat

import "unicode/utf8"

const (
	nbsp = 0x00A0 // non-breaking space: written as a space, never a breakpoint
	nbhy = 0x2011 // non-breaking hyphen: written as a hyphen, never a breakpoint

	minHyphenationWidth = 3
)

// wrapResult is one row's worth of output for a single column.
type wrapResult struct {
	text []byte
	done bool // the column has no more content after this row
}

// wrapOneRow implements the per-column wrapping algorithm: starting from c.writePos, it scans runes until a
// forced break (`\n`), natural end, or the effective width is exceeded,
// tracking the most recent breakpoint (space or `-`) to prefer breaking
// there over mid-word.
func wrapOneRow(c *column, width int) wrapResult {
	if c.flags&FlagPreformatted != 0 {
		return wrapPreformattedRow(c)
	}

	buf := c.buf
	pos := c.writePos

	// A leading space at the start of a row is skipped and does not count
	// toward width.
	for pos < len(buf) && buf[pos] == ' ' {
		pos++
	}

	type charPos struct {
		offset int
		size   int
		r      rune
	}
	var chars []charPos
	breakAt := -1 // index into chars of the most recent breakpoint, inclusive

	i := pos
	for i < len(buf) {
		r, size := utf8.DecodeRune(buf[i:])
		if r == '\n' {
			start := pos
			c.writePos = i + size
			return wrapResult{text: append([]byte{}, buf[start:i]...), done: false}
		}

		if len(chars) >= width {
			// The character sitting right at the overflow boundary is never
			// scanned into chars, but if it's a breakpoint it still counts:
			// consume it here without displaying it.
			if r == ' ' || r == '-' {
				start := pos
				c.writePos = i + size
				return wrapResult{text: append([]byte{}, buf[start:i]...), done: false}
			}
			break
		}

		chars = append(chars, charPos{offset: i, size: size, r: r})
		if r == ' ' || r == '-' {
			breakAt = len(chars) - 1
		}
		i += size
	}

	if i >= len(buf) {
		// Natural end: every remaining character fit.
		start := pos
		c.writePos = len(buf)
		return wrapResult{text: append([]byte{}, buf[start:]...), done: true}
	}

	if breakAt >= 0 {
		end := chars[breakAt].offset + chars[breakAt].size
		start := pos
		c.writePos = end
		return wrapResult{text: append([]byte{}, buf[start:end]...), done: false}
	}

	// No breakpoint found before the width limit.
	if width >= minHyphenationWidth {
		keep := width - 1
		if keep > len(chars) {
			keep = len(chars)
		}
		end := pos
		if keep > 0 {
			end = chars[keep-1].offset + chars[keep-1].size
		}
		start := pos
		c.writePos = end
		out := append([]byte{}, buf[start:end]...)
		out = append(out, '-')
		return wrapResult{text: out, done: false}
	}

	end := pos
	if len(chars) > 0 {
		last := chars[len(chars)-1]
		end = last.offset + last.size
	}
	start := pos
	c.writePos = end
	return wrapResult{text: append([]byte{}, buf[start:end]...), done: false}
}

// wrapPreformattedRow never wraps on width: it stops only at a forced
// newline or the end of the buffer.
func wrapPreformattedRow(c *column) wrapResult {
	buf := c.buf
	start := c.writePos
	i := start
	for i < len(buf) {
		r, size := utf8.DecodeRune(buf[i:])
		if r == '\n' {
			c.writePos = i + size
			return wrapResult{text: append([]byte{}, buf[start:i]...), done: false}
		}
		i += size
	}
	c.writePos = len(buf)
	return wrapResult{text: append([]byte{}, buf[start:]...), done: true}
}

// effectiveWidth returns col's usable width for its next row, reduced by
// the hanging indent on every row after the first.
func (c *column) effectiveWidth() int {
	if c.firstRow {
		return c.resolvedWidth
	}
	w := c.resolvedWidth - c.hangingIndent
	if w < 0 {
		return 0
	}
	return w
}

// substituteSpecials writes literal nbsp/nbhy code points as their plain ASCII
// equivalents.
// Ordinary text already carries its own bytes untouched; this only matters
// for display-equivalence and is applied when a row is finally emitted.
func substituteSpecials(b []byte) []byte {
	if !hasSpecial(b) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		switch r {
		case nbsp:
			out = append(out, ' ')
		case nbhy:
			out = append(out, '-')
		default:
			out = append(out, b[i:i+size]...)
		}
		i += size
	}
	return out
}

func hasSpecial(b []byte) bool {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == nbsp || r == nbhy {
			return true
		}
		i += size
	}
	return false
}
