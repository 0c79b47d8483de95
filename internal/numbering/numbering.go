// Package numbering implements the stateful list-number formatter: numeric,
// alphabetic, Roman, and bulleted lists with maximum-rendered-width
// precomputed once per style rather than measured row by row.
package numbering

import (
	"fmt"
	"strings"
)

// Style is the list numbering type requested for one list instance.
type Style int

const (
	Unordered Style = iota
	Numeric
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// MaxItems bounds list size.
const MaxItems = 3999

// bulletCycle is the fixed cycle of bullet glyphs selected by nesting level
// for Unordered lists.
var bulletCycle = []string{"•", "◦", "▪", "‣"}

// List is one list-numbering instance.
type List struct {
	style    Style
	level    int
	maxWidth int
	buf      string
}

// New creates a list-numbering instance for style at nesting level (0-based).
// It immediately precomputes the maximum rendered width for MaxItems items
// in this style.
func New(style Style, level int) *List {
	l := &List{style: style, level: level}
	l.maxWidth = l.computeMaxWidth()
	return l
}

// MaxWidth returns the precomputed maximum visible width any Next() result
// in this list can have.
func (l *List) MaxWidth() int {
	return l.maxWidth
}

// Next formats the next value (1-based) into the instance's internal buffer
// and returns it. n must be 1..MaxItems; exceeding MaxItems returns ("", false)
// without advancing any external state.
func (l *List) Next(n int) (string, bool) {
	if n < 1 || n > MaxItems {
		return "", false
	}
	l.buf = l.render(n)
	return l.buf, true
}

func (l *List) render(n int) string {
	switch l.style {
	case Unordered:
		return bulletCycle[l.level%len(bulletCycle)]
	case Numeric:
		return fmt.Sprintf("%d.", n)
	case LowerAlpha:
		return alphaString(n, false) + "."
	case UpperAlpha:
		return alphaString(n, true) + "."
	case LowerRoman:
		return strings.ToLower(roman(n)) + "."
	case UpperRoman:
		return roman(n) + "."
	default:
		return fmt.Sprintf("%d.", n)
	}
}

// alphaString renders n (1-based) in bijective base-26: a, b, ..., z, aa,
// ab, ...
func alphaString(n int, upper bool) string {
	const alphabetSize = 26
	var sb strings.Builder
	for n > 0 {
		n--
		r := byte('a' + n%alphabetSize)
		if upper {
			r = byte('A' + n%alphabetSize)
		}
		sb.WriteByte(r)
		n /= alphabetSize
	}
	s := sb.String()
	// digits were generated least-significant first
	runes := []byte(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders n (1..3999) as an upper-case Roman numeral.
func roman(n int) string {
	var sb strings.Builder
	for _, e := range romanTable {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	return sb.String()
}

// longestRomanLength finds the longest Roman numeral rendering among
// 1..MaxItems by formatting every value and keeping the greatest length.
func longestRomanLength() int {
	longest := 0
	// The longest-numeral property is locally maximal just below each
	// "clean" boundary (1000, 2000, 3000, and each hundred/ten/unit
	// rollover within them); scanning every value up to MaxItems is cheap
	// (3999 iterations) and exact, so precompute it directly.
	for n := 1; n <= MaxItems; n++ {
		if l := len(roman(n)); l > longest {
			longest = l
		}
	}
	return longest
}

// computeMaxWidth precomputes the maximum rendered length across 1..MaxItems
// for l.style by consulting the breakpoint table for that style.
func (l *List) computeMaxWidth() int {
	switch l.style {
	case Unordered:
		maxLen := 0
		for _, b := range bulletCycle {
			if len(b) > maxLen {
				maxLen = len(b)
			}
		}
		return maxLen
	case Numeric:
		return len(fmt.Sprintf("%d.", MaxItems))
	case LowerAlpha, UpperAlpha:
		return len(alphaString(MaxItems, false)) + 1
	case LowerRoman, UpperRoman:
		// Roman numeral length is not monotonic in n (e.g. 3888 ->
		// MMMDCCCLXXXVIII is longer than 3999 -> MMMCMXCIX), so every
		// value up to MaxItems is scanned instead of trusting the final
		// value.
		return longestRomanLength() + 1
	default:
		return len(fmt.Sprintf("%d.", MaxItems))
	}
}
