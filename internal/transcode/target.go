// Package transcode implements the multi-target character transcoder:
// UTF-8 input to any of ~15 legacy single-byte target encodings by binary
// search of a sorted map, plus line-ending selection and the whitespace
// flattener.
package transcode

import "sort"

// TargetKind names the fixed set of transcoding targets.
type TargetKind int

const (
	UTF8 TargetKind = iota
	SevenBit
	AcornL1
	AcornL2
	AcornL3
	AcornL4
	AcornL5
	AcornL6
	AcornL7
	AcornL8
	AcornL9
	AcornL10
	Cyrillic
	Cyrillic2
	Greek
	Hebrew
	Welsh
	BFont
)

var targetNames = map[TargetKind]string{
	UTF8:      "UTF8",
	SevenBit:  "7Bit",
	AcornL1:   "AcornL1",
	AcornL2:   "AcornL2",
	AcornL3:   "AcornL3",
	AcornL4:   "AcornL4",
	AcornL5:   "AcornL5",
	AcornL6:   "AcornL6",
	AcornL7:   "AcornL7",
	AcornL8:   "AcornL8",
	AcornL9:   "AcornL9",
	AcornL10:  "AcornL10",
	Cyrillic:  "Cyrillic",
	Cyrillic2: "Cyrillic2",
	Greek:     "Greek",
	Hebrew:    "Hebrew",
	Welsh:     "Welsh",
	BFont:     "BFont",
}

var namesToTarget = func() map[string]TargetKind {
	m := make(map[string]TargetKind, len(targetNames))
	for k, v := range targetNames {
		m[v] = k
	}
	return m
}()

// LookupTarget resolves a target name (as given on the command line) to its
// TargetKind.
func LookupTarget(name string) (TargetKind, bool) {
	k, ok := namesToTarget[name]
	return k, ok
}

func (k TargetKind) String() string {
	if n, ok := targetNames[k]; ok {
		return n
	}
	return "unknown"
}

// mapEntry is one (code point, target byte) pair in a target's table.
type mapEntry struct {
	codePoint rune
	b         byte
}

// Table is a validated, sorted target encoding table for code points
// 0x80 and above (0x00..0x7F always maps to itself).
type Table struct {
	kind       TargetKind
	webName    string // label used only by downstream (web) writers
	entries    []mapEntry
	byteToRune map[byte]rune
}

// newTable validates entries are strictly increasing by code point and
// target bytes are unique and in 0x80..0xFF. It runs once per table when
// the package-level tables are initialised, not when a target is selected.
// It panics on a malformed static table
// because that represents a programming error in the catalogue below, not
// a runtime input problem.
func newTable(kind TargetKind, webName string, entries []mapEntry) *Table {
	for i := 1; i < len(entries); i++ {
		if entries[i].codePoint <= entries[i-1].codePoint {
			panic("transcode: target table not strictly increasing by code point: " + kind.String())
		}
	}
	seen := make(map[byte]bool, len(entries))
	byteToRune := make(map[byte]rune, len(entries))
	for _, e := range entries {
		if e.b < 0x80 {
			panic("transcode: target byte out of range: " + kind.String())
		}
		if seen[e.b] {
			panic("transcode: duplicate target byte: " + kind.String())
		}
		seen[e.b] = true
		byteToRune[e.b] = e.codePoint
	}
	return &Table{kind: kind, webName: webName, entries: entries, byteToRune: byteToRune}
}

// lookup finds the target byte for a code point >= 0x80 by binary search.
func (tb *Table) lookup(r rune) (byte, bool) {
	entries := tb.entries
	i := sort.Search(len(entries), func(i int) bool { return entries[i].codePoint >= r })
	if i < len(entries) && entries[i].codePoint == r {
		return entries[i].b, true
	}
	return 0, false
}

// Holes reports every byte in 0x80..0xFF not referenced by any entry: a
// silent hole in the round trip.
func (tb *Table) Holes() []byte {
	var holes []byte
	for b := 0x80; b <= 0xFF; b++ {
		if _, ok := tb.byteToRune[byte(b)]; !ok {
			holes = append(holes, byte(b))
		}
	}
	return holes
}

// WebName returns the encoding name downstream web-hypertext writers should
// declare for this target (empty if none is defined).
func (tb *Table) WebName() string {
	return tb.webName
}
