package tokenizer

import (
	"strconv"

	"github.com/standardbeagle/xmlman/internal/diag"
)

// GetText returns the raw bytes of a named attribute on the current
// start/empty tag.
func (tz *Tokenizer) GetText(name string) ([]byte, bool) {
	return tz.cur.Get(name)
}

// CopyText copies a named attribute's value into dst, returning the number
// of bytes copied, for callers that want to reuse a buffer rather than
// allocate.
func (tz *Tokenizer) CopyText(name string, dst []byte) (int, bool) {
	v, ok := tz.cur.Get(name)
	if !ok {
		return 0, false
	}
	n := copy(dst, v)
	return n, true
}

// GetAttributeParser returns a sub-tokenizer bound to a named attribute's
// value, so structured attribute syntax (e.g. a column-width mini-grammar)
// can be parsed with the same tokenizer calls used on the document itself.
func (tz *Tokenizer) GetAttributeParser(name string) (*Tokenizer, bool) {
	v, ok := tz.cur.Get(name)
	if !ok {
		return nil, false
	}
	return FromBytes(tz.file, v, tz.sink), true
}

// TestBoolean resolves a named attribute against a pair of accepted
// true/false spellings (e.g. "yes"/"no"), defaulting to (false, false) if
// the attribute is absent or spells neither.
func (tz *Tokenizer) TestBoolean(name, trueSpelling, falseSpelling string) (bool, bool) {
	v, ok := tz.GetText(name)
	if !ok {
		return false, false
	}
	switch string(v) {
	case trueSpelling:
		return true, true
	case falseSpelling:
		return false, true
	default:
		return false, false
	}
}

// ReadInteger parses a named attribute as a decimal integer clamped to
// [min, max], returning def if the attribute is absent or unparseable.
func (tz *Tokenizer) ReadInteger(name string, def, min, max int) int {
	v, ok := tz.GetText(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		tz.sink.Report(diag.CodeMissingAttribute, tz.pos(), name)
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ReadOption resolves a named attribute against a closed set of allowed
// string values, reporting CodeUnknownAttribute with a fuzzy suggestion
// when the value doesn't match any of them.
func (tz *Tokenizer) ReadOption(name string, allowed []string) (string, bool) {
	v, ok := tz.GetText(name)
	if !ok {
		return "", false
	}
	got := string(v)
	for _, a := range allowed {
		if a == got {
			return got, true
		}
	}
	tz.sink.ReportWithSuggestion(diag.CodeUnknownAttribute, tz.pos(), got, allowed, name, got)
	return "", false
}
