// Package entity holds the fixed catalogue of named character entities the
// tokenizer and document builder accept.
//
// Each enum value equals its index in the backing table; TestCheckTableIndices
// in entity_test.go enforces that property at test time.
package entity

import "github.com/standardbeagle/xmlman/internal/searchtree"

// Kind is the closed enumeration of named entities the engine understands.
type Kind int

// NoCodePoint marks an application-private entity with no Unicode mapping
// (e.g. typographic separators the writers render via their own idiom).
const NoCodePoint rune = -1

const (
	Amp Kind = iota
	Lt
	Gt
	Quot
	Apos
	Nbsp
	Mdash
	Ndash
	Hellip
	Lsquo
	Rsquo
	Ldquo
	Rdquo
	Copy
	Reg
	Trade
	Para
	Sect
	Deg
	Plusmn
	Times
	Divide
	Le
	Ge
	Ne
	Minus
	Shy
	Nbhy  // non-breaking hyphen, U+2011
	Smile // application-private, no Unicode code point
	count
)

type entry struct {
	name      string
	codePoint rune
}

// table is indexed by Kind; entry i must describe Kind(i).
var table = [count]entry{
	Amp:    {"amp", '&'},
	Lt:     {"lt", '<'},
	Gt:     {"gt", '>'},
	Quot:   {"quot", '"'},
	Apos:   {"apos", '\''},
	Nbsp:   {"nbsp", ' '},
	Mdash:  {"mdash", '—'},
	Ndash:  {"ndash", '–'},
	Hellip: {"hellip", '…'},
	Lsquo:  {"lsquo", '‘'},
	Rsquo:  {"rsquo", '’'},
	Ldquo:  {"ldquo", '“'},
	Rdquo:  {"rdquo", '”'},
	Copy:   {"copy", '©'},
	Reg:    {"reg", '®'},
	Trade:  {"trade", '™'},
	Para:   {"para", '¶'},
	Sect:   {"sect", '§'},
	Deg:    {"deg", '°'},
	Plusmn: {"plusmn", '±'},
	Times:  {"times", '×'},
	Divide: {"divide", '÷'},
	Le:     {"le", '≤'},
	Ge:     {"ge", '≥'},
	Ne:     {"ne", '≠'},
	Minus:  {"minus", '−'},
	Shy:    {"shy", '­'},
	Nbhy:   {"nbhy", '‑'},
	Smile:  {"smile", NoCodePoint},
}

var byName = func() *searchtree.Tree[Kind] {
	m := make(map[string]Kind, len(table))
	for i, e := range table {
		m[e.name] = Kind(i)
	}
	return searchtree.New(m)
}()

// Lookup resolves an entity name to its Kind, the second return is false if
// the name is outside the fixed catalogue. Every `&name;` the tokenizer
// reads goes through this, so it uses the shared search tree rather than a
// plain map.
func Lookup(name string) (Kind, bool) {
	return byName.Lookup(name)
}

// Name returns the entity's declared name.
func (k Kind) Name() string {
	if k < 0 || int(k) >= len(table) {
		return ""
	}
	return table[k].name
}

// CodePoint returns the entity's mapped Unicode code point, or NoCodePoint
// for application-private entities.
func (k Kind) CodePoint() rune {
	if k < 0 || int(k) >= len(table) {
		return NoCodePoint
	}
	return table[k].codePoint
}

// Names returns every catalogued entity name, in table order. Used by
// internal/diag for "did you mean" suggestions.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}

// Count returns the number of catalogued entities.
func Count() int {
	return int(count)
}
