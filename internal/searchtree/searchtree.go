// Package searchtree implements the case-sensitive ordered lookup used
// during parsing for tag/entity/ID resolution: a validated sorted table,
// looked up once per token, generalized to a generic key/value table. Every
// lookup is a binary search by string comparison; the per-entry xxhash is
// checked only by LookupHash, after the search has found the key.
package searchtree

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Tree is an immutable, sorted lookup table from string key to value V.
// Built once (typically from a fixed catalogue such as internal/entity or
// internal/element) and queried many times during tokenizing/parsing.
type Tree[V any] struct {
	keys   []string
	hashes []uint64
	values []V
}

// New builds a Tree from a map of key to value. Keys are sorted so Lookup
// can fall back to binary search; hashes are precomputed once.
func New[V any](entries map[string]V) *Tree[V] {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Tree[V]{
		keys:   keys,
		hashes: make([]uint64, len(keys)),
		values: make([]V, len(keys)),
	}
	for i, k := range keys {
		t.hashes[i] = xxhash.Sum64String(k)
		t.values[i] = entries[k]
	}
	return t
}

// Lookup finds key's value by ordered binary search. The table also carries
// a precomputed xxhash per entry (t.hashes), which only LookupHash consults.
func (t *Tree[V]) Lookup(key string) (V, bool) {
	var zero V
	lo, hi := 0, len(t.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case t.keys[mid] < key:
			lo = mid + 1
		case t.keys[mid] > key:
			hi = mid
		default:
			return t.values[mid], true
		}
	}
	return zero, false
}

// LookupHash is Lookup plus a check of a caller-supplied xxhash of key: it
// binary-searches by string comparison exactly as Lookup does and, once the
// key is found, reports a miss if that slot's precomputed hash differs from
// h. The hash does not spare a miss any string comparisons.
func (t *Tree[V]) LookupHash(key string, h uint64) (V, bool) {
	var zero V
	lo, hi := 0, len(t.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case t.keys[mid] < key:
			lo = mid + 1
		case t.keys[mid] > key:
			hi = mid
		default:
			if t.hashes[mid] != h {
				return zero, false
			}
			return t.values[mid], true
		}
	}
	return zero, false
}

// Hash returns the precomputed xxhash of key suitable for repeated
// LookupHash calls.
func Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Len returns the number of entries in the tree.
func (t *Tree[V]) Len() int {
	return len(t.keys)
}

// Keys returns every key in sorted order.
func (t *Tree[V]) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}
