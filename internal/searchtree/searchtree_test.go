package searchtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupFindsAllEntries(t *testing.T) {
	tr := New(map[string]int{"amp": 1, "lt": 2, "gt": 3, "quot": 4})
	for k, want := range map[string]int{"amp": 1, "lt": 2, "gt": 3, "quot": 4} {
		got, ok := tr.Lookup(k)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestLookupMissing(t *testing.T) {
	tr := New(map[string]int{"amp": 1})
	_, ok := tr.Lookup("nope")
	assert.False(t, ok)
}

func TestLookupHashMatchesLookup(t *testing.T) {
	tr := New(map[string]int{"section": 1, "chapter": 2, "index": 3})
	h := Hash("chapter")
	got, ok := tr.LookupHash("chapter", h)
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	_, ok = tr.LookupHash("chapter", Hash("different"))
	assert.False(t, ok)
}

func TestEmptyTree(t *testing.T) {
	tr := New[int](nil)
	_, ok := tr.Lookup("anything")
	assert.False(t, ok)
}
