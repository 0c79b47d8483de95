package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericSequence(t *testing.T) {
	l := New(Numeric, 0)
	s, ok := l.Next(1)
	require.True(t, ok)
	assert.Equal(t, "1.", s)
	s, ok = l.Next(42)
	require.True(t, ok)
	assert.Equal(t, "42.", s)
}

func TestAlphaBreakpoints(t *testing.T) {
	l := New(LowerAlpha, 0)
	cases := map[int]string{1: "a.", 26: "z.", 27: "aa.", 703: "aaa."}
	for n, want := range cases {
		s, ok := l.Next(n)
		require.True(t, ok)
		assert.Equal(t, want, s)
	}
}

func TestRomanSamples(t *testing.T) {
	l := New(UpperRoman, 0)
	cases := map[int]string{1: "I.", 4: "IV.", 9: "IX.", 1994: "MCMXCIV.", 3999: "MMMCMXCIX."}
	for n, want := range cases {
		s, ok := l.Next(n)
		require.True(t, ok)
		assert.Equal(t, want, s)
	}
}

func TestExceedingMaxItemsDoesNotAdvance(t *testing.T) {
	l := New(Numeric, 0)
	_, ok := l.Next(MaxItems + 1)
	assert.False(t, ok)
	_, ok = l.Next(0)
	assert.False(t, ok)
}

// For any n in 1..3999, the rendered string's visible length never
// exceeds the list's reported maximum length.
func TestVisibleLengthNeverExceedsMaxWidth(t *testing.T) {
	for _, style := range []Style{Numeric, LowerAlpha, UpperAlpha, LowerRoman, UpperRoman} {
		l := New(style, 0)
		for _, n := range []int{1, 2, 9, 26, 27, 99, 703, 1000, 3888, 3999} {
			s, ok := l.Next(n)
			require.True(t, ok)
			assert.LessOrEqualf(t, len(s), l.MaxWidth(), "style=%d n=%d rendered=%q max=%d", style, n, s, l.MaxWidth())
		}
	}
}

func TestUnorderedCyclesBullets(t *testing.T) {
	l0 := New(Unordered, 0)
	l1 := New(Unordered, 1)
	s0, _ := l0.Next(1)
	s1, _ := l1.Next(1)
	assert.NotEqual(t, s0, s1)
}
