package lineformat

import (
	"bytes"
	"testing"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func newFormatter(pageWidth int) (*Formatter, *bytes.Buffer, *diag.Sink) {
	buf := &bytes.Buffer{}
	sink := diag.NewSink(false)
	f := Open(nopCloser{buf}, pageWidth, []byte("\n"), sink)
	return f, buf, sink
}

func TestWrapBreaksAtSpaceBeforeWidth(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 10)
	f.Reset()
	f.AddText(0, []byte("hello world"))
	f.Write(false, false)

	assert.Equal(t, "hello \nworld\n", buf.String())
}

func TestWrapHyphenatesWhenNoBreakpoint(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 5)
	f.Reset()
	f.AddText(0, []byte("abcdefgh"))
	f.Write(false, false)

	assert.Equal(t, "abcd-\nefgh\n", buf.String())
}

func TestWrapWithoutHyphenationBelowMinimumWidth(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 2)
	f.Reset()
	f.AddText(0, []byte("abcdef"))
	f.Write(false, false)

	assert.Equal(t, "ab\ncd\nef\n", buf.String())
}

func TestForcedNewlineBreaksImmediately(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 20)
	f.Reset()
	f.AddText(0, []byte("one\ntwo"))
	f.Write(false, false)

	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestNonBreakingSpaceIsNotABreakpoint(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 6)
	f.Reset()
	f.AddText(0, []byte("a bcdef"))
	f.Write(false, false)

	// The non-breaking space renders as a plain space but is never chosen
	// as a breakpoint, so the run still hyphenates instead of breaking there.
	assert.Equal(t, "a bcd-\nef\n", buf.String())
}

func TestTwoColumnRowAssembly(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 5)
	f.AddColumn(2, 5)
	f.Reset()
	f.AddText(0, []byte("ab"))
	f.AddText(1, []byte("cd"))
	f.Write(false, false)

	assert.Equal(t, "ab     cd\n", buf.String())
}

func TestFullColumnSplitsRemainingWidthEqually(t *testing.T) {
	f, _, sink := newFormatter(40)
	f.PushAbsolute(0)
	f.AddColumn(0, 10)
	f.AddColumn(0, FULL)
	f.AddColumn(0, FULL)
	f.Reset()
	require.False(t, sink.HasErrors())

	top := f.top()
	assert.Equal(t, 15, top.columns[1].resolvedWidth)
	assert.Equal(t, 15, top.columns[2].resolvedWidth)
}

func TestHangingIndentAppliesAfterFirstRow(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 8)
	f.Reset()
	f.SetHangingIndent(0, 3)
	f.AddText(0, []byte("one two three"))
	f.Write(false, false)

	assert.Equal(t, "one two \n   three\n", buf.String())
}

func TestWrapBreaksAtSpaceLandingExactlyOnWidthBoundary(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 3)
	f.Reset()
	f.SetHangingIndent(0, 2)
	f.AddText(0, []byte("a b c d e"))
	f.Write(false, false)

	assert.Equal(t, "a b\n  c\n  d\n  e\n", buf.String())
}

func TestHangingIndentTooBigIsClearedAndReported(t *testing.T) {
	f, _, sink := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 5)
	f.Reset()
	f.SetHangingIndent(0, 10)

	require.Len(t, sink.All(), 1)
	assert.Equal(t, diag.CodeHangingIndentTooBig, sink.All()[0].Code)
	assert.Equal(t, 0, f.top().columns[0].hangingIndent)
}

func TestBottomAlignmentPadsShorterColumnFirst(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 1)
	f.AddColumn(2, 1)
	f.Reset()
	f.AddText(0, []byte("a b"))
	f.AddText(1, []byte("x"))
	f.Write(false, true)

	// col0 wraps across two rows ("a", "b"); col1 is one row shorter, so
	// its single row is pushed down to line up with col0's last row. The
	// first row's empty trailing column contributes no padding.
	assert.Equal(t, "a\nb  x\n", buf.String())
}

func TestWriteRuleoffSpansPageWidth(t *testing.T) {
	f, buf, _ := newFormatter(10)
	f.PushAbsolute(2)
	f.WriteRuleoff('-')
	assert.Equal(t, "  --------\n", buf.String())
}

func TestPreformattedColumnIgnoresWidth(t *testing.T) {
	f, buf, _ := newFormatter(80)
	f.PushAbsolute(0)
	f.AddColumn(0, 3)
	f.SetColumnFlags(0, FlagPreformatted)
	f.Reset()
	f.AddText(0, []byte("a long unwrapped line"))
	f.Write(false, false)

	assert.Equal(t, "a long unwrapped line\n", buf.String())
}
