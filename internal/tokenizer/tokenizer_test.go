package tokenizer

import (
	"testing"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T, src string) (*Tokenizer, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink(false)
	return FromBytes("test.xml", []byte(src), sink), sink
}

func TestSelfClosingTagWithMixedQuotes(t *testing.T) {
	tz, sink := newTokenizer(t, `<a b="1" c='two' />`)
	tok := tz.ReadNext()
	require.Equal(t, token.EmptyTag, tok.Kind)
	assert.Equal(t, "a", tok.Name)
	require.Len(t, tok.Attrs, 2)
	assert.Equal(t, "b", tok.Attrs[0].Name)
	assert.Equal(t, []byte("1"), tok.Attrs[0].Value)
	assert.Equal(t, "c", tok.Attrs[1].Name)
	assert.Equal(t, []byte("two"), tok.Attrs[1].Value)
	assert.False(t, sink.HasErrors())

	eof := tz.ReadNext()
	assert.Equal(t, token.Eof, eof.Kind)
}

func TestCommentWithInternalDashesIsTransparent(t *testing.T) {
	tz, sink := newTokenizer(t, `<!-- a -- b --><p>x</p>`)
	tok := tz.ReadNext()
	require.Equal(t, token.StartTag, tok.Kind)
	assert.Equal(t, "p", tok.Name)
	assert.False(t, sink.HasErrors())
}

func TestEntityInsideElement(t *testing.T) {
	tz, sink := newTokenizer(t, `<a>&amp;</a>`)
	start := tz.ReadNext()
	require.Equal(t, token.StartTag, start.Kind)
	assert.Equal(t, "a", start.Name)

	ent := tz.ReadNext()
	require.Equal(t, token.EntityRef, ent.Kind)
	assert.Equal(t, "amp", ent.Entity)
	kind, ok := tz.Entity()
	require.True(t, ok)
	assert.Equal(t, "amp", kind.Name())

	end := tz.ReadNext()
	require.Equal(t, token.EndTag, end.Kind)
	assert.Equal(t, "a", end.EndName)
	assert.False(t, sink.HasErrors())
}

func TestEndTagCannotBeSelfClosing(t *testing.T) {
	tz, sink := newTokenizer(t, `</a/>`)
	tok := tz.ReadNext()
	assert.Equal(t, token.Error, tok.Kind)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.CodeEndTagSelfClosing, sink.All()[0].Code)
}

func TestUnterminatedEntityIsFatal(t *testing.T) {
	tz, sink := newTokenizer(t, `&amp`)
	tok := tz.ReadNext()
	assert.Equal(t, token.Error, tok.Kind)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.CodeUnterminatedEntity, sink.All()[0].Code)
}

func TestUnterminatedAttributeValue(t *testing.T) {
	tz, sink := newTokenizer(t, `<a b="unterminated`)
	tok := tz.ReadNext()
	assert.Equal(t, token.Error, tok.Kind)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.CodeUnterminatedAttr, sink.All()[0].Code)
}

func TestStickyErrorState(t *testing.T) {
	tz, _ := newTokenizer(t, `&amp<p>ok</p>`)
	first := tz.ReadNext()
	assert.Equal(t, token.Error, first.Kind)
	second := tz.ReadNext()
	assert.Equal(t, token.Error, second.Kind)
}

func TestWhitespaceVsTextClassification(t *testing.T) {
	tz, _ := newTokenizer(t, "  \t\n<p> hi </p>")
	ws := tz.ReadNext()
	require.Equal(t, token.Whitespace, ws.Kind)

	start := tz.ReadNext()
	require.Equal(t, token.StartTag, start.Kind)

	text := tz.ReadNext()
	require.Equal(t, token.Text, text.Kind)
	assert.Equal(t, []byte(" hi "), text.Bytes)
}

func TestUnknownEntitySuggestsClosestName(t *testing.T) {
	tz, sink := newTokenizer(t, `&mdahs;`)
	tok := tz.ReadNext()
	require.Equal(t, token.EntityRef, tok.Kind)
	require.Len(t, sink.All(), 1)
	assert.Contains(t, sink.All()[0].Hint, "mdash")
}

func TestProcessingInstructionIsTransparent(t *testing.T) {
	tz, sink := newTokenizer(t, `<?xml version="1.0"?><manual>`)
	tok := tz.ReadNext()
	require.Equal(t, token.StartTag, tok.Kind)
	assert.Equal(t, "manual", tok.Name)
	assert.False(t, sink.HasErrors())
}

func TestTooManyAttributesIsFatal(t *testing.T) {
	var sb []byte
	sb = append(sb, []byte("<a")...)
	for i := 0; i < token.MaxAttributes+1; i++ {
		sb = append(sb, []byte(` x="1"`)...)
	}
	sb = append(sb, '>')
	tz, sink := newTokenizer(t, string(sb))
	tok := tz.ReadNext()
	assert.Equal(t, token.Error, tok.Kind)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.CodeTooManyAttributes, sink.All()[0].Code)
}
