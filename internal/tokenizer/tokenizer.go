// Package tokenizer implements the streaming XML tokenizer: a
// character-at-a-time reader over a single open input file with its own
// entity, attribute, and comment machinery — no host XML library tree
// model. Structural lexing is byte-oriented throughout; every delimiter the
// grammar cares about ('<', '>', '&', ';', quotes, name characters) is
// ASCII, so scanning bytes never misreads a UTF-8 continuation byte (those
// are always >= 0x80).
package tokenizer

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/standardbeagle/xmlman/internal/diag"
	"github.com/standardbeagle/xmlman/internal/element"
	"github.com/standardbeagle/xmlman/internal/entity"
	"github.com/standardbeagle/xmlman/internal/token"
)

// Tokenizer streams tokens from one open source (a file, or a byte slice
// bound as an attribute value sub-parser via GetAttributeParser).
type Tokenizer struct {
	file string
	r    *bufio.Reader
	sink *diag.Sink

	line, col int
	closer    io.Closer

	errored bool
	cur     token.Token
}

// Open binds a Tokenizer to path for reading.
func Open(path string, sink *diag.Sink) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		sink.Report(diag.CodeInputNotFound, diag.Position{File: path}, err)
		return nil, err
	}
	tz := &Tokenizer{file: path, r: bufio.NewReader(f), sink: sink, line: 1, col: 1, closer: f}
	return tz, nil
}

// FromBytes binds a Tokenizer to an in-memory byte slice — used for
// GetAttributeParser, where an attribute's value is re-tokenized as if it
// were its own small document fragment.
func FromBytes(file string, data []byte, sink *diag.Sink) *Tokenizer {
	return &Tokenizer{file: file, r: bufio.NewReader(bytes.NewReader(data)), sink: sink, line: 1, col: 1}
}

// Close releases the tokenizer's underlying file handle, if any.
func (tz *Tokenizer) Close() error {
	if tz.closer != nil {
		return tz.closer.Close()
	}
	return nil
}

func (tz *Tokenizer) pos() diag.Position {
	return diag.Position{File: tz.file, Line: tz.line, Column: tz.col}
}

func (tz *Tokenizer) fail(code diag.Code, args ...any) token.Token {
	tz.errored = true
	tz.sink.Report(code, tz.pos(), args...)
	tz.cur = token.Token{Kind: token.Error, ErrCode: string(code)}
	return tz.cur
}

func (tz *Tokenizer) readByte() (byte, bool) {
	b, err := tz.r.ReadByte()
	if err != nil {
		return 0, false
	}
	if b == '\n' {
		tz.line++
		tz.col = 1
	} else {
		tz.col++
	}
	return b, true
}

func (tz *Tokenizer) unreadByte() {
	if tz.r.UnreadByte() != nil {
		return
	}
	// A pushed-back '\n' takes back its line increment; the column stays at
	// 1 and is set again when the newline is re-read.
	if b, err := tz.r.Peek(1); err == nil && b[0] == '\n' {
		tz.line--
		return
	}
	if tz.col > 1 {
		tz.col--
	}
}

func (tz *Tokenizer) peekByte() (byte, bool) {
	b, ok := tz.readByte()
	if ok {
		tz.unreadByte()
	}
	return b, ok
}

// Sticky error state: once set, every subsequent ReadNext returns Error.
func (tz *Tokenizer) isErrored() bool { return tz.errored }

// ReadNext returns the next token in the stream.
func (tz *Tokenizer) ReadNext() token.Token {
	if tz.isErrored() {
		return token.Token{Kind: token.Error}
	}
	for {
		b, ok := tz.readByte()
		if !ok {
			tz.cur = token.Token{Kind: token.Eof}
			return tz.cur
		}
		switch b {
		case '<':
			tok, transparent := tz.readTagLike()
			if transparent {
				continue // <!...> / <?...?> : tokenized as "other", not surfaced
			}
			tz.cur = tok
			return tok
		case '&':
			tok := tz.readEntity()
			tz.cur = tok
			return tok
		default:
			tz.unreadByte()
			tok := tz.readText()
			tz.cur = tok
			return tok
		}
	}
}

// Text returns the current token's text or whitespace payload.
func (tz *Tokenizer) Text() []byte {
	return tz.cur.Bytes
}

// Element maps the current tag's name through the element table.
func (tz *Tokenizer) Element() (element.Kind, bool) {
	name := tz.cur.Name
	if tz.cur.Kind == token.EndTag {
		name = tz.cur.EndName
	}
	return element.Lookup(name)
}

// Entity maps the current token's entity name through the entity table.
func (tz *Tokenizer) Entity() (entity.Kind, bool) {
	return entity.Lookup(tz.cur.Entity)
}

// Current returns the last token read, without advancing the stream.
func (tz *Tokenizer) Current() token.Token {
	return tz.cur
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == ':' || b == '_'
}

func isNameContinue(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9') || b == '-' || b == '.'
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// readName consumes a tag or attribute name, bounded by token.MaxNameLength.
func (tz *Tokenizer) readName() (string, bool) {
	b, ok := tz.peekByte()
	if !ok || !isNameStart(b) {
		return "", false
	}
	var buf bytes.Buffer
	for {
		b, ok := tz.peekByte()
		if !ok || !isNameContinue(b) {
			break
		}
		tz.readByte()
		buf.WriteByte(b)
		if buf.Len() > token.MaxNameLength {
			return buf.String(), false
		}
	}
	return buf.String(), true
}

func (tz *Tokenizer) skipWhitespace() {
	for {
		b, ok := tz.peekByte()
		if !ok || !isWhitespaceByte(b) {
			return
		}
		tz.readByte()
	}
}

// readText consumes a text run until the next '<' or '&'; the terminator is
// pushed back. Runs consisting entirely of ASCII space/tab/CR/LF become a
// Whitespace token; anything else is a Text token.
func (tz *Tokenizer) readText() token.Token {
	var buf bytes.Buffer
	allWhitespace := true
	for {
		b, ok := tz.peekByte()
		if !ok || b == '<' || b == '&' {
			break
		}
		tz.readByte()
		buf.WriteByte(b)
		if !isWhitespaceByte(b) {
			allWhitespace = false
		}
	}
	if allWhitespace {
		return token.Token{Kind: token.Whitespace, Bytes: buf.Bytes()}
	}
	return token.Token{Kind: token.Text, Bytes: buf.Bytes()}
}

// readEntity consumes from '&' (already read) to ';'. Omitting ';',
// whitespace inside, or exceeding the name-length bound are all errors.
func (tz *Tokenizer) readEntity() token.Token {
	var buf bytes.Buffer
	for {
		b, ok := tz.readByte()
		if !ok {
			return tz.fail(diag.CodeUnterminatedEntity)
		}
		if b == ';' {
			break
		}
		if isWhitespaceByte(b) {
			return tz.fail(diag.CodeUnterminatedEntity)
		}
		buf.WriteByte(b)
		if buf.Len() > token.MaxNameLength {
			return tz.fail(diag.CodeNameTooLong, buf.String())
		}
	}
	name := buf.String()
	if _, ok := entity.Lookup(name); !ok {
		tz.sink.ReportWithSuggestion(diag.CodeUnknownEntity, tz.pos(), name, entity.Names(), name)
	}
	return token.Token{Kind: token.EntityRef, Entity: name}
}

// readTagLike is entered immediately after consuming '<'. It returns the
// token plus a "transparent" flag for comments/other markup that the
// tokenizer consumes but never surfaces as a distinct Kind.
func (tz *Tokenizer) readTagLike() (token.Token, bool) {
	b, ok := tz.peekByte()
	if !ok {
		return tz.fail(diag.CodeUnterminatedTag), false
	}

	switch {
	case b == '!':
		return tz.readBang()
	case b == '?':
		tz.readByte()
		tz.skipProcessingInstruction()
		return token.Token{}, true
	}

	isEnd := false
	if b == '/' {
		tz.readByte()
		isEnd = true
	}

	name, ok := tz.readName()
	if !ok {
		if name == "" {
			return tz.fail(diag.CodeUnterminatedTag), false
		}
		return tz.fail(diag.CodeNameTooLong, name), false
	}

	attrs, selfClosing, err := tz.readTagRemainder()
	if err {
		return tz.cur, false
	}

	if isEnd {
		if selfClosing {
			return tz.fail(diag.CodeEndTagSelfClosing, name), false
		}
		return token.Token{Kind: token.EndTag, EndName: name}, false
	}
	if selfClosing {
		return token.Token{Kind: token.EmptyTag, Name: name, Attrs: attrs}, false
	}
	return token.Token{Kind: token.StartTag, Name: name, Attrs: attrs}, false
}

// readBang handles "<!--...-->" comments and any other "<!...>" construct,
// both consumed transparently.
func (tz *Tokenizer) readBang() (token.Token, bool) {
	tz.readByte() // consume '!'
	if tz.tryConsume("--") {
		if !tz.skipComment() {
			return tz.fail(diag.CodeUnterminatedComment), false
		}
		return token.Token{Kind: token.Comment}, true
	}
	tz.skipUntilGT()
	return token.Token{}, true
}

// tryConsume consumes literal if the next len(literal) bytes match it.
func (tz *Tokenizer) tryConsume(literal string) bool {
	for i := 0; i < len(literal); i++ {
		b, ok := tz.peekByte()
		if !ok || b != literal[i] {
			// push back whatever we matched so far: since we only peek
			// (not consume) until a mismatch, nothing to unwind except
			// what we've already consumed in this loop.
			for j := 0; j < i; j++ {
				tz.unreadByte()
			}
			return false
		}
		tz.readByte()
	}
	return true
}

// skipComment consumes up to and including the terminating "-->"; nested
// dashes do not terminate unless immediately followed by '>'.
func (tz *Tokenizer) skipComment() bool {
	dashRun := 0
	for {
		b, ok := tz.readByte()
		if !ok {
			return false
		}
		if b == '-' {
			dashRun++
			continue
		}
		if b == '>' && dashRun >= 2 {
			return true
		}
		dashRun = 0
	}
}

func (tz *Tokenizer) skipUntilGT() {
	for {
		b, ok := tz.readByte()
		if !ok || b == '>' {
			return
		}
	}
}

func (tz *Tokenizer) skipProcessingInstruction() {
	last := byte(0)
	for {
		b, ok := tz.readByte()
		if !ok {
			return
		}
		if b == '>' && last == '?' {
			return
		}
		last = b
	}
}

// readTagRemainder parses attributes up to the terminating '>', tracking
// the byte immediately preceding it to detect self-closing: if the last
// non-'>' character before the closing '>' is '/', the tag is empty.
func (tz *Tokenizer) readTagRemainder() ([]token.Attribute, bool, bool) {
	var attrs []token.Attribute
	lastByte := byte(0)

	for {
		tz.skipWhitespace()
		b, ok := tz.peekByte()
		if !ok {
			tz.fail(diag.CodeUnterminatedTag)
			return nil, false, true
		}
		if b == '>' {
			tz.readByte()
			return attrs, lastByte == '/', false
		}
		if b == '/' {
			tz.readByte()
			lastByte = '/'
			continue
		}
		if !isNameStart(b) {
			// Unrecognized byte inside a tag that isn't a name start,
			// whitespace, '/' or '>': treat as unterminated rather than
			// looping forever.
			tz.fail(diag.CodeUnterminatedTag)
			return nil, false, true
		}

		name, ok := tz.readName()
		if !ok {
			tz.fail(diag.CodeNameTooLong, name)
			return nil, false, true
		}
		lastByte = name[len(name)-1]

		tz.skipWhitespace()
		eq, ok := tz.peekByte()
		if !ok || eq != '=' {
			tz.fail(diag.CodeUnterminatedTag)
			return nil, false, true
		}
		tz.readByte()
		lastByte = '='
		tz.skipWhitespace()

		quote, ok := tz.peekByte()
		if !ok || (quote != '\'' && quote != '"') {
			tz.fail(diag.CodeUnterminatedAttr)
			return nil, false, true
		}
		tz.readByte()

		var valueBuf bytes.Buffer
		closed := false
		for {
			vb, ok := tz.readByte()
			if !ok {
				break
			}
			if vb == quote {
				closed = true
				break
			}
			valueBuf.WriteByte(vb)
		}
		if !closed {
			tz.fail(diag.CodeUnterminatedAttr)
			return nil, false, true
		}
		lastByte = quote

		if len(attrs) >= token.MaxAttributes {
			tz.fail(diag.CodeTooManyAttributes, name)
			return nil, false, true
		}
		attrs = append(attrs, token.Attribute{Name: name, Value: valueBuf.Bytes()})
	}
}
