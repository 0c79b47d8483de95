// Package container implements the legacy hypertext container file format:
// a single file whose contents are a tree of embedded sub-files, each
// carrying its own name, a declared 32-bit file type, and marked-up body
// text. Callers only ever open a Writer, open and close nested sub-files,
// and write text/plain/newline into whichever is innermost; the
// byte-level record format below is this collaborator's own concern.
package container

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// magic identifies a container file; version allows the record layout to
// change without breaking detection of the format itself.
var magic = [4]byte{'X', 'M', 'C', 'N'}

const formatVersion uint32 = 1

// PageFileType is the 32-bit file type every text page sub-file declares.
const PageFileType uint32 = 0xFFF

// RootName is the name of the container's entry sub-file.
const RootName = "!Root"

type frame struct {
	name     string
	filetype uint32
	depth    int
	body     bytes.Buffer
}

// Writer accumulates a tree of sub-files and serializes each one, with an
// explicit depth, as soon as it is closed, so nested sub-files are written
// before their parent (post-order).
type Writer struct {
	w     *bufio.Writer
	stack []*frame
}

// Open writes the container header and returns a Writer ready for
// sub_open.
func Open(w io.Writer) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(bw, binary.BigEndian, formatVersion); err != nil {
		return nil, err
	}
	return &Writer{w: bw}, nil
}

// SubOpen begins a new embedded sub-file nested under whichever sub-file is
// currently open (or at the root, if none is).
func (c *Writer) SubOpen(name string, filetype uint32) {
	c.stack = append(c.stack, &frame{name: name, filetype: filetype, depth: len(c.stack)})
}

// WriteText appends already target-escaped marked-up body text to the
// currently open sub-file.
func (c *Writer) WriteText(b []byte) error {
	return c.currentWrite(b)
}

// WritePlain appends printf-style formatted text to the currently open
// sub-file.
func (c *Writer) WritePlain(format string, args ...any) error {
	return c.currentWrite([]byte(fmt.Sprintf(format, args...)))
}

// WriteNewline appends a single line break to the currently open sub-file.
func (c *Writer) WriteNewline() error {
	return c.currentWrite([]byte{'\n'})
}

func (c *Writer) currentWrite(b []byte) error {
	if len(c.stack) == 0 {
		return fmt.Errorf("xmlman: container write_text with no sub-file open")
	}
	_, err := c.stack[len(c.stack)-1].body.Write(b)
	return err
}

// SubClose finishes the innermost open sub-file, serializing its record
// (depth, name, file type, body) to the container immediately.
func (c *Writer) SubClose() error {
	if len(c.stack) == 0 {
		return fmt.Errorf("xmlman: container sub_close with no sub-file open")
	}
	f := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return writeRecord(c.w, f)
}

func writeRecord(w io.Writer, f *frame) error {
	nameBytes := []byte(f.name)
	if err := binary.Write(w, binary.BigEndian, uint32(f.depth)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, f.filetype); err != nil {
		return err
	}
	body := f.body.Bytes()
	if err := binary.Write(w, binary.BigEndian, uint32(len(body))); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// Close flushes any buffered bytes. Every sub-file must already be closed;
// Close does not implicitly close a dangling sub_open.
func (c *Writer) Close() error {
	if len(c.stack) != 0 {
		return fmt.Errorf("xmlman: container closed with %d sub-file(s) still open", len(c.stack))
	}
	return c.w.Flush()
}
