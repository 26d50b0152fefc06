// Package meshio provides the I/O abstraction every format codec loads
// and saves through: a small seekable-stream interface plus buffered
// line/byte helpers and little-endian binary primitives, so codecs never
// touch os.File (or any other concrete transport) directly.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Whence selects the reference point for a Seek call.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)

// IO is the stream abstraction every codec reads from and writes to.
// This module ships OSFileIO, Reader, Writer and MemIO; the interface
// also lets a caller load from or save to a network stream or an archive
// member by supplying their own.
type IO interface {
	Read(buf []byte) (n int, err error)
	Write(buf []byte) (n int, err error)
	Seek(offset int64, whence Whence) (abs int64, err error)
	Close() error
}

// OSFileIO adapts an *os.File to IO.
type OSFileIO struct {
	f    *os.File
	path string
}

// OpenFile opens path for reading.
func OpenFile(path string) (*OSFileIO, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &OSFileIO{f: f, path: path}, nil
}

// CreateFile creates (or truncates) path for writing.
func CreateFile(path string) (*OSFileIO, error) {

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &OSFileIO{f: f, path: path}, nil
}

// Path returns the filesystem path this IO was opened from, satisfying
// the optional PathIO interface codecs use to locate sibling files (an
// OBJ's companion MTL, a glTF's external .bin buffer).
func (o *OSFileIO) Path() string { return o.path }

// PathIO is implemented by an IO backed by a real filesystem path. Codecs
// that must create or locate a sibling file (OBJ's MTL companion) use
// this to derive that sibling's path; an IO without a path (an in-memory
// Reader/Writer) simply does not support that feature.
type PathIO interface {
	Path() string
}

func (o *OSFileIO) Read(buf []byte) (int, error)  { return o.f.Read(buf) }
func (o *OSFileIO) Write(buf []byte) (int, error) { return o.f.Write(buf) }
func (o *OSFileIO) Close() error                  { return o.f.Close() }

func (o *OSFileIO) Seek(offset int64, whence Whence) (int64, error) {

	var w int
	switch whence {
	case SeekSet:
		w = io.SeekStart
	case SeekCur:
		w = io.SeekCurrent
	case SeekEnd:
		w = io.SeekEnd
	default:
		return 0, fmt.Errorf("meshio: invalid whence %d", whence)
	}
	return o.f.Seek(offset, w)
}

// Reader wraps any io.Reader as IO. Seek forwards to the wrapped reader
// when it is an io.Seeker and returns ErrNotSeekable otherwise; Write
// fails and Close is a no-op. Used to load from an in-memory []byte.
type Reader struct {
	r io.Reader
}

// ErrNotSeekable is returned by Reader.Seek: a plain io.Reader cannot
// rewind, which the format dispatcher's trial-and-rewind loop requires.
// Wrap an io.ReadSeeker (e.g. bytes.NewReader) instead if dispatch needs
// to run.
var ErrNotSeekable = fmt.Errorf("meshio: underlying reader is not seekable")

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (r *Reader) Read(buf []byte) (int, error) { return r.r.Read(buf) }
func (r *Reader) Write([]byte) (int, error) {
	return 0, fmt.Errorf("meshio: reader is read-only")
}
func (r *Reader) Close() error { return nil }

func (r *Reader) Seek(offset int64, whence Whence) (int64, error) {

	if s, ok := r.r.(io.Seeker); ok {
		var w int
		switch whence {
		case SeekSet:
			w = io.SeekStart
		case SeekCur:
			w = io.SeekCurrent
		case SeekEnd:
			w = io.SeekEnd
		}
		return s.Seek(offset, w)
	}
	return 0, ErrNotSeekable
}

// Writer wraps any io.Writer as a write-only IO, for Save/SaveWriter callers.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) Read([]byte) (int, error) {
	return 0, fmt.Errorf("meshio: writer is write-only")
}
func (w *Writer) Write(buf []byte) (int, error) { return w.w.Write(buf) }
func (w *Writer) Close() error                   { return nil }
func (w *Writer) Seek(int64, Whence) (int64, error) {
	return 0, fmt.Errorf("meshio: writer is not seekable")
}

// MemIO is a growable in-memory buffer satisfying IO: a caller holding a
// scene's bytes already in memory (a network download, an embedded
// asset) can Load/Save against it without a temporary file.
type MemIO struct {
	buf []byte
	pos int64
}

// NewMemIO returns a MemIO seeded with data (copied). A nil or empty
// data starts an empty, growable buffer ready for Save.
func NewMemIO(data []byte) *MemIO {

	m := &MemIO{}
	if len(data) > 0 {
		m.buf = append(m.buf, data...)
	}
	return m
}

// Bytes returns the buffer's current contents. The caller must not
// mutate the returned slice.
func (m *MemIO) Bytes() []byte { return m.buf }

func (m *MemIO) Read(p []byte) (int, error) {

	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemIO) Write(p []byte) (int, error) {

	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	n := copy(m.buf[m.pos:end], p)
	m.pos += int64(n)
	return n, nil
}

func (m *MemIO) Seek(offset int64, whence Whence) (int64, error) {

	var base int64
	switch whence {
	case SeekSet:
		base = 0
	case SeekCur:
		base = m.pos
	case SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, fmt.Errorf("meshio: invalid whence %d", whence)
	}
	pos := base + offset
	if pos < 0 {
		return 0, fmt.Errorf("meshio: negative seek position")
	}
	m.pos = pos
	return pos, nil
}

func (m *MemIO) Close() error { return nil }

// BufIO layers buffered byte/line helpers over an IO, mirroring the
// original library's fgetc/fgets/fputc/fputs/fprintf helpers built on
// its raw read/write function pointers.
type BufIO struct {
	io  IO
	br  *bufio.Reader
	bw  *bufio.Writer
}

// NewBufIO wraps io with buffered read and write helpers.
func NewBufIO(rw IO) *BufIO {

	return &BufIO{
		io: rw,
		br: bufio.NewReader(rw),
		bw: bufio.NewWriter(rw),
	}
}

// Getc reads one byte, returning (-1, nil) on EOF like the original's
// fgetc rather than propagating io.EOF as an error.
func (b *BufIO) Getc() (int, error) {

	c, err := b.br.ReadByte()
	if err == io.EOF {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return int(c), nil
}

// Gets reads up to len(buf)-1 bytes, stopping at (and including) the
// first newline, and always null-terminating the used portion. Returns
// the slice of buf actually filled (including any trailing newline), or
// nil if EOF was hit before any byte was read.
func (b *BufIO) Gets(buf []byte) ([]byte, error) {

	if len(buf) == 0 {
		return nil, nil
	}
	n := 0
	for n < len(buf)-1 {
		c, err := b.br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		buf[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	if n == 0 {
		return nil, nil
	}
	buf[n] = 0
	return buf[:n], nil
}

// Putc writes one byte.
func (b *BufIO) Putc(c byte) error {

	return b.bw.WriteByte(c)
}

// Puts writes s verbatim.
func (b *BufIO) Puts(s string) error {

	_, err := b.bw.WriteString(s)
	return err
}

// Printf formats and writes, the buffered analogue of the original's
// auto-growing fprintf.
func (b *BufIO) Printf(format string, args ...interface{}) error {

	_, err := fmt.Fprintf(b.bw, format, args...)
	return err
}

// Flush flushes buffered writes to the underlying IO.
func (b *BufIO) Flush() error {

	return b.bw.Flush()
}

// Close flushes any pending writes and closes the underlying IO.
func (b *BufIO) Close() error {

	if err := b.bw.Flush(); err != nil {
		b.io.Close()
		return err
	}
	return b.io.Close()
}
