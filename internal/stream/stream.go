// Package stream provides the byte-source abstraction the tokenizer reads
// from. A Stream serves one byte at a time through Get/Peek, reports the
// line and column of the byte about to be read, and signals end of input
// with the EOF sentinel. Sources may be in-memory buffers or arbitrary
// readers; file sources are opened through Open and OpenMmap.
package stream

import (
	"io"

	"github.com/pkg/errors"
)

// EOF is returned by Get and Peek once the source is exhausted. It is
// negative so it can never collide with a valid byte value.
const EOF = -1

const defaultBufSize = 32 * 1024

// Stream reads bytes sequentially from an in-memory buffer or an io.Reader.
// The zero value is not usable; construct with New, NewString, NewReader,
// Open, or OpenMmap. A Stream is not safe for concurrent use.
type Stream struct {
	r       io.Reader // nil for in-memory sources and after the reader is drained
	buf     []byte    // current window; for in-memory sources, the whole input
	scratch []byte    // backing array for reader windows
	pos     int       // next byte within buf
	off     int64     // absolute offset of the next byte
	line    int       // 1-based line of the next byte
	col     int       // 1-based byte column of the next byte
	err     error     // first read error, surfaced through Err
	closers []io.Closer
	release func() // munmap hook
	closed  bool
}

// New returns a Stream reading from data. The Stream keeps a reference to
// data; the caller must not modify it while the Stream is in use.
func New(data []byte) *Stream {
	s := &Stream{buf: data, line: 1, col: 1}
	s.skipBOM()
	return s
}

// NewString returns a Stream reading from s.
func NewString(s string) *Stream {
	return New([]byte(s))
}

// NewReader returns a buffered Stream reading from r. Peak memory stays
// bounded by the internal window regardless of how much r produces. The
// Stream does not close r.
func NewReader(r io.Reader) *Stream {
	s := &Stream{r: r, scratch: make([]byte, defaultBufSize), line: 1, col: 1}
	s.skipBOM()
	return s
}

// Get returns the next byte and advances the cursor, or EOF.
func (s *Stream) Get() int {
	b := s.Peek()
	if b == EOF {
		return EOF
	}
	s.pos++
	s.off++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

// Peek returns the next byte without advancing, or EOF.
func (s *Stream) Peek() int {
	if s.pos >= len(s.buf) && !s.refill() {
		return EOF
	}
	return int(s.buf[s.pos])
}

// Pos returns the 1-based line and byte column of the byte Peek would
// return.
func (s *Stream) Pos() (line, col int) {
	return s.line, s.col
}

// Offset returns the absolute byte offset of the byte Peek would return.
// The UTF-8 byte-order mark, when present, is counted.
func (s *Stream) Offset() int64 {
	return s.off
}

// Err returns the first underlying read error, if any. Get and Peek report
// EOF once an error occurs; callers distinguish true end of input from a
// failed read by checking Err.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the underlying file handle and mapping, if any. It is
// idempotent and a no-op for in-memory sources.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.release != nil {
		s.release()
		s.release = nil
	}
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "closing source")
		}
	}
	s.closers = nil
	return first
}

// refill loads the next window from the reader. It reports whether at
// least one byte is available.
func (s *Stream) refill() bool {
	if s.r == nil || s.err != nil {
		return false
	}
	for tries := 0; tries < 100; tries++ {
		n, err := s.r.Read(s.scratch)
		if n > 0 {
			s.buf = s.scratch[:n]
			s.pos = 0
			if err == io.EOF {
				s.r = nil
			} else if err != nil {
				s.err = err
				s.r = nil
			}
			return true
		}
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			s.r = nil
			return false
		}
	}
	s.err = io.ErrNoProgress
	s.r = nil
	return false
}

// skipBOM consumes a leading UTF-8 byte-order mark so the first Get returns
// content. Line and column are unaffected.
func (s *Stream) skipBOM() {
	const bom = "\xef\xbb\xbf"
	for len(s.buf)-s.pos < len(bom) && s.r != nil && s.err == nil {
		avail := len(s.buf) - s.pos
		copy(s.scratch, s.buf[s.pos:])
		s.buf = s.scratch[:avail]
		s.pos = 0
		n, err := s.r.Read(s.scratch[avail:])
		s.buf = s.scratch[:avail+n]
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			s.r = nil
		} else if n == 0 {
			break
		}
	}
	if len(s.buf)-s.pos >= len(bom) && string(s.buf[s.pos:s.pos+len(bom)]) == bom {
		s.pos += len(bom)
		s.off += int64(len(bom))
	}
}
