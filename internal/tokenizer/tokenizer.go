// Package tokenizer splits a byte stream into field tokens per record,
// applying RFC4180-style quoting with doubled-quote escaping. Embedded
// line breaks inside quoted fields do not terminate a record, CRLF and
// lone LF (or CR) both do, and a missing trailing terminator is accepted.
// Structural damage never aborts tokenization: an unterminated quoted
// field is emitted as a Malformed token carrying the partial content.
package tokenizer

import (
	"github.com/dselivanov/readr/internal/stream"
)

// Options configures the tokenizer. The zero value is not a working
// configuration; start from DefaultOptions.
type Options struct {
	Delim byte // field delimiter
	Quote byte // quote byte; 0 disables quoting
	NA    []string

	TrimWS          bool // trim surrounding blanks from unquoted fields
	QuotedNA        bool // quoted content matching a marker is also missing
	EscapeBackslash bool // backslash makes the following byte literal
	Comment         byte // skip records starting with this byte; 0 disables
	SkipEmptyRows   bool // skip records that contain nothing at all
}

// DefaultOptions returns the standard comma/double-quote configuration
// with "" and "NA" as missing-value markers.
func DefaultOptions() Options {
	return Options{
		Delim:         ',',
		Quote:         '"',
		NA:            []string{"", "NA"},
		TrimWS:        true,
		QuotedNA:      true,
		SkipEmptyRows: true,
	}
}

type state int

const (
	fieldStart state = iota
	inField
	inQuoted
	quoteInQuoted
)

// Tokenizer reads records from a Stream one at a time. Not safe for
// concurrent use.
type Tokenizer struct {
	src  *stream.Stream
	opts Options
	rec  *record
	row  int
	done bool
}

// New returns a Tokenizer reading from src. Call Release when done to
// return the internal record buffer to the pool.
func New(src *stream.Stream, opts Options) *Tokenizer {
	return &Tokenizer{src: src, opts: opts, rec: getRecord()}
}

// Release returns the internal buffers to the pool. The Tokenizer and any
// Tokens it produced must not be used afterwards.
func (t *Tokenizer) Release() {
	if t.rec != nil {
		putRecord(t.rec)
		t.rec = nil
	}
	t.done = true
}

// Err returns the first underlying read error, if any.
func (t *Tokenizer) Err() error {
	return t.src.Err()
}

// NextRecord reads one record and returns its field tokens in order. The
// tokens alias the tokenizer's record buffer and are valid only until the
// next call. It returns false once the source is exhausted.
func (t *Tokenizer) NextRecord() ([]Token, bool) {
	if t.done || t.rec == nil {
		return nil, false
	}
	t.skipIgnored()
	toks, ok := t.readRecord()
	if !ok {
		t.done = true
	}
	return toks, ok
}

// skipIgnored consumes comment lines and, when configured, empty rows.
func (t *Tokenizer) skipIgnored() {
	for {
		c := t.src.Peek()
		switch {
		case t.opts.Comment != 0 && c == int(t.opts.Comment):
			t.skipLine()
		case t.opts.SkipEmptyRows && c == '\n':
			t.src.Get()
		case t.opts.SkipEmptyRows && c == '\r':
			t.src.Get()
			if t.src.Peek() == '\n' {
				t.src.Get()
			}
		default:
			return
		}
	}
}

func (t *Tokenizer) skipLine() {
	for {
		c := t.src.Get()
		if c == stream.EOF || c == '\n' {
			return
		}
		if c == '\r' {
			if t.src.Peek() == '\n' {
				t.src.Get()
			}
			return
		}
	}
}

func (t *Tokenizer) readRecord() ([]Token, bool) {
	if t.src.Peek() == stream.EOF {
		return nil, false
	}
	r := t.rec
	r.buf = r.buf[:0]
	r.tokens = r.tokens[:0]

	st := fieldStart
	start := 0      // current field start within r.buf
	quoted := false // current field passed through quotes

recordLoop:
	for {
		c := t.src.Get()
		switch st {
		case fieldStart:
			switch {
			case t.opts.Quote != 0 && c == int(t.opts.Quote):
				st = inQuoted
				quoted = true
			case c == int(t.opts.Delim):
				t.emitField(start, quoted, false)
			case c == '\n':
				t.emitField(start, quoted, false)
				break recordLoop
			case c == '\r':
				t.consumeLF()
				t.emitField(start, quoted, false)
				break recordLoop
			case c == stream.EOF:
				t.emitField(start, quoted, false)
				break recordLoop
			default:
				t.accumulate(c)
				st = inField
			}
		case inField:
			switch {
			case c == int(t.opts.Delim):
				t.emitField(start, quoted, false)
				start = len(r.buf)
				quoted = false
				st = fieldStart
			case c == '\n':
				t.emitField(start, quoted, false)
				break recordLoop
			case c == '\r':
				t.consumeLF()
				t.emitField(start, quoted, false)
				break recordLoop
			case c == stream.EOF:
				t.emitField(start, quoted, false)
				break recordLoop
			default:
				t.accumulate(c)
			}
		case inQuoted:
			switch {
			case c == int(t.opts.Quote):
				st = quoteInQuoted
			case c == stream.EOF:
				t.emitField(start, quoted, true)
				break recordLoop
			default:
				// embedded delimiters and line breaks are content here
				if t.opts.EscapeBackslash && c == '\\' {
					n := t.src.Get()
					if n == stream.EOF {
						r.buf = append(r.buf, '\\')
						t.emitField(start, quoted, true)
						break recordLoop
					}
					r.buf = append(r.buf, byte(n))
				} else {
					r.buf = append(r.buf, byte(c))
				}
			}
		case quoteInQuoted:
			switch {
			case c == int(t.opts.Quote):
				// doubled quote: one literal quote, still inside the field
				r.buf = append(r.buf, t.opts.Quote)
				st = inQuoted
			case c == int(t.opts.Delim):
				t.emitField(start, quoted, false)
				start = len(r.buf)
				quoted = false
				st = fieldStart
			case c == '\n':
				t.emitField(start, quoted, false)
				break recordLoop
			case c == '\r':
				t.consumeLF()
				t.emitField(start, quoted, false)
				break recordLoop
			case c == stream.EOF:
				t.emitField(start, quoted, false)
				break recordLoop
			default:
				// stray content after the closing quote; keep it
				r.buf = append(r.buf, byte(c))
				st = inField
			}
		}
	}

	t.row++
	return r.tokens, true
}

// accumulate appends one unquoted content byte, honoring backslash
// escaping when enabled.
func (t *Tokenizer) accumulate(c int) {
	if t.opts.EscapeBackslash && c == '\\' {
		n := t.src.Get()
		if n == stream.EOF {
			t.rec.buf = append(t.rec.buf, '\\')
			return
		}
		t.rec.buf = append(t.rec.buf, byte(n))
		return
	}
	t.rec.buf = append(t.rec.buf, byte(c))
}

// emitField classifies r.buf[start:] and appends the resulting token.
func (t *Tokenizer) emitField(start int, quoted, malformed bool) {
	r := t.rec
	end := len(r.buf)
	if !quoted && t.opts.TrimWS {
		for start < end && isBlank(r.buf[start]) {
			start++
		}
		for end > start && isBlank(r.buf[end-1]) {
			end--
		}
	}
	data := r.buf[start:end]
	kind := Plain
	switch {
	case malformed:
		kind = Malformed
	case quoted:
		kind = Quoted
		if t.opts.QuotedNA && t.isNA(data) {
			kind = Missing
		}
	default:
		if t.isNA(data) {
			kind = Missing
		}
	}
	r.tokens = append(r.tokens, Token{Data: data, Kind: kind, Row: t.row, Col: len(r.tokens)})
}

func (t *Tokenizer) consumeLF() {
	if t.src.Peek() == '\n' {
		t.src.Get()
	}
}

func (t *Tokenizer) isNA(data []byte) bool {
	for _, na := range t.opts.NA {
		if string(data) == na {
			return true
		}
	}
	return false
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
