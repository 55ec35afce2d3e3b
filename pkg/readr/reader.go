package readr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dselivanov/readr/internal/stream"
	"github.com/dselivanov/readr/internal/textenc"
	"github.com/dselivanov/readr/internal/tokenizer"
)

// reader drives one parse: skip and header handling, a sampling phase
// that materializes up to GuessMax rows to guess column types, a replay
// of the sample into the collectors and a streaming phase for the rest.
type reader struct {
	tok  *tokenizer.Tokenizer
	opts Options
	file string
	log  *ProblemLog
	cols []*collector
}

func newReader(st *stream.Stream, file string, opts Options) *reader {
	return &reader{
		tok:  tokenizer.New(st, opts.tokenizerOptions()),
		opts: opts,
		file: file,
		log:  newProblemLog(opts.MaxProblems),
	}
}

func (r *reader) read() (*Result, error) {
	for i := 0; i < r.opts.Skip; i++ {
		if _, ok := r.tok.NextRecord(); !ok {
			break
		}
	}

	var names []string
	var firstData []fieldValue
	switch {
	case len(r.opts.ColumnNames) > 0:
		// Explicit names define the column count; a header row is still
		// consumed unless the source has none.
		names = append([]string(nil), r.opts.ColumnNames...)
		if !r.opts.NoHeader {
			r.tok.NextRecord()
		}
	case !r.opts.NoHeader:
		toks, ok := r.tok.NextRecord()
		if !ok {
			return r.finishEmpty()
		}
		names = r.headerNames(toks)
	default:
		toks, ok := r.tok.NextRecord()
		if !ok {
			return r.finishEmpty()
		}
		firstData = r.sampleRecord(toks)
		names = defaultNames(len(firstData))
	}
	ncol := len(names)

	// Sampling phase. Rows are kept as decoded strings so they can be
	// guessed from and then replayed into the typed collectors.
	sample := make([][]fieldValue, 0, 16)
	if firstData != nil {
		sample = append(sample, firstData)
	}
	for len(sample) < r.opts.GuessMax && (r.opts.NMax <= 0 || len(sample) < r.opts.NMax) {
		toks, ok := r.tok.NextRecord()
		if !ok {
			break
		}
		sample = append(sample, r.sampleRecord(toks))
	}

	r.cols = make([]*collector, ncol)
	colSample := make([]fieldValue, 0, len(sample))
	for i := 0; i < ncol; i++ {
		colSample = colSample[:0]
		for _, rec := range sample {
			if i < len(rec) {
				colSample = append(colSample, rec[i])
			}
		}
		typ := TypeGuess
		if i < len(r.opts.ColumnTypes) {
			typ = r.opts.ColumnTypes[i]
		}
		if typ == TypeGuess {
			typ = guessType(colSample, r.opts.Locale, r.opts.TrueValues, r.opts.FalseValues)
			r.opts.Logger.Debugf("column %s guessed as %s", names[i], typ)
		}
		if typ == TypeSkip {
			continue
		}
		r.cols[i] = newCollector(typ, r.opts.Locale, r.opts.TrueValues, r.opts.FalseValues, r.opts.FactorLevels)
	}

	for i, rec := range sample {
		r.consumeRow(rec, i+1)
	}
	row := len(sample)

	// Streaming phase: the remaining records flow straight through
	// without being materialized.
	scratch := make([]fieldValue, 0, ncol)
	for r.opts.NMax <= 0 || row < r.opts.NMax {
		toks, ok := r.tok.NextRecord()
		if !ok {
			break
		}
		row++
		scratch = scratch[:0]
		for i, tok := range toks {
			typ := TypeSkip
			if i < ncol && r.cols[i] != nil {
				typ = r.cols[i].typ
			}
			scratch = append(scratch, r.fieldOf(tok, typ))
		}
		r.consumeRow(scratch, row)
	}

	if err := r.tok.Err(); err != nil {
		return nil, &StreamError{Path: r.file, Err: err}
	}
	r.tok.Release()

	r.opts.Logger.Debugf("read %d rows in %d columns", row, ncol)
	if r.log.Total() > 0 {
		r.opts.Logger.Printf("%d parsing problems, call Problems() for details", r.log.Total())
	}

	res := &Result{Rows: row, Log: r.log}
	for i, c := range r.cols {
		if c == nil {
			continue
		}
		res.Columns = append(res.Columns, Column{Name: names[i], Type: c.typ, c: c})
	}
	return res, nil
}

// finishEmpty ends a parse that ran out of input before the structure of
// the table was known.
func (r *reader) finishEmpty() (*Result, error) {
	if err := r.tok.Err(); err != nil {
		return nil, &StreamError{Path: r.file, Err: err}
	}
	r.tok.Release()
	return &Result{Log: r.log}, nil
}

// consumeRow feeds one record into the collectors, padding short records
// with missing values and dropping fields beyond the column count.
func (r *reader) consumeRow(rec []fieldValue, row int) {
	rec = r.checkWidth(rec, row)
	for i, c := range r.cols {
		if c == nil {
			continue
		}
		f := fieldValue{missing: true}
		if i < len(rec) {
			f = rec[i]
		}
		r.appendValue(c, f, row, i)
	}
}

// checkWidth reports ragged records. A kept blank line is not ragged: it
// reads as a full row of missing values.
func (r *reader) checkWidth(rec []fieldValue, row int) []fieldValue {
	ncol := len(r.cols)
	if len(rec) == ncol {
		return rec
	}
	if len(rec) == 1 && rec[0].missing && rec[0].s == "" {
		return nil
	}
	r.log.add(Problem{
		Row:      row,
		Expected: fmt.Sprintf("%d columns", ncol),
		Actual:   fmt.Sprintf("%d columns", len(rec)),
		File:     r.file,
	})
	if len(rec) > ncol {
		return rec[:ncol]
	}
	return rec
}

// appendValue converts one field, logging the problems the conversion
// reports. An unterminated quote was already tokenized into a malformed
// field; its partial content still flows into the column.
func (r *reader) appendValue(c *collector, f fieldValue, row, col int) {
	if f.mal {
		r.log.add(Problem{
			Row:      row,
			Col:      col + 1,
			Expected: "a closing quote",
			Actual:   strings.Clone(f.s),
			File:     r.file,
		})
	}
	if expected, ok := c.append(f.s, f.missing, f.bad); !ok {
		r.log.add(Problem{
			Row:      row,
			Col:      col + 1,
			Expected: expected,
			Actual:   strings.Clone(f.s),
			File:     r.file,
		})
	}
}

// fieldOf decodes one token for the streaming phase. Values heading into
// non-character columns under a UTF-8 locale are viewed in place instead
// of copied; everything else goes through the locale's encoding.
func (r *reader) fieldOf(tok tokenizer.Token, typ Type) fieldValue {
	f := fieldValue{
		missing: tok.Kind == tokenizer.Missing,
		mal:     tok.Kind == tokenizer.Malformed,
	}
	if f.missing {
		f.s = unsafeString(tok.Data)
		return f
	}
	if typ == TypeCharacter || !r.opts.Locale.encoding.IsUTF8() {
		f.s, f.bad = textenc.Decode(tok.Data, r.opts.Locale.encoding)
	} else {
		f.s = unsafeString(tok.Data)
	}
	return f
}

// sampleRecord decodes one record into retained strings for the
// sampling phase.
func (r *reader) sampleRecord(toks []tokenizer.Token) []fieldValue {
	rec := make([]fieldValue, len(toks))
	for i, tok := range toks {
		f := fieldValue{
			missing: tok.Kind == tokenizer.Missing,
			mal:     tok.Kind == tokenizer.Malformed,
		}
		if f.missing {
			f.s = string(tok.Data)
		} else {
			f.s, f.bad = textenc.Decode(tok.Data, r.opts.Locale.encoding)
		}
		rec[i] = f
	}
	return rec
}

// headerNames decodes the header record, naming empty fields X1, X2, ...
func (r *reader) headerNames(toks []tokenizer.Token) []string {
	names := make([]string, len(toks))
	for i, tok := range toks {
		s, _ := textenc.Decode(tok.Data, r.opts.Locale.encoding)
		if s == "" {
			s = defaultName(i)
		}
		names[i] = s
	}
	return names
}

func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = defaultName(i)
	}
	return names
}

func defaultName(i int) string {
	return "X" + strconv.Itoa(i+1)
}
