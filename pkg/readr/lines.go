package readr

import (
	"github.com/dselivanov/readr/internal/stream"
	"github.com/dselivanov/readr/internal/textenc"
)

// LinesOptions configures ReadLines. The zero value reads every line.
type LinesOptions struct {
	// Skip drops this many lines from the start.
	// Default: 0
	Skip int

	// NMax caps the number of lines returned. Zero or negative reads
	// everything.
	// Default: 0
	NMax int

	// Locale supplies the text encoding lines are decoded from.
	// Default: DefaultLocale()
	Locale *Locale
}

// ReadLines returns the source's raw lines, bypassing tokenization and
// typing. Lines end at \n, \r\n or a lone \r; the terminator is not part
// of the line, and a final line without one still counts.
func ReadLines(src Source, opts LinesOptions) ([]string, error) {
	if opts.Skip < 0 {
		return nil, &OptionsError{Field: "Skip", Message: "must not be negative"}
	}
	if opts.Locale == nil {
		opts.Locale = DefaultLocale()
	}
	st, err := src.open()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	var lines []string
	buf := make([]byte, 0, 128)
	seen := 0
	emit := func() {
		seen++
		if seen > opts.Skip {
			s, _ := textenc.Decode(buf, opts.Locale.encoding)
			lines = append(lines, s)
		}
		buf = buf[:0]
	}
	for opts.NMax <= 0 || len(lines) < opts.NMax {
		c := st.Get()
		if c == stream.EOF {
			if len(buf) > 0 {
				emit()
			}
			break
		}
		switch c {
		case '\n':
			emit()
		case '\r':
			if st.Peek() == '\n' {
				st.Get()
			}
			emit()
		default:
			buf = append(buf, byte(c))
		}
	}
	if err := st.Err(); err != nil {
		return nil, &StreamError{Path: src.name(), Err: err}
	}
	return lines, nil
}
