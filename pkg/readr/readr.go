// Package readr reads delimited text (CSV and friends) into typed,
// locale-aware columns.
//
// A parse streams the source through a quoting state machine, guesses a
// type for every column from a sample of rows (or takes declared types),
// and converts each field under locale rules: decimal and grouping
// marks, month and day names, timezones and text encoding. A value that
// does not convert never aborts the parse; it becomes a missing value
// and an entry in the problem log, so the caller always gets either a
// fatal error before any rows or a complete result with its full list
// of problems.
//
// # Parsing APIs
//
// The package provides one parsing entry point and two shorthands:
//
//   - Parse(Source, Options) - parses any source
//   - ParseFile(path, Options) - shorthand for Parse(FromFile(path), ...)
//   - ParseString(input, Options) - shorthand for Parse(FromString(input), ...)
//
// A Source names where the bytes come from: FromFile streams a file
// with bounded memory, decompressing .gz and .lz4 files transparently;
// FromMmap maps the file instead; FromString and FromBytes read memory;
// FromReader wraps any io.Reader.
//
// # Thread Safety
//
// Every call builds its own parse state, so all functions are safe for
// concurrent use. Locale values are immutable and may be shared freely;
// a Result belongs to its caller.
//
//	// Safe: concurrent parsing with a shared locale
//	loc, _ := readr.NewLocale(readr.LocaleOptions{Language: "fr"})
//	go func() { readr.ParseFile("a.csv", readr.Options{Locale: loc}) }()
//	go func() { readr.ParseFile("b.csv", readr.Options{Locale: loc}) }()
//
// # Example
//
//	res, err := readr.ParseString("name,age\nAlice,30\nBob,25", readr.Options{})
//	if err != nil {
//	    // handle error
//	}
//	age, _ := res.Column("age")
//	fmt.Println(age.Type, age.Ints()) // integer [30 25]
package readr

import (
	"io"

	"github.com/dselivanov/readr/internal/stream"
)

// Source names a byte source for one parse.
type Source struct {
	path     string
	mmap     bool
	str      string
	isString bool
	data     []byte
	r        io.Reader
}

// FromFile reads the file at path with buffered streaming. Files ending
// in .gz or .lz4 are decompressed on the fly.
func FromFile(path string) Source {
	return Source{path: path}
}

// FromMmap memory-maps the file at path instead of streaming it.
func FromMmap(path string) Source {
	return Source{path: path, mmap: true}
}

// FromString reads from an in-memory string.
func FromString(s string) Source {
	return Source{str: s, isString: true}
}

// FromBytes reads from an in-memory byte slice. The slice must not be
// modified during the parse.
func FromBytes(b []byte) Source {
	return Source{data: b}
}

// FromReader reads from r with buffered streaming. The caller keeps
// ownership of r and closes it after the parse.
func FromReader(r io.Reader) Source {
	return Source{r: r}
}

// name returns the path problems are reported under, "" for in-memory
// sources.
func (s Source) name() string {
	return s.path
}

func (s Source) open() (*stream.Stream, error) {
	switch {
	case s.r != nil:
		return stream.NewReader(s.r), nil
	case s.mmap:
		st, err := stream.OpenMmap(s.path)
		if err != nil {
			return nil, &StreamError{Path: s.path, Err: err}
		}
		return st, nil
	case s.path != "":
		st, err := stream.Open(s.path)
		if err != nil {
			return nil, &StreamError{Path: s.path, Err: err}
		}
		return st, nil
	case s.isString:
		return stream.NewString(s.str), nil
	default:
		return stream.New(s.data), nil
	}
}

// Parse reads src into typed columns.
//
// A fatal error (*StreamError for an unreadable source, *OptionsError
// for bad configuration) is returned before any data flows. Bad values
// inside the data never fail the parse; they are reported on the
// Result's problem log.
//
// Example:
//
//	res, err := readr.Parse(readr.FromFile("data.csv"), readr.Options{
//	    ColumnTypes: []readr.Type{readr.TypeCharacter, readr.TypeDouble},
//	})
func Parse(src Source, opts Options) (*Result, error) {
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	st, err := src.open()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return newReader(st, src.name(), opts).read()
}

// ParseFile reads the file at path into typed columns.
func ParseFile(path string, opts Options) (*Result, error) {
	return Parse(FromFile(path), opts)
}

// ParseString reads an in-memory string into typed columns.
func ParseString(input string, opts Options) (*Result, error) {
	return Parse(FromString(input), opts)
}
