package readr

import (
	"github.com/dselivanov/readr/internal/tokenizer"
	"github.com/dselivanov/readr/logger"
)

// Options configures Parse. The zero value keeps every documented
// default, so Options{} reads standard comma separated data with a
// header row and guessed column types.
type Options struct {
	// Delim is the field delimiter.
	// It must not be \r, \n, or equal the quote or comment character.
	// Default: ','
	Delim byte

	// Quote is the quote character. Set NoQuote to disable quoting.
	// Default: '"'
	Quote byte

	// NoQuote disables quote handling entirely, so quote characters are
	// ordinary data.
	// Default: false
	NoQuote bool

	// NoHeader treats the first record as data instead of column names.
	// Columns are then named X1, X2, ... unless ColumnNames is set.
	// Default: false
	NoHeader bool

	// ColumnNames overrides the column names. When the source has a
	// header row it is still consumed.
	// Default: nil
	ColumnNames []string

	// ColumnTypes fixes the type of each column by position. Absent or
	// TypeGuess entries are guessed from the sample; TypeSkip drops the
	// column from the result.
	// Default: nil (guess everything)
	ColumnTypes []Type

	// FactorLevels lists the admissible values of factor columns, in
	// level order. Values outside the set read as missing with a
	// problem. Required when ColumnTypes names a factor column.
	// Default: nil
	FactorLevels []string

	// NA lists the markers read as missing values. An empty non-nil
	// slice disables missing value detection.
	// Default: "", "NA"
	NA []string

	// KeepWhitespace keeps leading and trailing blanks of unquoted
	// fields instead of trimming them.
	// Default: false
	KeepWhitespace bool

	// KeepQuotedNA keeps quoted missing markers as text, so a quoted
	// "NA" stays the string NA.
	// Default: false
	KeepQuotedNA bool

	// KeepEmptyRows keeps empty records as rows of missing values
	// instead of skipping them.
	// Default: false
	KeepEmptyRows bool

	// EscapeBackslash treats backslash as an escape character, making
	// \" and \, literal inside fields.
	// Default: false
	EscapeBackslash bool

	// Comment, if not 0, is the comment character; records starting
	// with it are skipped.
	// Default: 0 (disabled)
	Comment byte

	// Skip drops this many records before the header row.
	// Default: 0
	Skip int

	// NMax caps the number of data rows read. Zero or negative reads
	// everything.
	// Default: 0
	NMax int

	// GuessMax caps the number of rows sampled for type guessing.
	// Default: 1000
	GuessMax int

	// MaxProblems caps the number of problems kept on the result; the
	// remainder is reported as a suppressed count.
	// Default: 1000
	MaxProblems int

	// TrueValues lists the spellings accepted as a true logical value,
	// matched case-insensitively.
	// Default: TRUE, T
	TrueValues []string

	// FalseValues lists the spellings accepted as a false logical value,
	// matched case-insensitively.
	// Default: FALSE, F
	FalseValues []string

	// Locale supplies the parsing locale.
	// Default: DefaultLocale()
	Locale *Locale

	// Logger receives parse diagnostics.
	// Default: logger.NopLogger
	Logger logger.Logger
}

// DefaultOptions returns the default configuration, spelled out.
func DefaultOptions() Options {
	return Options{
		Delim:       ',',
		Quote:       '"',
		NA:          []string{"", "NA"},
		GuessMax:    1000,
		MaxProblems: 1000,
		TrueValues:  []string{"TRUE", "T"},
		FalseValues: []string{"FALSE", "F"},
	}
}

// Validate checks the configuration without running a parse.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

var knownTypes = map[Type]bool{
	TypeGuess:     true,
	TypeSkip:      true,
	TypeLogical:   true,
	TypeInteger:   true,
	TypeDouble:    true,
	TypeNumber:    true,
	TypeDate:      true,
	TypeTime:      true,
	TypeDateTime:  true,
	TypeCharacter: true,
	TypeFactor:    true,
}

func validDelim(b byte) bool {
	return b != 0 && b != '\r' && b != '\n'
}

// resolve fills defaults and validates, returning the effective
// configuration used for one parse.
func (o Options) resolve() (Options, error) {
	if o.Delim == 0 {
		o.Delim = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	if o.NA == nil {
		o.NA = []string{"", "NA"}
	}
	if o.GuessMax == 0 {
		o.GuessMax = 1000
	}
	if o.MaxProblems == 0 {
		o.MaxProblems = 1000
	}
	if o.TrueValues == nil {
		o.TrueValues = []string{"TRUE", "T"}
	}
	if o.FalseValues == nil {
		o.FalseValues = []string{"FALSE", "F"}
	}
	if o.Locale == nil {
		o.Locale = DefaultLocale()
	}
	if o.Logger == nil {
		o.Logger = logger.NopLogger
	}

	if !validDelim(o.Delim) {
		return o, &OptionsError{Field: "Delim", Message: "invalid delimiter"}
	}
	if !o.NoQuote {
		if !validDelim(o.Quote) {
			return o, &OptionsError{Field: "Quote", Message: "invalid quote character"}
		}
		if o.Quote == o.Delim {
			return o, &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
		}
	}
	if o.Comment != 0 {
		if !validDelim(o.Comment) {
			return o, &OptionsError{Field: "Comment", Message: "invalid comment character"}
		}
		if o.Comment == o.Delim {
			return o, &OptionsError{Field: "Comment", Message: "comment character same as delimiter"}
		}
	}
	if o.Skip < 0 {
		return o, &OptionsError{Field: "Skip", Message: "must not be negative"}
	}
	if o.GuessMax < 0 {
		return o, &OptionsError{Field: "GuessMax", Message: "must not be negative"}
	}
	if o.MaxProblems < 0 {
		return o, &OptionsError{Field: "MaxProblems", Message: "must not be negative"}
	}
	if len(o.ColumnTypes) > 0 {
		// Copied so normalizing "" to TypeGuess cannot touch the caller's slice.
		types := make([]Type, len(o.ColumnTypes))
		copy(types, o.ColumnTypes)
		o.ColumnTypes = types
		for i, t := range o.ColumnTypes {
			if t == "" {
				o.ColumnTypes[i] = TypeGuess
				continue
			}
			if !knownTypes[t] {
				return o, &OptionsError{Field: "ColumnTypes", Message: "unknown type " + string(t)}
			}
			if t == TypeFactor && len(o.FactorLevels) == 0 {
				return o, &OptionsError{Field: "FactorLevels", Message: "required for factor columns"}
			}
		}
	}
	if len(o.FactorLevels) > 0 {
		seen := make(map[string]bool, len(o.FactorLevels))
		for _, lv := range o.FactorLevels {
			if seen[lv] {
				return o, &OptionsError{Field: "FactorLevels", Message: "duplicate level " + lv}
			}
			seen[lv] = true
		}
	}
	return o, nil
}

// tokenizerOptions maps the public configuration onto the tokenizer's.
func (o Options) tokenizerOptions() tokenizer.Options {
	quote := o.Quote
	if o.NoQuote {
		quote = 0
	}
	return tokenizer.Options{
		Delim:           o.Delim,
		Quote:           quote,
		NA:              o.NA,
		TrimWS:          !o.KeepWhitespace,
		QuotedNA:        !o.KeepQuotedNA,
		EscapeBackslash: o.EscapeBackslash,
		Comment:         o.Comment,
		SkipEmptyRows:   !o.KeepEmptyRows,
	}
}
