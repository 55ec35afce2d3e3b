package readr

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unsafe"
)

// Type identifies the target type of a column.
type Type string

const (
	// TypeGuess picks the most specific type that fits a sample of the
	// column's values. This is the default.
	TypeGuess Type = "guess"
	// TypeSkip drops the column from the result.
	TypeSkip Type = "skip"
	// TypeLogical holds booleans.
	TypeLogical Type = "logical"
	// TypeInteger holds 64 bit integers.
	TypeInteger Type = "integer"
	// TypeDouble holds 64 bit floats.
	TypeDouble Type = "double"
	// TypeNumber holds 64 bit floats extracted from surrounding text, so
	// "$1,234.56" reads as 1234.56. It is never guessed, only assigned.
	TypeNumber Type = "number"
	// TypeDate holds calendar dates, stored at midnight UTC.
	TypeDate Type = "date"
	// TypeTime holds clock readings as offsets from midnight.
	TypeTime Type = "time"
	// TypeDateTime holds instants.
	TypeDateTime Type = "datetime"
	// TypeCharacter holds text re-encoded to UTF-8.
	TypeCharacter Type = "character"
	// TypeFactor holds values drawn from the fixed level set in
	// Options.FactorLevels, stored as indexes into it. It is never
	// guessed, only assigned.
	TypeFactor Type = "factor"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// collector accumulates one typed column. Exactly one of the value slices
// grows, selected by typ; valid marks per row whether the value is real
// or the missing sentinel. The supported kinds form a closed set matched
// exhaustively, not an open interface.
type collector struct {
	typ         Type
	locale      *Locale
	trueVals    []string
	falseVals   []string
	logicalDesc string
	levels      []string
	levelIndex  map[string]int

	bools   []bool
	ints    []int64
	doubles []float64
	times   []time.Time
	durs    []time.Duration
	strs    []string
	codes   []int
	valid   []bool
}

func newCollector(typ Type, l *Locale, trueVals, falseVals, levels []string) *collector {
	c := &collector{
		typ:         typ,
		locale:      l,
		trueVals:    trueVals,
		falseVals:   falseVals,
		logicalDesc: strings.Join(append(append([]string{}, trueVals...), falseVals...), "/"),
	}
	if typ == TypeFactor {
		c.levels = levels
		c.levelIndex = make(map[string]int, len(levels))
		for i, lv := range levels {
			c.levelIndex[lv] = i
		}
	}
	return c
}

func (c *collector) len() int {
	return len(c.valid)
}

// append converts one field and grows the column by one element. When the
// value does not convert it stores the missing sentinel and returns a
// description of what was expected; an encoding problem on a character
// column stores the lossily decoded text instead.
func (c *collector) append(s string, missing, badEncoding bool) (string, bool) {
	if missing {
		c.appendMissing()
		return "", true
	}
	switch c.typ {
	case TypeLogical:
		v, ok := parseLogicalValue(s, c.trueVals, c.falseVals)
		if !ok {
			c.appendMissing()
			return c.logicalDesc, false
		}
		c.bools = append(c.bools, v)
	case TypeInteger:
		v, err := parseIntValue(s)
		if err != nil {
			c.appendMissing()
			if errors.Is(err, ErrRange) {
				return "an integer in the 64 bit range", false
			}
			return "an integer", false
		}
		c.ints = append(c.ints, v)
	case TypeDouble:
		v, ok := parseDoubleValue(s, c.locale)
		if !ok {
			c.appendMissing()
			return "a double", false
		}
		c.doubles = append(c.doubles, v)
	case TypeNumber:
		v, ok := parseNumberValue(s, c.locale)
		if !ok {
			c.appendMissing()
			return "a number", false
		}
		c.doubles = append(c.doubles, v)
	case TypeDate:
		v, err := parseDateValue(s, "", c.locale)
		if err != nil {
			c.appendMissing()
			return "a date like " + c.locale.dateFormat, false
		}
		c.times = append(c.times, v)
	case TypeTime:
		v, err := parseTimeValue(s, "", c.locale)
		if err != nil {
			c.appendMissing()
			return "a time like " + c.locale.timeFormat, false
		}
		c.durs = append(c.durs, v)
	case TypeDateTime:
		v, err := parseDateTimeValue(s, "", c.locale)
		if err != nil {
			c.appendMissing()
			return "an ISO8601 datetime", false
		}
		c.times = append(c.times, v)
	case TypeFactor:
		code, ok := c.levelIndex[s]
		if !ok {
			c.appendMissing()
			return "value in level set", false
		}
		c.codes = append(c.codes, code)
	default: // TypeCharacter
		c.strs = append(c.strs, s)
		c.valid = append(c.valid, true)
		if badEncoding {
			return c.locale.Encoding() + " encoded text", false
		}
		return "", true
	}
	c.valid = append(c.valid, true)
	return "", true
}

// appendMissing grows the column with its missing sentinel.
func (c *collector) appendMissing() {
	switch c.typ {
	case TypeLogical:
		c.bools = append(c.bools, false)
	case TypeInteger:
		c.ints = append(c.ints, 0)
	case TypeDouble, TypeNumber:
		c.doubles = append(c.doubles, math.NaN())
	case TypeDate, TypeDateTime:
		c.times = append(c.times, time.Time{})
	case TypeTime:
		c.durs = append(c.durs, 0)
	case TypeFactor:
		c.codes = append(c.codes, -1)
	default: // TypeCharacter
		c.strs = append(c.strs, "")
	}
	c.valid = append(c.valid, false)
}

// parseLogicalValue matches s case-insensitively against the configured
// true and false spellings.
func parseLogicalValue(s string, trueVals, falseVals []string) (bool, bool) {
	for _, v := range trueVals {
		if strings.EqualFold(s, v) {
			return true, true
		}
	}
	for _, v := range falseVals {
		if strings.EqualFold(s, v) {
			return false, true
		}
	}
	return false, false
}

// parseIntValue accepts an optional sign and decimal digits only. It
// returns ErrRange when the value does not fit in 64 bits and
// ErrBadFormat for anything else.
func parseIntValue(s string) (int64, error) {
	s = trimBlanks(s)
	if s == "" {
		return 0, ErrBadFormat
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrRange
		}
		return 0, ErrBadFormat
	}
	return v, nil
}

// parseDoubleValue accepts a float written with the locale's marks:
// grouping marks are dropped and the decimal mark replaces the decimal
// point. A '.' that is neither mark makes the value invalid.
func parseDoubleValue(s string, l *Locale) (float64, bool) {
	s = trimBlanks(s)
	if s == "" {
		return 0, false
	}
	if l.decimalMark != '.' || strings.ContainsRune(s, l.groupingMark) {
		var b strings.Builder
		b.Grow(len(s))
		for _, r := range s {
			switch r {
			case l.groupingMark:
			case l.decimalMark:
				b.WriteByte('.')
			case '.':
				return 0, false
			default:
				b.WriteRune(r)
			}
		}
		s = b.String()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseNumberValue extracts the first number from surrounding text. The
// number starts at the first digit, backing up over an adjacent sign or
// decimal mark, and runs while it sees digits and the locale's marks.
func parseNumberValue(s string, l *Locale) (float64, bool) {
	runes := []rune(s)
	start := -1
	for i, r := range runes {
		if r >= '0' && r <= '9' {
			j := i
			if j > 0 && runes[j-1] == l.decimalMark {
				j--
			}
			if j > 0 && (runes[j-1] == '+' || runes[j-1] == '-') {
				j--
			}
			start = j
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	var b strings.Builder
loop:
	for i := start; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == l.decimalMark:
			b.WriteByte('.')
		case r == l.groupingMark:
		case (r == '+' || r == '-') && i == start:
			b.WriteRune(r)
		default:
			break loop
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDateValue matches s against format, or the locale's date format
// when format is empty.
func parseDateValue(s, format string, l *Locale) (time.Time, error) {
	if format == "" {
		format = l.dateFormat
	}
	p, err := parseDateParts(trimBlanks(s), format, l)
	if err != nil {
		return time.Time{}, err
	}
	return buildDate(p)
}

// parseTimeValue matches s against format, or the locale's time format
// when format is empty.
func parseTimeValue(s, format string, l *Locale) (time.Duration, error) {
	if format == "" {
		format = l.timeFormat
	}
	p, err := parseDateParts(trimBlanks(s), format, l)
	if err != nil {
		return 0, err
	}
	return buildTime(p)
}

// parseDateTimeValue matches s against format, falling back to ISO8601
// when format is empty. A zone or offset in the value wins over the
// locale's default zone.
func parseDateTimeValue(s, format string, l *Locale) (time.Time, error) {
	var p dtParts
	var err error
	if format == "" {
		p, err = parseISO8601(trimBlanks(s))
	} else {
		p, err = parseDateParts(trimBlanks(s), format, l)
	}
	if err != nil {
		return time.Time{}, err
	}
	return buildDateTime(p, l)
}

func trimBlanks(s string) string {
	return strings.Trim(s, " \t")
}

// unsafeString views b as a string without copying. The result must not
// outlive b, whose backing array the tokenizer reuses on the next record.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
