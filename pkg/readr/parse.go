package readr

import (
	"time"

	"github.com/pkg/errors"
)

// The Parse helpers convert a single value the way the matching column
// type does, for callers that want the conversions without a table
// around them. A nil locale means DefaultLocale. The default missing
// value markers ("" and "NA") return ErrMissing.

func missingValue(s string) bool {
	s = trimBlanks(s)
	return s == "" || s == "NA"
}

// ParseLogical matches s case-insensitively against TRUE/T and FALSE/F.
func ParseLogical(s string) (bool, error) {
	if missingValue(s) {
		return false, errors.Wrapf(ErrMissing, "parsing %q as logical", s)
	}
	v, ok := parseLogicalValue(trimBlanks(s), []string{"TRUE", "T"}, []string{"FALSE", "F"})
	if !ok {
		return false, errors.Wrapf(ErrBadFormat, "parsing %q as logical", s)
	}
	return v, nil
}

// ParseInt converts an optionally signed run of digits. The error is
// ErrRange when the value does not fit in 64 bits.
func ParseInt(s string) (int64, error) {
	if missingValue(s) {
		return 0, errors.Wrapf(ErrMissing, "parsing %q as integer", s)
	}
	v, err := parseIntValue(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %q as integer", s)
	}
	return v, nil
}

// ParseDouble converts a float written with the locale's marks, so
// ParseDouble("1,23", l) is 1.23 under a locale with a ',' decimal mark.
func ParseDouble(s string, l *Locale) (float64, error) {
	if missingValue(s) {
		return 0, errors.Wrapf(ErrMissing, "parsing %q as double", s)
	}
	if l == nil {
		l = DefaultLocale()
	}
	v, ok := parseDoubleValue(s, l)
	if !ok {
		return 0, errors.Wrapf(ErrBadFormat, "parsing %q as double", s)
	}
	return v, nil
}

// ParseNumber extracts the first number from surrounding text, so
// ParseNumber("$1,234.56", nil) is 1234.56.
func ParseNumber(s string, l *Locale) (float64, error) {
	if missingValue(s) {
		return 0, errors.Wrapf(ErrMissing, "parsing %q as number", s)
	}
	if l == nil {
		l = DefaultLocale()
	}
	v, ok := parseNumberValue(s, l)
	if !ok {
		return 0, errors.Wrapf(ErrBadFormat, "parsing %q as number", s)
	}
	return v, nil
}

// ParseDate matches s against format, or the locale's date format when
// format is empty, returning the date at midnight UTC.
func ParseDate(s, format string, l *Locale) (time.Time, error) {
	if missingValue(s) {
		return time.Time{}, errors.Wrapf(ErrMissing, "parsing %q as date", s)
	}
	if l == nil {
		l = DefaultLocale()
	}
	t, err := parseDateValue(s, format, l)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing %q as date", s)
	}
	return t, nil
}

// ParseTime matches s against format, or the locale's time format when
// format is empty, returning the clock reading as an offset from
// midnight.
func ParseTime(s, format string, l *Locale) (time.Duration, error) {
	if missingValue(s) {
		return 0, errors.Wrapf(ErrMissing, "parsing %q as time", s)
	}
	if l == nil {
		l = DefaultLocale()
	}
	d, err := parseTimeValue(s, format, l)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %q as time", s)
	}
	return d, nil
}

// ParseDateTime matches s against format, falling back to ISO8601 when
// format is empty. A zone or offset in the value wins over the locale's
// default zone.
func ParseDateTime(s, format string, l *Locale) (time.Time, error) {
	if missingValue(s) {
		return time.Time{}, errors.Wrapf(ErrMissing, "parsing %q as datetime", s)
	}
	if l == nil {
		l = DefaultLocale()
	}
	t, err := parseDateTimeValue(s, format, l)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing %q as datetime", s)
	}
	return t, nil
}
