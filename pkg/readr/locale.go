package readr

import (
	"fmt"
	"sync"
	"time"

	"github.com/dselivanov/readr/internal/langs"
	"github.com/dselivanov/readr/internal/textenc"
)

// LocaleOptions configures NewLocale. The zero value of every field keeps
// its documented default, so LocaleOptions{} describes the same locale as
// DefaultLocale.
type LocaleOptions struct {
	// Language selects the built-in month and day name tables.
	// Default: "en". See SupportedLanguages for the full list.
	Language string

	// DateFormat is the pattern dates are parsed with when no explicit
	// format is given. Default: "%Y-%m-%d".
	DateFormat string

	// TimeFormat is the pattern times are parsed with when no explicit
	// format is given. Default: "%H:%M:%S".
	TimeFormat string

	// Timezone is the IANA name of the zone applied to date-times that
	// carry no zone or offset of their own. Default: "UTC".
	Timezone string

	// Encoding is the IANA name of the source text encoding.
	// Default: "UTF-8".
	Encoding string

	// DecimalMark separates integer and fractional digits. Default: '.'.
	DecimalMark rune

	// GroupingMark separates digit groups. Default: ','. When exactly one
	// of DecimalMark and GroupingMark is supplied, the other one takes the
	// remaining symbol of the '.'/',' pair, so DecimalMark: ',' alone
	// yields a grouping mark of '.'.
	GroupingMark rune

	// Asciify strips diacritics from the month and day names at
	// construction, so "fevrier" matches the French "février".
	Asciify bool
}

// DefaultLocaleOptions returns the documented defaults, spelled out.
func DefaultLocaleOptions() LocaleOptions {
	return LocaleOptions{
		Language:     "en",
		DateFormat:   "%Y-%m-%d",
		TimeFormat:   "%H:%M:%S",
		Timezone:     "UTC",
		Encoding:     "UTF-8",
		DecimalMark:  '.',
		GroupingMark: ',',
		Asciify:      false,
	}
}

// Locale bundles the region and language specific parsing defaults:
// month and day names, numeric marks, timezone, text encoding and
// default date/time patterns. A Locale is immutable after construction
// and safe to share across concurrent reads.
type Locale struct {
	language     string
	months       []string
	monthsAbbrev []string
	days         []string
	daysAbbrev   []string
	amPm         []string
	dateFormat   string
	timeFormat   string
	tzName       string
	tz           *time.Location
	encoding     textenc.Encoding
	decimalMark  rune
	groupingMark rune
}

// NewLocale builds a Locale from opts. It returns a *LocaleError when the
// language code is unknown, the decimal and grouping marks collide, a
// format pattern is invalid, or the timezone or encoding cannot be
// resolved.
func NewLocale(opts LocaleOptions) (*Locale, error) {
	if opts.Language == "" {
		opts.Language = "en"
	}
	names, ok := langs.Lookup(opts.Language)
	if !ok {
		return nil, &LocaleError{Reason: fmt.Sprintf("unknown language %q", opts.Language)}
	}

	dec, grp := opts.DecimalMark, opts.GroupingMark
	switch {
	case dec == 0 && grp == 0:
		dec, grp = '.', ','
	case grp == 0:
		grp = ','
		if dec == ',' {
			grp = '.'
		}
	case dec == 0:
		dec = '.'
		if grp == '.' {
			dec = ','
		}
	}
	if dec == grp {
		return nil, &LocaleError{Reason: fmt.Sprintf("decimal mark and grouping mark are both %q", dec)}
	}

	if opts.DateFormat == "" {
		opts.DateFormat = "%Y-%m-%d"
	}
	if err := validateFormat(opts.DateFormat); err != nil {
		return nil, &LocaleError{Reason: fmt.Sprintf("date format %q: %v", opts.DateFormat, err)}
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "%H:%M:%S"
	}
	if err := validateFormat(opts.TimeFormat); err != nil {
		return nil, &LocaleError{Reason: fmt.Sprintf("time format %q: %v", opts.TimeFormat, err)}
	}

	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}
	tz, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, &LocaleError{Reason: fmt.Sprintf("unknown timezone %q", opts.Timezone)}
	}

	if opts.Encoding == "" {
		opts.Encoding = "UTF-8"
	}
	enc, err := textenc.Resolve(opts.Encoding)
	if err != nil {
		return nil, &LocaleError{Reason: err.Error()}
	}

	l := &Locale{
		language:     opts.Language,
		months:       names.Months,
		monthsAbbrev: names.MonthsAbbrev,
		days:         names.Days,
		daysAbbrev:   names.DaysAbbrev,
		amPm:         names.AmPm,
		dateFormat:   opts.DateFormat,
		timeFormat:   opts.TimeFormat,
		tzName:       opts.Timezone,
		tz:           tz,
		encoding:     enc,
		decimalMark:  dec,
		groupingMark: grp,
	}
	if opts.Asciify {
		l.months = asciifyAll(l.months)
		l.monthsAbbrev = asciifyAll(l.monthsAbbrev)
		l.days = asciifyAll(l.days)
		l.daysAbbrev = asciifyAll(l.daysAbbrev)
		l.amPm = asciifyAll(l.amPm)
	}
	return l, nil
}

// The built-in tables are shared process-wide, so asciify works on a copy.
func asciifyAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = textenc.Asciify(name)
	}
	return out
}

var (
	defaultLocaleOnce sync.Once
	defaultLocale     *Locale
)

// DefaultLocale returns the shared default Locale: English names, UTC,
// UTF-8, '.' decimal mark and ',' grouping mark.
func DefaultLocale() *Locale {
	defaultLocaleOnce.Do(func() {
		l, err := NewLocale(LocaleOptions{})
		if err != nil {
			panic("readr: building default locale: " + err.Error())
		}
		defaultLocale = l
	})
	return defaultLocale
}

// SupportedLanguages returns the sorted language codes with built-in
// month and day name tables.
func SupportedLanguages() []string {
	return langs.Codes()
}

// Language returns the language code the name tables were loaded for.
func (l *Locale) Language() string { return l.language }

// DateFormat returns the default date pattern.
func (l *Locale) DateFormat() string { return l.dateFormat }

// TimeFormat returns the default time pattern.
func (l *Locale) TimeFormat() string { return l.timeFormat }

// Timezone returns the IANA name of the default zone.
func (l *Locale) Timezone() string { return l.tzName }

// Encoding returns the IANA name of the source text encoding.
func (l *Locale) Encoding() string { return l.encoding.Name() }

// DecimalMark returns the decimal mark.
func (l *Locale) DecimalMark() rune { return l.decimalMark }

// GroupingMark returns the grouping mark.
func (l *Locale) GroupingMark() rune { return l.groupingMark }

// Months returns a copy of the full month names, January first.
func (l *Locale) Months() []string { return copyStrings(l.months) }

// MonthsAbbrev returns a copy of the abbreviated month names.
func (l *Locale) MonthsAbbrev() []string { return copyStrings(l.monthsAbbrev) }

// Days returns a copy of the full day names, Sunday first.
func (l *Locale) Days() []string { return copyStrings(l.days) }

// DaysAbbrev returns a copy of the abbreviated day names.
func (l *Locale) DaysAbbrev() []string { return copyStrings(l.daysAbbrev) }

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
