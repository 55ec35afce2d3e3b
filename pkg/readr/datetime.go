package readr

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Date and time parsing uses readr-style percent directives rather than Go
// reference-time layouts, because patterns arrive from configuration that
// follows the strptime tradition:
//
//	%Y %y    year (4 digit; 2 digit, 00-68 resolving to 20xx)
//	%m %b %B month (number; abbreviated name; full name)
//	%d %e    day of month (%e accepts a leading blank)
//	%j       day of year
//	%a %A    day of week name (matched and discarded)
//	%H %I %p hour (24h; 12h with AM/PM marker)
//	%M %S    minute, second
//	%OS      seconds with an optional fractional part
//	%z %Z    zone as UTC offset; zone as IANA name
//	%%       literal percent
//	%.       skips one non-digit character
//	%*       skips any number of non-digit characters
//
// %h is accepted as an alias for %b. A literal space in the pattern skips
// any run of blanks in the input. Month and day names come from the
// Locale's tables and are matched case-insensitively.

// dtParts carries the fields recovered from one date/time string before
// range checking.
type dtParts struct {
	year, mon, day int
	hour, min, sec int
	nsec           int
	yday           int
	amPm           int // 0 unset, 1 AM, 2 PM
	hour12         bool
	offset         int // seconds east of UTC
	hasOffset      bool
	zone           string
}

func newDtParts() dtParts {
	return dtParts{year: 1970, mon: 1, day: 1}
}

// parseDateParts matches s against a percent-directive format. The whole
// input must be consumed.
func parseDateParts(s, format string, l *Locale) (dtParts, error) {
	p := newDtParts()
	sc := scanner{s: s}
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			i++
			if c == ' ' {
				sc.skipBlanks()
				continue
			}
			if sc.eof() || sc.s[sc.pos] != c {
				return p, errors.Errorf("expected %q", string(c))
			}
			sc.pos++
			continue
		}
		i++
		if i >= len(format) {
			return p, errors.New("format ends with %")
		}
		dir := format[i]
		i++
		switch dir {
		case 'Y':
			v, ok := sc.digits(1, 4)
			if !ok {
				return p, errors.New("expected year")
			}
			p.year = v
		case 'y':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected 2 digit year")
			}
			if v <= 68 {
				p.year = 2000 + v
			} else {
				p.year = 1900 + v
			}
		case 'm':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected month")
			}
			p.mon = v
		case 'b', 'h':
			v, ok := sc.matchName(l.monthsAbbrev, l.months)
			if !ok {
				return p, errors.New("expected month name")
			}
			p.mon = v
		case 'B':
			v, ok := sc.matchName(l.months, l.monthsAbbrev)
			if !ok {
				return p, errors.New("expected month name")
			}
			p.mon = v
		case 'd':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected day")
			}
			p.day = v
		case 'e':
			if !sc.eof() && sc.s[sc.pos] == ' ' {
				sc.pos++
			}
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected day")
			}
			p.day = v
		case 'j':
			v, ok := sc.digits(1, 3)
			if !ok {
				return p, errors.New("expected day of year")
			}
			if v < 1 {
				return p, errors.Errorf("day of year %d out of range", v)
			}
			p.yday = v
		case 'a':
			if _, ok := sc.matchName(l.daysAbbrev, l.days); !ok {
				return p, errors.New("expected day name")
			}
		case 'A':
			if _, ok := sc.matchName(l.days, l.daysAbbrev); !ok {
				return p, errors.New("expected day name")
			}
		case 'H':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected hour")
			}
			p.hour = v
		case 'I':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected hour")
			}
			p.hour = v
			p.hour12 = true
		case 'p':
			v, ok := sc.matchName(l.amPm)
			if !ok {
				return p, errors.New("expected AM/PM marker")
			}
			p.amPm = v
		case 'M':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected minute")
			}
			p.min = v
		case 'S':
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected second")
			}
			p.sec = v
		case 'O':
			if i >= len(format) || format[i] != 'S' {
				return p, errors.New("%O must be followed by S")
			}
			i++
			v, ok := sc.digits(1, 2)
			if !ok {
				return p, errors.New("expected second")
			}
			p.sec = v
			p.nsec = sc.fraction()
		case 'z':
			off, ok := sc.tzOffset()
			if !ok {
				return p, errors.New("expected UTC offset")
			}
			p.offset, p.hasOffset = off, true
		case 'Z':
			start := sc.pos
			for !sc.eof() && !isBlankByte(sc.s[sc.pos]) {
				sc.pos++
			}
			if sc.pos == start {
				return p, errors.New("expected timezone name")
			}
			p.zone = sc.s[start:sc.pos]
		case '%':
			if sc.eof() || sc.s[sc.pos] != '%' {
				return p, errors.New("expected %")
			}
			sc.pos++
		case '.':
			if sc.eof() || isDigit(sc.s[sc.pos]) {
				return p, errors.New("expected a non-digit")
			}
			_, n := utf8.DecodeRuneInString(sc.s[sc.pos:])
			sc.pos += n
		case '*':
			for !sc.eof() && !isDigit(sc.s[sc.pos]) {
				_, n := utf8.DecodeRuneInString(sc.s[sc.pos:])
				sc.pos += n
			}
		default:
			return p, errors.Errorf("unknown directive %%%s", string(dir))
		}
	}
	if !sc.eof() {
		return p, errors.Errorf("unparsed trailing characters %q", sc.s[sc.pos:])
	}
	return p, nil
}

// parseISO8601 matches YYYY-MM-DD or YYYYMMDD, optionally followed by a
// 'T' or space separated time with optional fractional seconds and an
// optional Z or signed UTC offset.
func parseISO8601(s string) (dtParts, error) {
	p := newDtParts()
	sc := scanner{s: s}

	v, ok := sc.digits(4, 4)
	if !ok {
		return p, errors.New("expected 4 digit year")
	}
	p.year = v
	dashed := false
	if !sc.eof() && sc.s[sc.pos] == '-' {
		dashed = true
		sc.pos++
	}
	if p.mon, ok = sc.digits(2, 2); !ok {
		return p, errors.New("expected month")
	}
	if dashed {
		if sc.eof() || sc.s[sc.pos] != '-' {
			return p, errors.New("expected -")
		}
		sc.pos++
	}
	if p.day, ok = sc.digits(2, 2); !ok {
		return p, errors.New("expected day")
	}
	if sc.eof() {
		return p, nil
	}

	if c := sc.s[sc.pos]; c != 'T' && c != ' ' {
		return p, errors.New("expected time separator")
	}
	sc.pos++
	if p.hour, ok = sc.digits(2, 2); !ok {
		return p, errors.New("expected hour")
	}
	colon := false
	if !sc.eof() && sc.s[sc.pos] == ':' {
		colon = true
		sc.pos++
	}
	if p.min, ok = sc.digits(2, 2); !ok {
		return p, errors.New("expected minute")
	}
	if !sc.eof() {
		if colon {
			if sc.s[sc.pos] == ':' {
				sc.pos++
				if p.sec, ok = sc.digits(2, 2); !ok {
					return p, errors.New("expected second")
				}
				p.nsec = sc.fraction()
			}
		} else if v, ok := sc.digits(2, 2); ok {
			p.sec = v
			p.nsec = sc.fraction()
		}
	}
	if off, ok := sc.tzOffset(); ok {
		p.offset, p.hasOffset = off, true
	}
	if !sc.eof() {
		return p, errors.Errorf("unparsed trailing characters %q", sc.s[sc.pos:])
	}
	return p, nil
}

// checkDate validates and normalizes the calendar fields, resolving a day
// of year into month and day.
func checkDate(p *dtParts) error {
	if p.yday > 0 {
		max := 365
		if isLeap(p.year) {
			max = 366
		}
		if p.yday > max {
			return errors.Errorf("day of year %d out of range", p.yday)
		}
		t := time.Date(p.year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, p.yday-1)
		p.mon, p.day = int(t.Month()), t.Day()
		return nil
	}
	if p.mon < 1 || p.mon > 12 {
		return errors.Errorf("month %d out of range", p.mon)
	}
	if p.day < 1 || p.day > daysInMonth(p.year, p.mon) {
		return errors.Errorf("day %d out of range", p.day)
	}
	return nil
}

// checkTime validates the clock fields and folds a 12 hour clock with its
// AM/PM marker into a 24 hour one.
func checkTime(p *dtParts) error {
	if p.hour12 {
		if p.hour < 1 || p.hour > 12 {
			return errors.Errorf("hour %d out of range", p.hour)
		}
	} else if p.hour > 23 {
		return errors.Errorf("hour %d out of range", p.hour)
	}
	if p.amPm != 0 {
		h := p.hour % 12
		if p.amPm == 2 {
			h += 12
		}
		p.hour = h
	}
	if p.min > 59 {
		return errors.Errorf("minute %d out of range", p.min)
	}
	if p.sec > 60 {
		return errors.Errorf("second %d out of range", p.sec)
	}
	return nil
}

// buildDate returns the calendar date at midnight UTC.
func buildDate(p dtParts) (time.Time, error) {
	if err := checkDate(&p); err != nil {
		return time.Time{}, err
	}
	return time.Date(p.year, time.Month(p.mon), p.day, 0, 0, 0, 0, time.UTC), nil
}

// buildTime returns the clock reading as an offset from midnight.
func buildTime(p dtParts) (time.Duration, error) {
	if err := checkTime(&p); err != nil {
		return 0, err
	}
	d := time.Duration(p.hour)*time.Hour +
		time.Duration(p.min)*time.Minute +
		time.Duration(p.sec)*time.Second +
		time.Duration(p.nsec)*time.Nanosecond
	return d, nil
}

// buildDateTime returns the instant in the zone recovered from the input,
// falling back to the locale's default zone.
func buildDateTime(p dtParts, l *Locale) (time.Time, error) {
	if err := checkDate(&p); err != nil {
		return time.Time{}, err
	}
	if err := checkTime(&p); err != nil {
		return time.Time{}, err
	}
	loc := l.tz
	if p.zone != "" {
		z, err := time.LoadLocation(p.zone)
		if err != nil {
			return time.Time{}, errors.Errorf("unknown timezone %q", p.zone)
		}
		loc = z
	} else if p.hasOffset {
		loc = time.FixedZone("", p.offset)
	}
	return time.Date(p.year, time.Month(p.mon), p.day, p.hour, p.min, p.sec, p.nsec, loc), nil
}

// validateFormat rejects patterns with directives the parser does not
// know, so bad configuration fails at Locale construction instead of
// producing a problem on every row.
func validateFormat(format string) error {
	i := 0
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		i++
		if i >= len(format) {
			return errors.New("format ends with %")
		}
		switch format[i] {
		case 'Y', 'y', 'm', 'b', 'h', 'B', 'd', 'e', 'j', 'a', 'A',
			'H', 'I', 'p', 'M', 'S', 'z', 'Z', '%', '.', '*':
		case 'O':
			i++
			if i >= len(format) || format[i] != 'S' {
				return errors.New("%O must be followed by S")
			}
		default:
			return errors.Errorf("unknown directive %%%s", string(format[i]))
		}
		i++
	}
	return nil
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year, mon int) int {
	if mon == 2 && isLeap(year) {
		return 29
	}
	return monthDays[mon-1]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// scanner is a byte cursor over one field's text.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

// digits consumes between min and max decimal digits and returns their
// value. On failure the cursor does not move.
func (sc *scanner) digits(min, max int) (int, bool) {
	start := sc.pos
	v := 0
	for sc.pos < len(sc.s) && sc.pos-start < max && isDigit(sc.s[sc.pos]) {
		v = v*10 + int(sc.s[sc.pos]-'0')
		sc.pos++
	}
	if sc.pos-start < min {
		sc.pos = start
		return 0, false
	}
	return v, true
}

// nsecScale maps a count of fractional digits to its nanosecond multiplier.
var nsecScale = [10]int{1e9, 1e8, 1e7, 1e6, 1e5, 1e4, 1e3, 1e2, 10, 1}

// fraction consumes an optional ".digits" run and returns it in
// nanoseconds. Digits beyond nanosecond precision are consumed and
// dropped.
func (sc *scanner) fraction() int {
	if sc.eof() || sc.s[sc.pos] != '.' {
		return 0
	}
	save := sc.pos
	sc.pos++
	v, n := 0, 0
	for !sc.eof() && isDigit(sc.s[sc.pos]) {
		if n < 9 {
			v = v*10 + int(sc.s[sc.pos]-'0')
			n++
		}
		sc.pos++
	}
	if n == 0 {
		sc.pos = save
		return 0
	}
	return v * nsecScale[n]
}

// tzOffset consumes Z, or a signed hh, hhmm or hh:mm UTC offset, returning
// seconds east of UTC. Hours beyond 14 or minutes beyond 59 do not match.
// On failure the cursor does not move.
func (sc *scanner) tzOffset() (int, bool) {
	if sc.eof() {
		return 0, false
	}
	save := sc.pos
	if c := sc.s[sc.pos]; c == 'Z' || c == 'z' {
		sc.pos++
		return 0, true
	}
	sign := 0
	switch sc.s[sc.pos] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, false
	}
	sc.pos++
	h, ok := sc.digits(2, 2)
	if !ok {
		sc.pos = save
		return 0, false
	}
	m := 0
	if !sc.eof() && sc.s[sc.pos] == ':' {
		sc.pos++
		if m, ok = sc.digits(2, 2); !ok {
			sc.pos = save
			return 0, false
		}
	} else if v, ok := sc.digits(2, 2); ok {
		m = v
	}
	if h > 14 || m > 59 {
		sc.pos = save
		return 0, false
	}
	return sign * (h*3600 + m*60), true
}

// matchName finds the longest case-insensitive prefix of the input among
// the given name lists and returns its 1-based index within its list.
func (sc *scanner) matchName(lists ...[]string) (int, bool) {
	best, bestLen := 0, 0
	for _, names := range lists {
		for i, name := range names {
			n := len(name)
			if n == 0 || n <= bestLen || sc.pos+n > len(sc.s) {
				continue
			}
			if strings.EqualFold(sc.s[sc.pos:sc.pos+n], name) {
				best, bestLen = i+1, n
			}
		}
	}
	if bestLen == 0 {
		return 0, false
	}
	sc.pos += bestLen
	return best, true
}

// skipBlanks consumes a run of spaces and tabs.
func (sc *scanner) skipBlanks() {
	for !sc.eof() && isBlankByte(sc.s[sc.pos]) {
		sc.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBlankByte(c byte) bool {
	return c == ' ' || c == '\t'
}
