package readr

// fieldValue is one sampled field: its decoded text, whether it was a
// missing value marker, whether decoding had to replace bad bytes and
// whether the field lost its closing quote.
type fieldValue struct {
	s       string
	missing bool
	bad     bool
	mal     bool
}

// guessType picks the most specific type whose parser accepts every
// non-missing value in the sample, trying logical, integer, double,
// date, time and datetime in that order. Character is the fallback that
// always fits; an entirely missing sample guesses logical. Number is
// never guessed because it matches almost anything containing a digit.
func guessType(sample []fieldValue, l *Locale, trueVals, falseVals []string) Type {
	seen := false
	for _, f := range sample {
		if !f.missing {
			seen = true
			break
		}
	}
	if !seen {
		return TypeLogical
	}

	checks := []struct {
		typ Type
		ok  func(string) bool
	}{
		{TypeLogical, func(s string) bool {
			_, ok := parseLogicalValue(s, trueVals, falseVals)
			return ok
		}},
		{TypeInteger, func(s string) bool {
			_, err := parseIntValue(s)
			return err == nil
		}},
		{TypeDouble, func(s string) bool {
			_, ok := parseDoubleValue(s, l)
			return ok
		}},
		{TypeDate, func(s string) bool {
			_, err := parseDateValue(s, "", l)
			return err == nil
		}},
		{TypeTime, func(s string) bool {
			_, err := parseTimeValue(s, "", l)
			return err == nil
		}},
		{TypeDateTime, func(s string) bool {
			_, err := parseDateTimeValue(s, "", l)
			return err == nil
		}},
	}
	for _, c := range checks {
		fits := true
		for _, f := range sample {
			if !f.missing && !c.ok(f.s) {
				fits = false
				break
			}
		}
		if fits {
			return c.typ
		}
	}
	return TypeCharacter
}
