package readr

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocale(t *testing.T, opts LocaleOptions) *Locale {
	t.Helper()
	l, err := NewLocale(opts)
	require.NoError(t, err)
	return l
}

func TestParseLogical(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"TRUE", true},
		{"true", true},
		{"T", true},
		{"t", true},
		{"FALSE", false},
		{"false", false},
		{"F", false},
		{"f", false},
	}
	for _, tc := range cases {
		got, err := ParseLogical(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLogical("yes")
	assert.ErrorIs(t, err, ErrBadFormat)
	_, err = ParseLogical("NA")
	assert.ErrorIs(t, err, ErrMissing)
	_, err = ParseLogical("")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"007", 7},
		{"-13", -13},
		{"+8", 8},
		{"  5 ", 5},
		{"9223372036854775807", math.MaxInt64},
	}
	for _, tc := range cases {
		got, err := ParseInt(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"1.5", "abc", "1e3", "12 34", "-"} {
		_, err := ParseInt(in)
		assert.ErrorIs(t, err, ErrBadFormat, in)
	}
	_, err := ParseInt("9223372036854775808")
	assert.ErrorIs(t, err, ErrRange)
	_, err = ParseInt("NA")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseDouble(t *testing.T) {
	got, err := ParseDouble("423", nil)
	require.NoError(t, err)
	assert.Equal(t, 423.0, got)

	got, err = ParseDouble("1.5", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.5, got)

	got, err = ParseDouble("-2.5e3", nil)
	require.NoError(t, err)
	assert.Equal(t, -2500.0, got)

	// The default grouping mark is stripped before conversion.
	got, err = ParseDouble("1,234.5", nil)
	require.NoError(t, err)
	assert.Equal(t, 1234.5, got)

	commas := mustLocale(t, LocaleOptions{DecimalMark: ','})
	got, err = ParseDouble("1,23", commas)
	require.NoError(t, err)
	assert.Equal(t, 1.23, got)

	// The flipped pairing makes '.' the grouping mark here.
	got, err = ParseDouble("1.234,56", commas)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, got)

	// A '.' that is neither mark is rejected.
	spaced := mustLocale(t, LocaleOptions{DecimalMark: ',', GroupingMark: ' '})
	_, err = ParseDouble("1.5", spaced)
	assert.ErrorIs(t, err, ErrBadFormat)

	for _, in := range []string{"abc", "--1", "1.2.3"} {
		_, err := ParseDouble(in, nil)
		assert.ErrorIs(t, err, ErrBadFormat, in)
	}
	_, err = ParseDouble("", nil)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseNumber(t *testing.T) {
	got, err := ParseNumber("$1,234.56", nil)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, got)

	commas := mustLocale(t, LocaleOptions{DecimalMark: ','})
	got, err = ParseNumber("$1.234,56", commas)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, got)

	got, err = ParseNumber("about 75% of the time", nil)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got)

	got, err = ParseNumber("-1.5", nil)
	require.NoError(t, err)
	assert.Equal(t, -1.5, got)

	// Only the first number counts.
	got, err = ParseNumber("1st of 12", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = ParseNumber("no digits here", nil)
	assert.ErrorIs(t, err, ErrBadFormat)
	_, err = ParseNumber("NA", nil)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseDate(t *testing.T) {
	fr := mustLocale(t, LocaleOptions{Language: "fr"})
	got, err := ParseDate("1 janvier 2015", "%d %B %Y", fr)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)))

	// The plain locale needs the accented spelling.
	got, err = ParseDate("1 février 2015", "%d %B %Y", fr)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC)))
	_, err = ParseDate("1 fevrier 2015", "%d %B %Y", fr)
	assert.Error(t, err)

	de := mustLocale(t, LocaleOptions{Language: "de"})
	got, err = ParseDate("1 Jan 2015", "%d %b %Y", de)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)))

	cases := []struct {
		name   string
		in     string
		format string
		want   time.Time
	}{
		{"locale default format", "2015-10-21", "", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"abbreviated month name", "21 Oct 2015", "%d %b %Y", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"names are case-insensitive", "21 OCT 2015", "%d %b %Y", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"full name via b", "21 October 2015", "%d %b %Y", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"two digit year 68 is 2068", "01/02/68", "%m/%d/%y", time.Date(2068, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"two digit year 69 is 1969", "01/02/69", "%m/%d/%y", time.Date(1969, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"day of year", "2015-060", "%Y-%j", time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"blank padded day", "Jan  5 2015", "%b %e %Y", time.Date(2015, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"single digit components", "2015-1-3", "", time.Date(2015, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"leap day", "2016-02-29", "", time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"skip one non-digit", "2015x10x21", "%Y%.%m%.%d", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"skip non-digit run", "Oct, the 21st 2015", "%b%*%d%* %Y", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
		{"weekday matched and dropped", "Wed 21 Oct 2015", "%a %d %b %Y", time.Date(2015, 10, 21, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in, tc.format, nil)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}

	asciiFr := mustLocale(t, LocaleOptions{Language: "fr", Asciify: true})
	got, err = ParseDate("1 fevrier 2015", "%d %B %Y", asciiFr)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC)))

	bad := []struct {
		name   string
		in     string
		format string
	}{
		{"month out of range", "2015-13-01", ""},
		{"day out of range", "2015-04-31", ""},
		{"not a leap year", "2015-02-29", ""},
		{"day of year too large", "2015-366", "%Y-%j"},
		{"day of year zero", "2015-0", "%Y-%j"},
		{"unknown month name", "21 Foo 2015", "%d %b %Y"},
		{"trailing junk", "2015-10-21x", ""},
		{"wrong literal", "2015/10/21", ""},
		{"empty format directive input", "21", "%d %b %Y"},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDate(tc.in, tc.format, nil)
			assert.Error(t, err)
		})
	}

	_, err = ParseDate("NA", "", nil)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		format string
		want   time.Duration
	}{
		{"locale default format", "10:30:00", "", 10*time.Hour + 30*time.Minute},
		{"single digit hour", "1:05:09", "", time.Hour + 5*time.Minute + 9*time.Second},
		{"twelve hour pm", "1:30 PM", "%I:%M %p", 13*time.Hour + 30*time.Minute},
		{"twelve hour am", "12:00 AM", "%I:%M %p", 0},
		{"noon", "12:00 PM", "%I:%M %p", 12 * time.Hour},
		{"fractional seconds", "00:00:01.5", "%H:%M:%OS", 1500 * time.Millisecond},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTime(tc.in, tc.format, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, in := range []string{"25:00:00", "10:61:00", "noon"} {
		_, err := ParseTime(in, "", nil)
		assert.Error(t, err, in)
	}
	_, err := ParseTime("13:00 PM", "%I:%M %p", nil)
	assert.Error(t, err, "hour 13 is out of the 12 hour range")
}

func TestParseDateTime(t *testing.T) {
	utc := func(y int, mo time.Month, d, h, mi, s, ns int) time.Time {
		return time.Date(y, mo, d, h, mi, s, ns, time.UTC)
	}
	cases := []struct {
		name   string
		in     string
		format string
		want   time.Time
	}{
		{"iso with zulu", "2015-10-21T07:28:00Z", "", utc(2015, 10, 21, 7, 28, 0, 0)},
		{"iso space separator", "2015-10-21 07:28:00", "", utc(2015, 10, 21, 7, 28, 0, 0)},
		{"iso without seconds", "2015-10-21 07:28", "", utc(2015, 10, 21, 7, 28, 0, 0)},
		{"iso date only", "2015-10-21", "", utc(2015, 10, 21, 0, 0, 0, 0)},
		{"iso compact", "20151021T072800Z", "", utc(2015, 10, 21, 7, 28, 0, 0)},
		{"iso fractional seconds", "2015-01-01T00:00:00.123Z", "", utc(2015, 1, 1, 0, 0, 0, 123000000)},
		{"iso positive offset", "2015-10-21T07:28:00+05:30", "", utc(2015, 10, 21, 1, 58, 0, 0)},
		{"iso negative offset", "2015-10-21T07:28:00-0200", "", utc(2015, 10, 21, 9, 28, 0, 0)},
		{"explicit format", "21/10/2015 07:28", "%d/%m/%Y %H:%M", utc(2015, 10, 21, 7, 28, 0, 0)},
		{"format with offset", "2015-01-01 00:00 +0200", "%Y-%m-%d %H:%M %z", utc(2014, 12, 31, 22, 0, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDateTime(tc.in, tc.format, nil)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}

	for _, in := range []string{
		"2015-10-21X07:28",
		"2015-13-01T00:00",
		"21-10-2015",
		"2015-10-21T07:28:00+9999",
		"2015-10-21T07:28:00+00:99",
	} {
		_, err := ParseDateTime(in, "", nil)
		assert.Error(t, err, in)
	}
	_, err := ParseDateTime("", "", nil)
	assert.ErrorIs(t, err, ErrMissing)
}
