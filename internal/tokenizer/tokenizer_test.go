package tokenizer

import (
	"errors"
	"testing"

	"github.com/dselivanov/readr/internal/stream"
)

type wantToken struct {
	kind  Kind
	value string
}

// tokenizeAll materializes every record of input; token contents are
// copied out because they alias the record buffer.
func tokenizeAll(input string, opts Options) [][]wantToken {
	src := stream.NewString(input)
	tok := New(src, opts)
	defer tok.Release()

	var out [][]wantToken
	for {
		rec, ok := tok.NextRecord()
		if !ok {
			break
		}
		row := make([]wantToken, len(rec))
		for i, tk := range rec {
			row[i] = wantToken{tk.Kind, string(tk.Data)}
		}
		out = append(out, row)
	}
	return out
}

func TestTokenizeRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]wantToken
	}{
		{
			name:  "simple row",
			input: "a,b,c",
			want:  [][]wantToken{{{Plain, "a"}, {Plain, "b"}, {Plain, "c"}}},
		},
		{
			name:  "quoted field containing the delimiter",
			input: `"a,b",c`,
			want:  [][]wantToken{{{Quoted, "a,b"}, {Plain, "c"}}},
		},
		{
			name:  "doubled quote decodes to one literal quote",
			input: `"a""b"`,
			want:  [][]wantToken{{{Quoted, `a"b`}}},
		},
		{
			name:  "missing-value markers",
			input: "NA,,x",
			want:  [][]wantToken{{{Missing, "NA"}, {Missing, ""}, {Plain, "x"}}},
		},
		{
			name:  "crlf terminators",
			input: "a,b\r\nc,d\r\n",
			want: [][]wantToken{
				{{Plain, "a"}, {Plain, "b"}},
				{{Plain, "c"}, {Plain, "d"}},
			},
		},
		{
			name:  "lone carriage return terminates",
			input: "a\rb",
			want:  [][]wantToken{{{Plain, "a"}}, {{Plain, "b"}}},
		},
		{
			name:  "embedded line break inside quotes",
			input: "\"line1\nline2\",x",
			want:  [][]wantToken{{{Quoted, "line1\nline2"}, {Plain, "x"}}},
		},
		{
			name:  "unterminated quoted field keeps partial content",
			input: `a,"bc`,
			want:  [][]wantToken{{{Plain, "a"}, {Malformed, "bc"}}},
		},
		{
			name:  "trailing delimiter yields trailing missing field",
			input: "a,",
			want:  [][]wantToken{{{Plain, "a"}, {Missing, ""}}},
		},
		{
			name:  "leading delimiter yields leading missing field",
			input: ",a",
			want:  [][]wantToken{{{Missing, ""}, {Plain, "a"}}},
		},
		{
			name:  "surrounding blanks trimmed from unquoted fields",
			input: "  a  ,\tb\t",
			want:  [][]wantToken{{{Plain, "a"}, {Plain, "b"}}},
		},
		{
			name:  "blanks preserved inside quotes",
			input: `" a ",b`,
			want:  [][]wantToken{{{Quoted, " a "}, {Plain, "b"}}},
		},
		{
			name:  "blank marker after trimming",
			input: " NA ,x",
			want:  [][]wantToken{{{Missing, "NA"}, {Plain, "x"}}},
		},
		{
			name:  "quoted marker is missing by default",
			input: `"NA",x`,
			want:  [][]wantToken{{{Missing, "NA"}, {Plain, "x"}}},
		},
		{
			name:  "empty quoted field is missing by default",
			input: `"",x`,
			want:  [][]wantToken{{{Missing, ""}, {Plain, "x"}}},
		},
		{
			name:  "stray content after closing quote is kept",
			input: `"a"x,b`,
			want:  [][]wantToken{{{Quoted, "ax"}, {Plain, "b"}}},
		},
		{
			name:  "empty rows are skipped",
			input: "a\n\n\nb\n",
			want:  [][]wantToken{{{Plain, "a"}}, {{Plain, "b"}}},
		},
		{
			name:  "no trailing terminator",
			input: "a,b\nc,d",
			want: [][]wantToken{
				{{Plain, "a"}, {Plain, "b"}},
				{{Plain, "c"}, {Plain, "d"}},
			},
		},
		{
			name:  "quote inside unquoted field is literal",
			input: `a"b,c`,
			want:  [][]wantToken{{{Plain, `a"b`}, {Plain, "c"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeAll(tt.input, DefaultOptions())
			assertRecords(t, got, tt.want)
		})
	}
}

func TestTokenizeWithOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  func(Options) Options
		want  [][]wantToken
	}{
		{
			name:  "custom delimiter",
			input: "a;b;c",
			opts:  func(o Options) Options { o.Delim = ';'; return o },
			want:  [][]wantToken{{{Plain, "a"}, {Plain, "b"}, {Plain, "c"}}},
		},
		{
			name:  "tab delimiter keeps spaces inside fields",
			input: "a b\tc",
			opts:  func(o Options) Options { o.Delim = '\t'; return o },
			want:  [][]wantToken{{{Plain, "a b"}, {Plain, "c"}}},
		},
		{
			name:  "quoting disabled",
			input: `"a",b`,
			opts:  func(o Options) Options { o.Quote = 0; return o },
			want:  [][]wantToken{{{Plain, `"a"`}, {Plain, "b"}}},
		},
		{
			name:  "whitespace kept",
			input: " a ,b",
			opts:  func(o Options) Options { o.TrimWS = false; return o },
			want:  [][]wantToken{{{Plain, " a "}, {Plain, "b"}}},
		},
		{
			name:  "quoted marker stays text",
			input: `"NA",x`,
			opts:  func(o Options) Options { o.QuotedNA = false; return o },
			want:  [][]wantToken{{{Quoted, "NA"}, {Plain, "x"}}},
		},
		{
			name:  "custom markers",
			input: "n/a,NA",
			opts:  func(o Options) Options { o.NA = []string{"n/a"}; return o },
			want:  [][]wantToken{{{Missing, "n/a"}, {Plain, "NA"}}},
		},
		{
			name:  "comment lines skipped",
			input: "# header comment\na,b\n# interior\nc,d\n",
			opts:  func(o Options) Options { o.Comment = '#'; return o },
			want: [][]wantToken{
				{{Plain, "a"}, {Plain, "b"}},
				{{Plain, "c"}, {Plain, "d"}},
			},
		},
		{
			name:  "comment byte mid-record is data",
			input: "a,#b\n",
			opts:  func(o Options) Options { o.Comment = '#'; return o },
			want:  [][]wantToken{{{Plain, "a"}, {Plain, "#b"}}},
		},
		{
			name:  "empty rows kept as single missing field",
			input: "a\n\nb\n",
			opts:  func(o Options) Options { o.SkipEmptyRows = false; return o },
			want:  [][]wantToken{{{Plain, "a"}}, {{Missing, ""}}, {{Plain, "b"}}},
		},
		{
			name:  "backslash escapes delimiter",
			input: `a\,b,c`,
			opts:  func(o Options) Options { o.EscapeBackslash = true; return o },
			want:  [][]wantToken{{{Plain, "a,b"}, {Plain, "c"}}},
		},
		{
			name:  "backslash escapes quote inside quotes",
			input: `"a\"b"`,
			opts:  func(o Options) Options { o.EscapeBackslash = true; return o },
			want:  [][]wantToken{{{Quoted, `a"b`}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizeAll(tt.input, tt.opts(DefaultOptions()))
			assertRecords(t, got, tt.want)
		})
	}
}

func assertRecords(t *testing.T, got, want [][]wantToken) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("record count = %d, want %d (got %v)", len(got), len(want), got)
	}
	for r := range want {
		if len(got[r]) != len(want[r]) {
			t.Fatalf("record %d: field count = %d, want %d (got %v)", r, len(got[r]), len(want[r]), got[r])
		}
		for c := range want[r] {
			if got[r][c].kind != want[r][c].kind {
				t.Errorf("record %d field %d: kind = %s, want %s", r, c, got[r][c].kind, want[r][c].kind)
			}
			if got[r][c].value != want[r][c].value {
				t.Errorf("record %d field %d: value = %q, want %q", r, c, got[r][c].value, want[r][c].value)
			}
		}
	}
}

func TestEmptyInputHasNoRecords(t *testing.T) {
	if got := tokenizeAll("", DefaultOptions()); len(got) != 0 {
		t.Fatalf("records = %v, want none", got)
	}
}

func TestTokenPositions(t *testing.T) {
	src := stream.NewString("a,b\nc\n")
	tok := New(src, DefaultOptions())
	defer tok.Release()

	rec, ok := tok.NextRecord()
	if !ok {
		t.Fatal("missing first record")
	}
	for i, tk := range rec {
		if tk.Row != 0 || tk.Col != i {
			t.Errorf("token %d: position = (%d, %d), want (0, %d)", i, tk.Row, tk.Col, i)
		}
	}

	rec, ok = tok.NextRecord()
	if !ok {
		t.Fatal("missing second record")
	}
	if rec[0].Row != 1 || rec[0].Col != 0 {
		t.Errorf("second record position = (%d, %d), want (1, 0)", rec[0].Row, rec[0].Col)
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestErrSurfacesReadFailure(t *testing.T) {
	boom := errors.New("boom")
	src := stream.NewReader(&failingReader{data: "a,b\nc,", err: boom})
	tok := New(src, DefaultOptions())
	defer tok.Release()

	for {
		if _, ok := tok.NextRecord(); !ok {
			break
		}
	}
	if !errors.Is(tok.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", tok.Err(), boom)
	}
}

func TestReleaseStopsIteration(t *testing.T) {
	src := stream.NewString("a,b\nc,d\n")
	tok := New(src, DefaultOptions())
	if _, ok := tok.NextRecord(); !ok {
		t.Fatal("missing first record")
	}
	tok.Release()
	if _, ok := tok.NextRecord(); ok {
		t.Fatal("NextRecord() after Release() returned a record")
	}
}
