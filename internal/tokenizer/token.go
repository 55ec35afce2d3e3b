package tokenizer

// Kind classifies one field token.
type Kind int

const (
	// Plain is unquoted field content.
	Plain Kind = iota
	// Quoted is quoted field content with quotes and escapes resolved.
	Quoted
	// Missing is a field matching a declared missing-value marker.
	Missing
	// Malformed is a quoted field left unterminated at end of input. The
	// partial content up to the end of input is kept.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Quoted:
		return "quoted"
	case Missing:
		return "missing"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Token is one field of a record. Data points into the tokenizer's record
// buffer and is only valid until the next call to NextRecord; copy it to
// retain it. Row and Col are the 0-based record and field indexes, for
// diagnostics.
type Token struct {
	Data []byte
	Kind Kind
	Row  int
	Col  int
}
