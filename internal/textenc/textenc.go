// Package textenc converts source bytes in a declared encoding to UTF-8
// and provides the diacritic stripping used by asciified locales. It is a
// thin veneer over golang.org/x/text; no encoding tables live here.
package textenc

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Encoding identifies a resolved text encoding. The zero value means
// native UTF-8.
type Encoding struct {
	name string
	enc  encoding.Encoding // nil for native UTF-8
}

// Name returns the name the encoding was resolved from.
func (e Encoding) Name() string {
	if e.name == "" {
		return "UTF-8"
	}
	return e.name
}

// IsUTF8 reports whether the encoding is native UTF-8.
func (e Encoding) IsUTF8() bool {
	return e.enc == nil
}

// Resolve looks up an encoding by IANA name or alias ("UTF-8", "latin1",
// "windows-1252", ...).
func Resolve(name string) (Encoding, error) {
	trimmed := strings.TrimSpace(name)
	switch strings.ToLower(trimmed) {
	case "utf-8", "utf8":
		return Encoding{name: trimmed}, nil
	}
	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil {
		return Encoding{}, errors.Wrapf(err, "unknown encoding %q", name)
	}
	if enc == nil {
		return Encoding{}, errors.Errorf("unsupported encoding %q", name)
	}
	return Encoding{name: trimmed, enc: enc}, nil
}

// Decode converts b to a UTF-8 string. replaced reports whether any byte
// could not be decoded for e and was substituted with U+FFFD.
func Decode(b []byte, e Encoding) (s string, replaced bool) {
	if e.enc == nil {
		if utf8.Valid(b) {
			return string(b), false
		}
		return string(bytes.ToValidUTF8(b, []byte("�"))), true
	}
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(out, []byte("�"))), true
	}
	// decoders substitute U+FFFD for undecodable bytes rather than failing
	return string(out), bytes.ContainsRune(out, utf8.RuneError)
}

// Asciify returns s with combining diacritical marks removed ("février"
// becomes "fevrier"). Characters that canonical decomposition cannot
// reach are left alone.
func Asciify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
