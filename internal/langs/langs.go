// Package langs holds the built-in month and day name tables used for
// locale construction. The tables are embedded as TOML, decoded once on
// first use, and read-only afterwards.
package langs

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	toml "github.com/pelletier/go-toml"
)

//go:embed langs.toml
var rawTables []byte

// Names is one language's date name set. Day names start with Sunday.
type Names struct {
	Months       []string `toml:"months"`
	MonthsAbbrev []string `toml:"months_abbrev"`
	Days         []string `toml:"days"`
	DaysAbbrev   []string `toml:"days_abbrev"`
	AmPm         []string `toml:"am_pm"`
}

var (
	once   sync.Once
	tables map[string]Names
	codes  []string
)

func load() {
	tree, err := toml.LoadBytes(rawTables)
	if err != nil {
		panic(fmt.Sprintf("langs: embedded tables do not parse: %v", err))
	}
	tables = make(map[string]Names)
	for _, code := range tree.Keys() {
		sub, ok := tree.Get(code).(*toml.Tree)
		if !ok {
			panic(fmt.Sprintf("langs: entry %q is not a table", code))
		}
		var n Names
		if err := sub.Unmarshal(&n); err != nil {
			panic(fmt.Sprintf("langs: entry %q does not decode: %v", code, err))
		}
		if len(n.Months) != 12 || len(n.MonthsAbbrev) != 12 ||
			len(n.Days) != 7 || len(n.DaysAbbrev) != 7 || len(n.AmPm) != 2 {
			panic(fmt.Sprintf("langs: entry %q has wrong table sizes", code))
		}
		tables[code] = n
		codes = append(codes, code)
	}
	sort.Strings(codes)
}

// Lookup returns the name tables for a language code.
func Lookup(code string) (Names, bool) {
	once.Do(load)
	n, ok := tables[code]
	return n, ok
}

// Codes returns the supported language codes in sorted order. The caller
// must not modify the returned slice.
func Codes() []string {
	once.Do(load)
	return codes
}
