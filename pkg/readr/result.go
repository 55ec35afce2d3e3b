package readr

import "time"

// Column is one typed output column. Exactly one of the typed accessors
// returns data, selected by Type; rows where the value did not parse or
// was a missing marker hold the type's sentinel and report IsNA true.
type Column struct {
	// Name is the column name from the header or configuration.
	Name string
	// Type is the resolved column type.
	Type Type

	c *collector
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return c.c.len()
}

// IsNA reports whether row i holds a missing value.
func (c *Column) IsNA(i int) bool {
	return !c.c.valid[i]
}

// Bools returns the values of a logical column, or nil for other types.
func (c *Column) Bools() []bool {
	return c.c.bools
}

// Ints returns the values of an integer column, or nil for other types.
func (c *Column) Ints() []int64 {
	return c.c.ints
}

// Doubles returns the values of a double or number column, or nil for
// other types. Missing rows hold NaN.
func (c *Column) Doubles() []float64 {
	return c.c.doubles
}

// Times returns the values of a date or datetime column, or nil for
// other types. Dates sit at midnight UTC.
func (c *Column) Times() []time.Time {
	return c.c.times
}

// Durations returns the values of a time column as offsets from
// midnight, or nil for other types.
func (c *Column) Durations() []time.Duration {
	return c.c.durs
}

// Strings returns the values of a character column, or nil for other
// types.
func (c *Column) Strings() []string {
	return c.c.strs
}

// Codes returns the values of a factor column as indexes into Levels,
// or nil for other types. Missing rows hold -1.
func (c *Column) Codes() []int {
	return c.c.codes
}

// Levels returns the level set of a factor column, or nil for other
// types.
func (c *Column) Levels() []string {
	return c.c.levels
}

// Value returns row i as an interface value, or nil when it is missing.
func (c *Column) Value(i int) interface{} {
	if !c.c.valid[i] {
		return nil
	}
	switch c.Type {
	case TypeLogical:
		return c.c.bools[i]
	case TypeInteger:
		return c.c.ints[i]
	case TypeDouble, TypeNumber:
		return c.c.doubles[i]
	case TypeDate, TypeDateTime:
		return c.c.times[i]
	case TypeTime:
		return c.c.durs[i]
	case TypeFactor:
		return c.c.levels[c.c.codes[i]]
	default:
		return c.c.strs[i]
	}
}

// Result is the outcome of one parse: the typed columns in source order
// and every problem found along the way.
type Result struct {
	// Columns holds the typed output columns in source order.
	Columns []Column
	// Rows is the number of data rows read.
	Rows int
	// Log collects the problems found during the parse.
	Log *ProblemLog
}

// Column returns the column with the given name.
func (r *Result) Column(name string) (*Column, bool) {
	for i := range r.Columns {
		if r.Columns[i].Name == name {
			return &r.Columns[i], true
		}
	}
	return nil, false
}

// Names returns the column names in source order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Columns))
	for i := range r.Columns {
		names[i] = r.Columns[i].Name
	}
	return names
}

// Problems returns the stored problems in encounter order.
func (r *Result) Problems() []Problem {
	return r.Log.Problems()
}
