package readr

import "fmt"

// defaultMaxProblems caps how many problems a single read retains.
const defaultMaxProblems = 1000

// Problem records a single non-fatal parsing issue: a value that did not
// match the expected type, or a structural defect in a record. Parsing
// continues past problems; they are collected on the Result.
type Problem struct {
	// Row is the 1-based data row the problem occurred on. The header row
	// is not counted.
	Row int
	// Col is the 1-based column, or 0 when the problem concerns the whole
	// record rather than one field.
	Col int
	// Expected describes what the parser expected to find.
	Expected string
	// Actual is the offending input.
	Actual string
	// File is the source path, or "" for in-memory sources.
	File string
}

// String formats the problem for display.
func (p Problem) String() string {
	loc := fmt.Sprintf("row %d", p.Row)
	if p.Col > 0 {
		loc = fmt.Sprintf("row %d col %d", p.Row, p.Col)
	}
	if p.File != "" {
		loc = p.File + ": " + loc
	}
	return fmt.Sprintf("%s: expected %s, got %q", loc, p.Expected, p.Actual)
}

// ProblemLog collects the problems of one read up to a cap. Once the cap
// is reached further problems are counted but not stored, so memory stays
// bounded on badly damaged inputs.
type ProblemLog struct {
	max        int
	problems   []Problem
	suppressed int
}

func newProblemLog(max int) *ProblemLog {
	if max <= 0 {
		max = defaultMaxProblems
	}
	return &ProblemLog{max: max}
}

func (l *ProblemLog) add(p Problem) {
	if len(l.problems) >= l.max {
		l.suppressed++
		return
	}
	l.problems = append(l.problems, p)
}

// Problems returns the stored problems in the order they were found.
func (l *ProblemLog) Problems() []Problem {
	out := make([]Problem, len(l.problems))
	copy(out, l.problems)
	return out
}

// Len returns the number of stored problems.
func (l *ProblemLog) Len() int {
	return len(l.problems)
}

// Suppressed returns how many problems were dropped after the cap was hit.
func (l *ProblemLog) Suppressed() int {
	return l.suppressed
}

// Total returns the number of problems found, stored or not.
func (l *ProblemLog) Total() int {
	return len(l.problems) + l.suppressed
}

// ByColumn returns the stored problems for the given 1-based column.
func (l *ProblemLog) ByColumn(col int) []Problem {
	var out []Problem
	for _, p := range l.problems {
		if p.Col == col {
			out = append(out, p)
		}
	}
	return out
}
