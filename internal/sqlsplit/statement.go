package sqlsplit

import (
	"strings"
	"unicode/utf8"
)

// previewLimit is the maximum rune length of a statement preview.
const previewLimit = 80

// Statement is one semicolon-delimited unit of SQL from an input document.
// Ordinal is its 1-based position in splitter emission order, assigned
// before cleaning. Cleaned may be empty, meaning the statement was blank or
// comment-only and is excluded from execution.
type Statement struct {
	Ordinal int
	Raw     string
	Cleaned string
}

// Executable reports whether the statement survived cleaning.
func (s Statement) Executable() bool {
	return s.Cleaned != ""
}

// Preview returns a single-line rendering of the cleaned statement for
// progress logging: whitespace runs collapsed to single spaces, truncated
// to 80 runes, with "..." appended when the statement text is longer than
// the limit.
func (s Statement) Preview() string {
	collapsed := strings.Join(strings.Fields(s.Cleaned), " ")
	if r := []rune(collapsed); len(r) > previewLimit {
		collapsed = string(r[:previewLimit])
	}
	if utf8.RuneCountInString(s.Cleaned) > previewLimit {
		collapsed += "..."
	}
	return collapsed
}

// Parse splits a document into statements and cleans each one. Ordinals
// run 1..n over the raw statements in emission order; cleaning may empty a
// statement out but never renumbers the rest.
func Parse(input string) []Statement {
	raw := Split(input)
	stmts := make([]Statement, 0, len(raw))
	for i, r := range raw {
		stmts = append(stmts, Statement{
			Ordinal: i + 1,
			Raw:     r,
			Cleaned: Clean(r),
		})
	}
	return stmts
}

// Executable filters stmts down to the ones that survived cleaning,
// preserving order.
func Executable(stmts []Statement) []Statement {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		if s.Executable() {
			out = append(out, s)
		}
	}
	return out
}
