// Package sqlsplit divides multi-statement SQL text into individually
// executable statements.
//
// The splitter is deliberately not a SQL parser. The only characters it
// treats as structural are semicolons, single and double quotes, and
// backslash escapes; everything else passes through untouched. Known
// limitation: backquoted identifiers are not tracked, so a semicolon or
// quote inside one will be mishandled.
package sqlsplit

import "strings"

// scanMode tracks whether the scanner is inside a quoted string literal.
// The scanner is in exactly one mode at a time.
type scanMode int

const (
	modeNormal scanMode = iota
	modeSingleQuote
	modeDoubleQuote
)

// Split divides SQL text into statements on semicolons that appear outside
// string literals. Statements are trimmed of surrounding whitespace; empty
// ones are dropped. A final statement with no trailing semicolon is still
// emitted. Unbalanced quotes at end of input are not an error: splitting is
// best-effort, not syntax checking.
//
// The scan operates on runes so that the one-character escape lookahead
// cannot split a multi-byte character.
func Split(input string) []string {
	var stmts []string
	var buf strings.Builder
	mode := modeNormal

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		// Backslash escapes the next character regardless of mode. A
		// trailing backslash at end of input is an ordinary character.
		if c == '\\' && i+1 < len(runes) {
			buf.WriteRune(c)
			buf.WriteRune(runes[i+1])
			i++
			continue
		}

		switch {
		case c == '\'' && mode != modeDoubleQuote:
			if mode == modeSingleQuote {
				mode = modeNormal
			} else {
				mode = modeSingleQuote
			}
			buf.WriteRune(c)
		case c == '"' && mode != modeSingleQuote:
			if mode == modeDoubleQuote {
				mode = modeNormal
			} else {
				mode = modeDoubleQuote
			}
			buf.WriteRune(c)
		case c == ';' && mode == modeNormal:
			if s := strings.TrimSpace(buf.String()); s != "" {
				stmts = append(stmts, s)
			}
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}

	if s := strings.TrimSpace(buf.String()); s != "" {
		stmts = append(stmts, s)
	}

	return stmts
}
