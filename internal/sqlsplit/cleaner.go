package sqlsplit

import "strings"

// Clean removes comment-only and blank lines from a raw statement and trims
// the result. Lines are dropped when their trimmed form is empty or starts
// with "--"; kept lines retain their original formatting. An empty return
// value means the statement was blank or all comments and should not be
// executed.
//
// Inline comments on lines that also carry SQL, and block comments, pass
// through unchanged.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
