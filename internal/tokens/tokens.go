// Package tokens implements whitespace-token accounting. A token here is a
// whitespace-delimited word, not a language-model subword unit; every budget
// in the pipeline (page truncation, rate limiting, history trimming) is
// measured in these units.
package tokens

import "strings"

// Count returns the number of whitespace-delimited tokens in s.
func Count(s string) int {
	return len(strings.Fields(s))
}

// Limit keeps the first n tokens of s, rejoined with single spaces.
func Limit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// Tail keeps the last n tokens of s, rejoined with single spaces.
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[len(fields)-n:]
	}
	return strings.Join(fields, " ")
}
