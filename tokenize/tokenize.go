// Package tokenize provides the single keyword tokenizer shared by the
// packet encoder (index time) and the query engine (probe time). Both
// sides must agree on exactly the same token boundaries, or a Bloom probe
// built from one side's tokens can never match the other's.
package tokenize

import (
	"regexp"
	"strings"
)

// tokenPattern matches a keyword run: letters, digits, and the small set
// of punctuation common in log text (paths, hosts, timestamps) that a
// useful keyword search still wants to match against, as a single token.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9_./:-]{2,}`)

// Tokens extracts and lowercases every keyword run of at least two
// characters from text.
func Tokens(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	for i, m := range matches {
		matches[i] = strings.ToLower(m)
	}

	return matches
}
