package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flowlens/tplog/errs"
)

// wildcardMarker matches either spelling of a template wildcard.
var wildcardMarker = regexp.MustCompile(`<\*>|\[\*\]`)

// Template is one compiled row of the template bank: an event ID, the
// original pattern text (used for rendering), and the anchored regex used
// to recognize matching log lines.
type Template struct {
	EventID       uint64
	Pattern       string
	regex         *regexp.Regexp
	wildcardCount int
}

// WildcardCount returns the number of wildcard markers in the template.
func (t *Template) WildcardCount() int {
	return t.wildcardCount
}

// Match attempts to match line against the template's anchored regex.
// On success it returns the captured params, trimmed of leading/trailing
// whitespace, in left-to-right order.
func (t *Template) Match(line string) ([]string, bool) {
	groups := t.regex.FindStringSubmatch(line)
	if groups == nil {
		return nil, false
	}

	params := groups[1:]
	for i, p := range params {
		params[i] = strings.TrimSpace(p)
	}

	return params, true
}

// compileTemplate turns a pattern containing `<*>`/`[*]` wildcard markers
// into an anchored, non-greedy regex: literal runs are escaped via
// regexp.QuoteMeta and every wildcard becomes a `(.*?)` capture group.
func compileTemplate(pattern string) (*regexp.Regexp, int, error) {
	var b strings.Builder

	b.WriteByte('^')

	wildcards := 0
	rest := pattern

	for {
		loc := wildcardMarker.FindStringIndex(rest)
		if loc == nil {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}

		b.WriteString(regexp.QuoteMeta(rest[:loc[0]]))
		b.WriteString(`(.*?)`)
		wildcards++
		rest = rest[loc[1]:]
	}

	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, 0, errs.ErrMalformed
	}

	return re, wildcards, nil
}

// parseEventID accepts "E<decimal>", a bare decimal, or "0x<hex>".
func parseEventID(s string) (uint64, error) {
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "E") || strings.HasPrefix(s, "e"):
		return strconv.ParseUint(s[1:], 10, 64)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return strconv.ParseUint(s[2:], 16, 64)
	default:
		return strconv.ParseUint(s, 10, 64)
	}
}

// RenderTemplate substitutes each wildcard marker in tpl with the next
// entry of params, left to right. If params is exhausted before the
// markers are, the remaining markers are left as literal text.
func RenderTemplate(tpl string, params []string) string {
	var b strings.Builder

	idx := 0
	rest := tpl

	for {
		loc := wildcardMarker.FindStringIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:loc[0]])

		if idx < len(params) {
			b.WriteString(params[idx])
			idx++
		} else {
			b.WriteString(rest[loc[0]:loc[1]])
		}

		rest = rest[loc[1]:]
	}

	return b.String()
}
