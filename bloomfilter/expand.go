package bloomfilter

import "strings"

// ExpandTokens returns the set of forms to index for a single token: the
// raw token always; a light stem when stemEnabled; and a `pref:<first_N>`
// prefix form when prefixLen > 0 and the token is long enough. This
// expansion happens only at index time, so query-time plural/-ing/-ed
// variants can probe the stem form without re-indexing.
func ExpandTokens(token string, stemEnabled bool, prefixLen int) []string {
	forms := []string{token}

	if stemEnabled {
		if stem := lightStem(token); stem != token {
			forms = append(forms, stem)
		}
	}

	if prefixLen > 0 && len(token) > prefixLen {
		forms = append(forms, "pref:"+token[:prefixLen])
	}

	return forms
}

// lightStem strips the most common English inflectional suffixes. It's
// intentionally crude: it only needs to make plural/participle query
// variants collide with their indexed base form often enough to help,
// never to be linguistically correct.
func lightStem(token string) string {
	suffixes := []string{"ing", "ed", "es", "s"}

	for _, sfx := range suffixes {
		if strings.HasSuffix(token, sfx) && len(token) > len(sfx)+2 {
			return strings.TrimSuffix(token, sfx)
		}
	}

	return token
}
