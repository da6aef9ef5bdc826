// Package query implements keyword search over an indexed blob: tokenize
// the query, probe each packet's Bloom filter to skip ones that provably
// can't match, decompress and render only the survivors, then verify
// every hit against the actual rendered text. The Bloom probe can
// false-positive (forcing an unnecessary decompress), but the final
// substring check guarantees every returned hit is a real match.
package query

import (
	"strings"

	"github.com/flowlens/tplog/codecdecoder"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tokenize"
	"github.com/flowlens/tplog/tplindex"
)

// defaultLimit bounds an unbounded keyword query so a pathological "match
// everything" query can't force scanning the entire archive into memory.
const defaultLimit = 50

// Hit is one matched line, carrying the same identity the line had in
// codecdecoder.Line.
type Hit struct {
	Text    string
	EventID uint64
	Known   bool
}

// Options configures a keyword search.
type Options struct {
	// Limit caps the number of hits returned. <= 0 uses defaultLimit.
	Limit int

	// RequireAll requires every query term to match (AND); false matches
	// if any term is present (OR). This setting governs both the Bloom
	// pre-filter and the final substring verification, so the two stay
	// consistent — a packet is only skipped by the Bloom probe under the
	// same match semantics the verification pass applies to text.
	RequireAll bool
}

// Keywords searches idx for queryText, returning up to Limit hits in
// packet order.
func Keywords(idx *tplindex.Index, bank *template.Bank, queryText string, opts Options) ([]Hit, error) {
	terms := tokenize.Tokens(queryText)
	if len(terms) == 0 {
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var hits []Hit

	for i := 0; i < idx.PacketCount(); i++ {
		if !idx.ProbePacket(i, terms, opts.RequireAll) {
			continue
		}

		batch, err := idx.DecodeBatch(i)
		if err != nil {
			return nil, err
		}

		lines, err := codecdecoder.RenderBatch(batch, bank)
		if err != nil {
			return nil, err
		}

		for _, line := range lines {
			if !matchesTerms(line.Text, terms, opts.RequireAll) {
				continue
			}

			hits = append(hits, Hit{Text: line.Text, EventID: line.EventID, Known: line.Known})

			if len(hits) >= limit {
				return hits, nil
			}
		}
	}

	return hits, nil
}

// matchesTerms reports whether text contains terms under the requireAll
// semantics, case-insensitively — the substring-verification pass that
// resolves any Bloom false positive.
func matchesTerms(text string, terms []string, requireAll bool) bool {
	lower := strings.ToLower(text)

	for _, t := range terms {
		hit := strings.Contains(lower, t)

		if requireAll && !hit {
			return false
		}

		if !requireAll && hit {
			return true
		}
	}

	return requireAll
}
