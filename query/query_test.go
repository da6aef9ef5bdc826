package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/packet"
	"github.com/flowlens/tplog/section"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplindex"
)

const routerCSV = "EventId,EventTemplate\n1,user <*> connected from <*>\n2,peer <*> timed out\n"

func buildQueryIndex(t *testing.T) (*tplindex.Index, *template.Bank) {
	t.Helper()

	bank, err := template.LoadFromText(routerCSV)
	require.NoError(t, err)

	lines := []string{
		"user alice connected from 10.0.0.1",
		"totally unrelated diagnostic noise",
		"peer 10.0.0.2 timed out",
		"user bob connected from 10.0.0.3",
	}

	events, unknown, rowKinds := bank.ParseLines(lines)

	cfg := packet.NewEncoderConfig(section.MagicQuery)

	blob, err := packet.Encode(events, unknown, rowKinds, bank, routerCSV, cfg)
	require.NoError(t, err)

	idx, err := tplindex.Build(blob, 0)
	require.NoError(t, err)

	return idx, bank
}

func TestKeywordsRequireAllFindsExactMatch(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "alice connected", Options{RequireAll: true})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "user alice connected from 10.0.0.1", hits[0].Text)
	assert.True(t, hits[0].Known)
}

func TestKeywordsRequireAllRejectsPartialMatch(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "alice timed", Options{RequireAll: true})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestKeywordsAnyMatchFindsEitherTerm(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "alice timed", Options{RequireAll: false})
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestKeywordsMatchesUnknownLines(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "diagnostic noise", Options{RequireAll: true})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.False(t, hits[0].Known)
}

func TestKeywordsRespectsLimit(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "connected", Options{RequireAll: true, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestKeywordsEmptyQueryReturnsNoHits(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	hits, err := Keywords(idx, bank, "   ", Options{RequireAll: true})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRouteByTemplateReturnsOnlyMatchingEvent(t *testing.T) {
	idx, bank := buildQueryIndex(t)

	router := NewRouter(idx, bank)

	lines, err := router.RouteByTemplate(2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "peer 10.0.0.2 timed out", lines[0].Text)
}
