package tplog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/query"
	"github.com/flowlens/tplog/section"
	"github.com/flowlens/tplog/template"
)

const testCSV = "EventId,EventTemplate\n1,user <*> connected from <*>\n2,peer <*> timed out\n"

func TestEncodeOpenDecodeRoundTrip(t *testing.T) {
	bank, err := template.LoadFromText(testCSV)
	require.NoError(t, err)

	lines := []string{
		"user alice connected from 10.0.0.1",
		"some unrecognized line",
		"peer 10.0.0.2 timed out",
	}

	blob, err := Encode(lines, bank, testCSV, section.MagicArchival)
	require.NoError(t, err)

	idx, err := Open(blob, 0)
	require.NoError(t, err)

	decoded, err := Decode(idx, bank)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	for i, want := range lines {
		assert.Equal(t, want, decoded[i].Text)
	}
}

func TestEncodeOpenQueryRoundTrip(t *testing.T) {
	bank, err := template.LoadFromText(testCSV)
	require.NoError(t, err)

	lines := []string{
		"user alice connected from 10.0.0.1",
		"peer 10.0.0.2 timed out",
	}

	blob, err := Encode(lines, bank, testCSV, section.MagicQuery)
	require.NoError(t, err)

	idx, err := Open(blob, 0)
	require.NoError(t, err)

	hits, err := Query(idx, bank, "alice", query.Options{RequireAll: true})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "user alice connected from 10.0.0.1", hits[0].Text)
}
