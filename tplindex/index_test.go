package tplindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/packet"
	"github.com/flowlens/tplog/section"
	"github.com/flowlens/tplog/template"
)

func buildTestBlob(t *testing.T, packetEvents int) []byte {
	t.Helper()

	const csv = "EventId,EventTemplate\n1,count <*>\n2,peer <*>\n"

	events := []template.EventRow{
		{EventID: 1, Params: []string{"10"}},
		{EventID: 2, Params: []string{"192.168.0.5"}},
		{EventID: 1, Params: []string{"20"}},
	}
	unknown := []string{"unparsed line"}
	rowKinds := []template.RowKind{template.RowKnown, template.RowUnknown, template.RowKnown, template.RowKnown}

	bank, err := template.LoadFromText(csv)
	require.NoError(t, err)

	cfg := packet.NewEncoderConfig(section.MagicArchival)
	cfg.PacketEvents = packetEvents

	blob, err := packet.Encode(events, unknown, rowKinds, bank, csv, cfg)
	require.NoError(t, err)

	return blob
}

func TestBuildParsesHeaderAndTable(t *testing.T) {
	blob := buildTestBlob(t, 10)

	idx, err := Build(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.PacketCount())
}

func TestDecodeBatchRoundTrips(t *testing.T) {
	blob := buildTestBlob(t, 10)

	idx, err := Build(blob, 0)
	require.NoError(t, err)

	batch, err := idx.DecodeBatch(0)
	require.NoError(t, err)
	assert.Len(t, batch.EventIDs, 3)
	assert.Len(t, batch.Unknown, 1)
}

func TestDecodeBatchUsesCache(t *testing.T) {
	blob := buildTestBlob(t, 10)

	idx, err := Build(blob, 4)
	require.NoError(t, err)

	first, err := idx.DecodeBatch(0)
	require.NoError(t, err)

	second, err := idx.DecodeBatch(0)
	require.NoError(t, err)

	assert.Equal(t, first.EventIDs, second.EventIDs)
}

func TestProbePacketFindsIndexedToken(t *testing.T) {
	blob := buildTestBlob(t, 10)

	idx, err := Build(blob, 0)
	require.NoError(t, err)

	assert.True(t, idx.ProbePacket(0, []string{"192.168.0.5"}, true))
}

func TestPacketsForEventIDMatchesOnlyContainingPackets(t *testing.T) {
	blob := buildTestBlob(t, 1)

	idx, err := Build(blob, 0)
	require.NoError(t, err)

	matches := idx.PacketsForEventID(2)
	assert.NotEmpty(t, matches)

	for _, i := range matches {
		batch, err := idx.DecodeBatch(i)
		require.NoError(t, err)

		found := false

		for _, id := range batch.EventIDs {
			if id == 2 {
				found = true
			}
		}

		assert.True(t, found)
	}
}

func TestPacketPayloadRejectsOutOfRangeIndex(t *testing.T) {
	blob := buildTestBlob(t, 10)

	idx, err := Build(blob, 0)
	require.NoError(t, err)

	_, err = idx.PacketPayload(99)
	assert.Error(t, err)
}
