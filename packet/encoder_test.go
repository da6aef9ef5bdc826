package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/bloomfilter"
	"github.com/flowlens/tplog/channel"
	"github.com/flowlens/tplog/compress"
	"github.com/flowlens/tplog/format"
	"github.com/flowlens/tplog/section"
	"github.com/flowlens/tplog/template"
)

func bloomFromEntry(t *testing.T, e *section.PacketEntry, k int) *bloomfilter.Bloom {
	t.Helper()
	return bloomfilter.FromBytes(e.Bloom, k)
}

const sampleCSV = "EventId,EventTemplate\n1,connected <*>\n2,peer <*>\n"

func sampleRows() ([]template.EventRow, []string, []template.RowKind) {
	events := []template.EventRow{
		{EventID: 1, Params: []string{"10"}},
		{EventID: 1, Params: []string{"11"}},
		{EventID: 2, Params: []string{"192.168.0.1"}},
	}
	unknown := []string{"totally unparsed garbage line"}
	rowKinds := []template.RowKind{template.RowKnown, template.RowUnknown, template.RowKnown, template.RowKnown}

	return events, unknown, rowKinds
}

func sampleBank(t *testing.T) *template.Bank {
	t.Helper()

	bank, err := template.LoadFromText(sampleCSV)
	require.NoError(t, err)

	return bank
}

func TestEncodeProducesParsableHeaderAndTable(t *testing.T) {
	events, unknown, rowKinds := sampleRows()
	cfg := NewEncoderConfig(section.MagicArchival)
	cfg.PacketEvents = 2

	blob, err := Encode(events, unknown, rowKinds, sampleBank(t), sampleCSV, cfg)
	require.NoError(t, err)

	header, off, err := section.ParseHeader(blob)
	require.NoError(t, err)
	assert.Equal(t, section.MagicArchival, header.Magic)
	assert.Equal(t, uint64(2), header.PacketCount)

	var entries []*section.PacketEntry

	for i := uint64(0); i < header.PacketCount; i++ {
		entry, next, perr := section.ParsePacketEntry(blob, off)
		require.NoError(t, perr)

		entries = append(entries, entry)
		off = next
	}

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	var gotEvents int

	for _, e := range entries {
		require.LessOrEqual(t, int(e.Offset+e.Length), len(blob))

		payload, derr := codec.Decompress(blob[e.Offset : e.Offset+e.Length])
		require.NoError(t, derr)

		batch, berr := channel.Decode(payload)
		require.NoError(t, berr)

		gotEvents += len(batch.EventIDs)
	}

	assert.Equal(t, len(events), gotEvents)
}

func TestEncodeIndexesRenderedLineNotJustParams(t *testing.T) {
	events := []template.EventRow{{EventID: 1, Params: []string{"10"}}}
	rowKinds := []template.RowKind{template.RowKnown}

	cfg := NewEncoderConfig(section.MagicArchival)

	blob, err := Encode(events, nil, rowKinds, sampleBank(t), sampleCSV, cfg)
	require.NoError(t, err)

	header, off, err := section.ParseHeader(blob)
	require.NoError(t, err)

	entry, _, err := section.ParsePacketEntry(blob, off)
	require.NoError(t, err)

	bf := bloomFromEntry(t, entry, int(header.BloomK))
	assert.True(t, bf.Probe([]string{"connected"}, true), "static template word must be indexed, not just wildcard values")
}

func TestEncodeEmptyInputProducesZeroPacketBlob(t *testing.T) {
	cfg := NewEncoderConfig(section.MagicArchival)

	blob, err := Encode(nil, nil, nil, sampleBank(t), sampleCSV, cfg)
	require.NoError(t, err)

	header, _, err := section.ParseHeader(blob)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), header.PacketCount)
}

func TestEncodeUnknownOnlyProducesSinglePacket(t *testing.T) {
	cfg := NewEncoderConfig(section.MagicArchival)

	unknown := []string{"a", "b", "c"}
	rowKinds := []template.RowKind{template.RowUnknown, template.RowUnknown, template.RowUnknown}

	blob, err := Encode(nil, unknown, rowKinds, sampleBank(t), sampleCSV, cfg)
	require.NoError(t, err)

	header, _, err := section.ParseHeader(blob)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), header.PacketCount)
}

func TestEncodePreservesEventsOverflowAcrossPackets(t *testing.T) {
	cfg := NewEncoderConfig(section.MagicArchival)
	cfg.PacketEvents = 1

	events, unknown, rowKinds := sampleRows()

	blob, err := Encode(events, unknown, rowKinds, sampleBank(t), sampleCSV, cfg)
	require.NoError(t, err)

	header, _, err := section.ParseHeader(blob)
	require.NoError(t, err)

	// 1 event in the first packet, 2 overflow events chunked into 2 more.
	assert.Equal(t, uint64(3), header.PacketCount)
}
