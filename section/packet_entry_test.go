package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEidSetRoundTrip(t *testing.T) {
	eids := []uint64{1, 2, 5, 100, 101, 9999}

	encoded := EncodeEidSet(eids)
	decoded, err := DecodeEidSet(encoded)
	require.NoError(t, err)
	assert.Equal(t, eids, decoded)
}

func TestEidSetRoundTripEmpty(t *testing.T) {
	encoded := EncodeEidSet(nil)
	decoded, err := DecodeEidSet(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestPacketEntryRoundTrip(t *testing.T) {
	entry := &PacketEntry{
		Offset: 1024,
		Length: 4096,
		Eids:   []uint64{3, 7, 42},
		Bloom:  []byte{0xAA, 0xBB, 0xCC, 0xDD},
	}

	data := entry.Bytes()

	parsed, consumed, err := ParsePacketEntry(data, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	assert.Equal(t, entry.Offset, parsed.Offset)
	assert.Equal(t, entry.Length, parsed.Length)
	assert.Equal(t, entry.Eids, parsed.Eids)
	assert.Equal(t, entry.Bloom, parsed.Bloom)
}

func TestPacketEntryParseTruncated(t *testing.T) {
	entry := &PacketEntry{Offset: 1, Length: 2, Eids: []uint64{1}, Bloom: []byte{0x01}}
	data := entry.Bytes()

	_, _, err := ParsePacketEntry(data[:len(data)-1], 0)
	assert.Error(t, err)
}

func TestMultiplePacketEntriesSequential(t *testing.T) {
	e1 := &PacketEntry{Offset: 0, Length: 10, Eids: []uint64{1}, Bloom: []byte{0x01}}
	e2 := &PacketEntry{Offset: 10, Length: 20, Eids: []uint64{2, 3}, Bloom: []byte{0x02, 0x03}}

	var buf []byte
	buf = append(buf, e1.Bytes()...)
	buf = append(buf, e2.Bytes()...)

	p1, off, err := ParsePacketEntry(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, e1.Offset, p1.Offset)

	p2, _, err := ParsePacketEntry(buf, off)
	require.NoError(t, err)
	assert.Equal(t, e2.Offset, p2.Offset)
	assert.Equal(t, e2.Eids, p2.Eids)
}
