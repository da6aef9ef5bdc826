package section

import (
	"github.com/flowlens/tplog/endian"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/primitives"
)

// PacketEntry is one packet's descriptor in the packet table: its absolute
// byte range within the blob, the sorted set of distinct event IDs it
// contains, and its Bloom filter bytes.
type PacketEntry struct {
	Offset uint32
	Length uint32

	// Eids holds the sorted, distinct event IDs present in this packet.
	// On the wire it is delta-coded (each value stored as the uvarint
	// difference from the previous one) so a packet with few distinct
	// templates costs only a handful of bytes.
	Eids []uint64

	// Bloom is the raw Bloom filter bitset, bloom_bits/8 bytes long.
	Bloom []byte
}

// EncodeEidSet delta-codes a sorted, distinct event-ID slice into a byte
// string: the count as a uvarint, followed by each delta as a uvarint.
func EncodeEidSet(eids []uint64) []byte {
	buf := primitives.UvarintEncode(nil, uint64(len(eids)))

	var prev uint64
	for _, eid := range eids {
		buf = primitives.UvarintEncode(buf, eid-prev)
		prev = eid
	}

	return buf
}

// DecodeEidSet is the inverse of EncodeEidSet.
func DecodeEidSet(data []byte) ([]uint64, error) {
	count, off, err := primitives.UvarintDecode(data, 0)
	if err != nil {
		return nil, err
	}

	eids := make([]uint64, 0, count)

	var prev uint64
	for i := uint64(0); i < count; i++ {
		var delta uint64

		delta, off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return nil, err
		}

		prev += delta
		eids = append(eids, prev)
	}

	return eids, nil
}

// Bytes serializes the packet entry: u32 offset | u32 length | bstr eidset
// | bstr bloom.
func (e *PacketEntry) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, 8+len(e.Eids)*2+len(e.Bloom)+4)
	buf = engine.AppendUint32(buf, e.Offset)
	buf = engine.AppendUint32(buf, e.Length)
	buf = primitives.BstrEncode(buf, EncodeEidSet(e.Eids))
	buf = primitives.BstrEncode(buf, e.Bloom)

	return buf
}

// ParsePacketEntry parses one PacketEntry starting at off, returning the
// entry and the offset immediately after it.
func ParsePacketEntry(data []byte, off int) (*PacketEntry, int, error) {
	engine := endian.GetLittleEndianEngine()

	if off+8 > len(data) {
		return nil, 0, errs.ErrTruncated
	}

	e := &PacketEntry{
		Offset: engine.Uint32(data[off : off+4]),
		Length: engine.Uint32(data[off+4 : off+8]),
	}
	off += 8

	eidBytes, off, err := primitives.BstrDecode(data, off)
	if err != nil {
		return nil, 0, err
	}

	e.Eids, err = DecodeEidSet(eidBytes)
	if err != nil {
		return nil, 0, err
	}

	bloomBytes, off, err := primitives.BstrDecode(data, off)
	if err != nil {
		return nil, 0, err
	}

	e.Bloom = bloomBytes

	return e, off, nil
}
