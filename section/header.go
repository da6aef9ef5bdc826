package section

import (
	"github.com/flowlens/tplog/endian"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/primitives"
)

// Header is the common prefix shared by TPF3, PFQ1, and TPF2 blobs: magic,
// version, compressor/Bloom configuration, the optional shared dictionary
// (TPF2 only), the embedded template-text table, and the packet count.
//
// Unlike mebo's fixed 32-byte NumericHeader, Header is variable-length: the
// dictionary and template-CSV blocks are length-prefixed, and the packet
// count is a uvarint. ParseHeader reports how many bytes it consumed so the
// caller can locate the start of the packet table.
type Header struct {
	Magic        [4]byte
	Version      uint32
	ZstdLevel    uint32
	PacketEvents uint32
	BloomBits    uint32
	BloomK       uint32

	// DictBytes holds the shared compression dictionary. Non-empty only
	// when Magic == MagicDictionary; nil otherwise.
	DictBytes []byte

	// TplCSV holds the verbatim template text table consumed by
	// template.LoadFromText, embedded so the blob is self-describing.
	TplCSV []byte

	PacketCount uint64
}

// NewHeader creates a Header with the given magic and spec-default
// configuration for that variant (archival blobs use larger packets and no
// Bloom sizing pressure; query blobs use small packets for selectivity).
func NewHeader(magic [4]byte) *Header {
	h := &Header{
		Magic:     magic,
		Version:   CurrentVersion,
		ZstdLevel: DefaultZstdLevel,
		BloomBits: DefaultBloomBits,
		BloomK:    DefaultBloomK,
	}

	if magic == MagicQuery || magic == MagicDictionary {
		h.PacketEvents = DefaultQueryPacketEvents
	} else {
		h.PacketEvents = DefaultArchivalPacketEvents
	}

	return h
}

// IsDictionaryVariant reports whether this header is the TPF2 shared-dict
// variant, which carries a DictBytes block.
func (h *Header) IsDictionaryVariant() bool {
	return h.Magic == MagicDictionary
}

// Bytes serializes the header, including the packet-count uvarint, but not
// the packet table or payloads that follow it.
func (h *Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, 64+len(h.DictBytes)+len(h.TplCSV))
	buf = append(buf, h.Magic[:]...)
	buf = engine.AppendUint32(buf, h.Version)
	buf = engine.AppendUint32(buf, h.ZstdLevel)
	buf = engine.AppendUint32(buf, h.PacketEvents)
	buf = engine.AppendUint32(buf, h.BloomBits)
	buf = engine.AppendUint32(buf, h.BloomK)

	if h.IsDictionaryVariant() {
		buf = engine.AppendUint32(buf, uint32(len(h.DictBytes))) //nolint:gosec
		buf = append(buf, h.DictBytes...)
	}

	buf = engine.AppendUint32(buf, uint32(len(h.TplCSV))) //nolint:gosec
	buf = append(buf, h.TplCSV...)
	buf = primitives.UvarintEncode(buf, h.PacketCount)

	return buf
}

// ParseHeader parses a Header from the start of data and returns it along
// with the number of bytes consumed, i.e. the byte offset where the packet
// table begins.
//
// Returns errs.ErrMalformed for an unrecognized magic or version, and
// errs.ErrTruncated if data ends before a complete header is read.
func ParseHeader(data []byte) (*Header, int, error) {
	if len(data) < MagicSize+4*Uint32Size {
		return nil, 0, errs.ErrTruncated
	}

	h := &Header{}
	copy(h.Magic[:], data[0:MagicSize])

	switch h.Magic {
	case MagicArchival, MagicQuery, MagicDictionary:
	default:
		return nil, 0, errs.ErrMalformed
	}

	engine := endian.GetLittleEndianEngine()
	off := MagicSize

	h.Version = engine.Uint32(data[off : off+4])
	off += 4
	if h.Version != CurrentVersion {
		return nil, 0, errs.ErrMalformed
	}

	h.ZstdLevel = engine.Uint32(data[off : off+4])
	off += 4
	h.PacketEvents = engine.Uint32(data[off : off+4])
	off += 4
	h.BloomBits = engine.Uint32(data[off : off+4])
	off += 4
	h.BloomK = engine.Uint32(data[off : off+4])
	off += 4

	if h.IsDictionaryVariant() {
		if off+4 > len(data) {
			return nil, 0, errs.ErrTruncated
		}

		dictLen := int(engine.Uint32(data[off : off+4]))
		off += 4

		if dictLen < 0 || off+dictLen > len(data) {
			return nil, 0, errs.ErrTruncated
		}

		if dictLen > 0 {
			h.DictBytes = data[off : off+dictLen]
		}

		off += dictLen
	}

	if off+4 > len(data) {
		return nil, 0, errs.ErrTruncated
	}

	tplLen := int(engine.Uint32(data[off : off+4]))
	off += 4

	if tplLen < 0 || off+tplLen > len(data) {
		return nil, 0, errs.ErrTruncated
	}

	h.TplCSV = data[off : off+tplLen]
	off += tplLen

	packetCount, off2, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return nil, 0, err
	}

	h.PacketCount = packetCount

	return h, off2, nil
}
