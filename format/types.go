// Package format defines the small enum types shared across tplog's wire
// formats: the per-channel value encoding used by the H1M2 columnar
// payload, and the per-packet byte-stream compression algorithm.
package format

type (
	// ChannelType identifies how one H1M2 channel's non-empty values are
	// encoded, selected per-channel by sampling the first 256 values.
	ChannelType uint8

	// CompressionType identifies the external bytestream compressor used
	// for a packet payload.
	CompressionType uint8
)

const (
	ChannelRaw  ChannelType = 0 // ChannelRaw stores UTF-8 strings verbatim.
	ChannelInt  ChannelType = 1 // ChannelInt stores delta+zigzag varints.
	ChannelHex  ChannelType = 2 // ChannelHex stores raw bytes of a hex string.
	ChannelIP   ChannelType = 3 // ChannelIP stores 4 raw bytes per IPv4 value.
	ChannelDict ChannelType = 4 // ChannelDict stores a frequency-ordered vocabulary plus ids.

	CompressionNone CompressionType = 0 // CompressionNone applies no compression.
	CompressionZstd CompressionType = 1 // CompressionZstd applies Zstandard compression.
	CompressionS2   CompressionType = 2 // CompressionS2 applies S2 (Snappy-compatible) compression.
	CompressionLZ4  CompressionType = 3 // CompressionLZ4 applies LZ4 compression.
)

func (c ChannelType) String() string {
	switch c {
	case ChannelRaw:
		return "Raw"
	case ChannelInt:
		return "Int"
	case ChannelHex:
		return "Hex"
	case ChannelIP:
		return "IP"
	case ChannelDict:
		return "Dict"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
