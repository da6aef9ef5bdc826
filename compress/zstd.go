package compress

// ZstdCompressor provides Zstandard compression optimized for tplog packet
// payloads.
//
// This compressor favors compression ratio over speed, making it the
// default choice for archival-mode blobs:
//   - Cold storage and long-term retention of log archives
//   - Network transmission where bandwidth is limited
//   - Scenarios where most packets are never decompressed after indexing
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Memory usage: moderate (the pure-Go build reuses pooled encoders/decoders)
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
