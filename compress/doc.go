// Package compress provides compression and decompression codecs for tplog
// packet payloads.
//
// Compression is applied after H1M2 columnar encoding, as an independent
// per-packet layer: each packet's encoded row batch is compressed on its
// own so packets remain individually decodable without touching their
// neighbors.
//
// # Supported Algorithms
//
//   - None: no compression (format.CompressionNone)
//   - Zstd: best compression ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced speed and ratio (format.CompressionS2)
//   - LZ4: fastest decompression (format.CompressionLZ4)
//
// # Architecture
//
// The package defines three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec construct a Codec from a format.CompressionType.
// The blob header does not record a compression type: the packet encoder
// and the index both use Zstd for every blob variant.
//
// # Choosing an algorithm
//
// Zstd gives the best ratio and is the codec used for packet payloads.
// S2 and LZ4 trade ratio for decompression speed; they are available to
// callers of CreateCodec/GetCodec but are not used by the packet encoder.
// In query-mode blobs the Bloom filter is probed before a packet is
// decompressed, so packets that cannot match are never decompressed.
package compress
