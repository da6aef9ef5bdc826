package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/format"
)

var allCodecs = []struct {
	name  string
	codec Codec
}{
	{"none", NewNoOpCompressor()},
	{"zstd", NewZstdCompressor()},
	{"s2", NewS2Compressor()},
	{"lz4", NewLZ4Compressor()},
}

func TestCodecRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("GET /api/v1/users/42 status=200 latency_ms=13\n"), 200)

	for _, tc := range allCodecs {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := tc.codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := tc.codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestCodecRoundTripEmpty(t *testing.T) {
	for _, tc := range allCodecs {
		t.Run(tc.name, func(t *testing.T) {
			compressed, err := tc.codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := tc.codec.Decompress(compressed)
			require.NoError(t, err)
			assert.Empty(t, decompressed)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for ct, want := range map[format.CompressionType]string{
		format.CompressionNone: "none",
		format.CompressionZstd: "zstd",
		format.CompressionS2:   "s2",
		format.CompressionLZ4:  "lz4",
	} {
		codec, err := CreateCodec(ct, "test")
		require.NoError(t, err)
		require.NotNil(t, codec)
		_ = want
	}

	_, err := CreateCodec(format.CompressionType(99), "test")
	assert.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(99))
	assert.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{OriginalSize: 1000, CompressedSize: 250}
	assert.InDelta(t, 0.25, stats.CompressionRatio(), 0.0001)
	assert.InDelta(t, 75.0, stats.SpaceSavings(), 0.0001)

	zero := CompressionStats{}
	assert.Zero(t, zero.CompressionRatio())
}
