package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/flowlens/tplog/errs"
)

// CompressWithDict compresses data against a shared dictionary, used for
// the TPF2 dictionary-variant blob where every packet payload is encoded
// against the same trained dictionary instead of independently. Always
// uses the pure-Go klauspost encoder: gozstd's dictionary support needs a
// cgo *CDict handle per dictionary, which isn't worth the build-tag split
// for a path that runs once per packet, not in the hot per-byte loop.
func CompressWithDict(data, dict []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderDict(dict))
	if err != nil {
		return nil, fmt.Errorf("%w: building dict encoder: %v", errs.ErrCompressor, err) //nolint:errorlint
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// DecompressWithDict is the inverse of CompressWithDict.
func DecompressWithDict(data, dict []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderDicts(dict))
	if err != nil {
		return nil, fmt.Errorf("%w: building dict decoder: %v", errs.ErrCompressor, err) //nolint:errorlint
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressor, err) //nolint:errorlint
	}

	return out, nil
}
