package primitives

import (
	"github.com/flowlens/tplog/errs"
)

// maxVarintBytes bounds a LEB128 uvarint to 10 bytes, enough for a full
// 64-bit value with one bit of continuation overhead per byte.
const maxVarintBytes = 10

// UvarintEncode encodes v as a little-endian base-128 varint, appending the
// result to dst and returning the grown slice. The high bit of each byte
// signals continuation.
func UvarintEncode(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// UvarintDecode decodes a varint starting at off and returns the decoded
// value together with the offset immediately after it.
//
// Returns errs.ErrTruncated if the slice ends before a terminating byte is
// found, and errs.ErrMalformed if the varint would require more than 10
// bytes (i.e. it encodes more than 64 bits).
func UvarintDecode(data []byte, off int) (uint64, int, error) {
	var v uint64

	for i := 0; i < maxVarintBytes; i++ {
		if off+i >= len(data) {
			return 0, 0, errs.ErrTruncated
		}

		b := data[off+i]
		if i == maxVarintBytes-1 && b >= 0x80 {
			return 0, 0, errs.ErrMalformed
		}

		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, off + i + 1, nil
		}
	}

	return 0, 0, errs.ErrMalformed
}

// UvarintLen returns the number of bytes UvarintEncode would emit for v,
// without allocating.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// ZigzagEncode maps a signed integer to an unsigned one so that small
// magnitude values (positive or negative) stay small after the mapping,
// making them cheap to varint-encode. Formula: (n<<1) ^ (n>>63).
func ZigzagEncode(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63) //nolint:gosec
}

// ZigzagDecode is the inverse of ZigzagEncode.
func ZigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
