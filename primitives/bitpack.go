package primitives

import "github.com/flowlens/tplog/errs"

// BitPack packs values into a little-endian, LSB-first bit stream using
// exactly bits bits per value (bits must be in [0, 64]). The final byte is
// zero-padded in its high bits.
func BitPack(values []uint64, bits int) []byte {
	if bits == 0 || len(values) == 0 {
		return nil
	}

	totalBits := len(values) * bits
	out := make([]byte, (totalBits+7)/8)

	bitPos := 0
	for _, v := range values {
		for b := 0; b < bits; b++ {
			if v&(1<<uint(b)) != 0 {
				out[bitPos/8] |= 1 << uint(bitPos%8)
			}
			bitPos++
		}
	}

	return out
}

// BitUnpack unpacks count values of the given bit width from data. Returns
// errs.ErrTruncated if data cannot supply count*bits bits.
func BitUnpack(data []byte, count int, bits int) ([]uint64, error) {
	if count == 0 || bits == 0 {
		return make([]uint64, count), nil
	}

	needBits := count * bits
	if len(data)*8 < needBits {
		return nil, errs.ErrTruncated
	}

	out := make([]uint64, count)
	bitPos := 0
	for i := 0; i < count; i++ {
		var v uint64
		for b := 0; b < bits; b++ {
			byteIdx := bitPos / 8
			bitIdx := uint(bitPos % 8)
			if data[byteIdx]&(1<<bitIdx) != 0 {
				v |= 1 << uint(b)
			}
			bitPos++
		}
		out[i] = v
	}

	return out, nil
}
