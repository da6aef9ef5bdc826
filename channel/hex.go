package channel

import (
	"encoding/hex"
	"iter"
	"strings"

	"github.com/flowlens/tplog/internal/pool"
	"github.com/flowlens/tplog/primitives"
)

// HexEncoder stores hex-looking values as their raw decoded bytes: a
// leading "0x"/"0X" is stripped and an odd-length digit string is padded
// with one leading zero before decoding.
//
// Decoding re-renders lowercase, unprefixed hex digits. The original
// casing and "0x" prefix are not preserved — an accepted lossiness for a
// channel type chosen purely as a size optimization over RAW.
type HexEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ Encoder = (*HexEncoder)(nil)

func NewHexEncoder() *HexEncoder {
	return &HexEncoder{buf: pool.GetPacketBuffer()}
}

func (e *HexEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *HexEncoder) Len() int      { return e.count }

func (e *HexEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

func (e *HexEncoder) Finish() {
	pool.PutPacketBuffer(e.buf)
	e.buf = nil
}

// stripHexPrefix normalizes a hex string for raw-byte encoding: strips a
// leading 0x/0X and left-pads with one zero nibble if the digit count is
// odd.
func stripHexPrefix(v string) string {
	v = strings.TrimPrefix(v, "0x")
	v = strings.TrimPrefix(v, "0X")

	if len(v)%2 != 0 {
		v = "0" + v
	}

	return v
}

func (e *HexEncoder) Write(v string) {
	raw, err := hex.DecodeString(stripHexPrefix(v))
	if err != nil {
		// The selection heuristic only routes values here after
		// confirming they're valid hex; fall back to an empty value on
		// a heuristic miss rather than propagating an encode-time error.
		raw = nil
	}

	e.buf.B = primitives.BstrEncode(e.buf.B, raw)
	e.count++
}

func (e *HexEncoder) WriteSlice(values []string) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *HexEncoder) FinishedBytes() []byte {
	out := primitives.UvarintEncode(nil, uint64(e.count))
	return append(out, e.Bytes()...)
}

// HexDecoder decodes a HexEncoder payload.
type HexDecoder struct{}

var _ Decoder = HexDecoder{}

func (HexDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		off := 0

		for i := 0; i < count; i++ {
			b, next, err := primitives.BstrDecode(data, off)
			if err != nil {
				return
			}

			off = next
			if !yield(hex.EncodeToString(b)) {
				return
			}
		}
	}
}

func (HexDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	off := 0

	for i := 0; i <= index; i++ {
		b, next, err := primitives.BstrDecode(data, off)
		if err != nil {
			return "", false
		}

		if i == index {
			return hex.EncodeToString(b), true
		}

		off = next
	}

	return "", false
}
