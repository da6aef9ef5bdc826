package channel

import (
	"iter"

	"github.com/flowlens/tplog/internal/pool"
	"github.com/flowlens/tplog/primitives"
)

// RawEncoder stores values verbatim as length-prefixed UTF-8 strings:
// uvarint count ++ bstr*count.
type RawEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ Encoder = (*RawEncoder)(nil)

func NewRawEncoder() *RawEncoder {
	return &RawEncoder{buf: pool.GetPacketBuffer()}
}

func (e *RawEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *RawEncoder) Len() int      { return e.count }

func (e *RawEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

func (e *RawEncoder) Finish() {
	pool.PutPacketBuffer(e.buf)
	e.buf = nil
}

func (e *RawEncoder) Write(v string) {
	e.buf.B = primitives.BstrEncode(e.buf.B, []byte(v))
	e.count++
}

func (e *RawEncoder) WriteSlice(values []string) {
	for _, v := range values {
		e.Write(v)
	}
}

// FinishedBytes serializes the full channel payload: uvarint count ++ the
// already-accumulated bstr sequence.
func (e *RawEncoder) FinishedBytes() []byte {
	out := primitives.UvarintEncode(nil, uint64(e.count))
	return append(out, e.Bytes()...)
}

// RawDecoder decodes a RawEncoder payload.
type RawDecoder struct{}

var _ Decoder = RawDecoder{}

func (RawDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		off := 0

		for i := 0; i < count; i++ {
			b, next, err := primitives.BstrDecode(data, off)
			if err != nil {
				return
			}

			off = next
			if !yield(string(b)) {
				return
			}
		}
	}
}

func (RawDecoder) At(data []byte, index int, count int) (string, bool) {
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
			return string(b), true
		}

		off = next
	}

	return "", false
}
