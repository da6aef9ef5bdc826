package channel

import (
	"iter"
	"strconv"

	"github.com/flowlens/tplog/internal/pool"
	"github.com/flowlens/tplog/primitives"
)

// IntEncoder stores values as delta+zigzag-coded integers: the first value
// is zigzag-coded absolute, every following value is zigzag-coded as the
// delta from its predecessor.
type IntEncoder struct {
	buf   *pool.ByteBuffer
	count int
	prev  int64
}

var _ Encoder = (*IntEncoder)(nil)

func NewIntEncoder() *IntEncoder {
	return &IntEncoder{buf: pool.GetPacketBuffer()}
}

func (e *IntEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *IntEncoder) Len() int      { return e.count }

func (e *IntEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
	e.prev = 0
}

func (e *IntEncoder) Finish() {
	pool.PutPacketBuffer(e.buf)
	e.buf = nil
}

// Write parses v as a base-10 integer and appends its delta-coded form.
// The caller (the channel-type selection heuristic) guarantees every value
// in an INT channel parses cleanly; this is not re-validated here.
func (e *IntEncoder) Write(v string) {
	n, _ := strconv.ParseInt(v, 10, 64)

	var delta int64
	if e.count == 0 {
		delta = n
	} else {
		delta = n - e.prev
	}

	e.prev = n
	e.buf.B = primitives.UvarintEncode(e.buf.B, primitives.ZigzagEncode(delta))
	e.count++
}

func (e *IntEncoder) WriteSlice(values []string) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *IntEncoder) FinishedBytes() []byte {
	out := primitives.UvarintEncode(nil, uint64(e.count))
	return append(out, e.Bytes()...)
}

// IntDecoder decodes an IntEncoder payload back into base-10 strings.
type IntDecoder struct{}

var _ Decoder = IntDecoder{}

func decodeIntValues(data []byte, count int) ([]int64, error) {
	values := make([]int64, 0, count)

	var prev int64

	off := 0

	for i := 0; i < count; i++ {
		u, next, err := primitives.UvarintDecode(data, off)
		if err != nil {
			return nil, err
		}

		off = next
		delta := primitives.ZigzagDecode(u)

		var n int64
		if i == 0 {
			n = delta
		} else {
			n = prev + delta
		}

		prev = n
		values = append(values, n)
	}

	return values, nil
}

func (IntDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		values, err := decodeIntValues(data, count)
		if err != nil {
			return
		}

		for _, v := range values {
			if !yield(strconv.FormatInt(v, 10)) {
				return
			}
		}
	}
}

func (IntDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	values, err := decodeIntValues(data, index+1)
	if err != nil {
		return "", false
	}

	return strconv.FormatInt(values[index], 10), true
}
