package channel

import (
	"iter"
	"net"

	"github.com/flowlens/tplog/internal/pool"
	"github.com/flowlens/tplog/primitives"
)

// IPEncoder stores IPv4 addresses as 4 raw bytes each: uvarint count ++ (4
// raw bytes)*count.
type IPEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ Encoder = (*IPEncoder)(nil)

func NewIPEncoder() *IPEncoder {
	return &IPEncoder{buf: pool.GetPacketBuffer()}
}

func (e *IPEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *IPEncoder) Len() int      { return e.count }

func (e *IPEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

func (e *IPEncoder) Finish() {
	pool.PutPacketBuffer(e.buf)
	e.buf = nil
}

func (e *IPEncoder) Write(v string) {
	ip := net.ParseIP(v)

	var b4 [4]byte
	if ip4 := ip.To4(); ip4 != nil {
		copy(b4[:], ip4)
	}

	e.buf.B = append(e.buf.B, b4[:]...)
	e.count++
}

func (e *IPEncoder) WriteSlice(values []string) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *IPEncoder) FinishedBytes() []byte {
	out := primitives.UvarintEncode(nil, uint64(e.count))
	return append(out, e.Bytes()...)
}

// IPDecoder decodes an IPEncoder payload.
type IPDecoder struct{}

var _ Decoder = IPDecoder{}

func (IPDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < count; i++ {
			off := i * 4
			if off+4 > len(data) {
				return
			}

			ip := net.IPv4(data[off], data[off+1], data[off+2], data[off+3])
			if !yield(ip.String()) {
				return
			}
		}
	}
}

func (IPDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	off := index * 4
	if off+4 > len(data) {
		return "", false
	}

	return net.IPv4(data[off], data[off+1], data[off+2], data[off+3]).String(), true
}
