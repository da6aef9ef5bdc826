package primitives_test

import (
	"testing"

	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range values {
		enc := primitives.UvarintEncode(nil, v)
		assert.Equal(t, primitives.UvarintLen(v), len(enc))

		got, n, err := primitives.UvarintDecode(enc, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(enc), n)
	}
}

func TestUvarintDecodeTruncated(t *testing.T) {
	_, _, err := primitives.UvarintDecode([]byte{0x80, 0x80}, 0)
	assert.ErrorIs(t, err, errs.ErrTruncated)
}

func TestUvarintDecodeMalformedOverflow(t *testing.T) {
	// 10 continuation bytes, all with the high bit set: never terminates
	// within the 10-byte budget.
	data := make([]byte, 10)
	for i := range data {
		data[i] = 0xFF
	}

	_, _, err := primitives.UvarintDecode(data, 0)
	assert.ErrorIs(t, err, errs.ErrMalformed)
}

func TestZigzagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 1 << 30, -(1 << 30), 1<<62 - 1}
	for _, v := range values {
		u := primitives.ZigzagEncode(v)
		assert.Equal(t, v, primitives.ZigzagDecode(u))
	}
}

func TestBstrRoundTrip(t *testing.T) {
	var buf []byte
	buf = primitives.BstrEncode(buf, []byte("hello"))
	buf = primitives.BstrEncode(buf, []byte(""))
	buf = primitives.BstrEncode(buf, []byte("world!"))

	got, off, err := primitives.BstrDecode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, off, err = primitives.BstrDecode(buf, off)
	require.NoError(t, err)
	assert.Equal(t, "", string(got))

	got, _, err = primitives.BstrDecode(buf, off)
	require.NoError(t, err)
	assert.Equal(t, "world!", string(got))
}

func TestBstrDecodeTruncated(t *testing.T) {
	var buf []byte
	buf = primitives.UvarintEncode(buf, 10)
	buf = append(buf, []byte("short")...)

	_, _, err := primitives.BstrDecode(buf, 0)
	assert.ErrorIs(t, err, errs.ErrTruncated)
}

func TestBitPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		bits   int
		values []uint64
	}{
		{bits: 1, values: []uint64{0, 1, 1, 0, 1}},
		{bits: 3, values: []uint64{0, 7, 5, 2, 6, 1}},
		{bits: 8, values: []uint64{0, 255, 128, 42}},
		{bits: 13, values: []uint64{0, 8191, 4096, 1}},
	}

	for _, c := range cases {
		packed := primitives.BitPack(c.values, c.bits)
		got, err := primitives.BitUnpack(packed, len(c.values), c.bits)
		require.NoError(t, err)
		assert.Equal(t, c.values, got)
	}
}

func TestBitUnpackTruncated(t *testing.T) {
	_, err := primitives.BitUnpack([]byte{0x01}, 10, 8)
	assert.ErrorIs(t, err, errs.ErrTruncated)
}
