package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/tplog/template"
)

func TestEncodeDecodeBatchRoundTrip(t *testing.T) {
	b := Batch{
		EventIDs: []uint64{1, 2, 1, 3},
		Params: [][]string{
			{"alice", "10.0.0.1"},
			{"8080"},
			{"bob", "192.168.1.1"},
			{},
		},
		Unknown: []string{"unrecognized line one", "another oddball line"},
		RowKinds: []template.RowKind{
			template.RowKnown, template.RowUnknown, template.RowKnown,
			template.RowKnown, template.RowUnknown, template.RowKnown,
		},
	}

	data, err := Encode(b)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, b.EventIDs, decoded.EventIDs)
	assert.Equal(t, b.Params, decoded.Params)
	assert.Equal(t, b.Unknown, decoded.Unknown)
	assert.Equal(t, b.RowKinds, decoded.RowKinds)
}

func TestEncodeDecodeEmptyBatch(t *testing.T) {
	data, err := Encode(Batch{})
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.EventIDs)
	assert.Empty(t, decoded.Unknown)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data, err := Encode(Batch{EventIDs: []uint64{1}, Params: [][]string{{"x"}}})
	require.NoError(t, err)
	data[0] = 'Z'

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	data, err := Encode(Batch{
		EventIDs: []uint64{1, 2},
		Params:   [][]string{{"a"}, {"b"}},
		RowKinds: []template.RowKind{template.RowKnown, template.RowKnown},
	})
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-2])
	assert.Error(t, err)
}

func TestBatchIntChannelSelection(t *testing.T) {
	b := Batch{
		EventIDs: []uint64{1, 1, 1},
		Params:   [][]string{{"100"}, {"105"}, {"99"}},
		RowKinds: []template.RowKind{template.RowKnown, template.RowKnown, template.RowKnown},
	}

	data, err := Encode(b)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"100"}, decoded.Params[0])
	assert.Equal(t, []string{"105"}, decoded.Params[1])
	assert.Equal(t, []string{"99"}, decoded.Params[2])
}

func TestBatchIPChannelSelection(t *testing.T) {
	b := Batch{
		EventIDs: []uint64{1, 1},
		Params:   [][]string{{"10.0.0.1"}, {"192.168.1.254"}},
		RowKinds: []template.RowKind{template.RowKnown, template.RowKnown},
	}

	data, err := Encode(b)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", decoded.Params[0][0])
	assert.Equal(t, "192.168.1.254", decoded.Params[1][0])
}

func TestBatchDictChannelSelectionOnHeavyRepeats(t *testing.T) {
	params := make([][]string, 0, 20)
	kinds := make([]template.RowKind, 0, 20)
	eids := make([]uint64, 0, 20)

	for i := 0; i < 20; i++ {
		val := "GET"
		if i%5 == 0 {
			val = "POST"
		}

		params = append(params, []string{val})
		kinds = append(kinds, template.RowKnown)
		eids = append(eids, 1)
	}

	b := Batch{EventIDs: eids, Params: params, RowKinds: kinds}

	data, err := Encode(b)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	for i := range params {
		assert.Equal(t, params[i], decoded.Params[i])
	}
}

func TestDecodeForEventIDShortCircuitsOnMiss(t *testing.T) {
	b := Batch{
		EventIDs: []uint64{1, 2},
		Params:   [][]string{{"a"}, {"b"}},
		RowKinds: []template.RowKind{template.RowKnown, template.RowKnown},
	}

	data, err := Encode(b)
	require.NoError(t, err)

	rows, found, err := DecodeForEventID(data, 999)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rows)
}

func TestDecodeForEventIDReturnsMatchingRows(t *testing.T) {
	b := Batch{
		EventIDs: []uint64{1, 2, 1},
		Params:   [][]string{{"a"}, {"b"}, {"c"}},
		RowKinds: []template.RowKind{template.RowKnown, template.RowKnown, template.RowKnown},
	}

	data, err := Encode(b)
	require.NoError(t, err)

	rows, found, err := DecodeForEventID(data, 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a"}, rows[0])
	assert.Equal(t, []string{"c"}, rows[1])
}
