package channel

import (
	"github.com/flowlens/tplog/endian"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/format"
	"github.com/flowlens/tplog/primitives"
	"github.com/flowlens/tplog/template"
)

// magic identifies an encoded batch. The literal bytes are "H1M1" even
// though the component carrying this format is referred to as H1M2 — the
// wire magic and the component name simply don't match, by design.
var magic = [4]byte{'H', '1', 'M', '1'}

const batchVersion = uint32(1)

// Batch is one packet's worth of rows: the recognized event rows, the
// unrecognized lines, and the row-kind bitmap recording their original
// positional interleaving.
type Batch struct {
	EventIDs []uint64
	Params   [][]string
	Unknown  []string
	RowKinds []template.RowKind
}

// bitmapBytes packs kinds into a little-endian, LSB-first bit array: bit i
// set means row i is a known (event) row.
func bitmapBytes(kinds []template.RowKind) []byte {
	out := make([]byte, (len(kinds)+7)/8)

	for i, k := range kinds {
		if k == template.RowKnown {
			out[i/8] |= 1 << uint(i%8)
		}
	}

	return out
}

func bitmapKinds(data []byte, n int) []template.RowKind {
	kinds := make([]template.RowKind, n)

	for i := 0; i < n; i++ {
		if data[i/8]&(1<<uint(i%8)) != 0 {
			kinds[i] = template.RowKnown
		} else {
			kinds[i] = template.RowUnknown
		}
	}

	return kinds
}

// Encode serializes a Batch into an H1M1-framed block.
func Encode(b Batch) ([]byte, error) {
	nEvents := len(b.EventIDs)
	nUnknown := len(b.Unknown)

	maxParams := 0
	for _, p := range b.Params {
		if len(p) > maxParams {
			maxParams = len(p)
		}
	}

	engine := endian.GetLittleEndianEngine()

	out := append([]byte{}, magic[:]...)
	out = engine.AppendUint32(out, batchVersion)
	out = primitives.UvarintEncode(out, uint64(nEvents))
	out = primitives.UvarintEncode(out, uint64(nUnknown))
	out = primitives.UvarintEncode(out, uint64(maxParams))

	for _, eid := range b.EventIDs {
		out = primitives.UvarintEncode(out, eid)
	}

	for chanIdx := 0; chanIdx < maxParams; chanIdx++ {
		kinds := make([]template.RowKind, nEvents)
		values := make([]string, 0, nEvents)

		for row, params := range b.Params {
			if chanIdx < len(params) {
				kinds[row] = template.RowKnown
				values = append(values, params[chanIdx])
			}
		}

		mask := bitmapBytes(kinds)
		out = primitives.BstrEncode(out, mask)

		chanType := SelectType(values)
		out = primitives.UvarintEncode(out, uint64(chanType))

		payload, err := encodeChannel(chanType, values)
		if err != nil {
			return nil, err
		}

		out = primitives.BstrEncode(out, payload)
	}

	for _, line := range b.Unknown {
		out = primitives.BstrEncode(out, []byte(line))
	}

	out = primitives.BstrEncode(out, bitmapBytes(b.RowKinds))

	return out, nil
}

func encodeChannel(chanType format.ChannelType, values []string) ([]byte, error) {
	switch chanType {
	case format.ChannelInt:
		e := NewIntEncoder()
		defer e.Finish()
		e.WriteSlice(values)

		return e.FinishedBytes(), nil
	case format.ChannelHex:
		e := NewHexEncoder()
		defer e.Finish()
		e.WriteSlice(values)

		return e.FinishedBytes(), nil
	case format.ChannelIP:
		e := NewIPEncoder()
		defer e.Finish()
		e.WriteSlice(values)

		return e.FinishedBytes(), nil
	case format.ChannelDict:
		e := NewDictEncoder()
		defer e.Finish()
		e.WriteSlice(values)

		return e.FinishedBytes(), nil
	default:
		e := NewRawEncoder()
		defer e.Finish()
		e.WriteSlice(values)

		return e.FinishedBytes(), nil
	}
}

func decoderFor(chanType format.ChannelType) (Decoder, error) {
	switch chanType {
	case format.ChannelRaw:
		return RawDecoder{}, nil
	case format.ChannelInt:
		return IntDecoder{}, nil
	case format.ChannelHex:
		return HexDecoder{}, nil
	case format.ChannelIP:
		return IPDecoder{}, nil
	case format.ChannelDict:
		return DictDecoder{}, nil
	default:
		return nil, errs.ErrCorrupt
	}
}

// Decode parses an H1M1-framed block back into a Batch.
func Decode(data []byte) (Batch, error) {
	if len(data) < 8 {
		return Batch{}, errs.ErrTruncated
	}

	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return Batch{}, errs.ErrMalformed
	}

	engine := endian.GetLittleEndianEngine()

	version := engine.Uint32(data[4:8])
	if version != batchVersion {
		return Batch{}, errs.ErrMalformed
	}

	off := 8

	nEvents, off, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return Batch{}, err
	}

	nUnknown, off, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return Batch{}, err
	}

	maxParams, off, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return Batch{}, err
	}

	b := Batch{
		EventIDs: make([]uint64, nEvents),
		Params:   make([][]string, nEvents),
	}

	for i := range b.EventIDs {
		b.EventIDs[i], off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return Batch{}, err
		}
	}

	for i := range b.Params {
		b.Params[i] = make([]string, 0, maxParams)
	}

	for chanIdx := uint64(0); chanIdx < maxParams; chanIdx++ {
		var mask []byte

		mask, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return Batch{}, err
		}

		var chanTypeRaw uint64

		chanTypeRaw, off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return Batch{}, err
		}

		var payload []byte

		payload, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return Batch{}, err
		}

		count := 0
		for row := 0; row < int(nEvents); row++ {
			if mask[row/8]&(1<<uint(row%8)) != 0 {
				count++
			}
		}

		decoder, derr := decoderFor(format.ChannelType(chanTypeRaw))
		if derr != nil {
			return Batch{}, derr
		}

		storedCount, valOff, cerr := primitives.UvarintDecode(payload, 0)
		if cerr != nil {
			return Batch{}, cerr
		}
		if storedCount != uint64(count) {
			return Batch{}, errs.ErrCorrupt
		}

		values := make([]string, 0, count)
		for v := range decoder.All(payload[valOff:], count) {
			values = append(values, v)
		}

		if len(values) != count {
			return Batch{}, errs.ErrCorrupt
		}

		vi := 0

		for row := 0; row < int(nEvents); row++ {
			if mask[row/8]&(1<<uint(row%8)) != 0 {
				b.Params[row] = append(b.Params[row], values[vi])
				vi++
			}
		}
	}

	b.Unknown = make([]string, nUnknown)

	for i := range b.Unknown {
		var line []byte

		line, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return Batch{}, err
		}

		b.Unknown[i] = string(line)
	}

	rowKindBytes, _, err := primitives.BstrDecode(data, off)
	if err != nil {
		return Batch{}, err
	}

	nRows := int(nEvents) + int(nUnknown)
	if len(rowKindBytes) < (nRows+7)/8 {
		return Batch{}, errs.ErrCorrupt
	}

	b.RowKinds = bitmapKinds(rowKindBytes, nRows)

	return b, nil
}
