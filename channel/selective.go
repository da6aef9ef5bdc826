package channel

import (
	"github.com/flowlens/tplog/endian"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/format"
	"github.com/flowlens/tplog/primitives"
)

// DecodeForEventID decodes only the rows matching eventID, short-circuiting
// before touching any channel payload if the batch's event-id stream
// contains no match at all. When rows do match, every channel is still
// decoded (H1M2's per-channel mask makes it cheap to skip non-matching
// positions during materialization, but the payload itself must be parsed
// sequentially since values are delta/dictionary coded relative to their
// channel, not per event id).
func DecodeForEventID(data []byte, eventID uint64) (rows [][]string, found bool, err error) {
	if len(data) < 8 {
		return nil, false, errs.ErrTruncated
	}

	if data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		return nil, false, errs.ErrMalformed
	}

	engine := endian.GetLittleEndianEngine()

	version := engine.Uint32(data[4:8])
	if version != batchVersion {
		return nil, false, errs.ErrMalformed
	}

	off := 8

	nEvents, off, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return nil, false, err
	}

	_, off, err = primitives.UvarintDecode(data, off) // n_unknown, unused here
	if err != nil {
		return nil, false, err
	}

	maxParams, off, err := primitives.UvarintDecode(data, off)
	if err != nil {
		return nil, false, err
	}

	eids := make([]uint64, nEvents)
	hitRows := make(map[int]bool)

	for i := range eids {
		eids[i], off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return nil, false, err
		}

		if eids[i] == eventID {
			hitRows[i] = true
		}
	}

	if len(hitRows) == 0 {
		return nil, false, nil
	}

	params := make([][]string, nEvents)
	for i := range params {
		params[i] = make([]string, 0, maxParams)
	}

	for chanIdx := uint64(0); chanIdx < maxParams; chanIdx++ {
		var mask []byte

		mask, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return nil, false, err
		}

		var chanTypeRaw uint64

		chanTypeRaw, off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return nil, false, err
		}

		var payload []byte

		payload, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return nil, false, err
		}

		count := 0
		for row := 0; row < int(nEvents); row++ {
			if mask[row/8]&(1<<uint(row%8)) != 0 {
				count++
			}
		}

		decoder, derr := decoderFor(format.ChannelType(chanTypeRaw))
		if derr != nil {
			return nil, false, derr
		}

		storedCount, valOff, cerr := primitives.UvarintDecode(payload, 0)
		if cerr != nil {
			return nil, false, cerr
		}
		if storedCount != uint64(count) {
			return nil, false, errs.ErrCorrupt
		}

		values := make([]string, 0, count)
		for v := range decoder.All(payload[valOff:], count) {
			values = append(values, v)
		}

		vi := 0

		for row := 0; row < int(nEvents); row++ {
			if mask[row/8]&(1<<uint(row%8)) != 0 {
				if hitRows[row] {
					params[row] = append(params[row], values[vi])
				}

				vi++
			}
		}
	}

	for row := range eids {
		if hitRows[row] {
			rows = append(rows, params[row])
		}
	}

	return rows, true, nil
}
