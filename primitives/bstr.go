package primitives

import "github.com/flowlens/tplog/errs"

// BstrEncode appends a length-prefixed byte string to dst: a uvarint byte
// count followed by the raw bytes.
func BstrEncode(dst []byte, b []byte) []byte {
	dst = UvarintEncode(dst, uint64(len(b)))
	return append(dst, b...)
}

// BstrDecode decodes a length-prefixed byte string starting at off. The
// returned slice aliases data; callers that need to retain it across
// further mutation of data should copy it.
func BstrDecode(data []byte, off int) ([]byte, int, error) {
	n, off, err := UvarintDecode(data, off)
	if err != nil {
		return nil, 0, err
	}

	end := off + int(n)
	if n > uint64(len(data)) || end < off || end > len(data) {
		return nil, 0, errs.ErrTruncated
	}

	return data[off:end], end, nil
}
