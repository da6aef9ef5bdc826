package channel

import (
	"iter"
	"sort"

	"github.com/flowlens/tplog/primitives"
)

// DictEncoder stores values by frequency-ranked dictionary id: uvarint
// count ++ uvarint vocab_len ++ bstr*vocab_len ++ uvarint*count. Id 0 is
// the most frequent value.
//
// Unlike the other channel encoders, DICT can't stream its payload
// incrementally: the vocabulary ordering depends on the full frequency
// distribution, so values are buffered and the vocabulary is built in
// FinishedBytes.
type DictEncoder struct {
	values []string
}

var _ Encoder = (*DictEncoder)(nil)

func NewDictEncoder() *DictEncoder {
	return &DictEncoder{}
}

func (e *DictEncoder) Bytes() []byte { return nil }
func (e *DictEncoder) Len() int      { return len(e.values) }

func (e *DictEncoder) Reset() {
	e.values = e.values[:0]
}

func (e *DictEncoder) Finish() {
	e.values = nil
}

func (e *DictEncoder) Write(v string) {
	e.values = append(e.values, v)
}

func (e *DictEncoder) WriteSlice(values []string) {
	e.values = append(e.values, values...)
}

// FinishedBytes builds the frequency-ranked vocabulary and encodes the
// full channel payload.
func (e *DictEncoder) FinishedBytes() []byte {
	freq := make(map[string]int, len(e.values))
	firstSeen := make(map[string]int, len(e.values))

	for i, v := range e.values {
		freq[v]++
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
	}

	vocab := make([]string, 0, len(freq))
	for v := range freq {
		vocab = append(vocab, v)
	}

	sort.Slice(vocab, func(i, j int) bool {
		if freq[vocab[i]] != freq[vocab[j]] {
			return freq[vocab[i]] > freq[vocab[j]]
		}

		return firstSeen[vocab[i]] < firstSeen[vocab[j]]
	})

	idOf := make(map[string]uint64, len(vocab))
	for id, v := range vocab {
		idOf[v] = uint64(id)
	}

	out := primitives.UvarintEncode(nil, uint64(len(e.values)))
	out = primitives.UvarintEncode(out, uint64(len(vocab)))

	for _, v := range vocab {
		out = primitives.BstrEncode(out, []byte(v))
	}

	for _, v := range e.values {
		out = primitives.UvarintEncode(out, idOf[v])
	}

	return out
}

// DictDecoder decodes a DictEncoder payload.
type DictDecoder struct{}

var _ Decoder = DictDecoder{}

func parseDictPayload(data []byte, count int) (vocab []string, ids []uint64, err error) {
	vocabLen, off, err := primitives.UvarintDecode(data, 0)
	if err != nil {
		return nil, nil, err
	}

	vocab = make([]string, 0, vocabLen)

	for i := uint64(0); i < vocabLen; i++ {
		var b []byte

		b, off, err = primitives.BstrDecode(data, off)
		if err != nil {
			return nil, nil, err
		}

		vocab = append(vocab, string(b))
	}

	ids = make([]uint64, 0, count)

	for i := 0; i < count; i++ {
		var id uint64

		id, off, err = primitives.UvarintDecode(data, off)
		if err != nil {
			return nil, nil, err
		}

		ids = append(ids, id)
	}

	return vocab, ids, nil
}

// resolve maps a dictionary id to its vocabulary string. An out-of-range
// id (which the encoder never writes) falls back to the most-frequent
// entry, id 0.
func resolve(vocab []string, id uint64) string {
	if int(id) >= len(vocab) {
		if len(vocab) == 0 {
			return ""
		}

		return vocab[0]
	}

	return vocab[id]
}

func (DictDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		vocab, ids, err := parseDictPayload(data, count)
		if err != nil {
			return
		}

		for _, id := range ids {
			if !yield(resolve(vocab, id)) {
				return
			}
		}
	}
}

func (DictDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	vocab, ids, err := parseDictPayload(data, count)
	if err != nil {
		return "", false
	}

	return resolve(vocab, ids[index]), true
}
