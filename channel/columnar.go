package channel

import "iter"

// Encoder is satisfied by each of the five per-channel-type encoders
// (Raw, Int, Hex, IP, Dict). Every channel stores the same logical type —
// the string-valued params column, restricted to the non-empty subset
// selected by the channel's rowmask — but chooses its own byte layout.
//
// Adapted from the teacher's ColumnarEncoder[T] shape, specialized to
// string since every H1M2 channel ultimately encodes param text.
type Encoder interface {
	// Bytes returns the encoded value bytes written so far (DictEncoder
	// returns nil, since its payload exists only once FinishedBytes builds
	// it). Valid until the next Write, WriteSlice, or Reset call.
	Bytes() []byte

	// Len returns the number of values written so far.
	Len() int

	// Reset clears encoder state but keeps the accumulated buffer
	// capacity for reuse.
	Reset()

	// Finish finalizes encoding and returns pooled resources. The
	// encoder is not usable afterward.
	Finish()

	// Write appends a single value.
	Write(v string)

	// WriteSlice appends a slice of values.
	WriteSlice(values []string)
}

// Decoder is satisfied by each of the five per-channel-type decoders.
type Decoder interface {
	// All returns an iterator over the count values encoded in data, where
	// data is a channel payload with its leading uvarint count removed.
	All(data []byte, count int) iter.Seq[string]

	// At retrieves the value at index out of count total values encoded
	// in data.
	At(data []byte, index int, count int) (string, bool)
}
