package pool

import (
	"io"
	"sync"
)

// Default and maximum buffer sizes for the two pools this package exposes.
const (
	PacketBufferDefaultSize  = 1024 * 16   // 16KiB, sized for one packet's H1M2 payload
	PacketBufferMaxThreshold = 1024 * 128  // 128KiB
	BatchBufferDefaultSize   = 1024 * 1024 // 1MiB, sized for the whole-batch row staging buffer
	BatchBufferMaxThreshold  = 1024 * 1024 * 8
)

// ByteBuffer is a growable byte slice with an amortized growth strategy,
// reused across encode calls via sync.Pool to avoid per-packet allocation.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without
// reallocating. If the buffer already has sufficient capacity, Grow does
// nothing.
//
// Growth strategy: small buffers grow by PacketBufferDefaultSize to minimize
// reallocations; buffers already larger than 4x that grow by 25% of current
// capacity to balance memory usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PacketBufferDefaultSize
	if cap(bb.B) > 4*PacketBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
// Implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w. Implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers with an optional maximum
// retained size, so an unusually large packet doesn't permanently bloat the
// pool's steady-state memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse, discarding it instead if it
// grew past the pool's maxThreshold.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	packetDefaultPool = NewByteBufferPool(PacketBufferDefaultSize, PacketBufferMaxThreshold)
	batchDefaultPool  = NewByteBufferPool(BatchBufferDefaultSize, BatchBufferMaxThreshold)
)

// GetPacketBuffer retrieves a ByteBuffer from the default per-packet pool.
func GetPacketBuffer() *ByteBuffer {
	return packetDefaultPool.Get()
}

// PutPacketBuffer returns a ByteBuffer to the default per-packet pool.
func PutPacketBuffer(bb *ByteBuffer) {
	packetDefaultPool.Put(bb)
}

// GetBatchBuffer retrieves a ByteBuffer from the default whole-batch pool.
func GetBatchBuffer() *ByteBuffer {
	return batchDefaultPool.Get()
}

// PutBatchBuffer returns a ByteBuffer to the default whole-batch pool.
func PutBatchBuffer(bb *ByteBuffer) {
	batchDefaultPool.Put(bb)
}
