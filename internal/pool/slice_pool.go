package pool

import "sync"

// Slice pools for efficient reuse of typed slices.
// These pools reduce allocations when transforming row-based log data
// (params, channel values, token hash positions) into columnar form.
var (
	int64SlicePool = sync.Pool{
		New: func() any { return &[]int64{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
	stringSlicePool = sync.Pool{
		New: func() any { return &[]string{} },
	}
)

// GetInt64Slice retrieves and resizes an int64 slice from the pool.
//
// The returned slice will have the exact length specified by size. The
// caller must call the returned cleanup function (typically via defer) to
// return the slice to the pool.
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := int64SlicePool.Get().(*[]int64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { int64SlicePool.Put(ptr) }
}

// GetUint64Slice retrieves and resizes a uint64 slice from the pool.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint64SlicePool.Put(ptr) }
}

// GetStringSlice retrieves and resizes a string slice from the pool.
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { stringSlicePool.Put(ptr) }
}
