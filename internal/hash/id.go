// Package hash provides the single seed hash function used by the Bloom
// filter's position mixer.
package hash

import "github.com/cespare/xxhash/v2"

// Seed64 computes the xxHash64 of data, used as the seed value fed into the
// Bloom filter's xorshift position mixer (see bloomfilter.Bloom.Add).
func Seed64(data string) uint64 {
	return xxhash.Sum64String(data)
}
