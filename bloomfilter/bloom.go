package bloomfilter

import (
	"strings"

	"github.com/flowlens/tplog/internal/hash"
)

// mixMultiplier and mixIncrement are the xorshift-style mixing constants
// from the golden-ratio family (the full 64-bit 0x9E3779B97F4A7C15 and a
// complementary odd constant), chosen so successive hash positions for
// the same token are statistically independent.
const (
	mixMultiplier = 0x9E3779B97F4A7C15
	mixIncrement  = 0xD1B54A32D192ED03
)

// Bloom is a fixed-width Bloom filter: mBits bits (a multiple of 8), k
// independent hash positions per token, one-sided error (no false
// negatives).
type Bloom struct {
	bits  []byte
	mBits int
	k     int
}

// New creates an empty Bloom filter with mBits bits and k hash positions.
// mBits must be a multiple of 8.
func New(mBits, k int) *Bloom {
	return &Bloom{
		bits:  make([]byte, mBits/8),
		mBits: mBits,
		k:     k,
	}
}

// FromBytes wraps existing raw filter bytes (as stored in a packet table
// entry) without copying, for read-only probing.
func FromBytes(bits []byte, k int) *Bloom {
	return &Bloom{bits: bits, mBits: len(bits) * 8, k: k}
}

// Bytes returns the raw bit array, suitable for storing directly in a
// packet table entry's bloom field.
func (b *Bloom) Bytes() []byte {
	return b.bits
}

// positions computes the k bit positions for token, using a single
// xxHash64 seed mixed by a xorshift-style recurrence:
//
//	h ← h*mixMultiplier + (i+1)*mixIncrement
//	pos_i = h mod mBits
func (b *Bloom) positions(token string) []int {
	seed := hash.Seed64(strings.ToLower(token))
	positions := make([]int, b.k)

	h := seed
	for i := 0; i < b.k; i++ {
		h = h*mixMultiplier + uint64(i+1)*mixIncrement
		positions[i] = int(h % uint64(b.mBits))
	}

	return positions
}

// Add sets the k bit positions derived from the lowercased token.
func (b *Bloom) Add(token string) {
	for _, pos := range b.positions(token) {
		b.bits[pos/8] |= 1 << uint(pos%8)
	}
}

// AddTokens adds every token in tokens.
func (b *Bloom) AddTokens(tokens []string) {
	for _, t := range tokens {
		b.Add(t)
	}
}

// test reports whether every bit position derived from token is set.
func (b *Bloom) test(token string) bool {
	for _, pos := range b.positions(token) {
		if b.bits[pos/8]&(1<<uint(pos%8)) == 0 {
			return false
		}
	}

	return true
}

// Probe reports a possible match for tokens. When requireAll is true,
// every token's positions must all hit; otherwise any single token
// suffices. Probe never produces a false negative: if Add(token) was
// called, Probe([]string{token}, true) is guaranteed true.
func (b *Bloom) Probe(tokens []string, requireAll bool) bool {
	if len(tokens) == 0 {
		return true
	}

	for _, t := range tokens {
		hit := b.test(t)

		if requireAll && !hit {
			return false
		}

		if !requireAll && hit {
			return true
		}
	}

	return requireAll
}
