// Package bloomfilter implements the per-packet keyword Bloom filter used
// to skip packets during query without decompressing them.
//
// The filter never produces false negatives: add(token) always makes a
// later probe(token) return true. False positives are expected and are
// resolved downstream by the query engine's substring-verification pass.
//
// Positions are derived from a single 64-bit seed hash (internal/hash,
// xxHash64) mixed with a xorshift-style recurrence so the same token
// always probes the same k positions at both index and query time.
package bloomfilter
