// Package tplindex builds a random-access index over an encoded blob: it
// parses the header and packet table only, touching no packet payload
// bytes, so opening an index costs O(packet_count) regardless of how
// large the archive is.
package tplindex

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/flowlens/tplog/bloomfilter"
	"github.com/flowlens/tplog/channel"
	"github.com/flowlens/tplog/compress"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/format"
	"github.com/flowlens/tplog/section"
)

// Index is a parsed, random-access view over a blob's header and packet
// table. The blob bytes themselves are retained by reference, never
// copied; packet payloads are only decompressed/decoded on demand via
// DecodeBatch.
type Index struct {
	Header  *section.Header
	Entries []*section.PacketEntry

	blob  []byte
	codec compress.Codec
	cache *lru.Cache[int, channel.Batch]
}

// Build parses blob's header and packet table into an Index. cacheSize
// enables an LRU cache of decoded packet batches keyed by packet index;
// 0 disables caching.
func Build(blob []byte, cacheSize int) (*Index, error) {
	header, off, err := section.ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	entries := make([]*section.PacketEntry, 0, header.PacketCount)

	for i := uint64(0); i < header.PacketCount; i++ {
		entry, next, perr := section.ParsePacketEntry(blob, off)
		if perr != nil {
			return nil, fmt.Errorf("parsing packet table entry %d: %w", i, perr)
		}

		entries = append(entries, entry)
		off = next
	}

	codec, err := compress.GetCodec(format.CompressionZstd)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Header:  header,
		Entries: entries,
		blob:    blob,
		codec:   codec,
	}

	if cacheSize > 0 {
		cache, cerr := lru.New[int, channel.Batch](cacheSize)
		if cerr != nil {
			return nil, cerr
		}

		idx.cache = cache
	}

	return idx, nil
}

// PacketCount returns the number of packets in the blob.
func (idx *Index) PacketCount() int {
	return len(idx.Entries)
}

// PacketPayload returns packet i's raw (compressed) payload bytes,
// without copying.
func (idx *Index) PacketPayload(i int) ([]byte, error) {
	if i < 0 || i >= len(idx.Entries) {
		return nil, fmt.Errorf("%w: packet index %d out of range", errs.ErrBadArgument, i)
	}

	e := idx.Entries[i]

	end := uint64(e.Offset) + uint64(e.Length)
	if end > uint64(len(idx.blob)) {
		return nil, fmt.Errorf("%w: packet %d offset/length exceeds blob size", errs.ErrCorrupt, i)
	}

	return idx.blob[e.Offset:end], nil
}

// DecodeBatch decompresses and H1M2-decodes packet i, serving from the
// LRU cache when enabled.
func (idx *Index) DecodeBatch(i int) (channel.Batch, error) {
	if idx.cache != nil {
		if b, ok := idx.cache.Get(i); ok {
			return b, nil
		}
	}

	payload, err := idx.PacketPayload(i)
	if err != nil {
		return channel.Batch{}, err
	}

	var raw []byte

	if idx.Header.IsDictionaryVariant() && len(idx.Header.DictBytes) > 0 {
		raw, err = compress.DecompressWithDict(payload, idx.Header.DictBytes)
	} else {
		raw, err = idx.codec.Decompress(payload)
	}

	if err != nil {
		return channel.Batch{}, fmt.Errorf("%w: decompressing packet %d: %v", errs.ErrCompressor, i, err) //nolint:errorlint
	}

	batch, err := channel.Decode(raw)
	if err != nil {
		return channel.Batch{}, fmt.Errorf("decoding packet %d: %w", i, err)
	}

	if idx.cache != nil {
		idx.cache.Add(i, batch)
	}

	return batch, nil
}

// ProbePacket reports whether packet i's Bloom filter possibly contains
// tokens (see bloomfilter.Bloom.Probe for the requireAll semantics).
func (idx *Index) ProbePacket(i int, tokens []string, requireAll bool) bool {
	bf := bloomfilter.FromBytes(idx.Entries[i].Bloom, int(idx.Header.BloomK))
	return bf.Probe(tokens, requireAll)
}

// PacketsForEventID returns the indices of packets whose eidset contains
// eventID, in ascending order. Used by the template-routed query fast
// path to skip packets that provably cannot contain a given event.
func (idx *Index) PacketsForEventID(eventID uint64) []int {
	var matches []int

	for i, e := range idx.Entries {
		for _, id := range e.Eids {
			if id == eventID {
				matches = append(matches, i)
				break
			}
		}
	}

	return matches
}
