// Package packet builds and reads the TPF3/PFQ1/TPF2 packet-framed blobs:
// it chunks parsed rows into packets, H1M2-encodes and compresses each
// one independently, builds the per-packet Bloom filter and event-ID set,
// and assembles the packet table and offset-addressed payload region.
package packet

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/flowlens/tplog/bloomfilter"
	"github.com/flowlens/tplog/channel"
	"github.com/flowlens/tplog/compress"
	"github.com/flowlens/tplog/format"
	"github.com/flowlens/tplog/section"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tokenize"
)

// Encode builds a complete blob from parsed rows and the verbatim
// template-table text, per cfg's packet/Bloom/compression configuration.
// cfg.Magic selects the blob variant (TPF3 archival, PFQ1 query, TPF2
// shared-dictionary). bank must be the same bank that produced events via
// template.Bank.ParseLines, since Bloom indexing tokenizes each event's
// fully rendered line, not just its raw param values.
func Encode(events []template.EventRow, unknown []string, rowKinds []template.RowKind, bank *template.Bank, templateCSV string, cfg *EncoderConfig) ([]byte, error) {
	batches := splitBatches(events, unknown, rowKinds, cfg.PacketEvents)

	codec, err := compress.GetCodec(format.CompressionZstd)
	if err != nil {
		return nil, err
	}

	payloads, err := encodeBatchesConcurrently(batches)
	if err != nil {
		return nil, err
	}

	var dict []byte

	useDict := cfg.Magic == section.MagicDictionary && cfg.DictTargetSize > 0 && len(payloads) > 1
	if useDict {
		// Training failure falls back to plain per-packet compression
		// rather than aborting the encode, per the spec's retry policy.
		if trained, trainErr := trainDictWithRetry(GozstdTrainer{}, payloads, cfg.DictTargetSize); trainErr == nil {
			dict = trained
		}
	}

	compressed := make([][]byte, len(payloads))

	for i, p := range payloads {
		if dict != nil {
			compressed[i], err = compress.CompressWithDict(p, dict)
		} else {
			compressed[i], err = codec.Compress(p)
		}

		if err != nil {
			return nil, fmt.Errorf("compressing packet %d: %w", i, err)
		}
	}

	entries := buildPacketEntries(batches, bank, cfg)

	return assembleBlob(cfg, templateCSV, dict, entries, compressed), nil
}

// encodeBatchesConcurrently H1M2-encodes every packet's batch independently
// and in parallel: packets share no state, so this is an embarrassingly
// parallel fan-out with no ordering concern beyond each goroutine owning
// its own output slot.
func encodeBatchesConcurrently(batches []batchInput) ([][]byte, error) {
	out := make([][]byte, len(batches))
	errOut := make([]error, len(batches))

	var wg sync.WaitGroup

	for i, b := range batches {
		wg.Add(1)

		go func(i int, b batchInput) {
			defer wg.Done()

			out[i], errOut[i] = channel.Encode(toChannelBatch(b))
		}(i, b)
	}

	wg.Wait()

	for i, e := range errOut {
		if e != nil {
			return nil, fmt.Errorf("encoding packet %d: %w", i, e)
		}
	}

	return out, nil
}

func toChannelBatch(b batchInput) channel.Batch {
	cb := channel.Batch{
		EventIDs: make([]uint64, len(b.events)),
		Params:   make([][]string, len(b.events)),
		Unknown:  b.unknown,
		RowKinds: b.rowKinds,
	}

	for i, ev := range b.events {
		cb.EventIDs[i] = ev.EventID
		cb.Params[i] = ev.Params
	}

	return cb
}

// buildPacketEntries computes each packet's distinct event-ID set and
// Bloom filter. Token indexing covers each event's fully rendered line
// (so static template words are searchable, not just wildcard values)
// plus the raw text of unrecognized lines, since a keyword query must be
// able to find terms in either.
func buildPacketEntries(batches []batchInput, bank *template.Bank, cfg *EncoderConfig) []*section.PacketEntry {
	entries := make([]*section.PacketEntry, len(batches))

	for i, b := range batches {
		bf := bloomfilter.New(cfg.BloomBits, cfg.BloomK)

		seen := make(map[uint64]struct{})

		var eids []uint64

		for _, ev := range b.events {
			if _, ok := seen[ev.EventID]; !ok {
				seen[ev.EventID] = struct{}{}

				eids = append(eids, ev.EventID)
			}

			indexText(bf, renderedLine(bank, ev), cfg)
		}

		for _, line := range b.unknown {
			indexText(bf, line, cfg)
		}

		sort.Slice(eids, func(a, c int) bool { return eids[a] < eids[c] })

		entries[i] = &section.PacketEntry{Eids: eids, Bloom: bf.Bytes()}
	}

	return entries
}

// renderedLine renders an event row through its template for indexing,
// falling back to "E<id> <params...>" when the bank has no entry for its
// event ID (should not happen for rows the same bank produced, but keeps
// indexing total rather than panicking on a caller error).
func renderedLine(bank *template.Bank, ev template.EventRow) string {
	tpl, ok := bank.ByID(ev.EventID)
	if !ok {
		return fmt.Sprintf("E%d %s", ev.EventID, strings.Join(ev.Params, " "))
	}

	return template.RenderTemplate(tpl.Pattern, ev.Params)
}

func indexText(bf *bloomfilter.Bloom, text string, cfg *EncoderConfig) {
	for _, tok := range tokenize.Tokens(text) {
		bf.AddTokens(bloomfilter.ExpandTokens(tok, cfg.StemEnabled, cfg.PrefixLen))
	}
}

// assembleBlob lays out header | packet table | packet payloads. Each
// PacketEntry's Offset/Length is computed from the header and table sizes
// (both fixed once the Bloom/eidset contents are known) plus the
// cumulative size of preceding compressed payloads.
func assembleBlob(cfg *EncoderConfig, templateCSV string, dict []byte, entries []*section.PacketEntry, compressed [][]byte) []byte {
	header := section.NewHeader(cfg.Magic)
	header.ZstdLevel = uint32(cfg.ZstdLevel)       //nolint:gosec
	header.PacketEvents = uint32(cfg.PacketEvents) //nolint:gosec
	header.BloomBits = uint32(cfg.BloomBits)       //nolint:gosec
	header.BloomK = uint32(cfg.BloomK)             //nolint:gosec
	header.DictBytes = dict
	header.TplCSV = []byte(templateCSV)
	header.PacketCount = uint64(len(entries))

	headerBytes := header.Bytes()

	tableSize := 0
	for _, e := range entries {
		tableSize += len(e.Bytes())
	}

	base := len(headerBytes) + tableSize
	offset := base

	for i, e := range entries {
		e.Offset = uint32(offset)              //nolint:gosec
		e.Length = uint32(len(compressed[i])) //nolint:gosec
		offset += len(compressed[i])
	}

	out := make([]byte, 0, offset)
	out = append(out, headerBytes...)

	for _, e := range entries {
		out = append(out, e.Bytes()...)
	}

	for _, c := range compressed {
		out = append(out, c...)
	}

	return out
}
