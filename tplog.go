// Package tplog provides a templated, packet-framed codec for structured
// log archives: it mines line templates, encodes (event_id, params) rows
// into a compact typed columnar payload, frames rows into independently
// compressed packets with embedded Bloom filters, and supports both
// keyword query and full decode without decompressing the whole archive
// up front.
//
// # Core Features
//
//   - Longest-first template matching against a CSV template bank
//   - H1M2 typed columnar row encoding (raw, int, hex, IP, dict channels)
//   - Packet framing with per-packet Bloom filters for sublinear query
//   - Random-access indexing: O(packet_count) to open, decode on demand
//   - Lazy iteration over decoded lines via iter.Seq2
//
// # Basic Usage
//
//	bank, _ := template.LoadFromText(templateCSV)
//	blob, _ := tplog.Encode(lines, bank, templateCSV, section.MagicArchival)
//
//	idx, _ := tplog.Open(blob, 0)
//	hits, _ := tplog.Query(idx, bank, "connection refused", query.Options{Limit: 10})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around template,
// packet, tplindex, codecdecoder, and query. For fine-grained control —
// custom encoder options, lazy line iteration, event-routed fast paths —
// use those packages directly.
package tplog

import (
	"github.com/flowlens/tplog/codecdecoder"
	"github.com/flowlens/tplog/internal/options"
	"github.com/flowlens/tplog/packet"
	"github.com/flowlens/tplog/query"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplindex"
)

// Encode parses lines against bank and builds a complete blob of the
// variant selected by magic (section.MagicArchival, MagicQuery, or
// MagicDictionary).
func Encode(lines []string, bank *template.Bank, templateCSV string, magic [4]byte, opts ...packet.EncoderOption) ([]byte, error) {
	events, unknown, rowKinds := bank.ParseLines(lines)

	cfg := packet.NewEncoderConfig(magic)
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return packet.Encode(events, unknown, rowKinds, bank, templateCSV, cfg)
}

// Open builds a random-access Index over blob. cacheSize enables an LRU
// cache of decoded packet batches; 0 disables caching.
func Open(blob []byte, cacheSize int) (*tplindex.Index, error) {
	return tplindex.Build(blob, cacheSize)
}

// Decode renders every line in idx back to text, packet by packet. Every
// unknown line is stored in packet 0, interleaved in original order with
// that packet's events; an unknown line that originally followed events
// of a later packet is therefore returned ahead of those events.
func Decode(idx *tplindex.Index, bank *template.Bank) ([]codecdecoder.Line, error) {
	return codecdecoder.DecodeAll(idx, bank)
}

// Query runs a keyword search over idx.
func Query(idx *tplindex.Index, bank *template.Bank, queryText string, opts query.Options) ([]query.Hit, error) {
	return query.Keywords(idx, bank, queryText, opts)
}
