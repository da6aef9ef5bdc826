// Package section defines the low-level binary structures and constants for
// the tplog packet-framed blob format (TPF3 archival, PFQ1 query-optimized,
// TPF2 shared-dictionary variant).
//
// # Overview
//
// The section package defines two categories of types:
//
//  1. Header: the fixed-shape prefix shared by all three blob variants
//     (magic, version, compressor settings, Bloom parameters, optional
//     shared-dictionary bytes, the embedded template-text blob)
//  2. PacketEntry: one packet's descriptor in the packet table (absolute
//     offset, length, delta-coded event-ID set, raw Bloom bytes)
//
// # Blob Layout
//
//	┌────────────────────────────────────────────────────────┐
//	│ MAGIC (4 bytes) | VERSION (u32)                         │
//	│ zstd_level (u32) | packet_events (u32)                  │
//	│ bloom_bits (u32) | bloom_k (u32)                        │
//	│ [TPF2 only] dict_len (u32) | dict_bytes                 │
//	│ tpl_csv_len (u32) | tpl_csv_bytes                       │
//	│ packet_count (uvarint)                                  │
//	├────────────────────────────────────────────────────────┤
//	│ packet_table[packet_count]:                             │
//	│   offset (u32) | length (u32) | eidset (bstr) |         │
//	│   bloom (bstr, length = bloom_bits/8)                   │
//	├────────────────────────────────────────────────────────┤
//	│ packet_payload[packet_count] (absolute offsets)         │
//	└────────────────────────────────────────────────────────┘
//
// All three magics share this header shape; TPF3 (archival) and PFQ1
// (query-optimized) differ only in their default packet_events, not in
// wire layout. TPF2 adds the dictionary block. This
// lets one Header/PacketEntry pair serve all three variants.
package section
