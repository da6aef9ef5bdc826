package packet

import "github.com/flowlens/tplog/template"

// splitBatches groups parsed rows into per-packet channel.Batch-shaped
// inputs. Unknown lines are never split across packets: they all land in
// the first packet alongside its share of events, interleaved in their
// true original relative order (grounded on original_source's
// UNKNOWN_ONLY_PACKET_MODE, which bundles every unrecognized line into
// packet 0 rather than spreading it across the archive). Events beyond
// the first packet's share are chunked in order into trivial,
// all-known-rows packets.
func splitBatches(events []template.EventRow, unknown []string, rowKinds []template.RowKind, packetEvents int) []batchInput {
	if len(events) == 0 && len(unknown) == 0 {
		return nil
	}

	if packetEvents <= 0 {
		packetEvents = 1
	}

	firstShare := packetEvents
	if firstShare > len(events) {
		firstShare = len(events)
	}

	first := batchInput{}

	eventPtr, unknownPtr := 0, 0

	var overflow []template.EventRow

	for _, kind := range rowKinds {
		switch kind {
		case template.RowUnknown:
			if unknownPtr < len(unknown) {
				first.unknown = append(first.unknown, unknown[unknownPtr])
				first.rowKinds = append(first.rowKinds, template.RowUnknown)
				unknownPtr++
			}
		case template.RowKnown:
			if eventPtr >= len(events) {
				continue
			}

			ev := events[eventPtr]
			if eventPtr < firstShare {
				first.events = append(first.events, ev)
				first.rowKinds = append(first.rowKinds, template.RowKnown)
			} else {
				overflow = append(overflow, ev)
			}

			eventPtr++
		}
	}

	batches := []batchInput{first}

	for i := 0; i < len(overflow); i += packetEvents {
		end := i + packetEvents
		if end > len(overflow) {
			end = len(overflow)
		}

		chunk := overflow[i:end]
		b := batchInput{events: chunk, rowKinds: make([]template.RowKind, len(chunk))}

		for j := range b.rowKinds {
			b.rowKinds[j] = template.RowKnown
		}

		batches = append(batches, b)
	}

	return batches
}

// batchInput is the pre-channel.Batch intermediate form produced by
// splitBatches, kept separate from channel.Batch so the packetizer can
// build EventIDs/Params lazily only when it actually encodes the packet.
type batchInput struct {
	events   []template.EventRow
	unknown  []string
	rowKinds []template.RowKind
}
