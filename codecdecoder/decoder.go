// Package codecdecoder renders an indexed blob's packets back into text
// lines, either eagerly (DecodeAll, DecodeSelected) or lazily via an
// iter.Seq2 (IterLines) for large archives where materializing every line at once is
// wasteful.
package codecdecoder

import (
	"fmt"
	"iter"

	"github.com/flowlens/tplog/channel"
	"github.com/flowlens/tplog/errs"
	"github.com/flowlens/tplog/template"
	"github.com/flowlens/tplog/tplindex"
)

// Line is one rendered line of the original log: either a recognized
// event row rendered through its template, or an unrecognized line
// carried verbatim.
type Line struct {
	Text    string
	EventID uint64
	Known   bool
}

// DecodeAll renders every packet's rows back into text, in packet order.
func DecodeAll(idx *tplindex.Index, bank *template.Bank) ([]Line, error) {
	lines := make([]Line, 0, idx.PacketCount())

	for i := 0; i < idx.PacketCount(); i++ {
		batch, err := idx.DecodeBatch(i)
		if err != nil {
			return nil, err
		}

		rendered, err := RenderBatch(batch, bank)
		if err != nil {
			return nil, fmt.Errorf("rendering packet %d: %w", i, err)
		}

		lines = append(lines, rendered...)
	}

	return lines, nil
}

// IterLines lazily renders every packet's rows, yielding one Line at a
// time without materializing the whole decoded archive. Iteration stops
// at the first error, which is yielded alongside a zero Line.
func IterLines(idx *tplindex.Index, bank *template.Bank) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for i := 0; i < idx.PacketCount(); i++ {
			batch, err := idx.DecodeBatch(i)
			if err != nil {
				yield(Line{}, err)
				return
			}

			rendered, err := RenderBatch(batch, bank)
			if err != nil {
				yield(Line{}, fmt.Errorf("rendering packet %d: %w", i, err))
				return
			}

			for _, l := range rendered {
				if !yield(l, nil) {
					return
				}
			}
		}
	}
}

// DecodeSelected renders only the rows matching eventID, consulting the
// index's eidset to skip packets that provably can't contain it.
func DecodeSelected(idx *tplindex.Index, bank *template.Bank, eventID uint64) ([]Line, error) {
	tpl, ok := bank.ByID(eventID)
	if !ok {
		return nil, fmt.Errorf("%w: event id %d has no template", errs.ErrBadArgument, eventID)
	}

	var lines []Line

	for _, i := range idx.PacketsForEventID(eventID) {
		batch, err := idx.DecodeBatch(i)
		if err != nil {
			return nil, err
		}

		for row, eid := range batch.EventIDs {
			if eid != eventID {
				continue
			}

			lines = append(lines, Line{
				Text:    template.RenderTemplate(tpl.Pattern, batch.Params[row]),
				EventID: eid,
				Known:   true,
			})
		}
	}

	return lines, nil
}

// RenderBatch zips a decoded batch's events and unknown lines back into
// their original per-packet interleaved order via the row-kind bitmap.
func RenderBatch(batch channel.Batch, bank *template.Bank) ([]Line, error) {
	lines := make([]Line, 0, len(batch.RowKinds))

	eventIdx, unknownIdx := 0, 0

	for _, kind := range batch.RowKinds {
		switch kind {
		case template.RowKnown:
			if eventIdx >= len(batch.EventIDs) {
				return nil, errs.ErrCorrupt
			}

			eid := batch.EventIDs[eventIdx]

			tpl, ok := bank.ByID(eid)
			if !ok {
				return nil, fmt.Errorf("%w: event id %d has no template", errs.ErrCorrupt, eid)
			}

			lines = append(lines, Line{
				Text:    template.RenderTemplate(tpl.Pattern, batch.Params[eventIdx]),
				EventID: eid,
				Known:   true,
			})
			eventIdx++
		case template.RowUnknown:
			if unknownIdx >= len(batch.Unknown) {
				return nil, errs.ErrCorrupt
			}

			lines = append(lines, Line{Text: batch.Unknown[unknownIdx]})
			unknownIdx++
		}
	}

	if eventIdx != len(batch.EventIDs) || unknownIdx != len(batch.Unknown) {
		return nil, errs.ErrCorrupt
	}

	return lines, nil
}
