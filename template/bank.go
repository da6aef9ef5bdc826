package template

import (
	"encoding/csv"
	"sort"
	"strings"

	"github.com/flowlens/tplog/errs"
)

// RowKind marks whether a parsed input line matched a known template.
type RowKind uint8

const (
	RowUnknown RowKind = iota
	RowKnown
)

// EventRow is one recognized (event_id, params) row produced by ParseLines.
type EventRow struct {
	EventID uint64
	Params  []string
}

// Bank is a read-only, immutable-after-construction table of templates,
// ordered so the most specific template (fewest wildcards) is tried first;
// ties are broken by ascending event ID for determinism.
type Bank struct {
	templates []*Template
	byID      map[uint64]*Template
}

// ByID looks up a template by its event ID, used by the decoder to render
// a matched row back into text.
func (b *Bank) ByID(eventID uint64) (*Template, bool) {
	t, ok := b.byID[eventID]
	return t, ok
}

// Len returns the number of templates in the bank.
func (b *Bank) Len() int {
	return len(b.templates)
}

// All returns every template in match order (most specific first), for
// callers that need to list or inspect the whole bank rather than look up
// a single event ID.
func (b *Bank) All() []*Template {
	return b.templates
}

// LoadFromText parses a CSV-like template table with a header row
// containing at minimum EventId and EventTemplate columns. Unknown columns
// are ignored; rows with a missing or empty template are skipped.
func LoadFromText(text string) (*Bank, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errs.ErrMalformed
	}

	if len(records) == 0 {
		return &Bank{byID: map[uint64]*Template{}}, nil
	}

	header := records[0]

	eventIDCol, tplCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "EventId":
			eventIDCol = i
		case "EventTemplate":
			tplCol = i
		}
	}

	if eventIDCol < 0 || tplCol < 0 {
		return nil, errs.ErrMalformed
	}

	bank := &Bank{byID: map[uint64]*Template{}}

	for _, row := range records[1:] {
		if eventIDCol >= len(row) || tplCol >= len(row) {
			continue
		}

		pattern := strings.TrimSpace(row[tplCol])
		if pattern == "" {
			continue
		}

		eventID, err := parseEventID(row[eventIDCol])
		if err != nil {
			continue
		}

		regex, wildcards, err := compileTemplate(pattern)
		if err != nil {
			return nil, err
		}

		tpl := &Template{
			EventID:       eventID,
			Pattern:       pattern,
			regex:         regex,
			wildcardCount: wildcards,
		}

		bank.templates = append(bank.templates, tpl)
		bank.byID[eventID] = tpl
	}

	sort.SliceStable(bank.templates, func(i, j int) bool {
		if bank.templates[i].wildcardCount != bank.templates[j].wildcardCount {
			return bank.templates[i].wildcardCount < bank.templates[j].wildcardCount
		}

		return bank.templates[i].EventID < bank.templates[j].EventID
	})

	return bank, nil
}

// ParseLines matches each line against the bank's templates in order
// (most specific first), preserving input order across the returned
// outputs. The row-kind slice is carried forward by the packetizer as the
// rowmask that reconstructs positional interleaving on decode.
func (b *Bank) ParseLines(lines []string) (events []EventRow, unknown []string, rowKinds []RowKind) {
	rowKinds = make([]RowKind, 0, len(lines))

	for _, line := range lines {
		matched := false

		for _, tpl := range b.templates {
			params, ok := tpl.Match(line)
			if !ok {
				continue
			}

			events = append(events, EventRow{EventID: tpl.EventID, Params: params})
			rowKinds = append(rowKinds, RowKnown)
			matched = true

			break
		}

		if !matched {
			unknown = append(unknown, line)
			rowKinds = append(rowKinds, RowUnknown)
		}
	}

	return events, unknown, rowKinds
}
