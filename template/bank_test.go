package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `EventId,EventTemplate,Description
1,user <*> logged in from <*>,login event
2,connection refused on port <*>,network
E3,disk usage at <*>% on <*>,disk
0x10,request completed in <*>ms,latency
4,server started,no wildcards
`

func TestLoadFromText(t *testing.T) {
	bank, err := LoadFromText(sampleCSV)
	require.NoError(t, err)
	assert.Equal(t, 5, bank.Len())

	tpl, ok := bank.ByID(16) // 0x10
	require.True(t, ok)
	assert.Equal(t, "request completed in <*>ms", tpl.Pattern)
}

func TestParseLinesMatchesKnownTemplates(t *testing.T) {
	bank, err := LoadFromText(sampleCSV)
	require.NoError(t, err)

	lines := []string{
		"user alice logged in from 10.0.0.1",
		"something totally unrecognized happened",
		"server started",
		"connection refused on port 8080",
	}

	events, unknown, rowKinds := bank.ParseLines(lines)

	require.Len(t, events, 3)
	assert.Equal(t, uint64(1), events[0].EventID)
	assert.Equal(t, []string{"alice", "10.0.0.1"}, events[0].Params)

	assert.Equal(t, uint64(4), events[1].EventID)
	assert.Empty(t, events[1].Params)

	assert.Equal(t, uint64(2), events[2].EventID)
	assert.Equal(t, []string{"8080"}, events[2].Params)

	require.Len(t, unknown, 1)
	assert.Equal(t, "something totally unrecognized happened", unknown[0])

	assert.Equal(t, []RowKind{RowKnown, RowUnknown, RowKnown, RowKnown}, rowKinds)
}

func TestParseLinesTiesBrokenByMostSpecificFirst(t *testing.T) {
	csv := `EventId,EventTemplate
1,<*> <*> <*>
2,fixed value <*>
`
	bank, err := LoadFromText(csv)
	require.NoError(t, err)

	events, _, _ := bank.ParseLines([]string{"fixed value 42"})
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].EventID)
}

func TestParseLinesEmptyInput(t *testing.T) {
	bank, err := LoadFromText(sampleCSV)
	require.NoError(t, err)

	events, unknown, rowKinds := bank.ParseLines(nil)
	assert.Empty(t, events)
	assert.Empty(t, unknown)
	assert.Empty(t, rowKinds)
}

func TestBracketWildcardMarkerAccepted(t *testing.T) {
	csv := `EventId,EventTemplate
1,user [*] logged in
`
	bank, err := LoadFromText(csv)
	require.NoError(t, err)

	events, _, _ := bank.ParseLines([]string{"user bob logged in"})
	require.Len(t, events, 1)
	assert.Equal(t, []string{"bob"}, events[0].Params)
}

func TestRenderTemplate(t *testing.T) {
	assert.Equal(t, "user alice logged in from 10.0.0.1",
		RenderTemplate("user <*> logged in from <*>", []string{"alice", "10.0.0.1"}))
}

func TestRenderTemplateExhaustedParamsLeavesLiteralMarker(t *testing.T) {
	assert.Equal(t, "user <*> logged in from <*>",
		RenderTemplate("user <*> logged in from <*>", nil))
}

func TestRenderTemplateNoWildcards(t *testing.T) {
	assert.Equal(t, "server started", RenderTemplate("server started", []string{"unused"}))
}

func TestLoadFromTextMissingTemplateColumnSkipsRow(t *testing.T) {
	csv := `EventId,EventTemplate
1,
2,valid <*>
`
	bank, err := LoadFromText(csv)
	require.NoError(t, err)
	assert.Equal(t, 1, bank.Len())
}

func TestLoadFromTextRequiresHeaderColumns(t *testing.T) {
	_, err := LoadFromText("Foo,Bar\n1,2\n")
	assert.Error(t, err)
}
