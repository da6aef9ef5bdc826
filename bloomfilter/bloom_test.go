package bloomfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddProbeNoFalseNegatives(t *testing.T) {
	b := New(8192, 4)
	tokens := []string{"error", "timeout", "connection", "refused", "10.0.0.1"}

	for _, tok := range tokens {
		b.Add(tok)
	}

	for _, tok := range tokens {
		assert.True(t, b.Probe([]string{tok}, true), "token %q must never false-negative", tok)
	}
}

func TestProbeRequireAll(t *testing.T) {
	b := New(8192, 4)
	b.Add("alpha")
	b.Add("beta")

	assert.True(t, b.Probe([]string{"alpha", "beta"}, true))
	assert.False(t, b.Probe([]string{"alpha", "gamma-not-present-xyz"}, true))
}

func TestProbeAnyMatch(t *testing.T) {
	b := New(8192, 4)
	b.Add("alpha")

	assert.True(t, b.Probe([]string{"zzz-not-present", "alpha"}, false))
}

func TestProbeEmptyTokensAlwaysTrue(t *testing.T) {
	b := New(8192, 4)
	assert.True(t, b.Probe(nil, true))
	assert.True(t, b.Probe(nil, false))
}

func TestSameTokenSamePositionsDeterministic(t *testing.T) {
	b1 := New(2048, 4)
	b2 := New(2048, 4)

	b1.Add("deterministic-token")
	b2.Add("deterministic-token")

	assert.Equal(t, b1.Bytes(), b2.Bytes())
}

func TestFromBytesRoundTrip(t *testing.T) {
	b := New(2048, 4)
	b.Add("roundtrip-token")

	wrapped := FromBytes(b.Bytes(), 4)
	assert.True(t, wrapped.Probe([]string{"roundtrip-token"}, true))
}

func TestCaseInsensitiveProbe(t *testing.T) {
	b := New(2048, 4)
	b.Add("MixedCase")

	assert.True(t, b.Probe([]string{"mixedcase"}, true))
	assert.True(t, b.Probe([]string{"MIXEDCASE"}, true))
}

func TestExpandTokensStemAndPrefix(t *testing.T) {
	forms := ExpandTokens("connections", true, 4)
	assert.Contains(t, forms, "connections")
	assert.Contains(t, forms, "connection")
	assert.Contains(t, forms, "pref:conn")
}

func TestExpandTokensDisabled(t *testing.T) {
	forms := ExpandTokens("connections", false, 0)
	assert.Equal(t, []string{"connections"}, forms)
}
