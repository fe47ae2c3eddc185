package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_ExactMatchCaseInsensitive(t *testing.T) {
	lookup := NewLookup()

	lower := lookup.RecommendationsFor("headache")
	upper := lookup.RecommendationsFor("HEADACHE")
	mixed := lookup.RecommendationsFor("  Headache ")

	require.NotEmpty(t, lower)
	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
}

func TestLookup_SubstringMatch(t *testing.T) {
	lookup := NewLookup()

	direct := lookup.RecommendationsFor("migraine")
	phrased := lookup.RecommendationsFor("chronic migraine attacks")
	assert.Equal(t, direct, phrased)

	// Label containing the query also matches.
	partial := lookup.RecommendationsFor("joint")
	assert.Equal(t, lookup.RecommendationsFor("joint pain"), partial)
}

func TestLookup_MultiMatchIsDeterministic(t *testing.T) {
	lookup := NewLookup()

	// The label matches both "back pain" and "joint pain"; the first label in
	// sorted order must win on every call.
	first := lookup.RecommendationsFor("joint pain and back pain")
	assert.Equal(t, lookup.RecommendationsFor("back pain"), first)

	for i := 0; i < 200; i++ {
		assert.Equal(t, first, lookup.RecommendationsFor("joint pain and back pain"), "call %d", i)
	}
}

func TestLookup_FallbackNeverEmpty(t *testing.T) {
	lookup := NewLookup()

	for _, query := range []string{"", "   ", "completely unknown symptom xyz"} {
		advice := lookup.RecommendationsFor(query)
		assert.NotEmpty(t, advice, "query %q", query)
	}
}

func TestLookup_ReturnsCopies(t *testing.T) {
	lookup := NewLookup()

	first := lookup.RecommendationsFor("fatigue")
	first[0] = "mutated"

	second := lookup.RecommendationsFor("fatigue")
	assert.NotEqual(t, "mutated", second[0], "callers must not be able to mutate the shared table")
}
