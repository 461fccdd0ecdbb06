package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimmerbailey/squash/internal/pattern"
)

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil, 0)
	assert.Equal(t, Stats{CompressionRatio: 1.0}, stats)
	assert.Equal(t, "0 lines -> 0 patterns (1.0x)", stats.String())
}

func TestSummarize(t *testing.T) {
	groups := []*pattern.Group{
		{Template: "once", Count: 1},
		{Template: "port <0> closed", Count: 6, Samples: []pattern.SampleSet{{"1", "2", "3"}}, Hints: []string{""}},
		{Template: "retry <0> of <1>", Count: 3, Samples: []pattern.SampleSet{{"a"}, {"b"}}, Hints: []string{"", ""}},
	}

	stats := Summarize(groups, 2)

	assert.Equal(t, 10, stats.InputLines)
	assert.Equal(t, 3, stats.Patterns)
	assert.InDelta(t, 10.0/3.0, stats.CompressionRatio, 1e-9)
	assert.Equal(t, 1, stats.Singletons)
	assert.Equal(t, 3, stats.Placeholders)
	assert.InDelta(t, 0.9, stats.TopCoverage, 1e-9)

	require.Len(t, stats.TopPatterns, 2)
	assert.Equal(t, PatternCount{Template: "port <0> closed", Count: 6, Percent: 60}, stats.TopPatterns[0])
	assert.Equal(t, "retry <0> of <1>", stats.TopPatterns[1].Template)

	// Input order is untouched.
	assert.Equal(t, "once", groups[0].Template)

	assert.Equal(t, "10 lines -> 3 patterns (3.3x), 1 seen once, top 2 cover 90.0%", stats.String())
}

func TestSummarizeDefaultTopN(t *testing.T) {
	var groups []*pattern.Group
	total := 0
	for i := range 15 {
		groups = append(groups, &pattern.Group{Template: fmt.Sprintf("template %02d", i), Count: i + 1})
		total += i + 1
	}

	stats := Summarize(groups, 0)
	require.Len(t, stats.TopPatterns, DefaultTopN)
	assert.Equal(t, "template 14", stats.TopPatterns[0].Template)
	assert.Equal(t, total, stats.InputLines)
	// Top ten are counts 6..15.
	assert.InDelta(t, 105.0/120.0, stats.TopCoverage, 1e-9)
}
