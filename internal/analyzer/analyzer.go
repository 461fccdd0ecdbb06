// Package analyzer computes summary statistics over mined pattern groups.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/squash/internal/pattern"
)

// DefaultTopN is the number of largest groups reported in TopPatterns.
const DefaultTopN = 10

// Stats holds aggregate statistics for one compaction.
type Stats struct {
	InputLines       int            `json:"input_lines" yaml:"input_lines"`
	Patterns         int            `json:"patterns" yaml:"patterns"`
	CompressionRatio float64        `json:"compression_ratio" yaml:"compression_ratio"`
	Singletons       int            `json:"singletons" yaml:"singletons"`
	Placeholders     int            `json:"placeholders" yaml:"placeholders"`
	TopCoverage      float64        `json:"top_coverage" yaml:"top_coverage"`
	TopPatterns      []PatternCount `json:"top_patterns,omitempty" yaml:"top_patterns,omitempty"`
}

// PatternCount tracks a template and the share of input lines it covers.
type PatternCount struct {
	Template string  `json:"template" yaml:"template"`
	Count    int     `json:"count" yaml:"count"`
	Percent  float64 `json:"percent" yaml:"percent"`
}

// Summarize computes Stats over groups. Groups are not modified; the top
// groups follow report order. topN <= 0 uses DefaultTopN.
func Summarize(groups []*pattern.Group, topN int) Stats {
	if topN <= 0 {
		topN = DefaultTopN
	}

	stats := Stats{
		Patterns:         len(groups),
		CompressionRatio: 1.0,
	}
	if len(groups) == 0 {
		return stats
	}

	sorted := make([]*pattern.Group, len(groups))
	copy(sorted, groups)
	pattern.Sort(sorted)

	for _, g := range sorted {
		stats.InputLines += g.Count
		stats.Placeholders += len(g.Samples)
		if g.Count == 1 {
			stats.Singletons++
		}
	}

	stats.CompressionRatio = float64(stats.InputLines) / float64(stats.Patterns)

	covered := 0
	for _, g := range sorted[:min(topN, len(sorted))] {
		covered += g.Count
		stats.TopPatterns = append(stats.TopPatterns, PatternCount{
			Template: g.Template,
			Count:    g.Count,
			Percent:  float64(g.Count) / float64(stats.InputLines) * 100,
		})
	}
	stats.TopCoverage = float64(covered) / float64(stats.InputLines)

	return stats
}

// String renders a one-paragraph summary suitable for stderr.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d lines -> %d patterns (%.1fx)", s.InputLines, s.Patterns, s.CompressionRatio)
	if s.Singletons > 0 {
		fmt.Fprintf(&b, ", %d seen once", s.Singletons)
	}
	if len(s.TopPatterns) > 0 {
		fmt.Fprintf(&b, ", top %d cover %.1f%%", len(s.TopPatterns), s.TopCoverage*100)
	}
	return b.String()
}
