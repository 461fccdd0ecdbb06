package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// sampleIndent prefixes every sample line of the report.
const sampleIndent = "     "

// Sort orders groups by count descending, then by template ascending.
func Sort(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Template < groups[j].Template
	})
}

// SampleLimit returns how many samples per placeholder the report shows for
// a group seen count times: 1 above 100, 2 above 10, otherwise 3.
func SampleLimit(count int) int {
	switch {
	case count > 100:
		return 1
	case count > 10:
		return 2
	default:
		return MaxSamples
	}
}

// Header renders the first report line of g: "[<count>x] <template>", or the
// bare template for a group seen once.
func Header(g *Group) string {
	if g.Count > 1 {
		return fmt.Sprintf("[%dx] %s", g.Count, g.Template)
	}
	return g.Template
}

// SampleLine renders the placeholder samples of g, or "" when no placeholder
// has any sample.
func SampleLine(g *Group) string {
	limit := SampleLimit(g.Count)

	var parts []string
	for i, samples := range g.Samples {
		if len(samples) == 0 {
			continue
		}
		shown := samples
		if len(shown) > limit {
			shown = shown[:limit]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", placeholder(i), strings.Join(shown, ", ")))
	}

	if len(parts) == 0 {
		return ""
	}
	return sampleIndent + strings.Join(parts, " | ")
}

// Render sorts groups in place and renders the compacted report. Lines are
// joined with "\n" and no trailing newline is added.
func Render(groups []*Group) string {
	Sort(groups)

	lines := make([]string, 0, len(groups)*2)
	for _, g := range groups {
		lines = append(lines, Header(g))
		if samples := SampleLine(g); samples != "" {
			lines = append(lines, samples)
		}
	}
	return strings.Join(lines, "\n")
}
