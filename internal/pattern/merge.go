package pattern

import "log/slog"

// DefaultSimilarity is the minimum literal-token Jaccard similarity for two
// templates to merge.
const DefaultSimilarity = 0.6

// Similarity returns the Jaccard similarity of the literal tokens of two
// templates. Placeholders are ignored on both sides; two templates without
// any literal are fully similar.
func Similarity(a, b *Group) float64 {
	if len(a.literals) == 0 && len(b.literals) == 0 {
		return 1.0
	}

	shared := 0
	for lit := range a.literals {
		if _, ok := b.literals[lit]; ok {
			shared++
		}
	}
	union := len(a.literals) + len(b.literals) - shared
	return float64(shared) / float64(union)
}

// mergeable reports whether a and b have the same width and are similar enough.
func mergeable(a, b *Group, threshold float64) bool {
	return a.Width() == b.Width() && Similarity(a, b) >= threshold
}

// Merge combines two templates of equal width position by position.
//
// Identical positions are kept (placeholder samples are unioned, a's values
// first). Differing positions become a new placeholder seeded from a's
// samples or literal, then b's. Placeholders are renumbered from 0 and the
// count is the sum of both counts. Neither input is modified.
func Merge(a, b *Group) *Group {
	merged := &Group{
		Count:  a.Count + b.Count,
		tokens: make([]templateToken, len(a.tokens)),
	}

	for pos := range a.tokens {
		ta, tb := a.tokens[pos], b.tokens[pos]

		if !ta.isPlaceholder() && ta.sameAs(tb) {
			merged.tokens[pos] = templateToken{text: ta.text, slot: -1}
			continue
		}

		var samples SampleSet
		hint := ""
		switch {
		case ta.isPlaceholder() && ta.sameAs(tb):
			samples = a.Samples[ta.slot].Clone().Union(b.Samples[tb.slot])
			if a.Hints[ta.slot] == b.Hints[tb.slot] {
				hint = a.Hints[ta.slot]
			}
		default:
			if ta.isPlaceholder() {
				samples = a.Samples[ta.slot].Clone()
			} else {
				samples = SampleSet{}.Add(ta.text)
			}
			if tb.isPlaceholder() {
				samples = samples.Union(b.Samples[tb.slot])
			} else {
				samples = samples.Add(tb.text)
			}
			if ta.isPlaceholder() && tb.isPlaceholder() && a.Hints[ta.slot] == b.Hints[tb.slot] {
				hint = a.Hints[ta.slot]
			}
		}

		merged.tokens[pos] = templateToken{slot: len(merged.Samples)}
		merged.Samples = append(merged.Samples, samples)
		merged.Hints = append(merged.Hints, hint)
	}

	merged.refresh()
	return merged
}

// merger runs the greedy first-qualifying-pair merge to a fixed point.
type merger struct {
	groups    []*Group
	threshold float64
	logger    *slog.Logger
}

// mergeGroups repeatedly merges the lowest-index qualifying pair (i, j),
// replacing i with the merged group and removing j, until no pair qualifies.
//
// After a merge at i every pair whose lower index is below i and that does
// not involve i was already rejected and is unchanged, so the next qualifying
// pair in scan order is either (a, i) for the smallest qualifying a < i, or
// lies at or after row i. Resuming there yields exactly the merges of a full
// restart.
func mergeGroups(groups []*Group, threshold float64, logger *slog.Logger) []*Group {
	m := &merger{groups: groups, threshold: threshold, logger: logger}

	i, j, found := m.scanFrom(0)
	for found {
		m.mergeAt(i, j)
		if a, ok := m.earlierPartner(i); ok {
			i, j = a, i
			continue
		}
		i, j, found = m.scanFrom(i)
	}
	return m.groups
}

// scanFrom returns the first qualifying pair whose lower index is at least row.
func (m *merger) scanFrom(row int) (int, int, bool) {
	for i := row; i < len(m.groups); i++ {
		for j := i + 1; j < len(m.groups); j++ {
			if mergeable(m.groups[i], m.groups[j], m.threshold) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// earlierPartner returns the smallest a < i such that (a, i) qualifies.
func (m *merger) earlierPartner(i int) (int, bool) {
	for a := 0; a < i; a++ {
		if mergeable(m.groups[a], m.groups[i], m.threshold) {
			return a, true
		}
	}
	return 0, false
}

// mergeAt replaces groups[i] with Merge(groups[i], groups[j]) and drops groups[j].
func (m *merger) mergeAt(i, j int) {
	a, b := m.groups[i], m.groups[j]
	merged := Merge(a, b)
	m.logger.Debug("merged templates",
		"left", a.Template,
		"right", b.Template,
		"result", merged.Template,
		"count", merged.Count)

	m.groups[i] = merged
	m.groups = append(m.groups[:j], m.groups[j+1:]...)
}
