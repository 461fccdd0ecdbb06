package pattern

import (
	"math"
	"sort"
)

// bucket holds the parsed lines sharing one token count.
type bucket struct {
	width int
	lines []Line
}

// groupByLength partitions lines into buckets keyed by token count.
// Buckets are returned in ascending width order; lines keep their input order.
func groupByLength(lines []Line) []*bucket {
	byWidth := make(map[int]*bucket)
	for _, line := range lines {
		b, ok := byWidth[line.Width()]
		if !ok {
			b = &bucket{width: line.Width()}
			byWidth[line.Width()] = b
		}
		b.lines = append(b.lines, line)
	}

	buckets := make([]*bucket, 0, len(byWidth))
	for _, b := range byWidth {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].width < buckets[j].width
	})
	return buckets
}

// ColumnProfile is the value distribution of one column within a bucket.
type ColumnProfile struct {
	// ValueCounts maps each observed display form to its occurrence count.
	ValueCounts map[string]int

	// Total is the number of observations (lines) in the column.
	Total int

	// Entropy is the Shannon entropy, in bits, of ValueCounts.
	Entropy float64

	// InherentlyVariable is set when any observed token matched a recognized shape.
	InherentlyVariable bool
}

// Distinct returns the number of distinct display forms observed.
func (p ColumnProfile) Distinct() int {
	return len(p.ValueCounts)
}

// UniquenessRatio returns distinct values over total observations, or 0 when empty.
func (p ColumnProfile) UniquenessRatio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Distinct()) / float64(p.Total)
}

// Hint returns the type hint for the column: "hex", "num" or "time" when every
// observation shares one recognized display form, otherwise "".
func (p ColumnProfile) Hint() string {
	if len(p.ValueCounts) != 1 {
		return ""
	}
	for display := range p.ValueCounts {
		return hintFor(display)
	}
	return ""
}

// profileColumns builds one ColumnProfile per column of b in a single pass.
func profileColumns(b *bucket) []ColumnProfile {
	profiles := make([]ColumnProfile, b.width)
	for c := range profiles {
		profiles[c].ValueCounts = make(map[string]int)
	}

	for _, line := range b.lines {
		for c, tok := range line.Classified {
			p := &profiles[c]
			p.ValueCounts[tok.Display]++
			p.Total++
			p.InherentlyVariable = p.InherentlyVariable || tok.Variable
		}
	}

	for c := range profiles {
		profiles[c].Entropy = Entropy(profiles[c].ValueCounts, profiles[c].Total)
	}
	return profiles
}

// Entropy returns -sum(p*log2(p)) over the distribution in counts.
// An empty distribution has entropy 0. Values are summed in key order so
// the result is bit-for-bit reproducible.
func Entropy(counts map[string]int, total int) float64 {
	if total <= 0 {
		return 0
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := 0.0
	for _, k := range keys {
		if counts[k] == 0 {
			continue
		}
		p := float64(counts[k]) / float64(total)
		h -= p * math.Log2(p)
	}
	// A single value yields -1*log2(1) = -0; normalize to +0.
	if h == 0 {
		return 0
	}
	return h
}
