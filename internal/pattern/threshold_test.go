package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// columnOf builds the profile of a single column holding values.
func columnOf(values ...string) ColumnProfile {
	p := ColumnProfile{ValueCounts: make(map[string]int)}
	for _, v := range values {
		c := Classify(v)
		p.ValueCounts[c.Display]++
		p.Total++
		p.InherentlyVariable = p.InherentlyVariable || c.Variable
	}
	p.Entropy = Entropy(p.ValueCounts, p.Total)
	return p
}

func TestThresholdsSelect(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
		profiles   []ColumnProfile
		want       float64
	}{
		{
			name:       "no columns",
			thresholds: DefaultThresholds(),
			profiles:   nil,
			want:       1.0,
		},
		{
			name:       "unobserved columns are skipped",
			thresholds: DefaultThresholds(),
			profiles:   []ColumnProfile{{ValueCounts: map[string]int{}}},
			want:       1.0,
		},
		{
			name:       "no identifier column falls back to floor",
			thresholds: DefaultThresholds(),
			profiles: []ColumnProfile{
				columnOf("Dec", "Dec", "Dec"),
				columnOf("07:28:03", "07:28:05", "07:28:08"),
			},
			want: 2.0,
		},
		{
			name:       "identifier column anchors the cutoff",
			thresholds: DefaultThresholds(),
			profiles: []ColumnProfile{
				columnOf("session", "session"),
				columnOf("opened", "closed"),
				columnOf("for", "for"),
			},
			want: 0.9,
		},
		{
			name:       "median wins over a low anchor",
			thresholds: DefaultThresholds(),
			profiles: []ColumnProfile{
				columnOf("a", "a", "b", "c"),
				columnOf("w", "x", "y", "z"),
				columnOf("k", "k", "k", "k"),
			},
			want: 1.5,
		},
		{
			name:       "custom anchor factor",
			thresholds: Thresholds{UniquenessCutoff: 0.5, AnchorFactor: 0.5, EntropyFloor: 2.0},
			profiles: []ColumnProfile{
				columnOf("session", "session"),
				columnOf("opened", "closed"),
				columnOf("for", "for"),
			},
			want: 0.5,
		},
		{
			name:       "custom floor",
			thresholds: Thresholds{UniquenessCutoff: 0.5, AnchorFactor: 0.9, EntropyFloor: 3.0},
			profiles: []ColumnProfile{
				columnOf("a", "b", "a", "b"),
			},
			want: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.thresholds.Select(tt.profiles), 1e-12)
		})
	}
}

func TestThresholdsUpperMedian(t *testing.T) {
	// Entropies sort to [0, 1, 1.5, 2]; the upper median is 1.5.
	profiles := []ColumnProfile{
		columnOf("a", "a", "a", "a"),
		columnOf("a", "a", "b", "b"),
		columnOf("a", "a", "b", "c"),
		columnOf("a", "b", "c", "d"),
	}

	noIdentifiers := Thresholds{UniquenessCutoff: 1.0, AnchorFactor: 0.9, EntropyFloor: 1.0}
	assert.InDelta(t, 1.5, noIdentifiers.Select(profiles), 1e-12)

	// The last column has ratio 1.0 > 0.99 and anchors at 2*0.9 = 1.8.
	anchored := Thresholds{UniquenessCutoff: 0.99, AnchorFactor: 0.9, EntropyFloor: 1.0}
	assert.InDelta(t, 1.8, anchored.Select(profiles), 1e-12)
}

func TestThresholdsValid(t *testing.T) {
	tests := []struct {
		name string
		th   Thresholds
		want bool
	}{
		{"defaults", DefaultThresholds(), true},
		{"all zero", Thresholds{}, true},
		{"uniqueness one", Thresholds{UniquenessCutoff: 1}, true},
		{"uniqueness above one", Thresholds{UniquenessCutoff: 1.1}, false},
		{"negative uniqueness", Thresholds{UniquenessCutoff: -0.1}, false},
		{"negative anchor", Thresholds{AnchorFactor: -1}, false},
		{"negative floor", Thresholds{EntropyFloor: -0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.th.Valid())
		})
	}
}

func TestThresholdsZeroFloor(t *testing.T) {
	// Entropies [0, 1, 0] with no identifier column: the median is 0 and a
	// zero floor keeps it there, so the 1 bit column counts as variable.
	profiles := []ColumnProfile{
		columnOf("worker", "worker", "worker", "worker"),
		columnOf("a", "b", "a", "b"),
		columnOf("x", "x", "x", "x"),
	}

	th := DefaultThresholds()
	th.EntropyFloor = 0
	assert.Equal(t, 0.0, th.Select(profiles))
	assert.Equal(t, []bool{false, true, false}, variableColumns(profiles, th.Select(profiles)))
}

func TestVariableColumns(t *testing.T) {
	profiles := []ColumnProfile{
		columnOf("a", "a"),
		columnOf("0x1", "0x1"),
		columnOf("x", "y"),
	}

	assert.Equal(t, []bool{false, true, true}, variableColumns(profiles, 0.9))
	assert.Equal(t, []bool{false, true, false}, variableColumns(profiles, 1.0))
}
