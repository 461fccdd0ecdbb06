package pattern

import "sort"

// Thresholds tunes the per-bucket entropy cutoff selection.
//
// A column is variable when its entropy exceeds the cutoff. The cutoff is
// anchored just below the entropy of the quietest near-unique column, and
// never falls below the median column entropy:
//
//	high := columns with UniquenessCutoff < distinct/total
//	cutoff = max(min(entropy(high)) * AnchorFactor, median)   if high is non-empty
//	cutoff = max(median, EntropyFloor)                          otherwise
type Thresholds struct {
	// UniquenessCutoff is the distinct/total ratio above which a column counts
	// as a free-running identifier. Default 0.5.
	UniquenessCutoff float64 `mapstructure:"uniqueness_cutoff"`

	// AnchorFactor scales the minimum entropy of the identifier columns. Default 0.9.
	AnchorFactor float64 `mapstructure:"anchor_factor"`

	// EntropyFloor is the cutoff, in bits, when no identifier column exists. Default 2.0.
	EntropyFloor float64 `mapstructure:"entropy_floor"`
}

// emptyBucketCutoff is returned for buckets without any observed column.
const emptyBucketCutoff = 1.0

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UniquenessCutoff: 0.5,
		AnchorFactor:     0.9,
		EntropyFloor:     2.0,
	}
}

// Valid reports whether every knob is in range: UniquenessCutoff in [0, 1],
// AnchorFactor and EntropyFloor not negative. Zero is a valid setting.
func (t Thresholds) Valid() bool {
	return t.UniquenessCutoff >= 0 && t.UniquenessCutoff <= 1 &&
		t.AnchorFactor >= 0 && t.EntropyFloor >= 0
}

// Select returns the entropy cutoff for the columns of one bucket.
func (t Thresholds) Select(profiles []ColumnProfile) float64 {
	entropies := make([]float64, 0, len(profiles))
	highUniqueness := make([]float64, 0)

	for _, p := range profiles {
		if p.Total == 0 {
			continue
		}
		entropies = append(entropies, p.Entropy)
		if p.UniquenessRatio() > t.UniquenessCutoff {
			highUniqueness = append(highUniqueness, p.Entropy)
		}
	}

	if len(entropies) == 0 {
		return emptyBucketCutoff
	}

	sort.Float64s(entropies)
	median := entropies[len(entropies)/2]

	if len(highUniqueness) > 0 {
		m := highUniqueness[0]
		for _, e := range highUniqueness[1:] {
			if e < m {
				m = e
			}
		}
		return max(m*t.AnchorFactor, median)
	}

	return max(median, t.EntropyFloor)
}

// variableColumns marks every column that is inherently variable or whose
// entropy exceeds cutoff.
func variableColumns(profiles []ColumnProfile, cutoff float64) []bool {
	variable := make([]bool, len(profiles))
	for c, p := range profiles {
		variable[c] = p.InherentlyVariable || p.Entropy > cutoff
	}
	return variable
}
