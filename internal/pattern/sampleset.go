package pattern

// MaxSamples is the most representative values retained per placeholder.
const MaxSamples = 3

// SampleSet is an insertion-ordered, duplicate-free list of at most MaxSamples values.
type SampleSet []string

// Contains reports whether v is already in the set.
func (s SampleSet) Contains(v string) bool {
	for _, existing := range s {
		if existing == v {
			return true
		}
	}
	return false
}

// Add appends v unless the set is full or already holds it.
func (s SampleSet) Add(v string) SampleSet {
	if len(s) >= MaxSamples || s.Contains(v) {
		return s
	}
	return append(s, v)
}

// Union appends the values of other after the receiver's, under the same rules as Add.
func (s SampleSet) Union(other SampleSet) SampleSet {
	for _, v := range other {
		s = s.Add(v)
	}
	return s
}

// Clone returns a copy that shares no backing array with s.
func (s SampleSet) Clone() SampleSet {
	out := make(SampleSet, len(s), max(len(s), MaxSamples))
	copy(out, s)
	return out
}
