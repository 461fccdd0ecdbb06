package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleSetAdd(t *testing.T) {
	var s SampleSet
	s = s.Add("a")
	s = s.Add("b")
	s = s.Add("a")
	s = s.Add("c")
	s = s.Add("d")

	assert.Equal(t, SampleSet{"a", "b", "c"}, s)
}

func TestSampleSetUnion(t *testing.T) {
	s := SampleSet{"x", "y"}.Union(SampleSet{"y", "z", "w"})
	assert.Equal(t, SampleSet{"x", "y", "z"}, s)
}

func TestSampleSetCloneIsIndependent(t *testing.T) {
	orig := make(SampleSet, 0, MaxSamples)
	orig = orig.Add("a")

	clone := orig.Clone()
	clone = clone.Add("b")
	_ = orig.Add("c")

	assert.Equal(t, SampleSet{"a", "b"}, clone)
	assert.Equal(t, SampleSet{"a"}, orig)
}
