package hashfam_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/hashfam"
)

func TestStringShingler_ProducesOverlappingRuns(t *testing.T) {
	shingler := hashfam.StringShingler(3)
	got := shingler("hello")
	require.Equal(t, []string{"hel", "ell", "llo"}, got)
}

func TestStringShingler_ShortStringIsOneShingle(t *testing.T) {
	shingler := hashfam.StringShingler(10)
	got := shingler("hi")
	require.Equal(t, []string{"hi"}, got)
}

func TestMinHash_IdenticalInputsSameStageMatch(t *testing.T) {
	shingler := hashfam.StringShingler(3)
	hf := hashfam.NewMinHash[string](shingler, 4, 1)

	a := hf("hello world", 0)
	b := hf("hello world", 0)
	require.Equal(t, a, b)
}

func TestMinHash_DifferentStagesCanDiffer(t *testing.T) {
	shingler := hashfam.StringShingler(3)
	hf := hashfam.NewMinHash[string](shingler, 8, 1)

	seenDifferent := false
	base := hf("a sentence about cats and dogs", 0)
	for s := 1; s < 8; s++ {
		if hf("a sentence about cats and dogs", s) != base {
			seenDifferent = true
			break
		}
	}
	require.True(t, seenDifferent)
}

func TestSuperBit_DeterministicPerStage(t *testing.T) {
	vectorizer := func(v []float64) []float64 { return v }
	hf := hashfam.NewSuperBit[[]float64](vectorizer, 3, 4, 2, 99)

	v := []float64{1, 0, 0}
	a := hf(v, 0)
	b := hf(v, 0)
	require.Equal(t, a, b)
}
