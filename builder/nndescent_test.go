package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/builder"
)

func TestNNDescent_FallsBackToBruteWhenTooFewItems(t *testing.T) {
	items := intItems(0, 10, 20)
	g, st, err := builder.NNDescent[int](items, builder.WithK[int](2), builder.WithSimilarity[int](intSimilarity))
	require.NoError(t, err)
	require.Equal(t, 3, g.Size())
	require.Equal(t, 0, st.Iterations) // Brute fallback never reports NN-Descent iterations
}

// TestNNDescent_RecallAgainstBrute builds the same 60-item dataset with both
// Brute and NNDescent and checks NNDescent recovers at least 80% of the exact
// neighbor identities on average, the recall bar approximate builders are
// expected to clear on well-behaved data.
func TestNNDescent_RecallAgainstBrute(t *testing.T) {
	values := make([]int, 60)
	for i := range values {
		values[i] = i * 3
	}
	items := intItems(values...)

	exact, _, err := builder.Brute[int](items, builder.WithK[int](5), builder.WithSimilarity[int](intSimilarity))
	require.NoError(t, err)

	approx, _, err := builder.NNDescent[int](
		items,
		builder.WithK[int](5),
		builder.WithSimilarity[int](intSimilarity),
		builder.WithSeed[int](42),
		builder.WithMaxIterations[int](15),
		builder.WithRho[int](1.0),
	)
	require.NoError(t, err)

	var totalCommon, totalPossible int
	for _, it := range items {
		exactNL, _ := exact.Get(it.ID)
		approxNL, _ := approx.Get(it.ID)
		totalCommon += exactNL.CountCommon(approxNL)
		totalPossible += exactNL.Len()
	}

	recall := float64(totalCommon) / float64(totalPossible)
	require.GreaterOrEqual(t, recall, 0.8)
}

func TestNNDescent_EveryNeighborListFull(t *testing.T) {
	values := make([]int, 30)
	for i := range values {
		values[i] = i
	}
	items := intItems(values...)

	g, _, err := builder.NNDescent[int](items, builder.WithK[int](4), builder.WithSimilarity[int](intSimilarity), builder.WithSeed[int](7))
	require.NoError(t, err)
	for _, it := range items {
		nl, ok := g.Get(it.ID)
		require.True(t, ok)
		require.Equal(t, 4, nl.Len())
	}
}
