package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/builder"
)

func TestWithK_RejectsNonPositive(t *testing.T) {
	items := intItems(0, 1, 2)
	_, _, err := builder.Brute[int](items, builder.WithK[int](0), builder.WithSimilarity[int](intSimilarity))
	require.ErrorIs(t, err, builder.ErrOptionViolation)
}

func TestWithRho_RejectsOutOfRange(t *testing.T) {
	items := intItems(0, 1, 2, 3, 4)
	_, _, err := builder.NNDescent[int](
		items,
		builder.WithK[int](2),
		builder.WithSimilarity[int](intSimilarity),
		builder.WithRho[int](1.5),
	)
	require.ErrorIs(t, err, builder.ErrOptionViolation)
}

func TestWithDelta_RejectsNegative(t *testing.T) {
	items := intItems(0, 1, 2, 3, 4)
	_, _, err := builder.NNDescent[int](
		items,
		builder.WithK[int](2),
		builder.WithSimilarity[int](intSimilarity),
		builder.WithDelta[int](-0.1),
	)
	require.ErrorIs(t, err, builder.ErrOptionViolation)
}

func TestWithBlockSize_RejectsNonPositive(t *testing.T) {
	items := intItems(0, 1, 2, 3)
	_, _, err := builder.Brute[int](
		items,
		builder.WithK[int](2),
		builder.WithSimilarity[int](intSimilarity),
		builder.WithBlockSize[int](0),
	)
	require.ErrorIs(t, err, builder.ErrOptionViolation)
}

func TestWithSeed_IsReproducible(t *testing.T) {
	values := make([]int, 30)
	for i := range values {
		values[i] = i
	}
	items := intItems(values...)

	g1, _, err := builder.NNDescent[int](items, builder.WithK[int](4), builder.WithSimilarity[int](intSimilarity), builder.WithSeed[int](5))
	require.NoError(t, err)
	g2, _, err := builder.NNDescent[int](items, builder.WithK[int](4), builder.WithSimilarity[int](intSimilarity), builder.WithSeed[int](5))
	require.NoError(t, err)

	for _, it := range items {
		nl1, _ := g1.Get(it.ID)
		nl2, _ := g2.Get(it.ID)
		ids1 := make([]string, 0)
		for _, nb := range nl1.Iter() {
			ids1 = append(ids1, nb.Item.ID)
		}
		ids2 := make([]string, 0)
		for _, nb := range nl2.Iter() {
			ids2 = append(ids2, nb.Item.ID)
		}
		require.Equal(t, ids1, ids2)
	}
}
