package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/builder"
	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/search"
	"github.com/katalvlaran/annlib/stats"
)

func intSim(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}

	return 1.0 / (1.0 + float64(d))
}

func buildLineGraph(t *testing.T, n, k int) *core.Graph[int] {
	t.Helper()
	items := make([]*core.Item[int], n)
	for i := range items {
		items[i] = &core.Item[int]{ID: fmt.Sprintf("item%03d", i), Payload: i}
	}
	g, _, err := builder.Brute[int](items, builder.WithK[int](k), builder.WithSimilarity[int](intSim))
	require.NoError(t, err)

	return g
}

func TestSearch_RejectsNilGraph(t *testing.T) {
	_, err := search.Search[int](nil, 5, 3, stats.New())
	require.ErrorIs(t, err, search.ErrGraphNil)
}

func TestSearch_ExhaustiveFallbackWhenKCoversGraph(t *testing.T) {
	g := buildLineGraph(t, 10, 3)
	results, err := search.Search(g, 50, 10, stats.New())
	require.NoError(t, err)
	require.Len(t, results, 10)
}

// TestSearch_SelfMatch builds a graph and confirms searching for a value
// already present in the dataset finds that exact item as its top result.
func TestSearch_SelfMatch(t *testing.T) {
	g := buildLineGraph(t, 100, 5)
	results, err := search.Search(g, 42, 5, stats.New(), search.WithSeed(1), search.WithRestarts(8))
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "item042", results[0].Item.ID)
}

func TestSearch_RespectsSpeedupBudget(t *testing.T) {
	g := buildLineGraph(t, 200, 5)
	counters := stats.New()
	_, err := search.Search(g, 10, 5, counters, search.WithSpeedup(4), search.WithSeed(2))
	require.NoError(t, err)
	snap := counters.Snapshot()
	require.LessOrEqual(t, snap.SearchSimilarities, int64(200/4))
}

func TestSearch_WithSpeedup_RejectsNonBudgetingValues(t *testing.T) {
	g := buildLineGraph(t, 50, 5)
	_, err := search.Search(g, 10, 5, stats.New(), search.WithSpeedup(1))
	require.ErrorIs(t, err, search.ErrOptionViolation)

	_, err = search.Search(g, 10, 5, stats.New(), search.WithSpeedup(0.5))
	require.ErrorIs(t, err, search.ErrOptionViolation)
}

func TestSearch_WithLongJumps_RejectsNegative(t *testing.T) {
	g := buildLineGraph(t, 50, 5)
	_, err := search.Search(g, 10, 5, stats.New(), search.WithLongJumps(-1))
	require.ErrorIs(t, err, search.ErrOptionViolation)
}
