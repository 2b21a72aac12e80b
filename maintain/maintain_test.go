package maintain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/builder"
	"github.com/katalvlaran/annlib/core"
	"github.com/katalvlaran/annlib/maintain"
	"github.com/katalvlaran/annlib/stats"
)

func intSim(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}

	return 1.0 / (1.0 + float64(d))
}

func buildGraph(t *testing.T, values []int, k int, opts ...core.GraphOption[int]) *core.Graph[int] {
	t.Helper()
	items := make([]*core.Item[int], len(values))
	for i, v := range values {
		items[i] = &core.Item[int]{ID: fmt.Sprintf("item%03d", i), Payload: v}
	}
	g, _, err := builder.Brute[int](items, builder.WithK[int](k), builder.WithSimilarity[int](intSim))
	require.NoError(t, err)

	return g
}

func TestExhaustiveAdd_InsertsAndReciprocates(t *testing.T) {
	values := make([]int, 20)
	for i := range values {
		values[i] = i
	}
	g := buildGraph(t, values, 3)

	newItem := &core.Item[int]{ID: "newcomer", Payload: 10}
	require.NoError(t, maintain.ExhaustiveAdd(g, newItem, stats.New()))

	nl, ok := g.Get("newcomer")
	require.True(t, ok)
	require.Equal(t, 3, nl.Len())

	// the closest existing items should now also consider the newcomer.
	closest, ok := g.Get("item010")
	require.True(t, ok)
	require.True(t, closest.Contains("newcomer"))
}

func TestExhaustiveAdd_RejectsDuplicateID(t *testing.T) {
	g := buildGraph(t, []int{0, 1, 2, 3, 4}, 2)
	err := maintain.ExhaustiveAdd(g, &core.Item[int]{ID: "item000", Payload: 99}, stats.New())
	require.ErrorIs(t, err, maintain.ErrItemExists)
}

func TestFastAdd_InsertsReachableItem(t *testing.T) {
	values := make([]int, 50)
	for i := range values {
		values[i] = i
	}
	g := buildGraph(t, values, 5)

	newItem := &core.Item[int]{ID: "newcomer", Payload: 25}
	require.NoError(t, maintain.FastAdd(g, newItem, 2, stats.New()))
	require.True(t, g.Contains("newcomer"))

	nl, ok := g.Get("newcomer")
	require.True(t, ok)
	require.Greater(t, nl.Len(), 0)
}

func TestFastRemove_NoDanglingReferences(t *testing.T) {
	values := make([]int, 30)
	for i := range values {
		values[i] = i
	}
	g := buildGraph(t, values, 4)

	require.NoError(t, maintain.FastRemove(g, "item015", 3, stats.New()))
	require.False(t, g.Contains("item015"))

	for _, it := range g.Items() {
		nl, ok := g.Get(it.ID)
		require.True(t, ok)
		require.False(t, nl.Contains("item015"))
	}
}

func TestFastRemove_UnknownItem(t *testing.T) {
	g := buildGraph(t, []int{0, 1, 2, 3, 4}, 2)
	err := maintain.FastRemove(g, "ghost", 2, stats.New())
	require.ErrorIs(t, err, core.ErrItemNotFound)
}

func TestSlidingWindow_EvictsOldest(t *testing.T) {
	values := []int{0, 10, 20}
	items := make([]*core.Item[int], len(values))
	for i, v := range values {
		items[i] = &core.Item[int]{ID: fmt.Sprintf("item%d", i), Payload: v}
	}
	g, err := core.NewGraph[int](1, intSim, core.WithWindowSize[int](3))
	require.NoError(t, err)
	for _, it := range items {
		nl, nlErr := core.NewNeighborList[int](1)
		require.NoError(t, nlErr)
		require.NoError(t, g.Put(it, nl))
		g.SetSequence(it.ID, g.NextSequence())
	}
	require.Equal(t, 3, g.Size())

	require.NoError(t, maintain.ExhaustiveAdd(g, &core.Item[int]{ID: "item3", Payload: 30}, stats.New()))
	require.Equal(t, 3, g.Size())
	require.False(t, g.Contains("item0")) // oldest evicted
	require.True(t, g.Contains("item3"))
}
