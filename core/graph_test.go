package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/annlib/core"
)

func intSim(a, b int) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}

	return 1.0 / (1.0 + float64(d))
}

func TestNewGraph_Validation(t *testing.T) {
	_, err := core.NewGraph[int](0, intSim)
	require.ErrorIs(t, err, core.ErrInvalidCapacity)

	_, err = core.NewGraph[int](3, nil)
	require.ErrorIs(t, err, core.ErrNilSimilarity)

	g, err := core.NewGraph[int](3, intSim)
	require.NoError(t, err)
	require.Equal(t, 3, g.K())
	require.Equal(t, 0, g.WindowSize())
}

func TestGraph_PutGetContainsSize(t *testing.T) {
	g, err := core.NewGraph[int](2, intSim)
	require.NoError(t, err)

	nl, err := core.NewNeighborList[int](2)
	require.NoError(t, err)
	require.NoError(t, g.Put(&core.Item[int]{ID: "a", Payload: 1}, nl))

	require.True(t, g.Contains("a"))
	require.Equal(t, 1, g.Size())

	got, ok := g.Get("a")
	require.True(t, ok)
	require.Same(t, nl, got)

	_, ok = g.Get("missing") // absent entries are not errors
	require.False(t, ok)
}

func TestGraph_Put_RejectsMismatchedCapacity(t *testing.T) {
	g, err := core.NewGraph[int](2, intSim)
	require.NoError(t, err)
	wrongNL, _ := core.NewNeighborList[int](3)
	err = g.Put(&core.Item[int]{ID: "a"}, wrongNL)
	require.ErrorIs(t, err, core.ErrInvalidCapacity)
}

func TestGraph_Put_RejectsEmptyID(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	nl, _ := core.NewNeighborList[int](2)
	err := g.Put(&core.Item[int]{ID: ""}, nl)
	require.ErrorIs(t, err, core.ErrEmptyItemID)
}

func TestGraph_InsertNeighbor_RejectsSelf(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	nl, _ := core.NewNeighborList[int](2)
	require.NoError(t, g.Put(&core.Item[int]{ID: "a"}, nl))

	_, err := g.InsertNeighbor("a", core.Neighbor[int]{Item: &core.Item[int]{ID: "a"}, Similarity: 1})
	require.ErrorIs(t, err, core.ErrSelfNeighbor)
}

func TestGraph_InsertNeighbor_UnknownOwner(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	_, err := g.InsertNeighbor("ghost", core.Neighbor[int]{Item: &core.Item[int]{ID: "b"}, Similarity: 1})
	require.ErrorIs(t, err, core.ErrItemNotFound)
}

func TestGraph_Remove(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	nl, _ := core.NewNeighborList[int](2)
	require.NoError(t, g.Put(&core.Item[int]{ID: "a"}, nl))

	require.NoError(t, g.Remove("a"))
	require.False(t, g.Contains("a"))
	require.ErrorIs(t, g.Remove("a"), core.ErrItemNotFound)
}

func TestGraph_Items_SortedByID(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	for _, id := range []string{"c", "a", "b"} {
		nl, _ := core.NewNeighborList[int](2)
		require.NoError(t, g.Put(&core.Item[int]{ID: id}, nl))
	}
	items := g.Items()
	require.Equal(t, []string{"a", "b", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestGraph_Clone_IsIndependent(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim)
	nl, _ := core.NewNeighborList[int](2)
	require.NoError(t, g.Put(&core.Item[int]{ID: "a"}, nl))

	clone := g.Clone()
	clone.InsertNeighbor("a", core.Neighbor[int]{Item: &core.Item[int]{ID: "b"}, Similarity: 0.5})

	originalNL, _ := g.Get("a")
	cloneNL, _ := clone.Get("a")
	require.Equal(t, 0, originalNL.Len())
	require.Equal(t, 1, cloneNL.Len())
}

func TestGraph_SequenceTracking(t *testing.T) {
	g, _ := core.NewGraph[int](2, intSim, core.WithWindowSize[int](10))
	require.Equal(t, 10, g.WindowSize())

	seq := g.NextSequence()
	g.SetSequence("a", seq)
	got, ok := g.SequenceOf("a")
	require.True(t, ok)
	require.Equal(t, seq, got)

	id, ok := g.ItemAtSequence(seq)
	require.True(t, ok)
	require.Equal(t, "a", id)

	_, ok = g.ItemAtSequence(seq + 1)
	require.False(t, ok)
}
