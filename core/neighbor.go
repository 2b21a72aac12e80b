package core

// Neighbor pairs an Item with its similarity to some implicit owner item.
// Neighbors order by Similarity descending; ties break by Item.ID ascending,
// giving a total order. Equality is by the referenced item's identity alone —
// Similarity is not part of equality.
type Neighbor[T any] struct {
	Item       *Item[T]
	Similarity float64
}

// less reports whether a sorts strictly before b under the NeighborList's
// total order: higher similarity first, ID ascending breaks ties.
func less[T any](a, b Neighbor[T]) bool {
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}

	return a.Item.ID < b.Item.ID
}
