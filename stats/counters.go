// Package stats holds the process-wide counters search and maintain update as
// they run, so callers can observe how much work a query or an online update
// actually performed without threading a result value through every call.
package stats

import "sync/atomic"

// Counters tallies similarity evaluations and search-control events across
// the searches and maintain calls it is passed to. Safe for concurrent use.
type Counters struct {
	searchSimilarities            atomic.Int64
	searchRestarts                atomic.Int64
	searchCrossPartitionRestarts  atomic.Int64
	addSimilarities                atomic.Int64
	removeSimilarities              atomic.Int64
}

// New returns a zeroed Counters.
func New() *Counters { return &Counters{} }

func (c *Counters) AddSearchSimilarity(n int64)           { c.searchSimilarities.Add(n) }
func (c *Counters) AddSearchRestart()                      { c.searchRestarts.Add(1) }
func (c *Counters) AddSearchCrossPartitionRestart()        { c.searchCrossPartitionRestarts.Add(1) }
func (c *Counters) AddAddSimilarity(n int64)               { c.addSimilarities.Add(n) }
func (c *Counters) AddRemoveSimilarity(n int64)            { c.removeSimilarities.Add(n) }

// Snapshot is a point-in-time, non-atomic read of every counter.
type Snapshot struct {
	SearchSimilarities           int64
	SearchRestarts               int64
	SearchCrossPartitionRestarts int64
	AddSimilarities              int64
	RemoveSimilarities           int64
}

// Snapshot reads every counter's current value.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		SearchSimilarities:           c.searchSimilarities.Load(),
		SearchRestarts:               c.searchRestarts.Load(),
		SearchCrossPartitionRestarts: c.searchCrossPartitionRestarts.Load(),
		AddSimilarities:              c.addSimilarities.Load(),
		RemoveSimilarities:           c.removeSimilarities.Load(),
	}
}
