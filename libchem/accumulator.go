package libchem

import (
	"github.com/2x3systems/chem2x3/chem"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Accumulator builds a Counter from (species, count) pairs in any order.
//
// Repeated species accumulate with saturating addition.  Pairs with a zero count are ignored.
type Accumulator struct {
	table chem.SpeciesTable
	tree  redblacktree.Tree
}

func speciesComparator(A, B interface{}) int {
	return A.(chem.Species).Compare(B.(chem.Species))
}

// NewAccumulator returns an empty Accumulator whose counters render against the given table (nil
// selects the standard table).
func NewAccumulator(table chem.SpeciesTable) *Accumulator {
	return &Accumulator{
		table: table,
		tree: redblacktree.Tree{
			Comparator: speciesComparator,
		},
	}
}

// Add accumulates count atoms of the given species.
func (acc *Accumulator) Add(sp chem.Species, count uint64) {
	if count == 0 {
		return
	}
	if prev, found := acc.tree.Get(sp); found {
		count = SaturatingAdd(prev.(uint64), count)
	}
	acc.tree.Put(sp, count)
}

// Merge accumulates all the entries of c.
func (acc *Accumulator) Merge(c Counter) {
	for _, e := range c.entries {
		acc.Add(e.Species, e.Count)
	}
}

// Len returns the number of distinct species accumulated so far.
func (acc *Accumulator) Len() int {
	return acc.tree.Size()
}

// Counter returns the accumulated counter.  The accumulator remains usable.
func (acc *Accumulator) Counter() Counter {
	c := Counter{
		table: acc.table,
	}
	if acc.tree.Size() == 0 {
		return c
	}
	c.entries = make([]Entry, 0, acc.tree.Size())
	itr := acc.tree.Iterator()
	for itr.Next() {
		c.entries = append(c.entries, Entry{
			Species: itr.Key().(chem.Species),
			Count:   itr.Value().(uint64),
		})
	}
	return c
}

// Reset empties this accumulator.
func (acc *Accumulator) Reset() {
	acc.tree.Clear()
}
