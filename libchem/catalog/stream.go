package catalog

import (
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/plan-systems/klog"
)

// FormulaAdder is implemented by *Catalog, FormulaSet and the DropDupes filter.
type FormulaAdder interface {
	TryAdd(c libchem.Counter) bool
}

// FormulaStream is a stage in a pipeline of formulas; a stage closes its Outlet when its input is exhausted.
type FormulaStream struct {
	Outlet chan libchem.Counter
	err    error
}

func newFormulaStream() *FormulaStream {
	return &FormulaStream{
		Outlet: make(chan libchem.Counter, 1),
	}
}

// StreamFormulas returns a stream that emits the given counters in order.
func StreamFormulas(counters ...libchem.Counter) *FormulaStream {
	next := newFormulaStream()

	go func() {
		for _, c := range counters {
			next.Outlet <- c
		}
		next.Close()
	}()

	return next
}

// SelectFromCatalog streams every formula in cat matching sel.
func SelectFromCatalog(cat *Catalog, sel Selector) *FormulaStream {
	next := newFormulaStream()

	go func() {
		if err := cat.Select(sel, next.Outlet); err != nil {
			klog.Errorf("catalog select: %v", err)
			next.err = err
		}
		next.Close()
	}()

	return next
}

func (stream *FormulaStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Err returns the error that ended this stage early, if any.  Only valid once Outlet is drained.
func (stream *FormulaStream) Err() error {
	return stream.err
}

// AddTo offers each formula to target and passes on only those target reports as added.
func (stream *FormulaStream) AddTo(target FormulaAdder) *FormulaStream {
	next := newFormulaStream()

	go func() {
		for c := range stream.Outlet {
			if target.TryAdd(c) {
				next.Outlet <- c
			}
		}
		next.Close()
	}()

	return next
}

// DropDupes passes on each distinct formula once.
func (stream *FormulaStream) DropDupes() *FormulaStream {
	return stream.AddTo(NewDropDupes(DropDupeOpts{}))
}

// Filter passes on only the formulas accepted by keep.
func (stream *FormulaStream) Filter(keep func(c libchem.Counter) bool) *FormulaStream {
	next := newFormulaStream()

	go func() {
		for c := range stream.Outlet {
			if keep(c) {
				next.Outlet <- c
			}
		}
		next.Close()
	}()

	return next
}

// PullAll drains the stream and returns how many formulas it emitted.
func (stream *FormulaStream) PullAll() int {
	count := 0
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains the stream into a slice.
func (stream *FormulaStream) Collect() []libchem.Counter {
	var out []libchem.Counter
	for c := range stream.Outlet {
		out = append(out, c)
	}
	return out
}
