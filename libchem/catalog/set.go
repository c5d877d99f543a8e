package catalog

import (
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/dgraph-io/badger/v3"
)

// FormulaSet allows adding formulas to an internal set and returning if an equal formula has already been added.
type FormulaSet interface {

	// TryAdd adds the given formula if it is not already present.
	//
	// If an equal formula is already in this set, this call has no effect and TryAdd() returns false.
	// If c isn't in this set, c is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(c libchem.Counter) bool

	// Len returns the number of formulas added since the last Close().
	Len() int

	// Close removes all previously added items from this set.
	Close()
}

func NewFormulaSet() FormulaSet {
	return &formulaSet{}
}

type formulaSet struct {
	lsmSet
	count int
}

func (fs *formulaSet) TryAdd(c libchem.Counter) bool {
	var buf [128]byte
	added := fs.tryAdd(c.AppendBinary(buf[:0]))
	if added {
		fs.count++
	}
	return added
}

func (fs *formulaSet) Len() int {
	return fs.count
}

func (fs *formulaSet) Close() {
	fs.lsmSet.Close()
	fs.count = 0
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}
	if err != nil {
		panic(err)
	}
	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
