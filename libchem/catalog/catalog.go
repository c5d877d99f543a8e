package catalog

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"sync"

	"github.com/2x3systems/chem2x3/chem"
	"github.com/2x3systems/chem2x3/libchem"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState {1: MajorVers, 2: MinorVers, 3: NumFormulas}

	kFormulaPrefix, NumCarbons (uint64 BE), Counter.Key()   => nil (UserMeta carries kUnsaturated)
	...

Keys sort by carbon count first, so Select can seek straight to its lower carbon bound and stop
as soon as it passes the upper bound.  Within a carbon count, formulas sort by their binary encoding.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kFormulaPrefix byte = 0x01
	kUnsaturated   byte = 0x01

	kMajorVers = 2026
	kMinorVers = 1

	fieldStateMajor       = 1
	fieldStateMinor       = 2
	fieldStateNumFormulas = 3
)

// Opts specifies how to open a Catalog.
type Opts struct {
	DbPathName string            // empty for an in-memory catalog
	ReadOnly   bool              // requires DbPathName
	Table      chem.SpeciesTable // decodes stored formulas; nil means elements.Standard
}

// Selector filters the formulas streamed by Catalog.Select.
type Selector struct {
	MinCarbons uint64
	MaxCarbons uint64           // 0 means no upper bound
	Saturation *chem.Saturation // if set, only formulas with this saturation are selected
}

// DefaultSelector selects every formula in a catalog.
var DefaultSelector = Selector{}

type catalogState struct {
	MajorVers   uint64
	MinorVers   uint64
	NumFormulas uint64
}

func (st *catalogState) Marshal() []byte {
	buf := libchem.AppendVarintField(nil, fieldStateMajor, st.MajorVers)
	buf = libchem.AppendVarintField(buf, fieldStateMinor, st.MinorVers)
	buf = libchem.AppendVarintField(buf, fieldStateNumFormulas, st.NumFormulas)
	return buf
}

func (st *catalogState) Unmarshal(buf []byte) error {
	*st = catalogState{}
	r := libchem.NewWireReader(buf)
	for r.More() {
		field, wireType, err := r.Next()
		if err != nil {
			return err
		}
		if wireType != proto.WireVarint {
			if err = r.Skip(wireType); err != nil {
				return err
			}
			continue
		}
		x, err := r.Varint()
		if err != nil {
			return err
		}
		switch field {
		case fieldStateMajor:
			st.MajorVers = x
		case fieldStateMinor:
			st.MinorVers = x
		case fieldStateNumFormulas:
			st.NumFormulas = x
		}
	}
	return nil
}

// Catalog is a db wrapper for a persistent set of canonical formulas.
type Catalog struct {
	dbMu       sync.RWMutex // write-held by Close, read-held while db is in use
	mu         sync.Mutex   // guards state and serializes adds
	readOnly   bool
	stateDirty bool
	state      catalogState
	table      chem.SpeciesTable
	db         *badger.DB
}

// Open opens (or creates) the catalog described by opts.
func Open(opts Opts) (*Catalog, error) {
	cat := &Catalog{
		readOnly: opts.ReadOnly,
		table:    opts.Table,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // TryAdd is serialized by mu
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(chem.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog %q", opts.DbPathName)
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.state = catalogState{
			MajorVers: kMajorVers,
			MinorVers: kMinorVers,
		}
		cat.stateDirty = !cat.readOnly
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(chem.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened catalog %q (%d formulas, readonly=%v)", opts.DbPathName, cat.state.NumFormulas, cat.readOnly)
	return cat, nil
}

func (cat *Catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *Catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err != nil {
		return errors.Wrap(err, "flushing catalog state")
	}
	cat.stateDirty = false
	return nil
}

// Close flushes the catalog state and releases the underlying db.
func (cat *Catalog) Close() error {
	cat.dbMu.Lock()
	defer cat.dbMu.Unlock()
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	klog.V(2).Infof("closed catalog (%d formulas)", cat.state.NumFormulas)
	return err
}

func (cat *Catalog) IsReadOnly() bool {
	return cat.readOnly
}

// NumFormulas returns the number of distinct formulas in this catalog.
func (cat *Catalog) NumFormulas() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumFormulas)
}

func formFormulaKey(key []byte, c libchem.Counter) []byte {
	key = append(key, kFormulaPrefix)
	key = binary.BigEndian.AppendUint64(key, c.Count(chem.Carbon))
	return c.AppendBinary(key)
}

// Has returns true if c's canonical formula is in this catalog (false once the catalog is closed).
func (cat *Catalog) Has(c libchem.Counter) bool {
	var keyBuf [128]byte
	key := formFormulaKey(keyBuf[:0], c)

	cat.dbMu.RLock()
	defer cat.dbMu.RUnlock()
	if cat.db == nil {
		return false
	}

	err := cat.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	return err == nil
}

// TryAdd adds c's canonical formula if it isn't already present.
//
// If true is returned, c was not present and was added.
// If false is returned, c was already present or could not be added (see Add).
func (cat *Catalog) TryAdd(c libchem.Counter) bool {
	added, err := cat.Add(c)
	if err != nil {
		klog.Warningf("catalog add %v failed: %v", c, err)
	}
	return added
}

// Add is TryAdd that reports why a formula could not be added:
// chem.ErrCatalogReadOnly, chem.ErrCatalogClosed or a db error.
func (cat *Catalog) Add(c libchem.Counter) (bool, error) {
	if cat.readOnly {
		return false, chem.ErrCatalogReadOnly
	}

	var keyBuf [128]byte
	key := formFormulaKey(keyBuf[:0], c)

	meta := byte(0)
	if !c.Saturated() {
		meta |= kUnsaturated
	}

	cat.dbMu.RLock()
	defer cat.dbMu.RUnlock()
	if cat.db == nil {
		return false, chem.ErrCatalogClosed
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.SetEntry(badger.NewEntry(key, nil).WithMeta(meta))
	})
	if err != nil {
		return false, errors.Wrapf(err, "adding %v", c)
	}

	if added {
		cat.state.NumFormulas++
		cat.stateDirty = true
	}
	return added, nil
}

// Select sends every formula matching sel to onHit, in key order.
//
// Select returns when there are no more matches; the caller owns (and closes) onHit.
// Close blocks until a running Select returns.
func (cat *Catalog) Select(sel Selector, onHit chan<- libchem.Counter) error {
	cat.dbMu.RLock()
	defer cat.dbMu.RUnlock()
	if cat.db == nil {
		return chem.ErrCatalogClosed
	}

	maxC := sel.MaxCarbons
	if maxC == 0 {
		maxC = math.MaxUint64
	}

	var keyBuf [16]byte
	minKey := append(keyBuf[:0], kFormulaPrefix)
	minKey = binary.BigEndian.AppendUint64(minKey, sel.MinCarbons)

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: false,
		Prefix:         []byte{kFormulaPrefix},
	})
	defer it.Close()

	for it.Seek(minKey); it.Valid(); it.Next() {
		item := it.Item()
		key := item.Key()

		// Stop when the carbon count is over the max
		if len(key) < 9 || !bytes.HasPrefix(key, []byte{kFormulaPrefix}) {
			return errors.Wrapf(chem.ErrBadEncoding, "unexpected catalog key %x", key)
		}
		if binary.BigEndian.Uint64(key[1:9]) > maxC {
			break
		}

		if sel.Saturation != nil {
			sat := chem.Saturated
			if item.UserMeta()&kUnsaturated != 0 {
				sat = chem.Unsaturated
			}
			if sat != *sel.Saturation {
				continue
			}
		}

		c, err := libchem.DecodeCounter(cat.table, key[9:])
		if err != nil {
			return errors.Wrapf(err, "decoding catalog key %x", key)
		}
		onHit <- c
	}
	return nil
}
