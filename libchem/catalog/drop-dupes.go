package catalog

import (
	"bytes"
	"hash/maphash"

	"github.com/2x3systems/chem2x3/libchem"
)

const DefaultPoolSz = 32 * 1024

type DropDupeOpts struct {
	PoolSz int // 0 denotes DefaultPoolSz (32k)
}

// dropDupes is an in-memory FormulaAdder that remembers the binary encoding of every formula it has accepted.
type dropDupes struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	opts      DropDupeOpts
}

func NewDropDupes(opts DropDupeOpts) FormulaAdder {
	if opts.PoolSz <= 0 {
		opts.PoolSz = DefaultPoolSz
	}
	return &dropDupes{
		hashMap: make(map[uint64][]byte),
		opts:    opts,
	}
}

func (dd *dropDupes) TryAdd(c libchem.Counter) bool {
	var keyBuf [128]byte
	key := c.AppendBinary(keyBuf[:0])

	dd.hasher.Reset()
	dd.hasher.Write(key)
	hash := dd.hasher.Sum64()

	existing, found := dd.hashMap[hash]
	for found {
		if bytes.Equal(existing, key) {
			return false
		}
		hash++
		existing, found = dd.hashMap[hash]
	}

	// New entry: copy the key into the pool, starting a new pool when this one is full
	pos := dd.bufPoolSz
	itemLen := len(key)
	if pos+itemLen > cap(dd.bufPool) {
		dd.bufPool = make([]byte, max(dd.opts.PoolSz, itemLen))
		dd.bufPoolSz = 0
		pos = 0
	}

	dd.hashMap[hash] = append(dd.bufPool[pos:pos], key...)
	dd.bufPoolSz += itemLen
	return true
}
