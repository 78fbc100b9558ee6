package store

import (
	"bytes"

	"github.com/google/btree"
)

// degree of the btree used by every cache wrap
const degree = 2

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{})
}

// BTreeCacheWrap places a btree cache over a KVStore. All writes are kept in
// the btree until Write is called, when they are applied to the parent
// store. Reads see the cached writes layered over the parent.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back KVStore
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store.
func NewBTreeCacheWrap(kv KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.New(degree),
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write syncs with the underlying store.
// And then cleans up
func (b *BTreeCacheWrap) Write() {
	b.bt.Ascend(func(i btree.Item) bool {
		switch item := i.(type) {
		case setItem:
			b.back.Set(item.key, item.value)
		case deletedItem:
			b.back.Delete(item.key)
		}
		return true
	})
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data
func (b *BTreeCacheWrap) Discard() {
	b.bt = btree.New(degree)
}

// Set writes to the BTree
func (b *BTreeCacheWrap) Set(key, value []byte) {
	assertKey(key)
	b.bt.ReplaceOrInsert(newSetItem(key, value))
}

// Delete marks the key as deleted in the BTree
func (b *BTreeCacheWrap) Delete(key []byte) {
	assertKey(key)
	b.bt.ReplaceOrInsert(newDeletedItem(key))
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) []byte {
	assertKey(key)
	switch item := b.bt.Get(bkey{key}).(type) {
	case setItem:
		return item.value
	case deletedItem:
		return nil
	default:
		return b.back.Get(key)
	}
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) bool {
	assertKey(key)
	switch b.bt.Get(bkey{key}).(type) {
	case setItem:
		return true
	case deletedItem:
		return false
	default:
		return b.back.Has(key)
	}
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	return NewSliceIterator(b.merge(start, end))
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	res := b.merge(start, end)
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return NewSliceIterator(res)
}

// merge returns all models in [start, end) in ascending order, with the
// cached writes overriding the parent content.
func (b *BTreeCacheWrap) merge(start, end []byte) []Model {
	parent := ReadAll(b.back.Iterator(start, end))
	var cached []btree.Item
	collect := func(i btree.Item) bool {
		cached = append(cached, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(collect)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, collect)
	}

	res := make([]Model, 0, len(parent)+len(cached))
	var p, c int
	for p < len(parent) || c < len(cached) {
		if c == len(cached) {
			res = append(res, parent[p])
			p++
			continue
		}
		key := cached[c].(keyer).Key()
		if p < len(parent) {
			cmp := bytes.Compare(parent[p].Key, key)
			if cmp < 0 {
				res = append(res, parent[p])
				p++
				continue
			}
			if cmp == 0 {
				// Cached value overrides the parent.
				p++
			}
		}
		if item, ok := cached[c].(setItem); ok {
			res = append(res, Model{Key: item.key, Value: item.value})
		}
		c++
	}
	return res
}

func assertKey(key []byte) {
	if key == nil {
		panic("nil key")
	}
}

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
