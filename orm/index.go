package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
)

// Indexer calculates the secondary index values for given model. A model
// may produce any number of values, including none.
type Indexer func(Model) ([][]byte, error)

// Index maintains a mapping from an index value to the primary keys of the
// models that produce it. Each reference is stored as a separate entry:
//
//   _i.<bucket>_<index>:<len(value)><value><primary key>
type Index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

// marker is the stored value of every index entry. Stores do not accept nil
// values.
var marker = []byte{1}

func newIndex(bucket, name string, indexer Indexer, unique bool) *Index {
	return &Index{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i *Index) valuePrefix(value []byte) []byte {
	res := make([]byte, 0, len(i.prefix)+2+len(value))
	res = append(res, i.prefix...)
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(value)))
	res = append(res, l[:]...)
	return append(res, value...)
}

func (i *Index) keys(db bountyd.ReadOnlyKVStore, value []byte) [][]byte {
	pre := i.valuePrefix(value)
	var keys [][]byte
	for _, m := range store.ReadAll(db.Iterator(pre, store.PrefixEnd(pre))) {
		keys = append(keys, m.Key[len(pre):])
	}
	return keys
}

// update replaces index entries of the previous model state with those of
// the next one. Either state can be nil.
func (i *Index) update(db bountyd.KVStore, key []byte, prev, next Model) error {
	var oldValues, newValues [][]byte
	var err error
	if prev != nil {
		if oldValues, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if newValues, err = i.indexer(next); err != nil {
			return err
		}
	}

	for _, v := range oldValues {
		if !contains(newValues, v) {
			db.Delete(append(i.valuePrefix(v), key...))
		}
	}
	for _, v := range newValues {
		if contains(oldValues, v) {
			continue
		}
		if i.unique {
			for _, other := range i.keys(db, v) {
				if !bytes.Equal(other, key) {
					return errors.Wrapf(errors.ErrDuplicate, "value %X already indexed", v)
				}
			}
		}
		db.Set(append(i.valuePrefix(v), key...), marker)
	}
	return nil
}

func contains(values [][]byte, v []byte) bool {
	for _, x := range values {
		if bytes.Equal(x, v) {
			return true
		}
	}
	return false
}
