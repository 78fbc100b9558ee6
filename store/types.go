//nolint
package store

import "github.com/iov-one/bountyd"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = bountyd.ReadOnlyKVStore
type SetDeleter = bountyd.SetDeleter
type KVStore = bountyd.KVStore
type Iterator = bountyd.Iterator
type CacheableKVStore = bountyd.CacheableKVStore
type KVCacheWrap = bountyd.KVCacheWrap
type CommitKVStore = bountyd.CommitKVStore
type CommitID = bountyd.CommitID

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
