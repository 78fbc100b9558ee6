/*
Package iavl provides a persistent CommitKVStore backed by a versioned
merkle tree. Every Commit produces a new version and its root hash, which
identifies the ledger state.
*/
package iavl

import (
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing in given directory.
// The latest committed version is loaded.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return NewCommitStoreFromDB(db)
}

// NewCommitStoreFromDB creates a store on top of given database. It is
// useful with an in-memory database in tests.
func NewCommitStoreFromDB(db dbm.DB) (*CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return &CommitStore{db: db, tree: tree}, nil
}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (s *CommitStore) Get(key []byte) []byte {
	_, val := s.tree.Get(key)
	return val
}

// Has checks if a key exists. Panics on nil key.
func (s *CommitStore) Has(key []byte) bool {
	return s.tree.Has(key)
}

// Set adds a new value to the working tree.
func (s *CommitStore) Set(key, value []byte) {
	s.tree.Set(key, value)
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) {
	s.tree.Remove(key)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) store.Iterator {
	return store.NewSliceIterator(s.collect(start, end, true))
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) store.Iterator {
	return store.NewSliceIterator(s.collect(start, end, false))
}

func (s *CommitStore) collect(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return res
}

// CacheWrap gives us a savepoint to perform actions. Writing the cache
// applies the changes to the working tree. They are persisted by Commit.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s)
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Close releases the underlying database. The store must not be used
// afterwards.
func (s *CommitStore) Close() {
	s.db.Close()
}
