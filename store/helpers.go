package store

// EmptyKVStore is a store that holds nothing. Writes are dropped. It is the
// bottom layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil
func (EmptyKVStore) Get(key []byte) []byte { return nil }

// Has always returns false
func (EmptyKVStore) Has(key []byte) bool { return false }

// Set is a noop
func (EmptyKVStore) Set(key, value []byte) {}

// Delete is a noop
func (EmptyKVStore) Delete(key []byte) {}

// Iterator is always empty
func (EmptyKVStore) Iterator(start, end []byte) Iterator {
	return NewSliceIterator(nil)
}

// ReverseIterator is always empty
func (EmptyKVStore) ReverseIterator(start, end []byte) Iterator {
	return NewSliceIterator(nil)
}

// PrefixEnd returns the first key that is greater than every key starting
// with given prefix. It returns nil when no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
