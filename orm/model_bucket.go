package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	bountyd.Persistent
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes []*Index
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(*ModelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(b *ModelBucket) {
		for _, idx := range b.indexes {
			if idx.name == name {
				panic("duplicated index name: " + name)
			}
		}
		b.indexes = append(b.indexes, newIndex(b.name, name, indexer, unique))
	}
}

// NewModelBucket returns a bucket for storing models of the same type as
// given example. Bucket name must be unique in the whole application.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) *ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(example)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	b := &ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  tp.Elem(),
	}
	for _, fn := range opts {
		fn(b)
	}
	return b
}

// Name returns the bucket name.
func (b *ModelBucket) Name() string {
	return b.name
}

// DBKey returns the store key used for given primary key.
func (b *ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One query the database for a single model instance. Lookup is done
// by the primary index key. Result is loaded into given destination
// model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
// If given model type cannot be used to contain stored entity, ErrInvalidType
// is returned.
func (b *ModelBucket) One(db bountyd.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.assertType(dest); err != nil {
		return err
	}
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", b.name)
	}
	return nil
}

// Has returns true if an entity with given primary key exists.
func (b *ModelBucket) Has(db bountyd.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Put saves given model in the database. All indexes are updated.
func (b *ModelBucket) Put(db bountyd.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := b.assertType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	old, err := b.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, old, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %s", b.name)
	}
	if len(raw) == 0 {
		return errors.Wrapf(errors.ErrHuman, "%s serialized to an empty value", b.name)
	}
	db.Set(b.DBKey(key), raw)
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b *ModelBucket) Delete(db bountyd.KVStore, key []byte) error {
	old, err := b.load(db, key)
	if err != nil {
		return err
	}
	if old == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, key, old, nil); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	db.Delete(b.DBKey(key))
	return nil
}

// ByIndex returns the primary keys of all entities referenced by given
// index value, in ascending order.
func (b *ModelBucket) ByIndex(db bountyd.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	for _, idx := range b.indexes {
		if idx.name == indexName {
			return idx.keys(db, value), nil
		}
	}
	return nil, errors.Wrapf(errors.ErrHuman, "%s has no index %q", b.name, indexName)
}

// Keys returns all primary keys stored in the bucket, in ascending order.
func (b *ModelBucket) Keys(db bountyd.ReadOnlyKVStore) [][]byte {
	var keys [][]byte
	for _, m := range store.ReadAll(db.Iterator(b.prefix, store.PrefixEnd(b.prefix))) {
		keys = append(keys, m.Key[len(b.prefix):])
	}
	return keys
}

// load returns the currently stored model or nil.
func (b *ModelBucket) load(db bountyd.ReadOnlyKVStore, key []byte) (Model, error) {
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return nil, nil
	}
	m := reflect.New(b.model).Interface().(Model)
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %s", b.name)
	}
	return m, nil
}

func (b *ModelBucket) assertType(m Model) error {
	if tp := reflect.TypeOf(m); tp.Kind() != reflect.Ptr || tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be stored in %s", m, b.name)
	}
	return nil
}
