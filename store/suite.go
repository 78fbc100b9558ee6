package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreConstructor returns a fresh store to exercise in the suite
type TestStoreConstructor func() CacheableKVStore

// TestSuite checks the behaviour every CacheableKVStore implementation must
// provide. Backends run it from their own tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// NewTestSuite returns a suite running against stores created with given
// constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that writes are visible in the store and its cache wraps.
func (s *TestSuite) GetSet(t *testing.T) {
	base := s.makeBase()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	base.Set(k, v)
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	cache.Set(k2, v2)
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	cache.Write()
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	c2.Set(k3, v3)
	c2.Delete(k)
	s.AssertGetHas(t, c2, k3, v3, true)
	s.AssertGetHas(t, c2, k, nil, false)
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)
	s.AssertGetHas(t, base, k, v, true)

	// and a delete can be written down
	c3 := base.CacheWrap()
	c3.Delete(k)
	c3.Write()
	s.AssertGetHas(t, base, k, nil, false)
}

// NestedCaches checks that stacked cache wraps only reach the base when
// every layer is written.
func (s *TestSuite) NestedCaches(t *testing.T) {
	base := s.makeBase()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	k, v := []byte("nested"), []byte("value")
	inner.Set(k, v)
	s.AssertGetHas(t, outer, k, nil, false)

	inner.Write()
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	outer.Write()
	s.AssertGetHas(t, base, k, v, true)
}

// Iterators checks range iteration over merged cache and base data, in both
// directions.
func (s *TestSuite) Iterators(t *testing.T) {
	base := s.makeBase()
	for i := 0; i < 10; i++ {
		base.Set([]byte(fmt.Sprintf("key-%d", i)), []byte(fmt.Sprintf("base-%d", i)))
	}
	cache := base.CacheWrap()
	cache.Set([]byte("key-3"), []byte("cache-3"))
	cache.Delete([]byte("key-5"))
	cache.Set([]byte("key-55"), []byte("cache-55"))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		wantKeys   []string
		wantValue  map[string]string
	}{
		"bounded ascending": {
			start:    []byte("key-2"),
			end:      []byte("key-7"),
			wantKeys: []string{"key-2", "key-3", "key-4", "key-55", "key-6"},
			wantValue: map[string]string{
				"key-3":  "cache-3",
				"key-55": "cache-55",
				"key-4":  "base-4",
			},
		},
		"bounded descending": {
			start:    []byte("key-2"),
			end:      []byte("key-7"),
			reverse:  true,
			wantKeys: []string{"key-6", "key-55", "key-4", "key-3", "key-2"},
		},
		"open start": {
			end:      []byte("key-2"),
			wantKeys: []string{"key-0", "key-1"},
		},
		"open end": {
			start:    []byte("key-8"),
			wantKeys: []string{"key-8", "key-9"},
		},
		"prefix range": {
			start:    []byte("key-5"),
			end:      PrefixEnd([]byte("key-5")),
			wantKeys: []string{"key-55"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var it Iterator
			if tc.reverse {
				it = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it = cache.Iterator(tc.start, tc.end)
			}
			models := ReadAll(it)
			keys := make([]string, len(models))
			for i, m := range models {
				keys[i] = string(m.Key)
				if want, ok := tc.wantValue[keys[i]]; ok {
					assert.Equal(t, want, string(m.Value))
				}
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

// AssertGetHas checks the value and presence of a key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got := kv.Get(key)
	require.Equal(t, val, got)
	require.Equal(t, has, kv.Has(key))
}
