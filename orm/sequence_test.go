package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("bounty", "id")

	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	first, err := s.NextVal(db)
	assert.Nil(t, err)
	second, err := s.NextVal(db)
	assert.Nil(t, err)
	if bytes.Compare(first, second) >= 0 {
		t.Fatalf("sequence must grow: %X >= %X", first, second)
	}

	n, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), n)

	latest, _ = s.Latest(db)
	assert.Equal(t, int64(3), latest)

	// Other sequences are independent.
	o := NewSequence("bounty", "other")
	n, _ = o.NextInt(db)
	assert.Equal(t, int64(1), n)
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(EncodeSequence(513))
	assert.Nil(t, err)
	assert.Equal(t, int64(513), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
