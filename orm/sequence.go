package orm

import (
	"encoding/binary"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db bountyd.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s Sequence) NextInt(db bountyd.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state.
func (s Sequence) Latest(db bountyd.ReadOnlyKVStore) (int64, error) {
	raw := db.Get(s.id)
	return DecodeSequence(raw)
}

func (s Sequence) increment(db bountyd.KVStore, inc int64) (int64, []byte, error) {
	val, err := DecodeSequence(db.Get(s.id))
	if err != nil {
		return 0, nil, err
	}
	val += inc
	raw := EncodeSequence(val)
	db.Set(s.id, raw)
	return val, raw, nil
}

// DecodeSequence converts 8 bytes big endian representation into an integer.
// Nil is decoded as zero.
func DecodeSequence(bz []byte) (int64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(bz))
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val), nil
}

// EncodeSequence converts an integer into 8 bytes big endian representation.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
