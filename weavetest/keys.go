package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/crypto"
)

// NewKey returns a freshly generated private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

var condCounter uint64

// NewCondition returns a unique condition. Each call returns a value never
// returned before.
func NewCondition() bountyd.Condition {
	n := atomic.AddUint64(&condCounter, 1)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return bountyd.NewCondition("test", "mock", raw)
}

// SequenceID returns the binary representation of the n-th value of an orm
// sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
