package sigs

import (
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
)

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the signer by given value. It
// invalidates all transactions signed with sequences that were skipped.
type BumpSequenceMsg struct {
	Increment uint32
}

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrInput, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrInput, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error)   { return codec.Marshal(msg) }
func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, msg) }
