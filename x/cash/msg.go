package cash

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins from the signer owned source to the destination.
type SendMsg struct {
	Source      bountyd.Address
	Destination bountyd.Address
	Amount      coin.Coin
	Memo        string
}

var _ bountyd.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", m.Amount)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}

func (m *SendMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SendMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
