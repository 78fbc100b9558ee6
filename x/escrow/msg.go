package escrow

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

// CreateCoinsMsg places coins of the signer in a new escrow.
type CreateCoinsMsg struct {
	Recipient   bountyd.Address
	ExchangeKey []byte
	Amount      coin.Coin
}

var _ bountyd.Msg = (*CreateCoinsMsg)(nil)

func (CreateCoinsMsg) Path() string { return "escrow/create_coins" }

func (m *CreateCoinsMsg) Validate() error {
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if len(m.ExchangeKey) == 0 {
		return errors.Wrap(errors.ErrEmpty, "exchange key")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", m.Amount)
	}
	return m.Amount.Validate()
}

func (m *CreateCoinsMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *CreateCoinsMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// SwapMsg resolves an escrow by presenting the exchange key and the
// container it opens.
type SwapMsg struct {
	EscrowID    []byte
	KeyID       []byte
	ContainerID []byte
}

var _ bountyd.Msg = (*SwapMsg)(nil)

func (SwapMsg) Path() string { return "escrow/swap" }

func (m *SwapMsg) Validate() error {
	if len(m.EscrowID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	if len(m.KeyID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key id")
	}
	if len(m.ContainerID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "container id")
	}
	return nil
}

func (m *SwapMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SwapMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// ReturnMsg returns the escrowed asset to the sender.
type ReturnMsg struct {
	EscrowID []byte
}

var _ bountyd.Msg = (*ReturnMsg)(nil)

func (ReturnMsg) Path() string { return "escrow/return" }

func (m *ReturnMsg) Validate() error {
	if len(m.EscrowID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	return nil
}

func (m *ReturnMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *ReturnMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }
