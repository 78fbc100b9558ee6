package lock

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

// SealCoinsMsg moves coins from the signer wallet into a new container
// owned by the signer.
type SealCoinsMsg struct {
	Amount coin.Coin
}

var _ bountyd.Msg = (*SealCoinsMsg)(nil)

func (SealCoinsMsg) Path() string { return "lock/seal_coins" }

func (m *SealCoinsMsg) Validate() error {
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", m.Amount)
	}
	return m.Amount.Validate()
}

func (m *SealCoinsMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SealCoinsMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// OpenMsg opens a container with a key. The released asset is delivered to
// the signer.
type OpenMsg struct {
	ContainerID []byte
	KeyID       []byte
}

var _ bountyd.Msg = (*OpenMsg)(nil)

func (OpenMsg) Path() string { return "lock/open" }

func (m *OpenMsg) Validate() error {
	if len(m.ContainerID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "container id")
	}
	if len(m.KeyID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key id")
	}
	return nil
}

func (m *OpenMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *OpenMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// TransferMsg hands a key or a container over to the recipient.
type TransferMsg struct {
	ObjectID  []byte
	Recipient bountyd.Address
}

var _ bountyd.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return "lock/transfer" }

func (m *TransferMsg) Validate() error {
	if len(m.ObjectID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "object id")
	}
	return errors.Wrap(m.Recipient.Validate(), "recipient")
}

func (m *TransferMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *TransferMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// SealResult is returned as the data of a successful seal.
type SealResult struct {
	ContainerID []byte
	KeyID       []byte
}

func (r *SealResult) Marshal() ([]byte, error)   { return codec.Marshal(r) }
func (r *SealResult) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, r) }
