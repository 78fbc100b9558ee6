package escrow

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
	"github.com/iov-one/bountyd/x/lock"
)

// Escrow custodies one asset until it is swapped or returned.
type Escrow struct {
	Sender      bountyd.Address
	Recipient   bountyd.Address
	ExchangeKey []byte
	Payload     lock.Payload
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error)   { return codec.Marshal(e) }
func (e *Escrow) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, e) }

func (e *Escrow) Validate() error {
	if err := e.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := e.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if len(e.ExchangeKey) == 0 {
		return errors.Wrap(errors.ErrEmpty, "exchange key")
	}
	return errors.Wrap(e.Payload.Validate(), "payload")
}

func senderIndexer(obj orm.Model) ([][]byte, error) {
	e, ok := obj.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
	return [][]byte{e.Sender}, nil
}

func recipientIndexer(obj orm.Model) ([][]byte, error) {
	e, ok := obj.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
	return [][]byte{e.Recipient}, nil
}

// NewBucket returns the bucket of all unresolved escrows.
func NewBucket() *orm.ModelBucket {
	return newBucket("escrow")
}

func newBucket(name string) *orm.ModelBucket {
	return orm.NewModelBucket(name, &Escrow{},
		orm.WithIndex("sender", senderIndexer, false),
		orm.WithIndex("recipient", recipientIndexer, false),
	)
}
