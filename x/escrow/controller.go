package escrow

import (
	"bytes"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
	"github.com/iov-one/bountyd/x"
	"github.com/iov-one/bountyd/x/lock"
)

// Controller is the functionality of this package used by other
// extensions.
type Controller interface {
	// Create places the asset in a new escrow. The caller must be the
	// sender. The identifier of the new escrow is returned.
	Create(ctx bountyd.Context, db bountyd.KVStore, sender bountyd.Address, asset lock.Asset, exchangeKey []byte, recipient bountyd.Address) ([]byte, error)
	// Swap resolves the escrow by exchanging the content of the
	// container, delivered to the sender, for the escrowed asset loaded
	// into dest. The caller must be the recipient.
	Swap(ctx bountyd.Context, db bountyd.KVStore, escrowID, keyID, containerID []byte, dest lock.Asset) error
	// SwapPayload works like Swap but returns the escrowed payload
	// without decoding it.
	SwapPayload(ctx bountyd.Context, db bountyd.KVStore, escrowID, keyID, containerID []byte) (*lock.Payload, error)
	// ReturnToSender resolves the escrow by loading the asset into dest.
	// The caller must be the sender.
	ReturnToSender(ctx bountyd.Context, db bountyd.KVStore, escrowID []byte, dest lock.Asset) error
	// ReturnPayload works like ReturnToSender but returns the escrowed
	// payload without decoding it.
	ReturnPayload(ctx bountyd.Context, db bountyd.KVStore, escrowID []byte) (*lock.Payload, error)
	// Escrow returns the unresolved escrow with given id.
	Escrow(db bountyd.ReadOnlyKVStore, escrowID []byte) (*Escrow, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth    x.Authenticator
	locks   lock.Controller
	deliver lock.Deliverer
	bucket  *orm.ModelBucket
	seq     orm.Sequence
}

var _ Controller = (*BaseController)(nil)

// Option configures a BaseController.
type Option func(*BaseController)

// WithBucket keeps the escrows of the controller in a bucket of given
// name, out of reach of controllers using the default one.
func WithBucket(name string) Option {
	return func(c *BaseController) {
		c.bucket = newBucket(name)
	}
}

// NewController returns a controller opening containers with locks and
// handing their content over to the sender with deliver.
func NewController(auth x.Authenticator, locks lock.Controller, deliver lock.Deliverer, opts ...Option) *BaseController {
	c := &BaseController{
		auth:    auth,
		locks:   locks,
		deliver: deliver,
		bucket:  NewBucket(),
		seq:     orm.NewSequence("escrow", "id"),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

func (c *BaseController) Create(ctx bountyd.Context, db bountyd.KVStore, sender bountyd.Address, asset lock.Asset, exchangeKey []byte, recipient bountyd.Address) ([]byte, error) {
	if !c.auth.HasAddress(ctx, sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender")
	}
	if err := recipient.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if !c.locks.HasKey(db, exchangeKey) {
		return nil, errors.Wrapf(errors.ErrNotFound, "exchange key %X", exchangeKey)
	}
	id, err := c.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "escrow id")
	}
	payload, err := lock.NewPayload(id, asset)
	if err != nil {
		return nil, err
	}
	e := &Escrow{
		Sender:      sender,
		Recipient:   recipient,
		ExchangeKey: exchangeKey,
		Payload:     payload,
	}
	if err := c.bucket.Put(db, id, e); err != nil {
		return nil, errors.Wrap(err, "save escrow")
	}
	bountyd.Emit(ctx, "escrow/created",
		"escrow_id", id,
		"sender", sender,
		"recipient", recipient,
		"item_id", payload.ItemID,
		"key_id", exchangeKey)
	return id, nil
}

func (c *BaseController) Swap(ctx bountyd.Context, db bountyd.KVStore, escrowID, keyID, containerID []byte, dest lock.Asset) error {
	_, err := c.swap(ctx, db, escrowID, keyID, containerID, dest)
	return err
}

func (c *BaseController) SwapPayload(ctx bountyd.Context, db bountyd.KVStore, escrowID, keyID, containerID []byte) (*lock.Payload, error) {
	return c.swap(ctx, db, escrowID, keyID, containerID, nil)
}

func (c *BaseController) swap(ctx bountyd.Context, db bountyd.KVStore, escrowID, keyID, containerID []byte, dest lock.Asset) (*lock.Payload, error) {
	e, err := c.Escrow(db, escrowID)
	if err != nil {
		return nil, err
	}
	if !c.auth.HasAddress(ctx, e.Recipient) {
		return nil, errors.Wrapf(ErrRecipientMismatch, "escrow %X", escrowID)
	}
	if !bytes.Equal(e.ExchangeKey, keyID) {
		return nil, errors.Wrapf(ErrExchangeKeyMismatch, "escrow %X", escrowID)
	}
	if dest != nil && dest.AssetType() != e.Payload.Type {
		return nil, errors.Wrapf(errors.ErrInvalidType, "escrow holds %q", e.Payload.Type)
	}

	revealed, err := c.locks.OpenPayload(ctx, db, containerID, keyID)
	if err != nil {
		return nil, errors.Wrap(err, "open container")
	}
	if err := c.deliver.DeliverPayload(ctx, db, e.Sender, *revealed); err != nil {
		return nil, errors.Wrap(err, "deliver to sender")
	}
	if err := c.release(db, escrowID, e, dest); err != nil {
		return nil, err
	}
	bountyd.Emit(ctx, "escrow/swapped",
		"escrow_id", escrowID,
		"sender", e.Sender,
		"recipient", e.Recipient,
		"item_id", e.Payload.ItemID,
		"received_item_id", revealed.ItemID)
	return &e.Payload, nil
}

func (c *BaseController) ReturnToSender(ctx bountyd.Context, db bountyd.KVStore, escrowID []byte, dest lock.Asset) error {
	_, err := c.returnToSender(ctx, db, escrowID, dest)
	return err
}

func (c *BaseController) ReturnPayload(ctx bountyd.Context, db bountyd.KVStore, escrowID []byte) (*lock.Payload, error) {
	return c.returnToSender(ctx, db, escrowID, nil)
}

func (c *BaseController) returnToSender(ctx bountyd.Context, db bountyd.KVStore, escrowID []byte, dest lock.Asset) (*lock.Payload, error) {
	e, err := c.Escrow(db, escrowID)
	if err != nil {
		return nil, err
	}
	if !c.auth.HasAddress(ctx, e.Sender) {
		return nil, errors.Wrapf(ErrNotSender, "escrow %X", escrowID)
	}
	if dest != nil && dest.AssetType() != e.Payload.Type {
		return nil, errors.Wrapf(errors.ErrInvalidType, "escrow holds %q", e.Payload.Type)
	}
	if err := c.release(db, escrowID, e, dest); err != nil {
		return nil, err
	}
	bountyd.Emit(ctx, "escrow/returned",
		"escrow_id", escrowID,
		"sender", e.Sender,
		"item_id", e.Payload.ItemID)
	return &e.Payload, nil
}

// release deletes the escrow and loads its asset into dest, if given.
func (c *BaseController) release(db bountyd.KVStore, escrowID []byte, e *Escrow, dest lock.Asset) error {
	if err := c.bucket.Delete(db, escrowID); err != nil {
		return errors.Wrap(err, "delete escrow")
	}
	if dest == nil {
		return nil
	}
	return errors.Wrap(e.Payload.Decode(dest), "decode payload")
}

func (c *BaseController) Escrow(db bountyd.ReadOnlyKVStore, escrowID []byte) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, escrowID, &e); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &e, nil
}
