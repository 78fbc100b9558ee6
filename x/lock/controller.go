package lock

import (
	"bytes"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
	"github.com/iov-one/bountyd/x"
)

// Deliverer hands a released payload over to its new owner.
type Deliverer interface {
	DeliverPayload(ctx bountyd.Context, db bountyd.KVStore, to bountyd.Address, p Payload) error
}

// Controller is the functionality of this package used by other
// extensions.
type Controller interface {
	// Seal places the asset in a new container owned by owner together
	// with the only key that opens it.
	Seal(ctx bountyd.Context, db bountyd.KVStore, owner bountyd.Address, asset Asset) (containerID, keyID []byte, err error)
	// Open releases the asset into dest and destroys both the container
	// and the key. The caller must own both.
	Open(ctx bountyd.Context, db bountyd.KVStore, containerID, keyID []byte, dest Asset) error
	// OpenPayload works like Open but returns the payload without
	// decoding it.
	OpenPayload(ctx bountyd.Context, db bountyd.KVStore, containerID, keyID []byte) (*Payload, error)
	// Transfer hands over a key or a container owned by the caller.
	Transfer(ctx bountyd.Context, db bountyd.KVStore, objectID []byte, to bountyd.Address) error
	// HasKey returns true if a key with given id exists.
	HasKey(db bountyd.ReadOnlyKVStore, keyID []byte) bool
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth       x.Authenticator
	containers *orm.ModelBucket
	keys       *orm.ModelBucket
	seq        orm.Sequence
}

var _ Controller = (*BaseController)(nil)

// Option configures a BaseController.
type Option func(*BaseController)

// WithNamespace keeps the containers and keys of the controller in their
// own buckets. Controllers of different namespaces cannot see each other's
// objects. Identifiers are drawn from one shared sequence.
func WithNamespace(ns string) Option {
	return func(c *BaseController) {
		c.containers = newContainerBucket(ns)
		c.keys = newKeyBucket(ns)
	}
}

// NewController returns a controller that authorizes the possession of
// objects with given authenticator.
func NewController(auth x.Authenticator, opts ...Option) *BaseController {
	c := &BaseController{
		auth:       auth,
		containers: NewContainerBucket(),
		keys:       NewKeyBucket(),
		seq:        orm.NewSequence("lock", "id"),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

func (c *BaseController) Seal(ctx bountyd.Context, db bountyd.KVStore, owner bountyd.Address, asset Asset) ([]byte, []byte, error) {
	if err := owner.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "owner")
	}
	containerID, err := c.seq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "container id")
	}
	keyID, err := c.seq.NextVal(db)
	if err != nil {
		return nil, nil, errors.Wrap(err, "key id")
	}
	payload, err := NewPayload(containerID, asset)
	if err != nil {
		return nil, nil, err
	}

	container := &Container{Owner: owner, RequiredKeyID: keyID, Payload: payload}
	if err := c.containers.Put(db, containerID, container); err != nil {
		return nil, nil, errors.Wrap(err, "save container")
	}
	if err := c.keys.Put(db, keyID, &Key{Owner: owner}); err != nil {
		return nil, nil, errors.Wrap(err, "save key")
	}

	bountyd.Emit(ctx, "lock/sealed",
		"container_id", containerID,
		"key_id", keyID,
		"item_id", payload.ItemID,
		"item_type", payload.Type)
	return containerID, keyID, nil
}

func (c *BaseController) Open(ctx bountyd.Context, db bountyd.KVStore, containerID, keyID []byte, dest Asset) error {
	_, err := c.open(ctx, db, containerID, keyID, dest)
	return err
}

func (c *BaseController) OpenPayload(ctx bountyd.Context, db bountyd.KVStore, containerID, keyID []byte) (*Payload, error) {
	return c.open(ctx, db, containerID, keyID, nil)
}

// open validates the possession of both objects and that the key matches.
// When dest is given, the payload type is checked before anything is
// destroyed.
func (c *BaseController) open(ctx bountyd.Context, db bountyd.KVStore, containerID, keyID []byte, dest Asset) (*Payload, error) {
	var container Container
	if err := c.containers.One(db, containerID, &container); err != nil {
		return nil, errors.Wrap(err, "container")
	}
	var key Key
	if err := c.keys.One(db, keyID, &key); err != nil {
		return nil, errors.Wrap(err, "key")
	}
	if !c.auth.HasAddress(ctx, container.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "container owner")
	}
	if !c.auth.HasAddress(ctx, key.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "key owner")
	}
	if !bytes.Equal(container.RequiredKeyID, keyID) {
		return nil, errors.Wrapf(ErrCredentialMismatch, "container %X requires another key", containerID)
	}
	if dest != nil && dest.AssetType() != container.Payload.Type {
		return nil, errors.Wrapf(errors.ErrInvalidType, "container holds %q", container.Payload.Type)
	}

	if err := c.containers.Delete(db, containerID); err != nil {
		return nil, errors.Wrap(err, "delete container")
	}
	if err := c.keys.Delete(db, keyID); err != nil {
		return nil, errors.Wrap(err, "delete key")
	}
	if dest != nil {
		if err := container.Payload.Decode(dest); err != nil {
			return nil, errors.Wrap(err, "decode payload")
		}
	}

	bountyd.Emit(ctx, "lock/opened",
		"container_id", containerID,
		"key_id", keyID,
		"item_id", container.Payload.ItemID,
		"item_type", container.Payload.Type)
	return &container.Payload, nil
}

func (c *BaseController) Transfer(ctx bountyd.Context, db bountyd.KVStore, objectID []byte, to bountyd.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}

	var (
		container Container
		key       Key
		kind      string
	)
	switch {
	case c.containers.Has(db, objectID):
		if err := c.containers.One(db, objectID, &container); err != nil {
			return err
		}
		if !c.auth.HasAddress(ctx, container.Owner) {
			return errors.Wrap(errors.ErrUnauthorized, "container owner")
		}
		container.Owner = to
		if err := c.containers.Put(db, objectID, &container); err != nil {
			return errors.Wrap(err, "save container")
		}
		kind = "container"
	case c.keys.Has(db, objectID):
		if err := c.keys.One(db, objectID, &key); err != nil {
			return err
		}
		if !c.auth.HasAddress(ctx, key.Owner) {
			return errors.Wrap(errors.ErrUnauthorized, "key owner")
		}
		key.Owner = to
		if err := c.keys.Put(db, objectID, &key); err != nil {
			return errors.Wrap(err, "save key")
		}
		kind = "key"
	default:
		return errors.Wrapf(errors.ErrNotFound, "object %X", objectID)
	}

	bountyd.Emit(ctx, "lock/transferred",
		"object_id", objectID,
		"kind", kind,
		"recipient", to)
	return nil
}

func (c *BaseController) HasKey(db bountyd.ReadOnlyKVStore, keyID []byte) bool {
	return c.keys.Has(db, keyID)
}
