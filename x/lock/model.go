package lock

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
)

// Asset is any value that can be custodied. The asset type is stored
// together with the serialized value and checked when the value is
// extracted.
type Asset interface {
	bountyd.Persistent
	AssetType() string
}

// Payload is a type erased asset.
type Payload struct {
	// ItemID identifies the asset for its whole life, regardless of
	// who holds it.
	ItemID []byte
	Type   string
	Data   []byte
}

// NewPayload serializes given asset.
func NewPayload(itemID []byte, asset Asset) (Payload, error) {
	raw, err := asset.Marshal()
	if err != nil {
		return Payload{}, errors.Wrap(err, "serialize asset")
	}
	return Payload{ItemID: itemID, Type: asset.AssetType(), Data: raw}, nil
}

// Decode loads the asset into dest. It fails with ErrInvalidType if dest
// is of another type than the stored asset.
func (p Payload) Decode(dest Asset) error {
	if dest.AssetType() != p.Type {
		return errors.Wrapf(errors.ErrInvalidType, "payload holds %q, not %q", p.Type, dest.AssetType())
	}
	return dest.Unmarshal(p.Data)
}

func (p Payload) Validate() error {
	if len(p.ItemID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "item id")
	}
	if p.Type == "" {
		return errors.Wrap(errors.ErrEmpty, "type")
	}
	if len(p.Data) == 0 {
		return errors.Wrap(errors.ErrEmpty, "data")
	}
	return nil
}

// Container holds one asset that can be released only with the key
// referenced by RequiredKeyID.
type Container struct {
	Owner         bountyd.Address
	RequiredKeyID []byte
	Payload       Payload
}

var _ orm.Model = (*Container)(nil)

func (c *Container) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *Container) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }

func (c *Container) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(c.RequiredKeyID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "required key")
	}
	return errors.Wrap(c.Payload.Validate(), "payload")
}

// Key is the credential that opens exactly one container. Its identity is
// the key it is stored under.
type Key struct {
	Owner bountyd.Address
}

var _ orm.Model = (*Key)(nil)

func (k *Key) Marshal() ([]byte, error)   { return codec.Marshal(k) }
func (k *Key) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, k) }

func (k *Key) Validate() error {
	return errors.Wrap(k.Owner.Validate(), "owner")
}

func ownerIndexer(obj orm.Model) ([][]byte, error) {
	switch o := obj.(type) {
	case *Container:
		return [][]byte{o.Owner}, nil
	case *Key:
		return [][]byte{o.Owner}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
}

// NewContainerBucket returns the bucket holding all containers, indexed by
// owner.
func NewContainerBucket() *orm.ModelBucket {
	return newContainerBucket("lock")
}

// NewKeyBucket returns the bucket holding all keys, indexed by owner.
func NewKeyBucket() *orm.ModelBucket {
	return newKeyBucket("lock")
}

func newContainerBucket(ns string) *orm.ModelBucket {
	return orm.NewModelBucket(ns+"_box", &Container{}, orm.WithIndex("owner", ownerIndexer, false))
}

func newKeyBucket(ns string) *orm.ModelBucket {
	return orm.NewModelBucket(ns+"_key", &Key{}, orm.WithIndex("owner", ownerIndexer, false))
}
