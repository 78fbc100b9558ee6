/*
Package inventory keeps the assets released from custody.

Coins are credited to the cash wallet of the new owner. Any other asset is
stored as an item owned by the address it was delivered to.
*/
package inventory

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/lock"
)

// Item is a non fungible asset owned by an address.
type Item struct {
	Owner   bountyd.Address
	Payload lock.Payload
}

var _ orm.Model = (*Item)(nil)

func (i *Item) Marshal() ([]byte, error)   { return codec.Marshal(i) }
func (i *Item) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, i) }

func (i *Item) Validate() error {
	if err := i.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return errors.Wrap(i.Payload.Validate(), "payload")
}

// NewBucket returns the bucket of all items, indexed by owner.
func NewBucket() *orm.ModelBucket {
	return orm.NewModelBucket("inventory", &Item{}, orm.WithIndex("owner", ownerIndexer, false))
}

func ownerIndexer(obj orm.Model) ([][]byte, error) {
	i, ok := obj.(*Item)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
	return [][]byte{i.Owner}, nil
}

// Inventory delivers released payloads to their new owners.
type Inventory struct {
	wallets cash.Controller
	items   *orm.ModelBucket
}

var _ lock.Deliverer = (*Inventory)(nil)

// New returns an inventory crediting coins with given wallet controller.
func New(wallets cash.Controller) *Inventory {
	return &Inventory{wallets: wallets, items: NewBucket()}
}

// DeliverPayload hands the payload over to the new owner.
func (inv *Inventory) DeliverPayload(ctx bountyd.Context, db bountyd.KVStore, to bountyd.Address, p lock.Payload) error {
	if p.Type == coin.AssetType {
		var c coin.Coin
		if err := p.Decode(&c); err != nil {
			return err
		}
		if err := inv.wallets.Credit(db, to, c); err != nil {
			return errors.Wrap(err, "credit")
		}
	} else {
		if inv.items.Has(db, p.ItemID) {
			return errors.Wrapf(errors.ErrDuplicate, "item %X", p.ItemID)
		}
		if err := inv.items.Put(db, p.ItemID, &Item{Owner: to, Payload: p}); err != nil {
			return errors.Wrap(err, "save item")
		}
	}
	bountyd.Emit(ctx, "inventory/delivered",
		"item_id", p.ItemID,
		"item_type", p.Type,
		"owner", to)
	return nil
}

// Item returns the item with given id.
func (inv *Inventory) Item(db bountyd.ReadOnlyKVStore, itemID []byte) (*Item, error) {
	var i Item
	if err := inv.items.One(db, itemID, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// ItemsOf returns all items owned by given address.
func (inv *Inventory) ItemsOf(db bountyd.ReadOnlyKVStore, owner bountyd.Address) ([]*Item, error) {
	keys, err := inv.items.ByIndex(db, "owner", owner)
	if err != nil {
		return nil, err
	}
	res := make([]*Item, 0, len(keys))
	for _, k := range keys {
		i, err := inv.Item(db, k)
		if err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, nil
}
