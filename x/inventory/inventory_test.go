package inventory

import (
	"testing"
	"time"

	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/lock"
)

type trophy struct {
	Rank uint32
}

func (t *trophy) AssetType() string          { return "test/trophy" }
func (t *trophy) Marshal() ([]byte, error)   { return codec.Marshal(t) }
func (t *trophy) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, t) }

func TestDeliverPayload(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	ctx, events := weavetest.Context(time.Now())
	db := store.MemStore()
	wallets := cash.NewController()
	inv := New(wallets)

	coins, err := lock.NewPayload(weavetest.SequenceID(1), coin.NewCoinp(15, "BNT"))
	assert.Nil(t, err)
	assert.Nil(t, inv.DeliverPayload(ctx, db, owner, coins))

	balance, err := wallets.Balance(db, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(15), balance.Balance("BNT").Amount)

	item, err := lock.NewPayload(weavetest.SequenceID(2), &trophy{Rank: 1})
	assert.Nil(t, err)
	assert.Nil(t, inv.DeliverPayload(ctx, db, owner, item))
	assert.IsErr(t, errors.ErrDuplicate, inv.DeliverPayload(ctx, db, owner, item))

	items, err := inv.ItemsOf(db, owner)
	assert.Nil(t, err)
	if len(items) != 1 {
		t.Fatalf("want one item, got %d", len(items))
	}
	var got trophy
	assert.Nil(t, items[0].Payload.Decode(&got))
	assert.Equal(t, uint32(1), got.Rank)

	_, err = inv.Item(db, weavetest.SequenceID(1))
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Equal(t, []string{"inventory/delivered", "inventory/delivered"}, weavetest.EventTypes(events.Events()))
}
