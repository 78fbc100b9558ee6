package escrow

import (
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
	"github.com/iov-one/bountyd/x/inventory"
)

type router map[string]bountyd.Handler

func (r router) Handle(path string, h bountyd.Handler) { r[path] = h }

func TestHandlers(t *testing.T) {
	f := newFixture(t)
	r := router{}
	RegisterRoutes(r, f.auth, f.ctrl, f.wallets, inventory.New(f.wallets))

	assert.Nil(t, f.wallets.Credit(f.db, f.alice.Address(), coin.NewCoin(500, "BNT")))
	containerID, keyID, err := f.locks.Seal(f.as(f.bob), f.db, f.bob.Address(), coin.NewCoinp(7, "BNT"))
	assert.Nil(t, err)

	create := &weavetest.Tx{Msg: &CreateCoinsMsg{Recipient: f.bob.Address(), ExchangeKey: keyID, Amount: coin.NewCoin(200, "BNT")}}
	_, err = r["escrow/create_coins"].Check(f.as(f.alice), f.db, create)
	assert.Nil(t, err)
	res, err := r["escrow/create_coins"].Deliver(f.as(f.alice), f.db, create)
	assert.Nil(t, err)
	escrowID := res.Data

	balance, err := f.wallets.Balance(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(300), balance.Balance("BNT").Amount)

	// return requires the sender
	_, err = r["escrow/return"].Deliver(f.as(f.bob), f.db, &weavetest.Tx{Msg: &ReturnMsg{EscrowID: escrowID}})
	assert.IsErr(t, ErrNotSender, err)

	swap := &weavetest.Tx{Msg: &SwapMsg{EscrowID: escrowID, KeyID: keyID, ContainerID: containerID}}
	_, err = r["escrow/swap"].Deliver(f.as(f.bob), f.db, swap)
	assert.Nil(t, err)

	bobBalance, err := f.wallets.Balance(f.db, f.bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(200), bobBalance.Balance("BNT").Amount)
	balance, err = f.wallets.Balance(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(307), balance.Balance("BNT").Amount)

	_, err = r["escrow/swap"].Deliver(f.as(f.bob), f.db, swap)
	assert.IsErr(t, errors.ErrNotFound, err)
}
