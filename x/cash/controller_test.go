package cash

import (
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestController(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		run     func(db bountyd.KVStore, c Controller) error
		wantErr *errors.Error
		wantA   coin.Coins
		wantB   coin.Coins
	}{
		"credit creates a wallet": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.Credit(db, b, coin.NewCoin(5, "BNT"))
			},
			wantA: coin.Coins{coin.NewCoin(100, "BNT")},
			wantB: coin.Coins{coin.NewCoin(5, "BNT")},
		},
		"move part of the balance": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.MoveCoins(db, a, b, coin.NewCoin(30, "BNT"))
			},
			wantA: coin.Coins{coin.NewCoin(70, "BNT")},
			wantB: coin.Coins{coin.NewCoin(30, "BNT")},
		},
		"move everything removes the wallet": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.MoveCoins(db, a, b, coin.NewCoin(100, "BNT"))
			},
			wantB: coin.Coins{coin.NewCoin(100, "BNT")},
		},
		"insufficient funds": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.MoveCoins(db, a, b, coin.NewCoin(101, "BNT"))
			},
			wantErr: errors.ErrInsufficientAmount,
			wantA:   coin.Coins{coin.NewCoin(100, "BNT")},
		},
		"other currency": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.Debit(db, a, coin.NewCoin(1, "ETH"))
			},
			wantErr: errors.ErrInsufficientAmount,
			wantA:   coin.Coins{coin.NewCoin(100, "BNT")},
		},
		"zero amount cannot be debited": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.Debit(db, a, coin.NewCoin(0, "BNT"))
			},
			wantErr: errors.ErrInvalidAmount,
			wantA:   coin.Coins{coin.NewCoin(100, "BNT")},
		},
		"empty source": {
			run: func(db bountyd.KVStore, c Controller) error {
				return c.Debit(db, b, coin.NewCoin(1, "BNT"))
			},
			wantErr: errors.ErrInsufficientAmount,
			wantA:   coin.Coins{coin.NewCoin(100, "BNT")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			assert.Nil(t, c.Credit(db, a, coin.NewCoin(100, "BNT")))

			assert.IsErr(t, tc.wantErr, tc.run(db, c))

			gotA, err := c.Balance(db, a)
			assert.Nil(t, err)
			assert.Equal(t, true, tc.wantA.Equals(gotA))
			gotB, err := c.Balance(db, b)
			assert.Nil(t, err)
			assert.Equal(t, true, tc.wantB.Equals(gotB))

			if tc.wantA.IsEmpty() && NewBucket().Has(db, a) {
				t.Fatal("empty wallet was not removed")
			}
		})
	}
}
