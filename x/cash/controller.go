package cash

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

// Controller is the functionality needed by other extensions to move coins.
type Controller interface {
	// Balance returns all coins owned by given address.
	Balance(db bountyd.ReadOnlyKVStore, addr bountyd.Address) (coin.Coins, error)
	// MoveCoins moves the given amount from src to dest. It fails if src
	// does not own enough.
	MoveCoins(db bountyd.KVStore, src, dest bountyd.Address, amount coin.Coin) error
	// Debit removes coins from given address. They must be credited
	// elsewhere within the same transaction.
	Debit(db bountyd.KVStore, src bountyd.Address, amount coin.Coin) error
	// Credit adds coins to given address.
	Credit(db bountyd.KVStore, dest bountyd.Address, amount coin.Coin) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db bountyd.ReadOnlyKVStore, addr bountyd.Address) (coin.Coins, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

func (c BaseController) MoveCoins(db bountyd.KVStore, src, dest bountyd.Address, amount coin.Coin) error {
	if err := c.Debit(db, src, amount); err != nil {
		return err
	}
	return c.Credit(db, dest, amount)
}

func (c BaseController) Debit(db bountyd.KVStore, src bountyd.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount %s", amount)
	}
	w, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if !w.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s, needs %s", src, w.Coins.Balance(amount.Ticker), amount)
	}
	if w.Coins, err = w.Coins.Subtract(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, src, w)
}

func (c BaseController) Credit(db bountyd.KVStore, dest bountyd.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return nil
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, w)
}
