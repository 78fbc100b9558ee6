package cash

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the coins owned by a single address.
type Wallet struct {
	Coins coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error)   { return codec.Marshal(w) }
func (w *Wallet) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, w) }

// Validate requires that all coins are valid and normalized. Empty
// wallets are never stored.
func (w *Wallet) Validate() error {
	if w.Coins.IsEmpty() {
		return errors.Wrap(errors.ErrEmpty, "wallet")
	}
	return w.Coins.Validate()
}

// Bucket is a type-safe wrapper around orm.ModelBucket
type Bucket struct {
	*orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}),
	}
}

// GetOrCreate returns the wallet of given address. An empty wallet is
// returned when none is stored.
func (b Bucket) GetOrCreate(db bountyd.ReadOnlyKVStore, addr bountyd.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}

// Save stores the wallet or removes it if it holds no coins.
func (b Bucket) Save(db bountyd.KVStore, addr bountyd.Address, w *Wallet) error {
	if w.Coins.IsEmpty() {
		if b.Has(db, addr) {
			return b.Delete(db, addr)
		}
		return nil
	}
	return b.Put(db, addr, w)
}
