package cash

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use bountyd.Address, so address in hex, not base64
type GenesisAccount struct {
	Address bountyd.Address `json:"address"`
	Coins   []string        `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ bountyd.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts bountyd.Options, kv bountyd.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	control := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, raw := range acct.Coins {
			c, err := coin.ParseHumanFormat(raw)
			if err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
			if err := control.Credit(kv, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
