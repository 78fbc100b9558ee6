package bounty

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/gconf"
)

const optKey = "bounty"

// GenesisProfile is a profile registered from the genesis file.
type GenesisProfile struct {
	Address     bountyd.Address `json:"address"`
	DisplayName string          `json:"display_name"`
	Reputation  uint64          `json:"reputation"`
	Verified    bool            `json:"verified"`
}

type genesis struct {
	Profiles []GenesisProfile `json:"profiles"`
}

// Initializer fulfils the Initializer interface to load the configuration
// and the profiles from the genesis file.
type Initializer struct{}

var _ bountyd.Initializer = Initializer{}

// FromGenesis stores the configuration found under conf.bounty and
// registers all profiles listed under bounty.profiles.
func (Initializer) FromGenesis(opts bountyd.Options, kv bountyd.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, packageName, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var gen genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewProfileBucket()
	for i, p := range gen.Profiles {
		if bucket.Has(kv, p.Address) {
			return errors.Wrapf(errors.ErrDuplicate, "profile %d", i)
		}
		reputation := p.Reputation
		if reputation == 0 {
			reputation = conf.StartingReputation
		}
		profile := &UserProfile{
			Address:     p.Address,
			DisplayName: p.DisplayName,
			Reputation:  reputation,
			Verified:    p.Verified,
		}
		if err := bucket.Put(kv, p.Address, profile); err != nil {
			return errors.Wrapf(err, "profile %d", i)
		}
	}
	return nil
}
