package bounty

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/gconf"
)

const (
	packageName = "bounty"

	// MaxFeeBps is the highest platform fee, 10%.
	MaxFeeBps coin.BasisPoints = 1000
)

// Configuration of the bounty ledger. It is loaded from the genesis and
// stored with gconf.
type Configuration struct {
	// Admin is the platform operator. It receives the receipt of every
	// bounty and settles completed ones.
	Admin bountyd.Address `json:"admin"`
	// FeeBps is the part of a settled reward kept by the treasury.
	FeeBps coin.BasisPoints `json:"fee_bps"`
	// MinReputation is required to create a bounty.
	MinReputation uint64 `json:"min_reputation"`
	// StartingReputation is given to every new profile.
	StartingReputation uint64 `json:"starting_reputation"`
	// Ticker is the only currency rewards can be paid in.
	Ticker string `json:"ticker"`
	// MaxParticipants is the highest participant cap a bounty can declare.
	MaxParticipants uint32 `json:"max_participants"`
	// MaxCategory is the highest valid category number.
	MaxCategory uint32 `json:"max_category"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return codec.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, c) }

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if c.FeeBps > MaxFeeBps {
		return errors.Wrapf(errors.ErrInput, "fee must not exceed %d bps", MaxFeeBps)
	}
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker)
	}
	if c.MaxParticipants == 0 {
		return errors.Wrap(errors.ErrInput, "max participants must be positive")
	}
	return nil
}

func loadConf(db bountyd.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
