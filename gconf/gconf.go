/*
Package gconf keeps the configuration of extensions in the store.

Each extension saves its configuration as a singleton under the
"_c:<package>" key. The configuration is created from the genesis file and
may later be changed by extension specific messages, ie. the platform fee
update of the bounty ledger.
*/
package gconf

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
)

// ValidMarshaler is implemented by object that can serialize itself to a binary
// representation.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is implemented by object that can load their state from given
// binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is implemented by every extension configuration.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db bountyd.KVStore, pkg string, src ValidMarshaler) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", k)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", k)
	}
	db.Set(k, raw)
	return nil
}

// Load reads the configuration of given package into dst. ErrNotFound is
// returned when no configuration was saved.
func Load(db bountyd.ReadOnlyKVStore, pkg string, dst Unmarshaler) error {
	k := key(pkg)
	raw := db.Get(k)
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", k)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given Configuration object
// validate it, and store under the proper key in the database
// Returns an error if anything goes wrong
func InitConfig(db bountyd.KVStore, opts bountyd.Options, pkg string, conf Configuration) error {
	var confOptions bountyd.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrapf(errors.ErrInput, "read conf: %s", err)
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "read configuration for %s: %s", pkg, err)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
