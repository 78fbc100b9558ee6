package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
)

// Genesis file format. AppState is passed to the initializers of all
// extensions.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState bountyd.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	if !bountyd.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}
	return &gen, nil
}

const chainIDKey = "_app:chain_id"

// loadChainID returns the chain id stored if any
func loadChainID(db bountyd.ReadOnlyKVStore) string {
	return string(db.Get([]byte(chainIDKey)))
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(db bountyd.KVStore, chainID string) error {
	if !bountyd.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	if db.Has(k) {
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	db.Set(k, []byte(chainID))
	return nil
}
