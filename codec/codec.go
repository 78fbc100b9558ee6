/*
Package codec provides the binary serialization shared by all persisted
models, messages and transactions.

Values are encoded with go-amino in its bare binary form. Structures are
serialized field by field in declaration order, so a model must only add
new fields at the end to stay compatible with already stored data.

Amino decodes an empty slice as nil. Models must not depend on the
difference.
*/
package codec

import (
	"github.com/iov-one/bountyd/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Marshal serializes given value.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(v)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", v, err)
	}
	return raw, nil
}

// Unmarshal deserializes raw data into the value pointed by dest.
func Unmarshal(raw []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", dest, err)
	}
	return nil
}

// MustMarshal is like Marshal, but panics instead of returning errors. Only
// use when you control the value being passed in.
func MustMarshal(v interface{}) []byte {
	raw, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// MarshalJSON serializes given value to the amino JSON format. It is used
// by the client to display stored models.
func MarshalJSON(v interface{}) ([]byte, error) {
	raw, err := cdc.MarshalJSONIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal json %T: %s", v, err)
	}
	return raw, nil
}
