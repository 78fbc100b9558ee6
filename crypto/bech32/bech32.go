// Package bech32 renders addresses in the human readable bech32 format used
// by the command line client.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/bountyd/errors"
)

// HRP is the human readable prefix used for bountyd addresses.
const HRP = "bnty"

// Decode converts given bech32 encoded representation into raw payload and a
// human readable part.
func Decode(raw string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}

// Encode converts given bytes into bech32 encoded representation.
func Encode(hrp string, payload []byte) (string, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	raw, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// DecodeAddress decodes a bech32 string and requires it to carry the bountyd
// prefix.
func DecodeAddress(raw string) ([]byte, error) {
	hrp, payload, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if hrp != HRP {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
	}
	return payload, nil
}
