package sigs

import "github.com/iov-one/bountyd/errors"

// ErrInvalidSequence is returned when the signature sequence does not match
// the one stored for the signer.
var ErrInvalidSequence = errors.RegisterKind(errors.ErrUnauthorized, 20, "invalid sequence")
