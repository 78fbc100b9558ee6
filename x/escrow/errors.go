package escrow

import "github.com/iov-one/bountyd/errors"

var (
	// ErrRecipientMismatch is returned when anyone but the recipient
	// attempts a swap.
	ErrRecipientMismatch = errors.RegisterKind(errors.ErrUnauthorized, 1011, "recipient mismatch")
	// ErrNotSender is returned when anyone but the sender attempts to
	// return the asset.
	ErrNotSender = errors.RegisterKind(errors.ErrUnauthorized, 1012, "not sender")
	// ErrExchangeKeyMismatch is returned when the presented key is not
	// the one the escrow commits to.
	ErrExchangeKeyMismatch = errors.RegisterKind(errors.ErrConflict, 1013, "exchange key mismatch")
)
