package bounty

import "github.com/iov-one/bountyd/errors"

var (
	ErrMaxParticipants = errors.RegisterKind(errors.ErrConflict, 1021, "max participants reached")
	ErrAlreadyApplied  = errors.RegisterKind(errors.ErrConflict, 1022, "already applied")
	ErrEscrowMismatch  = errors.RegisterKind(errors.ErrConflict, 1023, "escrow mismatch")
	ErrKeyMismatch     = errors.RegisterKind(errors.ErrConflict, 1024, "key mismatch")
	ErrSettled         = errors.RegisterKind(errors.ErrConflict, 1025, "already settled")
)
