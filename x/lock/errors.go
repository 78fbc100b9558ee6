package lock

import "github.com/iov-one/bountyd/errors"

// ErrCredentialMismatch is returned when a key is used to open a container
// that requires another key.
var ErrCredentialMismatch = errors.RegisterKind(errors.ErrConflict, 1001, "credential mismatch")
