/*
Package errors implements the error taxonomy used across bountyd.

Every failure returned by a handler wraps one of the registered root errors.
Six roots form the public taxonomy and let a client tell failures apart
without parsing messages:

	ErrUnauthorized  the caller lacks the required role or possession
	ErrState         the object is in the wrong lifecycle state
	ErrNotFound      a referenced object does not exist
	ErrConflict      identities do not match or a capacity is reached
	ErrInput         a value is out of range
	ErrExpired       a deadline has passed

Extensions declare more specific errors with RegisterKind, placing them under
one of the roots. A check with the root matches the specific error too:

	var ErrNotSender = errors.RegisterKind(errors.ErrUnauthorized, 1002, "not the sender")

	errors.ErrUnauthorized.Is(ErrNotSender.New("caller")) // true
	errors.Kind(ErrNotSender.New("caller")) == errors.ErrUnauthorized // true

Create errors with ErrXyz.New("...") or Wrap(err, "...") at the point of
failure so that a stack trace is attached. Only the innermost wrap records
it.

Once you have an error, use fmt to inspect it
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
