package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrState is returned when an object is not in the lifecycle state the
	// operation requires.
	ErrState = Register(4, "invalid state")

	// ErrConflict is returned when presented identities do not match or a
	// capacity limit is reached.
	ErrConflict = Register(5, "conflict")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(6, "invalid input")

	// ErrExpired is returned when an operation is attempted after its
	// deadline.
	ErrExpired = Register(7, "expired")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected by the framework
	ErrHuman = Register(8, "coding error")

	// ErrDatabase is returned when the underlying store fails.
	ErrDatabase = Register(9, "database")

	// ErrInvalidType is returned whenever the type is not what was expected
	ErrInvalidType = Register(10, "invalid type")

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds/fees
	ErrInsufficientAmount = Register(11, "insufficient amount")

	// ErrOverflow s returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(12, "an operation cannot be completed due to value overflow")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info
	ErrPanic = Register(111222, "panic")
)

var (
	// ErrInvalidAmount stands for invalid amount of whatever
	ErrInvalidAmount = RegisterKind(ErrInput, 13, "invalid amount")

	// ErrCurrency is returned when two coins of a different ticker are
	// combined or a ticker is malformed.
	ErrCurrency = RegisterKind(ErrInput, 14, "currency")

	// ErrEmpty is returned when a value fails a not empty assertion
	ErrEmpty = RegisterKind(ErrInput, 15, "value is empty")

	// ErrDuplicate is returned when there is a record already that has the
	// same unique key/index used.
	ErrDuplicate = RegisterKind(ErrConflict, 16, "duplicate")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want to
// declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	return RegisterKind(nil, code, description)
}

// RegisterKind works like Register but places the new error under a parent
// error. The parent's Is method matches the new error as well.
func RegisterKind(parent *Error, code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code:   code,
		desc:   description,
		parent: parent,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No two
// error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	1: nil, // Error code 1 is restricted for non-registered errors and must not be used.
}

// Error represents a root error.
//
// Each instance created during the runtime should wrap one of the declared
// errors. This allows error tests and returning all errors to the client in
// a safe manner.
type Error struct {
	code   uint32
	desc   string
	parent *Error
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the unique code of this error. Code 1 is reserved for errors
// that do not wrap any registered error.
func (e Error) Code() uint32 {
	return e.code
}

// Parent returns the error this one was registered under, or nil for a root
// error.
func (e *Error) Parent() *Error {
	return e.parent
}

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available. An error
// registered under this one with RegisterKind is matched too.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if e, ok := err.(*Error); ok {
			for ; e != nil; e = e.parent {
				if e == kind {
					return true
				}
			}
			return false
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Kind returns the root error of the taxonomy the given error belongs to.
// It returns nil for nil and for errors that do not wrap a registered error.
func Kind(err error) *Error {
	e := registered(err)
	if e == nil {
		return nil
	}
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// Code returns the code of the registered error wrapped by err. It returns 0
// for nil and 1 for an error that does not wrap any registered error.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	if e := registered(err); e != nil {
		return e.code
	}
	return 1
}

func registered(err error) *Error {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// Wrap extends given error with an additional information.
//
// If err is nil, this returns nil, avoiding the need for an if statement when
// wrapping a error returned at the end of a function
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional funtionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Unwrap allows the standard library errors.Is and errors.As to traverse
// the chain.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType is a helper to augment an error with a corresponding type message
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Redact replaces panic errors with a generic message so that system
// details do not leak to the client.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return ErrPanic
	}
	return err
}

// causer is an interface implemented by an error that supports wrapping. Use
// it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}
