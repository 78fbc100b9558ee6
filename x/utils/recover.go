package utils

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ bountyd.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx bountyd.Context, store bountyd.KVStore, tx bountyd.Tx, next bountyd.Checker) (_ *bountyd.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx bountyd.Context, store bountyd.KVStore, tx bountyd.Tx, next bountyd.Deliverer) (_ *bountyd.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
