package utils

import (
	"github.com/iov-one/bountyd"
)

// ActionTagger will inspect the message being executed and emit an
// `action` event carrying `path = msg.Path()`. This gives subscribers a
// standard way to follow every kind of transaction, including those that
// do not emit events of their own.
type ActionTagger struct{}

var _ bountyd.Decorator = ActionTagger{}

// ActionEvent is the type of the event emitted by ActionTagger.
const ActionEvent = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx, next bountyd.Checker) (*bountyd.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver emits the event if there is a success.
func (ActionTagger) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx, next bountyd.Deliverer) (*bountyd.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	bountyd.Emit(ctx, ActionEvent, "path", msg.Path())
	return res, nil
}
