package cash

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bountyd.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ bountyd.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	bountyd.Emit(ctx, "cash/sent",
		"source", msg.Source,
		"destination", msg.Destination,
		"amount", msg.Amount)
	return &bountyd.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx bountyd.Context, tx bountyd.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return msg, nil
}
