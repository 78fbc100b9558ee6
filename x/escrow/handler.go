package escrow

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/lock"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r bountyd.Registry, auth x.Authenticator, ctrl Controller, wallets cash.Controller, deliver lock.Deliverer) {
	r.Handle(CreateCoinsMsg{}.Path(), CreateCoinsHandler{auth: auth, ctrl: ctrl, wallets: wallets})
	r.Handle(SwapMsg{}.Path(), SwapHandler{auth: auth, ctrl: ctrl, deliver: deliver})
	r.Handle(ReturnMsg{}.Path(), ReturnHandler{auth: auth, ctrl: ctrl, deliver: deliver})
}

// CreateCoinsHandler moves coins of the signer into a new escrow.
type CreateCoinsHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	wallets cash.Controller
}

var _ bountyd.Handler = CreateCoinsHandler{}

func (h CreateCoinsHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h CreateCoinsHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.wallets.Debit(db, sender, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "debit")
	}
	amount := msg.Amount
	id, err := h.ctrl.Create(ctx, db, sender, &amount, msg.ExchangeKey, msg.Recipient)
	if err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{Data: id}, nil
}

func (h CreateCoinsHandler) validate(ctx bountyd.Context, tx bountyd.Tx) (*CreateCoinsMsg, bountyd.Address, error) {
	var msg *CreateCoinsMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return msg, signer.Address(), nil
}

// SwapHandler resolves an escrow by swap. The escrowed asset is delivered
// to the signer.
type SwapHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	deliver lock.Deliverer
}

var _ bountyd.Handler = SwapHandler{}

func (h SwapHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *SwapMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bountyd.CheckResult{}, nil
}

func (h SwapHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *SwapMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	payload, err := h.ctrl.SwapPayload(ctx, db, msg.EscrowID, msg.KeyID, msg.ContainerID)
	if err != nil {
		return nil, err
	}
	if err := h.deliver.DeliverPayload(ctx, db, signer.Address(), *payload); err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	return &bountyd.DeliverResult{Data: payload.ItemID}, nil
}

// ReturnHandler returns the escrowed asset to the sender.
type ReturnHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	deliver lock.Deliverer
}

var _ bountyd.Handler = ReturnHandler{}

func (h ReturnHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *ReturnMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bountyd.CheckResult{}, nil
}

func (h ReturnHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *ReturnMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	e, err := h.ctrl.Escrow(db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	payload, err := h.ctrl.ReturnPayload(ctx, db, msg.EscrowID)
	if err != nil {
		return nil, err
	}
	if err := h.deliver.DeliverPayload(ctx, db, e.Sender, *payload); err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	return &bountyd.DeliverResult{Data: payload.ItemID}, nil
}
