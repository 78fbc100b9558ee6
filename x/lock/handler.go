package lock

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x"
	"github.com/iov-one/bountyd/x/cash"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r bountyd.Registry, auth x.Authenticator, ctrl Controller, wallets cash.Controller, deliver Deliverer) {
	r.Handle(SealCoinsMsg{}.Path(), &sealCoinsHandler{auth: auth, ctrl: ctrl, wallets: wallets})
	r.Handle(OpenMsg{}.Path(), &openHandler{auth: auth, ctrl: ctrl, deliver: deliver})
	r.Handle(TransferMsg{}.Path(), &transferHandler{ctrl: ctrl})
}

type sealCoinsHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	wallets cash.Controller
}

func (h *sealCoinsHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h *sealCoinsHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.wallets.Debit(db, owner, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "debit")
	}
	amount := msg.Amount
	containerID, keyID, err := h.ctrl.Seal(ctx, db, owner, &amount)
	if err != nil {
		return nil, err
	}
	res, err := (&SealResult{ContainerID: containerID, KeyID: keyID}).Marshal()
	if err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{Data: res}, nil
}

func (h *sealCoinsHandler) validate(ctx bountyd.Context, tx bountyd.Tx) (*SealCoinsMsg, bountyd.Address, error) {
	var msg *SealCoinsMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return msg, signer.Address(), nil
}

type openHandler struct {
	auth    x.Authenticator
	ctrl    Controller
	deliver Deliverer
}

func (h *openHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *OpenMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bountyd.CheckResult{}, nil
}

func (h *openHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *OpenMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	payload, err := h.ctrl.OpenPayload(ctx, db, msg.ContainerID, msg.KeyID)
	if err != nil {
		return nil, err
	}
	if err := h.deliver.DeliverPayload(ctx, db, signer.Address(), *payload); err != nil {
		return nil, errors.Wrap(err, "deliver")
	}
	return &bountyd.DeliverResult{Data: payload.ItemID}, nil
}

type transferHandler struct {
	ctrl Controller
}

func (h *transferHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *TransferMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &bountyd.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *TransferMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, db, msg.ObjectID, msg.Recipient); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}
