package sigs

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x"
)

// RegisterRoutes registers the sequence management handler.
func RegisterRoutes(r bountyd.Registry, auth x.Authenticator) {
	r.Handle(BumpSequenceMsg{}.Path(), &bumpSequenceHandler{
		b:    NewBucket(),
		auth: auth,
	})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		return &bountyd.DeliverResult{}, nil
	}
	user.Sequence += incr
	if err := h.b.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	bountyd.Emit(ctx, "sigs/sequence_bumped", "signer", user.Pubkey.Address(), "sequence", user.Sequence)
	return &bountyd.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg *BumpSequenceMsg
	if err := bountyd.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	var user UserData
	if err := h.b.One(db, signer.Address(), &user); err != nil {
		return nil, nil, errors.Wrap(err, "no sequence")
	}
	if user.Sequence+int64(msg.Increment) > maxSequenceValue {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return &user, msg, nil
}
