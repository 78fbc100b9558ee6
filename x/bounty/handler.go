package bounty

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Every message is processed by the ledger.
func RegisterRoutes(r bountyd.Registry, auth x.Authenticator, ledger *Ledger) {
	h := base{auth: auth, ledger: ledger}
	r.Handle(CreateProfileMsg{}.Path(), CreateProfileHandler{h})
	r.Handle(CreateBountyMsg{}.Path(), CreateBountyHandler{h})
	r.Handle(ApplyMsg{}.Path(), ApplyHandler{h})
	r.Handle(SubmitSolutionMsg{}.Path(), SubmitSolutionHandler{h})
	r.Handle(ApproveSubmissionMsg{}.Path(), ApproveSubmissionHandler{h})
	r.Handle(RejectSubmissionMsg{}.Path(), RejectSubmissionHandler{h})
	r.Handle(ReimburseWinnerMsg{}.Path(), ReimburseWinnerHandler{h})
	r.Handle(CancelBountyMsg{}.Path(), CancelBountyHandler{h})
	r.Handle(UpdatePlatformFeeMsg{}.Path(), UpdatePlatformFeeHandler{h})
	r.Handle(FeatureBountyMsg{}.Path(), FeatureBountyHandler{h})
	r.Handle(VerifyUserMsg{}.Path(), VerifyUserHandler{h})
}

// base is shared by all handlers of this package. Check only validates the
// message and the presence of a signature, the ledger does the rest in
// Deliver.
type base struct {
	auth   x.Authenticator
	ledger *Ledger
}

// load fills dest with the message of the transaction if it is signed.
func (h base) load(ctx bountyd.Context, tx bountyd.Tx, dest interface{}) error {
	if err := bountyd.LoadMsg(tx, dest); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// CreateProfileHandler registers the signer.
type CreateProfileHandler struct{ base }

var _ bountyd.Handler = CreateProfileHandler{}

func (h CreateProfileHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *CreateProfileMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h CreateProfileHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *CreateProfileMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	p, err := h.ledger.CreateProfile(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{Data: p.Address}, nil
}

// CreateBountyHandler opens a bounty. The result data is the bounty id.
type CreateBountyHandler struct{ base }

var _ bountyd.Handler = CreateBountyHandler{}

func (h CreateBountyHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *CreateBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h CreateBountyHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *CreateBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	id, err := h.ledger.CreateBounty(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{Data: id}, nil
}

type ApplyHandler struct{ base }

var _ bountyd.Handler = ApplyHandler{}

func (h ApplyHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *ApplyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h ApplyHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *ApplyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.Apply(ctx, db, msg.BountyID); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type SubmitSolutionHandler struct{ base }

var _ bountyd.Handler = SubmitSolutionHandler{}

func (h SubmitSolutionHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *SubmitSolutionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h SubmitSolutionHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *SubmitSolutionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.SubmitSolution(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type ApproveSubmissionHandler struct{ base }

var _ bountyd.Handler = ApproveSubmissionHandler{}

func (h ApproveSubmissionHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *ApproveSubmissionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h ApproveSubmissionHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *ApproveSubmissionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.ApproveSubmission(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type RejectSubmissionHandler struct{ base }

var _ bountyd.Handler = RejectSubmissionHandler{}

func (h RejectSubmissionHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *RejectSubmissionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h RejectSubmissionHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *RejectSubmissionMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.RejectSubmission(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

// ReimburseWinnerHandler settles a completed bounty. Only the admin can
// sign it.
type ReimburseWinnerHandler struct{ base }

var _ bountyd.Handler = ReimburseWinnerHandler{}

func (h ReimburseWinnerHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *ReimburseWinnerMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h ReimburseWinnerHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *ReimburseWinnerMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.ReimburseWinner(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type CancelBountyHandler struct{ base }

var _ bountyd.Handler = CancelBountyHandler{}

func (h CancelBountyHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *CancelBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h CancelBountyHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *CancelBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.CancelBounty(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type UpdatePlatformFeeHandler struct{ base }

var _ bountyd.Handler = UpdatePlatformFeeHandler{}

func (h UpdatePlatformFeeHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *UpdatePlatformFeeMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h UpdatePlatformFeeHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *UpdatePlatformFeeMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.UpdatePlatformFee(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type FeatureBountyHandler struct{ base }

var _ bountyd.Handler = FeatureBountyHandler{}

func (h FeatureBountyHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *FeatureBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h FeatureBountyHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *FeatureBountyMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.FeatureBounty(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}

type VerifyUserHandler struct{ base }

var _ bountyd.Handler = VerifyUserHandler{}

func (h VerifyUserHandler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	var msg *VerifyUserMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	return &bountyd.CheckResult{}, nil
}

func (h VerifyUserHandler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	var msg *VerifyUserMsg
	if err := h.load(ctx, tx, &msg); err != nil {
		return nil, err
	}
	if err := h.ledger.VerifyUser(ctx, db, msg); err != nil {
		return nil, err
	}
	return &bountyd.DeliverResult{}, nil
}
