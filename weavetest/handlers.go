package weavetest

import "github.com/iov-one/bountyd"

// Handler is a mock implementation of the bountyd.Handler interface.
//
// Each method call is counted. The configured result and error are
// returned. When OnDeliver is set it is called before returning, which
// allows a test to write to the store or emit events.
type Handler struct {
	checkCall   int
	CheckResult bountyd.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult bountyd.DeliverResult
	DeliverErr    error

	OnDeliver func(ctx bountyd.Context, db bountyd.KVStore)
}

var _ bountyd.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		h.OnDeliver(ctx, db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
