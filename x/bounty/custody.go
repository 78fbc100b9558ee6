package bounty

import (
	"context"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/x"
)

type contextKey int // local to the bounty module

const (
	contextKeyCustody contextKey = iota
)

// CustodyCondition is held by this package on behalf of the bounty with
// given id. The bounty escrow is created from its address.
func CustodyCondition(bountyID []byte) bountyd.Condition {
	return bountyd.NewCondition("bounty", "custody", bountyID)
}

// TreasuryAddress receives the platform fee of every settled bounty.
var TreasuryAddress = bountyd.NewCondition("bounty", "treasury", []byte("fees")).Address()

// withCustody grants the custody of a bounty to the context. Only this
// package can grant it.
func withCustody(ctx bountyd.Context, bountyID []byte) bountyd.Context {
	return context.WithValue(ctx, contextKeyCustody, CustodyCondition(bountyID))
}

// CustodyAuth implements x.Authenticator and authenticates the bounty
// custody granted while the ledger is processing a bounty.
type CustodyAuth struct{}

var _ x.Authenticator = CustodyAuth{}

func (CustodyAuth) GetConditions(ctx bountyd.Context) []bountyd.Condition {
	val, _ := ctx.Value(contextKeyCustody).(bountyd.Condition)
	if val == nil {
		return nil
	}
	return []bountyd.Condition{val}
}

func (CustodyAuth) HasAddress(ctx bountyd.Context, addr bountyd.Address) bool {
	val, _ := ctx.Value(contextKeyCustody).(bountyd.Condition)
	return val != nil && val.Address().Equals(addr)
}
