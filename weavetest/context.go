package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/bountyd"
)

// Context returns a context ready to run a handler: block time is set to
// given value and an event log is attached.
func Context(now time.Time) (bountyd.Context, *bountyd.EventLog) {
	ctx := bountyd.WithBlockTime(context.Background(), now)
	ctx = bountyd.WithChainID(ctx, "bounty-test")
	return bountyd.WithEventLog(ctx)
}
