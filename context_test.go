package bountyd_test

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockTime(t *testing.T) {
	ctx := context.Background()

	_, err := bountyd.BlockTime(ctx)
	require.True(t, errors.ErrHuman.Is(err))
	assert.Panics(t, func() { bountyd.IsExpired(ctx, 1) })

	now := time.Unix(1000, 0)
	ctx = bountyd.WithBlockTime(ctx, now)
	got, err := bountyd.BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)
	assert.Panics(t, func() { bountyd.WithBlockTime(ctx, now) })

	cases := map[string]struct {
		deadline    bountyd.UnixTime
		wantExpired bool
		wantFuture  bool
	}{
		"in the past":   {deadline: 999, wantExpired: true, wantFuture: false},
		"exactly now":   {deadline: 1000, wantExpired: true, wantFuture: false},
		"in the future": {deadline: 1001, wantExpired: false, wantFuture: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantExpired, bountyd.IsExpired(ctx, tc.deadline))
			assert.Equal(t, tc.wantFuture, bountyd.InTheFuture(ctx, tc.deadline))
		})
	}
	assert.Equal(t, bountyd.UnixTime(1000), bountyd.Now(ctx))
}

func TestChainID(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { bountyd.GetChainID(ctx) })
	assert.Panics(t, func() { bountyd.WithChainID(ctx, "bad") })

	ctx = bountyd.WithChainID(ctx, "bounty-test")
	assert.Equal(t, "bounty-test", bountyd.GetChainID(ctx))
	assert.Panics(t, func() { bountyd.WithChainID(ctx, "bounty-other") })
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, bountyd.DefaultLogger, bountyd.GetLogger(ctx))

	logger := log.NewNopLogger()
	ctx = bountyd.WithLogger(ctx, logger)
	assert.Equal(t, logger, bountyd.GetLogger(ctx))

	ctx = bountyd.WithLogInfo(ctx, "module", "test")
	assert.NotNil(t, bountyd.GetLogger(ctx))
}

func TestUnixTimeJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    bountyd.UnixTime
		wantErr *errors.Error
	}{
		"number":         {raw: `1500000000`, want: 1500000000},
		"rfc3339 string": {raw: `"2017-07-14T02:40:00Z"`, want: 1500000000},
		"negative":       {raw: `-1`, wantErr: errors.ErrInput},
		"garbage":        {raw: `"yesterday"`, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got bountyd.UnixTime
			err := got.UnmarshalJSON([]byte(tc.raw))
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
	assert.Equal(t, bountyd.UnixTime(1060), bountyd.UnixTime(1000).Add(time.Minute))
}
