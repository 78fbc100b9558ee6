package x

import (
	"context"
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	ctx1 := &weavetest.CtxAuth{Key: "foo"}
	ctx2 := &weavetest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          bountyd.Context
		auth         Authenticator
		mainSigner   bountyd.Condition
		wantInCtx    bountyd.Condition
		wantNotInCtx bountyd.Condition
		wantAll      []bountyd.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &weavetest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &weavetest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []bountyd.Condition{a},
		},
		"chained signers keep order": {
			ctx: context.Background(),
			auth: ChainAuth(
				&weavetest.Auth{Signer: b},
				&weavetest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    a,
			wantNotInCtx: c,
			wantAll:      []bountyd.Condition{b, a},
		},
		"chained duplicates are reported once": {
			ctx: context.Background(),
			auth: ChainAuth(
				&weavetest.Auth{Signer: a},
				&weavetest.Auth{Signers: []bountyd.Condition{a, b}}),
			mainSigner: a,
			wantInCtx:  b,
			wantAll:    []bountyd.Condition{a, b},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []bountyd.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}
			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			if !HasAllConditions(tc.ctx, tc.auth, all) {
				t.Fatal("context does not hold all of its own conditions")
			}
			if !HasAllAddresses(tc.ctx, tc.auth, GetAddresses(tc.ctx, tc.auth)) {
				t.Fatal("context does not hold all of its own addresses")
			}
			if tc.wantNotInCtx != nil && HasAllConditions(tc.ctx, tc.auth, append(all, tc.wantNotInCtx)) {
				t.Fatal("unexpected condition reported as present")
			}
		})
	}
}
