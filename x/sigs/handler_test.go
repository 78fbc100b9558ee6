package sigs

import (
	"testing"
	"time"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
)

type router map[string]bountyd.Handler

func (r router) Handle(path string, h bountyd.Handler) { r[path] = h }

func TestBumpSequence(t *testing.T) {
	key := weavetest.NewKey()
	signer := key.PublicKey().Condition()
	unknown := weavetest.NewKey().PublicKey().Condition()

	cases := map[string]struct {
		initSeq   int64
		signer    bountyd.Condition
		increment uint32
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by one is a noop": {
			initSeq:   4,
			signer:    signer,
			increment: 1,
			wantSeq:   4,
		},
		"increment by many": {
			initSeq:   4,
			signer:    signer,
			increment: 100,
			wantSeq:   103,
		},
		"increment too big": {
			signer:    signer,
			increment: maxSequenceIncrement + 1,
			wantErr:   errors.ErrInput,
			wantSeq:   0,
		},
		"overflow": {
			initSeq:   maxSequenceValue - 10,
			signer:    signer,
			increment: 20,
			wantErr:   errors.ErrOverflow,
			wantSeq:   maxSequenceValue - 10,
		},
		"unknown signer": {
			signer:    unknown,
			increment: 2,
			wantErr:   errors.ErrNotFound,
		},
		"no signer": {
			increment: 2,
			wantErr:   errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			user := &UserData{Pubkey: key.PublicKey(), Sequence: tc.initSeq}
			assert.Nil(t, b.Put(db, key.PublicKey().Address(), user))

			auth := &weavetest.Auth{}
			if tc.signer != nil {
				auth.Signer = tc.signer
			}
			r := router{}
			RegisterRoutes(r, auth)
			h := r["sigs/bump_sequence"]

			ctx, _ := weavetest.Context(time.Now())
			tx := signedTx(&BumpSequenceMsg{Increment: tc.increment})
			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.signer.Equals(signer) {
				var got UserData
				assert.Nil(t, b.One(db, key.PublicKey().Address(), &got))
				assert.Equal(t, tc.wantSeq, got.Sequence)
			}
		})
	}
}
