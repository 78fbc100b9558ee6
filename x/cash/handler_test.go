package cash

import (
	"testing"
	"time"

	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer    *weavetest.Auth
		msg       *SendMsg
		wantCheck *errors.Error
		wantErr   *errors.Error
	}{
		"valid transfer": {
			signer: &weavetest.Auth{Signer: alice},
			msg:    &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: coin.NewCoin(10, "BNT")},
		},
		"not signed by the source": {
			signer:    &weavetest.Auth{Signer: bob},
			msg:       &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: coin.NewCoin(10, "BNT")},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
		"too much": {
			signer:  &weavetest.Auth{Signer: alice},
			msg:     &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: coin.NewCoin(51, "BNT")},
			wantErr: errors.ErrInsufficientAmount,
		},
		"invalid message": {
			signer:    &weavetest.Auth{Signer: alice},
			msg:       &SendMsg{Source: alice.Address(), Amount: coin.NewCoin(1, "BNT")},
			wantCheck: errors.ErrInput,
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController()
			assert.Nil(t, control.Credit(db, alice.Address(), coin.NewCoin(50, "BNT")))

			h := NewSendHandler(tc.signer, control)
			ctx, events := weavetest.Context(time.Now())
			tx := &weavetest.Tx{Msg: tc.msg}

			_, err := h.Check(ctx, db, tx)
			assert.IsErr(t, tc.wantCheck, err)

			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				got, err := control.Balance(db, bob.Address())
				assert.Nil(t, err)
				assert.Equal(t, tc.msg.Amount, got.Balance("BNT"))
				assert.Equal(t, []string{"cash/sent"}, weavetest.EventTypes(events.Events()))
			}
		})
	}
}
