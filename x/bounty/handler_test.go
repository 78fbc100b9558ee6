package bounty

import (
	"testing"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
)

type router map[string]bountyd.Handler

func (r router) Handle(path string, h bountyd.Handler) { r[path] = h }

func TestRoutes(t *testing.T) {
	f := newFixture(t)
	r := make(router)
	RegisterRoutes(r, f.auth, f.ledger)

	for _, path := range []string{
		"bounty/create_profile", "bounty/create", "bounty/apply",
		"bounty/submit", "bounty/approve", "bounty/reject",
		"bounty/reimburse", "bounty/cancel", "bounty/update_fee",
		"bounty/feature", "bounty/verify_user",
	} {
		if _, ok := r[path]; !ok {
			t.Fatalf("no handler for %q", path)
		}
	}

	create := r[CreateBountyMsg{}.Path()]
	tx := &weavetest.Tx{Msg: f.bountyMsg(100, 10, 2)}

	_, err := create.Check(f.ctx, f.db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = create.Check(f.as(f.creator), f.db, &weavetest.Tx{Msg: &CreateBountyMsg{}})
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = create.Check(f.as(f.creator), f.db, &weavetest.Tx{Msg: &ApplyMsg{BountyID: []byte{1}}})
	assert.IsErr(t, errors.ErrInvalidType, err)

	_, err = create.Check(f.as(f.creator), f.db, tx)
	assert.Nil(t, err)
	res, err := create.Deliver(f.as(f.creator), f.db, tx)
	assert.Nil(t, err)

	apply := r[ApplyMsg{}.Path()]
	_, err = apply.Deliver(f.as(f.bob), f.db, &weavetest.Tx{Msg: &ApplyMsg{BountyID: res.Data}})
	assert.Nil(t, err)

	b, err := f.ledger.Bounty(f.db, res.Data)
	assert.Nil(t, err)
	assert.Equal(t, f.bob.Address(), b.Assignee)
	assert.Equal(t, "fix the parser", b.Title)

	// the loaded message reaches the ledger
	dave := weavetest.NewCondition()
	profile := r[CreateProfileMsg{}.Path()]
	res, err = profile.Deliver(f.as(dave), f.db, &weavetest.Tx{Msg: &CreateProfileMsg{DisplayName: "dave"}})
	assert.Nil(t, err)
	assert.Equal(t, []byte(dave.Address()), res.Data)
	p, err := f.ledger.Profile(f.db, dave.Address())
	assert.Nil(t, err)
	assert.Equal(t, "dave", p.DisplayName)
}

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     bountyd.Msg
		wantErr *errors.Error
	}{
		"valid profile": {
			msg: &CreateProfileMsg{DisplayName: "alice"},
		},
		"profile without name": {
			msg:     &CreateProfileMsg{},
			wantErr: errors.ErrEmpty,
		},
		"bounty without title": {
			msg:     &CreateBountyMsg{},
			wantErr: errors.ErrEmpty,
		},
		"apply without id": {
			msg:     &ApplyMsg{},
			wantErr: errors.ErrEmpty,
		},
		"empty solution": {
			msg:     &SubmitSolutionMsg{BountyID: []byte{1}},
			wantErr: errors.ErrEmpty,
		},
		"reimburse without container": {
			msg:     &ReimburseWinnerMsg{BountyID: []byte{1}, EscrowID: []byte{2}, KeyID: []byte{3}},
			wantErr: errors.ErrEmpty,
		},
		"fee above limit": {
			msg:     &UpdatePlatformFeeMsg{FeeBps: 1001},
			wantErr: errors.ErrInput,
		},
		"verify invalid address": {
			msg:     &VerifyUserMsg{User: []byte("short")},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}
