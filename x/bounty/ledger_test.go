package bounty

import (
	"testing"
	"time"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/gconf"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/inventory"
)

type fixture struct {
	auth    *weavetest.CtxAuth
	db      bountyd.CacheableKVStore
	wallets cash.Controller
	inv     *inventory.Inventory
	ledger  *Ledger
	now     time.Time
	ctx     bountyd.Context
	events  *bountyd.EventLog

	admin, creator, alice, bob bountyd.Condition
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	auth := &weavetest.CtxAuth{Key: "auth"}
	wallets := cash.NewController()
	inv := inventory.New(wallets)
	now := time.Now()
	ctx, events := weavetest.Context(now)
	f := &fixture{
		auth:    auth,
		db:      store.MemStore(),
		wallets: wallets,
		inv:     inv,
		ledger:  NewLedger(auth, wallets, inv),
		now:     now,
		ctx:     ctx,
		events:  events,
		admin:   weavetest.NewCondition(),
		creator: weavetest.NewCondition(),
		alice:   weavetest.NewCondition(),
		bob:     weavetest.NewCondition(),
	}
	f.saveConf(t, func(c *Configuration) {})
	assert.Nil(t, wallets.Credit(f.db, f.creator.Address(), coin.NewCoin(10000, "BNT")))
	for _, c := range []bountyd.Condition{f.creator, f.alice, f.bob} {
		_, err := f.ledger.CreateProfile(f.as(c), f.db, &CreateProfileMsg{DisplayName: "someone"})
		assert.Nil(t, err)
	}
	return f
}

func (f *fixture) saveConf(t *testing.T, change func(*Configuration)) {
	t.Helper()
	conf := &Configuration{
		Admin:              f.admin.Address(),
		FeeBps:             250,
		MinReputation:      50,
		StartingReputation: 100,
		Ticker:             "BNT",
		MaxParticipants:    5,
		MaxCategory:        10,
	}
	change(conf)
	assert.Nil(t, gconf.Save(f.db, packageName, conf))
}

func (f *fixture) as(c bountyd.Condition) bountyd.Context {
	return f.auth.SetConditions(f.ctx, c)
}

func (f *fixture) bountyMsg(base, bonus uint64, max uint32) *CreateBountyMsg {
	return &CreateBountyMsg{
		Title:           "fix the parser",
		Category:        3,
		Difficulty:      DifficultyIntermediate,
		RewardBase:      coin.NewCoin(base, "BNT"),
		BonusReward:     coin.NewCoin(bonus, "BNT"),
		MaxParticipants: max,
		Deadline:        bountyd.AsUnixTime(f.now.Add(time.Hour)),
	}
}

func (f *fixture) createBounty(t *testing.T, base, bonus uint64, max uint32) []byte {
	t.Helper()
	id, err := f.ledger.CreateBounty(f.as(f.creator), f.db, f.bountyMsg(base, bonus, max))
	assert.Nil(t, err)
	return id
}

// complete runs the bounty up to the approval of the alice submission.
func (f *fixture) complete(t *testing.T, id []byte, rating uint32, bonus bool) {
	t.Helper()
	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	assert.Nil(t, f.ledger.SubmitSolution(f.as(f.alice), f.db, &SubmitSolutionMsg{
		BountyID:   id,
		Content:    "patch",
		Milestones: []string{"tests", "fix"},
	}))
	assert.Nil(t, f.ledger.ApproveSubmission(f.as(f.creator), f.db, &ApproveSubmissionMsg{
		BountyID:   id,
		Rating:     rating,
		AwardBonus: bonus,
	}))
}

func (f *fixture) reimburse(ctx bountyd.Context, id []byte) error {
	b, err := f.ledger.Bounty(f.db, id)
	if err != nil {
		return err
	}
	return f.ledger.ReimburseWinner(ctx, f.db, &ReimburseWinnerMsg{
		BountyID:    id,
		EscrowID:    b.EscrowID,
		KeyID:       b.LockKeyID,
		ContainerID: b.ContainerID,
	})
}

func (f *fixture) balance(t *testing.T, addr bountyd.Address) uint64 {
	t.Helper()
	coins, err := f.wallets.Balance(f.db, addr)
	assert.Nil(t, err)
	return coins.Balance("BNT").Amount
}

func TestCreateBounty(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 1000, 200, 3)

	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, StatusOpen, b.Status)
	assert.Equal(t, f.creator.Address(), b.Creator)
	assert.Equal(t, uint64(8800), f.balance(t, f.creator.Address()))

	// the reward is held by the escrow of the bounty custody
	e, err := f.ledger.escrows.Escrow(f.db, b.EscrowID)
	assert.Nil(t, err)
	assert.Equal(t, CustodyCondition(id).Address(), e.Sender)
	assert.Equal(t, f.admin.Address(), e.Recipient)
	assert.Equal(t, b.LockKeyID, e.ExchangeKey)
	var held coin.Coin
	assert.Nil(t, e.Payload.Decode(&held))
	assert.Equal(t, coin.NewCoin(1200, "BNT"), held)

	p, err := f.ledger.Profile(f.db, f.creator.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), p.CreatedBounties)

	mine, err := f.ledger.BountiesByCreator(f.db, f.creator.Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(mine))

	assert.Equal(t, []string{"lock/sealed", "escrow/created", "bounty/created"},
		weavetest.EventTypes(f.events.Events())[3:])
}

func TestCreateBountyChecks(t *testing.T) {
	cases := map[string]struct {
		signer  func(*fixture) bountyd.Condition
		conf    func(*Configuration)
		msg     func(*CreateBountyMsg)
		wantErr *errors.Error
	}{
		"no profile": {
			signer:  func(f *fixture) bountyd.Condition { return f.admin },
			wantErr: errors.ErrNotFound,
		},
		"reputation too low": {
			conf:    func(c *Configuration) { c.MinReputation = 101 },
			wantErr: errors.ErrUnauthorized,
		},
		"zero reward": {
			msg:     func(m *CreateBountyMsg) { m.RewardBase = coin.NewCoin(0, "BNT") },
			wantErr: errors.ErrInvalidAmount,
		},
		"wrong currency": {
			msg:     func(m *CreateBountyMsg) { m.RewardBase = coin.NewCoin(10, "ETH") },
			wantErr: errors.ErrCurrency,
		},
		"deadline in the past": {
			msg:     func(m *CreateBountyMsg) { m.Deadline = bountyd.AsUnixTime(time.Now().Add(-time.Hour)) },
			wantErr: errors.ErrInput,
		},
		"category out of range": {
			msg:     func(m *CreateBountyMsg) { m.Category = 11 },
			wantErr: errors.ErrInput,
		},
		"unknown difficulty": {
			msg:     func(m *CreateBountyMsg) { m.Difficulty = 9 },
			wantErr: errors.ErrInput,
		},
		"too many participants": {
			msg:     func(m *CreateBountyMsg) { m.MaxParticipants = 6 },
			wantErr: errors.ErrInput,
		},
		"not enough funds": {
			msg:     func(m *CreateBountyMsg) { m.RewardBase = coin.NewCoin(9900, "BNT") },
			wantErr: errors.ErrInsufficientAmount,
		},
		"no bonus": {
			msg: func(m *CreateBountyMsg) { m.BonusReward = coin.Coin{} },
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			if tc.conf != nil {
				f.saveConf(t, tc.conf)
			}
			signer := f.creator
			if tc.signer != nil {
				signer = tc.signer(f)
			}
			msg := f.bountyMsg(1000, 200, 1)
			if tc.msg != nil {
				tc.msg(msg)
			}
			db := f.db.CacheWrap()
			_, err := f.ledger.CreateBounty(f.as(signer), db, msg)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestCreateProfileTwice(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.CreateProfile(f.as(f.alice), f.db, &CreateProfileMsg{DisplayName: "again"})
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.ErrKind(t, errors.ErrConflict, err)
}

func TestRewardWinnerWithBonus(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 1000, 200, 3)
	f.complete(t, id, 5, true)

	// approval moves no funds
	assert.Equal(t, uint64(0), f.balance(t, f.alice.Address()))

	// only the admin settles
	assert.IsErr(t, errors.ErrUnauthorized, f.reimburse(f.as(f.creator), id))
	assert.Nil(t, f.reimburse(f.as(f.admin), id))

	assert.Equal(t, uint64(1170), f.balance(t, f.alice.Address()))
	assert.Equal(t, uint64(8800), f.balance(t, f.creator.Address()))
	treasury, err := f.ledger.TreasuryBalance(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(30), treasury.Balance("BNT").Amount)

	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, StatusCompleted, b.Status)
	assert.Equal(t, true, b.Settled)
	assert.Equal(t, SubmissionApproved, b.Submissions[0].Status)
	assert.Equal(t, uint32(5), b.Submissions[0].FinalRating)

	p, err := f.ledger.Profile(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, []string{BadgeFirstBounty, BadgeExcellence}, p.Badges)
	assert.Equal(t, uint64(150), p.Reputation)
	assert.Equal(t, uint64(1170), p.TotalEarned)
	assert.Equal(t, float64(5), p.AverageRating())

	// the receipt ended with the bounty custody
	items, err := f.inv.ItemsOf(f.db, CustodyCondition(id).Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(items))
	var r Receipt
	assert.Nil(t, items[0].Payload.Decode(&r))
	assert.Equal(t, id, r.BountyID)

	// settlement happens once
	assert.IsErr(t, ErrSettled, f.reimburse(f.as(f.admin), id))
}

func TestRewardWinnerWithoutBonus(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 1000, 200, 3)
	f.complete(t, id, 3, false)
	assert.Nil(t, f.reimburse(f.as(f.admin), id))

	assert.Equal(t, uint64(975), f.balance(t, f.alice.Address()))
	assert.Equal(t, uint64(25), f.balance(t, TreasuryAddress))
	// unawarded bonus goes back
	assert.Equal(t, uint64(9000), f.balance(t, f.creator.Address()))
}

func TestReimburseConservesFunds(t *testing.T) {
	for _, bps := range []coin.BasisPoints{0, 1, 3, 250, 999, 1000} {
		f := newFixture(t)
		f.saveConf(t, func(c *Configuration) { c.FeeBps = bps })
		id := f.createBounty(t, 1001, 333, 3)
		f.complete(t, id, 4, true)
		assert.Nil(t, f.reimburse(f.as(f.admin), id))

		winner := f.balance(t, f.alice.Address())
		fee := f.balance(t, TreasuryAddress)
		if winner+fee != 1334 {
			t.Fatalf("%d bps: winner %d and fee %d do not add up", bps, winner, fee)
		}
		if want := uint64(1334) * uint64(bps) / 10000; fee != want {
			t.Fatalf("%d bps: want fee %d, got %d", bps, want, fee)
		}
	}
}

func TestReimburseChecks(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 1000, 0, 3)
	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	msg := &ReimburseWinnerMsg{BountyID: id, EscrowID: b.EscrowID, KeyID: b.LockKeyID, ContainerID: b.ContainerID}

	// not completed yet
	assert.IsErr(t, errors.ErrState, f.ledger.ReimburseWinner(f.as(f.admin), f.db, msg))

	f.complete(t, id, 4, false)

	wrongEscrow := *msg
	wrongEscrow.EscrowID = weavetest.SequenceID(99)
	err = f.ledger.ReimburseWinner(f.as(f.admin), f.db, &wrongEscrow)
	assert.IsErr(t, ErrEscrowMismatch, err)
	assert.ErrKind(t, errors.ErrConflict, err)

	wrongKey := *msg
	wrongKey.KeyID = weavetest.SequenceID(99)
	err = f.ledger.ReimburseWinner(f.as(f.admin), f.db, &wrongKey)
	assert.IsErr(t, ErrKeyMismatch, err)

	assert.Nil(t, f.ledger.ReimburseWinner(f.as(f.admin), f.db, msg))

	// the escrow is resolved only once
	err = f.ledger.ReimburseWinner(f.as(f.admin), f.db, msg)
	assert.IsErr(t, ErrSettled, err)
	assert.ErrKind(t, errors.ErrConflict, err)
	assert.Equal(t, uint64(1000), f.balance(t, f.alice.Address())+f.balance(t, TreasuryAddress))
}

func TestApplyParticipantCap(t *testing.T) {
	f := newFixture(t)

	// with a single place the second applicant is rejected
	id := f.createBounty(t, 100, 0, 1)
	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	err := f.ledger.Apply(f.as(f.bob), f.db, id)
	assert.IsErr(t, ErrMaxParticipants, err)
	assert.ErrKind(t, errors.ErrConflict, err)

	// no place at all
	closed := f.createBounty(t, 100, 0, 0)
	assert.IsErr(t, ErrMaxParticipants, f.ledger.Apply(f.as(f.alice), f.db, closed))
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 100, 0, 3)

	assert.IsErr(t, errors.ErrNotFound, f.ledger.Apply(f.as(f.alice), f.db, weavetest.SequenceID(42)))
	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.Apply(f.as(f.creator), f.db, id))
	assert.IsErr(t, errors.ErrNotFound, f.ledger.Apply(f.as(f.admin), f.db, id))

	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	assert.IsErr(t, ErrAlreadyApplied, f.ledger.Apply(f.as(f.alice), f.db, id))
	// the bounty is already assigned
	assert.IsErr(t, errors.ErrState, f.ledger.Apply(f.as(f.bob), f.db, id))

	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, StatusInProgress, b.Status)
	assert.Equal(t, f.alice.Address(), b.Assignee)

	mine, err := f.ledger.BountiesByAssignee(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(mine))
}

func TestApplyAfterDeadline(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 100, 0, 3)

	later, _ := weavetest.Context(f.now.Add(2 * time.Hour))
	err := f.ledger.Apply(f.auth.SetConditions(later, f.alice), f.db, id)
	assert.IsErr(t, errors.ErrExpired, err)
}

func TestSubmitSolution(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 100, 0, 3)
	msg := &SubmitSolutionMsg{BountyID: id, Content: "done"}

	// not assigned yet
	assert.IsErr(t, errors.ErrState, f.ledger.SubmitSolution(f.as(f.alice), f.db, msg))
	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.SubmitSolution(f.as(f.bob), f.db, msg))

	later, _ := weavetest.Context(f.now.Add(2 * time.Hour))
	assert.IsErr(t, errors.ErrExpired, f.ledger.SubmitSolution(f.auth.SetConditions(later, f.alice), f.db, msg))

	assert.Nil(t, f.ledger.SubmitSolution(f.as(f.alice), f.db, msg))
	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(b.Submissions))
	assert.Equal(t, SubmissionPending, b.Submissions[0].Status)
}

func TestReviewSubmission(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 100, 0, 3)
	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	assert.Nil(t, f.ledger.SubmitSolution(f.as(f.alice), f.db, &SubmitSolutionMsg{BountyID: id, Content: "draft"}))

	approve := &ApproveSubmissionMsg{BountyID: id, Rating: 4}
	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.ApproveSubmission(f.as(f.alice), f.db, approve))
	assert.IsErr(t, errors.ErrInput, f.ledger.ApproveSubmission(f.as(f.creator), f.db, &ApproveSubmissionMsg{BountyID: id, Rating: 6}))
	assert.IsErr(t, errors.ErrNotFound, f.ledger.ApproveSubmission(f.as(f.creator), f.db, &ApproveSubmissionMsg{BountyID: id, Rating: 4, SubmissionIndex: 1}))

	assert.Nil(t, f.ledger.RejectSubmission(f.as(f.creator), f.db, &RejectSubmissionMsg{
		BountyID:      id,
		Feedback:      "missing tests",
		NeedsRevision: true,
	}))
	// reviewed submissions cannot be approved
	assert.IsErr(t, errors.ErrState, f.ledger.ApproveSubmission(f.as(f.creator), f.db, approve))

	assert.Nil(t, f.ledger.SubmitSolution(f.as(f.alice), f.db, &SubmitSolutionMsg{BountyID: id, Content: "final"}))
	approve.SubmissionIndex = 1
	assert.Nil(t, f.ledger.ApproveSubmission(f.as(f.creator), f.db, approve))

	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, SubmissionNeedsRevision, b.Submissions[0].Status)
	assert.Equal(t, SubmissionApproved, b.Submissions[1].Status)
	assert.Equal(t, StatusCompleted, b.Status)

	// no way back
	assert.IsErr(t, errors.ErrState, f.ledger.ApproveSubmission(f.as(f.creator), f.db, approve))
	assert.IsErr(t, errors.ErrState, f.ledger.Apply(f.as(f.bob), f.db, id))
	assert.IsErr(t, errors.ErrState, f.ledger.CancelBounty(f.as(f.creator), f.db, &CancelBountyMsg{BountyID: id, EscrowID: b.EscrowID}))
}

func TestVeteranBadge(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < veteranCompletions; i++ {
		id := f.createBounty(t, 10, 0, 1)
		f.complete(t, id, 2, false)
	}
	p, err := f.ledger.Profile(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, []string{BadgeFirstBounty, BadgeVeteran}, p.Badges)
	assert.Equal(t, uint32(veteranCompletions), p.CompletedBounties)

	var earned int
	for _, e := range f.events.Events() {
		if e.Type == "bounty/badge_earned" {
			earned++
		}
	}
	assert.Equal(t, 2, earned)
}

func TestCancelBounty(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 1000, 200, 3)
	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	msg := &CancelBountyMsg{BountyID: id, EscrowID: b.EscrowID}

	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.CancelBounty(f.as(f.alice), f.db, msg))
	assert.IsErr(t, ErrEscrowMismatch, f.ledger.CancelBounty(f.as(f.creator), f.db, &CancelBountyMsg{BountyID: id, EscrowID: []byte("other")}))

	assert.Nil(t, f.ledger.CancelBounty(f.as(f.creator), f.db, msg))
	assert.Equal(t, uint64(10000), f.balance(t, f.creator.Address()))
	assert.Equal(t, uint64(0), f.balance(t, TreasuryAddress))

	b, err = f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, StatusCancelled, b.Status)
	_, err = f.ledger.escrows.Escrow(f.db, b.EscrowID)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.IsErr(t, errors.ErrState, f.ledger.CancelBounty(f.as(f.creator), f.db, msg))
}

func TestAdminCancelsAssignedBounty(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 500, 0, 3)
	assert.Nil(t, f.ledger.Apply(f.as(f.alice), f.db, id))
	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)

	assert.Nil(t, f.ledger.CancelBounty(f.as(f.admin), f.db, &CancelBountyMsg{BountyID: id, EscrowID: b.EscrowID}))
	assert.Equal(t, uint64(10000), f.balance(t, f.creator.Address()))
	assert.Equal(t, uint64(0), f.balance(t, f.alice.Address()))
}

func TestAdminOperations(t *testing.T) {
	f := newFixture(t)
	id := f.createBounty(t, 100, 0, 3)

	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.UpdatePlatformFee(f.as(f.creator), f.db, &UpdatePlatformFeeMsg{FeeBps: 10}))
	assert.IsErr(t, errors.ErrInput, f.ledger.UpdatePlatformFee(f.as(f.admin), f.db, &UpdatePlatformFeeMsg{FeeBps: 1001}))
	assert.Nil(t, f.ledger.UpdatePlatformFee(f.as(f.admin), f.db, &UpdatePlatformFeeMsg{FeeBps: 1000}))
	conf, err := f.ledger.Configuration(f.db)
	assert.Nil(t, err)
	assert.Equal(t, coin.BasisPoints(1000), conf.FeeBps)

	assert.IsErr(t, errors.ErrUnauthorized, f.ledger.FeatureBounty(f.as(f.alice), f.db, &FeatureBountyMsg{BountyID: id, Featured: true}))
	assert.Nil(t, f.ledger.FeatureBounty(f.as(f.admin), f.db, &FeatureBountyMsg{BountyID: id, Featured: true}))
	b, err := f.ledger.Bounty(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, b.Featured)

	assert.IsErr(t, errors.ErrNotFound, f.ledger.VerifyUser(f.as(f.admin), f.db, &VerifyUserMsg{User: f.admin.Address()}))
	assert.Nil(t, f.ledger.VerifyUser(f.as(f.admin), f.db, &VerifyUserMsg{User: f.bob.Address()}))
	p, err := f.ledger.Profile(f.db, f.bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, true, p.Verified)
}
