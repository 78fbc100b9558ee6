package bounty

import (
	"bytes"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/gconf"
	"github.com/iov-one/bountyd/orm"
	"github.com/iov-one/bountyd/x"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/escrow"
	"github.com/iov-one/bountyd/x/lock"
)

// Ledger drives the bounty lifecycle and the custody of every reward.
//
// The reward of a bounty is held in an escrow created from the bounty
// custody address. Its recipient is the admin, who is also given the
// sealed receipt of the bounty. Settlement swaps the receipt for the
// escrowed reward, cancellation returns the reward to the custody and from
// there to the creator.
type Ledger struct {
	auth     x.Authenticator
	wallets  cash.Controller
	locks    lock.Controller
	escrows  escrow.Controller
	bounties *orm.ModelBucket
	profiles *orm.ModelBucket
	seq      orm.Sequence
}

// NewLedger returns a ledger identifying callers with auth. Coins are moved
// with wallets and the assets released from custody are handed over with
// deliver.
func NewLedger(auth x.Authenticator, wallets cash.Controller, deliver lock.Deliverer) *Ledger {
	// Custody objects live apart from the ones reachable through the
	// lock and escrow routes. Only the ledger can resolve them.
	custody := x.ChainAuth(auth, CustodyAuth{})
	locks := lock.NewController(custody, lock.WithNamespace("bounty"))
	return &Ledger{
		auth:     auth,
		wallets:  wallets,
		locks:    locks,
		escrows:  escrow.NewController(custody, locks, deliver, escrow.WithBucket("bounty_esc")),
		bounties: NewBountyBucket(),
		profiles: NewProfileBucket(),
		seq:      orm.NewSequence("bounty", "id"),
	}
}

// caller returns the address of the main signer.
func (l *Ledger) caller(ctx bountyd.Context) (bountyd.Address, error) {
	signer := x.MainSigner(ctx, l.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signer.Address(), nil
}

// admin returns the configuration if the caller is the platform admin.
func (l *Ledger) admin(ctx bountyd.Context, db bountyd.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !l.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin only")
	}
	return conf, nil
}

// CreateProfile registers the caller with the starting reputation.
func (l *Ledger) CreateProfile(ctx bountyd.Context, db bountyd.KVStore, msg *CreateProfileMsg) (*UserProfile, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	addr, err := l.caller(ctx)
	if err != nil {
		return nil, err
	}
	if l.profiles.Has(db, addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "profile %s", addr)
	}
	p := &UserProfile{
		Address:     addr,
		DisplayName: msg.DisplayName,
		Reputation:  conf.StartingReputation,
		CreatedAt:   bountyd.Now(ctx),
	}
	if err := l.profiles.Put(db, addr, p); err != nil {
		return nil, errors.Wrap(err, "save profile")
	}
	bountyd.Emit(ctx, "bounty/profile_created", "address", addr)
	return p, nil
}

// CreateBounty moves the reward of the caller into custody and opens a new
// bounty. The id of the bounty is returned.
func (l *Ledger) CreateBounty(ctx bountyd.Context, db bountyd.KVStore, msg *CreateBountyMsg) ([]byte, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	creator, err := l.caller(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := l.Profile(db, creator)
	if err != nil {
		return nil, err
	}
	if profile.Reputation < conf.MinReputation {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "reputation %d below %d", profile.Reputation, conf.MinReputation)
	}

	base, bonus := msg.RewardBase, msg.BonusReward
	if !base.IsPositive() {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "reward must be positive")
	}
	if base.Ticker != conf.Ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "reward must be paid in %s", conf.Ticker)
	}
	if bonus.IsZero() {
		bonus = coin.NewCoin(0, base.Ticker)
	}
	if !bonus.SameType(base) {
		return nil, errors.Wrap(errors.ErrCurrency, "bonus and reward currency differ")
	}
	total, err := base.Add(bonus)
	if err != nil {
		return nil, err
	}
	if !bountyd.InTheFuture(ctx, msg.Deadline) {
		return nil, errors.Wrap(errors.ErrInput, "deadline must be in the future")
	}
	if msg.Category > conf.MaxCategory {
		return nil, errors.Wrapf(errors.ErrInput, "category %d above %d", msg.Category, conf.MaxCategory)
	}
	if err := msg.Difficulty.Validate(); err != nil {
		return nil, err
	}
	if msg.MaxParticipants > conf.MaxParticipants {
		return nil, errors.Wrapf(errors.ErrInput, "max participants %d above %d", msg.MaxParticipants, conf.MaxParticipants)
	}

	id, err := l.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "bounty id")
	}
	if err := l.wallets.Debit(db, creator, total); err != nil {
		return nil, errors.Wrap(err, "fund reward")
	}

	custody := withCustody(ctx, id)
	containerID, keyID, err := l.locks.Seal(custody, db, conf.Admin, &Receipt{BountyID: id})
	if err != nil {
		return nil, errors.Wrap(err, "seal receipt")
	}
	escrowID, err := l.escrows.Create(custody, db, CustodyCondition(id).Address(), &total, keyID, conf.Admin)
	if err != nil {
		return nil, errors.Wrap(err, "create escrow")
	}

	b := &Bounty{
		ID:              id,
		Creator:         creator,
		Title:           msg.Title,
		Description:     msg.Description,
		Category:        msg.Category,
		Difficulty:      msg.Difficulty,
		RewardBase:      base,
		BonusReward:     bonus,
		Status:          StatusOpen,
		MaxParticipants: msg.MaxParticipants,
		Deadline:        msg.Deadline,
		EscrowID:        escrowID,
		LockKeyID:       keyID,
		ContainerID:     containerID,
		CreatedAt:       bountyd.Now(ctx),
	}
	if err := l.bounties.Put(db, id, b); err != nil {
		return nil, errors.Wrap(err, "save bounty")
	}
	profile.CreatedBounties++
	if err := l.profiles.Put(db, creator, profile); err != nil {
		return nil, errors.Wrap(err, "save profile")
	}

	bountyd.Emit(ctx, "bounty/created",
		"bounty_id", id,
		"creator", creator,
		"reward", total,
		"escrow_id", escrowID)
	return id, nil
}

// Apply adds the caller to the participants of an open bounty. The first
// applicant is assigned the bounty.
func (l *Ledger) Apply(ctx bountyd.Context, db bountyd.KVStore, bountyID []byte) error {
	b, err := l.Bounty(db, bountyID)
	if err != nil {
		return err
	}
	applicant, err := l.caller(ctx)
	if err != nil {
		return err
	}
	if applicant.Equals(b.Creator) {
		return errors.Wrap(errors.ErrUnauthorized, "creator cannot apply")
	}
	if !l.profiles.Has(db, applicant) {
		return errors.Wrapf(errors.ErrNotFound, "profile %s", applicant)
	}
	if uint32(len(b.Participants)) >= b.MaxParticipants {
		return errors.Wrapf(ErrMaxParticipants, "limit %d", b.MaxParticipants)
	}
	if b.HasParticipant(applicant) {
		return errors.Wrapf(ErrAlreadyApplied, "%s", applicant)
	}
	if bountyd.IsExpired(ctx, b.Deadline) {
		return errors.Wrapf(errors.ErrExpired, "deadline %s", b.Deadline)
	}
	if b.Status != StatusOpen {
		return errors.Wrapf(errors.ErrState, "bounty is %s", b.Status)
	}

	b.Participants = append(b.Participants, applicant)
	assigned := b.Assignee == nil
	if assigned {
		b.Assignee = applicant
		b.Status = StatusInProgress
	}
	if err := l.bounties.Put(db, bountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}

	bountyd.Emit(ctx, "bounty/applied", "bounty_id", bountyID, "applicant", applicant)
	if assigned {
		bountyd.Emit(ctx, "bounty/assigned", "bounty_id", bountyID, "assignee", applicant)
	}
	return nil
}

// SubmitSolution records the work of the assignee for review.
func (l *Ledger) SubmitSolution(ctx bountyd.Context, db bountyd.KVStore, msg *SubmitSolutionMsg) error {
	b, err := l.Bounty(db, msg.BountyID)
	if err != nil {
		return err
	}
	if b.Status != StatusInProgress {
		return errors.Wrapf(errors.ErrState, "bounty is %s", b.Status)
	}
	if !l.auth.HasAddress(ctx, b.Assignee) {
		return errors.Wrap(errors.ErrUnauthorized, "assignee only")
	}
	if bountyd.IsExpired(ctx, b.Deadline) {
		return errors.Wrapf(errors.ErrExpired, "deadline %s", b.Deadline)
	}

	milestones := make([]Milestone, len(msg.Milestones))
	for i, d := range msg.Milestones {
		milestones[i] = Milestone{Description: d, Completed: true}
	}
	b.Submissions = append(b.Submissions, Submission{
		Submitter:   b.Assignee,
		Content:     msg.Content,
		Milestones:  milestones,
		Status:      SubmissionPending,
		SubmittedAt: bountyd.Now(ctx),
	})
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	bountyd.Emit(ctx, "bounty/submitted",
		"bounty_id", msg.BountyID,
		"submitter", b.Assignee,
		"index", len(b.Submissions)-1)
	return nil
}

// underReview returns the bounty if the caller is its creator and the work
// is in progress.
func (l *Ledger) underReview(ctx bountyd.Context, db bountyd.ReadOnlyKVStore, bountyID []byte) (*Bounty, error) {
	b, err := l.Bounty(db, bountyID)
	if err != nil {
		return nil, err
	}
	if !l.auth.HasAddress(ctx, b.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "creator only")
	}
	if b.Status != StatusInProgress {
		return nil, errors.Wrapf(errors.ErrState, "bounty is %s", b.Status)
	}
	return b, nil
}

func pendingSubmission(b *Bounty, index uint32) (*Submission, error) {
	if int(index) >= len(b.Submissions) {
		return nil, errors.Wrapf(errors.ErrNotFound, "submission %d", index)
	}
	s := &b.Submissions[index]
	if s.Status != SubmissionPending {
		return nil, errors.Wrapf(errors.ErrState, "submission is %s", s.Status)
	}
	return s, nil
}

// ApproveSubmission completes the bounty and rewards the reputation of the
// winner. No funds are moved until the admin settles the bounty.
func (l *Ledger) ApproveSubmission(ctx bountyd.Context, db bountyd.KVStore, msg *ApproveSubmissionMsg) error {
	b, err := l.underReview(ctx, db, msg.BountyID)
	if err != nil {
		return err
	}
	if msg.Rating < 1 || msg.Rating > 5 {
		return errors.Wrapf(errors.ErrInput, "rating %d not in [1, 5]", msg.Rating)
	}
	s, err := pendingSubmission(b, msg.SubmissionIndex)
	if err != nil {
		return err
	}
	s.Status = SubmissionApproved
	s.FinalRating = msg.Rating
	s.Feedback = msg.Feedback
	b.BonusAwarded = msg.AwardBonus
	b.Status = StatusCompleted
	b.CompletedAt = bountyd.Now(ctx)
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}

	winner, err := l.Profile(db, s.Submitter)
	if err != nil {
		return err
	}
	winner.Reputation += uint64(msg.Rating) * 10
	winner.CompletedBounties++
	winner.RatingSum += uint64(msg.Rating)
	winner.RatingCount++
	var earned []string
	grant := func(badge string, ok bool) {
		if ok && !winner.HasBadge(badge) {
			winner.Badges = append(winner.Badges, badge)
			earned = append(earned, badge)
		}
	}
	grant(BadgeFirstBounty, winner.CompletedBounties == 1)
	grant(BadgeExcellence, msg.Rating == 5)
	grant(BadgeVeteran, winner.CompletedBounties >= veteranCompletions)
	if err := l.profiles.Put(db, winner.Address, winner); err != nil {
		return errors.Wrap(err, "save profile")
	}

	bountyd.Emit(ctx, "bounty/completed",
		"bounty_id", msg.BountyID,
		"winner", winner.Address,
		"rating", msg.Rating,
		"bonus_awarded", msg.AwardBonus)
	for _, badge := range earned {
		bountyd.Emit(ctx, "bounty/badge_earned", "address", winner.Address, "badge", badge)
	}
	return nil
}

// RejectSubmission refuses a pending submission. The assignee can submit
// again while the bounty is in progress.
func (l *Ledger) RejectSubmission(ctx bountyd.Context, db bountyd.KVStore, msg *RejectSubmissionMsg) error {
	b, err := l.underReview(ctx, db, msg.BountyID)
	if err != nil {
		return err
	}
	s, err := pendingSubmission(b, msg.SubmissionIndex)
	if err != nil {
		return err
	}
	s.Status = SubmissionRejected
	if msg.NeedsRevision {
		s.Status = SubmissionNeedsRevision
	}
	s.Feedback = msg.Feedback
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	bountyd.Emit(ctx, "bounty/rejected",
		"bounty_id", msg.BountyID,
		"index", msg.SubmissionIndex,
		"status", s.Status)
	return nil
}

// ReimburseWinner settles a completed bounty. The admin swaps the receipt
// for the escrowed reward, which is split between the treasury, the winner
// and, for an unawarded bonus, the creator.
func (l *Ledger) ReimburseWinner(ctx bountyd.Context, db bountyd.KVStore, msg *ReimburseWinnerMsg) error {
	conf, err := l.admin(ctx, db)
	if err != nil {
		return err
	}
	b, err := l.Bounty(db, msg.BountyID)
	if err != nil {
		return err
	}
	if b.Status != StatusCompleted {
		return errors.Wrapf(errors.ErrState, "bounty is %s", b.Status)
	}
	if b.Settled {
		return errors.Wrapf(ErrSettled, "bounty %X", msg.BountyID)
	}
	if !bytes.Equal(b.EscrowID, msg.EscrowID) {
		return errors.Wrapf(ErrEscrowMismatch, "bounty %X", msg.BountyID)
	}
	if !bytes.Equal(b.LockKeyID, msg.KeyID) {
		return errors.Wrapf(ErrKeyMismatch, "bounty %X", msg.BountyID)
	}

	var held coin.Coin
	if err := l.escrows.Swap(ctx, db, msg.EscrowID, msg.KeyID, msg.ContainerID, &held); err != nil {
		return errors.Wrap(err, "swap")
	}
	total := b.RewardBase
	if b.BonusAwarded {
		if total, err = b.Total(); err != nil {
			return err
		}
	}
	refund, err := held.Subtract(total)
	if err != nil {
		return errors.Wrap(err, "escrowed reward")
	}
	fee, prize, err := total.SplitFee(conf.FeeBps)
	if err != nil {
		return err
	}
	if err := l.wallets.Credit(db, TreasuryAddress, fee); err != nil {
		return errors.Wrap(err, "treasury")
	}
	if err := l.wallets.Credit(db, b.Assignee, prize); err != nil {
		return errors.Wrap(err, "winner")
	}
	if err := l.wallets.Credit(db, b.Creator, refund); err != nil {
		return errors.Wrap(err, "refund")
	}

	winner, err := l.Profile(db, b.Assignee)
	if err != nil {
		return err
	}
	winner.TotalEarned += prize.Amount
	if err := l.profiles.Put(db, winner.Address, winner); err != nil {
		return errors.Wrap(err, "save profile")
	}
	b.Settled = true
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}

	bountyd.Emit(ctx, "bounty/reimbursed",
		"bounty_id", msg.BountyID,
		"winner", b.Assignee,
		"amount", prize,
		"fee", fee,
		"refund", refund)
	return nil
}

// CancelBounty returns the whole reward to the creator. No fee is taken.
func (l *Ledger) CancelBounty(ctx bountyd.Context, db bountyd.KVStore, msg *CancelBountyMsg) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	b, err := l.Bounty(db, msg.BountyID)
	if err != nil {
		return err
	}
	if !l.auth.HasAddress(ctx, b.Creator) && !l.auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "creator or admin only")
	}
	if b.Status != StatusOpen && b.Status != StatusInProgress {
		return errors.Wrapf(errors.ErrState, "bounty is %s", b.Status)
	}
	if !bytes.Equal(b.EscrowID, msg.EscrowID) {
		return errors.Wrapf(ErrEscrowMismatch, "bounty %X", msg.BountyID)
	}

	b.Status = StatusCancelled
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	var held coin.Coin
	if err := l.escrows.ReturnToSender(withCustody(ctx, msg.BountyID), db, msg.EscrowID, &held); err != nil {
		return errors.Wrap(err, "return reward")
	}
	if err := l.wallets.Credit(db, b.Creator, held); err != nil {
		return errors.Wrap(err, "refund")
	}
	bountyd.Emit(ctx, "bounty/cancelled",
		"bounty_id", msg.BountyID,
		"creator", b.Creator,
		"refund", held)
	return nil
}

// UpdatePlatformFee changes the fee taken from future settlements.
func (l *Ledger) UpdatePlatformFee(ctx bountyd.Context, db bountyd.KVStore, msg *UpdatePlatformFeeMsg) error {
	conf, err := l.admin(ctx, db)
	if err != nil {
		return err
	}
	if msg.FeeBps > MaxFeeBps {
		return errors.Wrapf(errors.ErrInput, "fee must not exceed %d bps", MaxFeeBps)
	}
	conf.FeeBps = msg.FeeBps
	if err := gconf.Save(db, packageName, conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	bountyd.Emit(ctx, "bounty/fee_updated", "fee_bps", msg.FeeBps)
	return nil
}

// FeatureBounty sets the featured mark of a bounty.
func (l *Ledger) FeatureBounty(ctx bountyd.Context, db bountyd.KVStore, msg *FeatureBountyMsg) error {
	if _, err := l.admin(ctx, db); err != nil {
		return err
	}
	b, err := l.Bounty(db, msg.BountyID)
	if err != nil {
		return err
	}
	b.Featured = msg.Featured
	if err := l.bounties.Put(db, msg.BountyID, b); err != nil {
		return errors.Wrap(err, "save bounty")
	}
	bountyd.Emit(ctx, "bounty/featured", "bounty_id", msg.BountyID, "featured", msg.Featured)
	return nil
}

// VerifyUser marks the profile of a user as verified.
func (l *Ledger) VerifyUser(ctx bountyd.Context, db bountyd.KVStore, msg *VerifyUserMsg) error {
	if _, err := l.admin(ctx, db); err != nil {
		return err
	}
	p, err := l.Profile(db, msg.User)
	if err != nil {
		return err
	}
	p.Verified = true
	if err := l.profiles.Put(db, p.Address, p); err != nil {
		return errors.Wrap(err, "save profile")
	}
	bountyd.Emit(ctx, "bounty/user_verified", "address", p.Address)
	return nil
}

// Bounty returns the bounty with given id.
func (l *Ledger) Bounty(db bountyd.ReadOnlyKVStore, bountyID []byte) (*Bounty, error) {
	var b Bounty
	if err := l.bounties.One(db, bountyID, &b); err != nil {
		return nil, errors.Wrap(err, "bounty")
	}
	return &b, nil
}

// Profile returns the profile of given address.
func (l *Ledger) Profile(db bountyd.ReadOnlyKVStore, addr bountyd.Address) (*UserProfile, error) {
	var p UserProfile
	if err := l.profiles.One(db, addr, &p); err != nil {
		return nil, errors.Wrap(err, "profile")
	}
	return &p, nil
}

// Configuration returns the current configuration.
func (l *Ledger) Configuration(db bountyd.ReadOnlyKVStore) (*Configuration, error) {
	return loadConf(db)
}

// TreasuryBalance returns all fees collected so far.
func (l *Ledger) TreasuryBalance(db bountyd.ReadOnlyKVStore) (coin.Coins, error) {
	return l.wallets.Balance(db, TreasuryAddress)
}

// BountiesByCreator returns all bounties created by given address.
func (l *Ledger) BountiesByCreator(db bountyd.ReadOnlyKVStore, creator bountyd.Address) ([]*Bounty, error) {
	return l.byIndex(db, "creator", creator)
}

// BountiesByAssignee returns all bounties assigned to given address.
func (l *Ledger) BountiesByAssignee(db bountyd.ReadOnlyKVStore, assignee bountyd.Address) ([]*Bounty, error) {
	return l.byIndex(db, "assignee", assignee)
}

func (l *Ledger) byIndex(db bountyd.ReadOnlyKVStore, index string, value []byte) ([]*Bounty, error) {
	keys, err := l.bounties.ByIndex(db, index, value)
	if err != nil {
		return nil, err
	}
	res := make([]*Bounty, 0, len(keys))
	for _, k := range keys {
		b, err := l.Bounty(db, k)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, nil
}
