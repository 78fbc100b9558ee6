package bounty

import (
	"fmt"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/orm"
)

// Status of a bounty.
type Status int32

const (
	StatusOpen Status = iota + 1
	StatusInProgress
	StatusCompleted
	StatusCancelled
	// StatusExpired is declared for clients. Deadlines are passive guards
	// and no transition enters this state.
	StatusExpired
)

var statusNames = map[Status]string{
	StatusOpen:       "OPEN",
	StatusInProgress: "IN_PROGRESS",
	StatusCompleted:  "COMPLETED",
	StatusCancelled:  "CANCELLED",
	StatusExpired:    "EXPIRED",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// SubmissionStatus is the review state of a submission.
type SubmissionStatus int32

const (
	SubmissionPending SubmissionStatus = iota + 1
	SubmissionApproved
	SubmissionRejected
	SubmissionNeedsRevision
)

var submissionStatusNames = map[SubmissionStatus]string{
	SubmissionPending:       "PENDING",
	SubmissionApproved:      "APPROVED",
	SubmissionRejected:      "REJECTED",
	SubmissionNeedsRevision: "NEEDS_REVISION",
}

func (s SubmissionStatus) String() string {
	if n, ok := submissionStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SubmissionStatus(%d)", int32(s))
}

// Difficulty of a bounty.
type Difficulty uint32

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyIntermediate
	DifficultyAdvanced
	DifficultyExpert
)

func (d Difficulty) Validate() error {
	if d < DifficultyBeginner || d > DifficultyExpert {
		return errors.Wrapf(errors.ErrInput, "unknown difficulty %d", d)
	}
	return nil
}

// Badges granted to winners.
const (
	BadgeFirstBounty = "FIRST_BOUNTY"
	BadgeExcellence  = "EXCELLENCE"
	BadgeVeteran     = "VETERAN"
)

// veteranCompletions is the number of completed bounties that earns the
// veteran badge.
const veteranCompletions = 10

// Milestone is a part of a submitted solution.
type Milestone struct {
	Description string
	Completed   bool
}

// Submission is a solution submitted by the assignee.
type Submission struct {
	Submitter  bountyd.Address
	Content    string
	Milestones []Milestone
	Status     SubmissionStatus
	// FinalRating is set only on approval.
	FinalRating uint32
	Feedback    string
	SubmittedAt bountyd.UnixTime
}

// Bounty is a reward backed task.
type Bounty struct {
	ID              []byte
	Creator         bountyd.Address
	Title           string
	Description     string
	Category        uint32
	Difficulty      Difficulty
	RewardBase      coin.Coin
	BonusReward     coin.Coin
	Status          Status
	Participants    []bountyd.Address
	MaxParticipants uint32
	Assignee        bountyd.Address
	Deadline        bountyd.UnixTime
	Submissions     []Submission
	EscrowID        []byte
	LockKeyID       []byte
	ContainerID     []byte
	BonusAwarded    bool
	Featured        bool
	Settled         bool
	CreatedAt       bountyd.UnixTime
	CompletedAt     bountyd.UnixTime
}

var _ orm.Model = (*Bounty)(nil)

func (b *Bounty) Marshal() ([]byte, error)   { return codec.Marshal(b) }
func (b *Bounty) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, b) }

func (b *Bounty) Validate() error {
	if len(b.ID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "id")
	}
	if err := b.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if !b.RewardBase.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "reward")
	}
	if !b.BonusReward.SameType(b.RewardBase) {
		return errors.Wrap(errors.ErrCurrency, "bonus and reward currency differ")
	}
	if _, ok := statusNames[b.Status]; !ok {
		return errors.Wrapf(errors.ErrState, "status %d", b.Status)
	}
	if b.Assignee != nil {
		if err := b.Assignee.Validate(); err != nil {
			return errors.Wrap(err, "assignee")
		}
	}
	if len(b.EscrowID) == 0 || len(b.LockKeyID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "custody references")
	}
	return nil
}

// Total is the amount placed into the escrow at creation.
func (b *Bounty) Total() (coin.Coin, error) {
	return b.RewardBase.Add(b.BonusReward)
}

// HasParticipant returns true if given address applied to the bounty.
func (b *Bounty) HasParticipant(addr bountyd.Address) bool {
	for _, p := range b.Participants {
		if p.Equals(addr) {
			return true
		}
	}
	return false
}

// UserProfile is the marketplace record of an address.
type UserProfile struct {
	Address           bountyd.Address
	DisplayName       string
	Reputation        uint64
	CompletedBounties uint32
	CreatedBounties   uint32
	RatingSum         uint64
	RatingCount       uint32
	TotalEarned       uint64
	Badges            []string
	Verified          bool
	CreatedAt         bountyd.UnixTime
}

var _ orm.Model = (*UserProfile)(nil)

func (p *UserProfile) Marshal() ([]byte, error)   { return codec.Marshal(p) }
func (p *UserProfile) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, p) }

func (p *UserProfile) Validate() error {
	return errors.Wrap(p.Address.Validate(), "address")
}

// HasBadge returns true if the badge was already granted.
func (p *UserProfile) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// AverageRating returns the mean of all final ratings, or zero.
func (p *UserProfile) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}

// Dispute describes a disagreement raised about a bounty. It is only a
// record format and no operation processes it.
type Dispute struct {
	BountyID  []byte
	Raiser    bountyd.Address
	Reason    string
	CreatedAt bountyd.UnixTime
}

func (d *Dispute) Marshal() ([]byte, error)   { return codec.Marshal(d) }
func (d *Dispute) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, d) }

func (d *Dispute) Validate() error {
	if len(d.BountyID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "bounty id")
	}
	if err := d.Raiser.Validate(); err != nil {
		return errors.Wrap(err, "raiser")
	}
	if d.Reason == "" {
		return errors.Wrap(errors.ErrEmpty, "reason")
	}
	return d.CreatedAt.Validate()
}

// ReceiptAssetType is the asset type of Receipt.
const ReceiptAssetType = "bounty/receipt"

// Receipt is the asset the admin exchanges for the reward of a bounty.
type Receipt struct {
	BountyID []byte
}

func (r *Receipt) AssetType() string          { return ReceiptAssetType }
func (r *Receipt) Marshal() ([]byte, error)   { return codec.Marshal(r) }
func (r *Receipt) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, r) }

func creatorIndexer(obj orm.Model) ([][]byte, error) {
	b, ok := obj.(*Bounty)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
	return [][]byte{b.Creator}, nil
}

func assigneeIndexer(obj orm.Model) ([][]byte, error) {
	b, ok := obj.(*Bounty)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj)
	}
	if b.Assignee == nil {
		return nil, nil
	}
	return [][]byte{b.Assignee}, nil
}

// NewBountyBucket returns the bucket of all bounties, indexed by creator and
// assignee.
func NewBountyBucket() *orm.ModelBucket {
	return orm.NewModelBucket("bounty", &Bounty{},
		orm.WithIndex("creator", creatorIndexer, false),
		orm.WithIndex("assignee", assigneeIndexer, false),
	)
}

// NewProfileBucket returns the bucket of all profiles, stored under the
// profile address.
func NewProfileBucket() *orm.ModelBucket {
	return orm.NewModelBucket("profile", &UserProfile{})
}
