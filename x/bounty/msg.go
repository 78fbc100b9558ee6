package bounty

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/coin"
	"github.com/iov-one/bountyd/errors"
)

const (
	maxTitleLength       = 128
	maxDescriptionLength = 4096
	maxContentLength     = 8192
	maxFeedbackLength    = 1024
	maxNameLength        = 64
	maxMilestones        = 32
)

func validateID(name string, id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, name)
	}
	return nil
}

func validateLength(name, value string, max int) error {
	if len(value) > max {
		return errors.Wrapf(errors.ErrInput, "%s longer than %d", name, max)
	}
	return nil
}

// CreateProfileMsg registers the signer in the marketplace.
type CreateProfileMsg struct {
	DisplayName string
}

func (CreateProfileMsg) Path() string { return "bounty/create_profile" }

func (m *CreateProfileMsg) Validate() error {
	if m.DisplayName == "" {
		return errors.Wrap(errors.ErrEmpty, "display name")
	}
	return validateLength("display name", m.DisplayName, maxNameLength)
}

func (m *CreateProfileMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *CreateProfileMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// CreateBountyMsg posts a new bounty funded by the signer.
type CreateBountyMsg struct {
	Title           string
	Description     string
	Category        uint32
	Difficulty      Difficulty
	RewardBase      coin.Coin
	BonusReward     coin.Coin
	MaxParticipants uint32
	Deadline        bountyd.UnixTime
}

func (CreateBountyMsg) Path() string { return "bounty/create" }

func (m *CreateBountyMsg) Validate() error {
	if m.Title == "" {
		return errors.Wrap(errors.ErrEmpty, "title")
	}
	if err := validateLength("title", m.Title, maxTitleLength); err != nil {
		return err
	}
	if err := validateLength("description", m.Description, maxDescriptionLength); err != nil {
		return err
	}
	return m.Deadline.Validate()
}

func (m *CreateBountyMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *CreateBountyMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// ApplyMsg applies the signer for a bounty.
type ApplyMsg struct {
	BountyID []byte
}

func (ApplyMsg) Path() string { return "bounty/apply" }

func (m *ApplyMsg) Validate() error { return validateID("bounty id", m.BountyID) }

func (m *ApplyMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *ApplyMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// SubmitSolutionMsg submits the work of the assignee.
type SubmitSolutionMsg struct {
	BountyID   []byte
	Content    string
	Milestones []string
}

func (SubmitSolutionMsg) Path() string { return "bounty/submit" }

func (m *SubmitSolutionMsg) Validate() error {
	if err := validateID("bounty id", m.BountyID); err != nil {
		return err
	}
	if m.Content == "" {
		return errors.Wrap(errors.ErrEmpty, "content")
	}
	if err := validateLength("content", m.Content, maxContentLength); err != nil {
		return err
	}
	if len(m.Milestones) > maxMilestones {
		return errors.Wrapf(errors.ErrInput, "more than %d milestones", maxMilestones)
	}
	return nil
}

func (m *SubmitSolutionMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *SubmitSolutionMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// ApproveSubmissionMsg completes a bounty by approving a submission.
type ApproveSubmissionMsg struct {
	BountyID        []byte
	SubmissionIndex uint32
	Rating          uint32
	Feedback        string
	AwardBonus      bool
}

func (ApproveSubmissionMsg) Path() string { return "bounty/approve" }

func (m *ApproveSubmissionMsg) Validate() error {
	if err := validateID("bounty id", m.BountyID); err != nil {
		return err
	}
	return validateLength("feedback", m.Feedback, maxFeedbackLength)
}

func (m *ApproveSubmissionMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *ApproveSubmissionMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// RejectSubmissionMsg rejects a submission or asks for a revision.
type RejectSubmissionMsg struct {
	BountyID        []byte
	SubmissionIndex uint32
	Feedback        string
	NeedsRevision   bool
}

func (RejectSubmissionMsg) Path() string { return "bounty/reject" }

func (m *RejectSubmissionMsg) Validate() error {
	if err := validateID("bounty id", m.BountyID); err != nil {
		return err
	}
	return validateLength("feedback", m.Feedback, maxFeedbackLength)
}

func (m *RejectSubmissionMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *RejectSubmissionMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// ReimburseWinnerMsg settles a completed bounty.
type ReimburseWinnerMsg struct {
	BountyID    []byte
	EscrowID    []byte
	KeyID       []byte
	ContainerID []byte
}

func (ReimburseWinnerMsg) Path() string { return "bounty/reimburse" }

func (m *ReimburseWinnerMsg) Validate() error {
	if err := validateID("bounty id", m.BountyID); err != nil {
		return err
	}
	if err := validateID("escrow id", m.EscrowID); err != nil {
		return err
	}
	if err := validateID("key id", m.KeyID); err != nil {
		return err
	}
	return validateID("container id", m.ContainerID)
}

func (m *ReimburseWinnerMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *ReimburseWinnerMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// CancelBountyMsg cancels a bounty and refunds the creator.
type CancelBountyMsg struct {
	BountyID []byte
	EscrowID []byte
}

func (CancelBountyMsg) Path() string { return "bounty/cancel" }

func (m *CancelBountyMsg) Validate() error {
	if err := validateID("bounty id", m.BountyID); err != nil {
		return err
	}
	return validateID("escrow id", m.EscrowID)
}

func (m *CancelBountyMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *CancelBountyMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// UpdatePlatformFeeMsg changes the fee taken on settlement.
type UpdatePlatformFeeMsg struct {
	FeeBps coin.BasisPoints
}

func (UpdatePlatformFeeMsg) Path() string { return "bounty/update_fee" }

func (m *UpdatePlatformFeeMsg) Validate() error {
	if m.FeeBps > MaxFeeBps {
		return errors.Wrapf(errors.ErrInput, "fee must not exceed %d bps", MaxFeeBps)
	}
	return nil
}

func (m *UpdatePlatformFeeMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *UpdatePlatformFeeMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// FeatureBountyMsg marks a bounty as featured or removes the mark.
type FeatureBountyMsg struct {
	BountyID []byte
	Featured bool
}

func (FeatureBountyMsg) Path() string { return "bounty/feature" }

func (m *FeatureBountyMsg) Validate() error { return validateID("bounty id", m.BountyID) }

func (m *FeatureBountyMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *FeatureBountyMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

// VerifyUserMsg marks a profile as verified.
type VerifyUserMsg struct {
	User bountyd.Address
}

func (VerifyUserMsg) Path() string { return "bounty/verify_user" }

func (m *VerifyUserMsg) Validate() error { return errors.Wrap(m.User.Validate(), "user") }

func (m *VerifyUserMsg) Marshal() ([]byte, error)   { return codec.Marshal(m) }
func (m *VerifyUserMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, m) }

var (
	_ bountyd.Msg = (*CreateProfileMsg)(nil)
	_ bountyd.Msg = (*CreateBountyMsg)(nil)
	_ bountyd.Msg = (*ApplyMsg)(nil)
	_ bountyd.Msg = (*SubmitSolutionMsg)(nil)
	_ bountyd.Msg = (*ApproveSubmissionMsg)(nil)
	_ bountyd.Msg = (*RejectSubmissionMsg)(nil)
	_ bountyd.Msg = (*ReimburseWinnerMsg)(nil)
	_ bountyd.Msg = (*CancelBountyMsg)(nil)
	_ bountyd.Msg = (*UpdatePlatformFeeMsg)(nil)
	_ bountyd.Msg = (*FeatureBountyMsg)(nil)
	_ bountyd.Msg = (*VerifyUserMsg)(nil)
)
