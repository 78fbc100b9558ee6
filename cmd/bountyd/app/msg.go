package bountyapp

import (
	"encoding/json"
	"sort"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x/bounty"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/escrow"
	"github.com/iov-one/bountyd/x/lock"
	"github.com/iov-one/bountyd/x/sigs"
)

// msgTypes maps every routed path to a constructor of its message.
var msgTypes = map[string]func() bountyd.Msg{}

func register(fns ...func() bountyd.Msg) {
	for _, fn := range fns {
		path := fn().Path()
		if _, ok := msgTypes[path]; ok {
			panic("message registered twice: " + path)
		}
		msgTypes[path] = fn
	}
}

func init() {
	register(
		func() bountyd.Msg { return &sigs.BumpSequenceMsg{} },
		func() bountyd.Msg { return &cash.SendMsg{} },
		func() bountyd.Msg { return &lock.SealCoinsMsg{} },
		func() bountyd.Msg { return &lock.OpenMsg{} },
		func() bountyd.Msg { return &lock.TransferMsg{} },
		func() bountyd.Msg { return &escrow.CreateCoinsMsg{} },
		func() bountyd.Msg { return &escrow.SwapMsg{} },
		func() bountyd.Msg { return &escrow.ReturnMsg{} },
		func() bountyd.Msg { return &bounty.CreateProfileMsg{} },
		func() bountyd.Msg { return &bounty.CreateBountyMsg{} },
		func() bountyd.Msg { return &bounty.ApplyMsg{} },
		func() bountyd.Msg { return &bounty.SubmitSolutionMsg{} },
		func() bountyd.Msg { return &bounty.ApproveSubmissionMsg{} },
		func() bountyd.Msg { return &bounty.RejectSubmissionMsg{} },
		func() bountyd.Msg { return &bounty.ReimburseWinnerMsg{} },
		func() bountyd.Msg { return &bounty.CancelBountyMsg{} },
		func() bountyd.Msg { return &bounty.UpdatePlatformFeeMsg{} },
		func() bountyd.Msg { return &bounty.FeatureBountyMsg{} },
		func() bountyd.Msg { return &bounty.VerifyUserMsg{} },
	)
}

// NewMsg returns an empty message of the type registered for given path.
func NewMsg(path string) (bountyd.Msg, error) {
	fn, ok := msgTypes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "unknown message path %q", path)
	}
	return fn(), nil
}

// MsgPaths returns all known message paths in alphabetical order.
func MsgPaths() []string {
	paths := make([]string, 0, len(msgTypes))
	for p := range msgTypes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// DecodeJSONMsg builds a message of given path from its JSON form. The
// message is validated.
func DecodeJSONMsg(path string, raw json.RawMessage) (bountyd.Msg, error) {
	msg, err := NewMsg(path)
	if err != nil {
		return nil, err
	}
	if len(raw) != 0 {
		if err := json.Unmarshal(raw, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "decode %s: %s", path, err)
		}
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return msg, nil
}
