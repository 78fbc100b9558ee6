package sigs

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/weavetest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "mock", Serialized: payload}}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

func signedTx(msg bountyd.Msg) *StdTx {
	return &StdTx{Tx: weavetest.Tx{Msg: msg}}
}
