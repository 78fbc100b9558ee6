package bountyapp

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/x/sigs"
)

// Tx is the transaction envelope accepted by the bountyd application. The
// message is kept in its serialized form together with its path, so that
// the envelope does not need to know every message type.
type Tx struct {
	MsgPath    string
	Msg        []byte
	Signatures []*sigs.StdSignature
}

var _ bountyd.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg bountyd.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return &Tx{MsgPath: msg.Path(), Msg: raw}, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (bountyd.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg decodes the message using the type registered for its path.
func (tx *Tx) GetMsg() (bountyd.Msg, error) {
	msg, err := NewMsg(tx.MsgPath)
	if err != nil {
		return nil, err
	}
	if err := msg.Unmarshal(tx.Msg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", tx.MsgPath)
	}
	return msg, nil
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{MsgPath: tx.MsgPath, Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

func (tx *Tx) Marshal() ([]byte, error)   { return codec.Marshal(tx) }
func (tx *Tx) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, tx) }
