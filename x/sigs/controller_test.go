package sigs

import (
	"testing"

	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store"
	"github.com/iov-one/bountyd/weavetest"
	"github.com/iov-one/bountyd/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("foo"), "my-chain", 1)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("foo"), "my-chain", 2)
	require.NoError(t, err)
	c, err := BuildSignBytes([]byte("foo"), "other-chain", 1)
	require.NoError(t, err)
	assert.Equal(t, 64, len(a))
	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)

	_, err = BuildSignBytes([]byte("foo"), "my-chain", -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("foo"), "x", 1)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain-1"
	db := store.MemStore()
	key := weavetest.NewKey()
	other := weavetest.NewKey()

	tx := NewStdTx([]byte("payload"))

	sig0, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	otherSig, err := SignTx(other, tx, chainID, 0)
	require.NoError(t, err)

	bz, err := tx.GetSignBytes()
	require.NoError(t, err)

	// sequence must start at zero
	_, err = VerifySignature(db, sig1, bz, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// wrong chain id
	_, err = VerifySignature(db, sig0, bz, "wrong-chain")
	assert.IsErr(t, errors.ErrUnauthorized, err)

	cond, err := VerifySignature(db, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey().Condition(), cond)

	// replay fails
	_, err = VerifySignature(db, sig0, bz, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	_, err = VerifySignature(db, sig1, bz, chainID)
	require.NoError(t, err)

	nonce, err := NextNonce(db, key.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)

	// signature of another key does not match the pubkey
	forged := &StdSignature{Pubkey: key.PublicKey(), Signature: otherSig.Signature, Sequence: 2}
	_, err = VerifySignature(db, forged, bz, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	nonce, err = NextNonce(db, other.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "test-chain-1"
	db := store.MemStore()
	a := weavetest.NewKey()
	b := weavetest.NewKey()

	tx := NewStdTx([]byte("multisig"))
	sa, err := SignTx(a, tx, chainID, 0)
	require.NoError(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sa, sb}

	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, a.PublicKey().Condition(), signers[0])
	assert.Equal(t, b.PublicKey().Condition(), signers[1])

	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := UserData{Pubkey: weavetest.NewKey().PublicKey()}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(1))
	assert.Nil(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)

	u.Sequence = maxSequenceValue
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequenceValue))
}
