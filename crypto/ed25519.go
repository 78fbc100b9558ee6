package crypto

import (
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a signature condition
func (p *PublicKey) Condition() bountyd.Condition {
	return bountyd.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the signature condition.
func (p *PublicKey) Address() bountyd.Address {
	return p.Condition().Address()
}

// Validate checks the key length.
func (p *PublicKey) Validate() error {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) { return codec.Marshal(p) }
func (p *PublicKey) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, p) }

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

func (p *PrivateKey) Marshal() ([]byte, error) { return codec.Marshal(p) }
func (p *PrivateKey) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, p) }

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

// Validate checks the signature length.
func (s *Signature) Validate() error {
	if len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature must be %d bytes", ed25519.SignatureSize)
	}
	return nil
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}
