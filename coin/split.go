package coin

import (
	"math/bits"

	"github.com/iov-one/bountyd/errors"
)

// BasisPoints is a fraction expressed in 1/10000 units. 250 basis points are
// 2.5%.
type BasisPoints uint32

// MaxBasisPoints represents the whole, 100%.
const MaxBasisPoints BasisPoints = 10000

// Validate ensures the value does not exceed the whole.
func (b BasisPoints) Validate() error {
	if b > MaxBasisPoints {
		return errors.ErrInput.Newf("%d basis points exceed %d", b, MaxBasisPoints)
	}
	return nil
}

// SplitFee divides the coin into a fee and the rest. The fee is computed
// first as floor(amount * bps / 10000), the rest is what remains. The two
// parts always add up to the original amount.
//
// The multiplication is done with 128 bit precision so that any amount can
// be split without an overflow.
func (c Coin) SplitFee(bps BasisPoints) (fee Coin, rest Coin, err error) {
	if err := bps.Validate(); err != nil {
		return Coin{}, Coin{}, err
	}
	hi, lo := bits.Mul64(c.Amount, uint64(bps))
	// hi < MaxBasisPoints always holds because bps <= MaxBasisPoints, so the
	// quotient fits in 64 bits.
	q, _ := bits.Div64(hi, lo, uint64(MaxBasisPoints))
	fee = Coin{Ticker: c.Ticker, Amount: q}
	rest = Coin{Ticker: c.Ticker, Amount: c.Amount - q}
	return fee, rest, nil
}
