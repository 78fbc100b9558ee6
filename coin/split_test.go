package coin

import (
	"math"
	"testing"

	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/weavetest/assert"
)

func TestSplitFee(t *testing.T) {
	cases := map[string]struct {
		amount   uint64
		bps      BasisPoints
		wantFee  uint64
		wantRest uint64
		wantErr  *errors.Error
	}{
		"reward with bonus at 2.5%": {
			amount:   1200,
			bps:      250,
			wantFee:  30,
			wantRest: 1170,
		},
		"fee is rounded down": {
			amount:   999,
			bps:      250,
			wantFee:  24,
			wantRest: 975,
		},
		"no fee": {
			amount:   1200,
			bps:      0,
			wantFee:  0,
			wantRest: 1200,
		},
		"whole amount": {
			amount:   1200,
			bps:      MaxBasisPoints,
			wantFee:  1200,
			wantRest: 0,
		},
		"largest amount does not overflow": {
			amount:   math.MaxUint64,
			bps:      1000,
			wantFee:  math.MaxUint64 / 10,
			wantRest: math.MaxUint64 - math.MaxUint64/10,
		},
		"more than the whole": {
			amount:  1,
			bps:     MaxBasisPoints + 1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fee, rest, err := NewCoin(tc.amount, "IOV").SplitFee(tc.bps)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, NewCoin(tc.wantFee, "IOV"), fee)
			assert.Equal(t, NewCoin(tc.wantRest, "IOV"), rest)
		})
	}
}

// Fee and the remainder must always add up to the split amount.
func TestSplitFeeConservation(t *testing.T) {
	amounts := []uint64{0, 1, 7, 999, 1200, 10001, 123456789, math.MaxUint64}
	for _, amount := range amounts {
		for bps := BasisPoints(0); bps <= 1000; bps++ {
			fee, rest, err := NewCoin(amount, "IOV").SplitFee(bps)
			assert.Nil(t, err)
			sum, err := fee.Add(rest)
			assert.Nil(t, err)
			if sum.Amount != amount {
				t.Fatalf("%d at %d bps: %d + %d != %d", amount, bps, fee.Amount, rest.Amount, amount)
			}
		}
	}
}
