package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/bountyd/errors"
)

// Coins is a set of coins of distinct currencies, kept sorted by ticker and
// without zero amounts.
type Coins []Coin

// CombineCoins creates a normalized set from given coins, summing those of
// the same currency.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Balance returns the amount held in given currency.
func (cs Coins) Balance(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c
		}
	}
	return Coin{Ticker: ticker}
}

// Add returns a new set with the coin added. The receiver is not modified.
func (cs Coins) Add(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := make(Coins, 0, len(cs)+1)
	found := false
	for _, have := range cs {
		if have.Ticker == c.Ticker {
			sum, err := have.Add(c)
			if err != nil {
				return nil, err
			}
			have = sum
			found = true
		}
		res = append(res, have)
	}
	if !found {
		res = append(res, c)
	}
	return res.normalize(), nil
}

// Subtract returns a new set with the coin removed. It fails with
// ErrInsufficientAmount if the set does not hold enough.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	have := cs.Balance(c.Ticker)
	left, err := have.Subtract(c)
	if err != nil {
		return nil, err
	}
	res := make(Coins, 0, len(cs))
	for _, x := range cs {
		if x.Ticker == c.Ticker {
			x = left
		}
		res = append(res, x)
	}
	return res.normalize(), nil
}

// Contains returns true if the set holds at least given amount.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker).IsGTE(c)
}

// IsEmpty returns true if no currency is held.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same amounts.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate ensures every coin is valid and the set is normalized.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.ErrInvalidAmount.Newf("zero %s coin in a set", c.Ticker)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.ErrCurrency.New("coins not sorted or duplicated")
		}
	}
	return nil
}

// String returns a comma separated list of coins.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func (cs Coins) normalize() Coins {
	res := cs[:0]
	for _, c := range cs {
		if !c.IsZero() {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	return res
}
