/*
Package coin implements the currency amounts moved by the marketplace.

Amounts are whole unsigned integers of the smallest unit of a currency.
All arithmetic is checked: an overflow or an underflow is an error, never a
wrap around.
*/
package coin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/bountyd/codec"
	"github.com/iov-one/bountyd/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// AssetType is the payload type tag of a coin held in a sealed container or
// an escrow.
const AssetType = "coin"

// Coin is an amount of a single currency.
type Coin struct {
	Ticker string
	Amount uint64
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// AssetType allows a coin to be placed in custody.
func (c *Coin) AssetType() string {
	return AssetType
}

func (c *Coin) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Coin) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// Add returns the sum of two coins of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.ErrCurrency.Newf("adding %s to %s", o.Ticker, c.Ticker)
	}
	sum := c.Amount + o.Amount
	if sum < c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract returns the difference of two coins of the same currency. An
// insufficient amount is an error.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.ErrCurrency.Newf("subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s - %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - o.Amount}, nil
}

// Compare returns 0 if both coins hold the same amount, -1 if this one is
// smaller and 1 if it is greater. Only the amounts are compared.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true if the amount is 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsGTE returns true if c is same type and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Validate ensures that the ticker is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.ErrCurrency.Newf("invalid ticker %q", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin, ie "1200 IOV".
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parses the "<amount> <ticker>" representation, as
// produced by String. The separating space is optional.
func ParseHumanFormat(h string) (Coin, error) {
	h = strings.TrimSpace(h)
	i := strings.IndexFunc(h, func(r rune) bool { return r < '0' || r > '9' })
	if i < 0 {
		i = len(h)
	}
	if i == 0 {
		return Coin{}, errors.ErrInvalidAmount.Newf("cannot parse %q", h)
	}
	amount, err := strconv.ParseUint(h[:i], 10, 64)
	if err != nil {
		return Coin{}, errors.ErrInvalidAmount.Newf("cannot parse %q: %s", h, err)
	}
	c := Coin{Amount: amount, Ticker: strings.TrimSpace(h[i:])}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}
