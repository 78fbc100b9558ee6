/*
Package x contains the abstractions shared by all extensions.

Every extension receives an Authenticator in its constructor, so that the
source of a permission (a transaction signature, a custody granted by
another module) can be plugged in without the extension knowing about it.
*/
package x

import (
	"github.com/iov-one/bountyd"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(bountyd.Context) []bountyd.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(bountyd.Context, bountyd.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx bountyd.Context) []bountyd.Condition {
	var res []bountyd.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx bountyd.Context, addr bountyd.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx bountyd.Context, auth Authenticator) []bountyd.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]bountyd.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx bountyd.Context, auth Authenticator) bountyd.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx bountyd.Context, auth Authenticator, required []bountyd.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx bountyd.Context, auth Authenticator, required []bountyd.Condition) bool {
	conds := auth.GetConditions(ctx)
	for _, r := range required {
		if !hasCondition(conds, r) {
			return false
		}
	}
	return true
}

func hasCondition(conds []bountyd.Condition, c bountyd.Condition) bool {
	for _, x := range conds {
		if x.Equals(c) {
			return true
		}
	}
	return false
}
