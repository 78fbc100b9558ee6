package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/bountyd"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer bountyd.Condition

	// Signers represents an authentication of multiple signers.
	Signers []bountyd.Condition
}

func (a *Auth) GetConditions(bountyd.Context) []bountyd.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx bountyd.Context, addr bountyd.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
// It is the usual choice for tests that act as several parties in turn.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convinience only string type keys are allowed.
	Key string
}

// SetConditions returns a context authenticated with exactly given
// conditions.
func (a *CtxAuth) SetConditions(ctx bountyd.Context, permissions ...bountyd.Condition) bountyd.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx bountyd.Context) []bountyd.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]bountyd.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []bountyd.Condition got %T", ctx.Value(a.Key)))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx bountyd.Context, addr bountyd.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
