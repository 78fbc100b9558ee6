package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]bountyd.Handler
}

var _ bountyd.Registry = (*Router)(nil)
var _ bountyd.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]bountyd.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h bountyd.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) Handler(path string) bountyd.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Paths returns all registered paths.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx bountyd.Context, store bountyd.KVStore, tx bountyd.Tx) (*bountyd.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx bountyd.Context, store bountyd.KVStore, tx bountyd.Tx) (*bountyd.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// noSuchPathHandler is returned by the router when a requested path is not
// registered.
type noSuchPathHandler struct {
	path string
}

func (h noSuchPathHandler) Check(bountyd.Context, bountyd.KVStore, bountyd.Tx) (*bountyd.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

func (h noSuchPathHandler) Deliver(bountyd.Context, bountyd.KVStore, bountyd.Tx) (*bountyd.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
