/*
Package bountyapp links together all the various components
to construct the bountyd application.
*/
package bountyapp

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/app"
	"github.com/iov-one/bountyd/errors"
	"github.com/iov-one/bountyd/store/iavl"
	"github.com/iov-one/bountyd/x"
	"github.com/iov-one/bountyd/x/bounty"
	"github.com/iov-one/bountyd/x/cash"
	"github.com/iov-one/bountyd/x/escrow"
	"github.com/iov-one/bountyd/x/inventory"
	"github.com/iov-one/bountyd/x/lock"
	"github.com/iov-one/bountyd/x/sigs"
	"github.com/iov-one/bountyd/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		sigs.NewDecorator(),
	)
}

// Modules groups the controllers shared by the handlers. Queries use the
// same instances as the handlers.
type Modules struct {
	Wallets   cash.Controller
	Inventory *inventory.Inventory
	Ledger    *bounty.Ledger
}

// NewModules builds all controllers on top of given authenticator.
func NewModules(auth x.Authenticator) *Modules {
	wallets := cash.NewController()
	inv := inventory.New(wallets)
	return &Modules{
		Wallets:   wallets,
		Inventory: inv,
		Ledger:    bounty.NewLedger(auth, wallets, inv),
	}
}

// Router returns a router dispatching to all extensions.
func Router(auth x.Authenticator, m *Modules) *app.Router {
	r := app.NewRouter()
	sigs.RegisterRoutes(r, auth)
	cash.RegisterRoutes(r, auth, m.Wallets)
	locks := lock.NewController(auth)
	lock.RegisterRoutes(r, auth, locks, m.Wallets, m.Inventory)
	escrow.RegisterRoutes(r, auth, escrow.NewController(auth, locks, m.Inventory), m.Wallets, m.Inventory)
	bounty.RegisterRoutes(r, auth, m.Ledger)
	return r
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() bountyd.Initializer {
	return bountyd.ChainInitializers(
		cash.Initializer{},
		bounty.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. Metrics are registered with given registerer.
func Stack(reg prometheus.Registerer) (bountyd.Handler, *Modules, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	auth := Authenticator()
	m := NewModules(auth)
	return Chain(metrics).WithHandler(Router(auth, m)), m, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (*iavl.CommitStore, error) {
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}
	// Some callers add a ".db" suffix, which goleveldb appends on its own.
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}

// Application constructs the application on top of given store. The
// returned modules can be used to query the state.
func Application(kv bountyd.CommitKVStore, reg prometheus.Registerer, opts ...app.Option) (*app.Application, *Modules, error) {
	h, m, err := Stack(reg)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]app.Option{app.WithInitializer(Initializers())}, opts...)
	return app.NewApplication(kv, TxDecoder, h, opts...), m, nil
}
