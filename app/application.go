package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application processes transactions one at a time on top of a commit
// store.
//
// Every transaction is executed in its own cache wrap. The changes are
// written only if the handler succeeds, so a failed transaction leaves no
// trace in the store. Events emitted during a successful transaction are
// published to the event sink after the changes are written.
type Application struct {
	mu sync.Mutex

	store   bountyd.CommitKVStore
	decoder bountyd.TxDecoder
	handler bountyd.Handler

	initializer bountyd.Initializer
	sink        bountyd.EventSink
	clock       func() time.Time
	logger      log.Logger

	chainID string
}

// Option configures an Application.
type Option func(*Application)

// WithInitializer sets the initializer called with the genesis app state.
func WithInitializer(i bountyd.Initializer) Option {
	return func(a *Application) { a.initializer = i }
}

// WithEventSink sets the receiver of the events of successful
// transactions.
func WithEventSink(s bountyd.EventSink) Option {
	return func(a *Application) { a.sink = s }
}

// WithClock sets the source of the block time. Deadlines are compared with
// the value returned when a transaction starts.
func WithClock(clock func() time.Time) Option {
	return func(a *Application) { a.clock = clock }
}

// WithLogger sets the logger passed to handlers in the context.
func WithLogger(l log.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// NewApplication returns an application executing transactions decoded
// with decoder using given handler. The chain id is loaded from the store
// if it was initialized before.
func NewApplication(store bountyd.CommitKVStore, decoder bountyd.TxDecoder, handler bountyd.Handler, opts ...Option) *Application {
	a := &Application{
		store:   store,
		decoder: decoder,
		handler: handler,
		clock:   time.Now,
		logger:  log.NewNopLogger(),
	}
	for _, fn := range opts {
		fn(a)
	}
	a.chainID = loadChainID(store)
	return a
}

// ChainID returns the chain id or an empty string if the application was
// not initialized yet.
func (a *Application) ChainID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chainID
}

// InitChain stores the chain id and passes the app state to the
// initializer. It can be called only once per store.
func (a *Application) InitChain(gen *Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %s already initialized", a.chainID)
	}
	cache := a.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	cache.Write()
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// context returns the context of a single transaction.
func (a *Application) context(call string, tx bountyd.Tx) (bountyd.Context, *bountyd.EventLog, error) {
	if a.chainID == "" {
		return nil, nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := bountyd.WithChainID(context.Background(), a.chainID)
	ctx = bountyd.WithBlockTime(ctx, a.clock())
	ctx = bountyd.WithLogger(ctx, a.logger)
	ctx = bountyd.WithLogInfo(ctx, "call", call, "path", bountyd.GetPath(tx))
	ctx, events := bountyd.WithEventLog(ctx)
	return ctx, events, nil
}

// decode calls the decoder, and capture any panics
func (a *Application) decode(raw []byte) (tx bountyd.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return tx, nil
}

// CheckTx validates the transaction against the current state. No change
// is ever persisted.
func (a *Application) CheckTx(raw []byte) (*bountyd.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.decode(raw)
	if err != nil {
		return nil, err
	}
	ctx, _, err := a.context("check_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := a.store.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

// DeliverTx executes the transaction. The changes are written to the store
// and the emitted events are published only on success.
func (a *Application) DeliverTx(raw []byte) (*bountyd.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.decode(raw)
	if err != nil {
		return nil, err
	}
	ctx, evlog, err := a.context("deliver_tx", tx)
	if err != nil {
		return nil, err
	}

	cache := a.store.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	if res == nil {
		res = &bountyd.DeliverResult{}
	}

	events := evlog.Events()
	for i := range events {
		events[i].ID = uuid.New().String()
	}
	res.Events = events
	if a.sink != nil && len(events) > 0 {
		if err := a.sink.Publish(ctx, events); err != nil {
			// State is already written. The sink must catch up on its own.
			bountyd.GetLogger(ctx).Error("cannot publish events", "err", err)
		}
	}
	return res, nil
}

// Commit persists all delivered transactions.
func (a *Application) Commit() (bountyd.CommitID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Commit()
}

// View runs a read only function against the current state. It is
// serialized with transaction processing.
func (a *Application) View(fn func(db bountyd.ReadOnlyKVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.store)
}
