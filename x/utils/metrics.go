package utils

import (
	"time"

	"github.com/iov-one/bountyd"
	"github.com/iov-one/bountyd/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered transactions per message
// path and outcome, and observes how long they take.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ bountyd.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator with all collectors registered in
// given registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bountyd",
			Name:      "tx_total",
			Help:      "Total number of delivered transactions.",
		}, []string{"path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bountyd",
			Name:      "tx_duration_seconds",
			Help:      "Duration of delivered transactions.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check just passes the request along
func (m *Metrics) Check(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx, next bountyd.Checker) (*bountyd.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the outcome of the transaction. The outcome of a failed
// transaction is the root of its error taxonomy.
func (m *Metrics) Deliver(ctx bountyd.Context, db bountyd.KVStore, tx bountyd.Tx, next bountyd.Deliverer) (*bountyd.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	path := bountyd.GetPath(tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.txs.WithLabelValues(path, outcome(err)).Inc()
	return res, err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := errors.Kind(err); kind != nil {
		return kind.Error()
	}
	return "internal"
}
