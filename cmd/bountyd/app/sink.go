package bountyapp

import (
	"github.com/iov-one/bountyd"
	"github.com/tendermint/tendermint/libs/log"
)

// LogSink publishes events by writing them to a logger. It is used by the
// command line client, which has no message broker to deliver to.
type LogSink struct {
	Logger log.Logger
}

var _ bountyd.EventSink = LogSink{}

func (s LogSink) Publish(ctx bountyd.Context, events []bountyd.Event) error {
	for _, e := range events {
		keyvals := []interface{}{"id", e.ID, "type", e.Type}
		for _, a := range e.Attributes {
			keyvals = append(keyvals, a.Key, a.Value)
		}
		s.Logger.Info("event", keyvals...)
	}
	return nil
}
