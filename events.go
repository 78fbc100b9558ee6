package bountyd

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
)

// Event is a notification about a state transition. Events are collected
// while a transaction is processed and published only after its state
// changes are persisted.
type Event struct {
	// ID is a unique identifier assigned when the event is published.
	ID string
	// Type is the path like name of the event, ie. "bounty/created".
	Type string
	// Attributes holds the event data in the order it was emitted.
	Attributes []Attribute
}

// Attribute is a single key value pair of an event.
type Attribute struct {
	Key   string
	Value string
}

// Get returns the value of the first attribute with given key.
func (e Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// EventLog buffers events emitted during a single transaction.
type EventLog struct {
	events []Event
}

// Events returns all events emitted so far.
func (l *EventLog) Events() []Event {
	return l.events
}

// WithEventLog returns a context that collects emitted events into the
// returned log.
func WithEventLog(ctx Context) (Context, *EventLog) {
	l := &EventLog{}
	return context.WithValue(ctx, contextKeyEvents, l), l
}

// Emit records an event in the log carried by the context. Key values must
// be given in pairs, the same way a logger accepts them. When no log is
// present in the context the event is dropped.
func Emit(ctx Context, typ string, keyvals ...interface{}) {
	l, ok := ctx.Value(contextKeyEvents).(*EventLog)
	if !ok {
		return
	}
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "(missing)")
	}
	ev := Event{Type: typ}
	for i := 0; i < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, Attribute{
			Key:   fmt.Sprint(keyvals[i]),
			Value: formatValue(keyvals[i+1]),
		})
	}
	l.events = append(l.events, ev)
}

// EventSink receives events of successfully processed transactions.
type EventSink interface {
	Publish(ctx Context, events []Event) error
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case fmt.Stringer:
		return v.String()
	case []byte:
		return strings.ToUpper(hex.EncodeToString(v))
	default:
		return fmt.Sprint(v)
	}
}
