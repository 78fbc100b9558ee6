package weavetest

import (
	"sync"

	"github.com/iov-one/bountyd"
)

// EventSink is an in memory bountyd.EventSink. It records every published
// event. Set Err to make Publish fail.
type EventSink struct {
	mu     sync.Mutex
	events []bountyd.Event
	Err    error
}

var _ bountyd.EventSink = (*EventSink)(nil)

func (s *EventSink) Publish(ctx bountyd.Context, events []bountyd.Event) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// Events returns all published events.
func (s *EventSink) Events() []bountyd.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bountyd.Event(nil), s.events...)
}

// Types returns the types of all published events, in publishing order.
func (s *EventSink) Types() []string {
	var res []string
	for _, e := range s.Events() {
		res = append(res, e.Type)
	}
	return res
}

// EventTypes returns the types of given events.
func EventTypes(events []bountyd.Event) []string {
	var res []string
	for _, e := range events {
		res = append(res, e.Type)
	}
	return res
}
