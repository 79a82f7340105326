package playback

import "sync"

const eventBufferSize = 16

// Subscription is one registered sink for a player's event stream.
//
// Events preserves emission order. The channel is buffered; a live
// subscriber whose buffer is full blocks the notifying call, so
// consumers are expected to drain promptly. A closed subscription is
// pruned from the player record on the next emission instead of
// halting delivery to the remaining subscribers.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	events chan Event
	done   chan struct{}
	once   sync.Once
}

func newSubscription() *Subscription {
	s := &Subscription{
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	s.Events = s.events
	s.Done = s.done
	return s
}

// Close marks the subscription dead. It is safe to call more than once
// and safe to call while an emission is in flight.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// send delivers one event. It reports false when the subscription is
// closed, signaling the caller to prune it.
func (s *Subscription) send(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}
