package progress

import "sync"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

// Nop discards every event.
var Nop Sink = nopSink{}

// Or returns s, or Nop when s is nil.
func Or(s Sink) Sink {
	if s == nil {
		return Nop
	}
	return s
}

// TimingSink attributes the time between consecutive events of an item to
// the stage of the earlier event, then forwards to Next. Event.Elapsed must
// be measured from the item's start.
type TimingSink struct {
	Timings *Timings
	Next    Sink

	mu   sync.Mutex
	last map[string]Event
}

func (s *TimingSink) OnEvent(evt Event) {
	s.mu.Lock()
	if s.last == nil {
		s.last = make(map[string]Event)
	}
	if prev, ok := s.last[evt.Item]; ok && evt.Elapsed > prev.Elapsed {
		s.Timings.Add(prev.Stage, evt.Elapsed-prev.Elapsed)
	}
	if evt.Status.Terminal() {
		delete(s.last, evt.Item)
	} else {
		s.last[evt.Item] = evt
	}
	s.mu.Unlock()

	if s.Next != nil {
		s.Next.OnEvent(evt)
	}
}

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the most recent event for item.
func (r *Recorder) Last(item string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Item == item {
			return r.events[i], true
		}
	}
	return Event{}, false
}
