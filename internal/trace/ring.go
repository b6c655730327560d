package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 4096

// Ring remembers the most recent events of a run so they can be printed
// after a directory fails, without streaming everything.
type Ring struct {
	mu     sync.Mutex
	level  Level
	size   int
	events []Event
	next   int // slot overwritten once the ring is full
}

func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = defaultRingSize
	}
	return &Ring{level: level, size: size, events: make([]Event, 0, min(size, 256))}
}

func (r *Ring) Emit(ev *Event) {
	if ev == nil || !r.level.ShouldEmit(ev.Kind, ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) < r.size {
		r.events = append(r.events, stored)
		return
	}
	r.events[r.next] = stored
	r.next = (r.next + 1) % r.size
}

// Snapshot returns the kept events, oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Dump writes the snapshot to w, one formatted event per line.
func (r *Ring) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ring) Flush() error  { return nil }
func (r *Ring) Close() error  { return nil }
func (r *Ring) Level() Level  { return r.level }
func (r *Ring) Enabled() bool { return r.level > LevelOff }
