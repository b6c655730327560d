package trace

import "errors"

// Tee duplicates every event into several tracers, e.g. a stream for the
// terminal plus a ring kept for failure dumps.
type Tee struct {
	level   Level
	targets []Tracer
}

func NewTee(level Level, targets ...Tracer) *Tee {
	return &Tee{level: level, targets: targets}
}

func (t *Tee) Emit(ev *Event) {
	for _, target := range t.targets {
		target.Emit(ev)
	}
}

// Flush flushes every target and joins their errors.
func (t *Tee) Flush() error {
	errs := make([]error, 0, len(t.targets))
	for _, target := range t.targets {
		errs = append(errs, target.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every target and joins their errors.
func (t *Tee) Close() error {
	errs := make([]error, 0, len(t.targets))
	for _, target := range t.targets {
		errs = append(errs, target.Close())
	}
	return errors.Join(errs...)
}

func (t *Tee) Level() Level  { return t.level }
func (t *Tee) Enabled() bool { return t.level > LevelOff }
