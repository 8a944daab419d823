package sim

import "slices"

type effect[K comparable] struct {
	name      K
	remaining float64
}

// Effects tracks named timed flags such as power-ups. An effect is active
// from Activate until its countdown reaches zero.
type Effects[K comparable] struct {
	active []effect[K]
}

// Activate starts name for duration, restarting its countdown if it is
// already running.
func (e *Effects[K]) Activate(name K, duration float64) {
	if i := e.index(name); i != -1 {
		e.active[i].remaining = duration
		return
	}
	e.active = append(e.active, effect[K]{name: name, remaining: duration})
}

// Active reports whether name is running.
func (e *Effects[K]) Active(name K) bool {
	return e.index(name) != -1
}

// Remaining returns the countdown left on name, or zero.
func (e *Effects[K]) Remaining(name K) float64 {
	if i := e.index(name); i != -1 {
		return e.active[i].remaining
	}
	return 0
}

// Names returns the running effects in activation order.
func (e *Effects[K]) Names() []K {
	names := make([]K, len(e.active))
	for i, a := range e.active {
		names[i] = a.name
	}
	return names
}

// Advance counts every effect down by dt and returns the ones that expired,
// in activation order. Each expiry is reported once.
func (e *Effects[K]) Advance(dt float64) []K {
	var expired []K
	kept := e.active[:0]
	for _, a := range e.active {
		a.remaining -= dt
		if a.remaining <= 0 {
			expired = append(expired, a.name)
			continue
		}
		kept = append(kept, a)
	}
	e.active = kept
	return expired
}

// Deactivate stops name without reporting it as expired.
func (e *Effects[K]) Deactivate(name K) {
	if i := e.index(name); i != -1 {
		e.active = slices.Delete(e.active, i, i+1)
	}
}

// Reset stops every effect.
func (e *Effects[K]) Reset() {
	e.active = nil
}

func (e *Effects[K]) index(name K) int {
	return slices.IndexFunc(e.active, func(a effect[K]) bool { return a.name == name })
}
