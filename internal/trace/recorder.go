package trace

// Recorder collects the ordered event stream of a single parse run.
// It enforces the event contract's tail condition: nothing is recorded
// after the first error event.
type Recorder struct {
	events []Event
	failed bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Listener.
func (r *Recorder) Emit(ev Event) {
	if r.failed {
		return
	}
	r.events = append(r.events, ev)
	if ev.Kind == KindError {
		r.failed = true
	}
}

// Events returns the recorded stream in emission order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Failed reports whether the run ended in an error event.
func (r *Recorder) Failed() bool {
	return r.failed
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	return len(r.events)
}
