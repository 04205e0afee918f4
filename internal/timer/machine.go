package timer

import (
	"math"
	"time"

	"github.com/abhisek/focusflow/internal/session"
)

// Machine is the study/rest countdown. Remaining time is always derived
// from an absolute deadline, so a suspended process catches up on its
// next tick instead of drifting.
//
// Each countdown run owns a generation number. Ticks carry the generation
// they were scheduled for and are ignored once it no longer matches, which
// cancels every outstanding tick on pause, reset, and type transitions.
type Machine struct {
	clock Clock

	durations Durations
	deferred  *Durations

	kind      session.Type
	status    Status
	remaining int
	total     int

	deadline  time.Time
	startedAt time.Time
	gen       int

	pending *session.Pending
}

// New returns a machine in Study.Idle loaded with d.Study minutes.
func New(clock Clock, d Durations) *Machine {
	if clock == nil {
		clock = SystemClock{}
	}
	m := &Machine{clock: clock, durations: d}
	m.load(session.Study)
	return m
}

// Start begins or resumes the countdown and returns the generation that
// ticks must carry. It is a no-op returning ok=false when the countdown is
// already running, nothing remains, or feedback is outstanding.
func (m *Machine) Start() (gen int, ok bool) {
	if m.status == Running || m.status == AwaitingFeedback || m.remaining <= 0 {
		return m.gen, false
	}
	now := m.clock.Now()
	m.gen++
	m.startedAt = now
	m.deadline = now.Add(time.Duration(m.remaining) * time.Second)
	m.status = Running
	return m.gen, true
}

// Pause freezes the remaining time at its last computed value.
func (m *Machine) Pause() bool {
	if m.status != Running {
		return false
	}
	m.gen++
	m.status = Paused
	return true
}

// Reset reloads the full duration for the current session type.
func (m *Machine) Reset() error {
	if m.status == AwaitingFeedback {
		return ErrAwaitingFeedback
	}
	m.load(m.kind)
	return nil
}

// Extend adds ExtendSeconds to the remaining time and to the progress
// baseline. A running deadline moves by the same amount. Extend never
// completes or starts the countdown.
func (m *Machine) Extend() error {
	if m.status == AwaitingFeedback {
		return ErrAwaitingFeedback
	}
	m.remaining += ExtendSeconds
	m.total += ExtendSeconds
	if m.status == Running {
		m.deadline = m.deadline.Add(ExtendSeconds * time.Second)
	}
	return nil
}

// HandleTick recomputes the remaining time for the countdown identified by
// gen. Ticks from a superseded generation are ignored.
func (m *Machine) HandleTick(gen int) Event {
	if gen != m.gen || m.status != Running {
		return Event{}
	}
	now := m.clock.Now()
	left := m.deadline.Sub(now)
	if left <= 0 {
		return m.complete(now)
	}
	m.remaining = int(math.Round(left.Seconds()))
	return Event{}
}

func (m *Machine) complete(now time.Time) Event {
	done := m.kind
	m.gen++
	m.remaining = 0

	if done == session.Study {
		m.status = AwaitingFeedback
		m.pending = &session.Pending{
			StartTime: m.startedAt,
			EndTime:   now,
			Duration:  int(math.Round(float64(m.total) / 60)),
		}
	} else {
		m.load(session.Study)
	}
	return Event{Completed: true, Type: done}
}

// SubmitFeedback resolves the pending study session with notes and loads
// Rest.Idle.
func (m *Machine) SubmitFeedback(id, notes string) (session.Session, error) {
	if m.status != AwaitingFeedback || m.pending == nil {
		return session.Session{}, ErrNoPendingFeedback
	}
	s := m.pending.Submit(id, notes)
	m.load(session.Rest)
	return s, nil
}

// DismissFeedback resolves the pending study session without notes and
// loads Rest.Idle.
func (m *Machine) DismissFeedback(id string) (session.Session, error) {
	if m.status != AwaitingFeedback || m.pending == nil {
		return session.Session{}, ErrNoPendingFeedback
	}
	s := m.pending.Dismiss(id)
	m.load(session.Rest)
	return s, nil
}

// SetDurations applies new preset durations. While running the change is
// held until the next reset or type transition; otherwise the current
// state's duration and remaining time are recomputed at once. Durations
// equal to the ones already in effect or on hold change nothing, so a
// paused countdown survives preset edits that leave the active preset alone.
func (m *Machine) SetDurations(d Durations) {
	if d == m.upcoming() {
		return
	}
	if m.status == Running {
		m.deferred = &d
		if d == m.durations {
			m.deferred = nil
		}
		return
	}
	m.durations = d
	m.deferred = nil
	if m.status == AwaitingFeedback {
		return
	}
	m.load(m.kind)
}

// upcoming is the durations the next load will use.
func (m *Machine) upcoming() Durations {
	if m.deferred != nil {
		return *m.deferred
	}
	return m.durations
}

// load makes kind the current session type in Idle with a full duration.
func (m *Machine) load(kind session.Type) {
	if m.deferred != nil {
		m.durations = *m.deferred
		m.deferred = nil
	}
	m.gen++
	m.kind = kind
	m.status = Idle
	m.pending = nil
	m.total = m.durations.seconds(kind)
	m.remaining = m.total
	m.deadline = time.Time{}
}

// Running reports whether a countdown is active.
func (m *Machine) Running() bool { return m.status == Running }

// Gen returns the current countdown generation.
func (m *Machine) Gen() int { return m.gen }

// Durations returns the durations currently in effect.
func (m *Machine) Durations() Durations { return m.durations }

// Snapshot returns the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Type:      m.kind,
		Status:    m.status,
		Remaining: m.remaining,
		Total:     m.total,
	}
	if m.total > 0 {
		snap.Progress = float64(m.total-m.remaining) / float64(m.total)
	}
	if m.pending != nil {
		p := *m.pending
		snap.Pending = &p
	}
	return snap
}
