package timer

import (
	"errors"
	"fmt"

	"github.com/abhisek/focusflow/internal/session"
)

// Status is the activity sub-state of the loaded session type.
type Status int

const (
	Idle             Status = iota // Loaded, never started or reset
	Running                        // Counting down against a deadline
	Paused                         // Frozen mid-countdown
	AwaitingFeedback               // Study finished; waiting for notes
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case AwaitingFeedback:
		return "awaiting feedback"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ExtendSeconds is how much a single extend adds to the countdown.
const ExtendSeconds = 300

var (
	// ErrNoPendingFeedback is returned when feedback is resolved while no
	// study session is waiting for it.
	ErrNoPendingFeedback = errors.New("timer: no session awaiting feedback")

	// ErrAwaitingFeedback is returned by operations that are blocked until
	// the pending study session is resolved.
	ErrAwaitingFeedback = errors.New("timer: session awaiting feedback")
)

// Durations holds the study and rest lengths in minutes.
type Durations struct {
	Study int
	Rest  int
}

func (d Durations) seconds(t session.Type) int {
	if t == session.Rest {
		return d.Rest * 60
	}
	return d.Study * 60
}

// Event reports the outcome of a tick.
type Event struct {
	// Completed is true when the tick finished the countdown.
	Completed bool

	// Type is the session type that completed.
	Type session.Type
}

// Snapshot is a read-only view of the machine for rendering.
type Snapshot struct {
	Type      session.Type
	Status    Status
	Remaining int
	Total     int

	// Progress is (Total-Remaining)/Total, 0 when Total is 0.
	Progress float64

	// Pending is set while Status is AwaitingFeedback.
	Pending *session.Pending
}

// FormatClock renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
