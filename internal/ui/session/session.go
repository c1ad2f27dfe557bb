package session

import "fmt"

// Phase is the lifecycle phase of a picker session
type Phase int

const (
	Closed Phase = iota
	Opening
	Active
	Closing
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Active:
		return "active"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Machine governs the session lifecycle: Closed → Opening → Active →
// Closing → Closed. It enforces single-instance-per-open-session
// discipline; the owning model routes every open/close through it.
type Machine struct {
	phase Phase
}

// NewMachine creates a machine in the Closed phase
func NewMachine() *Machine {
	return &Machine{phase: Closed}
}

// Phase returns the current phase
func (m *Machine) Phase() Phase {
	return m.phase
}

// IsActive reports whether the session is open and usable
func (m *Machine) IsActive() bool {
	return m.phase == Active
}

// Open drives Closed → Opening → Active. init performs backend
// initialization; if it fails the machine falls back to Closed and the
// error is surfaced. Opening while already open is a no-op.
func (m *Machine) Open(init func() error) error {
	if m.phase != Closed {
		return nil
	}

	m.phase = Opening
	if init != nil {
		if err := init(); err != nil {
			m.phase = Closed
			return fmt.Errorf("failed to open session: %w", err)
		}
	}
	m.phase = Active

	return nil
}

// Close drives Active → Closing → Closed, running teardown in between so
// owned resources are released while the phase is observable as Closing.
// Closing while already closed is a no-op; it reports whether a close
// actually happened.
func (m *Machine) Close(teardown func()) bool {
	if m.phase != Active && m.phase != Opening {
		return false
	}

	m.phase = Closing
	if teardown != nil {
		teardown()
	}
	m.phase = Closed

	return true
}
