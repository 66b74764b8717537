package borrow

import (
	"errors"
	"sync"

	"lagerstyring-client/internal/model"
)

// State of a borrow attempt's scan gate.
type State int

const (
	// StateAwaitingScan accepts exactly one scan payload, then either
	// matches or re-arms.
	StateAwaitingScan State = iota
	// StateMatched means the scanned code equals the device's registered
	// code; the attempt may be confirmed or cancelled.
	StateMatched
	// StateConfirmed and StateCancelled are terminal for this attempt.
	StateConfirmed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAwaitingScan:
		return "awaiting-scan"
	case StateMatched:
		return "matched"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	default:
		return "invalid"
	}
}

// ErrScanMismatch reports a scanned payload that does not belong to the
// device being borrowed. The gate stays armed so the user can scan again.
var ErrScanMismatch = errors.New("scanned code does not match the device")

// ErrInvalidTransition reports a Confirm or Cancel call in a state that does
// not allow it.
var ErrInvalidTransition = errors.New("operation not allowed in current state")

// Gate is the state machine gating loan confirmation behind a matching
// barcode scan. One Gate serves exactly one borrow attempt for one device;
// a new attempt always starts a fresh Gate.
//
// Scanner hardware can deliver the same physical read several times in quick
// succession, so at most one payload is consumed per armed period: the gate
// disarms while a payload is being judged and on a match stays disarmed for
// good.
type Gate struct {
	mu       sync.Mutex
	state    State
	armed    bool
	expected string
	item     model.EnrichedDevice
}

// NewGate starts a borrow attempt for item, armed and awaiting a scan.
func NewGate(item model.EnrichedDevice) *Gate {
	return &Gate{
		state:    StateAwaitingScan,
		armed:    true,
		expected: item.Device.QR,
		item:     item,
	}
}

// Item returns the device under borrow.
func (g *Gate) Item() model.EnrichedDevice {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.item
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Scan consumes one decoded payload. Outside an armed AwaitingScan period
// the payload is dropped and the state reported unchanged. A match moves the
// gate to Matched and disarms it; a mismatch returns ErrScanMismatch and
// re-arms for another attempt.
func (g *Gate) Scan(payload string) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAwaitingScan || !g.armed {
		return g.state, nil
	}
	g.armed = false

	if payload != g.expected {
		g.armed = true
		return g.state, ErrScanMismatch
	}

	g.state = StateMatched
	return g.state, nil
}

// Confirm moves a matched attempt to Confirmed. The caller then schedules
// and submits the loan; a failed submission leaves the gate re-confirmable
// via Reopen.
func (g *Gate) Confirm() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateMatched {
		return ErrInvalidTransition
	}
	g.state = StateConfirmed
	return nil
}

// Reopen returns a Confirmed gate to Matched after a failed submission, so
// the user can retry Confirm without scanning again.
func (g *Gate) Reopen() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateConfirmed {
		return ErrInvalidTransition
	}
	g.state = StateMatched
	return nil
}

// Cancel abandons the attempt. Allowed while awaiting a scan or matched;
// terminal states reject it.
func (g *Gate) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateAwaitingScan && g.state != StateMatched {
		return ErrInvalidTransition
	}
	g.state = StateCancelled
	g.armed = false
	return nil
}
