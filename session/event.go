package session

import (
	"time"

	"github.com/milk9111/marblebounce/common"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerKind says what happened to the pointer.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

// PointerEvent is a pointer update in both board and screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	// Pos is in board units, y up.
	Pos common.Point
	// Screen is in pixels and is only used for click detection.
	Screen common.Point
	Button Button
	// PrimaryHeld reports whether the primary button is down at the time of the event.
	PrimaryHeld bool
	Time        time.Time
}

// Key identifies the keys sessions react to.
type Key int

const (
	KeyEscape Key = iota
	KeyEnter
	KeyDelete
	KeyBackspace
)

type KeyEvent struct {
	Key Key
}

// Status is the lifecycle state of a session.
type Status int

const (
	Active Status = iota
	Committed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Committed:
		return "Committed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Done reports whether the session has finished.
func (s Status) Done() bool {
	return s != Active
}

// Session is an in-progress gesture. A finished session ignores further events.
type Session interface {
	HandlePointer(ev PointerEvent) Status
	HandleKey(ev KeyEvent) Status
	Status() Status
	// Cancel abandons the gesture and reverts any live changes.
	Cancel()
}

// Thresholds separate the release of a first click from the end of a drag.
type Thresholds struct {
	ClickDuration time.Duration
	ClickDistance float64
}

// DefaultThresholds returns a one second, five pixel click window.
func DefaultThresholds() Thresholds {
	return Thresholds{ClickDuration: time.Second, ClickDistance: 5}
}

// isClick reports whether a release at ev still counts as the first click that started at t0, p0.
func (th Thresholds) isClick(t0 time.Time, p0 common.Point, ev PointerEvent) bool {
	return ev.Time.Sub(t0) < th.ClickDuration && ev.Screen.Distance(p0) < th.ClickDistance
}
