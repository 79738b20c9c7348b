package session

import (
	"fmt"
	"math"
	"time"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

type placementState int

const (
	awaitingFirstPoint placementState = iota
	tracking
	placementDone
)

// Placement sizes a new box, goal, cradle or circle between two points.
type Placement struct {
	level     *level.Level
	presenter thing.Presenter
	kind      thing.Kind
	th        Thresholds

	state  placementState
	status Status
	thing  thing.Thing

	first       common.Point
	firstScreen common.Point
	firstTime   time.Time
}

// NewPlacement starts a two-point placement of kind on l.
func NewPlacement(l *level.Level, p thing.Presenter, kind thing.Kind, th Thresholds) (*Placement, error) {
	switch kind {
	case thing.KindBox, thing.KindGoal, thing.KindCradle, thing.KindCircle:
	default:
		return nil, fmt.Errorf("session: %s cannot be placed with two points", kind)
	}
	return &Placement{level: l, presenter: p, kind: kind, th: th}, nil
}

// Thing returns the placeholder being sized, or nil before the first point.
func (s *Placement) Thing() thing.Thing {
	return s.thing
}

func (s *Placement) Status() Status {
	return s.status
}

func (s *Placement) HandlePointer(ev PointerEvent) Status {
	if s.status.Done() {
		return s.status
	}

	if ev.Kind == PointerPress && ev.Button == ButtonSecondary {
		s.Cancel()
		return s.status
	}

	switch s.state {
	case awaitingFirstPoint:
		if ev.Kind == PointerPress && ev.Button == ButtonPrimary {
			s.begin(ev)
		}
	case tracking:
		switch ev.Kind {
		case PointerMove:
			s.track(ev.Pos)
		case PointerPress:
			if ev.Button != ButtonPrimary {
				break
			}
			// second click
			s.track(ev.Pos)
			s.commit()
		case PointerRelease:
			if ev.Button != ButtonPrimary {
				break
			}
			if s.th.isClick(s.firstTime, s.firstScreen, ev) {
				// end of the first click; keep tracking until the second point
				break
			}
			s.track(ev.Pos)
			s.commit()
		}
	}
	return s.status
}

func (s *Placement) HandleKey(ev KeyEvent) Status {
	if s.status.Done() {
		return s.status
	}
	switch ev.Key {
	case KeyEscape, KeyDelete, KeyBackspace:
		s.Cancel()
	}
	return s.status
}

func (s *Placement) Cancel() {
	if s.status.Done() {
		return
	}
	if s.thing != nil {
		if v := s.thing.Visual(); v != nil {
			v.Remove()
		}
	}
	s.state = placementDone
	s.status = Cancelled
}

func (s *Placement) begin(ev PointerEvent) {
	t, err := thing.New(s.kind, ev.Pos.X, ev.Pos.Y)
	if err != nil {
		s.Cancel()
		return
	}
	t.CreateVisual(s.presenter)
	s.thing = t
	s.first = ev.Pos
	s.firstScreen = ev.Screen
	s.firstTime = ev.Time
	s.state = tracking
}

// track stretches the placeholder between the first point and p.
func (s *Placement) track(p common.Point) {
	dx := math.Abs(p.X - s.first.X)
	dy := math.Abs(p.Y - s.first.Y)
	mid := common.Midpoint(s.first, p)

	switch s.kind {
	case thing.KindBox, thing.KindGoal:
		s.thing.UpdateAttrs(thing.Attrs{"x": mid.X, "y": mid.Y, "width": dx, "height": dy})
	case thing.KindCradle:
		s.thing.UpdateAttrs(thing.Attrs{"x": mid.X, "y": math.Min(p.Y, s.first.Y), "width": dx, "height": dy})
	case thing.KindCircle:
		s.thing.UpdateAttrs(thing.Attrs{"radius": p.Distance(s.first)})
	}
}

func (s *Placement) commit() {
	if s.kind == thing.KindGoal && degenerate(s.thing.Values()) {
		s.Cancel()
		return
	}
	s.level.AddThing(s.thing)
	s.level.PushCommand(level.AddCommand(s.thing))
	s.level.Select(s.thing)
	s.state = placementDone
	s.status = Committed
}

// degenerate reports whether a rectangle has no area.
func degenerate(a thing.Attrs) bool {
	return a["width"] == 0 || a["height"] == 0
}
