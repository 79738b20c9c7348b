package session

import (
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

// Drag moves a thing with the pointer. Start it on the press that grabbed the thing.
type Drag struct {
	level  *level.Level
	thing  thing.Thing
	grab   common.Point
	from   common.Point
	status Status
}

func NewDrag(l *level.Level, t thing.Thing, grab common.Point) *Drag {
	return &Drag{level: l, thing: t, grab: grab, from: t.Position()}
}

func (s *Drag) Thing() thing.Thing {
	return s.thing
}

func (s *Drag) Status() Status {
	return s.status
}

func (s *Drag) HandlePointer(ev PointerEvent) Status {
	if s.status.Done() {
		return s.status
	}

	switch ev.Kind {
	case PointerMove:
		s.thing.MoveTo(s.target(ev.Pos))
		if !ev.PrimaryHeld {
			// the release happened outside the window
			s.release()
		}
	case PointerRelease:
		if ev.Button != ButtonPrimary {
			break
		}
		s.thing.MoveTo(s.target(ev.Pos))
		s.release()
	}
	return s.status
}

func (s *Drag) HandleKey(ev KeyEvent) Status {
	if s.status.Done() {
		return s.status
	}
	if ev.Key == KeyEscape {
		s.Cancel()
	}
	return s.status
}

// Cancel puts the thing back where the drag started.
func (s *Drag) Cancel() {
	if s.status.Done() {
		return
	}
	s.thing.MoveTo(s.from)
	s.status = Cancelled
}

func (s *Drag) target(p common.Point) common.Point {
	return s.from.Add(p.Sub(s.grab))
}

func (s *Drag) release() {
	to := s.thing.Position()
	if to.Equal(s.from) {
		s.status = Cancelled
		return
	}
	s.level.PushCommand(level.MoveCommand(s.level.DisplayName(s.thing), s.thing, s.from, to))
	s.status = Committed
}
