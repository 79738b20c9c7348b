package session

import (
	"fmt"

	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

// AttrEdit edits one attribute of a thing, or of the level bounds when the thing is nil.
// Input updates live without touching the history; Commit records one change.
type AttrEdit struct {
	level    *level.Level
	thing    thing.Thing
	attr     string
	original float64
	bounds   level.Bounds
	status   Status
}

func NewAttrEdit(l *level.Level, t thing.Thing, attr string) (*AttrEdit, error) {
	s := &AttrEdit{level: l, thing: t, attr: attr, bounds: l.Bounds()}
	if t == nil {
		v, ok := l.Bounds().Values()[attr]
		if !ok {
			return nil, fmt.Errorf("session: level has no attribute %q", attr)
		}
		s.original = v
		return s, nil
	}
	v, ok := t.Attr(attr)
	if !ok {
		return nil, fmt.Errorf("session: %s has no attribute %q", t.Kind(), attr)
	}
	s.original = v
	return s, nil
}

func (s *AttrEdit) Attr() string {
	return s.attr
}

func (s *AttrEdit) Status() Status {
	return s.status
}

// Value returns the attribute's current value.
func (s *AttrEdit) Value() float64 {
	if s.thing == nil {
		return s.level.Bounds().Values()[s.attr]
	}
	v, _ := s.thing.Attr(s.attr)
	return v
}

// Input applies v immediately. Rejected values leave the attribute unchanged.
func (s *AttrEdit) Input(v float64) bool {
	if s.status.Done() {
		return false
	}
	if s.thing == nil {
		next, ok := s.level.Bounds().With(thing.Attrs{s.attr: v})
		if !ok {
			return false
		}
		s.level.SetBounds(next)
		return true
	}
	return s.thing.UpdateAttrs(thing.Attrs{s.attr: v})
}

// Commit records the change from the original value. Unchanged values record nothing.
func (s *AttrEdit) Commit() Status {
	if s.status.Done() {
		return s.status
	}
	to := s.Value()
	if to == s.original {
		s.status = Cancelled
		return s.status
	}
	if s.thing == nil {
		s.level.PushCommand(level.ChangeBoundsCommand(s.attr, s.bounds, s.level.Bounds()))
	} else {
		name := s.level.DisplayName(s.thing)
		s.level.PushCommand(level.ChangeCommand(name, s.attr, s.thing, s.original, to))
	}
	s.status = Committed
	return s.status
}

// Cancel restores the original value.
func (s *AttrEdit) Cancel() {
	if s.status.Done() {
		return
	}
	if s.thing == nil {
		s.level.SetBounds(s.bounds)
	} else {
		s.thing.UpdateAttrs(thing.Attrs{s.attr: s.original})
	}
	s.status = Cancelled
}

func (s *AttrEdit) HandlePointer(PointerEvent) Status {
	return s.status
}

func (s *AttrEdit) HandleKey(ev KeyEvent) Status {
	switch ev.Key {
	case KeyEnter:
		return s.Commit()
	case KeyEscape:
		s.Cancel()
	}
	return s.status
}
