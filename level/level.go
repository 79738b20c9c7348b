package level

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/thing"
)

// Name is the display name of the level itself when it is being edited.
const Name = "Level"

// Bounds is the board rectangle. Left and Bottom locate its lower-left corner.
type Bounds struct {
	Width  float64
	Height float64
	Left   float64
	Bottom float64
}

var boundsAttrNames = []string{"width", "height", "left", "bottom"}

// BoundsAttrs lists the editable attribute names of the board.
func BoundsAttrs() []string {
	return boundsAttrNames
}

func (b Bounds) Values() thing.Attrs {
	return thing.Attrs{"width": b.Width, "height": b.Height, "left": b.Left, "bottom": b.Bottom}
}

// With returns b overlaid with a. It fails on unknown names, non-finite values
// and non-positive sizes.
func (b Bounds) With(a thing.Attrs) (Bounds, bool) {
	next := b.Values()
	for k, v := range a {
		if _, ok := next[k]; !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return b, false
		}
		next[k] = v
	}
	if next["width"] <= 0 || next["height"] <= 0 {
		return b, false
	}
	return Bounds{Width: next["width"], Height: next["height"], Left: next["left"], Bottom: next["bottom"]}, true
}

// Contains reports whether p lies on the board.
func (b Bounds) Contains(p common.Point) bool {
	return p.X >= b.Left && p.X <= b.Left+b.Width && p.Y >= b.Bottom && p.Y <= b.Bottom+b.Height
}

// ChangeKind says which stack operation produced a Change.
type ChangeKind int

const (
	Pushed ChangeKind = iota
	Undone
	Redone
)

func (k ChangeKind) String() string {
	switch k {
	case Pushed:
		return "push"
	case Undone:
		return "undo"
	case Redone:
		return "redo"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is delivered to listeners after every stack operation.
type Change struct {
	Kind    ChangeKind
	Command *Command
}

// Level owns the board, its things and the edit history.
type Level struct {
	// MaxUndo caps the undo stack; zero means unlimited.
	MaxUndo int

	bounds   Bounds
	things   []thing.Thing
	undo     []*Command
	redo     []*Command
	selected thing.Thing

	names  map[uuid.UUID]string
	counts map[thing.Kind]int

	listeners []func(Change)
}

// New creates an empty level.
func New(b Bounds) *Level {
	return &Level{
		bounds: b,
		names:  make(map[uuid.UUID]string),
		counts: make(map[thing.Kind]int),
	}
}

func (l *Level) Bounds() Bounds {
	return l.bounds
}

// SetBounds replaces the board rectangle without touching the history.
func (l *Level) SetBounds(b Bounds) {
	l.bounds = b
}

// AddThing appends t. Recording the addition on the stack is up to the caller.
func (l *Level) AddThing(t thing.Thing) {
	if t == nil {
		return
	}
	l.things = append(l.things, t)
	if t.Kind() == thing.KindStart {
		l.names[t.ID()] = thing.KindStart.Title()
		return
	}
	l.counts[t.Kind()]++
	l.names[t.ID()] = fmt.Sprintf("%s %d", t.Kind().Title(), l.counts[t.Kind()])
}

// Things returns every thing in z-order, deleted ones included.
func (l *Level) Things() []thing.Thing {
	out := make([]thing.Thing, len(l.things))
	copy(out, l.things)
	return out
}

// Live returns the things that are not deleted.
func (l *Level) Live() []thing.Thing {
	out := make([]thing.Thing, 0, len(l.things))
	for _, t := range l.things {
		if !t.Deleted() {
			out = append(out, t)
		}
	}
	return out
}

// Start returns the level's start point, or nil if none was added yet.
func (l *Level) Start() *thing.Start {
	for _, t := range l.things {
		if s, ok := t.(*thing.Start); ok {
			return s
		}
	}
	return nil
}

// Contains reports whether t belongs to the level.
func (l *Level) Contains(t thing.Thing) bool {
	for _, other := range l.things {
		if other == t {
			return true
		}
	}
	return false
}

// DeleteThing soft-deletes t. It returns false for things that cannot be deleted.
func (l *Level) DeleteThing(t thing.Thing) bool {
	if t == nil || !t.CanBeDeleted() {
		return false
	}
	t.SetDeleted(true)
	if l.selected == t {
		l.selected = nil
	}
	return true
}

// DisplayName returns the label shown for t, such as "Box 2".
func (l *Level) DisplayName(t thing.Thing) string {
	if t == nil {
		return Name
	}
	if n, ok := l.names[t.ID()]; ok {
		return n
	}
	return t.Kind().Title()
}

func (l *Level) Select(t thing.Thing) {
	l.selected = t
}

func (l *Level) Selected() thing.Thing {
	return l.selected
}

// HitTest returns the topmost live thing whose bounds, grown by tolerance, contain p.
func (l *Level) HitTest(p common.Point, tolerance float64) thing.Thing {
	for i := len(l.things) - 1; i >= 0; i-- {
		t := l.things[i]
		if t.Deleted() {
			continue
		}
		if common.PadBB(t.Bounds(), tolerance).ContainsVect(p) {
			return t
		}
	}
	return nil
}

// OnChange registers fn to run after every push, undo and redo.
func (l *Level) OnChange(fn func(Change)) {
	if fn != nil {
		l.listeners = append(l.listeners, fn)
	}
}

func (l *Level) notify(c Change) {
	for _, fn := range l.listeners {
		fn(c)
	}
}
