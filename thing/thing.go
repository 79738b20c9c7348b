package thing

import (
	"math"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
)

// Kind identifies a thing variant. The value doubles as the document tag.
type Kind string

const (
	KindStart    Kind = "start"
	KindGoal     Kind = "goal"
	KindBox      Kind = "box"
	KindCradle   Kind = "cradle"
	KindCircle   Kind = "circle"
	KindOpenPath Kind = "open-path"
	KindPolygon  Kind = "polygon"
)

// Kinds lists every variant in tool bar order.
func Kinds() []Kind {
	return []Kind{KindStart, KindGoal, KindBox, KindCradle, KindCircle, KindOpenPath, KindPolygon}
}

// ParseKind maps a document tag to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Title is the human readable variant name used for display names.
func (k Kind) Title() string {
	switch k {
	case KindStart:
		return "Start"
	case KindGoal:
		return "Goal"
	case KindBox:
		return "Box"
	case KindCradle:
		return "Cradle"
	case KindCircle:
		return "Circle"
	case KindOpenPath:
		return "OpenPath"
	case KindPolygon:
		return "Polygon"
	default:
		return string(k)
	}
}

// IsPath reports whether things of this kind are built from nodes.
func (k Kind) IsPath() bool {
	return k == KindOpenPath || k == KindPolygon
}

// Attrs holds named numeric attribute values.
type Attrs map[string]float64

// Clone returns a copy of a.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Visual is the presentation handle of a single thing.
type Visual interface {
	// Refresh re-derives the presentation from the owning thing's attributes.
	Refresh()
	SetDeleted(deleted bool)
	// Remove detaches the visual from the scene.
	Remove()
}

// Presenter creates visuals for things.
type Presenter interface {
	NewVisual(t Thing) Visual
}

// Thing is a game object placed on the board.
type Thing interface {
	ID() uuid.UUID
	Kind() Kind

	// Attrs returns the ordered editable attribute names.
	Attrs() []string
	Attr(name string) (float64, bool)
	Values() Attrs
	// UpdateAttrs merges a over the current values. It returns false and
	// leaves the thing untouched when a is rejected.
	UpdateAttrs(a Attrs) bool

	Position() common.Point
	MoveTo(p common.Point)

	Deleted() bool
	SetDeleted(deleted bool)
	CanBeDeleted() bool

	CreateVisual(p Presenter) Visual
	Visual() Visual
	Refresh()

	Bounds() cp.BB
	Node() Node
}

// core carries the state shared by every variant.
type core struct {
	id      uuid.UUID
	deleted bool
	visual  Visual
}

func newCore() core {
	return core{id: uuid.New()}
}

func (c *core) ID() uuid.UUID {
	return c.id
}

func (c *core) Deleted() bool {
	return c.deleted
}

func (c *core) SetDeleted(deleted bool) {
	c.deleted = deleted
	if c.visual != nil {
		c.visual.SetDeleted(deleted)
	}
}

func (c *core) CanBeDeleted() bool {
	return true
}

func (c *core) Visual() Visual {
	return c.visual
}

func (c *core) Refresh() {
	if c.visual != nil {
		c.visual.Refresh()
	}
}

func (c *core) attach(p Presenter, t Thing) Visual {
	if p == nil {
		return nil
	}
	v := p.NewVisual(t)
	c.visual = v
	if v != nil && c.deleted {
		v.SetDeleted(true)
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// mergeAttrs overlays update on current. Unknown names and non-finite values reject the update.
func mergeAttrs(names []string, current, update Attrs) (Attrs, bool) {
	next := current.Clone()
	for k, v := range update {
		if !hasName(names, k) || !finite(v) {
			return nil, false
		}
		next[k] = v
	}
	return next, true
}

func hasName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// updateAttrs is the shared merge, validate, store, refresh sequence.
func updateAttrs(t Thing, update Attrs, validate func(Attrs) bool, store func(Attrs)) bool {
	next, ok := mergeAttrs(t.Attrs(), t.Values(), update)
	if !ok {
		return false
	}
	if validate != nil && !validate(update) {
		return false
	}
	store(next)
	t.Refresh()
	return true
}
