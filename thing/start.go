package thing

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
)

// BallRadius is the radius of the marble dropped at the start point.
const BallRadius = 0.1

var pointAttrNames = []string{"x", "y"}

// Start is where the marble spawns. Every level has exactly one and it cannot be deleted.
type Start struct {
	core
	X, Y float64
}

func NewStart(x, y float64) *Start {
	return &Start{core: newCore(), X: x, Y: y}
}

func (s *Start) Kind() Kind { return KindStart }

func (s *Start) CanBeDeleted() bool { return false }

// SetDeleted is ignored; the start point is permanent.
func (s *Start) SetDeleted(bool) {}

func (s *Start) Attrs() []string { return pointAttrNames }

func (s *Start) Values() Attrs {
	return Attrs{"x": s.X, "y": s.Y}
}

func (s *Start) Attr(name string) (float64, bool) {
	v, ok := s.Values()[name]
	return v, ok
}

func (s *Start) UpdateAttrs(a Attrs) bool {
	return updateAttrs(s, a, nil, func(next Attrs) {
		s.X, s.Y = next["x"], next["y"]
	})
}

func (s *Start) Position() common.Point {
	return common.Pt(s.X, s.Y)
}

func (s *Start) MoveTo(p common.Point) {
	s.X, s.Y = p.X, p.Y
	s.Refresh()
}

func (s *Start) CreateVisual(p Presenter) Visual {
	return s.attach(p, s)
}

func (s *Start) Bounds() cp.BB {
	return cp.NewBBForCircle(s.Position(), BallRadius)
}

func (s *Start) Node() Node {
	return Node{Tag: string(KindStart), Attrs: []Attr{{"x", s.X}, {"y", s.Y}}}
}
