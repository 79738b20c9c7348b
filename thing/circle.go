package thing

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
)

var circleAttrNames = []string{"x", "y", "radius"}

// Circle is a round obstacle anchored at its centre. The document calls the radius "r".
type Circle struct {
	core
	X, Y   float64
	Radius float64
}

func NewCircle(x, y, radius float64) *Circle {
	return &Circle{core: newCore(), X: x, Y: y, Radius: radius}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Attrs() []string { return circleAttrNames }

func (c *Circle) Values() Attrs {
	return Attrs{"x": c.X, "y": c.Y, "radius": c.Radius}
}

func (c *Circle) Attr(name string) (float64, bool) {
	v, ok := c.Values()[name]
	return v, ok
}

func (c *Circle) UpdateAttrs(a Attrs) bool {
	return updateAttrs(c, a, nil, func(next Attrs) {
		c.X, c.Y, c.Radius = next["x"], next["y"], next["radius"]
	})
}

func (c *Circle) Position() common.Point { return common.Pt(c.X, c.Y) }

func (c *Circle) MoveTo(p common.Point) {
	c.X, c.Y = p.X, p.Y
	c.Refresh()
}

func (c *Circle) CreateVisual(p Presenter) Visual { return c.attach(p, c) }

func (c *Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.Position(), math.Abs(c.Radius))
}

func (c *Circle) Node() Node {
	return Node{Tag: string(KindCircle), Attrs: []Attr{{"x", c.X}, {"y", c.Y}, {"r", c.Radius}}}
}
