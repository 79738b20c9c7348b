package thing

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
)

var rectAttrNames = []string{"x", "y", "width", "height"}

// rect is the x, y, width, height attribute block shared by boxes, goals and cradles.
type rect struct {
	X, Y          float64
	Width, Height float64
}

func (r *rect) values() Attrs {
	return Attrs{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
}

func (r *rect) store(a Attrs) {
	r.X, r.Y, r.Width, r.Height = a["x"], a["y"], a["width"], a["height"]
}

func (r *rect) node(kind Kind) Node {
	return Node{
		Tag:   string(kind),
		Attrs: []Attr{{"x", r.X}, {"y", r.Y}, {"width", r.Width}, {"height", r.Height}},
	}
}

// centered returns bounds for a rect anchored at its centre.
func (r *rect) centered() cp.BB {
	return cp.NewBBForExtents(common.Pt(r.X, r.Y), math.Abs(r.Width)/2, math.Abs(r.Height)/2)
}

// Box is a solid rectangular obstacle anchored at its centre.
type Box struct {
	core
	rect
}

func NewBox(x, y, width, height float64) *Box {
	return &Box{core: newCore(), rect: rect{X: x, Y: y, Width: width, Height: height}}
}

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) Attrs() []string { return rectAttrNames }

func (b *Box) Values() Attrs { return b.rect.values() }

func (b *Box) Attr(name string) (float64, bool) {
	v, ok := b.Values()[name]
	return v, ok
}

func (b *Box) UpdateAttrs(a Attrs) bool {
	return updateAttrs(b, a, nil, b.rect.store)
}

func (b *Box) Position() common.Point { return common.Pt(b.X, b.Y) }

func (b *Box) MoveTo(p common.Point) {
	b.X, b.Y = p.X, p.Y
	b.Refresh()
}

func (b *Box) CreateVisual(p Presenter) Visual { return b.attach(p, b) }

func (b *Box) Bounds() cp.BB { return b.centered() }

func (b *Box) Node() Node { return b.node(KindBox) }

// Goal is the target area. A goal never collapses to zero width or height.
type Goal struct {
	core
	rect
}

func NewGoal(x, y, width, height float64) *Goal {
	return &Goal{core: newCore(), rect: rect{X: x, Y: y, Width: width, Height: height}}
}

func (g *Goal) Kind() Kind { return KindGoal }

func (g *Goal) Attrs() []string { return rectAttrNames }

func (g *Goal) Values() Attrs { return g.rect.values() }

func (g *Goal) Attr(name string) (float64, bool) {
	v, ok := g.Values()[name]
	return v, ok
}

func (g *Goal) UpdateAttrs(a Attrs) bool {
	return updateAttrs(g, a, nonZeroSize, g.rect.store)
}

func nonZeroSize(a Attrs) bool {
	if w, ok := a["width"]; ok && w == 0 {
		return false
	}
	if h, ok := a["height"]; ok && h == 0 {
		return false
	}
	return true
}

func (g *Goal) Position() common.Point { return common.Pt(g.X, g.Y) }

func (g *Goal) MoveTo(p common.Point) {
	g.X, g.Y = p.X, p.Y
	g.Refresh()
}

func (g *Goal) CreateVisual(p Presenter) Visual { return g.attach(p, g) }

func (g *Goal) Bounds() cp.BB { return g.centered() }

func (g *Goal) Node() Node { return g.node(KindGoal) }

// Cradle is an open-topped cup. X is its horizontal centre and Y its floor.
type Cradle struct {
	core
	rect
}

func NewCradle(x, y, width, height float64) *Cradle {
	return &Cradle{core: newCore(), rect: rect{X: x, Y: y, Width: width, Height: height}}
}

func (c *Cradle) Kind() Kind { return KindCradle }

func (c *Cradle) Attrs() []string { return rectAttrNames }

func (c *Cradle) Values() Attrs { return c.rect.values() }

func (c *Cradle) Attr(name string) (float64, bool) {
	v, ok := c.Values()[name]
	return v, ok
}

func (c *Cradle) UpdateAttrs(a Attrs) bool {
	return updateAttrs(c, a, nil, c.rect.store)
}

func (c *Cradle) Position() common.Point { return common.Pt(c.X, c.Y) }

func (c *Cradle) MoveTo(p common.Point) {
	c.X, c.Y = p.X, p.Y
	c.Refresh()
}

func (c *Cradle) CreateVisual(p Presenter) Visual { return c.attach(p, c) }

func (c *Cradle) Bounds() cp.BB {
	hw := math.Abs(c.Width) / 2
	return cp.BB{L: c.X - hw, B: c.Y, R: c.X + hw, T: c.Y + math.Abs(c.Height)}
}

func (c *Cradle) Node() Node { return c.node(KindCradle) }
