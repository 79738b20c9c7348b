package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/thing"
	"golang.org/x/image/colornames"
)

// goalColumns is the number of checkerboard squares across a goal.
const goalColumns = 4

var (
	boardColor    = color.RGBA{250, 250, 245, 255}
	boxColor      = colornames.Slategray
	cradleColor   = colornames.Saddlebrown
	circleColor   = colornames.Steelblue
	pathColor     = colornames.Darkolivegreen
	startColor    = colornames.Crimson
	selectedColor = colornames.Orange
	previewColor  = colornames.Cornflowerblue
)

// sprite is the on-screen visual of one thing. Refresh snapshots the thing's
// geometry so drawing never reads a half-applied edit.
type sprite struct {
	t       thing.Thing
	deleted bool
	removed bool

	bounds cp.BB
	nodes  []common.Point
	centre common.Point
	radius float64
}

func (s *sprite) Refresh() {
	s.bounds = s.t.Bounds()
	s.centre = s.t.Position()
	s.nodes = nil
	switch t := s.t.(type) {
	case *thing.Path:
		s.nodes = t.Nodes()
	case *thing.Circle:
		s.radius = t.Radius
	case *thing.Start:
		s.radius = thing.BallRadius
	}
}

func (s *sprite) SetDeleted(deleted bool) { s.deleted = deleted }

func (s *sprite) Remove() { s.removed = true }

// Presenter creates sprites and draws the live ones in creation order.
type Presenter struct {
	sprites []*sprite
}

func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) NewVisual(t thing.Thing) thing.Visual {
	s := &sprite{t: t}
	s.Refresh()
	p.sprites = append(p.sprites, s)
	return s
}

// Draw renders every visible sprite, dropping removed ones.
func (p *Presenter) Draw(screen *ebiten.Image, c *Canvas, selected thing.Thing) {
	kept := p.sprites[:0]
	for _, s := range p.sprites {
		if s.removed {
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(p.sprites); i++ {
		p.sprites[i] = nil
	}
	p.sprites = kept

	for _, s := range p.sprites {
		if s.deleted {
			continue
		}
		s.draw(screen, c)
	}
	for _, s := range p.sprites {
		if !s.deleted && s.t == selected {
			strokeBB(screen, c, common.PadBB(s.bounds, 4/c.Scale()), selectedColor)
		}
	}
}

func (s *sprite) draw(screen *ebiten.Image, c *Canvas) {
	switch s.t.Kind() {
	case thing.KindStart:
		x, y := c.ToScreen(s.centre)
		vector.FillCircle(screen, x, y, c.Length(s.radius), startColor, true)
	case thing.KindBox:
		fillBB(screen, c, s.bounds, boxColor)
	case thing.KindGoal:
		drawCheckerboard(screen, c, s.bounds)
	case thing.KindCradle:
		drawCradle(screen, c, s.bounds)
	case thing.KindCircle:
		x, y := c.ToScreen(s.centre)
		vector.FillCircle(screen, x, y, c.Length(s.radius), circleColor, true)
	case thing.KindOpenPath, thing.KindPolygon:
		drawNodes(screen, c, s.nodes, s.t.Kind() == thing.KindPolygon, pathColor)
	}
}

func fillBB(screen *ebiten.Image, c *Canvas, bb cp.BB, clr color.Color) {
	x, y := c.ToScreen(common.Pt(bb.L, bb.T))
	w, h := c.Length(bb.R-bb.L), c.Length(bb.T-bb.B)
	vector.FillRect(screen, x, y, w, h, clr, false)
}

func strokeBB(screen *ebiten.Image, c *Canvas, bb cp.BB, clr color.Color) {
	x, y := c.ToScreen(common.Pt(bb.L, bb.T))
	w, h := c.Length(bb.R-bb.L), c.Length(bb.T-bb.B)
	vector.StrokeRect(screen, x, y, w, h, 2, clr, false)
}

// drawCheckerboard tiles bb with squares goalColumns across, clipping the top row.
func drawCheckerboard(screen *ebiten.Image, c *Canvas, bb cp.BB) {
	w, h := bb.R-bb.L, bb.T-bb.B
	if w <= 0 || h <= 0 {
		return
	}
	cell := w / goalColumns
	rows := int(math.Ceil(h/cell - 1e-9))
	for row := 0; row < rows; row++ {
		b := bb.B + float64(row)*cell
		t := math.Min(b+cell, bb.T)
		for col := 0; col < goalColumns; col++ {
			clr := color.Color(color.White)
			if (row+col)%2 == 0 {
				clr = color.Black
			}
			l := bb.L + float64(col)*cell
			fillBB(screen, c, cp.BB{L: l, B: b, R: l + cell, T: t}, clr)
		}
	}
	strokeBB(screen, c, bb, color.Black)
}

// drawCradle draws the open-topped cup: two walls and a floor.
func drawCradle(screen *ebiten.Image, c *Canvas, bb cp.BB) {
	lt := common.Pt(bb.L, bb.T)
	lb := common.Pt(bb.L, bb.B)
	rb := common.Pt(bb.R, bb.B)
	rt := common.Pt(bb.R, bb.T)
	strokeSegment(screen, c, lt, lb, cradleColor)
	strokeSegment(screen, c, lb, rb, cradleColor)
	strokeSegment(screen, c, rb, rt, cradleColor)
}

func drawNodes(screen *ebiten.Image, c *Canvas, nodes []common.Point, closed bool, clr color.Color) {
	for i := 1; i < len(nodes); i++ {
		strokeSegment(screen, c, nodes[i-1], nodes[i], clr)
	}
	if closed && len(nodes) > 2 {
		strokeSegment(screen, c, nodes[len(nodes)-1], nodes[0], clr)
	}
	for _, n := range nodes {
		x, y := c.ToScreen(n)
		vector.FillRect(screen, x-2, y-2, 4, 4, clr, false)
	}
}

func strokeSegment(screen *ebiten.Image, c *Canvas, a, b common.Point, clr color.Color) {
	x0, y0 := c.ToScreen(a)
	x1, y1 := c.ToScreen(b)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, clr, true)
}
