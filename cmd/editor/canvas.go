package main

import (
	"math"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
)

const canvasPadding = 50

// Canvas maps between board units (y up) and screen pixels (y down).
type Canvas struct {
	// screen rectangle the board is fitted into
	X, Y, W, H float64

	scale   float64
	originX float64
	originY float64
	bounds  level.Bounds
}

// Fit centres b in the canvas rectangle, keeping its aspect ratio.
func (c *Canvas) Fit(b level.Bounds) {
	c.bounds = b
	availW := math.Max(c.W-2*canvasPadding, 1)
	availH := math.Max(c.H-2*canvasPadding, 1)
	c.scale = math.Min(availW/b.Width, availH/b.Height)
	c.originX = c.X + (c.W-b.Width*c.scale)/2
	c.originY = c.Y + (c.H-b.Height*c.scale)/2
}

// Scale returns pixels per board unit.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// ToScreen converts a board position to pixels.
func (c *Canvas) ToScreen(p common.Point) (float32, float32) {
	top := c.bounds.Bottom + c.bounds.Height
	x := c.originX + (p.X-c.bounds.Left)*c.scale
	y := c.originY + (top-p.Y)*c.scale
	return float32(x), float32(y)
}

// ToBoard converts a pixel position to board units.
func (c *Canvas) ToBoard(sx, sy int) common.Point {
	top := c.bounds.Bottom + c.bounds.Height
	return common.Pt(
		c.bounds.Left+(float64(sx)-c.originX)/c.scale,
		top-(float64(sy)-c.originY)/c.scale,
	)
}

// Contains reports whether the pixel lies inside the canvas rectangle.
func (c *Canvas) Contains(sx, sy int) bool {
	x, y := float64(sx), float64(sy)
	return x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H
}

// Length converts a board distance to pixels.
func (c *Canvas) Length(d float64) float32 {
	return float32(d * c.scale)
}
