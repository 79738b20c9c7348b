// Package tmx imports levels drawn in the Tiled map editor.
//
// Objects in every object group become things. The object's class (or its
// legacy type, or its name) picks the kind: start, goal, box, cradle or
// circle. Polylines become open paths, polygons become polygons and
// unclassed ellipses become circles; plain rectangles default to boxes. Tiled's y-down pixel space is flipped into the
// board's y-up units.
package tmx

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

// ErrNoStart is returned when the map has no start object.
var ErrNoStart = errors.New("tmx: map has no start object")

// Options controls the conversion.
type Options struct {
	// PixelsPerUnit is the number of map pixels per board unit. The map
	// property "pixels_per_unit" overrides it. Defaults to 100.
	PixelsPerUnit float64
	// Group restricts the import to one object group when set.
	Group string
}

// Load reads path from fsys and converts it.
func Load(fsys fs.FS, path string, opts Options) (*level.Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("tmx: load %s: %w", path, err)
	}
	return Convert(m, opts)
}

// Convert builds a level from a parsed map.
func Convert(m *tiled.Map, opts Options) (*level.Level, error) {
	ppu := opts.PixelsPerUnit
	if m.Properties != nil {
		if v := m.Properties.GetFloat("pixels_per_unit"); v > 0 {
			ppu = v
		}
	}
	if ppu <= 0 {
		ppu = 100
	}

	c := converter{
		ppu:    ppu,
		height: float64(m.Height*m.TileHeight) / ppu,
	}
	bounds := level.Bounds{Width: float64(m.Width*m.TileWidth) / ppu, Height: c.height}

	var start *thing.Start
	var things []thing.Thing
	for _, og := range m.ObjectGroups {
		if opts.Group != "" && og.Name != opts.Group {
			continue
		}
		for _, o := range og.Objects {
			if !o.Visible {
				continue
			}
			t, err := c.object(o)
			if err != nil {
				return nil, fmt.Errorf("tmx: object %d (%s): %w", o.ID, o.Name, err)
			}
			if s, ok := t.(*thing.Start); ok {
				if start != nil {
					return nil, fmt.Errorf("tmx: object %d: more than one start", o.ID)
				}
				start = s
			}
			things = append(things, t)
		}
	}
	if start == nil {
		return nil, ErrNoStart
	}

	l := level.New(bounds)
	for _, t := range things {
		l.AddThing(t)
	}
	return l, nil
}

type converter struct {
	ppu    float64
	height float64
}

// pt maps a Tiled pixel position to board units.
func (c converter) pt(x, y float64) common.Point {
	return common.Pt(x/c.ppu, c.height-y/c.ppu)
}

func (c converter) object(o *tiled.Object) (thing.Thing, error) {
	if len(o.PolyLines) > 0 && o.PolyLines[0].Points != nil {
		return c.path(thing.KindOpenPath, o, *o.PolyLines[0].Points)
	}
	if len(o.Polygons) > 0 && o.Polygons[0].Points != nil {
		return c.path(thing.KindPolygon, o, *o.Polygons[0].Points)
	}

	w, h := o.Width/c.ppu, o.Height/c.ppu
	centre := c.pt(o.X+o.Width/2, o.Y+o.Height/2)

	kind := kindOf(o)
	if len(o.Ellipses) > 0 && kind == "" {
		kind = thing.KindCircle
	}

	switch kind {
	case thing.KindStart:
		return thing.NewStart(centre.X, centre.Y), nil
	case thing.KindGoal:
		if w == 0 || h == 0 {
			return nil, errors.New("goal needs a size")
		}
		return thing.NewGoal(centre.X, centre.Y, w, h), nil
	case thing.KindCradle:
		floor := c.pt(0, o.Y+o.Height)
		return thing.NewCradle(centre.X, floor.Y, w, h), nil
	case thing.KindCircle:
		r := o.Properties.GetFloat("radius")
		if r <= 0 {
			r = math.Min(o.Width, o.Height) / 2 / c.ppu
		}
		return thing.NewCircle(centre.X, centre.Y, r), nil
	case thing.KindBox, "":
		return thing.NewBox(centre.X, centre.Y, w, h), nil
	default:
		return nil, fmt.Errorf("unsupported class %q", kind)
	}
}

func (c converter) path(kind thing.Kind, o *tiled.Object, pts tiled.Points) (thing.Thing, error) {
	if len(pts) == 0 {
		return nil, thing.ErrNoNodes
	}
	p := thing.NewPath(kind)
	for _, pt := range pts {
		b := c.pt(o.X+pt.X, o.Y+pt.Y)
		p.PushNode(b.X, b.Y)
	}
	return p, nil
}

func kindOf(o *tiled.Object) thing.Kind {
	for _, s := range []string{o.Class, o.Type, o.Name} { //nolint:staticcheck // older maps use type=
		if k, ok := thing.ParseKind(strings.ToLower(strings.TrimSpace(s))); ok {
			return k
		}
	}
	if o.Class != "" {
		return thing.Kind(strings.ToLower(o.Class))
	}
	return ""
}
