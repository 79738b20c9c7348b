package thing

import (
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/marblebounce/common"
)

// NodeEditor is implemented by things built from an ordered node list.
type NodeEditor interface {
	Thing
	Nodes() []common.Point
	PushNode(x, y float64)
	// PopNode removes the last node. The first node is never removed.
	PopNode() bool
}

// Path is an OpenPath (a polyline wall) or a Polygon (a closed solid).
// Node attributes are exposed as "x 1", "y 1", "x 2", ... counting from one.
type Path struct {
	core
	kind  Kind
	nodes []common.Point
}

// NewPath returns an empty path of the given kind. Callers must add at least one node.
func NewPath(kind Kind) *Path {
	if kind != KindPolygon {
		kind = KindOpenPath
	}
	return &Path{core: newCore(), kind: kind}
}

func NewOpenPath(pts ...common.Point) *Path {
	p := NewPath(KindOpenPath)
	p.nodes = append(p.nodes, pts...)
	return p
}

func NewPolygon(pts ...common.Point) *Path {
	p := NewPath(KindPolygon)
	p.nodes = append(p.nodes, pts...)
	return p
}

func (p *Path) appendNode(x, y float64) {
	p.nodes = append(p.nodes, common.Pt(x, y))
}

func (p *Path) Kind() Kind { return p.kind }

// Closed reports whether the last node joins back to the first.
func (p *Path) Closed() bool { return p.kind == KindPolygon }

func (p *Path) Nodes() []common.Point {
	out := make([]common.Point, len(p.nodes))
	copy(out, p.nodes)
	return out
}

func (p *Path) Len() int { return len(p.nodes) }

func (p *Path) PushNode(x, y float64) {
	p.appendNode(x, y)
	p.Refresh()
}

func (p *Path) PopNode() bool {
	if len(p.nodes) <= 1 {
		return false
	}
	p.nodes = p.nodes[:len(p.nodes)-1]
	p.Refresh()
	return true
}

// SetLast moves the last node, used while rubber-banding during placement.
func (p *Path) SetLast(pt common.Point) {
	if len(p.nodes) == 0 {
		return
	}
	p.nodes[len(p.nodes)-1] = pt
	p.Refresh()
}

// NodeAttrNames returns the attribute names for node i, counting from zero.
func NodeAttrNames(i int) (string, string) {
	n := strconv.Itoa(i + 1)
	return "x " + n, "y " + n
}

// parseNodeAttr splits "x 3" into ('x', 2).
func parseNodeAttr(name string) (byte, int, bool) {
	axis, idx, ok := strings.Cut(name, " ")
	if !ok || (axis != "x" && axis != "y") {
		return 0, 0, false
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return axis[0], n - 1, true
}

func (p *Path) Attrs() []string {
	names := make([]string, 0, len(p.nodes)*2)
	for i := range p.nodes {
		x, y := NodeAttrNames(i)
		names = append(names, x, y)
	}
	return names
}

func (p *Path) Values() Attrs {
	out := make(Attrs, len(p.nodes)*2)
	for i, n := range p.nodes {
		x, y := NodeAttrNames(i)
		out[x] = n.X
		out[y] = n.Y
	}
	return out
}

func (p *Path) Attr(name string) (float64, bool) {
	axis, i, ok := parseNodeAttr(name)
	if !ok || i >= len(p.nodes) {
		return 0, false
	}
	if axis == 'x' {
		return p.nodes[i].X, true
	}
	return p.nodes[i].Y, true
}

func (p *Path) UpdateAttrs(a Attrs) bool {
	return updateAttrs(p, a, nil, func(next Attrs) {
		for i := range p.nodes {
			x, y := NodeAttrNames(i)
			p.nodes[i] = common.Pt(next[x], next[y])
		}
	})
}

// Position is the first node.
func (p *Path) Position() common.Point {
	if len(p.nodes) == 0 {
		return cp.Vector{}
	}
	return p.nodes[0]
}

// MoveTo translates every node so the first lands on pt.
func (p *Path) MoveTo(pt common.Point) {
	delta := pt.Sub(p.Position())
	for i := range p.nodes {
		p.nodes[i] = p.nodes[i].Add(delta)
	}
	p.Refresh()
}

func (p *Path) CreateVisual(pr Presenter) Visual { return p.attach(pr, p) }

func (p *Path) Bounds() cp.BB {
	return common.BoundsOf(p.nodes)
}

func (p *Path) Node() Node {
	n := Node{Tag: string(p.kind), Children: make([]Node, 0, len(p.nodes))}
	for _, pt := range p.nodes {
		n.Children = append(n.Children, Node{Tag: "node", Attrs: []Attr{{"x", pt.X}, {"y", pt.Y}}})
	}
	return n
}
