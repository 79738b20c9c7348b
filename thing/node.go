package thing

import (
	"errors"
	"fmt"
	"math"
)

// Node is the serialized form of a thing: a tag, ordered numeric attributes and child nodes.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Attr is a single numeric document attribute.
type Attr struct {
	Name  string
	Value float64
}

// Get returns the value of the named attribute.
func (n Node) Get(name string) (float64, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return 0, false
}

// AttrError reports a missing or non-numeric attribute on a document node.
type AttrError struct {
	Tag  string
	Attr string
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("thing: %s: missing or invalid attribute %q", e.Tag, e.Attr)
}

// require fetches every named attribute or fails with an AttrError.
func (n Node) require(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := n.Get(name)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &AttrError{Tag: n.Tag, Attr: name}
		}
		out[i] = v
	}
	return out, nil
}

// ErrNoNodes is returned when a path node carries no vertices.
var ErrNoNodes = errors.New("thing: path has no nodes")

// FromNode builds the thing described by n. It fails for unknown tags and
// missing attributes.
func FromNode(n Node) (Thing, error) {
	kind, ok := ParseKind(n.Tag)
	if !ok {
		return nil, fmt.Errorf("thing: unknown tag %q", n.Tag)
	}

	switch kind {
	case KindStart:
		v, err := n.require("x", "y")
		if err != nil {
			return nil, err
		}
		return NewStart(v[0], v[1]), nil
	case KindGoal, KindBox, KindCradle:
		v, err := n.require("x", "y", "width", "height")
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindGoal:
			return NewGoal(v[0], v[1], v[2], v[3]), nil
		case KindBox:
			return NewBox(v[0], v[1], v[2], v[3]), nil
		default:
			return NewCradle(v[0], v[1], v[2], v[3]), nil
		}
	case KindCircle:
		v, err := n.require("x", "y")
		if err != nil {
			return nil, err
		}
		r, ok := n.Get("r")
		if !ok {
			r, ok = n.Get("radius")
		}
		if !ok || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, &AttrError{Tag: n.Tag, Attr: "r"}
		}
		return NewCircle(v[0], v[1], r), nil
	default:
		if len(n.Children) == 0 {
			return nil, ErrNoNodes
		}
		p := NewPath(kind)
		for _, c := range n.Children {
			v, err := c.require("x", "y")
			if err != nil {
				return nil, err
			}
			p.appendNode(v[0], v[1])
		}
		return p, nil
	}
}

// New returns a default-sized thing of the given kind anchored at (x, y),
// ready to be stretched by a placement gesture.
func New(kind Kind, x, y float64) (Thing, error) {
	switch kind {
	case KindStart:
		return NewStart(x, y), nil
	case KindGoal:
		return NewGoal(x, y, 0, 0), nil
	case KindBox:
		return NewBox(x, y, 0, 0), nil
	case KindCradle:
		return NewCradle(x, y, 0, 0), nil
	case KindCircle:
		return NewCircle(x, y, 0), nil
	case KindOpenPath, KindPolygon:
		p := NewPath(kind)
		p.appendNode(x, y)
		return p, nil
	default:
		return nil, fmt.Errorf("thing: unknown kind %q", kind)
	}
}
