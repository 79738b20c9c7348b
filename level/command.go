package level

import (
	"fmt"
	"strings"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/thing"
)

// Action is one side of a reversible edit. Actions capture the values they
// apply so a command can be inspected and replayed any number of times.
type Action interface {
	Apply(l *Level)
	String() string
}

// Command is a named, reversible edit.
type Command struct {
	Label string
	Undo  Action
	Redo  Action
}

func (c *Command) String() string {
	return fmt.Sprintf("%s (undo: %s, redo: %s)", c.Label, c.Undo, c.Redo)
}

// SetAttrs applies Values to Thing with UpdateAttrs.
type SetAttrs struct {
	Thing  thing.Thing
	Values thing.Attrs
}

func (a SetAttrs) Apply(*Level) {
	a.Thing.UpdateAttrs(a.Values)
}

func (a SetAttrs) String() string {
	return fmt.Sprintf("set %s %v", a.Thing.Kind(), a.Values)
}

// SetDeleted flips the soft-delete flag of Thing.
type SetDeleted struct {
	Thing   thing.Thing
	Deleted bool
}

func (a SetDeleted) Apply(l *Level) {
	a.Thing.SetDeleted(a.Deleted)
	if a.Deleted && l.selected == a.Thing {
		l.selected = nil
	}
}

func (a SetDeleted) String() string {
	if a.Deleted {
		return fmt.Sprintf("delete %s", a.Thing.Kind())
	}
	return fmt.Sprintf("restore %s", a.Thing.Kind())
}

// MoveTo moves the anchor of Thing to To.
type MoveTo struct {
	Thing thing.Thing
	To    common.Point
}

func (a MoveTo) Apply(*Level) {
	a.Thing.MoveTo(a.To)
}

func (a MoveTo) String() string {
	return fmt.Sprintf("move %s to %v", a.Thing.Kind(), a.To)
}

// PushNode appends At to Path.
type PushNode struct {
	Path thing.NodeEditor
	At   common.Point
}

func (a PushNode) Apply(*Level) {
	a.Path.PushNode(a.At.X, a.At.Y)
}

func (a PushNode) String() string {
	return fmt.Sprintf("push node %v", a.At)
}

// PopNode removes the last node of Path.
type PopNode struct {
	Path thing.NodeEditor
}

func (a PopNode) Apply(*Level) {
	a.Path.PopNode()
}

func (a PopNode) String() string {
	return "pop node"
}

// SetBounds replaces the board rectangle.
type SetBounds struct {
	Bounds Bounds
}

func (a SetBounds) Apply(l *Level) {
	l.bounds = a.Bounds
}

func (a SetBounds) String() string {
	return fmt.Sprintf("bounds %+v", a.Bounds)
}

// Batch applies its actions in order.
type Batch []Action

func (b Batch) Apply(l *Level) {
	for _, a := range b {
		a.Apply(l)
	}
}

func (b Batch) String() string {
	parts := make([]string, len(b))
	for i, a := range b {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

// AddCommand records the addition of t, undone by soft deletion.
func AddCommand(t thing.Thing) *Command {
	return &Command{
		Label: "Add " + string(t.Kind()),
		Undo:  SetDeleted{Thing: t, Deleted: true},
		Redo:  SetDeleted{Thing: t, Deleted: false},
	}
}

// DeleteCommand records the deletion of t under its display name.
func DeleteCommand(name string, t thing.Thing) *Command {
	return &Command{
		Label: "Delete " + name,
		Undo:  SetDeleted{Thing: t, Deleted: false},
		Redo:  SetDeleted{Thing: t, Deleted: true},
	}
}

// MoveCommand records a move of t from one anchor to another.
func MoveCommand(name string, t thing.Thing, from, to common.Point) *Command {
	return &Command{
		Label: "Move " + name,
		Undo:  MoveTo{Thing: t, To: from},
		Redo:  MoveTo{Thing: t, To: to},
	}
}

// AddNodeCommand records a node appended to an existing path.
func AddNodeCommand(p thing.NodeEditor, at common.Point) *Command {
	return &Command{
		Label: "Add Node",
		Undo:  PopNode{Path: p},
		Redo:  PushNode{Path: p, At: at},
	}
}

// ChangeCommand records an attribute edit, labelled "<name>::<attr>".
func ChangeCommand(name, attr string, t thing.Thing, from, to float64) *Command {
	return &Command{
		Label: fmt.Sprintf("Change %s::%s", name, attr),
		Undo:  SetAttrs{Thing: t, Values: thing.Attrs{attr: from}},
		Redo:  SetAttrs{Thing: t, Values: thing.Attrs{attr: to}},
	}
}

// ChangeBoundsCommand records an edit of the board rectangle.
func ChangeBoundsCommand(attr string, from, to Bounds) *Command {
	return &Command{
		Label: fmt.Sprintf("Change %s::%s", Name, attr),
		Undo:  SetBounds{Bounds: from},
		Redo:  SetBounds{Bounds: to},
	}
}
