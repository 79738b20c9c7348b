package session

import (
	"fmt"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

// PathPlacement builds a new open path or polygon one click at a time.
// Nodes placed here are not recorded individually; finishing records a single addition.
type PathPlacement struct {
	level     *level.Level
	presenter thing.Presenter
	kind      thing.Kind

	status Status
	path   *thing.Path
	cursor common.Point
}

func NewPathPlacement(l *level.Level, p thing.Presenter, kind thing.Kind) (*PathPlacement, error) {
	if !kind.IsPath() {
		return nil, fmt.Errorf("session: %s is not a path kind", kind)
	}
	return &PathPlacement{level: l, presenter: p, kind: kind}, nil
}

// Path returns the path under construction, or nil before the first click.
func (s *PathPlacement) Path() *thing.Path {
	return s.path
}

func (s *PathPlacement) Status() Status {
	return s.status
}

// Preview returns the rubber band segment from the last node to the cursor.
func (s *PathPlacement) Preview() (from, to common.Point, ok bool) {
	if s.path == nil || s.status.Done() {
		return common.Point{}, common.Point{}, false
	}
	nodes := s.path.Nodes()
	return nodes[len(nodes)-1], s.cursor, true
}

func (s *PathPlacement) HandlePointer(ev PointerEvent) Status {
	if s.status.Done() {
		return s.status
	}
	s.cursor = ev.Pos

	switch {
	case ev.Kind == PointerPress && ev.Button == ButtonSecondary:
		s.finish()
	case ev.Kind == PointerRelease && ev.Button == ButtonPrimary:
		s.place(ev.Pos)
	}
	return s.status
}

func (s *PathPlacement) HandleKey(ev KeyEvent) Status {
	if s.status.Done() {
		return s.status
	}
	switch ev.Key {
	case KeyEscape:
		s.Cancel()
	case KeyEnter:
		s.finish()
	}
	return s.status
}

func (s *PathPlacement) Cancel() {
	if s.status.Done() {
		return
	}
	if s.path != nil {
		if v := s.path.Visual(); v != nil {
			v.Remove()
		}
	}
	s.status = Cancelled
}

func (s *PathPlacement) place(p common.Point) {
	if s.path == nil {
		s.path = thing.NewPath(s.kind)
		s.path.PushNode(p.X, p.Y)
		s.path.CreateVisual(s.presenter)
		return
	}
	s.path.PushNode(p.X, p.Y)
}

func (s *PathPlacement) finish() {
	if s.path == nil {
		s.Cancel()
		return
	}
	s.level.AddThing(s.path)
	s.level.PushCommand(level.AddCommand(s.path))
	s.level.Select(s.path)
	s.status = Committed
}

// AddNode appends nodes to an existing path. Every click is its own undoable command.
type AddNode struct {
	level  *level.Level
	path   thing.NodeEditor
	status Status
	cursor common.Point
	added  int
}

func NewAddNode(l *level.Level, p thing.NodeEditor) *AddNode {
	return &AddNode{level: l, path: p}
}

func (s *AddNode) Status() Status {
	return s.status
}

// Added returns how many nodes this session appended.
func (s *AddNode) Added() int {
	return s.added
}

// Preview returns the segment from the current last node to the cursor.
func (s *AddNode) Preview() (from, to common.Point, ok bool) {
	if s.status.Done() {
		return common.Point{}, common.Point{}, false
	}
	nodes := s.path.Nodes()
	if len(nodes) == 0 {
		return common.Point{}, common.Point{}, false
	}
	return nodes[len(nodes)-1], s.cursor, true
}

func (s *AddNode) HandlePointer(ev PointerEvent) Status {
	if s.status.Done() {
		return s.status
	}
	s.cursor = ev.Pos

	switch {
	case ev.Kind == PointerPress && ev.Button == ButtonSecondary:
		s.end()
	case ev.Kind == PointerRelease && ev.Button == ButtonPrimary:
		s.path.PushNode(ev.Pos.X, ev.Pos.Y)
		s.level.PushCommand(level.AddNodeCommand(s.path, ev.Pos))
		s.added++
	}
	return s.status
}

func (s *AddNode) HandleKey(ev KeyEvent) Status {
	if s.status.Done() {
		return s.status
	}
	switch ev.Key {
	case KeyEscape, KeyEnter:
		s.end()
	}
	return s.status
}

// Cancel stops adding nodes. Nodes already added stay; they are on the undo stack.
func (s *AddNode) Cancel() {
	s.end()
}

func (s *AddNode) end() {
	if s.status.Done() {
		return
	}
	if s.added > 0 {
		s.status = Committed
		return
	}
	s.status = Cancelled
}
