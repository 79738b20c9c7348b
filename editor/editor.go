package editor

import (
	"errors"
	"fmt"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/session"
	"github.com/milk9111/marblebounce/thing"
)

// ErrNoSelection is returned by operations that need a selected thing.
var ErrNoSelection = errors.New("editor: nothing selected")

// Editor owns the level being edited and routes input to the active gesture.
type Editor struct {
	level     *level.Level
	presenter thing.Presenter
	th        session.Thresholds
	maxUndo   int
	tolerance float64

	autosave func(doc string)
	dispatch func(func())

	tool   session.Tool
	active session.Session
}

// New creates an editor for l. A nil level yields an empty board with a start point.
func New(l *level.Level, opts ...Option) *Editor {
	e := &Editor{
		presenter: thing.NopPresenter{},
		th:        session.DefaultThresholds(),
		tolerance: 0.05,
		dispatch:  func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if l == nil {
		l = level.New(level.Bounds{Width: 3.5, Height: 4.8})
		l.AddThing(thing.NewStart(1.75, 3.5))
	}
	e.install(l)
	return e
}

func (e *Editor) Level() *level.Level {
	return e.level
}

// Replace swaps in a new level, dropping the old one and its history.
func (e *Editor) Replace(l *level.Level) {
	if l == nil {
		return
	}
	e.install(l)
	e.save()
}

// Load decodes doc and replaces the current level. On error the current level is kept.
func (e *Editor) Load(doc string) error {
	l, err := codec.Decode(doc)
	if err != nil {
		return fmt.Errorf("editor: load: %w", err)
	}
	e.Replace(l)
	return nil
}

// Encode serializes the current level.
func (e *Editor) Encode() string {
	return codec.Encode(e.level)
}

func (e *Editor) install(l *level.Level) {
	if e.active != nil {
		e.active.Cancel()
		e.active = nil
	}
	if e.level != nil {
		for _, t := range e.level.Things() {
			if v := t.Visual(); v != nil {
				v.Remove()
			}
		}
	}

	l.MaxUndo = e.maxUndo
	for _, t := range l.Things() {
		t.CreateVisual(e.presenter)
	}
	l.OnChange(func(level.Change) { e.save() })
	e.level = l
}

// save encodes on the caller's goroutine and hands the document to the autosave hook.
func (e *Editor) save() {
	if e.autosave == nil {
		return
	}
	doc := codec.Encode(e.level)
	hook := e.autosave
	e.dispatch(func() { hook(doc) })
}

// SetThresholds updates the click detection window for gestures started from now on.
func (e *Editor) SetThresholds(th session.Thresholds) {
	e.th = th
}

func (e *Editor) Tool() session.Tool {
	return e.tool
}

// SetTool switches tools, abandoning any gesture in progress.
func (e *Editor) SetTool(t session.Tool) {
	e.Cancel()
	e.tool = t
}

// Active returns the gesture in progress, if any.
func (e *Editor) Active() session.Session {
	return e.active
}

// Cancel abandons the gesture in progress.
func (e *Editor) Cancel() {
	if e.active == nil {
		return
	}
	e.active.Cancel()
	e.active = nil
}

func (e *Editor) Undo() bool {
	e.Cancel()
	return e.level.Undo()
}

func (e *Editor) Redo() bool {
	e.Cancel()
	return e.level.Redo()
}

func (e *Editor) Selected() thing.Thing {
	return e.level.Selected()
}

func (e *Editor) Select(t thing.Thing) {
	e.level.Select(t)
}

// SelectAt selects the topmost thing under p, or clears the selection.
func (e *Editor) SelectAt(p common.Point) thing.Thing {
	t := e.level.HitTest(p, e.tolerance)
	e.level.Select(t)
	return t
}

// Delete removes t as a single undoable edit.
func (e *Editor) Delete(t thing.Thing) bool {
	if t == nil || t.Deleted() {
		return false
	}
	name := e.level.DisplayName(t)
	if !e.level.DeleteThing(t) {
		return false
	}
	e.level.PushCommand(level.DeleteCommand(name, t))
	return true
}

// DeleteSelected deletes the selected thing.
func (e *Editor) DeleteSelected() bool {
	return e.Delete(e.level.Selected())
}

// StartAddNode begins appending nodes to the selected path.
func (e *Editor) StartAddNode() (*session.AddNode, error) {
	p, ok := e.level.Selected().(thing.NodeEditor)
	if !ok {
		return nil, fmt.Errorf("editor: add node: %w", ErrNoSelection)
	}
	e.Cancel()
	s := session.NewAddNode(e.level, p)
	e.active = s
	return s, nil
}

// StartAttrEdit begins editing attr of the selection, or of the level when nothing is selected.
func (e *Editor) StartAttrEdit(attr string) (*session.AttrEdit, error) {
	e.Cancel()
	s, err := session.NewAttrEdit(e.level, e.level.Selected(), attr)
	if err != nil {
		return nil, fmt.Errorf("editor: edit attribute: %w", err)
	}
	e.active = s
	return s, nil
}

// Attrs returns the editable attribute names of the selection or of the level.
func (e *Editor) Attrs() []string {
	if t := e.level.Selected(); t != nil {
		return t.Attrs()
	}
	return level.BoundsAttrs()
}

// HandlePointer routes ev to the active gesture, starting one when the tool calls for it.
func (e *Editor) HandlePointer(ev session.PointerEvent) {
	if e.active == nil {
		e.active = e.begin(ev)
		if e.active == nil {
			return
		}
	}
	if e.active.HandlePointer(ev).Done() {
		e.active = nil
	}
}

func (e *Editor) begin(ev session.PointerEvent) session.Session {
	if ev.Kind != session.PointerPress || ev.Button != session.ButtonPrimary {
		return nil
	}

	kind, ok := e.tool.Kind()
	if !ok {
		t := e.SelectAt(ev.Pos)
		if t == nil {
			return nil
		}
		return session.NewDrag(e.level, t, ev.Pos)
	}

	e.level.Select(nil)
	if kind.IsPath() {
		s, err := session.NewPathPlacement(e.level, e.presenter, kind)
		if err != nil {
			return nil
		}
		return s
	}
	s, err := session.NewPlacement(e.level, e.presenter, kind, e.th)
	if err != nil {
		return nil
	}
	return s
}

// HandleKey routes ev to the active gesture. Without one, Delete and Backspace
// delete the selection and Escape clears it.
func (e *Editor) HandleKey(ev session.KeyEvent) {
	if e.active != nil {
		if e.active.HandleKey(ev).Done() {
			e.active = nil
		}
		return
	}
	switch ev.Key {
	case session.KeyDelete, session.KeyBackspace:
		e.DeleteSelected()
	case session.KeyEscape:
		e.level.Select(nil)
	}
}

// Preview returns the rubber band segment of a path gesture in progress.
func (e *Editor) Preview() (from, to common.Point, ok bool) {
	switch s := e.active.(type) {
	case *session.PathPlacement:
		return s.Preview()
	case *session.AddNode:
		return s.Preview()
	}
	return common.Point{}, common.Point{}, false
}
