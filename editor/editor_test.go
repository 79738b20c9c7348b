package editor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/session"
	"github.com/milk9111/marblebounce/thing"
)

type saves struct {
	docs []string
}

func (s *saves) hook(doc string) { s.docs = append(s.docs, doc) }

func newTestEditor(s *saves) *Editor {
	return New(nil,
		WithAutosave(s.hook),
		WithDispatcher(func(f func()) { f() }),
	)
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func press(x, y float64, at time.Duration) session.PointerEvent {
	return session.PointerEvent{Kind: session.PointerPress, Pos: common.Pt(x, y), Screen: common.Pt(x*100, y*100), PrimaryHeld: true, Time: t0.Add(at)}
}

func release(x, y float64, at time.Duration) session.PointerEvent {
	return session.PointerEvent{Kind: session.PointerRelease, Pos: common.Pt(x, y), Screen: common.Pt(x*100, y*100), Time: t0.Add(at)}
}

func TestDefaultLevel(t *testing.T) {
	e := newTestEditor(&saves{})
	doc := e.Encode()
	if !strings.Contains(doc, `<level width="3.5" height="4.8" left="0" bottom="0">`) {
		t.Fatalf("unexpected root:\n%s", doc)
	}
	if !strings.Contains(doc, `<start x="1.75" y="3.5">`) {
		t.Fatalf("unexpected start:\n%s", doc)
	}
}

func TestPlaceBoxAutosaves(t *testing.T) {
	s := &saves{}
	e := newTestEditor(s)
	e.SetTool(session.ToolBox)

	e.HandlePointer(press(0, 0, 0))
	e.HandlePointer(release(1, 2, time.Second))
	if e.Active() != nil {
		t.Fatalf("placement should have finished")
	}
	if len(s.docs) != 1 || !strings.Contains(s.docs[0], `<box x="0.5" y="1" width="1" height="2">`) {
		t.Fatalf("unexpected autosaves %v", s.docs)
	}

	e.Undo()
	e.Redo()
	if len(s.docs) != 3 {
		t.Fatalf("expected autosave after undo and redo, got %d", len(s.docs))
	}
	if strings.Contains(s.docs[1], "<box") || !strings.Contains(s.docs[2], "<box") {
		t.Fatalf("autosaved documents do not follow undo/redo")
	}
}

func TestSelectAndDrag(t *testing.T) {
	e := newTestEditor(&saves{})
	b := thing.NewBox(1, 1, 1, 1)
	e.Level().AddThing(b)

	e.HandlePointer(press(1, 1, 0))
	if e.Selected() != b {
		t.Fatalf("box was not selected")
	}
	move := press(2, 1.5, 100*time.Millisecond)
	move.Kind = session.PointerMove
	e.HandlePointer(move)
	e.HandlePointer(release(2, 1.5, 200*time.Millisecond))

	if !b.Position().Equal(common.Pt(2, 1.5)) {
		t.Fatalf("box at %v", b.Position())
	}
	if e.Level().UndoLabel() != "Move Box 1" {
		t.Fatalf("UndoLabel = %q", e.Level().UndoLabel())
	}
}

func TestClickOnEmptyBoardClearsSelection(t *testing.T) {
	e := newTestEditor(&saves{})
	e.Select(e.Level().Start())
	e.HandlePointer(press(0.2, 0.2, 0))
	if e.Selected() != nil || e.Active() != nil {
		t.Fatalf("expected empty selection and no gesture")
	}
}

func TestDelete(t *testing.T) {
	e := newTestEditor(&saves{})
	if e.Delete(e.Level().Start()) {
		t.Fatalf("start was deleted")
	}
	if e.Level().CanUndo() {
		t.Fatalf("refused delete was recorded")
	}

	c := thing.NewCircle(1, 1, 0.2)
	e.Level().AddThing(c)
	e.Select(c)
	e.HandleKey(session.KeyEvent{Key: session.KeyDelete})
	if !c.Deleted() || e.Level().UndoLabel() != "Delete Circle 1" {
		t.Fatalf("delete key did not delete the selection")
	}
	e.Undo()
	if c.Deleted() {
		t.Fatalf("undo did not restore the circle")
	}
}

func TestLoad(t *testing.T) {
	s := &saves{}
	e := newTestEditor(s)
	before := e.Level()

	err := e.Load(`<level width="1"><start x="0" y="0"/></level>`)
	var merr *codec.MalformedLevelError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedLevelError, got %v", err)
	}
	if e.Level() != before || len(s.docs) != 0 {
		t.Fatalf("failed load replaced the level")
	}

	doc := `<level width="2" height="2" left="0" bottom="0"><start x="1" y="1"/><goal x="1" y="0.5" width="0.2" height="0.2"/></level>`
	if err := e.Load(doc); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(e.Level().Things()) != 2 || e.Level().MaxUndo != 100 {
		t.Fatalf("unexpected level after load")
	}
	if len(s.docs) != 1 {
		t.Fatalf("expected autosave after load, got %d", len(s.docs))
	}
}

func TestAddNodeRequiresPath(t *testing.T) {
	e := newTestEditor(&saves{})
	if _, err := e.StartAddNode(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	p := thing.NewOpenPath(common.Pt(0, 0))
	e.Level().AddThing(p)
	e.Select(p)
	if _, err := e.StartAddNode(); err != nil {
		t.Fatalf("StartAddNode: %v", err)
	}
	e.HandlePointer(release(1, 1, 0))
	e.HandleKey(session.KeyEvent{Key: session.KeyEnter})
	if p.Len() != 2 || e.Active() != nil {
		t.Fatalf("expected 2 nodes and no gesture, got %d", p.Len())
	}
}

func TestPathToolCommitsOnce(t *testing.T) {
	e := newTestEditor(&saves{})
	e.SetTool(session.ToolPolygon)
	for i, pt := range []common.Point{common.Pt(0, 0), common.Pt(1, 0), common.Pt(1, 1)} {
		at := time.Duration(i) * time.Second
		e.HandlePointer(press(pt.X, pt.Y, at))
		e.HandlePointer(release(pt.X, pt.Y, at))
	}
	if _, _, ok := e.Preview(); !ok {
		t.Fatalf("expected a preview segment")
	}
	e.HandleKey(session.KeyEvent{Key: session.KeyEnter})

	if got := len(e.Level().UndoStack()); got != 1 {
		t.Fatalf("expected one command, got %d", got)
	}
	if !strings.Contains(e.Encode(), "<polygon>") {
		t.Fatalf("polygon missing:\n%s", e.Encode())
	}
}

func TestSetToolCancelsGesture(t *testing.T) {
	e := newTestEditor(&saves{})
	e.SetTool(session.ToolCircle)
	e.HandlePointer(press(1, 1, 0))
	if e.Active() == nil {
		t.Fatalf("expected a gesture in progress")
	}
	e.SetTool(session.ToolSelect)
	if e.Active() != nil || len(e.Level().Things()) != 1 {
		t.Fatalf("switching tools left the placement behind")
	}
}

func TestUndoKeepsFullHistoryByDefault(t *testing.T) {
	e := newTestEditor(&saves{})
	before := e.Encode()
	e.SetTool(session.ToolBox)

	const n = 120
	for i := 0; i < n; i++ {
		at := time.Duration(i) * 10 * time.Second
		e.HandlePointer(press(0, 0, at))
		e.HandlePointer(release(1, 2, at+time.Second))
	}
	if got := strings.Count(e.Encode(), "<box"); got != n {
		t.Fatalf("placed %d boxes, want %d", got, n)
	}

	for i := 0; i < n; i++ {
		if !e.Undo() {
			t.Fatalf("undo %d had nothing to undo", i+1)
		}
	}
	if e.Undo() {
		t.Fatalf("undo past the first command should be a no-op")
	}
	if got := e.Encode(); got != before {
		t.Fatalf("undo did not restore the original level:\n%s\nwant:\n%s", got, before)
	}
}
