package level

import (
	"reflect"
	"testing"

	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/thing"
)

func newTestLevel() *Level {
	l := New(Bounds{Width: 3.5, Height: 4.8})
	l.AddThing(thing.NewStart(1.75, 3.5))
	return l
}

// snapshot captures every live thing's kind and attributes plus the bounds.
func snapshot(l *Level) []any {
	out := []any{l.Bounds()}
	for _, t := range l.Live() {
		out = append(out, t.Kind(), t.Values())
	}
	return out
}

func addBox(l *Level, x, y float64) *thing.Box {
	b := thing.NewBox(x, y, 1, 1)
	l.AddThing(b)
	l.PushCommand(AddCommand(b))
	return b
}

func TestUndoRedoRoundTrip(t *testing.T) {
	l := newTestLevel()
	initial := snapshot(l)

	b := addBox(l, 1, 1)
	path := thing.NewOpenPath(common.Pt(0, 0))
	l.AddThing(path)
	l.PushCommand(AddCommand(path))

	path.PushNode(1, 1)
	l.PushCommand(AddNodeCommand(path, common.Pt(1, 1)))

	b.MoveTo(common.Pt(2, 2))
	l.PushCommand(MoveCommand(l.DisplayName(b), b, common.Pt(1, 1), common.Pt(2, 2)))

	b.UpdateAttrs(thing.Attrs{"width": 3})
	l.PushCommand(ChangeCommand(l.DisplayName(b), "width", b, 1, 3))

	from := l.Bounds()
	to, _ := from.With(thing.Attrs{"width": 5})
	l.SetBounds(to)
	l.PushCommand(ChangeBoundsCommand("width", from, to))

	l.DeleteThing(b)
	l.PushCommand(DeleteCommand(l.DisplayName(b), b))

	final := snapshot(l)
	n := len(l.UndoStack())

	for i := 0; i < n; i++ {
		if !l.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	if got := snapshot(l); !reflect.DeepEqual(got, initial) {
		t.Fatalf("after full undo got %v, want %v", got, initial)
	}
	if l.CanUndo() {
		t.Fatalf("expected empty undo stack")
	}

	for i := 0; i < n; i++ {
		if !l.Redo() {
			t.Fatalf("redo %d failed", i)
		}
	}
	if got := snapshot(l); !reflect.DeepEqual(got, final) {
		t.Fatalf("after full redo got %v, want %v", got, final)
	}
}

func TestPushClearsRedo(t *testing.T) {
	l := newTestLevel()
	addBox(l, 0, 0)
	addBox(l, 1, 1)

	l.Undo()
	if !l.CanRedo() {
		t.Fatalf("expected a redo entry")
	}

	addBox(l, 2, 2)
	if l.CanRedo() {
		t.Fatalf("push did not clear redo, have %d entries", len(l.RedoStack()))
	}
	if l.Redo() {
		t.Fatalf("redo should be a no-op")
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	l := newTestLevel()
	before := snapshot(l)
	if l.Undo() || l.Redo() {
		t.Fatalf("expected no-op on empty stacks")
	}
	if !reflect.DeepEqual(before, snapshot(l)) {
		t.Fatalf("level changed")
	}
}

func TestDeleteThing(t *testing.T) {
	l := newTestLevel()
	start := l.Start()
	if l.DeleteThing(start) {
		t.Fatalf("start was deleted")
	}
	if start.Deleted() {
		t.Fatalf("start is flagged deleted")
	}

	b := addBox(l, 0, 0)
	l.Select(b)
	if !l.DeleteThing(b) {
		t.Fatalf("box was not deleted")
	}
	if l.Selected() != nil {
		t.Fatalf("deleted box is still selected")
	}
	if len(l.Things()) != 2 || len(l.Live()) != 1 {
		t.Fatalf("expected soft delete, things=%d live=%d", len(l.Things()), len(l.Live()))
	}
}

func TestUndoDeselectsDeletedThing(t *testing.T) {
	l := newTestLevel()
	b := addBox(l, 0, 0)
	l.Select(b)

	l.Undo()
	if !b.Deleted() {
		t.Fatalf("undo of add did not delete the box")
	}
	if l.Selected() != nil {
		t.Fatalf("selection survived undo")
	}
}

func TestMaxUndo(t *testing.T) {
	l := newTestLevel()
	l.MaxUndo = 2
	addBox(l, 0, 0)
	addBox(l, 1, 0)
	third := addBox(l, 2, 0)

	stack := l.UndoStack()
	if len(stack) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(stack))
	}
	if stack[1].Undo.(SetDeleted).Thing != third {
		t.Fatalf("newest command was dropped")
	}
}

func TestDisplayName(t *testing.T) {
	l := newTestLevel()
	b1 := addBox(l, 0, 0)
	b2 := addBox(l, 1, 0)
	c := thing.NewCircle(0, 0, 1)
	l.AddThing(c)

	cases := []struct {
		name  string
		thing thing.Thing
		want  string
	}{
		{name: "start", thing: l.Start(), want: "Start"},
		{name: "first box", thing: b1, want: "Box 1"},
		{name: "second box", thing: b2, want: "Box 2"},
		{name: "circle", thing: c, want: "Circle 1"},
		{name: "level", thing: nil, want: "Level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.DisplayName(tc.thing); got != tc.want {
				t.Fatalf("DisplayName = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	l := newTestLevel()
	low := addBox(l, 1, 1)
	high := addBox(l, 1, 1)

	if got := l.HitTest(common.Pt(1, 1), 0); got != high {
		t.Fatalf("expected topmost box")
	}
	l.DeleteThing(high)
	if got := l.HitTest(common.Pt(1, 1), 0); got != low {
		t.Fatalf("deleted box should be skipped")
	}
	if got := l.HitTest(common.Pt(3, 0.1), 0); got != nil {
		t.Fatalf("expected miss, got %v", got.Kind())
	}
}

func TestListeners(t *testing.T) {
	l := newTestLevel()
	var kinds []ChangeKind
	l.OnChange(func(c Change) { kinds = append(kinds, c.Kind) })

	addBox(l, 0, 0)
	l.Undo()
	l.Redo()
	l.Undo()
	l.Undo()

	want := []ChangeKind{Pushed, Undone, Redone, Undone}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("changes = %v, want %v", kinds, want)
	}
}

func TestLabels(t *testing.T) {
	l := newTestLevel()
	addBox(l, 0, 0)
	if got := l.UndoLabel(); got != "Add box" {
		t.Fatalf("UndoLabel = %q", got)
	}
	l.Undo()
	if got := l.RedoLabel(); got != "Add box" {
		t.Fatalf("RedoLabel = %q", got)
	}
	if got := l.UndoLabel(); got != "" {
		t.Fatalf("UndoLabel = %q, want empty", got)
	}
}

func TestBoundsWith(t *testing.T) {
	b := Bounds{Width: 3.5, Height: 4.8}
	cases := []struct {
		name string
		in   thing.Attrs
		ok   bool
	}{
		{name: "width", in: thing.Attrs{"width": 5}, ok: true},
		{name: "left", in: thing.Attrs{"left": -1}, ok: true},
		{name: "zero height", in: thing.Attrs{"height": 0}, ok: false},
		{name: "unknown", in: thing.Attrs{"depth": 1}, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := b.With(tc.in)
			if ok != tc.ok {
				t.Fatalf("With(%v) ok = %v, want %v", tc.in, ok, tc.ok)
			}
		})
	}
}
