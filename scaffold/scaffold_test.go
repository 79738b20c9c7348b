package scaffold

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/thing"
)

func TestDefaultTemplate(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if got, want := l.Bounds(), (level.Bounds{Width: 3.5, Height: 4.8}); got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
	doc := codec.Encode(l)
	if !strings.Contains(doc, `<start x="1.75" y="3.5">`) {
		t.Fatalf("unexpected document:\n%s", doc)
	}
	if len(l.Things()) != 1 {
		t.Fatalf("expected only the start, got %d things", len(l.Things()))
	}
}

func TestBuiltinTemplatesBuild(t *testing.T) {
	lib := Library{}
	names := lib.Names()
	if len(names) < 3 {
		t.Fatalf("expected built-in templates, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			l, err := lib.Build(name)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if _, err := codec.Decode(codec.Encode(l)); err != nil {
				t.Fatalf("template does not round trip: %v", err)
			}
		})
	}
}

func TestArenaContents(t *testing.T) {
	l, err := Library{}.Build("arena")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	counts := map[thing.Kind]int{}
	for _, th := range l.Things() {
		counts[th.Kind()]++
	}
	want := map[thing.Kind]int{thing.KindStart: 1, thing.KindCircle: 5, thing.KindGoal: 1, thing.KindOpenPath: 2}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{name: "no start", src: `level.board(1, 1)`},
		{name: "two starts", src: "level.start(0, 0)\nlevel.start(1, 1)"},
		{name: "unknown kind", src: "level.start(0, 0)\nlevel.add(\"spring\", {x: 1, y: 1})"},
		{name: "missing attr", src: "level.start(0, 0)\nlevel.add(\"box\", {x: 1, y: 1})"},
		{name: "empty path", src: "level.start(0, 0)\nlevel.path(\"polygon\", [])"},
		{name: "bad board", src: "level.start(0, 0)\nlevel.board(0, 1)"},
		{name: "syntax", src: `level.start(`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run([]byte(tc.src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLibraryDirShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	src := "level.board(2, 2, 0, 0)\nlevel.start(1, 1)\n"
	if err := os.WriteFile(filepath.Join(dir, "default.tengo"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mine.tengo"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := Library{Dir: dir}
	l, err := lib.Build(DefaultName)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Bounds().Width != 2 {
		t.Fatalf("expected the override, got %+v", l.Bounds())
	}

	found := false
	for _, n := range lib.Names() {
		if n == "mine" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Names() = %v, missing mine", lib.Names())
	}

	if _, err := lib.Build("nope"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
