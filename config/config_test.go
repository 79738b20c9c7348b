package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		check func(t *testing.T, c Config)
	}{
		{
			name:  "empty uses defaults",
			input: "",
			check: func(t *testing.T, c Config) {
				if c.Editor.ClickDuration != time.Second || c.Editor.ClickDistance != 5 {
					t.Fatalf("unexpected thresholds %+v", c.Editor)
				}
				if c.Editor.MaxUndo != 0 || c.Editor.Template != "default" {
					t.Fatalf("unexpected editor defaults %+v", c.Editor)
				}
				if c.Server.Addr != ":3000" || c.Server.ReadTimeout != 10*time.Second {
					t.Fatalf("unexpected server defaults %+v", c.Server)
				}
			},
		},
		{
			name: "overrides",
			input: `
editor:
  click_duration: 250ms
  click_distance: 8
  max_undo: -1
  template: arena
server:
  addr: ":8080"
  write_timeout: 1m
`,
			check: func(t *testing.T, c Config) {
				th := c.Editor.Thresholds()
				if th.ClickDuration != 250*time.Millisecond || th.ClickDistance != 8 {
					t.Fatalf("unexpected thresholds %+v", th)
				}
				if c.Editor.MaxUndo != -1 || c.Editor.Template != "arena" {
					t.Fatalf("unexpected editor %+v", c.Editor)
				}
				if c.Server.Addr != ":8080" || c.Server.WriteTimeout != time.Minute {
					t.Fatalf("unexpected server %+v", c.Server)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse([]byte(tc.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tc.check(t, c)
		})
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := Parse([]byte("editor: [")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  app_name: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Editor.AppName != "test" {
		t.Fatalf("AppName = %q", c.Editor.AppName)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LEVELS_DB_PATH", "/tmp/x.db")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("REQUEST_TIMEOUT", "750ms")

	s := Default().Server
	if s.RequestTimeout != 0 {
		t.Fatalf("request timeout should default to unlimited, got %v", s.RequestTimeout)
	}
	s.ApplyEnv()
	if s.Addr != ":9999" || s.DBPath != "/tmp/x.db" || s.ReadTimeout != 3*time.Second || s.RequestTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected server config %+v", s)
	}
}

func TestWatched(t *testing.T) {
	cases := map[string]bool{
		"editor.yaml":     true,
		"a/b/arena.tengo": true,
		"level.XML":       true,
		"notes.txt":       false,
		"Makefile":        false,
	}
	for path, want := range cases {
		if got := Watched(path); got != want {
			t.Fatalf("Watched(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(path, []byte("editor: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "editor.yaml" {
			t.Fatalf("event for %q", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event received")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want FileKind
	}{
		{"editor.yml", ConfigFile},
		{"templates/arena.TENGO", TemplateFile},
		{"levels/tutorial.xml", LevelFile},
		{"README.md", OtherFile},
	}
	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := &debouncer{window: 100 * time.Millisecond, seen: map[string]time.Time{}}
	t0 := time.Unix(100, 0)

	if !d.allow("a.xml", t0) {
		t.Fatalf("first event dropped")
	}
	if d.allow("a.xml", t0.Add(50*time.Millisecond)) {
		t.Fatalf("burst event allowed")
	}
	if !d.allow("b.xml", t0.Add(50*time.Millisecond)) {
		t.Fatalf("other path dropped")
	}
	if !d.allow("a.xml", t0.Add(200*time.Millisecond)) {
		t.Fatalf("event after window dropped")
	}
	if _, ok := d.seen["b.xml"]; ok {
		t.Fatalf("stale entry for b.xml kept")
	}
	if len(d.seen) != 1 {
		t.Fatalf("seen = %v, want only a.xml", d.seen)
	}
}
