package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileKind classifies a watched path by extension.
type FileKind int

const (
	OtherFile FileKind = iota
	ConfigFile
	TemplateFile
	LevelFile
)

var fileKinds = map[string]FileKind{
	".yaml":  ConfigFile,
	".yml":   ConfigFile,
	".tengo": TemplateFile,
	".xml":   LevelFile,
}

func Classify(path string) FileKind {
	return fileKinds[strings.ToLower(filepath.Ext(path))]
}

// Watched reports whether changes to path are of interest to the editor.
func Watched(path string) bool {
	return Classify(path) != OtherFile
}

const debounceWindow = 100 * time.Millisecond

// debouncer drops repeat events for a path seen within the window.
type debouncer struct {
	window time.Duration
	seen   map[string]time.Time
}

func (d *debouncer) allow(path string, now time.Time) bool {
	if t, ok := d.seen[path]; ok && now.Sub(t) < d.window {
		return false
	}
	for p, t := range d.seen {
		if now.Sub(t) >= d.window {
			delete(d.seen, p)
		}
	}
	d.seen[path] = now
	return true
}

// Watcher reports changes to configuration files, templates and level
// documents in a set of directories. Events carries the changed path; both
// channels are closed once the watcher stops.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan string
	Errors chan error

	done chan struct{}
	stop sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.loop(&debouncer{window: debounceWindow, seen: map[string]time.Time{}})
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop(d *debouncer) {
	defer close(w.Errors)
	defer close(w.Events)

	const interesting = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&interesting == 0 {
				continue
			}
			if !Watched(ev.Name) || !d.allow(ev.Name, time.Now()) {
				continue
			}
			if !w.forward(ev.Name) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// keep only the first undrained error
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) forward(path string) bool {
	select {
	case w.Events <- path:
		return true
	case <-w.done:
		return false
	}
}
