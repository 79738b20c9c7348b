package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/config"
	"github.com/milk9111/marblebounce/level"
	"github.com/milk9111/marblebounce/levels"
	"github.com/milk9111/marblebounce/scaffold"
	"github.com/milk9111/marblebounce/store"
	"golang.design/x/clipboard"
)

// startupLevel picks the first level available from: the -file document, a
// bundled level, the saved draft, then the configured template.
func startupLevel(file, bundled string, fresh bool, cache *store.Cache, lib scaffold.Library, template string) (*level.Level, string) {
	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			l, err := codec.Decode(string(data))
			if err == nil {
				return l, "opened " + file
			}
			log.Printf("Failed to decode %s: %v", file, err)
		case errors.Is(err, fs.ErrNotExist):
			// new file, written on first save
		default:
			log.Printf("Failed to read %s: %v", file, err)
		}
	}

	if bundled != "" {
		l, err := levels.LoadLevelFromFS(bundled)
		if err == nil {
			return l, "loaded bundled level " + bundled
		}
		log.Printf("Failed to load level %s: %v", bundled, err)
	}

	if !fresh {
		doc, ok, err := cache.LoadDraft()
		if err != nil {
			log.Printf("Failed to read draft: %v", err)
		} else if ok {
			l, err := codec.Decode(doc)
			if err == nil {
				return l, "restored draft"
			}
			log.Printf("Discarding unreadable draft: %v", err)
		}
	}

	l, err := lib.Build(template)
	if err != nil {
		log.Printf("Failed to build template %s: %v", template, err)
		return nil, "new level"
	}
	return l, "new level from " + template
}

// SaveLevelToPath writes the current document to path.
func (g *EditorGame) SaveLevelToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	doc := g.ed.Encode()
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.lastWritten = doc
	log.Printf("Saved level to %s", path)
	return nil
}

// NewFromTemplate replaces the level with a fresh copy of the configured template.
func (g *EditorGame) NewFromTemplate() error {
	l, err := g.templates.Build(g.cfg.Template)
	if err != nil {
		return err
	}
	g.ed.Replace(l)
	return nil
}

func (g *EditorGame) CopyToClipboard() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.ed.Encode()))
	g.setStatus("copied level to clipboard")
}

func (g *EditorGame) PasteFromClipboard() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		g.setStatus("clipboard is empty")
		return
	}
	if err := g.ed.Load(string(data)); err != nil {
		g.setStatus(err.Error())
		return
	}
	g.setStatus("pasted level from clipboard")
}

// handleFileEvent reacts to a watched file changing on disk.
func (g *EditorGame) handleFileEvent(path string) {
	switch {
	case g.configPath != "" && sameFile(path, g.configPath):
		cfg, err := config.Load(g.configPath)
		if err != nil {
			log.Printf("Config reload failed: %v", err)
			return
		}
		g.cfg = cfg.Editor
		g.ed.SetThresholds(g.cfg.Thresholds())
		g.setStatus("reloaded config")
	case config.Classify(path) == config.TemplateFile:
		g.setStatus(fmt.Sprintf("template %s changed (Ctrl+N to rebuild)", filepath.Base(path)))
	case sameFile(path, g.savePath):
		data, err := os.ReadFile(path)
		if err != nil || string(data) == g.lastWritten || string(data) == g.ed.Encode() {
			return
		}
		if err := g.ed.Load(string(data)); err != nil {
			log.Printf("Ignoring external edit of %s: %v", path, err)
			return
		}
		g.setStatus("reloaded " + filepath.Base(path))
	}
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
