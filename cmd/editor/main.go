package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/config"
	"github.com/milk9111/marblebounce/editor"
	"github.com/milk9111/marblebounce/scaffold"
	"github.com/milk9111/marblebounce/session"
	"github.com/milk9111/marblebounce/store"
	"golang.design/x/clipboard"
)

// nudge is how far the arrow keys move the selection; Shift multiplies it by ten.
const nudge = 0.01

var toolKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7}

// EditorGame is the Ebiten game for the level editor.
type EditorGame struct {
	ed        *editor.Editor
	presenter *Presenter
	canvas    Canvas

	ui        *ebitenui.UI
	toolBar   *ToolBar
	attrPanel *AttrPanel
	fontFace  *text.Face

	cfg         config.EditorConfig
	configPath  string
	savePath    string
	lastWritten string
	templates   scaffold.Library
	watcher     *config.Watcher
	clipboardOK bool

	screenW, screenH int
	lastMX, lastMY   int
	status           string
}

func (g *EditorGame) setStatus(msg string) {
	g.status = msg
	g.attrPanel.SetStatus(msg)
	log.Println(msg)
}

func (g *EditorGame) SetTool(t session.Tool) {
	g.ed.SetTool(t)
	g.toolBar.SetTool(t)
}

func (g *EditorGame) Undo() {
	if g.ed.Undo() {
		g.attrPanel.Invalidate()
	}
}

func (g *EditorGame) Redo() {
	if g.ed.Redo() {
		g.attrPanel.Invalidate()
	}
}

// submitAttr applies a typed attribute value as one undoable change.
func (g *EditorGame) submitAttr(attr, input string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		g.setStatus(fmt.Sprintf("%s: not a number", attr))
		g.attrPanel.Invalidate()
		return
	}
	g.editAttr(attr, func(float64) float64 { return v })
}

func (g *EditorGame) editAttr(attr string, next func(float64) float64) {
	s, err := g.ed.StartAttrEdit(attr)
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	if !s.Input(next(s.Value())) {
		g.setStatus(fmt.Sprintf("%s: value rejected", attr))
	}
	s.Commit()
	g.ed.Cancel()
	g.attrPanel.Invalidate()
}

func (g *EditorGame) nudgeSelection(dx, dy float64) {
	t := g.ed.Selected()
	if t == nil {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		dx, dy = dx*10, dy*10
	}
	if _, ok := t.Attr("x"); ok && dx != 0 {
		g.editAttr("x", func(v float64) float64 { return v + dx })
	}
	if _, ok := t.Attr("y"); ok && dy != 0 {
		g.editAttr("y", func(v float64) float64 { return v + dy })
	}
}

func (g *EditorGame) Update() error {
	g.drainFileEvents()

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if g.ui != nil {
		if fw := g.ui.GetFocusedWidget(); fw != nil {
			switch fw.(type) {
			case *widget.TextInput:
				suppressHotkeys = true
			}
		}
	}

	if !suppressHotkeys {
		g.handleHotkeys()
		for _, ev := range keyEvents() {
			g.ed.HandleKey(ev)
		}
	}

	if g.ui != nil {
		g.ui.Update()
	}

	g.canvas = Canvas{
		X: 0,
		Y: toolbarHeight,
		W: float64(g.screenW - attrPanelWidth),
		H: float64(g.screenH - toolbarHeight),
	}
	g.canvas.Fit(g.ed.Level().Bounds())

	for _, ev := range pointerEvents(&g.canvas, g.lastMX, g.lastMY) {
		g.ed.HandlePointer(ev)
	}
	g.lastMX, g.lastMY = ebiten.CursorPosition()

	g.syncUI()
	return nil
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ctrlPressed()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	// Undo (Ctrl+Z), redo (Ctrl+Y or Ctrl+Shift+Z)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		if shift {
			g.Redo()
		} else {
			g.Undo()
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.Redo()
	}

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.SaveLevelToPath(g.savePath); err != nil {
			g.setStatus(fmt.Sprintf("Save failed: %v", err))
		} else {
			g.setStatus("saved " + g.savePath)
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.CopyToClipboard()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.PasteFromClipboard()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.NewFromTemplate(); err != nil {
			g.setStatus(err.Error())
		} else {
			g.setStatus("new level from " + g.cfg.Template)
		}
	}
	if ctrl {
		return
	}

	// Tool switching hotkeys (1-7)
	for i, tool := range session.Tools() {
		if i < len(toolKeys) && inpututil.IsKeyJustPressed(toolKeys[i]) {
			g.SetTool(tool)
		}
	}

	// Add nodes to the selected path (N)
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if _, err := g.ed.StartAddNode(); err != nil {
			g.setStatus("select an open path or polygon to add nodes")
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.nudgeSelection(-nudge, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.nudgeSelection(nudge, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.nudgeSelection(0, nudge)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.nudgeSelection(0, -nudge)
	}
}

func (g *EditorGame) drainFileEvents() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.handleFileEvent(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Watcher error: %v", err)
			}
		default:
			return
		}
	}
}

// syncUI refreshes the history buttons and the attribute panel.
func (g *EditorGame) syncUI() {
	l := g.ed.Level()
	g.toolBar.SetHistory(l.UndoLabel(), l.RedoLabel())

	t := g.ed.Selected()
	names := g.ed.Attrs()
	values := l.Bounds().Values()
	key := "level"
	if t != nil {
		values = t.Values()
		key = t.ID().String()
	}
	var b strings.Builder
	b.WriteString(key)
	for _, n := range names {
		b.WriteString("|" + codec.FormatNumber(values[n]))
	}
	g.attrPanel.Show(g.fontFace, b.String(), l.DisplayName(t), names, values, g.submitAttr)
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{60, 60, 66, 255})

	b := g.ed.Level().Bounds()
	x, y := g.canvas.ToScreen(common.Pt(b.Left, b.Bottom+b.Height))
	vector.FillRect(screen, x, y, g.canvas.Length(b.Width), g.canvas.Length(b.Height), boardColor, false)

	g.presenter.Draw(screen, &g.canvas, g.ed.Selected())

	if from, to, ok := g.ed.Preview(); ok {
		strokeSegment(screen, &g.canvas, from, to, previewColor)
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}

	cursor := g.canvas.ToBoard(g.lastMX, g.lastMY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  (%s, %s)  %s",
		g.ed.Tool(), codec.FormatNumber(cursor.X), codec.FormatNumber(cursor.Y), g.status), 8, g.screenH-20)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	file := flag.String("file", "level.xml", "level document to open and save")
	levelName := flag.String("level", "", "bundled level to start from")
	template := flag.String("template", "", "template for new levels (overrides config)")
	fresh := flag.Bool("fresh", false, "ignore the saved draft")
	flag.Parse()

	log.Println("Editor starting...")
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *template != "" {
		cfg.Editor.Template = *template
	}

	var cache *store.Cache
	if !cfg.Editor.DisableAutosave {
		var err error
		cache, err = store.OpenCache(cfg.Editor.AppName)
		if err != nil {
			log.Printf("Autosave disabled: %v", err)
		}
	}

	lib := scaffold.Library{Dir: cfg.Editor.TemplateDir}
	initial, msg := startupLevel(*file, *levelName, *fresh, cache, lib, cfg.Editor.Template)

	game := &EditorGame{
		presenter:  NewPresenter(),
		cfg:        cfg.Editor,
		configPath: *configPath,
		savePath:   *file,
		templates:  lib,
	}

	// Drafts are written by one goroutine so saves land in order.
	drafts := make(chan func(), 16)
	go func() {
		for job := range drafts {
			job()
		}
	}()

	game.ed = editor.New(initial,
		editor.WithPresenter(game.presenter),
		editor.WithThresholds(cfg.Editor.Thresholds()),
		editor.WithMaxUndo(cfg.Editor.MaxUndo),
		editor.WithHitTolerance(cfg.Editor.HitTolerance),
		editor.WithAutosave(func(doc string) {
			if err := cache.SaveDraft(doc); err != nil {
				log.Printf("Autosave failed: %v", err)
			}
		}),
		editor.WithDispatcher(func(job func()) {
			select {
			case drafts <- job:
			default:
				log.Println("Autosave queue full; dropping draft")
			}
		}),
	)

	game.ui, game.toolBar, game.attrPanel, game.fontFace = BuildEditorUI(game.SetTool, game.Undo, game.Redo, session.ToolSelect)

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard unavailable: %v", err)
	} else {
		game.clipboardOK = true
	}

	watchDirs := []string{filepath.Dir(*file)}
	if *configPath != "" {
		watchDirs = append(watchDirs, filepath.Dir(*configPath))
	}
	if cfg.Editor.TemplateDir != "" {
		watchDirs = append(watchDirs, cfg.Editor.TemplateDir)
	}
	if w, err := config.NewWatcher(uniqueDirs(watchDirs)...); err != nil {
		log.Printf("File watching disabled: %v", err)
	} else {
		game.watcher = w
		defer w.Close()
	}

	game.setStatus(msg)

	ebiten.SetWindowSize(cfg.Editor.Width, cfg.Editor.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Marble Bounce Level Editor")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func uniqueDirs(dirs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}
	return out
}
