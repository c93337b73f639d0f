package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/traceable/common"
	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/ecs/system"
	"github.com/milk9111/traceable/ingest"
	"github.com/milk9111/traceable/logger"
	"github.com/milk9111/traceable/logger/console"
	"github.com/milk9111/traceable/studio"
	"github.com/milk9111/traceable/ui"
	"golang.org/x/image/colornames"
)

type Options struct {
	Config     config.Config
	ConfigPath string
	Console    *console.ConsoleLogger
}

type Game struct {
	cfg        config.Config
	configPath string
	console    *console.ConsoleLogger
	frames     int

	world     *ecs.World
	scheduler *ecs.Scheduler
	layout    *system.Layout
	rationale *system.RationaleSystem
	render    *system.RenderSystem
	conns     *system.ConnectorRenderer
	view      *studio.View

	processor *ingest.Processor
	library   *ingest.Library
	clipboard *ingest.Clipboard
	names     map[string]string

	ctx    context.Context
	cancel context.CancelFunc

	watcher *config.Watcher
	ui      *ui.UI
	faces   ui.Faces

	sizeMu        sync.RWMutex
	width, height float64
	closeOnce     sync.Once
}

func NewGame(opts Options) (*Game, error) {
	faces, err := ui.LoadFaces()
	if err != nil {
		return nil, err
	}
	cfg := opts.Config
	ctx, cancel := context.WithCancel(context.Background())

	g := &Game{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		console:    opts.Console,
		world:      ecs.NewWorld(),
		layout:     system.NewLayout(cfg),
		library:    ingest.NewLibrary(),
		clipboard:  ingest.NewClipboard(),
		names:      make(map[string]string),
		ctx:        ctx,
		cancel:     cancel,
		faces:      faces,
		width:      float64(cfg.Window.Width),
		height:     float64(cfg.Window.Height),
	}

	g.view = studio.NewView(studio.NewScene(), studio.NewCamera())
	g.processor = ingest.NewProcessor(g.loadCategorizer(), cfg.Ingest.Delay, cfg.Ingest.Spawn, g.screenSize)

	g.rationale = system.NewRationaleSystem(g.layout, g.view, g.library, cfg.Connector.Builder())
	g.conns = system.NewConnectorRenderer(system.StyleFromConfig(cfg.Connector), faces.Small)
	g.render = system.NewRenderSystem(g.layout, g.view, g.rationale, g.conns, faces.Regular, faces.Small)
	g.render.GridSpacing = cfg.Board.GridSpacing
	g.render.SetPalette(cfg.Connector.Palette())

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPointerSystem(g.layout, ecs.NewPickWorld(), common.NewID),
		system.NewNoteSystem(),
		system.NewStudioSystem(g.layout, g.view),
		g.rationale,
	)
	g.scheduler.AddDrawer(g.render)

	system.SpawnStudio(g.world, g.layout)

	g.ui = ui.Build(faces, ui.Sizes{
		NavHeight:    int(cfg.Board.NavHeight),
		SidebarWidth: int(cfg.Board.SidebarWidth),
	}, ui.Callbacks{
		OnToggleRationale: g.rationale.SetVisible,
		OnUpload:          g.upload,
		OnMode:            g.view.Scene.SetMode,
		OnDelete: func() {
			g.view.Scene.DeleteSelected()
		},
		OnAdd: func(s studio.Shape) {
			id := g.view.Scene.Add(s)
			logger.Debug("studio object added", "object", id, "shape", s)
		},
		OnMaximize: func() {
			system.ToggleMaximize(g.world, g.layout)
		},
	})

	g.watch()
	if cfg.Ingest.AssetsDir != "" {
		g.upload()
	}
	return g, nil
}

func (g *Game) screenSize() (float64, float64) {
	g.sizeMu.RLock()
	defer g.sizeMu.RUnlock()
	return g.width, g.height
}

func (g *Game) loadCategorizer() ingest.Categorizer {
	if g.cfg.Ingest.Script == "" {
		return nil
	}
	src, err := config.LoadScript(g.cfg.Ingest.Script)
	if err != nil {
		logger.Warn("categorizer script unavailable, using random categories", "script", g.cfg.Ingest.Script, "err", err)
		return nil
	}
	c, err := ingest.NewScriptCategorizer(src)
	if err != nil {
		logger.Warn("categorizer script rejected, using random categories", "script", g.cfg.Ingest.Script, "err", err)
		return nil
	}
	return c
}

func (g *Game) watch() {
	var dirs []string
	if g.configPath != "" {
		dirs = append(dirs, filepath.Dir(g.configPath))
	}
	if g.cfg.Ingest.Script != "" {
		if dir := filepath.Dir(g.cfg.Ingest.Script); len(dirs) == 0 || dirs[0] != dir {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = w
}

func (g *Game) upload() {
	dir := g.cfg.Ingest.AssetsDir
	if dir == "" {
		logger.Warn("upload: no assets directory configured")
		return
	}
	files, err := ingest.ReadDir(dir)
	if err != nil {
		logger.Error("upload", "dir", dir, "err", err)
		return
	}
	logger.Info("upload", "dir", dir, "files", len(files))
	g.processor.Start(g.ctx, files)
}

func (g *Game) Update() error {
	g.frames++

	g.reload()
	g.ui.Update()
	g.ingestDropped()

	g.scheduler.Update(g.world)

	g.paste()
	g.drainResults()
	g.handleEvents()
	g.ui.Refresh(g.uiState())
	return nil
}

func (g *Game) ingestDropped() {
	dropped := ebiten.DroppedFiles()
	if dropped == nil {
		return
	}
	files, err := ingest.ReadFS(dropped)
	if err != nil {
		logger.Error("drop", "err", err)
		return
	}
	if len(files) == 0 {
		return
	}
	logger.Info("files dropped", "files", len(files))
	g.processor.Start(g.ctx, files)
}

// paste turns Ctrl+V into an upload, or into note text while a note has
// focus.
func (g *Game) paste() {
	in := system.InputOf(g.world)
	if !in.Paste {
		return
	}
	f, err := g.clipboard.Read()
	if err != nil {
		if !errors.Is(err, ingest.ErrClipboardEmpty) {
			logger.Warn("paste", "err", err)
		}
		return
	}
	if e, ok := ecs.First(g.world, component.FocusedComponent); ok {
		if note, ok := ecs.Get(g.world, e, component.NoteComponent); ok && filepath.Ext(f.Name) == ".txt" {
			note.Text += string(f.Data)
			return
		}
	}
	g.processor.Start(g.ctx, []ingest.File{f})
}

func (g *Game) drainResults() {
	for {
		select {
		case batch := <-g.processor.Results():
			if batch.Err != nil {
				logger.Warn("upload batch", "err", batch.Err)
			}
			for _, a := range batch.Assets {
				var img *ebiten.Image
				if a.Image != nil {
					img = ebiten.NewImageFromImage(a.Image)
				}
				system.SpawnAsset(g.world, g.layout, a, img)
				g.names[a.ID] = a.Name
				logger.Info("asset added", "asset", a.ID, "name", a.Name, "category", a.Category)
			}
			g.library.Prepend(batch.Assets)
		default:
			return
		}
	}
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventAssetRemoved:
			if data, ok := evt.Data.(ecs.EntityEvent); ok {
				g.library.Remove(data.ID)
				delete(g.names, data.ID)
			}
		default:
			logger.Debug("event", "type", evt.Type, "data", evt.Data)
		}
	}
}

func (g *Game) reload() {
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
			g.reloadFile(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Warn("watch", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reloadFile(path string) {
	switch {
	case config.IsConfigFile(path) && g.configPath != "" && sameFile(path, g.configPath):
		cfg, err := config.Load(g.configPath)
		if err != nil {
			logger.Warn("config reload rejected", "path", path, "err", err)
			return
		}
		if err := config.ApplyEnv(&cfg); err != nil {
			logger.Warn("env overrides ignored", "err", err)
		}
		cfg.Ingest.AssetsDir = g.cfg.Ingest.AssetsDir
		g.cfg = cfg
		g.rationale.SetBuilder(cfg.Connector.Builder())
		g.conns.Style = system.StyleFromConfig(cfg.Connector)
		g.render.SetPalette(cfg.Connector.Palette())
		g.render.GridSpacing = cfg.Board.GridSpacing
		if g.console != nil {
			g.console.SetDebug(cfg.Log.Debug)
		}
		logger.Info("config reloaded", "path", path)
	case config.IsScriptFile(path) && g.cfg.Ingest.Script != "" && sameFile(path, g.cfg.Ingest.Script):
		g.processor.SetCategorizer(g.loadCategorizer())
		logger.Info("categorizer reloaded", "path", path)
	}
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}

func (g *Game) uiState() ui.State {
	maximized := false
	if e, ok := ecs.First(g.world, component.StudioComponent); ok {
		if s, ok := ecs.Get(g.world, e, component.StudioComponent); ok {
			maximized = s.Maximized
		}
	}
	return ui.State{
		Groups:    g.library.Groups(),
		Names:     g.names,
		Busy:      g.processor.Busy(),
		Rationale: g.rationale.Visible(),
		Selected:  g.view.Scene.SelectedID() != "",
		Mode:      g.view.Scene.Mode(),
		Maximized: maximized,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	g.ui.Draw(screen)

	if g.cfg.Log.Debug {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(screen.Bounds().Dy())-20)
		op.ColorScale.ScaleWithColor(colornames.Slategray)
		msg := fmt.Sprintf("FPS: %.1f  entities: %d  connectors: %d  %s", ebiten.ActualFPS(), len(ecs.Entities(g.world)), len(g.rationale.Slots()), g.rationale.State())
		text.Draw(screen, msg, g.faces.Fixed, op)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.sizeMu.Lock()
	g.width, g.height = outsideWidth, outsideHeight
	g.sizeMu.Unlock()
	g.layout.Width, g.layout.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops background work. It is safe to call more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.cancel()
		g.rationale.Close()
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
	})
}
