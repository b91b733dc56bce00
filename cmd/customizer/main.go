package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/Carmen-Shannon/oxy-customizer/config"
	"github.com/Carmen-Shannon/oxy-customizer/engine"
	"github.com/Carmen-Shannon/oxy-customizer/engine/camera"
	"github.com/Carmen-Shannon/oxy-customizer/engine/editor"
	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/Carmen-Shannon/oxy-customizer/engine/persistence"
	"github.com/Carmen-Shannon/oxy-customizer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer/wgpu_backend"
	"github.com/Carmen-Shannon/oxy-customizer/engine/ui"
	"github.com/Carmen-Shannon/oxy-customizer/engine/window"
	"github.com/muesli/termenv"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	fileID := flag.String("file", "", "id of the file to edit (overrides editor.file_id)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("[Customizer] %v", err)
		}
	}

	m := model.Shirt()
	if cfg.Editor.ModelPath != "" {
		var err error
		if m, err = model.LoadModelFile(cfg.Editor.ModelPath); err != nil {
			log.Fatalf("[Customizer] %v", err)
		}
	}

	store, err := persistence.NewFileStore(cfg.Editor.DataDir)
	if err != nil {
		log.Fatalf("[Customizer] %v", err)
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer win.Close()

	backend, err := wgpu_backend.NewBackend(win.SurfaceDescriptor(),
		wgpu_backend.WithForceSoftwareRenderer(cfg.Renderer.SoftwareRenderer),
	)
	if err != nil {
		log.Fatalf("[Customizer] failed to create GPU backend: %v", err)
	}
	defer backend.Release()

	presentMode := renderer.PresentModeVSync
	if cfg.Renderer.Uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	bg := cfg.Renderer.Background
	r := renderer.NewRenderer(
		renderer.WithBackend(backend),
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(renderer.ClearColor{R: bg[0], G: bg[1], B: bg[2], A: 1}),
	)

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithPosition(common.Vec3{Z: 0.75}),
		camera.WithNear(0.01),
	)
	orbit := camera.NewOrbitControls(cam,
		camera.WithDistanceLimits(cfg.Editor.MinCameraDistance, cfg.Editor.MaxCameraDistance),
		camera.WithRotateSpeed(cfg.Editor.RotateSpeed),
		camera.WithZoomSpeed(cfg.Editor.ZoomSpeed),
		camera.WithPanSpeed(cfg.Editor.PanSpeed),
	)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithCamera(cam, orbit),
		engine.WithProfiling(cfg.Profiler.Enabled),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithInterval(cfg.ProfilerInterval()))),
	)

	// ── Editing session ─────────────────────────────────────────────────
	session := editor.NewSession(m, store, r, cam, orbit,
		editor.WithAnimationDuration(cfg.AnimationDuration()),
		editor.WithColorProfile(termenv.EnvColorProfile()),
		editor.WithSaveWorkers(cfg.Editor.SaveWorkers),
	)
	id := common.Coalesce(*fileID, cfg.Editor.FileID)
	if err := session.Open(context.Background(), id); err != nil {
		log.Fatalf("[Customizer] failed to open %q: %v", id, err)
	}
	defer session.Close()

	refresh := setupPanel(eng, session)
	setupInput(eng, session, orbit, refresh)

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Oxy Customizer                                      ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  1-9=Select part  M=Next material  Esc=Quit          ║")
	fmt.Println("║  /=Search materials (Enter=Apply, Esc=Cancel)        ║")
	fmt.Println("║  Left drag=Orbit  Right drag=Pan  Scroll=Zoom        ║")
	fmt.Println("║  Arrows=Pan                                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Printf("[Customizer] editing %q (%s)", id, m.Name())
	eng.Run()
}

// setupInput maps window input to the selection editor and the orbit controls.
// While a material search is open, printable keys type into it instead of acting as shortcuts.
//
// Parameters:
//   - eng: the engine providing window callbacks
//   - session: the open editing session
//   - orbit: the orbit controls for free camera movement
//   - refresh: marks the panel for reprinting after input that changes no store state
func setupInput(eng engine.Engine, session editor.Session, orbit camera.OrbitControls, refresh func()) {
	w := eng.Window()

	w.SetKeyDownCallback(func(keyCode int) {
		ed := session.Editor()
		if ed != nil {
			if _, searching := ed.Search(); searching {
				searchKey(ed, keyCode)
				refresh()
				return
			}
		}

		if keyCode == common.KeyEsc {
			eng.Quit()
			return
		}
		if orbit.KeyDown(keyCode) || ed == nil {
			return
		}

		switch keyCode {
		case common.KeyM:
			report(ed.NextMaterial())
		case common.KeySlash:
			ed.BeginSearch()
			refresh()
		default:
			if i, ok := common.DigitKeyIndex(keyCode); ok {
				report(ed.ClickPartAt(i))
			}
		}
	})

	w.SetMouseButtonCallback(func(button int, pressed bool, x, y float32) {
		if pressed {
			orbit.PointerDown(button, x, y)
		} else {
			orbit.PointerUp()
		}
	})
	w.SetMouseMoveCallback(orbit.PointerMove)
	w.SetScrollCallback(orbit.Wheel)
}

// searchKey feeds one key press to an open material search.
//
// Parameters:
//   - ed: the editor with a search in progress
//   - keyCode: the pressed key
func searchKey(ed ui.SelectionEditor, keyCode int) {
	switch keyCode {
	case common.KeyEsc:
		ed.CancelSearch()
	case common.KeyEnter:
		report(ed.CommitSearch())
	case common.KeyBackspace:
		ed.SearchBackspace()
	default:
		if r, ok := common.KeyRune(keyCode); ok {
			ed.SearchInput(r)
		}
	}
}

// setupPanel prints the selection panel to the terminal after each frame that follows a change.
//
// Parameters:
//   - eng: the engine whose frames trigger printing
//   - session: the open editing session
//
// Returns:
//   - func(): marks the panel dirty and requests a frame so it is reprinted
func setupPanel(eng engine.Engine, session editor.Session) func() {
	dirty := true
	var lastErr error
	markDirty := func() { dirty = true }
	session.Store().Subscribe(func(string) { markDirty() })
	session.Store().SubscribeMaterials(func(string, string) { markDirty() })

	eng.SetFrameCallback(func(drew bool) {
		ed := session.Editor()
		if !drew || ed == nil {
			return
		}
		if err := ed.SaveError(); err != lastErr {
			lastErr = err
			dirty = true
		}
		if !dirty {
			return
		}
		dirty = false
		fmt.Println()
		report(ed.Render(os.Stdout))
	})

	return func() {
		markDirty()
		eng.Renderer().Invalidate()
	}
}

func report(err error) {
	if err == nil || errors.Is(err, ui.ErrNoSuchRow) || errors.Is(err, ui.ErrNoMatch) {
		return
	}
	log.Printf("[Customizer] %v", err)
}
