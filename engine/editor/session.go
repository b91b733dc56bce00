package editor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/engine/camera"
	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/Carmen-Shannon/oxy-customizer/engine/persistence"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/selection"
	"github.com/Carmen-Shannon/oxy-customizer/engine/ui"
	"github.com/muesli/termenv"
)

// DefaultLoadTimeout bounds loading a file's saved materials when Open is given no deadline.
const DefaultLoadTimeout = 5 * time.Second

type sessionImpl struct {
	mu *sync.Mutex

	model       model.Model
	persistence persistence.Persistence
	saver       persistence.AsyncSaver
	renderer    renderer.Renderer
	camera      camera.Camera
	orbit       camera.OrbitControls
	store       selection.Store

	duration    time.Duration
	clock       func() time.Time
	profile     termenv.Profile
	loadTimeout time.Duration
	saveWorkers int
	background  renderer.ClearColor

	fileID      string
	controller  camera.CameraController
	editor      ui.SelectionEditor
	unsubscribe []func()
}

// Session is the lifecycle of editing one file at a time.
//
// Opening a file loads its saved materials, initializes the selection store and wires a camera
// controller and a selection editor to it. Material changes recolor the background to the selected
// part's swatch and are saved in the background. Closing tears everything down and resets the store
// so nothing carries over to the next file opened in the same process.
type Session interface {
	// Open starts editing fileID, closing the current file first. A failed load is logged and the
	// model defaults are used instead.
	//
	// Parameters:
	//   - ctx: cancels loading the saved materials
	//   - fileID: the file to edit
	//
	// Returns:
	//   - error: error if the store could not be initialized even with defaults
	Open(ctx context.Context, fileID string) error

	// Close stops editing the current file and waits for its pending saves. It is a no-op when nothing is open.
	Close()

	// IsOpen reports whether a file is being edited.
	//
	// Returns:
	//   - bool: true between Open and Close
	IsOpen() bool

	// FileID returns the file being edited.
	//
	// Returns:
	//   - string: the file id, or "" when closed
	FileID() string

	// Editor returns the selection editor of the open file.
	//
	// Returns:
	//   - ui.SelectionEditor: the editor, or nil when closed
	Editor() ui.SelectionEditor

	// Controller returns the camera controller of the open file.
	//
	// Returns:
	//   - camera.CameraController: the controller, or nil when closed
	Controller() camera.CameraController

	// Store returns the session's selection store.
	//
	// Returns:
	//   - selection.Store: the store
	Store() selection.Store
}

var _ Session = &sessionImpl{}

// NewSession creates a closed session for a model.
//
// Parameters:
//   - m: the model being customized
//   - store: where materials are loaded from and saved to
//   - r: the on-demand renderer
//   - cam: the scene camera
//   - orbit: the orbit controls driving cam
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the session, with no file open
func NewSession(m model.Model, store persistence.Persistence, r renderer.Renderer, cam camera.Camera, orbit camera.OrbitControls, options ...SessionOption) Session {
	if m == nil || store == nil || r == nil || cam == nil || orbit == nil {
		panic("session requires a model, persistence, a renderer, a camera and orbit controls")
	}

	s := &sessionImpl{
		mu:          &sync.Mutex{},
		model:       m,
		persistence: store,
		renderer:    r,
		camera:      cam,
		orbit:       orbit,
		store:       selection.NewStore(),
		duration:    camera.DefaultAnimationDuration,
		clock:       time.Now,
		profile:     termenv.Ascii,
		loadTimeout: DefaultLoadTimeout,
		background:  r.ClearColor(),
	}
	for _, option := range options {
		option(s)
	}

	if s.saver == nil {
		s.saver = persistence.NewAsyncSaver(store,
			persistence.WithWorkers(s.saveWorkers),
			persistence.WithErrorHandler(s.onSaveError),
		)
	}
	return s
}

func (s *sessionImpl) Open(ctx context.Context, fileID string) error {
	s.Close()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	saved, err := s.persistence.LoadSavedMaterials(ctx, fileID)
	if err != nil {
		log.Printf("[Editor] failed to load materials of %q, using defaults: %v", fileID, err)
		saved = nil
	}

	s.mu.Lock()
	s.fileID = fileID
	s.controller = camera.NewCameraController(s.camera, s.orbit, s.store, s.renderer, s.model.Parts(),
		camera.WithDuration(s.duration),
		camera.WithClock(s.clock),
	)
	s.editor = ui.NewSelectionEditor(s.store, fileID,
		ui.WithSaver(s.saver),
		ui.WithColorProfile(s.profile),
	)
	s.unsubscribe = []func(){
		s.store.Subscribe(func(string) { s.applyBackground() }),
		s.store.SubscribeMaterials(func(string, string) {
			s.applyBackground()
			s.renderer.Invalidate()
		}),
	}
	s.mu.Unlock()

	// Subscribers are attached first so a model's default selection flies the camera like any other.
	if err := s.store.Init(s.model, saved); err != nil {
		log.Printf("[Editor] discarding saved materials of %q: %v", fileID, err)
		if err := s.store.Init(s.model, nil); err != nil {
			s.Close()
			return err
		}
	}

	s.applyBackground()
	s.renderer.SetOverlay(s.overlay)
	log.Printf("[Editor] opened %q", fileID)
	return nil
}

func (s *sessionImpl) Close() {
	s.mu.Lock()
	if s.controller == nil {
		s.mu.Unlock()
		return
	}
	fileID := s.fileID
	controller, unsubscribe := s.controller, s.unsubscribe
	s.fileID, s.controller, s.editor, s.unsubscribe = "", nil, nil, nil
	s.mu.Unlock()

	controller.Close()
	for _, fn := range unsubscribe {
		fn()
	}
	s.store.Reset()
	s.saver.Wait()

	s.renderer.SetOverlay(nil)
	s.renderer.SetClearColor(s.background)
	log.Printf("[Editor] closed %q", fileID)
}

func (s *sessionImpl) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller != nil
}

func (s *sessionImpl) FileID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileID
}

func (s *sessionImpl) Editor() ui.SelectionEditor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor
}

func (s *sessionImpl) Controller() camera.CameraController {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

func (s *sessionImpl) Store() selection.Store {
	return s.store
}

// applyBackground clears to the selected part's material swatch, or the base background when nothing is selected.
// It runs from store callbacks and must not take s.mu.
func (s *sessionImpl) applyBackground() {
	color := s.background
	if part := s.store.SelectedPart(); part != selection.None {
		if materialID, ok := s.store.PartMaterial(part); ok {
			if mat, ok := s.model.Material(materialID); ok {
				color = renderer.ClearColor{R: mat.Swatch[0], G: mat.Swatch[1], B: mat.Swatch[2], A: 1}
			}
		}
	}
	s.renderer.SetClearColor(color)
}

func (s *sessionImpl) onSaveError(fileID string, err error) {
	s.mu.Lock()
	editor := s.editor
	s.mu.Unlock()

	if editor != nil && editor.FileID() == fileID {
		editor.SetSaveError(err)
		s.renderer.Invalidate()
	}
}
