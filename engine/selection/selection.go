package selection

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
)

// None is the selected part value when nothing is selected.
const None = ""

// ErrNotInitialized is returned by mutations that need a model before Init has been called.
var ErrNotInitialized = errors.New("selection store not initialized")

type subscriber[T any] struct {
	id uint64
	fn T
}

type storeImpl struct {
	mu *sync.Mutex

	model         model.Model
	selectedPart  string
	partMaterials map[string]string

	nextID             uint64
	selectionListeners []subscriber[func(string)]
	materialListeners  []subscriber[func(string, string)]
}

// Store is the single source of truth for which part is selected and which material each part wears
// during one editing session.
//
// Subscribers are called synchronously on the goroutine that made the change, after the store's lock
// has been released. A subscriber may read the store, but must not set the selection in a way that
// re-triggers itself without end.
type Store interface {
	// Model retrieves the model the store was initialized with, or nil.
	//
	// Returns:
	//   - model.Model: the bound model
	Model() model.Model

	// SelectedPart retrieves the selected part id, or None.
	//
	// Returns:
	//   - string: the part id
	SelectedPart() string

	// PartMaterials retrieves a copy of the part → material mapping.
	// Once initialized the mapping holds an entry for every part of the model.
	//
	// Returns:
	//   - map[string]string: the mapping, nil when uninitialized
	PartMaterials() map[string]string

	// PartMaterial retrieves the material assigned to one part.
	//
	// Parameters:
	//   - partID: the part id
	//
	// Returns:
	//   - string: the material id
	//   - bool: false for unknown parts or an uninitialized store
	PartMaterial(partID string) (string, bool)

	// Init binds the store to a model and seeds every part's material from saved, falling back to the
	// part default. The selection is set to the model's default selection.
	//
	// Parameters:
	//   - m: the model being edited
	//   - saved: previously saved assignments, may be nil or partial
	//
	// Returns:
	//   - error: wraps model.ErrUnknownPart or model.ErrUnknownMaterial if saved does not fit m
	Init(m model.Model, saved map[string]string) error

	// SetSelectedPart stores id as the selection. The store does not toggle: callers
	// that want click-to-deselect pass None themselves.
	//
	// Parameters:
	//   - id: a part id of the bound model, or None
	//
	// Returns:
	//   - error: ErrNotInitialized, or wraps model.ErrUnknownPart
	SetSelectedPart(id string) error

	// SetMaterial assigns a material to a part.
	//
	// Parameters:
	//   - partID: a part id of the bound model
	//   - materialID: a material id of the bound model
	//
	// Returns:
	//   - error: ErrNotInitialized, or wraps model.ErrUnknownPart or model.ErrUnknownMaterial
	SetMaterial(partID, materialID string) error

	// Subscribe registers fn to be called once for every distinct change of the selected part.
	// Material changes do not notify.
	//
	// Parameters:
	//   - fn: receives the new selection
	//
	// Returns:
	//   - func(): removes the subscription; safe to call more than once
	Subscribe(fn func(selected string)) func()

	// SubscribeMaterials registers fn to be called whenever a part's material changes value.
	//
	// Parameters:
	//   - fn: receives the part id and its new material
	//
	// Returns:
	//   - func(): removes the subscription; safe to call more than once
	SubscribeMaterials(fn func(partID, materialID string)) func()

	// Reset clears the selection, the mapping and the bound model. Selection subscribers are notified
	// if a part was selected. Subscriptions themselves are kept.
	Reset()
}

var _ Store = &storeImpl{}

// NewStore creates an empty, uninitialized Store.
//
// Returns:
//   - Store: the store
func NewStore() Store {
	return &storeImpl{
		mu: &sync.Mutex{},
	}
}

func (s *storeImpl) Model() model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *storeImpl) SelectedPart() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedPart
}

func (s *storeImpl) PartMaterials() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partMaterials == nil {
		return nil
	}
	return maps.Clone(s.partMaterials)
}

func (s *storeImpl) PartMaterial(partID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.partMaterials[partID]
	return m, ok
}

func (s *storeImpl) Init(m model.Model, saved map[string]string) error {
	if err := m.ValidateMaterials(saved); err != nil {
		return fmt.Errorf("selection: saved materials: %w", err)
	}

	materials := m.DefaultMaterials()
	for partID, materialID := range saved {
		materials[partID] = materialID
	}

	s.mu.Lock()
	s.model = m
	s.partMaterials = materials
	changed := s.swapSelectionLocked(m.DefaultSelection())
	listeners := s.selectionListenersLocked()
	s.mu.Unlock()

	if changed {
		notify(listeners, m.DefaultSelection())
	}
	return nil
}

func (s *storeImpl) SetSelectedPart(id string) error {
	s.mu.Lock()
	if s.model == nil {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	if id != None {
		if _, ok := s.model.Part(id); !ok {
			s.mu.Unlock()
			return fmt.Errorf("selection: select %q: %w", id, model.ErrUnknownPart)
		}
	}
	changed := s.swapSelectionLocked(id)
	listeners := s.selectionListenersLocked()
	s.mu.Unlock()

	if changed {
		notify(listeners, id)
	}
	return nil
}

func (s *storeImpl) SetMaterial(partID, materialID string) error {
	s.mu.Lock()
	if s.model == nil {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	if _, ok := s.model.Part(partID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("selection: set material of %q: %w", partID, model.ErrUnknownPart)
	}
	if _, ok := s.model.Material(materialID); !ok {
		s.mu.Unlock()
		return fmt.Errorf("selection: set material of %q to %q: %w", partID, materialID, model.ErrUnknownMaterial)
	}

	changed := s.partMaterials[partID] != materialID
	s.partMaterials[partID] = materialID
	listeners := make([]func(string, string), 0, len(s.materialListeners))
	for _, l := range s.materialListeners {
		listeners = append(listeners, l.fn)
	}
	s.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(partID, materialID)
		}
	}
	return nil
}

func (s *storeImpl) Subscribe(fn func(selected string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.selectionListeners = append(s.selectionListeners, subscriber[func(string)]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.selectionListeners = removeSubscriber(s.selectionListeners, id)
	}
}

func (s *storeImpl) SubscribeMaterials(fn func(partID, materialID string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.materialListeners = append(s.materialListeners, subscriber[func(string, string)]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.materialListeners = removeSubscriber(s.materialListeners, id)
	}
}

func (s *storeImpl) Reset() {
	s.mu.Lock()
	s.model = nil
	s.partMaterials = nil
	changed := s.swapSelectionLocked(None)
	listeners := s.selectionListenersLocked()
	s.mu.Unlock()

	if changed {
		notify(listeners, None)
	}
}

// swapSelectionLocked stores id and reports whether it differs from the previous selection.
// Callers must hold s.mu.
func (s *storeImpl) swapSelectionLocked(id string) bool {
	if s.selectedPart == id {
		return false
	}
	s.selectedPart = id
	return true
}

// selectionListenersLocked snapshots the selection callbacks so they can run without the lock.
// Callers must hold s.mu.
func (s *storeImpl) selectionListenersLocked() []func(string) {
	out := make([]func(string), 0, len(s.selectionListeners))
	for _, l := range s.selectionListeners {
		out = append(out, l.fn)
	}
	return out
}

func notify(listeners []func(string), selected string) {
	for _, fn := range listeners {
		fn(selected)
	}
}

func removeSubscriber[T any](list []subscriber[T], id uint64) []subscriber[T] {
	for i, l := range list {
		if l.id == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
