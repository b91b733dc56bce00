package ui

import (
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-customizer/engine/persistence"
	"github.com/Carmen-Shannon/oxy-customizer/engine/selection"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/termenv"
)

var (
	// ErrNoSuchRow is returned when a part list position has no part.
	ErrNoSuchRow = errors.New("no part at that position")

	// ErrNoMatch is returned when a material search matches no material.
	ErrNoMatch = errors.New("no material matches the search")
)

// PartRow is one entry of the part list.
type PartRow struct {
	ID       string
	Name     string
	Material string
	Selected bool
}

// MaterialOption is one entry of the material picker.
type MaterialOption struct {
	ID   string
	Name string
	Hex  string
}

// MaterialPicker is the material control for the selected part.
// It is disabled, with an empty value, while nothing is selected.
type MaterialPicker struct {
	Value    string
	Disabled bool
	Options  []MaterialOption
}

type selectionEditorImpl struct {
	mu *sync.Mutex

	store   selection.Store
	fileID  string
	saver   persistence.Saver
	profile termenv.Profile

	saveErr error

	searching bool
	query     []rune
}

// SelectionEditor binds a part list and a material picker to a selection store.
//
// It owns no selection state: every read goes to the store and every interaction is forwarded to
// it. Material choices additionally schedule a save of the file's complete mapping.
type SelectionEditor interface {
	// FileID returns the file whose materials are edited.
	//
	// Returns:
	//   - string: the file id
	FileID() string

	// Parts lists the model's parts in catalog order, marking the selected one.
	//
	// Returns:
	//   - []PartRow: one row per part, empty before the store is initialized
	Parts() []PartRow

	// MaterialPicker returns the picker state for the selected part.
	//
	// Returns:
	//   - MaterialPicker: the picker, disabled when nothing is selected
	MaterialPicker() MaterialPicker

	// ClickPart toggles a part: clicking the selected part deselects it, any other part becomes selected.
	//
	// Parameters:
	//   - id: the clicked part
	//
	// Returns:
	//   - error: error if the part is unknown or the store is not initialized
	ClickPart(id string) error

	// ClickPartAt toggles the part at a position of the part list.
	//
	// Parameters:
	//   - index: zero-based row index
	//
	// Returns:
	//   - error: error if the index is out of range or the store is not initialized
	ClickPartAt(index int) error

	// ChooseMaterial assigns a material to the selected part and schedules a save.
	// It does nothing while no part is selected.
	//
	// Parameters:
	//   - materialID: the chosen material
	//
	// Returns:
	//   - error: error if the material is unknown
	ChooseMaterial(materialID string) error

	// NextMaterial assigns the catalog material following the selected part's current one, wrapping around.
	//
	// Returns:
	//   - error: error from ChooseMaterial
	NextMaterial() error

	// FilterMaterials ranks the picker options by how well they fuzzy-match query.
	// An empty query returns every option in catalog order.
	//
	// Parameters:
	//   - query: the search text
	//
	// Returns:
	//   - []MaterialOption: matching options, best match first
	FilterMaterials(query string) []MaterialOption

	// BeginSearch starts a material search for the selected part. It does nothing while no part is selected.
	BeginSearch()

	// Search returns the current search text.
	//
	// Returns:
	//   - string: the query typed so far
	//   - bool: whether a search is in progress
	Search() (string, bool)

	// SearchInput appends a character to the search text. It does nothing outside a search.
	//
	// Parameters:
	//   - r: the typed character
	SearchInput(r rune)

	// SearchBackspace removes the last character of the search text.
	SearchBackspace()

	// CancelSearch ends the search without choosing a material.
	CancelSearch()

	// CommitSearch assigns the best match of the search text to the selected part and ends the search.
	// When nothing matches the search stays open so the text can be corrected.
	//
	// Returns:
	//   - error: ErrNoMatch if no material matches, or an error from ChooseMaterial
	CommitSearch() error

	// SetSaveError records the outcome of a background save so it can be shown.
	//
	// Parameters:
	//   - err: the failure, or nil to clear it
	SetSaveError(err error)

	// SaveError returns the last recorded save failure.
	//
	// Returns:
	//   - error: the failure, or nil
	SaveError() error

	// Render writes the part list and the material picker as terminal text.
	//
	// Parameters:
	//   - w: the destination
	//
	// Returns:
	//   - error: error from writing to w
	Render(w io.Writer) error
}

var _ SelectionEditor = &selectionEditorImpl{}

// NewSelectionEditor creates the binding for one file.
//
// Parameters:
//   - store: the session's selection store
//   - fileID: the file whose materials are saved on change
//   - options: functional options to configure the editor
//
// Returns:
//   - SelectionEditor: the binding
func NewSelectionEditor(store selection.Store, fileID string, options ...SelectionEditorOption) SelectionEditor {
	if store == nil {
		panic("selection editor requires a store")
	}

	e := &selectionEditorImpl{
		mu:      &sync.Mutex{},
		store:   store,
		fileID:  fileID,
		profile: termenv.Ascii,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *selectionEditorImpl) FileID() string {
	return e.fileID
}

func (e *selectionEditorImpl) Parts() []PartRow {
	m := e.store.Model()
	if m == nil {
		return nil
	}

	selected := e.store.SelectedPart()
	materials := e.store.PartMaterials()
	parts := m.Parts()
	rows := make([]PartRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, PartRow{
			ID:       p.ID,
			Name:     p.Name,
			Material: materials[p.ID],
			Selected: p.ID == selected,
		})
	}
	return rows
}

func (e *selectionEditorImpl) MaterialPicker() MaterialPicker {
	picker := MaterialPicker{Disabled: true, Options: e.options()}
	selected := e.store.SelectedPart()
	if selected == selection.None {
		return picker
	}
	if value, ok := e.store.PartMaterial(selected); ok {
		picker.Value = value
		picker.Disabled = false
	}
	return picker
}

func (e *selectionEditorImpl) ClickPart(id string) error {
	if e.store.SelectedPart() == id {
		return e.store.SetSelectedPart(selection.None)
	}
	return e.store.SetSelectedPart(id)
}

func (e *selectionEditorImpl) ClickPartAt(index int) error {
	m := e.store.Model()
	if m == nil {
		return selection.ErrNotInitialized
	}
	parts := m.Parts()
	if index < 0 || index >= len(parts) {
		return ErrNoSuchRow
	}
	return e.ClickPart(parts[index].ID)
}

func (e *selectionEditorImpl) ChooseMaterial(materialID string) error {
	selected := e.store.SelectedPart()
	if selected == selection.None {
		return nil
	}
	if err := e.store.SetMaterial(selected, materialID); err != nil {
		return err
	}

	if e.saver != nil {
		e.saver.Save(e.fileID, e.store.PartMaterials())
	}
	return nil
}

func (e *selectionEditorImpl) NextMaterial() error {
	picker := e.MaterialPicker()
	if picker.Disabled || len(picker.Options) == 0 {
		return nil
	}

	next := 0
	for i, o := range picker.Options {
		if o.ID == picker.Value {
			next = (i + 1) % len(picker.Options)
			break
		}
	}
	return e.ChooseMaterial(picker.Options[next].ID)
}

func (e *selectionEditorImpl) FilterMaterials(query string) []MaterialOption {
	options := e.options()
	if query == "" {
		return options
	}

	// Match against display names and ids alike; targets are laid out as [names..., ids...].
	targets := make([]string, 0, 2*len(options))
	for _, o := range options {
		targets = append(targets, o.Name)
	}
	for _, o := range options {
		targets = append(targets, o.ID)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Sort(ranks)

	seen := make(map[int]bool, len(options))
	out := make([]MaterialOption, 0, len(ranks))
	for _, r := range ranks {
		i := r.OriginalIndex % len(options)
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, options[i])
	}
	return out
}

func (e *selectionEditorImpl) BeginSearch() {
	if e.MaterialPicker().Disabled {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searching = true
	e.query = e.query[:0]
}

func (e *selectionEditorImpl) Search() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.query), e.searching
}

func (e *selectionEditorImpl) SearchInput(r rune) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.searching {
		e.query = append(e.query, r)
	}
}

func (e *selectionEditorImpl) SearchBackspace() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.searching && len(e.query) > 0 {
		e.query = e.query[:len(e.query)-1]
	}
}

func (e *selectionEditorImpl) CancelSearch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searching = false
	e.query = e.query[:0]
}

func (e *selectionEditorImpl) CommitSearch() error {
	query, searching := e.Search()
	if !searching {
		return nil
	}
	matches := e.FilterMaterials(query)
	if len(matches) == 0 {
		return ErrNoMatch
	}

	e.CancelSearch()
	return e.ChooseMaterial(matches[0].ID)
}

func (e *selectionEditorImpl) SetSaveError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saveErr = err
}

func (e *selectionEditorImpl) SaveError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveErr
}

func (e *selectionEditorImpl) options() []MaterialOption {
	m := e.store.Model()
	if m == nil {
		return nil
	}
	materials := m.Materials()
	options := make([]MaterialOption, 0, len(materials))
	for _, mat := range materials {
		options = append(options, MaterialOption{ID: mat.ID, Name: mat.Name, Hex: mat.Hex()})
	}
	return options
}
