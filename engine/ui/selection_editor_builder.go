package ui

import (
	"github.com/Carmen-Shannon/oxy-customizer/engine/persistence"
	"github.com/muesli/termenv"
)

// SelectionEditorOption configures a SelectionEditor.
type SelectionEditorOption func(*selectionEditorImpl)

// WithSaver sets where material changes are saved. Without one, changes are not persisted.
//
// Parameters:
//   - saver: the saver, typically a persistence.AsyncSaver
//
// Returns:
//   - SelectionEditorOption: the option
func WithSaver(saver persistence.Saver) SelectionEditorOption {
	return func(e *selectionEditorImpl) {
		e.saver = saver
	}
}

// WithColorProfile sets the terminal color profile Render writes for. Defaults to termenv.Ascii.
//
// Parameters:
//   - profile: the color profile
//
// Returns:
//   - SelectionEditorOption: the option
func WithColorProfile(profile termenv.Profile) SelectionEditorOption {
	return func(e *selectionEditorImpl) {
		e.profile = profile
	}
}
