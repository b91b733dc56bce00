package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithDefaultSelection is an option builder that sets the part selected when an editor opens.
// The id is validated by NewModel.
//
// Parameters:
//   - partID: the part id, or "" for no selection
//
// Returns:
//   - ModelBuilderOption: a function that applies the default selection option to a model
func WithDefaultSelection(partID string) ModelBuilderOption {
	return func(m *model) {
		m.defaultSelection = partID
	}
}
