package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the initial window size. Non-positive dimensions are ignored.
//
// Parameters:
//   - width: initial width in screen coordinates
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds how far the user can resize the window.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size
//   - maxWidth, maxHeight: largest allowed size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}
