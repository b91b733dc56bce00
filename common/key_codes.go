package common

// Key codes understood by the customizer host.
// Values match GLFW key codes, which use ASCII for printable keys.
const (
	KeySpace = 32
	KeySlash = 47 // start a material search

	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
	Key6 = 54
	Key7 = 55
	Key8 = 56
	Key9 = 57

	KeyA = 65
	KeyM = 77 // next material for the selected part
	KeyN = 78
	KeyR = 82
	KeyZ = 90

	KeyEsc       = 256 // quit, or cancel a material search
	KeyEnter     = 257
	KeyTab       = 258
	KeyBackspace = 259

	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)

// Mouse buttons, matching GLFW button indices.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// DigitKeyIndex maps the number row to a zero-based index, with 1 as the first entry.
// Key0 and non-digit keys report false.
//
// Parameters:
//   - key: a key code
//
// Returns:
//   - int: the index
//   - bool: whether the key is a digit from 1 to 9
func DigitKeyIndex(key int) (int, bool) {
	if key < Key1 || key > Key9 {
		return 0, false
	}
	return key - Key1, true
}

// KeyRune maps a printable key to the character it types: letters in lower case, digits and space.
//
// Parameters:
//   - key: a key code
//
// Returns:
//   - rune: the character
//   - bool: whether the key types one
func KeyRune(key int) (rune, bool) {
	switch {
	case key >= KeyA && key <= KeyZ:
		return rune('a' + key - KeyA), true
	case key >= Key0 && key <= Key9, key == KeySpace:
		return rune(key), true
	}
	return 0, false
}
