package common

// Key codes shared by the window and the viewer bindings.
// Values match GLFW key codes, which use ASCII for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyD   = 68  // D key (ASCII), toggles debug drawing
	KeyR   = 82  // R key (ASCII), resets the camera
	Key1   = 49  // 1 key (ASCII), default scene preset
	Key2   = 50  // 2 key (ASCII), grid scene preset
	KeyEsc = 256 // Escape key (GLFW)
)

// MouseButton identifies a pointer button. Values match glfw.MouseButton.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}
