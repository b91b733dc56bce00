package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(int(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(int(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if w.onMouseButton == nil || action == glfw.Repeat {
			return
		}
		x, y := cursorPixels(win)
		w.onMouseButton(int(button), action == glfw.Press, x, y)
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			x, y := cursorPixels(win)
			w.onMouseMove(x, y)
		}
	})

	// Framebuffer size rather than window size, so the surface is configured in pixels on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// cursorPixels returns the cursor position scaled from screen coordinates to framebuffer pixels.
func cursorPixels(win *glfw.Window) (float32, float32) {
	x, y := win.GetCursorPos()
	ww, wh := win.GetSize()
	fw, fh := win.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return float32(x), float32(y)
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.SetShouldClose(true)
	glfw.PostEmptyEvent()
}

// platformWake posts an empty event so a blocked WaitEvents returns.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PostEmptyEvent
func platformWake(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	glfw.PostEmptyEvent()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages handles pending GLFW events. When wait is set it sleeps until an event
// arrives (input, resize or Wake) instead of returning immediately.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#WaitEvents
func platformProcessMessages(w *engineWindow, wait bool) bool {
	if wait {
		glfw.WaitEvents()
	} else {
		glfw.PollEvents()
	}
	return platformIsRunningCheck(w)
}
