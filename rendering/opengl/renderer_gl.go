package opengl

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// HostOptions configure the window
type HostOptions struct {
	Width  int
	Height int
	Title  string
	VSync  bool
	Logger *slog.Logger

	// Keys maps a key press to an action. Escape always closes the window.
	// The map is consulted on every press, so entries may be added after
	// NewHost.
	Keys map[glfw.Key]func()
}

// Host owns the glfw window and GL context and drives a Surface from the
// thread that created them
type Host struct {
	window *glfw.Window
	opts   HostOptions
	log    *slog.Logger

	resized       bool
	width, height int

	onClick func(x, y float64)
}

// NewHost creates the window and makes its context current. It locks the
// calling goroutine to its OS thread; every later Host call must come from
// the same goroutine.
func NewHost(opts HostOptions) (*Host, error) {
	runtime.LockOSThread()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize GLFW
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Configure OpenGL context
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	h := &Host{window: window, opts: opts, log: logger}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		h.resized = true
		h.width, h.height = width, height
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		h.onKey(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			h.onClick()
		}
	})

	return h, nil
}

func (h *Host) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if key == glfw.KeyEscape {
		h.window.SetShouldClose(true)
		return
	}
	if fn, ok := h.opts.Keys[key]; ok {
		fn()
	}
}

func (h *Host) onClick() {
	if h.onClick == nil {
		return
	}
	x, y := h.window.GetCursorPos()

	// Cursor positions are in screen coordinates, which differ from
	// framebuffer pixels on high density displays
	ww, wh := h.window.GetSize()
	fw, fh := h.window.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	h.onClick(x, y)
}

// SetClickHandler sets the receiver of left clicks, in framebuffer pixels
// with the origin top left
func (h *Host) SetClickHandler(fn func(x, y float64)) {
	h.onClick = fn
}

// Run creates the surface, then draws it until the window closes or ctx is
// cancelled. The surface is released before Run returns.
func (h *Host) Run(ctx context.Context, s Surface) error {
	if err := s.OnSurfaceCreated(); err != nil {
		s.Release()
		return fmt.Errorf("surface setup: %w", err)
	}
	defer s.Release()

	w, hgt := h.window.GetFramebufferSize()
	s.OnSurfaceResized(w, hgt)

	for !h.window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if h.resized {
			h.resized = false
			s.OnSurfaceResized(h.width, h.height)
		}
		s.OnDrawFrame()

		if err := gl.GetError(); err != gl.NO_ERROR {
			h.log.Debug("OpenGL error after frame", "code", fmt.Sprintf("0x%x", err))
		}

		h.window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// SetTitle updates the window title
func (h *Host) SetTitle(title string) {
	h.window.SetTitle(title)
}

// Terminate destroys the window and shuts glfw down
func (h *Host) Terminate() {
	h.window.Destroy()
	glfw.Terminate()
}
