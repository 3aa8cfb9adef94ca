package windowsink

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/learnopengl/hellotriangle/lib/config"
	"github.com/learnopengl/hellotriangle/lib/log"
)

var ErrCreateWindow = errors.New("failed to create glfw window")

type WindowSink struct {
	Title  string
	Width  int
	Height int

	Window *glfw.Window

	// OnResize is called with the new framebuffer size after the viewport was updated.
	OnResize func(width, height int)

	logger *slog.Logger
}

// Init initialises GLFW. Must run on the main thread.
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

func Terminate() {
	glfw.Terminate()
}

func New(cfg *config.WindowCfg) *WindowSink {
	return &WindowSink{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		logger: log.Module("window"),
	}
}

// Start creates the window and makes its context current.
func (w *WindowSink) Start() error {
	if w.Window != nil {
		return nil
	}
	w.logger.Debug("Initializing window")

	glfw.WindowHint(glfw.ContextVersionMajor, config.GLVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, config.GLVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}

	window.MakeContextCurrent()
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	w.Window = window

	return nil
}

// framebufferSizeCallback keeps the viewport in step with the framebuffer,
// which is larger than the window size on high-dpi displays.
func (w *WindowSink) framebufferSizeCallback(_ *glfw.Window, width int, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	if w.OnResize != nil {
		w.OnResize(width, height)
	}
}

func (w *WindowSink) FramebufferSize() (int, int) {
	return w.Window.GetFramebufferSize()
}

func (w *WindowSink) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *WindowSink) SwapBuffers() {
	w.Window.SwapBuffers()
}

// Destroy destroys the window. Calls after the first are no-ops.
func (w *WindowSink) Destroy() {
	if w.Window == nil {
		return
	}
	w.Window.Destroy()
	w.Window = nil
	w.logger.Debug("window destroyed")
}
