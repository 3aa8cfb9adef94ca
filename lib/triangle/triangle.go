package triangle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/learnopengl/hellotriangle/lib/api"
	"github.com/learnopengl/hellotriangle/lib/config"
	"github.com/learnopengl/hellotriangle/lib/kbdctl"
	"github.com/learnopengl/hellotriangle/lib/log"
	"github.com/learnopengl/hellotriangle/lib/metrics"
	"github.com/learnopengl/hellotriangle/lib/rendering"
	"github.com/learnopengl/hellotriangle/lib/rendering/shaders"
	"github.com/learnopengl/hellotriangle/lib/session"
	"github.com/learnopengl/hellotriangle/lib/shaderwatch"
	"github.com/learnopengl/hellotriangle/lib/sink/windowsink"
	"github.com/learnopengl/hellotriangle/lib/stats"
	"github.com/learnopengl/hellotriangle/lib/utils"
)

// MakeWindowAndDraw opens the window and draws the quad until the window is
// closed or a shutdown is requested. Must be called from the main thread.
func MakeWindowAndDraw(cfg *config.Config) error {
	logger := log.Module("triangle")

	err := windowsink.Init()
	if err != nil {
		return err
	}
	defer windowsink.Terminate()

	sess := session.New()
	tracker := stats.New()

	window := windowsink.New(&cfg.Window)
	err = window.Start()
	if err != nil {
		return err
	}
	defer window.Destroy()

	err = rendering.Init()
	if err != nil {
		return err
	}

	shaderData := &shaders.ShaderData{
		QuadColour: cfg.QuadColour.Colour,
	}
	program, err := buildProgram(cfg, shaderData)
	metrics.ShaderBuilt(err)
	if err != nil {
		window.Window.SetShouldClose(true)
		return fmt.Errorf("failed to init: %w", err)
	}

	glvars := rendering.NewGLVars(program, cfg.ClearColour.Colour)
	glvars.Start()
	defer glvars.Release()

	window.OnResize = func(width, height int) {
		metrics.SetFramebufferSize(width, height)
		tracker.SetSize(width, height)
	}
	window.OnResize(window.FramebufferSize())

	theApi := api.ServeInBackground(cfg, sess, tracker)
	if theApi != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = theApi.Shutdown(ctx)
		}()
	}

	if cfg.Shaders != nil && cfg.Shaders.Watch {
		watcher, err := shaderwatch.Watch(shaderPaths(cfg), func(string) {
			sess.RequestShaderReload()
		})
		if err != nil {
			logger.Warn("shader files will not be reloaded", slog.Any("err", err))
		} else {
			defer watcher.Close()
		}
	}

	stopSignals := HandleSignals(sess)
	defer stopSignals()

	logger.Info("drawing")
	var deltaTimer utils.DeltaTimer
	for !window.ShouldClose() && !sess.ShutdownRequested() {
		kbdctl.ProcessInput(window.Window)

		glvars.DrawFrame()

		window.SwapBuffers()
		kbdctl.Poll()

		// Maintenance
		dt := deltaTimer.Next()
		metrics.FramesDrawn.Inc()
		tracker.Update(dt)
		if sess.TakeShaderReload() {
			reloadProgram(cfg, shaderData, glvars, sess, tracker)
		}
	}

	if window.ShouldClose() {
		sess.RequestShutdown("window closed")
	}
	logger.Info("closing")
	return nil
}

func shaderPaths(cfg *config.Config) []string {
	if cfg.Shaders == nil {
		return nil
	}
	return []string{string(cfg.Shaders.Vertex), string(cfg.Shaders.Fragment)}
}

func buildProgram(cfg *config.Config, shaderData *shaders.ShaderData) (uint32, error) {
	var vertexPath, fragmentPath string
	if paths := shaderPaths(cfg); paths != nil {
		vertexPath, fragmentPath = paths[0], paths[1]
	}

	shaderer, err := shaders.NewShaderer(vertexPath, fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("could not get shaders: %w", err)
	}
	return shaders.BuildGLProgram(shaderer, shaderData)
}

// reloadProgram rebuilds the shaders from disk. On failure the current
// program stays in use.
func reloadProgram(cfg *config.Config, shaderData *shaders.ShaderData, glvars *rendering.GLVars, sess *session.Session, tracker *stats.Tracker) {
	logger := log.Module("triangle")

	program, err := buildProgram(cfg, shaderData)
	metrics.ShaderBuilt(err)
	sess.ShaderReloaded(program, err)
	if err != nil {
		logger.Error("shader reload failed, keeping the previous program", slog.Any("err", err))
		return
	}

	glvars.SetProgram(program)
	tracker.ShaderReloaded()
	logger.Info(fmt.Sprintf("shaders reloaded (program %d)", program))
}
