package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/learnopengl/hellotriangle/lib/config"
	"github.com/learnopengl/hellotriangle/lib/log"
	"github.com/learnopengl/hellotriangle/lib/triangle"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	log.Setup(slog.LevelInfo)

	if len(os.Args) > 2 {
		slog.Error("Usage: " + os.Args[0] + " [config file]")
		os.Exit(2)
	}

	cfg := config.Default()
	if len(os.Args) == 2 {
		var err error
		cfg, err = config.Parse(os.Args[1])
		if err != nil {
			slog.Error("invalid config", slog.Any("err", err))
			os.Exit(1)
		}
	}

	err := triangle.MakeWindowAndDraw(cfg)
	if err != nil {
		slog.Error("exiting", slog.Any("err", err))
		os.Exit(1)
	}
}
