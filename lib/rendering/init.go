package rendering

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/learnopengl/hellotriangle/lib/log"
)

// Init loads the GL function pointers for the current context.
func Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Module("rendering").Info(fmt.Sprintf("OpenGL version %s / %s / %s", vendor, renderer, version))

	return nil
}
