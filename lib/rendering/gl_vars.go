package rendering

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/learnopengl/hellotriangle/lib/log"
	"github.com/learnopengl/hellotriangle/lib/utils"
)

// GLVars holds every GL object the program draws with.
type GLVars struct {
	Program  uint32
	Quad     *Quad
	BGColour utils.Colour

	released bool
}

func NewGLVars(program uint32, bgColour utils.Colour) *GLVars {
	g := &GLVars{}

	g.Program = program
	g.BGColour = bgColour

	return g
}

// Start uploads the quad and sets the clear colour.
func (g *GLVars) Start() {
	g.Quad = NewQuad()
	gl.ClearColor(g.BGColour.R, g.BGColour.G, g.BGColour.B, g.BGColour.A)
}

func (g *GLVars) DrawFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(g.Program)
	g.Quad.Draw()
}

// SetProgram replaces the program and deletes the old one.
func (g *GLVars) SetProgram(program uint32) {
	old := g.Program
	g.Program = program
	if old != 0 && old != program {
		gl.DeleteProgram(old)
	}
}

// Release deletes the quad and the program. Calls after the first are no-ops.
func (g *GLVars) Release() bool {
	if g.released {
		return false
	}
	g.released = true

	if g.Quad != nil {
		g.Quad.Delete()
	}
	if g.Program != 0 {
		gl.DeleteProgram(g.Program)
		g.Program = 0
	}
	log.Module("rendering").Debug("released GL resources")
	return true
}
