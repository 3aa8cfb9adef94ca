package shaders

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/learnopengl/hellotriangle/lib/log"
)

// BuildGLProgram renders both stages and links them into a program.
// Needs a current GL context.
func BuildGLProgram(shaderer *Shaderer, shaderData *ShaderData) (uint32, error) {
	vertexShader, err := shaderer.GetShaderSource(VertexShaderName, shaderData)
	if err != nil {
		return 0, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := shaderer.GetShaderSource(FragmentShaderName, shaderData)
	if err != nil {
		return 0, fmt.Errorf("could not get fragment shader: %w", err)
	}

	program, err := newProgram(vertexShader, fragmentShader)
	if err != nil {
		return 0, err
	}

	log.Module("shaders").Debug(fmt.Sprintf("linked program %d", program))
	return program, nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("failed to compile vertex shader: %w", err)
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("failed to compile fragment shader: %w", err)
	}

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// the program keeps what it needs, linked or not
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logmsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("program: link failed: %s", trimInfoLog(logmsg))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%s", trimInfoLog(clog))
	}

	return shader, nil
}

// trimInfoLog drops the NUL padding and trailing newlines GL leaves in info logs.
func trimInfoLog(s string) string {
	return strings.TrimRight(s, "\x00\r\n ")
}
