package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"slices"
	"text/template"

	"github.com/learnopengl/hellotriangle/lib/utils"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	VertexShaderName   = "quad.vert"
	FragmentShaderName = "quad.frag"
)

type Shaderer struct {
	templates *template.Template
}

// NewShaderer loads the built-in templates. A non-empty path replaces the
// built-in template of that stage with the file's contents.
func NewShaderer(vertexPath, fragmentPath string) (*Shaderer, error) {
	s := &Shaderer{}

	var err error
	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")
	if err != nil {
		return nil, err
	}

	err = s.override(VertexShaderName, vertexPath)
	if err != nil {
		return nil, err
	}
	err = s.override(FragmentShaderName, fragmentPath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shaderer) override(name string, path string) error {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	_, err = s.templates.New(name).Parse(string(content))
	if err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}
	return nil
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	QuadColour utils.Colour
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %w", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	slices.Sort(names)
	return names
}
