package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/learnopengl/hellotriangle/lib/utils"
)

const (
	DefaultTitle   = "learnOpenGL"
	DefaultWidth   = 800
	DefaultHeight  = 600
	GLVersionMajor = 3
	GLVersionMinor = 3
)

var (
	DefaultClearColour = utils.Colour{R: 0.2, G: 0.3, B: 0.3, A: 1}
	DefaultQuadColour  = utils.Colour{R: 1, G: 0.5, B: 0.2, A: 1}
)

type Config struct {
	Window      WindowCfg
	ClearColour CfgColour `yaml:"clear_colour"`
	QuadColour  CfgColour `yaml:"quad_colour"`
	Shaders     *ShaderCfg
	Api         *ApiCfg
}

type WindowCfg struct {
	Title  string
	Width  int
	Height int
}

// ShaderCfg overrides the built-in shader sources with files on disk.
type ShaderCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
	Watch    bool
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		ClearColour: CfgColour{DefaultClearColour},
		QuadColour:  CfgColour{DefaultQuadColour},
	}
}

// Parse reads filename on top of Default and validates the result.
func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	cfg := Default()
	err = yaml.NewDecoder(f).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	err = c.ClearColour.Validate()
	if err != nil {
		return fmt.Errorf("clear_colour is invalid: %w", err)
	}
	err = c.QuadColour.Validate()
	if err != nil {
		return fmt.Errorf("quad_colour is invalid: %w", err)
	}
	if c.Shaders != nil {
		err = c.Shaders.Validate()
		if err != nil {
			return fmt.Errorf("shaders are invalid: %w", err)
		}
	}
	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d (GL %d.%d core)\n", c.Window.Title, c.Window.Width, c.Window.Height, GLVersionMajor, GLVersionMinor))

	b.WriteString("\nColours:\n")
	b.WriteString(fmt.Sprintf("  clear %s\n", c.ClearColour))
	b.WriteString(fmt.Sprintf("  quad  %s\n", c.QuadColour))

	b.WriteString("\nShaders:\n")
	if c.Shaders == nil {
		b.WriteString("  built-in\n")
	} else {
		b.WriteString(fmt.Sprintf("  vertex   %s\n", orBuiltin(c.Shaders.Vertex)))
		b.WriteString(fmt.Sprintf("  fragment %s\n", orBuiltin(c.Shaders.Fragment)))
		if c.Shaders.Watch {
			b.WriteString("  (reloaded on change)\n")
		}
	}

	if c.Api != nil {
		b.WriteString("\nApi:\n")
		b.WriteString(fmt.Sprintf("  %s\n", c.Api.Bind))
	}

	return b.String()
}

func orBuiltin(p CfgPath) string {
	if p == "" {
		return "built-in"
	}
	return string(p)
}

func (w *WindowCfg) Validate() error {
	if w.Title == "" {
		return fmt.Errorf("title must be specified")
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", w.Width, w.Height)
	}
	return nil
}

func (s *ShaderCfg) Validate() error {
	if s.Vertex == "" && s.Fragment == "" {
		return fmt.Errorf("at least one of vertex or fragment must be specified")
	}
	for _, p := range []CfgPath{s.Vertex, s.Fragment} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(string(p)); err != nil {
			return fmt.Errorf("cannot use shader file: %w", err)
		}
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}
