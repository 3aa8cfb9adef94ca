package utils

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// Colour is a normalised RGBA colour as GL wants it.
type Colour struct {
	R, G, B, A float32
}

func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

func ColourParse(s string) (c color.RGBA) {
	fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	return
}

func ColourFromRGBA(c color.RGBA) Colour {
	return Colour{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// ColourFromHex parses a #RRGGBBAA string. Malformed input yields transparent black.
func ColourFromHex(s string) Colour {
	return ColourFromRGBA(ColourParse(s))
}

func (c Colour) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// GLSL renders the colour as a vec4 literal.
func (c Colour) GLSL() string {
	return fmt.Sprintf("vec4(%.4f, %.4f, %.4f, %.4f)", c.R, c.G, c.B, c.A)
}

func (c Colour) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}
