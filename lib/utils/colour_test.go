package utils

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColourValidate(t *testing.T) {
	cases := map[string]bool{
		"#334d4dff":  true,
		"#FF8033FF":  true,
		"#334d4d":    false,
		"334d4dff":   false,
		"#334d4dzz":  false,
		"#334d4dff0": false,
		"":           false,
	}
	for in, want := range cases {
		if got := ColourValidate(in); got != want {
			t.Errorf("ColourValidate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestColourParse(t *testing.T) {
	got := ColourParse("#ff8033ff")
	want := color.RGBA{R: 0xff, G: 0x80, B: 0x33, A: 0xff}
	if got != want {
		t.Fatalf("ColourParse = %+v, want %+v", got, want)
	}
}

func TestColourFromHex(t *testing.T) {
	c := ColourFromHex("#ff0000ff")
	if c != (Colour{R: 1, G: 0, B: 0, A: 1}) {
		t.Fatalf("unexpected colour %+v", c)
	}

	v := ColourFromHex("#334d4dff").Vec4()
	if !v.ApproxEqualThreshold(mgl32.Vec4{0.2, 0.3, 0.3, 1}, 0.005) {
		t.Fatalf("background colour drifted: %v", v)
	}
}

func TestColourGLSL(t *testing.T) {
	got := Colour{R: 1, G: 0.5, B: 0.25, A: 1}.GLSL()
	want := "vec4(1.0000, 0.5000, 0.2500, 1.0000)"
	if got != want {
		t.Fatalf("GLSL() = %q, want %q", got, want)
	}
}

func TestColourString(t *testing.T) {
	if got := (Colour{R: 0.2, G: 0.3, B: 0.3, A: 1}).String(); got != "(0.2, 0.3, 0.3, 1)" {
		t.Fatalf("String = %s", got)
	}
}
