package config

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"
	"github.com/learnopengl/hellotriangle/lib/utils"
)

// CfgColour is written either as "#RRGGBBAA" or as a list of three or four
// floats in [0, 1]. Floats are kept as given so that 0.3 stays 0.3.
type CfgColour struct {
	utils.Colour
}

func (c *CfgColour) UnmarshalYAML(b []byte) error {
	var components []float32
	if err := yaml.Unmarshal(b, &components); err == nil {
		switch len(components) {
		case 3:
			c.Colour = utils.Colour{R: components[0], G: components[1], B: components[2], A: 1}
		case 4:
			c.Colour = utils.Colour{R: components[0], G: components[1], B: components[2], A: components[3]}
		default:
			return fmt.Errorf("colour needs 3 or 4 components, got %d", len(components))
		}
		return c.Validate()
	}

	var hex string
	if err := yaml.Unmarshal(b, &hex); err != nil {
		return err
	}
	if !utils.ColourValidate(hex) {
		return fmt.Errorf("%q is not a valid RGBA hex colour", hex)
	}
	c.Colour = utils.ColourFromHex(hex)
	return nil
}

func (c CfgColour) Validate() error {
	for _, v := range c.Vec4() {
		if v < 0 || v > 1 {
			return fmt.Errorf("component %g of %s is outside [0, 1]", v, c)
		}
	}
	return nil
}
