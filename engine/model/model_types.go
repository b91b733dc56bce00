package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-customizer/common"
)

// CameraPosition is the resting viewpoint for a part, in spherical coordinates around the origin.
type CameraPosition struct {
	// Distance is the camera's distance from the origin. Must be > 0.
	Distance float32 `yaml:"distance"`

	// Latitude is the polar angle measured from +Y, in degrees.
	Latitude float32 `yaml:"latitude"`

	// Longitude is the azimuth around +Y measured from +Z, in degrees.
	Longitude float32 `yaml:"longitude"`
}

// Spherical converts the viewpoint to radians.
//
// Returns:
//   - common.Spherical: the viewpoint as a spherical coordinate
func (c CameraPosition) Spherical() common.Spherical {
	return common.SphericalFromDegrees(c.Distance, c.Latitude, c.Longitude)
}

// Part is a named, independently selectable region of a model.
type Part struct {
	// ID is unique within a model and used as a key everywhere.
	ID string `yaml:"id"`

	// Name is the display label.
	Name string `yaml:"name"`

	// Camera is where the camera rests when the part is selected. It always looks at the origin.
	Camera CameraPosition `yaml:"camera"`

	// DefaultMaterial is applied when a file has no saved assignment for the part.
	DefaultMaterial string `yaml:"defaultMaterial"`
}

// Material is an entry in the material catalog.
type Material struct {
	// ID is the stable key stored in material assignments.
	ID string `yaml:"id"`

	// Name is the display label.
	Name string `yaml:"name"`

	// Swatch is a linear RGB preview color, each channel in [0, 1].
	Swatch [3]float64 `yaml:"swatch"`
}

// Hex formats the swatch as a #rrggbb color string, clamping each channel to [0, 1].
func (m Material) Hex() string {
	var c [3]int
	for i, v := range m.Swatch {
		c[i] = int(min(max(v, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
