package model

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of a model catalog.
type catalogFile struct {
	Name             string     `yaml:"name"`
	DefaultSelection string     `yaml:"defaultSelection"`
	Materials        []Material `yaml:"materials"`
	Parts            []Part     `yaml:"parts"`
}

// LoadModel decodes a YAML model catalog and validates it with NewModel.
// Unknown fields are rejected. A catalog without materials uses EditorMaterials.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - Model: the validated model
//   - error: a decode or validation error
func LoadModel(r io.Reader) (Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("model: decode catalog: %w", err)
	}

	materials := f.Materials
	if len(materials) == 0 {
		materials = EditorMaterials()
	}
	return NewModel(f.Name, f.Parts, materials, WithDefaultSelection(f.DefaultSelection))
}

// LoadModelFile opens path and decodes it with LoadModel.
//
// Parameters:
//   - path: the catalog file
//
// Returns:
//   - Model: the validated model
//   - error: an open, decode or validation error
func LoadModelFile(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	defer f.Close()
	return LoadModel(f)
}
