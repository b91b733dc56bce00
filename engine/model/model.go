package model

import (
	"fmt"
	"sort"
)

// model is the implementation of the Model interface.
type model struct {
	name             string
	parts            []Part
	partIndex        map[string]int
	materials        []Material
	materialIndex    map[string]int
	defaultSelection string
}

// Model is an immutable, validated catalog of selectable parts and the materials they may wear.
// Every id a Model hands out is guaranteed to resolve within it.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Parts retrieves the part definitions in definition order.
	// The returned slice is a copy.
	//
	// Returns:
	//   - []Part: the parts
	Parts() []Part

	// Part looks up a part by id.
	//
	// Parameters:
	//   - id: the part id
	//
	// Returns:
	//   - Part: the part definition
	//   - bool: false if no part has that id
	Part(id string) (Part, bool)

	// Materials retrieves the material catalog in definition order.
	// The returned slice is a copy.
	//
	// Returns:
	//   - []Material: the materials
	Materials() []Material

	// Material looks up a material by id.
	//
	// Parameters:
	//   - id: the material id
	//
	// Returns:
	//   - Material: the material
	//   - bool: false if no material has that id
	Material(id string) (Material, bool)

	// DefaultMaterials builds a total part → material mapping from each part's default.
	//
	// Returns:
	//   - map[string]string: a fresh mapping owned by the caller
	DefaultMaterials() map[string]string

	// DefaultSelection retrieves the part selected when an editor opens, or "" for none.
	//
	// Returns:
	//   - string: the part id or ""
	DefaultSelection() string

	// ValidateMaterials checks that every key of m is a known part and every value a known material.
	// The mapping does not need to be total.
	//
	// Parameters:
	//   - m: a part → material mapping
	//
	// Returns:
	//   - error: wraps ErrUnknownPart or ErrUnknownMaterial on the first offending entry
	ValidateMaterials(m map[string]string) error
}

var _ Model = &model{}

// NewModel validates a part and material catalog and builds a Model from it.
// Parts and materials keep their definition order.
//
// Parameters:
//   - name: the model identifier
//   - parts: the part definitions, at least one
//   - materials: the material catalog
//   - options: variadic list of ModelBuilderOption functions
//
// Returns:
//   - Model: the validated model
//   - error: ErrNoParts, ErrEmptyID, ErrDuplicatePart, ErrDuplicateMaterial, ErrInvalidCamera,
//     ErrUnknownMaterial or ErrUnknownPart (wrapped) when the catalog is inconsistent
func NewModel(name string, parts []Part, materials []Material, options ...ModelBuilderOption) (Model, error) {
	m := &model{
		name:          name,
		parts:         append([]Part(nil), parts...),
		partIndex:     make(map[string]int, len(parts)),
		materials:     append([]Material(nil), materials...),
		materialIndex: make(map[string]int, len(materials)),
	}
	for _, option := range options {
		option(m)
	}

	if len(m.parts) == 0 {
		return nil, fmt.Errorf("model %q: %w", name, ErrNoParts)
	}

	for i, mat := range m.materials {
		if mat.ID == "" {
			return nil, fmt.Errorf("model %q: material %d: %w", name, i, ErrEmptyID)
		}
		if _, ok := m.materialIndex[mat.ID]; ok {
			return nil, fmt.Errorf("model %q: material %q: %w", name, mat.ID, ErrDuplicateMaterial)
		}
		m.materialIndex[mat.ID] = i
	}

	for i, p := range m.parts {
		if p.ID == "" {
			return nil, fmt.Errorf("model %q: part %d: %w", name, i, ErrEmptyID)
		}
		if _, ok := m.partIndex[p.ID]; ok {
			return nil, fmt.Errorf("model %q: part %q: %w", name, p.ID, ErrDuplicatePart)
		}
		if !(p.Camera.Distance > 0) {
			return nil, fmt.Errorf("model %q: part %q: distance %v: %w", name, p.ID, p.Camera.Distance, ErrInvalidCamera)
		}
		if _, ok := m.materialIndex[p.DefaultMaterial]; !ok {
			return nil, fmt.Errorf("model %q: part %q: default material %q: %w", name, p.ID, p.DefaultMaterial, ErrUnknownMaterial)
		}
		m.partIndex[p.ID] = i
	}

	if m.defaultSelection != "" {
		if _, ok := m.partIndex[m.defaultSelection]; !ok {
			return nil, fmt.Errorf("model %q: default selection %q: %w", name, m.defaultSelection, ErrUnknownPart)
		}
	}

	return m, nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Parts() []Part {
	return append([]Part(nil), m.parts...)
}

func (m *model) Part(id string) (Part, bool) {
	i, ok := m.partIndex[id]
	if !ok {
		return Part{}, false
	}
	return m.parts[i], true
}

func (m *model) Materials() []Material {
	return append([]Material(nil), m.materials...)
}

func (m *model) Material(id string) (Material, bool) {
	i, ok := m.materialIndex[id]
	if !ok {
		return Material{}, false
	}
	return m.materials[i], true
}

func (m *model) DefaultMaterials() map[string]string {
	out := make(map[string]string, len(m.parts))
	for _, p := range m.parts {
		out[p.ID] = p.DefaultMaterial
	}
	return out
}

func (m *model) DefaultSelection() string {
	return m.defaultSelection
}

func (m *model) ValidateMaterials(materials map[string]string) error {
	// Sorted so the reported entry is deterministic.
	keys := make([]string, 0, len(materials))
	for k := range materials {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, partID := range keys {
		if _, ok := m.partIndex[partID]; !ok {
			return fmt.Errorf("part %q: %w", partID, ErrUnknownPart)
		}
		if _, ok := m.materialIndex[materials[partID]]; !ok {
			return fmt.Errorf("part %q: material %q: %w", partID, materials[partID], ErrUnknownMaterial)
		}
	}
	return nil
}
