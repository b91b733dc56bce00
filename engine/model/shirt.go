package model

// Material ids in the built-in catalog.
const (
	MaterialHoundstooth = "houndstooth"
	MaterialJeans       = "jeans"
	MaterialRedPlaid    = "redplaid"
)

// EditorMaterials returns the built-in material catalog.
func EditorMaterials() []Material {
	return []Material{
		{ID: MaterialHoundstooth, Name: "Houndstooth", Swatch: [3]float64{0.32, 0.32, 0.34}},
		{ID: MaterialJeans, Name: "Jeans", Swatch: [3]float64{0.16, 0.24, 0.42}},
		{ID: MaterialRedPlaid, Name: "Red plaid", Swatch: [3]float64{0.62, 0.12, 0.12}},
	}
}

// ShirtParts returns the part definitions of the built-in shirt.
func ShirtParts() []Part {
	return []Part{
		{ID: "front", Name: "Front", Camera: CameraPosition{Distance: 0.75, Latitude: 60, Longitude: 0}, DefaultMaterial: MaterialHoundstooth},
		{ID: "back", Name: "Back", Camera: CameraPosition{Distance: 0.75, Latitude: 65, Longitude: 180}, DefaultMaterial: MaterialHoundstooth},
		{ID: "neckRim", Name: "Neck Rim", Camera: CameraPosition{Distance: 0.65, Latitude: 25, Longitude: 0}, DefaultMaterial: MaterialHoundstooth},
		{ID: "leftSleeve", Name: "Left Sleeve", Camera: CameraPosition{Distance: 0.65, Latitude: 65, Longitude: 65}, DefaultMaterial: MaterialHoundstooth},
		{ID: "rightSleeve", Name: "Right Sleeve", Camera: CameraPosition{Distance: 0.65, Latitude: 65, Longitude: -65}, DefaultMaterial: MaterialHoundstooth},
	}
}

// Shirt builds the built-in shirt model.
//
// Returns:
//   - Model: the shirt
func Shirt() Model {
	m, err := NewModel("shirt", ShirtParts(), EditorMaterials())
	if err != nil {
		panic("shirt catalog is invalid: " + err.Error())
	}
	return m
}
