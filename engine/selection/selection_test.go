package selection

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontBack(t *testing.T, options ...model.ModelBuilderOption) model.Model {
	t.Helper()
	m, err := model.NewModel("shirt", []model.Part{
		{ID: "front", Name: "Front", Camera: model.CameraPosition{Distance: 0.75, Latitude: 60}, DefaultMaterial: model.MaterialHoundstooth},
		{ID: "back", Name: "Back", Camera: model.CameraPosition{Distance: 0.75, Latitude: 65, Longitude: 180}, DefaultMaterial: model.MaterialHoundstooth},
	}, model.EditorMaterials(), options...)
	require.NoError(t, err)
	return m
}

func TestInitSeedsDefaults(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	assert.Equal(t, None, s.SelectedPart())
	assert.Equal(t, map[string]string{"front": "houndstooth", "back": "houndstooth"}, s.PartMaterials())
}

func TestInitOverlaysSaved(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), map[string]string{"back": "jeans"}))

	assert.Equal(t, map[string]string{"front": "houndstooth", "back": "jeans"}, s.PartMaterials())
}

func TestInitRejectsBadSaved(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Init(frontBack(t), map[string]string{"collar": "jeans"}), model.ErrUnknownPart)
	assert.ErrorIs(t, s.Init(frontBack(t), map[string]string{"back": "velvet"}), model.ErrUnknownMaterial)
	assert.Nil(t, s.Model())
}

func TestInitAppliesDefaultSelection(t *testing.T) {
	s := NewStore()
	var got []string
	s.Subscribe(func(selected string) { got = append(got, selected) })

	require.NoError(t, s.Init(frontBack(t, model.WithDefaultSelection("front")), nil))
	assert.Equal(t, "front", s.SelectedPart())
	assert.Equal(t, []string{"front"}, got)
}

func TestMutationsBeforeInit(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.SetSelectedPart("front"), ErrNotInitialized)
	assert.ErrorIs(t, s.SetMaterial("front", "jeans"), ErrNotInitialized)
	assert.Nil(t, s.PartMaterials())

	_, ok := s.PartMaterial("front")
	assert.False(t, ok)
}

func TestSubscribeFiresOncePerDistinctChange(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	var a, b []string
	s.Subscribe(func(selected string) { a = append(a, selected) })
	s.Subscribe(func(selected string) { b = append(b, selected) })

	require.NoError(t, s.SetSelectedPart("back"))
	require.NoError(t, s.SetSelectedPart("back"))
	require.NoError(t, s.SetSelectedPart("front"))
	require.NoError(t, s.SetSelectedPart(None))
	require.NoError(t, s.SetSelectedPart(None))

	want := []string{"back", "front", None}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
}

func TestSubscribeIgnoresMaterialChanges(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	calls := 0
	s.Subscribe(func(string) { calls++ })

	require.NoError(t, s.SetMaterial("back", "jeans"))
	require.NoError(t, s.SetMaterial("front", "redplaid"))
	assert.Zero(t, calls)
}

func TestSetSelectedPartRejectsUnknown(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))
	require.NoError(t, s.SetSelectedPart("front"))

	calls := 0
	s.Subscribe(func(string) { calls++ })

	assert.ErrorIs(t, s.SetSelectedPart("collar"), model.ErrUnknownPart)
	assert.Equal(t, "front", s.SelectedPart())
	assert.Zero(t, calls)
}

func TestSetMaterial(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	var changes [][2]string
	s.SubscribeMaterials(func(partID, materialID string) {
		changes = append(changes, [2]string{partID, materialID})
	})

	require.NoError(t, s.SetMaterial("back", "jeans"))
	require.NoError(t, s.SetMaterial("back", "jeans"))

	got, ok := s.PartMaterial("back")
	require.True(t, ok)
	assert.Equal(t, "jeans", got)
	got, _ = s.PartMaterial("front")
	assert.Equal(t, "houndstooth", got)
	assert.Equal(t, [][2]string{{"back", "jeans"}}, changes)

	assert.ErrorIs(t, s.SetMaterial("collar", "jeans"), model.ErrUnknownPart)
	assert.ErrorIs(t, s.SetMaterial("back", "velvet"), model.ErrUnknownMaterial)
}

func TestPartMaterialsIsACopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	m := s.PartMaterials()
	m["front"] = "jeans"

	got, _ := s.PartMaterial("front")
	assert.Equal(t, "houndstooth", got)
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	calls := 0
	unsubscribe := s.Subscribe(func(string) { calls++ })
	require.NoError(t, s.SetSelectedPart("front"))
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.SetSelectedPart("back"))

	assert.Equal(t, 1, calls)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))

	var seen string
	s.Subscribe(func(string) { seen = s.SelectedPart() })
	require.NoError(t, s.SetSelectedPart("back"))
	assert.Equal(t, "back", seen)
}

func TestReset(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Init(frontBack(t), nil))
	require.NoError(t, s.SetSelectedPart("back"))
	require.NoError(t, s.SetMaterial("back", "jeans"))

	var got []string
	s.Subscribe(func(selected string) { got = append(got, selected) })

	s.Reset()
	assert.Equal(t, None, s.SelectedPart())
	assert.Nil(t, s.PartMaterials())
	assert.Nil(t, s.Model())
	assert.Equal(t, []string{None}, got)

	// A second session starts from defaults, not from the previous file's edits.
	require.NoError(t, s.Init(frontBack(t), nil))
	m, _ := s.PartMaterial("back")
	assert.Equal(t, "houndstooth", m)

	s.Reset()
	s.Reset()
	assert.Equal(t, []string{None}, got)
}
