package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/Carmen-Shannon/oxy-customizer/engine/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveCall struct {
	fileID  string
	mapping map[string]string
}

type fakeSaver struct {
	calls []saveCall
}

func (f *fakeSaver) Save(fileID string, partMaterials map[string]string) {
	f.calls = append(f.calls, saveCall{fileID: fileID, mapping: partMaterials})
}

func newFrontBackStore(t *testing.T) selection.Store {
	t.Helper()
	m, err := model.NewModel("shirt", []model.Part{
		{ID: "front", Name: "Front", Camera: model.CameraPosition{Distance: 0.75, Latitude: 60}, DefaultMaterial: model.MaterialHoundstooth},
		{ID: "back", Name: "Back", Camera: model.CameraPosition{Distance: 0.75, Latitude: 65, Longitude: 180}, DefaultMaterial: model.MaterialHoundstooth},
	}, model.EditorMaterials())
	require.NoError(t, err)

	s := selection.NewStore()
	require.NoError(t, s.Init(m, nil))
	return s
}

func TestPartsReflectStore(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	assert.Equal(t, []PartRow{
		{ID: "front", Name: "Front", Material: model.MaterialHoundstooth},
		{ID: "back", Name: "Back", Material: model.MaterialHoundstooth},
	}, e.Parts())

	require.NoError(t, store.SetSelectedPart("back"))
	rows := e.Parts()
	assert.False(t, rows[0].Selected)
	assert.True(t, rows[1].Selected)
}

func TestPartsBeforeInit(t *testing.T) {
	e := NewSelectionEditor(selection.NewStore(), "file-1")
	assert.Empty(t, e.Parts())
	assert.True(t, e.MaterialPicker().Disabled)
	assert.ErrorIs(t, e.ClickPartAt(0), selection.ErrNotInitialized)
}

func TestMaterialPickerFollowsSelection(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	picker := e.MaterialPicker()
	assert.True(t, picker.Disabled)
	assert.Empty(t, picker.Value)
	require.Len(t, picker.Options, 3)

	require.NoError(t, store.SetSelectedPart("front"))
	require.NoError(t, store.SetMaterial("front", model.MaterialRedPlaid))
	picker = e.MaterialPicker()
	assert.False(t, picker.Disabled)
	assert.Equal(t, model.MaterialRedPlaid, picker.Value)
}

func TestClickPartToggles(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	require.NoError(t, e.ClickPart("back"))
	assert.Equal(t, "back", store.SelectedPart())
	require.NoError(t, e.ClickPart("front"))
	assert.Equal(t, "front", store.SelectedPart())
	require.NoError(t, e.ClickPart("front"))
	assert.Equal(t, selection.None, store.SelectedPart())

	assert.ErrorIs(t, e.ClickPart("collar"), model.ErrUnknownPart)
	assert.Equal(t, selection.None, store.SelectedPart())
}

func TestClickPartAt(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	require.NoError(t, e.ClickPartAt(1))
	assert.Equal(t, "back", store.SelectedPart())
	assert.ErrorIs(t, e.ClickPartAt(2), ErrNoSuchRow)
	assert.ErrorIs(t, e.ClickPartAt(-1), ErrNoSuchRow)
}

func TestChooseMaterialSavesFullMapping(t *testing.T) {
	store := newFrontBackStore(t)
	saver := &fakeSaver{}
	e := NewSelectionEditor(store, "file-1", WithSaver(saver))

	require.NoError(t, e.ClickPart("back"))
	require.NoError(t, e.ChooseMaterial(model.MaterialJeans))

	materials := store.PartMaterials()
	assert.Equal(t, model.MaterialJeans, materials["back"])
	assert.Equal(t, model.MaterialHoundstooth, materials["front"])

	require.Len(t, saver.calls, 1)
	assert.Equal(t, "file-1", saver.calls[0].fileID)
	assert.Equal(t, map[string]string{"front": model.MaterialHoundstooth, "back": model.MaterialJeans}, saver.calls[0].mapping)
}

func TestChooseMaterialWithoutSelection(t *testing.T) {
	store := newFrontBackStore(t)
	saver := &fakeSaver{}
	e := NewSelectionEditor(store, "file-1", WithSaver(saver))

	require.NoError(t, e.ChooseMaterial(model.MaterialJeans))
	assert.Empty(t, saver.calls)
	assert.Equal(t, model.MaterialHoundstooth, store.PartMaterials()["front"])
}

func TestChooseUnknownMaterial(t *testing.T) {
	store := newFrontBackStore(t)
	saver := &fakeSaver{}
	e := NewSelectionEditor(store, "file-1", WithSaver(saver))

	require.NoError(t, e.ClickPart("front"))
	assert.ErrorIs(t, e.ChooseMaterial("velvet"), model.ErrUnknownMaterial)
	assert.Empty(t, saver.calls)
}

func TestNextMaterialCycles(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	require.NoError(t, e.NextMaterial())
	assert.Equal(t, model.MaterialHoundstooth, store.PartMaterials()["front"], "no selection, no change")

	require.NoError(t, e.ClickPart("front"))
	want := []string{model.MaterialJeans, model.MaterialRedPlaid, model.MaterialHoundstooth}
	for _, id := range want {
		require.NoError(t, e.NextMaterial())
		assert.Equal(t, id, e.MaterialPicker().Value)
	}
}

func TestFilterMaterials(t *testing.T) {
	e := NewSelectionEditor(newFrontBackStore(t), "file-1")

	ids := func(options []MaterialOption) []string {
		out := []string{}
		for _, o := range options {
			out = append(out, o.ID)
		}
		return out
	}

	assert.Equal(t, []string{model.MaterialHoundstooth, model.MaterialJeans, model.MaterialRedPlaid}, ids(e.FilterMaterials("")))
	assert.Equal(t, []string{model.MaterialJeans}, ids(e.FilterMaterials("jns")))
	assert.Equal(t, []string{model.MaterialRedPlaid}, ids(e.FilterMaterials("PLAID")))
	assert.Equal(t, []string{model.MaterialJeans, model.MaterialRedPlaid}, ids(e.FilterMaterials("a")))
	assert.Empty(t, e.FilterMaterials("velvet"))
}

func TestRenderASCII(t *testing.T) {
	store := newFrontBackStore(t)
	e := NewSelectionEditor(store, "file-1")

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf))
	assert.Equal(t, "Parts\n"+
		"  1 Front  houndstooth\n"+
		"  2 Back   houndstooth\n"+
		"Material: select a part to choose its material\n", buf.String())

	require.NoError(t, e.ClickPart("back"))
	require.NoError(t, e.ChooseMaterial(model.MaterialJeans))
	buf.Reset()
	require.NoError(t, e.Render(&buf))
	assert.Equal(t, "Parts\n"+
		"  1 Front  houndstooth\n"+
		"> 2 Back   jeans\n"+
		"Material: Houndstooth  [Jeans]  Red plaid\n", buf.String())
}

func TestSaveErrorIsShown(t *testing.T) {
	e := NewSelectionEditor(newFrontBackStore(t), "file-1")
	e.SetSaveError(errors.New("disk full"))
	assert.EqualError(t, e.SaveError(), "disk full")

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf))
	assert.Contains(t, buf.String(), "Save failed: disk full\n")

	e.SetSaveError(nil)
	assert.NoError(t, e.SaveError())
}

func typeQuery(e SelectionEditor, query string) {
	for _, r := range query {
		e.SearchInput(r)
	}
}

func TestSearchChoosesBestMatch(t *testing.T) {
	store := newFrontBackStore(t)
	saver := &fakeSaver{}
	e := NewSelectionEditor(store, "file-1", WithSaver(saver))
	require.NoError(t, e.ClickPart("back"))

	e.BeginSearch()
	typeQuery(e, "plx")
	e.SearchBackspace()
	query, searching := e.Search()
	assert.True(t, searching)
	assert.Equal(t, "pl", query)

	require.NoError(t, e.CommitSearch())
	_, searching = e.Search()
	assert.False(t, searching)
	assert.Equal(t, model.MaterialRedPlaid, store.PartMaterials()["back"])
	require.Len(t, saver.calls, 1)
	assert.Equal(t, model.MaterialRedPlaid, saver.calls[0].mapping["back"])
}

func TestSearchRequiresSelection(t *testing.T) {
	e := NewSelectionEditor(newFrontBackStore(t), "file-1")

	e.BeginSearch()
	e.SearchInput('j')
	query, searching := e.Search()
	assert.False(t, searching)
	assert.Empty(t, query)
	assert.NoError(t, e.CommitSearch())
}

func TestSearchWithoutMatchStaysOpen(t *testing.T) {
	store := newFrontBackStore(t)
	saver := &fakeSaver{}
	e := NewSelectionEditor(store, "file-1", WithSaver(saver))
	require.NoError(t, e.ClickPart("front"))

	e.BeginSearch()
	typeQuery(e, "velvet")
	assert.ErrorIs(t, e.CommitSearch(), ErrNoMatch)
	_, searching := e.Search()
	assert.True(t, searching)
	assert.Empty(t, saver.calls)

	e.CancelSearch()
	_, searching = e.Search()
	assert.False(t, searching)
	assert.Equal(t, model.MaterialHoundstooth, store.PartMaterials()["front"])
}

func TestRenderShowsSearch(t *testing.T) {
	e := NewSelectionEditor(newFrontBackStore(t), "file-1")
	require.NoError(t, e.ClickPart("front"))
	e.BeginSearch()
	typeQuery(e, "jns")

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf))
	assert.Contains(t, buf.String(), "Search: jns_  -> Jeans\n")

	e.SearchInput('z')
	buf.Reset()
	require.NoError(t, e.Render(&buf))
	assert.Contains(t, buf.String(), "Search: jnsz_  -> no match\n")
}
