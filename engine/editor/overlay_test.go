package editor

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/Carmen-Shannon/oxy-customizer/engine/camera"
	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlayBackend records the overlays the renderer hands it.
type overlayBackend struct {
	overlays []renderer.Overlay
}

func (b *overlayBackend) ConfigureSurface(int, int) {}
func (b *overlayBackend) SetPresentMode(renderer.PresentMode) {}
func (b *overlayBackend) BeginFrame(renderer.ClearColor) error { return nil }
func (b *overlayBackend) DrawOverlay(o renderer.Overlay) { b.overlays = append(b.overlays, o) }
func (b *overlayBackend) EndFrame() {}
func (b *overlayBackend) Present() {}
func (b *overlayBackend) Release() {}

func (b *overlayBackend) last() (renderer.Overlay, bool) {
	if len(b.overlays) == 0 {
		return renderer.Overlay{}, false
	}
	return b.overlays[len(b.overlays)-1], true
}

func vec(v renderer.LineVertex) common.Vec3 {
	return common.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
}

func TestBuildOverlayLayout(t *testing.T) {
	parts := model.ShirtParts()
	white := [4]float32{1, 1, 1, 1}

	none := buildOverlay([16]float32{}, parts, selection.None, white)
	assert.Len(t, none.Lines, 6+4*len(parts))

	o := buildOverlay([16]float32{0: 2}, parts, "back", white)
	assert.Equal(t, float32(2), o.ViewProjection[0])
	require.Len(t, o.Lines, 6+4*len(parts)+8)
	assert.Equal(t, len(o.Lines), o.VertexCount())

	// Axes come first and start at the origin.
	for i := 0; i < 6; i += 2 {
		assert.Equal(t, common.Origin, vec(o.Lines[i]))
		assert.InDelta(t, axisLength, vec(o.Lines[i+1]).Length(), 1e-6)
	}

	// Every marker vertex sits just off the marker sphere, in the part's direction.
	highlighted := 0
	for _, v := range o.Lines[6:] {
		assert.InDelta(t, markerRadius, vec(v).Length(), markerSize*1.5)
		if v.Color == white {
			highlighted++
		}
	}
	assert.Equal(t, 8+4, highlighted)
}

func TestBuildOverlayMarkerFacesPart(t *testing.T) {
	parts := model.ShirtParts()
	o := buildOverlay([16]float32{}, parts[:1], selection.None, [4]float32{})
	require.Len(t, o.Lines, 10)

	dir := parts[0].Camera.Spherical().ToCartesian().Normalize()
	a, b := vec(o.Lines[6]), vec(o.Lines[7])
	center := a.Add(b).Scale(0.5)
	assert.InDelta(t, markerRadius, center.Dot(dir), 1e-5)
	assert.InDelta(t, 0, b.Sub(a).Dot(dir), 1e-5, "the cross lies across the view direction")
}

func TestContrastColor(t *testing.T) {
	assert.Equal(t, [4]float32{1, 1, 1, 1}, contrastColor(renderer.DefaultClearColor))
	assert.Equal(t, [4]float32{0, 0, 0, 1}, contrastColor(renderer.ClearColor{R: 1, G: 1, B: 1, A: 1}))
}

func TestSessionDrawsOverlayFromCamera(t *testing.T) {
	backend := &overlayBackend{}
	r := renderer.NewRenderer(renderer.WithBackend(backend))
	now := time.Unix(500, 0)
	cam := camera.NewCamera(camera.WithPosition(common.Vec3{Z: 0.75}))
	s := NewSession(model.Shirt(), newMemoryPersistence(), r, cam, camera.NewOrbitControls(cam),
		WithClock(func() time.Time { return now }),
	)
	t.Cleanup(s.Close)

	require.NoError(t, s.Open(context.Background(), "shirt-1"))
	require.True(t, r.Frame(now))
	first, ok := backend.last()
	require.True(t, ok)
	assert.Len(t, first.Lines, 6+4*len(model.ShirtParts()))

	require.NoError(t, s.Editor().ClickPart("back"))
	require.True(t, r.Frame(now.Add(time.Second)))

	flown, ok := backend.last()
	require.True(t, ok)
	assert.Equal(t, cam.ViewProjectionMatrix(), flown.ViewProjection, "drawn with the camera after it moved")
	assert.NotEqual(t, first.ViewProjection, flown.ViewProjection)
	assert.Len(t, flown.Lines, 6+4*len(model.ShirtParts())+8)

	s.Close()
	backend.overlays = nil
	r.Frame(now.Add(2 * time.Second))
	assert.Empty(t, backend.overlays)
}
