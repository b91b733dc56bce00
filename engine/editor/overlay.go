package editor

import (
	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/selection"
)

const (
	axisLength   = 0.12
	markerRadius = 0.3
	markerSize   = 0.02
)

var (
	axisColors  = [3][4]float32{{0.9, 0.2, 0.2, 1}, {0.2, 0.9, 0.2, 1}, {0.2, 0.4, 0.95, 1}}
	markerColor = [4]float32{0.55, 0.55, 0.55, 1}
)

// overlay draws the origin axes and one marker per part, placed along the direction the camera
// views that part from. It runs on the render goroutine after the camera has moved for the frame.
func (s *sessionImpl) overlay() renderer.Overlay {
	var parts []model.Part
	if m := s.store.Model(); m != nil {
		parts = m.Parts()
	}
	selected := s.store.SelectedPart()
	return buildOverlay(s.camera.ViewProjectionMatrix(), parts, selected, contrastColor(s.renderer.ClearColor()))
}

// buildOverlay lays out the axis gizmo and part markers. Each marker is a cross facing the origin;
// the selected part's marker is also framed by a square in the highlight color.
//
// Parameters:
//   - viewProjection: the camera's view-projection matrix
//   - parts: the parts to mark, in catalog order
//   - selected: the selected part id, or selection.None
//   - highlight: the color of the selected marker
//
// Returns:
//   - renderer.Overlay: the line geometry
func buildOverlay(viewProjection [16]float32, parts []model.Part, selected string, highlight [4]float32) renderer.Overlay {
	lines := make([]renderer.LineVertex, 0, 6+4*len(parts)+8)

	axes := [3]common.Vec3{{X: axisLength}, {Y: axisLength}, {Z: axisLength}}
	for i, axis := range axes {
		lines = append(lines, vertex(common.Origin, axisColors[i]), vertex(axis, axisColors[i]))
	}

	for _, p := range parts {
		center := p.Camera.Spherical().ToCartesian().Normalize().Scale(markerRadius)
		q := common.LookAtQuaternion(center, common.Origin, common.WorldUp)
		right := q.RotateVec3(common.Vec3{X: markerSize})
		up := q.RotateVec3(common.Vec3{Y: markerSize})

		color := markerColor
		if p.ID == selected && selected != selection.None {
			color = highlight
			corners := [4]common.Vec3{
				center.Add(right).Add(up),
				center.Sub(right).Add(up),
				center.Sub(right).Sub(up),
				center.Add(right).Sub(up),
			}
			for i := range corners {
				lines = append(lines, vertex(corners[i], color), vertex(corners[(i+1)%4], color))
			}
		}
		lines = append(lines,
			vertex(center.Sub(right), color), vertex(center.Add(right), color),
			vertex(center.Sub(up), color), vertex(center.Add(up), color),
		)
	}

	return renderer.Overlay{ViewProjection: viewProjection, Lines: lines}
}

// contrastColor picks black or white, whichever stands out against the background.
func contrastColor(bg renderer.ClearColor) [4]float32 {
	if 0.2126*bg.R+0.7152*bg.G+0.0722*bg.B > 0.5 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{1, 1, 1, 1}
}

func vertex(p common.Vec3, color [4]float32) renderer.LineVertex {
	return renderer.LineVertex{Position: [3]float32{p.X, p.Y, p.Z}, Color: color}
}
