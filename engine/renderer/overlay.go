package renderer

import (
	"encoding/binary"
	"math"
)

const (
	// LineVertexSize is the packed size of a LineVertex in bytes: vec3 position, vec4 color.
	LineVertexSize = 28

	// OverlayUniformSize is the packed size of the overlay uniform: one mat4x4<f32>.
	OverlayUniformSize = 64
)

// LineVertex is one end of a colored line segment in world space.
type LineVertex struct {
	Position [3]float32
	Color    [4]float32
}

// Overlay is the camera-dependent geometry drawn over the cleared frame.
// Lines holds pairs of vertices, one segment per pair; an odd trailing vertex is ignored.
type Overlay struct {
	ViewProjection [16]float32
	Lines          []LineVertex
}

// VertexCount returns the number of vertices that form whole segments.
func (o Overlay) VertexCount() int {
	return len(o.Lines) &^ 1
}

// VertexBytes packs the segment vertices for a vertex buffer, little-endian.
//
// Returns:
//   - []byte: VertexCount()*LineVertexSize bytes
func (o Overlay) VertexBytes() []byte {
	n := o.VertexCount()
	buf := make([]byte, n*LineVertexSize)
	for i, v := range o.Lines[:n] {
		off := i * LineVertexSize
		for j, f := range v.Position {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
		for j, f := range v.Color {
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// UniformBytes packs the view-projection matrix, column-major, for the overlay uniform buffer.
//
// Returns:
//   - []byte: OverlayUniformSize bytes
func (o Overlay) UniformBytes() []byte {
	buf := make([]byte, OverlayUniformSize)
	for i, f := range o.ViewProjection {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
