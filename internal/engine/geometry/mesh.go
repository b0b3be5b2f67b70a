// Package geometry generates the meshes the pendulum is drawn with.
package geometry

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/pendulum-gl/pkg/math"
)

// MaxBands keeps (bands+1)² vertices addressable by uint16 indices.
const MaxBands = 255

// Mesh is CPU-side geometry ready for upload.
// Normals, when present, has the same length as Positions, and every index is
// below len(Positions).
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// PositionData returns positions flattened to xyz triples.
func (m *Mesh) PositionData() []float32 {
	return flatten(m.Positions)
}

// NormalData returns normals flattened to xyz triples.
func (m *Mesh) NormalData() []float32 {
	return flatten(m.Normals)
}

func flatten(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

// Sphere generates a UV sphere centered at the origin.
//
// Rows run over latitude θ = i·π/latBands and columns over longitude
// φ = j·2π/lonBands, both inclusive, so the φ = 0 and φ = 2π columns are
// separate vertices. The result has (latBands+1)(lonBands+1) vertices and
// 6·latBands·lonBands indices.
func Sphere(radius float32, latBands, lonBands int) (*Mesh, error) {
	if latBands < 1 || lonBands < 1 {
		return nil, fmt.Errorf("sphere bands must be >= 1, got %dx%d", latBands, lonBands)
	}
	vertexCount := (latBands + 1) * (lonBands + 1)
	if vertexCount > gomath.MaxUint16+1 {
		return nil, fmt.Errorf("sphere %dx%d has %d vertices, exceeds uint16 indices", latBands, lonBands, vertexCount)
	}

	m := &Mesh{
		Positions: make([]math.Vec3, 0, vertexCount),
		Normals:   make([]math.Vec3, 0, vertexCount),
		Indices:   make([]uint16, 0, 6*latBands*lonBands),
	}

	for lat := 0; lat <= latBands; lat++ {
		theta := float64(lat) * gomath.Pi / float64(latBands)
		sinTheta, cosTheta := gomath.Sincos(theta)

		for lon := 0; lon <= lonBands; lon++ {
			phi := float64(lon) * 2 * gomath.Pi / float64(lonBands)
			sinPhi, cosPhi := gomath.Sincos(phi)

			n := math.Vec3{
				X: float32(cosPhi * sinTheta),
				Y: float32(cosTheta),
				Z: float32(sinPhi * sinTheta),
			}
			m.Normals = append(m.Normals, n)
			m.Positions = append(m.Positions, n.Scale(radius))
		}
	}

	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < lonBands; lon++ {
			first := uint16(lat*(lonBands+1) + lon)
			second := first + uint16(lonBands) + 1

			m.Indices = append(m.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return m, nil
}

// Line returns the two-vertex rod hanging from the origin to (0, -length, 0).
// It has no normals and no indices.
func Line(length float32) *Mesh {
	return &Mesh{
		Positions: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: -length, Z: 0},
		},
	}
}

// Segment returns a two-vertex mesh between arbitrary endpoints.
func Segment(start, end math.Vec3) *Mesh {
	return &Mesh{Positions: []math.Vec3{start, end}}
}
