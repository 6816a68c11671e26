// Package mesh holds indexed triangle meshes and the OBJ loader that
// produces them.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"wireframe-renderer/internal/mathutil"
)

var (
	ErrIndexRange = errors.New("vertex index out of range")
	ErrEmptyFace  = errors.New("face needs at least 3 vertices")
)

// Mesh is an indexed triangle list. Vertices holds x,y,z triples and Indices
// holds zero-based vertex indices in groups of three.
// A mesh is immutable once loaded; renderers only read it.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i uint32) mathutil.Vec3 {
	o := int(i) * 3
	return mathutil.V3(m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2])
}

// Triangle returns the three corners of triangle t.
func (m *Mesh) Triangle(t int) [3]mathutil.Vec3 {
	i := t * 3
	return [3]mathutil.Vec3{
		m.Vertex(m.Indices[i]),
		m.Vertex(m.Indices[i+1]),
		m.Vertex(m.Indices[i+2]),
	}
}

// Validate checks the index invariants the renderer relies on.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d vertex floats is not a multiple of 3", m.Name, len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d indices is not a multiple of 3", m.Name, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d = %d: %w", m.Name, i, idx, ErrIndexRange)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (min, max mathutil.Vec3, ok bool) {
	if m.VertexCount() == 0 {
		return min, max, false
	}
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(uint32(i))
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max, true
}
