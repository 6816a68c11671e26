// Package primitive builds procedural meshes from signed distance functions
// tessellated with marching cubes.
package primitive

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"wireframe-renderer/internal/mesh"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 48

var builders = map[string]func() (*mesh.Mesh, error){
	"sphere":   func() (*mesh.Mesh, error) { return Sphere(1) },
	"box":      func() (*mesh.Mesh, error) { return Box(1.5, 1.5, 1.5) },
	"cylinder": func() (*mesh.Mesh, error) { return Cylinder(2, 0.75) },
	"capsule":  func() (*mesh.Mesh, error) { return Capsule(2, 0.6) },
}

// Names lists the primitives ByName accepts.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName builds a unit-scale primitive.
func ByName(name string) (*mesh.Mesh, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("primitive: unknown shape %q (have %v)", name, Names())
	}
	return b()
}

// Sphere returns a sphere of radius r centered at the origin.
func Sphere(r float64) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		return nil, fmt.Errorf("primitive: sphere: %w", err)
	}
	return Tessellate("sphere", s, DefaultCells)
}

// Box returns an axis-aligned box with the given edge lengths centered at
// the origin.
func Box(x, y, z float64) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("primitive: box: %w", err)
	}
	return Tessellate("box", s, DefaultCells)
}

// Cylinder returns a Z-aligned cylinder centered at the origin.
func Cylinder(height, radius float64) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("primitive: cylinder: %w", err)
	}
	return Tessellate("cylinder", s, DefaultCells)
}

// Capsule returns a Z-aligned cylinder with hemispherical caps.
func Capsule(height, radius float64) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, radius)
	if err != nil {
		return nil, fmt.Errorf("primitive: capsule: %w", err)
	}
	return Tessellate("capsule", s, DefaultCells)
}

// Tessellate converts s to an indexed mesh. Marching cubes emits every
// triangle with its own corners; coincident corners are welded so the
// wireframe shares edges between neighbouring faces.
func Tessellate(name string, s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if cells < 2 {
		return nil, fmt.Errorf("primitive: %s: need at least 2 cells, got %d", name, cells)
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(tris) == 0 {
		return nil, fmt.Errorf("primitive: %s: tessellation produced no triangles", name)
	}

	m := &mesh.Mesh{
		Name:     name,
		Vertices: make([]float32, 0, len(tris)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	weld := make(map[[3]float32]uint32, len(tris))

	for _, tri := range tris {
		var idx [3]uint32
		for j := 0; j < 3; j++ {
			v := tri[j]
			key := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
			i, ok := weld[key]
			if !ok {
				i = uint32(len(m.Vertices) / 3)
				weld[key] = i
				m.Vertices = append(m.Vertices, key[0], key[1], key[2])
			}
			idx[j] = i
		}
		// Welding can collapse slivers into zero-area triangles.
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[0] == idx[2] {
			continue
		}
		m.Indices = append(m.Indices, idx[0], idx[1], idx[2])
	}
	return m, nil
}
