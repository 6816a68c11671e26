package primitive

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
)

func TestTessellateSphere(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Tessellate("sphere", s, 16)
	if err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if m.TriangleCount() == 0 {
		t.Fatal("no triangles")
	}
	// Welded corners are shared by several triangles.
	if m.VertexCount() >= 3*m.TriangleCount() {
		t.Fatalf("%d vertices for %d triangles, want shared corners", m.VertexCount(), m.TriangleCount())
	}
	for i := 0; i < m.VertexCount(); i++ {
		if r := m.Vertex(uint32(i)).Len(); math.Abs(r-1) > 0.15 {
			t.Fatalf("vertex %d at radius %v, want about 1", i, r)
		}
	}
}

func TestTessellateRejectsTinyGrid(t *testing.T) {
	s, _ := sdf.Sphere3D(1)
	if _, err := Tessellate("sphere", s, 1); err == nil {
		t.Fatal("Tessellate(cells=1) succeeded, want error")
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName(%q) error = %v", name, err)
			}
			if m.Name != name {
				t.Fatalf("Name = %q, want %q", m.Name, name)
			}
			min, max, ok := m.Bounds()
			if !ok {
				t.Fatal("empty mesh")
			}
			for k := 0; k < 3; k++ {
				if min[k] < -1.6 || max[k] > 1.6 {
					t.Fatalf("bounds %v..%v exceed unit scale", min, max)
				}
			}
		})
	}

	if _, err := ByName("teapot"); err == nil {
		t.Fatal(`ByName("teapot") succeeded, want error`)
	}
}

func TestBoxExtent(t *testing.T) {
	m, err := Box(2, 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	min, max, _ := m.Bounds()
	want := [3]float64{1, 0.5, 0.25}
	for k := 0; k < 3; k++ {
		if math.Abs(max[k]-want[k]) > 0.1 || math.Abs(min[k]+want[k]) > 0.1 {
			t.Fatalf("axis %d spans %v..%v, want ±%v", k, min[k], max[k], want[k])
		}
	}
}
