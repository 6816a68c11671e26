package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestReadOBJQuadFan(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatalf("ReadOBJ() error = %v", err)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", got)
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if !reflect.DeepEqual(m.Indices, want) {
		t.Fatalf("Indices = %v, want %v", m.Indices, want)
	}
	// Both triangles share the first polygon vertex.
	for tri := 0; tri < m.TriangleCount(); tri++ {
		if m.Indices[tri*3] != 0 {
			t.Errorf("triangle %d starts at %d, want fan point 0", tri, m.Indices[tri*3])
		}
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestReadOBJFaceForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1//1 3//1 4//1
f -4 -3 -1
`
	m, err := ReadOBJ(strings.NewReader(src), "forms")
	if err != nil {
		t.Fatalf("ReadOBJ() error = %v", err)
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 0, 1, 3}
	if !reflect.DeepEqual(m.Indices, want) {
		t.Fatalf("Indices = %v, want %v", m.Indices, want)
	}
	if m.VertexCount() != 4 {
		t.Fatalf("VertexCount() = %d, want 4", m.VertexCount())
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"index past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrIndexRange},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrIndexRange},
		{"two vertices", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrEmptyFace},
		{"bad float", "v 0 x 0\n", nil},
		{"short vertex", "v 0 0\n", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tc.src), tc.name)
			if err == nil {
				t.Fatal("ReadOBJ() error = nil, want error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("ReadOBJ() error = %v, want %v", err, tc.want)
			}
			if !strings.Contains(err.Error(), "line ") {
				t.Errorf("error %q does not name the line", err)
			}
		})
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ParseOBJ(path)
	if err != nil {
		t.Fatalf("ParseOBJ() error = %v", err)
	}
	if m.Name != "quad" {
		t.Errorf("Name = %q, want quad", m.Name)
	}

	if _, err := ParseOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Fatal("ParseOBJ(missing) error = nil, want error")
	}
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		poly []uint32
		want []uint32
	}{
		{[]uint32{4, 5}, nil},
		{[]uint32{4, 5, 6}, []uint32{4, 5, 6}},
		{[]uint32{1, 2, 3, 4, 5}, []uint32{1, 2, 3, 1, 3, 4, 1, 4, 5}},
	}
	for _, tc := range tests {
		if got := Triangulate(tc.poly); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Triangulate(%v) = %v, want %v", tc.poly, got, tc.want)
		}
	}
}

func TestMeshValidateAndBounds(t *testing.T) {
	m := &Mesh{Name: "bad", Vertices: []float32{0, 0, 0, 1, 2, 3}, Indices: []uint32{0, 1, 2}}
	if err := m.Validate(); !errors.Is(err, ErrIndexRange) {
		t.Fatalf("Validate() error = %v, want ErrIndexRange", err)
	}
	m.Indices = []uint32{0, 1}
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() with 2 indices error = nil, want error")
	}

	lo, hi, ok := m.Bounds()
	if !ok || lo != [3]float64{0, 0, 0} || hi != [3]float64{1, 2, 3} {
		t.Fatalf("Bounds() = %v %v %v, want [0 0 0] [1 2 3] true", lo, hi, ok)
	}
	if _, _, ok := (&Mesh{}).Bounds(); ok {
		t.Fatal("Bounds() of empty mesh ok = true, want false")
	}
}
