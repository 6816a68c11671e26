package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseOBJ reads a Wavefront OBJ file. Only vertex positions and faces are
// used; polygons are fan-triangulated.
func ParseOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := ReadOBJ(f, name)
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses OBJ text from r.
func ReadOBJ(r io.Reader, name string) (*Mesh, error) {
	m := &Mesh{Name: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var face []uint32
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			for _, s := range fields[1:4] {
				c, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				m.Vertices = append(m.Vertices, float32(c))
			}
		case "f":
			face = face[:0]
			for _, tok := range fields[1:] {
				idx, err := faceIndex(tok, m.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, idx)
			}
			if len(face) < 3 {
				return nil, fmt.Errorf("line %d: %w", line, ErrEmptyFace)
			}
			m.Indices = append(m.Indices, Triangulate(face)...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// faceIndex converts one face token ("7", "7/2", "7//3", "-1/2/3") to a
// zero-based vertex index. Negative indices count back from the last vertex.
func faceIndex(tok string, nverts int) (uint32, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", tok, err)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += nverts
	default:
		return 0, fmt.Errorf("face index 0: %w", ErrIndexRange)
	}
	if n < 0 || n >= nverts {
		return 0, fmt.Errorf("face index %s: %w", tok, ErrIndexRange)
	}
	return uint32(n), nil
}

// Triangulate fans a convex polygon around its first vertex:
// (0,1,2), (0,2,3), ...
func Triangulate(poly []uint32) []uint32 {
	if len(poly) < 3 {
		return nil
	}
	tris := make([]uint32, 0, (len(poly)-2)*3)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, poly[0], poly[i], poly[i+1])
	}
	return tris
}
