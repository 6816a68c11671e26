// Package library indexes a directory of OBJ models and caches the parsed
// meshes for concurrent renders.
package library

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase model stems to filesystem paths.
// When two files share a stem the shallower path wins.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir and its subdirectories for .obj files.
func BuildIndex(dir string) (*Index, error) {
	idx := &Index{entries: make(map[string]string)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".obj") {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || depth(path) < depth(existing) {
			idx.entries[stem] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}

// ResolvePath returns the filesystem path for a model name, or ("", false).
// The name may carry a directory prefix and an extension.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Names returns the indexed stems in sorted order.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.entries))
	for n := range idx.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of indexed models.
func (idx *Index) Len() int {
	return len(idx.entries)
}
