// Package cli holds setup shared by the command-line tools.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"wireframe-renderer/internal/config"
	"wireframe-renderer/internal/library"
	"wireframe-renderer/internal/mesh"
	"wireframe-renderer/internal/primitive"
	"wireframe-renderer/internal/raster"
)

// SetupLogger installs a text logger on stderr as the process default and
// as the renderer logger. verbose enables Debug records.
func SetupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	raster.SetLogger(l)
	return l
}

// Models resolves the model selection of cfg: a single OBJ file, every OBJ
// under a directory, or a procedural primitive, in that order of priority.
// It returns the resolver and the model names to render.
func Models(cfg config.Config) (library.Resolver, []string, error) {
	switch {
	case cfg.Model != "":
		m, err := mesh.ParseOBJ(cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		if err := m.Validate(); err != nil {
			return nil, nil, err
		}
		return library.Static{m.Name: m}, []string{m.Name}, nil

	case cfg.ModelsDir != "":
		idx, err := library.BuildIndex(cfg.ModelsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("models dir %s: %w", cfg.ModelsDir, err)
		}
		if idx.Len() == 0 {
			return nil, nil, fmt.Errorf("models dir %s: no .obj files", cfg.ModelsDir)
		}
		return library.NewCache(idx), idx.Names(), nil

	case cfg.Primitive != "":
		names := strings.Split(cfg.Primitive, ",")
		static := make(library.Static, len(names))
		for i, n := range names {
			n = strings.TrimSpace(n)
			m, err := primitive.ByName(n)
			if err != nil {
				return nil, nil, err
			}
			static[n] = m
			names[i] = n
		}
		return static, names, nil
	}
	return nil, nil, fmt.Errorf("no model: set -model, -models or -primitive (one of %v)", primitive.Names())
}
