package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Model      string `json:"model"`
	Frame      int    `json:"frame"`
	Image      string `json:"image"`
	Triangles  int    `json:"triangles"`
	Drawn      int    `json:"drawn"`
	Culled     int    `json:"culled"`
	Clipped    int    `json:"clipped"`
	Pixels     int    `json:"pixels"`
	Components int    `json:"components"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Model:      r.Model,
			Frame:      r.Frame,
			Image:      r.Image,
			Triangles:  r.Stats.Triangles,
			Drawn:      r.Stats.Drawn(),
			Culled:     r.Stats.Culled,
			Clipped:    r.Stats.Single + r.Stats.Quad,
			Pixels:     r.Pixels,
			Components: r.Components,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
