// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func LoadManifest(path string) (*ComponentManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest ComponentManifest
	err = json.Unmarshal(data, &manifest)
	return &manifest, err
}

func SaveManifest(manifest *ComponentManifest, path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// Validate checks manifest entries for the fields the host requires.
func (m *ComponentManifest) Validate() error {
	if len(m.Components) == 0 {
		return fmt.Errorf("manifest contains no components")
	}

	ids := make(map[string]bool)
	for _, entry := range m.Components {
		if entry.ID == "" {
			return fmt.Errorf("component missing required field: ID")
		}
		if ids[entry.ID] {
			return fmt.Errorf("duplicate component ID: %s", entry.ID)
		}
		ids[entry.ID] = true

		if entry.DisplayName == "" {
			return fmt.Errorf("component %s missing required field: DisplayName", entry.ID)
		}
		if entry.Category == "" {
			return fmt.Errorf("component %s missing required field: Category", entry.ID)
		}
	}
	return nil
}

// Find returns the entry with the given ID.
func (m *ComponentManifest) Find(id string) (*ComponentEntry, bool) {
	for i := range m.Components {
		if m.Components[i].ID == id {
			return &m.Components[i], true
		}
	}
	return nil, false
}
