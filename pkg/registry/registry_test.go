package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidManifest() *ComponentManifest {
	return &ComponentManifest{
		Version:     "1.0.0",
		LastUpdated: "2025-06-01",
		Components: []ComponentEntry{
			{
				ID:          "tracker.azure.workitems",
				DisplayName: "Azure DevOps Work Items",
				Category:    "tracker",
				Version:     "1.0.0",
			},
			{
				ID:          "tracker.jira.issues",
				DisplayName: "Jira Issues",
				Category:    "tracker",
				Version:     "1.0.0",
			},
		},
	}
}

func TestSaveAndLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.json")

	manifest := createValidManifest()
	require.NoError(t, SaveManifest(manifest, path))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, manifest.Version, loaded.Version)
	require.Len(t, loaded.Components, 2)
	assert.Equal(t, "tracker.azure.workitems", loaded.Components[0].ID)
}

func TestLoadManifest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := LoadManifest(path)
	assert.Error(t, err)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ComponentManifest)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*ComponentManifest) {},
		},
		{
			name:    "no components",
			mutate:  func(m *ComponentManifest) { m.Components = nil },
			wantErr: "no components",
		},
		{
			name:    "missing id",
			mutate:  func(m *ComponentManifest) { m.Components[0].ID = "" },
			wantErr: "missing required field: ID",
		},
		{
			name:    "duplicate id",
			mutate:  func(m *ComponentManifest) { m.Components[1].ID = m.Components[0].ID },
			wantErr: "duplicate component ID",
		},
		{
			name:    "missing display name",
			mutate:  func(m *ComponentManifest) { m.Components[0].DisplayName = "" },
			wantErr: "missing required field: DisplayName",
		},
		{
			name:    "missing category",
			mutate:  func(m *ComponentManifest) { m.Components[1].Category = "" },
			wantErr: "missing required field: Category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest := createValidManifest()
			tt.mutate(manifest)

			err := manifest.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestManifest_Find(t *testing.T) {
	manifest := createValidManifest()

	entry, ok := manifest.Find("tracker.jira.issues")
	require.True(t, ok)
	assert.Equal(t, "Jira Issues", entry.DisplayName)

	_, ok = manifest.Find("tracker.unknown.op")
	assert.False(t, ok)
}
