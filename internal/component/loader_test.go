package component

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"flow-components/internal/common/logger"
	"flow-components/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `{
  "version": "1.0.0",
  "lastUpdated": "2025-06-01",
  "components": [
    {
      "id": "notify.slack.message",
      "displayName": "Slack Message",
      "description": "Posts a message to a Slack channel",
      "category": "notify",
      "version": "1.0.0",
      "inputSchema": {
        "type": "object",
        "required": ["channel", "text"],
        "properties": {
          "channel": {"type": "string", "description": "Target channel"},
          "text": {"type": "string"},
          "format": {"type": "string", "enum": ["plain", "markdown"], "default": "plain"}
        }
      }
    },
    {
      "id": "bad name",
      "displayName": "Broken",
      "category": "notify"
    },
    {
      "id": "notify.email.send",
      "displayName": "Email Send",
      "category": "notify",
      "version": "1.0.0"
    }
  ]
}`

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifestDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "notify.json", sampleManifest)
	writeManifest(t, dir, "broken.json", "{not json")
	writeManifest(t, dir, "ignored.txt", "not a manifest")

	components := LoadManifestDir(dir, logger.NewTestLogger(t))

	// The invalid entry and the broken file are skipped, not fatal.
	require.Len(t, components, 2)

	names := []string{components[0].Name(), components[1].Name()}
	assert.Contains(t, names, "notify.slack.message")
	assert.Contains(t, names, "notify.email.send")
}

func TestLoadManifestDir_MissingDir(t *testing.T) {
	components := LoadManifestDir(filepath.Join(t.TempDir(), "missing"), logger.NewTestLogger(t))
	assert.Empty(t, components)
}

func TestNewDescriptor(t *testing.T) {
	entry := registry.ComponentEntry{
		ID:          "notify.slack.message",
		DisplayName: "Slack Message",
		Description: "Posts a message to a Slack channel",
		Category:    "notify",
		Version:     "1.2.0",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"channel"},
			"properties": map[string]interface{}{
				"channel": map[string]interface{}{"type": "string"},
				"format": map[string]interface{}{
					"type":    "string",
					"enum":    []interface{}{"plain", "markdown"},
					"default": "plain",
				},
			},
		},
	}

	comp, err := NewDescriptor(entry, "configs/notify.json")
	require.NoError(t, err)

	assert.Equal(t, "notify.slack.message", comp.Name())
	assert.Equal(t, "configs/notify.json", comp.Source())
	assert.True(t, comp.Metadata().Custom)
	assert.Equal(t, "Slack Message", comp.Metadata().DisplayName)

	fields := comp.Inputs()
	require.Len(t, fields, 2)
	// Fields are sorted by name.
	assert.Equal(t, "channel", fields[0].Name)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "format", fields[1].Name)
	assert.False(t, fields[1].Required)
	assert.Equal(t, []string{"plain", "markdown"}, fields[1].Options)
	assert.Equal(t, "plain", fields[1].Default)
}

func TestNewDescriptor_InvalidName(t *testing.T) {
	_, err := NewDescriptor(registry.ComponentEntry{ID: "slack"}, "configs/notify.json")
	require.Error(t, err)
}

func TestNewDescriptor_EmptySchema(t *testing.T) {
	comp, err := NewDescriptor(registry.ComponentEntry{ID: "notify.email.send"}, "configs/notify.json")
	require.NoError(t, err)

	assert.Empty(t, comp.Inputs())
	assert.Equal(t, "object", comp.InputSchema().Type)
}

func TestDescriptorComponent_ExecuteNotExecutable(t *testing.T) {
	comp, err := NewDescriptor(registry.ComponentEntry{ID: "notify.email.send"}, "configs/notify.json")
	require.NoError(t, err)

	result := comp.Execute(context.Background(), map[string]interface{}{})

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "COMPONENT_NOT_EXECUTABLE", result.ErrorCode)
	assert.Contains(t, result.Data["details"], "configs/notify.json")
}
