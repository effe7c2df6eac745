package component

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"flow-components/internal/common/errors"
	"flow-components/internal/common/logger"
	"flow-components/internal/common/validation"
	"flow-components/pkg/registry"
)

// DescriptorComponent is a metadata-only component loaded from a manifest
// file. It renders in the host like any other component but carries no
// executable implementation.
type DescriptorComponent struct {
	BaseComponent
	source string
}

// Source returns the manifest file the descriptor was loaded from.
func (d *DescriptorComponent) Source() string {
	return d.source
}

func (d *DescriptorComponent) Execute(ctx context.Context, inputs map[string]interface{}) *Result {
	return d.Run(ctx, inputs, func(context.Context, map[string]interface{}) *Result {
		return Failure(&errors.StandardError{
			Code:      "COMPONENT_NOT_EXECUTABLE",
			Message:   "Component is a manifest descriptor without an executable implementation",
			Details:   "source: " + d.source,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		})
	})
}

// LoadManifestDir scans a directory for *.json component manifests and builds
// descriptor components from their entries. Loading is best-effort: an
// unreadable or invalid file is logged and skipped, never failing the scan.
func LoadManifestDir(dir string, log logger.Logger) []Component {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Component manifest directory not readable", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var components []Component
	for _, name := range names {
		path := filepath.Join(dir, name)

		manifest, err := registry.LoadManifest(path)
		if err != nil {
			log.Warn("Skipping invalid component manifest", map[string]interface{}{
				"path":  path,
				"error": errors.NewManifestInvalidError(path, err).Details,
			})
			continue
		}

		for _, entry := range manifest.Components {
			comp, err := NewDescriptor(entry, path)
			if err != nil {
				log.Warn("Skipping invalid manifest entry", map[string]interface{}{
					"path":  path,
					"id":    entry.ID,
					"error": err.Error(),
				})
				continue
			}
			components = append(components, comp)
		}
	}

	log.Info("Loaded component manifests", map[string]interface{}{
		"dir":        dir,
		"components": len(components),
	})
	return components
}

// NewDescriptor builds a descriptor component from a manifest entry.
func NewDescriptor(entry registry.ComponentEntry, source string) (*DescriptorComponent, error) {
	if err := validation.ValidateComponentNaming(entry.ID); err != nil {
		return nil, err
	}

	schema, err := schemaFromMap(entry.InputSchema)
	if err != nil {
		return nil, errors.NewManifestInvalidError(source, err)
	}

	meta := Metadata{
		DisplayName:   entry.DisplayName,
		Description:   entry.Description,
		Documentation: entry.Documentation,
		Icon:          entry.Icon,
		Category:      entry.Category,
		Version:       entry.Version,
		Custom:        true,
	}

	return &DescriptorComponent{
		BaseComponent: NewBase(entry.ID, meta, fieldsFromSchema(schema), nil, schema),
		source:        source,
	}, nil
}

func schemaFromMap(raw map[string]interface{}) (validation.JSONSchema, error) {
	var schema validation.JSONSchema
	if len(raw) == 0 {
		return validation.JSONSchema{Type: "object", AdditionalProperties: true}, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return schema, err
	}
	err = json.Unmarshal(data, &schema)
	return schema, err
}

func fieldsFromSchema(schema validation.JSONSchema) []Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop := schema.Properties[name]
		fields = append(fields, Field{
			Name:        name,
			DisplayName: name,
			Type:        prop.Type,
			Description: prop.Description,
			Required:    required[name],
			Default:     prop.Default,
			Options:     prop.Enum,
		})
	}
	return fields
}
