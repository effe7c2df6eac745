// cmd/tools/component-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"flow-components/pkg/registry"
)

// ComponentData holds data for templates
type ComponentData struct {
	Name                 string                 `json:"name"`
	ComponentID          string                 `json:"componentId"`
	PackageName          string                 `json:"packageName"`
	DirName              string                 `json:"dirName"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Icon                 string                 `json:"icon"`
	Version              string                 `json:"version"`
	Timeout              string                 `json:"timeout"`
	ImplementationStatus string                 `json:"implementationStatus"`
}

// parseSchema extracts properties from a JSON schema object
func parseSchema(schemaObj interface{}) map[string]interface{} {
	if schemaMap, ok := schemaObj.(map[string]interface{}); ok {
		if props, exists := schemaMap["properties"]; exists {
			if properties, ok := props.(map[string]interface{}); ok {
				return properties
			}
		}
	}
	return map[string]interface{}{}
}

// goTypeFromJSONType maps JSON schema types to Go types
func goTypeFromJSONType(jsonType interface{}) string {
	if jt, ok := jsonType.(string); ok {
		switch jt {
		case "string":
			return "string"
		case "number", "integer":
			return "float64"
		case "boolean":
			return "bool"
		case "object":
			return "map[string]interface{}"
		case "array":
			return "[]interface{}"
		default:
			return "interface{}"
		}
	}
	return "interface{}"
}

// generateStructFields generates Go struct field definitions from schema properties
func generateStructFields(properties map[string]interface{}) string {
	var fields []string
	for prop, details := range properties {
		propDetails, ok := details.(map[string]interface{})
		if !ok {
			continue
		}
		goType := goTypeFromJSONType(propDetails["type"])
		jsonTag := fmt.Sprintf("`json:\"%s\"`", prop)

		comment := ""
		if desc, exists := propDetails["description"]; exists {
			if d, ok := desc.(string); ok && d != "" {
				comment = fmt.Sprintf(" // %s", d)
			}
		}

		fieldDef := fmt.Sprintf("\t%s %s %s%s", upperFirst(prop), goType, jsonTag, comment)
		fields = append(fields, fieldDef)
	}
	return strings.Join(fields, "\n")
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const componentTemplate = `package {{ .PackageName }}

import (
	"context"
	"fmt"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"
)

const ComponentName = "{{ .ComponentID }}"

type Component struct {
	component.BaseComponent
	config  *Config
	logger  logger.Logger
	service *Service
}

type Options struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
}

func New(opts Options) (*Component, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", ComponentName, err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	comp := &Component{
		BaseComponent: component.NewBase(ComponentName, metadata(), inputFields(), outputFields(), GetInputSchema()),
		config:        cfg,
		logger:        loggerInstance,
	}

	comp.service = NewService(ServiceDependencies{
		Logger: loggerInstance,
	}, comp.config)

	return comp, nil
}

func metadata() component.Metadata {
	return component.Metadata{
		DisplayName: "{{ .Name }}",
		Description: "{{ .Description }}",
		Icon:        "{{ .Icon }}",
		Category:    "{{ .Category }}",
		Version:     "{{ .Version }}",
	}
}

func inputFields() []component.Field {
	// TODO: Declare the input fields exposed in the visual editor.
	return []component.Field{}
}

func outputFields() []component.Field {
	// TODO: Declare the output fields exposed in the visual editor.
	return []component.Field{}
}

func (c *Component) Execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	return c.Run(ctx, inputs, c.execute)
}

func (c *Component) execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	if !c.config.Enabled {
		return component.Warning("{{ .Name }} is disabled", nil)
	}

	if stdErr := c.ValidateInputs(inputs); stdErr != nil {
		return component.Failure(stdErr)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	output, err := c.service.Execute(ctx, parseInput(inputs))
	if err != nil {
		return component.Failure(err)
	}

	// TODO: Build the result data map from the service output.
	return component.Success(output.Message, map[string]interface{}{})
}

func parseInput(inputs map[string]interface{}) *Input {
	// TODO: Map raw inputs onto the typed Input struct.
	return &Input{}
}
`

const serviceTemplate = `package {{ .PackageName }}

import (
	"context"

	"flow-components/internal/common/logger"
)

// Service contains the business logic for the {{ .Name }} component.
type Service struct {
	config *Config
	logger logger.Logger
}

type ServiceDependencies struct {
	Logger logger.Logger
}

// NewService creates a new instance of the service.
func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
	}
}

// Execute performs the core business logic of the component.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	// TODO: Implement the business logic for '{{ .Name }}'.

	output := &Output{
		Success: true,
		Message: "not implemented",
	}

	return output, nil
}
`

const configTemplate = `package {{ .PackageName }}

import (
	"fmt"
	"time"

	"flow-components/internal/common/config"
)

// Config holds configuration specific to the {{ .Name }} component.
type Config struct {
	Enabled bool
	Timeout time.Duration
	// Add other component-specific config fields here
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// createConfigFromAppConfig merges application config into the component
// config. An explicit CustomConfig wins over everything.
func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	if compCfg, ok := appConfig.Components[ComponentName]; ok {
		cfg.Enabled = compCfg.Enabled
		if compCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(compCfg.Timeout)
		}
	}

	return cfg
}
`

const modelsTemplate = `package {{ .PackageName }}

// Input represents the parsed inputs for the '{{ .Name }}' component.
type Input struct {
{{- $inputProps := parseSchema .InputSchema }}
{{- if $inputProps }}
{{ generateStructFields $inputProps }}
{{- else }}
	// TODO: Add input fields for the component
{{- end }}
}

// Output represents the service result for the '{{ .Name }}' component.
type Output struct {
	Success bool   ` + "`json:\"success\"`" + `
	Message string ` + "`json:\"message\"`" + `
{{- $outputProps := parseSchema .OutputSchema }}
{{- if $outputProps }}
{{ generateStructFields $outputProps }}
{{- end }}
}
`

const validationTemplate = `package {{ .PackageName }}

import "flow-components/internal/common/validation"

// GetInputSchema returns the JSON schema used to validate inputs.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		// TODO: Declare required fields and property constraints.
		Properties: map[string]validation.Property{},
	}
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"
	"time"

	"flow-components/internal/common/logger"
	"flow-components/internal/component"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	comp, err := New(Options{
		CustomConfig: &Config{Enabled: true, Timeout: 10 * time.Second},
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	assert.Equal(t, ComponentName, comp.Name())
}

func TestComponent_Execute_Disabled(t *testing.T) {
	comp, err := New(Options{
		CustomConfig: &Config{Enabled: false, Timeout: 10 * time.Second},
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), map[string]interface{}{})
	assert.Equal(t, component.StatusWarning, result.Status)
}

// TODO: Add execution tests against an httptest server once the service
// logic is implemented.
`

const readmeTemplate = `# {{ .Name }}

## Description
{{ .Description }}

## Component ID
{{ .ComponentID }}

## Category
{{ .Category }}

## Implementation Status
{{ .ImplementationStatus }}

## Configuration
- **Timeout**: {{ .Timeout }}

## Inputs
{{- $inputProps := parseSchema .InputSchema }}
{{- if $inputProps }}
The component expects the following inputs:

{{ range $prop, $details := $inputProps }}
- **{{ $prop }}** ({{ goTypeFromJSONType (index $details "type") }}){{ if index $details "description" }}: {{ index $details "description" }}{{ end }}
{{ end }}
{{- else }}
No input schema defined in the manifest.
{{- end }}

## Outputs
{{- $outputProps := parseSchema .OutputSchema }}
{{- if $outputProps }}
The component produces the following outputs:

{{ range $prop, $details := $outputProps }}
- **{{ $prop }}** ({{ goTypeFromJSONType (index $details "type") }}){{ if index $details "description" }}: {{ index $details "description" }}{{ end }}
{{ end }}
{{- else }}
No output schema defined in the manifest.
{{- end }}

## Error Codes
{{- if .ErrorCodes }}
{{ range .ErrorCodes }}
- {{ . }}
{{ end }}
{{- else }}
No specific error codes defined.
{{- end }}

## Usage

### Register in the component host

` + "```go" + `
import {{ .PackageName }} "flow-components/internal/components/{{ .Category }}/{{ .DirName }}"

// In buildRegistry:
comp, err := {{ .PackageName }}.New({{ .PackageName }}.Options{AppConfig: cfg, Logger: log})
` + "```" + `

### Configuration in config.yaml

` + "```yaml" + `
components:
  {{ .ComponentID }}:
    enabled: true
    timeout: 30000
` + "```" + `

## Development

### Run Tests
` + "```bash" + `
go test ./internal/components/{{ .Category }}/{{ .DirName }}/...
` + "```" + `
`

func main() {
	componentID := flag.String("component", "", "Component ID from the manifest (e.g., tracker.jira.issues)")
	outputDir := flag.String("output", "./internal/components/", "Output directory for the generated component")
	manifestFile := flag.String("manifest", "configs/component-manifest.json", "Path to the component manifest JSON file")
	flag.Parse()

	if *componentID == "" {
		fmt.Println("Usage: component-generator --component <id> --output <dir> [--manifest <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run cmd/tools/component-generator/main.go --component tracker.jira.issues")
		os.Exit(1)
	}

	manifest, err := registry.LoadManifest(*manifestFile)
	if err != nil {
		fmt.Printf("Error loading manifest from %s: %v\n", *manifestFile, err)
		os.Exit(1)
	}

	entry, found := manifest.Find(*componentID)
	if !found {
		fmt.Printf("Component '%s' not found in manifest %s\n", *componentID, *manifestFile)
		os.Exit(1)
	}

	segments := strings.Split(entry.ID, ".")
	if len(segments) < 3 {
		fmt.Printf("Component ID '%s' must follow domain.subdomain.action\n", entry.ID)
		os.Exit(1)
	}

	data := ComponentData{
		Name:                 entry.DisplayName,
		ComponentID:          entry.ID,
		PackageName:          strings.Join(segments[1:], ""),
		DirName:              strings.Join(segments[1:], "-"),
		InputSchema:          entry.InputSchema,
		OutputSchema:         entry.OutputSchema,
		ErrorCodes:           entry.ErrorCodes,
		Description:          entry.Description,
		Category:             entry.Category,
		Icon:                 entry.Icon,
		Version:              entry.Version,
		Timeout:              entry.Timeout,
		ImplementationStatus: entry.ImplementationStatus,
	}

	componentDir := filepath.Join(*outputDir, data.Category, data.DirName)

	if err := os.MkdirAll(componentDir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	funcMap := template.FuncMap{
		"parseSchema":          parseSchema,
		"goTypeFromJSONType":   goTypeFromJSONType,
		"generateStructFields": generateStructFields,
		"upperFirst":           upperFirst,
		"index": func(m map[string]interface{}, key string) interface{} {
			if val, exists := m[key]; exists {
				return val
			}
			return nil
		},
	}

	templates := map[string]string{
		"component.go":      componentTemplate,
		"service.go":        serviceTemplate,
		"config.go":         configTemplate,
		"models.go":         modelsTemplate,
		"validation.go":     validationTemplate,
		"component_test.go": testTemplate,
		"README.md":         readmeTemplate,
	}

	for filename, tmplStr := range templates {
		tmpl, err := template.New(filename).Funcs(funcMap).Parse(tmplStr)
		if err != nil {
			fmt.Printf("Error parsing template %s: %v\n", filename, err)
			continue
		}

		filePath := filepath.Join(componentDir, filename)
		file, err := os.Create(filePath)
		if err != nil {
			fmt.Printf("Error creating file %s: %v\n", filePath, err)
			continue
		}

		if err := tmpl.Execute(file, data); err != nil {
			fmt.Printf("Error executing template for %s: %v\n", filename, err)
		}
		file.Close()

		fmt.Printf("✓ Generated %s\n", filePath)
	}

	fmt.Printf("\n✅ Component scaffold generated successfully at: %s\n", componentDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement business logic in service.go\n")
	fmt.Printf("  2. Declare the input schema in validation.go\n")
	fmt.Printf("  3. Write tests in component_test.go\n")
	fmt.Printf("  4. Register the component in cmd/component-host/main.go\n")
	fmt.Printf("  5. Add configuration to configs/config.yaml\n")
}
