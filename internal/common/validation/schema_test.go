package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]Property{
			"name":  {Type: "string"},
			"limit": {Type: "number", Minimum: floatPtr(1)},
			"mode":  {Type: "string", Enum: []string{"flat", "tree"}},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]interface{}
		wantValid bool
		wantField string
		wantCode  string
	}{
		{
			name:      "valid",
			input:     map[string]interface{}{"name": "a", "limit": 5, "mode": "flat"},
			wantValid: true,
		},
		{
			name:      "missing required",
			input:     map[string]interface{}{"limit": 5},
			wantField: "name",
			wantCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:      "wrong type",
			input:     map[string]interface{}{"name": "a", "limit": "five"},
			wantField: "limit",
			wantCode:  "INVALID_TYPE",
		},
		{
			name:      "enum violation",
			input:     map[string]interface{}{"name": "a", "mode": "deep"},
			wantField: "mode",
			wantCode:  "INVALID_ENUM_VALUE",
		},
		{
			name:      "range violation",
			input:     map[string]interface{}{"name": "a", "limit": 0},
			wantField: "limit",
			wantCode:  "RANGE_VIOLATION",
		},
		{
			name:      "extra fields tolerated",
			input:     map[string]interface{}{"name": "a", "unexpected": true},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, testSchema())

			if tt.wantValid {
				assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())
				return
			}

			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			assert.Equal(t, tt.wantCode, result.Errors[0].Code)
			assert.True(t, result.HasErrors(tt.wantField))
			assert.NotEmpty(t, result.GetErrorsForField(tt.wantField))
		})
	}
}

func TestValidateComponentNaming(t *testing.T) {
	assert.NoError(t, ValidateComponentNaming("tracker.jira.issues"))
	assert.NoError(t, ValidateComponentNaming("tracker.azure.workitem.create"))

	assert.Error(t, ValidateComponentNaming("tracker.jira"))
	assert.Error(t, ValidateComponentNaming("Tracker.Jira.Issues"))
	assert.Error(t, ValidateComponentNaming("tracker jira issues"))
}

func TestGetSchemaFromJSON(t *testing.T) {
	schema, err := GetSchemaFromJSON(`{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string", "minLength": 1}}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"name"}, schema.Required)
	require.Contains(t, schema.Properties, "name")
	require.NotNil(t, schema.Properties["name"].MinLength)
	assert.Equal(t, 1, *schema.Properties["name"].MinLength)

	_, err = GetSchemaFromJSON("{broken")
	assert.Error(t, err)
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("https://dev.azure.com"))
	assert.True(t, ValidateURL("http://example.atlassian.net/path"))

	assert.False(t, ValidateURL("dev.azure.com"))
	assert.False(t, ValidateURL("ftp://example.com"))
}
