package azureworkitems

import "flow-components/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"organization", "project", "patToken"},
		Properties: map[string]validation.Property{
			"organization": {
				Type:        "string",
				Description: "Azure DevOps organization name",
				MinLength:   intPtr(1),
			},
			"project": {
				Type:        "string",
				Description: "Azure DevOps project name",
				MinLength:   intPtr(1),
			},
			"patToken": {
				Type:        "string",
				Description: "Personal access token with work item read scope",
				MinLength:   intPtr(1),
			},
			"wiqlQuery": {
				Type:        "string",
				Description: "WIQL query to run; defaults to an open Task query",
			},
			"queryType": {
				Type:        "string",
				Description: "WIQL query type",
				Enum:        []string{"flat", "oneHop", "tree"},
				Default:     "flat",
			},
			"useKeywordQuery": {
				Type:        "boolean",
				Description: "Generate the WIQL query from keywordQuery text",
			},
			"keywordQuery": {
				Type:        "string",
				Description: "Free text mapped to work item types and states by keyword",
			},
			"maxItems": {
				Type:        "number",
				Description: "Maximum number of work items to return",
				Minimum:     floatPtr(1),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"success": {
				Type:        "boolean",
				Description: "Whether the query completed",
			},
			"message": {
				Type:        "string",
				Description: "Result message",
			},
			"count": {
				Type:        "number",
				Description: "Number of work items returned",
			},
			"workItems": {
				Type:        "array",
				Description: "Flattened work item field maps",
			},
			"query": {
				Type:        "string",
				Description: "WIQL query that was executed",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
