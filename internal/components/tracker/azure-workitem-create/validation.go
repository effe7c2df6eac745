package azureworkitemcreate

import "flow-components/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"organization", "project", "patToken", "workItemType", "items"},
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
				Description: "Personal access token with work item write scope",
				MinLength:   intPtr(1),
			},
			"workItemType": {
				Type:        "string",
				Description: "Type of the work items to create",
				Enum:        []string{"User Story", "Bug", "Epic", "Task", "Feature", "Issue"},
			},
			"areaPath": {
				Type:        "string",
				Description: "Area path applied to every created item",
			},
			"iterationPath": {
				Type:        "string",
				Description: "Iteration path applied to every created item",
			},
			"items": {
				Type:        "array",
				Description: "Work items to create",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"title"},
					Properties: map[string]validation.Property{
						"title":              {Type: "string"},
						"description":        {Type: "string"},
						"acceptanceCriteria": {Type: "string"},
						"tags":               {Type: "array"},
					},
				},
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
				Description: "Whether at least one work item was created",
			},
			"message": {
				Type:        "string",
				Description: "Result message",
			},
			"createdCount": {
				Type:        "number",
				Description: "Number of work items created",
			},
			"failedCount": {
				Type:        "number",
				Description: "Number of work items that failed to create",
			},
			"items": {
				Type:        "array",
				Description: "Created work item references",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
