package jiraissues

import "flow-components/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"siteUrl", "username", "apiToken", "jqlQuery"},
		Properties: map[string]validation.Property{
			"siteUrl": {
				Type:        "string",
				Description: "Jira site URL, e.g. https://example.atlassian.net",
				MinLength:   intPtr(1),
			},
			"username": {
				Type:        "string",
				Description: "Jira account email used for basic authentication",
				MinLength:   intPtr(1),
			},
			"apiToken": {
				Type:        "string",
				Description: "Jira API token",
				MinLength:   intPtr(1),
			},
			"jqlQuery": {
				Type:        "string",
				Description: "JQL query to run",
				MinLength:   intPtr(1),
			},
			"maxResults": {
				Type:        "number",
				Description: "Maximum number of issues to return",
				Minimum:     floatPtr(1),
			},
			"includeFields": {
				Type:        "boolean",
				Description: "Restrict the response to a fixed field list",
				Default:     true,
			},
			"fields": {
				Type:        "string",
				Description: "Comma-separated field names, used when includeFields is set",
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
				Description: "Whether the search completed",
			},
			"message": {
				Type:        "string",
				Description: "Result message",
			},
			"total": {
				Type:        "number",
				Description: "Total number of issues matching the query",
			},
			"issuesCount": {
				Type:        "number",
				Description: "Number of issues in this page",
			},
			"issues": {
				Type:        "array",
				Description: "Raw issue objects as returned by Jira",
			},
			"pagination": {
				Type:        "object",
				Description: "Page position within the full result set",
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
