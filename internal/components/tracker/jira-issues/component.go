package jiraissues

import (
	"context"
	"fmt"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"
)

const ComponentName = "tracker.jira.issues"

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
		DisplayName: "Jira Issues",
		Description: "Searches Jira issues with JQL and returns raw issue objects",
		Icon:        "Jira",
		Category:    "tracker",
		Version:     "1.0.0",
	}
}

func inputFields() []component.Field {
	return []component.Field{
		{Name: "siteUrl", DisplayName: "Site URL", Type: "string", Required: true},
		{Name: "username", DisplayName: "Username", Type: "string", Required: true},
		{Name: "apiToken", DisplayName: "API Token", Type: "string", Required: true},
		{Name: "jqlQuery", DisplayName: "JQL Query", Type: "string", Required: true},
		{Name: "maxResults", DisplayName: "Max Results", Type: "number", Default: 50, Advanced: true},
		{Name: "includeFields", DisplayName: "Restrict Fields", Type: "boolean", Default: true, Advanced: true},
		{Name: "fields", DisplayName: "Fields", Type: "string", Advanced: true},
	}
}

func outputFields() []component.Field {
	return []component.Field{
		{Name: "issues", DisplayName: "Issues", Type: "array"},
		{Name: "total", DisplayName: "Total", Type: "number"},
		{Name: "pagination", DisplayName: "Pagination", Type: "object"},
	}
}

func (c *Component) Execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	return c.Run(ctx, inputs, c.execute)
}

func (c *Component) execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	if !c.config.Enabled {
		return component.Warning("Jira issue searches are disabled", nil)
	}

	merged := c.applyConfigDefaults(inputs)

	if stdErr := c.ValidateInputs(merged); stdErr != nil {
		return component.Failure(stdErr)
	}

	input := parseInput(merged)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	output, err := c.service.Execute(ctx, input)
	if err != nil {
		c.logger.Error("JQL search failed", map[string]interface{}{
			"component": ComponentName,
			"site":      input.SiteURL,
			"error":     err.Error(),
		})
		return component.Failure(err)
	}

	data := map[string]interface{}{
		"total":       output.Total,
		"issuesCount": output.IssuesCount,
		"issues":      output.Issues,
		"startAt":     output.StartAt,
		"maxResults":  output.MaxResults,
	}
	if output.Pagination != nil {
		data["pagination"] = output.Pagination
	}
	return component.Success(output.Message, data)
}

func (c *Component) applyConfigDefaults(inputs map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(inputs)+3)
	for k, v := range inputs {
		merged[k] = v
	}

	if _, ok := merged["siteUrl"]; !ok && c.config.SiteURL != "" {
		merged["siteUrl"] = c.config.SiteURL
	}
	if _, ok := merged["username"]; !ok && c.config.Username != "" {
		merged["username"] = c.config.Username
	}
	if _, ok := merged["apiToken"]; !ok && c.config.APIToken != "" {
		merged["apiToken"] = c.config.APIToken
	}
	return merged
}

func parseInput(inputs map[string]interface{}) *Input {
	input := &Input{
		SiteURL:  stringValue(inputs, "siteUrl"),
		Username: stringValue(inputs, "username"),
		APIToken: stringValue(inputs, "apiToken"),
		JQLQuery: stringValue(inputs, "jqlQuery"),
		Fields:   stringValue(inputs, "fields"),
	}

	// Field restriction is on unless the host turns it off.
	input.IncludeFields = true
	if includeFields, ok := inputs["includeFields"].(bool); ok {
		input.IncludeFields = includeFields
	}
	input.MaxResults = intValue(inputs, "maxResults")

	return input
}

func stringValue(inputs map[string]interface{}, key string) string {
	if v, ok := inputs[key].(string); ok {
		return v
	}
	return ""
}

func intValue(inputs map[string]interface{}, key string) int {
	switch v := inputs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
