package azureworkitems

import (
	"context"
	"fmt"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"
)

const ComponentName = "tracker.azure.workitems"

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
		DisplayName: "Azure DevOps Work Items",
		Description: "Queries Azure DevOps work items with WIQL and returns flattened field maps",
		Icon:        "AzureDevOps",
		Category:    "tracker",
		Version:     "1.0.0",
	}
}

func inputFields() []component.Field {
	return []component.Field{
		{Name: "organization", DisplayName: "Organization", Type: "string", Required: true},
		{Name: "project", DisplayName: "Project", Type: "string", Required: true},
		{Name: "patToken", DisplayName: "Personal Access Token", Type: "string", Required: true},
		{Name: "wiqlQuery", DisplayName: "WIQL Query", Type: "string", Advanced: true},
		{Name: "queryType", DisplayName: "Query Type", Type: "string", Default: "flat", Options: []string{"flat", "oneHop", "tree"}, Advanced: true},
		{Name: "useKeywordQuery", DisplayName: "Use Keyword Query", Type: "boolean", Advanced: true},
		{Name: "keywordQuery", DisplayName: "Keyword Query", Type: "string", Advanced: true},
		{Name: "maxItems", DisplayName: "Max Items", Type: "number", Default: 50, Advanced: true},
	}
}

func outputFields() []component.Field {
	return []component.Field{
		{Name: "workItems", DisplayName: "Work Items", Type: "array"},
		{Name: "count", DisplayName: "Count", Type: "number"},
		{Name: "query", DisplayName: "Executed Query", Type: "string"},
	}
}

func (c *Component) Execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	return c.Run(ctx, inputs, c.execute)
}

func (c *Component) execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	if !c.config.Enabled {
		return component.Warning("Azure DevOps work item queries are disabled", nil)
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
		c.logger.Error("Work item query failed", map[string]interface{}{
			"component":    ComponentName,
			"organization": input.Organization,
			"project":      input.Project,
			"error":        err.Error(),
		})
		return component.Failure(err)
	}

	return component.Success(output.Message, map[string]interface{}{
		"count":     output.Count,
		"workItems": output.WorkItems,
		"query":     output.Query,
	})
}

// applyConfigDefaults fills credentials from configuration when the host did
// not provide them per call.
func (c *Component) applyConfigDefaults(inputs map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(inputs)+3)
	for k, v := range inputs {
		merged[k] = v
	}

	if _, ok := merged["organization"]; !ok && c.config.Organization != "" {
		merged["organization"] = c.config.Organization
	}
	if _, ok := merged["project"]; !ok && c.config.Project != "" {
		merged["project"] = c.config.Project
	}
	if _, ok := merged["patToken"]; !ok && c.config.PATToken != "" {
		merged["patToken"] = c.config.PATToken
	}
	return merged
}

func parseInput(inputs map[string]interface{}) *Input {
	input := &Input{
		Organization: stringValue(inputs, "organization"),
		Project:      stringValue(inputs, "project"),
		PATToken:     stringValue(inputs, "patToken"),
		WiqlQuery:    stringValue(inputs, "wiqlQuery"),
		QueryType:    stringValue(inputs, "queryType"),
		KeywordQuery: stringValue(inputs, "keywordQuery"),
	}

	if useKeyword, ok := inputs["useKeywordQuery"].(bool); ok {
		input.UseKeywordQuery = useKeyword
	}
	input.MaxItems = intValue(inputs, "maxItems")

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
