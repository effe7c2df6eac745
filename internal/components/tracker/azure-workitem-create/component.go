package azureworkitemcreate

import (
	"context"
	"fmt"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"
)

const ComponentName = "tracker.azure.workitem.create"

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
		DisplayName: "Azure DevOps Create Work Items",
		Description: "Creates Azure DevOps work items from a structured item list",
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
		{Name: "workItemType", DisplayName: "Work Item Type", Type: "string", Required: true,
			Options: []string{"User Story", "Bug", "Epic", "Task", "Feature", "Issue"}},
		{Name: "items", DisplayName: "Items", Type: "array", Required: true},
		{Name: "areaPath", DisplayName: "Area Path", Type: "string", Advanced: true},
		{Name: "iterationPath", DisplayName: "Iteration Path", Type: "string", Advanced: true},
	}
}

func outputFields() []component.Field {
	return []component.Field{
		{Name: "items", DisplayName: "Created Items", Type: "array"},
		{Name: "createdCount", DisplayName: "Created Count", Type: "number"},
		{Name: "failedCount", DisplayName: "Failed Count", Type: "number"},
	}
}

func (c *Component) Execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	return c.Run(ctx, inputs, c.execute)
}

func (c *Component) execute(ctx context.Context, inputs map[string]interface{}) *component.Result {
	if !c.config.Enabled {
		return component.Warning("Azure DevOps work item creation is disabled", nil)
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
		c.logger.Error("Work item creation failed", map[string]interface{}{
			"component":    ComponentName,
			"organization": input.Organization,
			"project":      input.Project,
			"error":        err.Error(),
		})
		return component.Failure(err)
	}

	data := map[string]interface{}{
		"createdCount": output.CreatedCount,
		"failedCount":  output.FailedCount,
		"items":        output.Items,
	}
	if !output.Success {
		return component.Warning(output.Message, data)
	}
	return component.Success(output.Message, data)
}

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
		Organization:  stringValue(inputs, "organization"),
		Project:       stringValue(inputs, "project"),
		PATToken:      stringValue(inputs, "patToken"),
		WorkItemType:  stringValue(inputs, "workItemType"),
		AreaPath:      stringValue(inputs, "areaPath"),
		IterationPath: stringValue(inputs, "iterationPath"),
	}

	rawItems, _ := inputs["items"].([]interface{})
	input.Items = extractItems(rawItems)

	return input
}

// extractItems keeps only entries that parse as item maps; malformed entries
// are dropped here and reported through the created/failed counts.
func extractItems(raw []interface{}) []WorkItemSpec {
	items := make([]WorkItemSpec, 0, len(raw))
	for _, entry := range raw {
		itemMap, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		spec := WorkItemSpec{
			Title:              stringValue(itemMap, "title"),
			Description:        stringValue(itemMap, "description"),
			AcceptanceCriteria: stringValue(itemMap, "acceptanceCriteria"),
			Priority:           itemMap["priority"],
		}

		if rawTags, ok := itemMap["tags"].([]interface{}); ok {
			for _, tag := range rawTags {
				if tagStr, ok := tag.(string); ok {
					spec.Tags = append(spec.Tags, tagStr)
				}
			}
		}

		items = append(items, spec)
	}
	return items
}

func stringValue(inputs map[string]interface{}, key string) string {
	if v, ok := inputs[key].(string); ok {
		return v
	}
	return ""
}
