package azureworkitemcreate

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"flow-components/internal/common/errors"
	commonhttp "flow-components/internal/common/http"
	"flow-components/internal/common/logger"
	"flow-components/internal/trackers/azuredevops"
)

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	workItemType, ok := normalizeWorkItemType(input.WorkItemType)
	if !ok {
		return nil, errors.NewInvalidParameterError("workItemType",
			fmt.Sprintf("unsupported work item type: %s", input.WorkItemType))
	}

	if len(input.Items) == 0 {
		return &Output{
			Success: false,
			Message: "No work items extracted from input",
			Items:   []CreatedItem{},
		}, nil
	}

	client := azuredevops.NewClient(azuredevops.ClientOptions{
		BaseURL:      s.config.BaseURL,
		Organization: input.Organization,
		Project:      input.Project,
		PATToken:     input.PATToken,
		Timeout:      s.config.Timeout,
		Logger:       s.logger,
	})

	created := make([]CreatedItem, 0, len(input.Items))
	failed := 0

	for _, spec := range input.Items {
		if strings.TrimSpace(spec.Title) == "" {
			s.logger.Warn("Skipping work item without a title", map[string]interface{}{
				"project": input.Project,
			})
			failed++
			continue
		}

		ops := buildPatchOperations(spec, input.AreaPath, input.IterationPath)

		item, err := client.CreateWorkItem(ctx, workItemType, ops)
		if err != nil {
			if authErr := authError(err); authErr != nil {
				return nil, authErr
			}
			s.logger.Warn("Work item creation failed, continuing with remaining items", map[string]interface{}{
				"title": spec.Title,
				"error": err.Error(),
			})
			failed++
			continue
		}

		created = append(created, CreatedItem{
			ID:    item.ID,
			Title: spec.Title,
			URL:   item.URL,
		})
	}

	if len(created) == 0 {
		return nil, errors.NewWorkItemCreateFailedError(
			fmt.Sprintf("all %d work items failed to create", len(input.Items)))
	}

	s.logger.Info("Work item creation completed", map[string]interface{}{
		"organization": input.Organization,
		"project":      input.Project,
		"created":      len(created),
		"failed":       failed,
	})

	return &Output{
		Success:      true,
		Message:      fmt.Sprintf("Created %d of %d work items", len(created), len(input.Items)),
		CreatedCount: len(created),
		FailedCount:  failed,
		Items:        created,
	}, nil
}

func normalizeWorkItemType(raw string) (string, bool) {
	canonical, ok := validWorkItemTypes[strings.ToLower(strings.TrimSpace(raw))]
	return canonical, ok
}

// buildPatchOperations renders one work item spec as a JSON-Patch document.
func buildPatchOperations(spec WorkItemSpec, areaPath, iterationPath string) []azuredevops.PatchOperation {
	ops := []azuredevops.PatchOperation{
		{Op: "add", Path: "/fields/System.Title", Value: spec.Title},
		{Op: "add", Path: "/fields/System.Description", Value: spec.Description},
	}

	if areaPath != "" {
		ops = append(ops, azuredevops.PatchOperation{
			Op: "add", Path: "/fields/System.AreaPath", Value: areaPath,
		})
	}
	if iterationPath != "" {
		ops = append(ops, azuredevops.PatchOperation{
			Op: "add", Path: "/fields/System.IterationPath", Value: iterationPath,
		})
	}
	if spec.AcceptanceCriteria != "" {
		ops = append(ops, azuredevops.PatchOperation{
			Op: "add", Path: "/fields/Microsoft.VSTS.Common.AcceptanceCriteria", Value: spec.AcceptanceCriteria,
		})
	}
	if spec.Priority != nil {
		ops = append(ops, azuredevops.PatchOperation{
			Op: "add", Path: "/fields/Microsoft.VSTS.Common.Priority", Value: ParsePriority(spec.Priority),
		})
	}
	if len(spec.Tags) > 0 {
		ops = append(ops, azuredevops.PatchOperation{
			Op: "add", Path: "/fields/System.Tags", Value: strings.Join(spec.Tags, "; "),
		})
	}

	return ops
}

// ParsePriority maps numeric or keyword priorities to the 1-4 scale used by
// Azure DevOps. Anything unrecognized maps to the default priority 3.
func ParsePriority(raw interface{}) int {
	switch v := raw.(type) {
	case int:
		if v >= 1 && v <= 4 {
			return v
		}
	case int64:
		if v >= 1 && v <= 4 {
			return int(v)
		}
	case float64:
		n := int(v)
		if float64(n) == v && n >= 1 && n <= 4 {
			return n
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "critical", "highest":
			return 1
		case "2", "high":
			return 2
		case "3", "medium", "normal":
			return 3
		case "4", "low", "lowest":
			return 4
		}
	}
	return 3
}

func authError(err error) error {
	var statusErr *commonhttp.StatusError
	if stderrors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return errors.NewAuthenticationError(statusErr.Error())
		}
	}
	return nil
}
