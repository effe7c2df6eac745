package azureworkitems

import (
	"context"
	stderrors "errors"
	"fmt"

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
	query, queryType := s.resolveQuery(input)

	s.logger.Info("Executing work item query", map[string]interface{}{
		"organization": input.Organization,
		"project":      input.Project,
		"queryType":    queryType,
		"keywordQuery": input.UseKeywordQuery,
	})

	client := azuredevops.NewClient(azuredevops.ClientOptions{
		BaseURL:      s.config.BaseURL,
		Organization: input.Organization,
		Project:      input.Project,
		PATToken:     input.PATToken,
		Timeout:      s.config.Timeout,
		Logger:       s.logger,
	})

	wiqlResp, err := client.QueryWorkItems(ctx, query, queryType)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	if len(wiqlResp.WorkItems) == 0 {
		return &Output{
			Success:   true,
			Message:   "No work items found",
			Count:     0,
			WorkItems: []map[string]interface{}{},
			Query:     query,
		}, nil
	}

	maxItems := input.MaxItems
	if maxItems <= 0 {
		maxItems = s.config.MaxItems
	}

	ids := make([]int, 0, len(wiqlResp.WorkItems))
	for _, ref := range wiqlResp.WorkItems {
		ids = append(ids, ref.ID)
		if len(ids) >= maxItems {
			break
		}
	}

	items, err := client.GetWorkItems(ctx, ids)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	flattened := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		flattened = append(flattened, azuredevops.FlattenWorkItem(item))
	}

	s.logger.Info("Work item query completed", map[string]interface{}{
		"organization": input.Organization,
		"project":      input.Project,
		"count":        len(flattened),
	})

	return &Output{
		Success:   true,
		Message:   fmt.Sprintf("Found %d work items", len(flattened)),
		Count:     len(flattened),
		WorkItems: flattened,
		Query:     query,
	}, nil
}

// resolveQuery picks the WIQL query to run: keyword generation first, then
// an explicit query, then the default Task query.
func (s *Service) resolveQuery(input *Input) (string, string) {
	queryType := input.QueryType
	if queryType == "" {
		queryType = "flat"
	}

	if input.UseKeywordQuery {
		maxItems := input.MaxItems
		if maxItems <= 0 {
			maxItems = s.config.MaxItems
		}
		return azuredevops.QueryFromKeywords(input.KeywordQuery, maxItems), queryType
	}
	if input.WiqlQuery != "" {
		return input.WiqlQuery, queryType
	}
	return azuredevops.DefaultQuery(), queryType
}

func classifyAPIError(err error) error {
	var statusErr *commonhttp.StatusError
	if stderrors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return errors.NewAuthenticationError(statusErr.Error())
		}
	}
	return errors.NewWorkItemFetchFailedError(err)
}
