package jiraissues

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"flow-components/internal/common/errors"
	commonhttp "flow-components/internal/common/http"
	"flow-components/internal/common/logger"
	"flow-components/internal/trackers/jira"
)

const defaultFieldList = "summary,status,assignee,priority,created,updated"

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
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}

	s.logger.Info("Executing JQL search", map[string]interface{}{
		"site":       input.SiteURL,
		"maxResults": maxResults,
	})

	client := jira.NewClient(jira.ClientOptions{
		SiteURL:  input.SiteURL,
		Username: input.Username,
		APIToken: input.APIToken,
		Timeout:  s.config.Timeout,
		Logger:   s.logger,
	})

	resp, err := client.SearchIssues(ctx, jira.SearchRequest{
		JQL:        input.JQLQuery,
		MaxResults: maxResults,
		Fields:     resolveFields(input),
	})
	if err != nil {
		return nil, classifyAPIError(err)
	}

	output := &Output{
		Success:     true,
		Message:     fmt.Sprintf("Found %d issues (returned %d)", resp.Total, len(resp.Issues)),
		Total:       resp.Total,
		IssuesCount: len(resp.Issues),
		Issues:      resp.Issues,
		StartAt:     resp.StartAt,
		MaxResults:  resp.MaxResults,
	}
	if resp.Issues == nil {
		output.Issues = []map[string]interface{}{}
	}
	if resp.Total == 0 {
		output.Message = "No issues found"
	}
	if resp.MaxResults > 0 {
		output.Pagination = buildPagination(resp.StartAt, resp.MaxResults, resp.Total)
	}

	s.logger.Info("JQL search completed", map[string]interface{}{
		"site":  input.SiteURL,
		"total": resp.Total,
		"count": len(resp.Issues),
	})

	return output, nil
}

// resolveFields returns the field restriction for the search request. An
// empty slice means Jira returns its default field set.
func resolveFields(input *Input) []string {
	if !input.IncludeFields {
		return nil
	}

	raw := input.Fields
	if strings.TrimSpace(raw) == "" {
		raw = defaultFieldList
	}

	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func buildPagination(startAt, maxResults, total int) *Pagination {
	totalPages := total / maxResults
	if total%maxResults != 0 {
		totalPages++
	}
	return &Pagination{
		Page:       startAt/maxResults + 1,
		TotalPages: totalPages,
		HasMore:    startAt+maxResults < total,
	}
}

func classifyAPIError(err error) error {
	var statusErr *commonhttp.StatusError
	if stderrors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return errors.NewAuthenticationError(statusErr.Error())
		}
	}
	return errors.NewIssueSearchFailedError(err)
}
