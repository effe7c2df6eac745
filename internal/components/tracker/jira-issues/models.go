package jiraissues

import (
	"flow-components/internal/common/logger"
)

type Input struct {
	SiteURL       string `json:"siteUrl"`
	Username      string `json:"username"`
	APIToken      string `json:"apiToken"`
	JQLQuery      string `json:"jqlQuery"`
	MaxResults    int    `json:"maxResults"`
	IncludeFields bool   `json:"includeFields"`
	Fields        string `json:"fields"`
}

// Pagination describes the position of the returned page within the full
// result set reported by Jira.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

type Output struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	Total       int                      `json:"total"`
	IssuesCount int                      `json:"issuesCount"`
	Issues      []map[string]interface{} `json:"issues"`
	StartAt     int                      `json:"startAt"`
	MaxResults  int                      `json:"maxResults"`
	Pagination  *Pagination              `json:"pagination,omitempty"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
