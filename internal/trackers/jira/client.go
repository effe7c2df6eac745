// Package jira implements the REST client for the Jira Cloud search API.
package jira

import (
	"context"
	"fmt"
	"strings"
	"time"

	commonhttp "flow-components/internal/common/http"
	"flow-components/internal/common/logger"
)

const defaultMaxResults = 50

type Client struct {
	siteURL    string
	authHeader string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

type ClientOptions struct {
	SiteURL  string
	Username string
	APIToken string
	Timeout  time.Duration
	Logger   logger.Logger
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		siteURL:    strings.TrimRight(opts.SiteURL, "/"),
		authHeader: commonhttp.BasicAuth(opts.Username, opts.APIToken),
		httpClient: commonhttp.NewClient(timeout),
		logger:     log,
	}
}

type SearchRequest struct {
	JQL        string
	MaxResults int
	Fields     []string
}

type SearchResponse struct {
	StartAt    int                      `json:"startAt"`
	MaxResults int                      `json:"maxResults"`
	Total      int                      `json:"total"`
	Issues     []map[string]interface{} `json:"issues"`
}

// SearchIssues runs a JQL search against the Jira REST API v3.
func (c *Client) SearchIssues(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/search", c.siteURL)

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	body := map[string]interface{}{
		"jql":        req.JQL,
		"maxResults": maxResults,
	}
	if len(req.Fields) > 0 {
		body["fields"] = req.Fields
	}

	var resp SearchResponse
	headers := map[string]string{
		"Authorization": c.authHeader,
	}
	if err := c.httpClient.DoJSON(ctx, "POST", endpoint, headers, body, &resp); err != nil {
		return nil, fmt.Errorf("jql search failed: %w", err)
	}

	c.logger.Debug("JQL search executed", map[string]interface{}{
		"site":    c.siteURL,
		"total":   resp.Total,
		"fetched": len(resp.Issues),
	})
	return &resp, nil
}
