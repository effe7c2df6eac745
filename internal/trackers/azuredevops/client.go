// Package azuredevops implements the REST client for the Azure DevOps
// work item tracking API.
package azuredevops

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	commonhttp "flow-components/internal/common/http"
	"flow-components/internal/common/logger"
)

const (
	queryAPIVersion  = "5.1"
	createAPIVersion = "6.0"

	// The work items endpoint rejects requests with more IDs than this.
	maxIDsPerRequest = 200
)

type Client struct {
	baseURL      string
	organization string
	project      string
	authHeader   string
	httpClient   *commonhttp.Client
	logger       logger.Logger
}

type ClientOptions struct {
	BaseURL      string
	Organization string
	Project      string
	PATToken     string
	Timeout      time.Duration
	Logger       logger.Logger
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://dev.azure.com"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		organization: opts.Organization,
		project:      opts.Project,
		authHeader:   commonhttp.BasicAuth("", opts.PATToken),
		httpClient:   commonhttp.NewClient(timeout),
		logger:       log,
	}
}

type WorkItemRef struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type WiqlResponse struct {
	QueryType string        `json:"queryType"`
	WorkItems []WorkItemRef `json:"workItems"`
}

// QueryWorkItems runs a WIQL query and returns the matching work item
// references. Details are fetched separately with GetWorkItems.
func (c *Client) QueryWorkItems(ctx context.Context, query, queryType string) (*WiqlResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/_apis/wit/wiql?api-version=%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), queryAPIVersion)

	body := map[string]string{
		"query":     query,
		"queryType": queryType,
	}

	var resp WiqlResponse
	if err := c.httpClient.DoJSON(ctx, "POST", endpoint, c.headers(), body, &resp); err != nil {
		return nil, fmt.Errorf("wiql query failed: %w", err)
	}

	c.logger.Debug("WIQL query executed", map[string]interface{}{
		"organization": c.organization,
		"project":      c.project,
		"matches":      len(resp.WorkItems),
	})
	return &resp, nil
}

type WorkItem struct {
	ID     int                    `json:"id"`
	URL    string                 `json:"url"`
	Fields map[string]interface{} `json:"fields"`
}

type workItemsResponse struct {
	Count int        `json:"count"`
	Value []WorkItem `json:"value"`
}

// GetWorkItems fetches full details for the given work item IDs, chunking
// the ID list to stay under the API's per-request limit.
func (c *Client) GetWorkItems(ctx context.Context, ids []int) ([]WorkItem, error) {
	var items []WorkItem

	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := start + maxIDsPerRequest
		if end > len(ids) {
			end = len(ids)
		}

		idStrs := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			idStrs = append(idStrs, strconv.Itoa(id))
		}

		endpoint := fmt.Sprintf("%s/%s/_apis/wit/workitems?ids=%s&api-version=%s&$expand=all",
			c.baseURL, url.PathEscape(c.organization), strings.Join(idStrs, ","), queryAPIVersion)

		var resp workItemsResponse
		if err := c.httpClient.DoJSON(ctx, "GET", endpoint, c.headers(), nil, &resp); err != nil {
			return nil, fmt.Errorf("work item fetch failed: %w", err)
		}
		items = append(items, resp.Value...)
	}

	return items, nil
}

// PatchOperation is a single JSON-Patch add/replace operation for work item
// creation and updates.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// CreateWorkItem creates a work item of the given type from a JSON-Patch
// document and returns the raw created item.
func (c *Client) CreateWorkItem(ctx context.Context, workItemType string, ops []PatchOperation) (*WorkItem, error) {
	escapedType := strings.ReplaceAll(workItemType, " ", "%20")
	endpoint := fmt.Sprintf("%s/%s/%s/_apis/wit/workitems/$%s?api-version=%s",
		c.baseURL, url.PathEscape(c.organization), url.PathEscape(c.project), escapedType, createAPIVersion)

	headers := c.headers()
	headers["Content-Type"] = "application/json-patch+json"

	var item WorkItem
	if err := c.httpClient.DoJSON(ctx, "POST", endpoint, headers, ops, &item); err != nil {
		return nil, fmt.Errorf("work item creation failed: %w", err)
	}

	c.logger.Info("Work item created", map[string]interface{}{
		"organization": c.organization,
		"project":      c.project,
		"type":         workItemType,
		"id":           item.ID,
	})
	return &item, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": c.authHeader,
	}
}

// FlattenWorkItem reduces a raw work item to the simple field map surfaced
// to the host.
func FlattenWorkItem(item WorkItem) map[string]interface{} {
	fields := item.Fields
	return map[string]interface{}{
		"id":             item.ID,
		"url":            item.URL,
		"title":          stringField(fields, "System.Title"),
		"state":          stringField(fields, "System.State"),
		"type":           stringField(fields, "System.WorkItemType"),
		"assigned_to":    identityField(fields, "System.AssignedTo"),
		"description":    stringField(fields, "System.Description"),
		"created_date":   stringField(fields, "System.CreatedDate"),
		"created_by":     identityField(fields, "System.CreatedBy"),
		"changed_date":   stringField(fields, "System.ChangedDate"),
		"tags":           stringField(fields, "System.Tags"),
		"iteration_path": stringField(fields, "System.IterationPath"),
		"area_path":      stringField(fields, "System.AreaPath"),
	}
}

func stringField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

// identityField extracts the display name from an identity reference field.
func identityField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case map[string]interface{}:
		if name, ok := v["displayName"].(string); ok {
			return name
		}
	case string:
		return v
	}
	return ""
}
