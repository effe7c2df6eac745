package jiraissues

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createValidConfig() *Config {
	return &Config{
		Enabled:    true,
		Timeout:    30 * time.Second,
		MaxResults: 50,
	}
}

func createValidInputs(siteURL string) map[string]interface{} {
	return map[string]interface{}{
		"siteUrl":  siteURL,
		"username": "user@example.com",
		"apiToken": "test-token",
		"jqlQuery": "project = PROJ",
	}
}

func newSearchServer(t *testing.T, resp map[string]interface{}, capture *map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/search", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew(t *testing.T) {
	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, ComponentName, comp.Name())

	_, err = New(Options{CustomConfig: &Config{Enabled: true, Timeout: 30 * time.Second, MaxResults: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results must be positive")
}

func TestComponent_Execute_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := newSearchServer(t, map[string]interface{}{
		"startAt":    0,
		"maxResults": 50,
		"total":      120,
		"issues": []interface{}{
			map[string]interface{}{"key": "PROJ-1"},
			map[string]interface{}{"key": "PROJ-2"},
		},
	}, &gotBody)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), createValidInputs(server.URL))

	require.Equal(t, component.StatusSuccess, result.Status, "message: %s", result.Message)
	assert.Equal(t, "Found 120 issues (returned 2)", result.Message)
	assert.Equal(t, 120, result.Data["total"])
	assert.Equal(t, 2, result.Data["issuesCount"])

	assert.Equal(t, "project = PROJ", gotBody["jql"])
	assert.Equal(t, float64(50), gotBody["maxResults"])
	// Field restriction with the default list is on unless disabled.
	fields, ok := gotBody["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 6)

	pagination, ok := result.Data["pagination"].(*Pagination)
	require.True(t, ok)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasMore)
}

func TestComponent_Execute_FieldRestriction(t *testing.T) {
	var gotBody map[string]interface{}
	server := newSearchServer(t, map[string]interface{}{
		"startAt": 0, "maxResults": 10, "total": 0, "issues": []interface{}{},
	}, &gotBody)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	inputs := createValidInputs(server.URL)
	inputs["includeFields"] = true
	inputs["maxResults"] = 10

	result := comp.Execute(context.Background(), inputs)

	require.Equal(t, component.StatusSuccess, result.Status, "message: %s", result.Message)
	assert.Equal(t, "No issues found", result.Message)

	fields, ok := gotBody["fields"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"summary", "status", "assignee", "priority", "created", "updated"}, fields)
}

func TestComponent_Execute_AllFields(t *testing.T) {
	var gotBody map[string]interface{}
	server := newSearchServer(t, map[string]interface{}{
		"startAt": 0, "maxResults": 50, "total": 0, "issues": []interface{}{},
	}, &gotBody)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	inputs := createValidInputs(server.URL)
	inputs["includeFields"] = false

	result := comp.Execute(context.Background(), inputs)

	require.Equal(t, component.StatusSuccess, result.Status, "message: %s", result.Message)
	_, hasFields := gotBody["fields"]
	assert.False(t, hasFields)
}

func TestComponent_Execute_CustomFields(t *testing.T) {
	var gotBody map[string]interface{}
	server := newSearchServer(t, map[string]interface{}{
		"startAt": 0, "maxResults": 50, "total": 0, "issues": []interface{}{},
	}, &gotBody)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	inputs := createValidInputs(server.URL)
	inputs["includeFields"] = true
	inputs["fields"] = "summary, labels ,duedate"

	result := comp.Execute(context.Background(), inputs)

	require.Equal(t, component.StatusSuccess, result.Status, "message: %s", result.Message)
	assert.Equal(t, []interface{}{"summary", "labels", "duedate"}, gotBody["fields"])
}

func TestComponent_Execute_MissingJQL(t *testing.T) {
	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), map[string]interface{}{
		"siteUrl":  "https://example.atlassian.net",
		"username": "user@example.com",
		"apiToken": "token",
	})

	assert.Equal(t, component.StatusError, result.Status)
	assert.Equal(t, "MISSING_PARAMETER", result.ErrorCode)
	assert.Contains(t, result.Message, "jqlQuery")
}

func TestComponent_Execute_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), createValidInputs(server.URL))

	assert.Equal(t, component.StatusError, result.Status)
	assert.Equal(t, "AUTHENTICATION_ERROR", result.ErrorCode)
}

func TestComponent_Execute_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	comp, err := New(Options{CustomConfig: createValidConfig(), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), createValidInputs(server.URL))

	assert.Equal(t, component.StatusError, result.Status)
	assert.Equal(t, "ISSUE_SEARCH_FAILED", result.ErrorCode)
}

func TestComponent_Execute_Disabled(t *testing.T) {
	cfg := createValidConfig()
	cfg.Enabled = false

	comp, err := New(Options{CustomConfig: cfg, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	result := comp.Execute(context.Background(), createValidInputs("https://example.atlassian.net"))

	assert.Equal(t, component.StatusWarning, result.Status)
	assert.Contains(t, result.Message, "disabled")
}

func TestResolveFields(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		expected []string
	}{
		{
			name:     "not requested",
			input:    &Input{IncludeFields: false, Fields: "summary"},
			expected: nil,
		},
		{
			name:     "default list",
			input:    &Input{IncludeFields: true},
			expected: []string{"summary", "status", "assignee", "priority", "created", "updated"},
		},
		{
			name:     "custom list with whitespace",
			input:    &Input{IncludeFields: true, Fields: " summary , labels "},
			expected: []string{"summary", "labels"},
		},
		{
			name:     "blank entries dropped",
			input:    &Input{IncludeFields: true, Fields: "summary,,status,"},
			expected: []string{"summary", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveFields(tt.input))
		})
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name       string
		startAt    int
		maxResults int
		total      int
		expected   Pagination
	}{
		{
			name:    "first page with more",
			startAt: 0, maxResults: 50, total: 120,
			expected: Pagination{Page: 1, TotalPages: 3, HasMore: true},
		},
		{
			name:    "last page",
			startAt: 100, maxResults: 50, total: 120,
			expected: Pagination{Page: 3, TotalPages: 3, HasMore: false},
		},
		{
			name:    "exact multiple",
			startAt: 0, maxResults: 50, total: 100,
			expected: Pagination{Page: 1, TotalPages: 2, HasMore: true},
		},
		{
			name:    "empty result set",
			startAt: 0, maxResults: 50, total: 0,
			expected: Pagination{Page: 1, TotalPages: 0, HasMore: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pagination := buildPagination(tt.startAt, tt.maxResults, tt.total)
			require.NotNil(t, pagination)
			assert.Equal(t, tt.expected, *pagination)
		})
	}
}

func TestCreateConfigFromAppConfig(t *testing.T) {
	appConfig := &config.Config{
		Components: map[string]config.ComponentConfig{
			ComponentName: {Enabled: true, Timeout: 20000, MaxItems: 25},
		},
		Trackers: config.TrackersConfig{
			Jira: config.JiraConfig{
				SiteURL:  "https://example.atlassian.net",
				Username: "bot@example.com",
				APIToken: "app-token",
			},
		},
	}

	cfg := createConfigFromAppConfig(appConfig, nil)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, "https://example.atlassian.net", cfg.SiteURL)
	assert.Equal(t, "bot@example.com", cfg.Username)
	assert.Equal(t, "app-token", cfg.APIToken)
}

func TestGetInputSchema(t *testing.T) {
	schema := GetInputSchema()

	assert.Equal(t, "object", schema.Type)
	assert.ElementsMatch(t, []string{"siteUrl", "username", "apiToken", "jqlQuery"}, schema.Required)
	assert.Contains(t, schema.Properties, "maxResults")
	assert.Contains(t, schema.Properties, "includeFields")
	assert.Contains(t, schema.Properties, "fields")
	assert.Equal(t, true, schema.Properties["includeFields"].Default)

	output := GetOutputSchema()
	assert.Contains(t, output.Properties, "issues")
	assert.Contains(t, output.Properties, "pagination")
}
