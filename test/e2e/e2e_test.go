// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flow-components/internal/common/config"
	"flow-components/internal/common/logger"
	"flow-components/internal/component"

	azureworkitemcreate "flow-components/internal/components/tracker/azure-workitem-create"
	azureworkitems "flow-components/internal/components/tracker/azure-workitems"
	jiraissues "flow-components/internal/components/tracker/jira-issues"
)

// newAzureServer serves the WIQL, detail and creation endpoints the Azure
// DevOps components call during a run.
func newAzureServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(r.URL.Path, "/wiql"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"queryType": "flat",
				"workItems": []map[string]interface{}{
					{"id": 101, "url": "https://dev.azure.com/_apis/wit/workItems/101"},
					{"id": 102, "url": "https://dev.azure.com/_apis/wit/workItems/102"},
				},
			})
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/workitems"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"count": 2,
				"value": []map[string]interface{}{
					{
						"id": 101,
						"fields": map[string]interface{}{
							"System.Title":        "Fix login redirect",
							"System.State":        "Active",
							"System.WorkItemType": "Bug",
						},
					},
					{
						"id": 102,
						"fields": map[string]interface{}{
							"System.Title":        "Add audit trail",
							"System.State":        "New",
							"System.WorkItemType": "User Story",
						},
					},
				},
			})
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/workitems/$"):
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 201,
				"fields": map[string]interface{}{
					"System.Title": "Created item",
				},
				"url": "https://dev.azure.com/_apis/wit/workItems/201",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newJiraServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path != "/rest/api/3/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"startAt":    0,
			"maxResults": 50,
			"total":      1,
			"issues": []map[string]interface{}{
				{
					"key": "PROJ-7",
					"fields": map[string]interface{}{
						"summary": "Investigate timeout spikes",
					},
				},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

// buildTestRegistry wires the built-in components against the fake tracker
// servers the same way the component host does at startup.
func buildTestRegistry(t *testing.T, azureURL, jiraURL string) *component.Registry {
	t.Helper()

	cfg := &config.Config{
		Trackers: config.TrackersConfig{
			AzureDevOps: config.AzureDevOpsConfig{
				BaseURL:      azureURL,
				Organization: "testorg",
				Project:      "testproject",
				PATToken:     "test-pat",
			},
			Jira: config.JiraConfig{
				SiteURL:  jiraURL,
				Username: "user@example.com",
				APIToken: "test-token",
			},
		},
	}

	log := logger.NewTestLogger(t)
	registry := component.NewRegistry(log)

	queryComp, err := azureworkitems.New(azureworkitems.Options{AppConfig: cfg, Logger: log})
	require.NoError(t, err)
	createComp, err := azureworkitemcreate.New(azureworkitemcreate.Options{AppConfig: cfg, Logger: log})
	require.NoError(t, err)
	jiraComp, err := jiraissues.New(jiraissues.Options{AppConfig: cfg, Logger: log})
	require.NoError(t, err)

	registered := registry.RegisterCollection([]component.Component{queryComp, createComp, jiraComp})
	require.Equal(t, 3, registered)

	return registry
}

func TestRegistry_EndToEnd(t *testing.T) {
	azureServer := newAzureServer(t)
	jiraServer := newJiraServer(t)

	registry := buildTestRegistry(t, azureServer.URL, jiraServer.URL)

	assert.Equal(t, []string{
		"tracker.azure.workitem.create",
		"tracker.azure.workitems",
		"tracker.jira.issues",
	}, registry.Names())

	t.Run("query work items", func(t *testing.T) {
		comp, ok := registry.Get("tracker.azure.workitems")
		require.True(t, ok)

		result := comp.Execute(context.Background(), map[string]interface{}{
			"wiqlQuery": "SELECT [System.Id] FROM WorkItems",
		})

		require.Equal(t, component.StatusSuccess, result.Status)
		assert.Equal(t, 2, result.Data["count"])

		items, ok := result.Data["workItems"].([]map[string]interface{})
		require.True(t, ok)
		require.Len(t, items, 2)
		assert.Equal(t, "Fix login redirect", items[0]["title"])
	})

	t.Run("create work items", func(t *testing.T) {
		comp, ok := registry.Get("tracker.azure.workitem.create")
		require.True(t, ok)

		result := comp.Execute(context.Background(), map[string]interface{}{
			"workItemType": "User Story",
			"items": []interface{}{
				map[string]interface{}{
					"title":       "Created item",
					"description": "From end to end test",
					"priority":    "high",
				},
			},
		})

		require.Equal(t, component.StatusSuccess, result.Status)
		assert.Equal(t, 1, result.Data["createdCount"])
		assert.Equal(t, 0, result.Data["failedCount"])
	})

	t.Run("search jira issues", func(t *testing.T) {
		comp, ok := registry.Get("tracker.jira.issues")
		require.True(t, ok)

		result := comp.Execute(context.Background(), map[string]interface{}{
			"jqlQuery": "project = PROJ ORDER BY created DESC",
		})

		require.Equal(t, component.StatusSuccess, result.Status)
		assert.Equal(t, 1, result.Data["total"])
		assert.Equal(t, 1, result.Data["issuesCount"])
	})

	t.Run("unknown component", func(t *testing.T) {
		_, ok := registry.Get("tracker.github.issues")
		assert.False(t, ok)
	})
}

// Validation failures and tracker outages surface as error results, never as
// transport failures or panics.
func TestRegistry_EndToEnd_Failures(t *testing.T) {
	t.Run("missing required input", func(t *testing.T) {
		azureServer := newAzureServer(t)
		jiraServer := newJiraServer(t)
		registry := buildTestRegistry(t, azureServer.URL, jiraServer.URL)

		comp, ok := registry.Get("tracker.jira.issues")
		require.True(t, ok)

		result := comp.Execute(context.Background(), map[string]interface{}{})

		require.Equal(t, component.StatusError, result.Status)
		assert.Equal(t, "MISSING_PARAMETER", result.ErrorCode)
	})

	t.Run("tracker outage", func(t *testing.T) {
		downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(downServer.Close)

		registry := buildTestRegistry(t, downServer.URL, downServer.URL)

		comp, ok := registry.Get("tracker.azure.workitems")
		require.True(t, ok)

		result := comp.Execute(context.Background(), map[string]interface{}{
			"wiqlQuery": "SELECT [System.Id] FROM WorkItems",
		})

		require.Equal(t, component.StatusError, result.Status)
		assert.Equal(t, "WORK_ITEM_FETCH_FAILED", result.ErrorCode)
	})
}
