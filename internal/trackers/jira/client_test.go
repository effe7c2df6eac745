package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	commonhttp "flow-components/internal/common/http"
	"flow-components/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// Trailing slash must be tolerated in the configured site URL.
	return NewClient(ClientOptions{
		SiteURL:  server.URL + "/",
		Username: "user@example.com",
		APIToken: "test-token",
		Logger:   logger.NewTestLogger(t),
	})
}

func TestClient_SearchIssues(t *testing.T) {
	var gotBody map[string]interface{}
	var gotPath, gotAuth, gotMethod string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(SearchResponse{
			StartAt:    0,
			MaxResults: 10,
			Total:      2,
			Issues: []map[string]interface{}{
				{"key": "PROJ-1"},
				{"key": "PROJ-2"},
			},
		})
	})

	resp, err := client.SearchIssues(context.Background(), SearchRequest{
		JQL:        "project = PROJ ORDER BY created DESC",
		MaxResults: 10,
		Fields:     []string{"summary", "status"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/3/search", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("user@example.com:test-token"))
	assert.Equal(t, expectedAuth, gotAuth)

	assert.Equal(t, "project = PROJ ORDER BY created DESC", gotBody["jql"])
	assert.Equal(t, float64(10), gotBody["maxResults"])
	assert.Equal(t, []interface{}{"summary", "status"}, gotBody["fields"])

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Issues, 2)
	assert.Equal(t, "PROJ-1", resp.Issues[0]["key"])
}

func TestClient_SearchIssues_Defaults(t *testing.T) {
	var gotBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(SearchResponse{})
	})

	_, err := client.SearchIssues(context.Background(), SearchRequest{JQL: "order by created"})
	require.NoError(t, err)

	assert.Equal(t, float64(defaultMaxResults), gotBody["maxResults"])
	_, hasFields := gotBody["fields"]
	assert.False(t, hasFields, "fields should be omitted when not requested")
}

func TestClient_SearchIssues_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SearchIssues(context.Background(), SearchRequest{JQL: "project = PROJ"})
	require.Error(t, err)

	var statusErr *commonhttp.StatusError
	require.True(t, stderrors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
