package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJiraTime_UnmarshalsJiraFormat(t *testing.T) {
	var ts jiraTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-10T09:15:00.000+0200"`), &ts))
	require.Equal(t, time.Date(2026, 3, 10, 7, 15, 0, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	require.True(t, ts.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"2026-03-10"`), &ts))
}

func TestClient_SendsBasicAuthAndFieldList(t *testing.T) {
	var gotUser, gotToken string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotToken, _ = r.BasicAuth()
		gotQuery = map[string]string{
			"jql":        r.URL.Query().Get("jql"),
			"fields":     r.URL.Query().Get("fields"),
			"maxResults": r.URL.Query().Get("maxResults"),
		}
		json.NewEncoder(w).Encode(map[string]any{"issues": []any{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "svc-board", "secret-token")
	issues, err := client.SearchIssues(context.Background(), "project = TECH")

	require.NoError(t, err)
	require.Empty(t, issues)
	require.Equal(t, "svc-board", gotUser)
	require.Equal(t, "secret-token", gotToken)
	require.Equal(t, "project = TECH", gotQuery["jql"])
	require.Equal(t, "summary,description,labels,reporter,created,updated", gotQuery["fields"])
	require.Equal(t, "100", gotQuery["maxResults"])
}

func TestClient_Non200IncludesBodyExcerpt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errorMessages":["You do not have permission"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "svc-board", "bad-token")
	_, err := client.ListProjects(context.Background())

	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
	require.Contains(t, err.Error(), "You do not have permission")
}
