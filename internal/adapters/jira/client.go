// Package jira reads a noice board out of a Jira project: issues are
// posts, issue comments are post comments or review verdicts, labels are
// hashtags. The backend is read-only.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// jiraTimeLayout is the timestamp format Jira's REST v2 API emits.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// jiraTime unmarshals Jira's non-RFC3339 timestamps.
type jiraTime struct {
	time.Time
}

func (t *jiraTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(jiraTimeLayout, raw)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// Project is a Jira project as returned by /rest/api/2/project.
type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Issue is the slice of a Jira issue the board cares about.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the issue fields requested from the search endpoint.
type IssueFields struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Reporter    Author   `json:"reporter"`
	Created     jiraTime `json:"created"`
	Updated     jiraTime `json:"updated"`
}

// Author identifies the reporter or comment author.
type Author struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// IssueComment is one comment on an issue.
type IssueComment struct {
	ID      string   `json:"id"`
	Body    string   `json:"body"`
	Author  Author   `json:"author"`
	Created jiraTime `json:"created"`
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
}

type commentsResponse struct {
	Comments []IssueComment `json:"comments"`
}

// Client is a minimal Jira REST v2 client using basic auth.
type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
}

// NewClient creates a Jira client. baseURL is the site root without a
// trailing slash.
func NewClient(baseURL, username, token string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProjects returns the projects visible to the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/rest/api/2/project", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SearchIssues runs a JQL query and returns the matching issues.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]Issue, error) {
	query := url.Values{}
	query.Set("jql", jql)
	query.Set("fields", "summary,description,labels,reporter,created,updated")
	query.Set("maxResults", "100")

	var resp searchResponse
	if err := c.get(ctx, "/rest/api/2/search?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

// ListComments returns the comments on an issue, oldest first.
func (c *Client) ListComments(ctx context.Context, issueKey string) ([]IssueComment, error) {
	var resp commentsResponse
	if err := c.get(ctx, "/rest/api/2/issue/"+url.PathEscape(issueKey)+"/comment", &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("jira: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
