package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/internal/usecases"

	"github.com/stretchr/testify/require"
)

// fakeJira serves the three REST v2 endpoints the client touches.
type fakeJira struct {
	projects []Project
	issues   map[string][]map[string]any // project key -> raw issues
	comments map[string][]map[string]any // issue key -> raw comments
}

func (f *fakeJira) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/project", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.projects)
	})
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		jql := r.URL.Query().Get("jql")
		var issues []map[string]any
		for _, list := range f.issues {
			for _, issue := range list {
				key := issue["key"].(string)
				if jql == "key = "+key || containsProject(jql, key) {
					issues = append(issues, issue)
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"issues": issues})
	})
	mux.HandleFunc("/rest/api/2/issue/", func(w http.ResponseWriter, r *http.Request) {
		// Path shape: /rest/api/2/issue/{key}/comment
		key := r.URL.Path[len("/rest/api/2/issue/") : len(r.URL.Path)-len("/comment")]
		comments := f.comments[key]
		if comments == nil {
			comments = []map[string]any{}
		}
		json.NewEncoder(w).Encode(map[string]any{"comments": comments})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func containsProject(jql, issueKey string) bool {
	for i := range issueKey {
		if issueKey[i] == '-' {
			return jql == "project = "+issueKey[:i]+" ORDER BY created DESC"
		}
	}
	return false
}

func rawIssue(key, summary, description string, labels []string, reporter string) map[string]any {
	return map[string]any{
		"key": key,
		"fields": map[string]any{
			"summary":     summary,
			"description": description,
			"labels":      labels,
			"reporter":    map[string]any{"name": reporter, "displayName": "Reporter " + reporter},
			"created":     "2026-03-10T09:15:00.000+0000",
			"updated":     "2026-03-11T14:30:00.000+0000",
		},
	}
}

func rawComment(id, body, author string) map[string]any {
	return map[string]any{
		"id":      id,
		"body":    body,
		"author":  map[string]any{"name": author, "displayName": author},
		"created": "2026-03-12T08:00:00.000+0000",
	}
}

func boardFixture() *fakeJira {
	return &fakeJira{
		projects: []Project{{Key: "TECH", Name: "Technology"}},
		issues: map[string][]map[string]any{
			"TECH": {
				rawIssue("TECH-1",
					"Ship the ingest pipeline",
					"Throughput doubled overnight. [[ HashTag: release,pipeline ]]",
					[]string{"release", "infra"},
					"alice.dev"),
			},
		},
		comments: map[string][]map[string]any{
			"TECH-1": {
				rawComment("10", "Looks great, congrats!", "bob"),
				rawComment("11", "[[ Review: SCHEDULED ]] Demo booked for Friday.", "charlie"),
			},
		},
	}
}

func newTestStore(t *testing.T, fake *fakeJira) *Store {
	t.Helper()
	srv := fake.server(t)
	return NewStore(NewClient(srv.URL, "user", "token"))
}

func TestStore_ListPosts_MapsIssueToPost(t *testing.T) {
	store := newTestStore(t, boardFixture())
	path := domain.MustPostGroupPath("tech")

	posts, err := store.ListPosts(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	require.Equal(t, "Ship the ingest pipeline", post.Title().String())
	require.Equal(t, "Throughput doubled overnight.", post.Content().String())
	require.Equal(t, path, post.GroupPath())
	require.Equal(t, 2026, post.CreatedAt().Year())
	require.True(t, post.UpdatedAt().After(post.CreatedAt()))
	require.Zero(t, post.NoiceCount())
}

func TestStore_ListPosts_MergesLabelsAndDescriptionHashtags(t *testing.T) {
	store := newTestStore(t, boardFixture())

	posts, err := store.ListPosts(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// Labels first, then description tags, "release" deduplicated.
	tags := posts[0].Hashtags()
	require.Len(t, tags, 3)
	require.Equal(t, "#release", tags[0].String())
	require.Equal(t, "#infra", tags[1].String())
	require.Equal(t, "#pipeline", tags[2].String())
}

func TestStore_ListPosts_ReviewTagSetsStatusAndComment(t *testing.T) {
	store := newTestStore(t, boardFixture())

	posts, err := store.ListPosts(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	require.Equal(t, domain.ReviewScheduled, post.ReviewStatus())
	require.Len(t, post.ReviewComments(), 1)
	require.Equal(t, "Demo booked for Friday.", post.ReviewComments()[0].Content())
	require.Len(t, post.Comments(), 1)
	require.Equal(t, "Looks great, congrats!", post.Comments()[0].Content())
}

func TestStore_ListPosts_LastReviewTagWins(t *testing.T) {
	fake := boardFixture()
	fake.comments["TECH-1"] = append(fake.comments["TECH-1"],
		rawComment("12", "[[ Review: COMPLETED ]]", "charlie"))
	store := newTestStore(t, fake)

	posts, err := store.ListPosts(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, domain.ReviewCompleted, posts[0].ReviewStatus())
}

func TestStore_ListPosts_EmptyDescriptionFallsBackToSummary(t *testing.T) {
	fake := boardFixture()
	fake.issues["TECH"] = []map[string]any{
		rawIssue("TECH-2", "Just a headline", "  ", nil, "alice.dev"),
	}
	store := newTestStore(t, fake)

	posts, err := store.ListPosts(context.Background(), domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Just a headline", posts[0].Content().String())
}

func TestStore_ListPosts_ZeroPathNotImplemented(t *testing.T) {
	store := newTestStore(t, boardFixture())

	_, err := store.ListPosts(context.Background(), domain.PostGroupPath{})
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(err))
}

func TestStore_GetPost_RefetchesByIssueKey(t *testing.T) {
	store := newTestStore(t, boardFixture())
	ctx := context.Background()

	posts, err := store.ListPosts(ctx, domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	got, err := store.GetPost(ctx, posts[0].ID())
	require.NoError(t, err)
	require.True(t, got.Equal(posts[0]))
	require.Equal(t, posts[0].Title(), got.Title())
}

func TestStore_GetPost_UnknownIDNotFound(t *testing.T) {
	store := newTestStore(t, boardFixture())

	_, err := store.GetPost(context.Background(), domain.GeneratePostID())
	require.Equal(t, usecases.CodeNotFound, usecases.CodeOf(err))
}

func TestStore_ListPostGroups_MapsProjects(t *testing.T) {
	store := newTestStore(t, boardFixture())

	groups, err := store.ListPostGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "tech", groups[0].Name().String())
	require.Equal(t, 1, groups[0].PostCount())
}

func TestStore_GetPostGroup_NestedPathNotFound(t *testing.T) {
	store := newTestStore(t, boardFixture())

	_, err := store.GetPostGroup(context.Background(), domain.MustPostGroupPath("tech/frontend"))
	require.Equal(t, usecases.CodeNotFound, usecases.CodeOf(err))
}

func TestStore_Users_DerivedFromAuthorsAndStable(t *testing.T) {
	store := newTestStore(t, boardFixture())
	ctx := context.Background()

	posts, err := store.ListPosts(ctx, domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Len(t, posts, 1)

	author, err := store.GetUser(ctx, posts[0].AuthorID())
	require.NoError(t, err)
	require.Equal(t, "alicedev", author.Username().String())
	require.Equal(t, "Reporter alice.dev", author.DisplayName().String())
	require.Zero(t, author.NoiceAmount().Value())

	// Re-listing must derive the same ids.
	again, err := store.ListPosts(ctx, domain.MustPostGroupPath("tech"))
	require.NoError(t, err)
	require.Equal(t, posts[0].AuthorID(), again[0].AuthorID())
	require.Equal(t, posts[0].ID(), again[0].ID())

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3) // reporter plus two commenters
}

func TestStore_Writes_NotImplemented(t *testing.T) {
	store := NewStore(NewClient("http://jira.invalid", "user", "token"))
	ctx := context.Background()

	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.CreatePost(ctx, domain.Post{})))
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.UpdatePost(ctx, domain.Post{})))
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.DeletePost(ctx, domain.GeneratePostID())))
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.AddNoice(ctx, domain.GeneratePostID(), domain.GenerateUserID())))
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.RemoveNoice(ctx, domain.GeneratePostID(), domain.GenerateUserID())))
	require.Equal(t, usecases.CodeNotImplemented, usecases.CodeOf(store.UpdateUser(ctx, domain.User{})))
}

func TestSanitizeUsername_SqueezesIntoValidShape(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"alice.dev", "alicedev"},
		{"Bob-Builder", "bobbuilder"},
		{"x", "jirax"},
		{"a.very.long.account.name.indeed", "averylongaccountname"},
		{"山田", "jirauser"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizeUsername(tc.raw).String(), "raw %q", tc.raw)
	}
}

func TestDeriveUUID_ProducesValidV4Shape(t *testing.T) {
	id := deriveUUID("jira-user:alice.dev")

	parsed, err := domain.NewUserID(id)
	require.NoError(t, err)
	require.Equal(t, id, parsed.String())
	require.Equal(t, id, deriveUUID("jira-user:alice.dev"))
	require.NotEqual(t, id, deriveUUID("jira-user:bob"))
}
