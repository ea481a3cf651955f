package jira

import (
	"context"
	"crypto/sha1"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/internal/usecases"

	"github.com/google/uuid"
)

// Bracket tags recognized in issue descriptions and comment bodies.
var (
	hashTagTagRe = regexp.MustCompile(`\[\[\s*HashTag:\s*([^\]]+?)\s*\]\]`)
	reviewTagRe  = regexp.MustCompile(`^\[\[\s*Review:\s*([A-Za-z_]+)\s*\]\]\s*`)
)

// postRef remembers where a served post came from so GetPost can fetch
// it again by issue key.
type postRef struct {
	issueKey string
	path     domain.PostGroupPath
}

// Store is the read half of the board store backed by Jira. Every write
// returns NOT_IMPLEMENTED; noices only exist on writable backends.
type Store struct {
	client *Client

	mu    sync.RWMutex
	posts map[string]postRef     // post id -> issue ref
	users map[string]domain.User // user id -> derived user
}

// NewStore creates a read-only board store over the given Jira client.
func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		posts:  make(map[string]postRef),
		users:  make(map[string]domain.User),
	}
}

// GetPostGroup maps the Jira project named by path to a group. Only
// single-segment paths exist on this backend.
func (s *Store) GetPostGroup(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error) {
	if len(path.Segments()) != 1 {
		return domain.PostGroup{}, usecases.NotFound("jira backend has no nested group %q", path.String())
	}

	posts, err := s.ListPosts(ctx, path)
	if err != nil {
		return domain.PostGroup{}, err
	}

	group := domain.NewPostGroup(path.Leaf(), domain.DefaultNoiceLimit())
	for _, post := range posts {
		group = group.AddPost(post)
	}
	return group, nil
}

// ListPostGroups maps every visible Jira project to a group.
func (s *Store) ListPostGroups(ctx context.Context) ([]domain.PostGroup, error) {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, usecases.Unexpected(err)
	}

	groups := make([]domain.PostGroup, 0, len(projects))
	for _, project := range projects {
		name, err := domain.NewGroupName(strings.ToLower(project.Key))
		if err != nil {
			continue
		}
		path := domain.MustPostGroupPath(name.String())
		group, err := s.GetPostGroup(ctx, path)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// GetPost re-fetches a previously listed post by its remembered issue key.
func (s *Store) GetPost(ctx context.Context, id domain.PostID) (domain.Post, error) {
	s.mu.RLock()
	ref, ok := s.posts[id.String()]
	s.mu.RUnlock()
	if !ok {
		return domain.Post{}, usecases.NotFound("post %q not found", id.String())
	}

	issues, err := s.client.SearchIssues(ctx, fmt.Sprintf("key = %s", ref.issueKey))
	if err != nil {
		return domain.Post{}, usecases.Unexpected(err)
	}
	if len(issues) == 0 {
		return domain.Post{}, usecases.NotFound("issue %q no longer exists", ref.issueKey)
	}
	return s.mapIssue(ctx, issues[0], ref.path)
}

// ListPosts returns the issues of the project named by groupPath as
// posts, newest first.
func (s *Store) ListPosts(ctx context.Context, groupPath domain.PostGroupPath) ([]domain.Post, error) {
	if groupPath.IsZero() {
		return nil, usecases.NotImplemented("ListPosts across all projects")
	}
	project := strings.ToUpper(groupPath.Leaf().String())

	issues, err := s.client.SearchIssues(ctx, fmt.Sprintf("project = %s ORDER BY created DESC", project))
	if err != nil {
		return nil, usecases.Unexpected(err)
	}

	posts := make([]domain.Post, 0, len(issues))
	for _, issue := range issues {
		post, err := s.mapIssue(ctx, issue, groupPath)
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// mapIssue converts a Jira issue plus its comments into a post.
func (s *Store) mapIssue(ctx context.Context, issue Issue, path domain.PostGroupPath) (domain.Post, error) {
	title, err := domain.NewPostTitle(firstRunes(issue.Fields.Summary, 100))
	if err != nil {
		return domain.Post{}, usecases.InvalidData("issue %q: %v", issue.Key, err)
	}
	body := issue.Fields.Description
	if strings.TrimSpace(body) == "" {
		body = issue.Fields.Summary
	}
	content, err := domain.NewPostContent(firstRunes(stripTags(body), 1000))
	if err != nil {
		return domain.Post{}, usecases.InvalidData("issue %q: %v", issue.Key, err)
	}

	authorID := s.rememberUser(issue.Fields.Reporter)
	postID := derivedPostID(issue.Key)

	hashtags := collectHashtags(issue.Fields.Labels, issue.Fields.Description)

	comments, reviewComments, status := s.mapComments(ctx, issue.Key)

	createdAt := issue.Fields.Created.Time
	updatedAt := issue.Fields.Updated.Time
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	post := domain.RestorePost(
		postID, title, content, authorID, path,
		hashtags, status, reviewComments, comments, nil,
		createdAt, updatedAt,
	)

	s.mu.Lock()
	s.posts[postID.String()] = postRef{issueKey: issue.Key, path: path}
	s.mu.Unlock()

	return post, nil
}

// mapComments splits an issue's comments into plain comments and review
// verdicts. The last review tag wins.
func (s *Store) mapComments(ctx context.Context, issueKey string) ([]domain.Comment, []domain.ReviewComment, domain.ReviewStatus) {
	status := domain.ReviewPending

	issueComments, err := s.client.ListComments(ctx, issueKey)
	if err != nil {
		return nil, nil, status
	}

	var comments []domain.Comment
	var reviewComments []domain.ReviewComment
	for _, ic := range issueComments {
		text := strings.TrimSpace(ic.Body)
		if text == "" {
			continue
		}
		authorID := s.rememberUser(ic.Author)

		if match := reviewTagRe.FindStringSubmatch(text); match != nil {
			if parsed, err := domain.ParseReviewStatus(match[1]); err == nil {
				status = parsed
				remainder := strings.TrimSpace(text[len(match[0]):])
				if remainder != "" {
					if rc, err := domain.NewReviewComment(firstRunes(remainder, 500), authorID); err == nil {
						reviewComments = append(reviewComments, rc)
					}
				}
				continue
			}
		}

		if c, err := domain.NewComment(firstRunes(text, 1000), authorID); err == nil {
			comments = append(comments, c)
		}
	}
	return comments, reviewComments, status
}

// rememberUser derives a stable user from a Jira author and caches it so
// GetUser can serve it later. Jira users carry no noice balance.
func (s *Store) rememberUser(author Author) domain.UserID {
	id := derivedUserID(author.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id.String()]; !ok {
		display := author.DisplayName
		if display == "" {
			display = author.Name
		}
		displayName, err := domain.NewUserDisplayName(firstRunes(display, 100))
		if err != nil {
			displayName = domain.MustUserDisplayName("Jira User")
		}
		s.users[id.String()] = domain.RestoreUser(
			id,
			sanitizeUsername(author.Name),
			displayName,
			domain.ZeroNoiceAmount(),
			domain.MustRupeeAmount(0),
			time.Now().UTC(),
		)
	}
	return id
}

// Writes are not supported on the Jira backend.

func (s *Store) CreatePost(context.Context, domain.Post) error {
	return usecases.NotImplemented("CreatePost")
}

func (s *Store) UpdatePost(context.Context, domain.Post) error {
	return usecases.NotImplemented("UpdatePost")
}

func (s *Store) DeletePost(context.Context, domain.PostID) error {
	return usecases.NotImplemented("DeletePost")
}

func (s *Store) AddNoice(context.Context, domain.PostID, domain.UserID) error {
	return usecases.NotImplemented("AddNoice")
}

func (s *Store) RemoveNoice(context.Context, domain.PostID, domain.UserID) error {
	return usecases.NotImplemented("RemoveNoice")
}

func (s *Store) UpdateUser(context.Context, domain.User) error {
	return usecases.NotImplemented("UpdateUser")
}

// NoiceCount reflects the served post; Jira issues carry no noices.
func (s *Store) NoiceCount(ctx context.Context, postID domain.PostID) (int, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	return post.NoiceCount(), nil
}

// GetUser serves a user previously derived from an issue or comment.
func (s *Store) GetUser(_ context.Context, id domain.UserID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id.String()]
	if !ok {
		return domain.User{}, usecases.NotFound("user %q not found", id.String())
	}
	return user, nil
}

// ListUsers returns every user derived so far.
func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

// collectHashtags merges issue labels with [[ HashTag: ... ]] tags from
// the description, deduplicated in first-seen order.
func collectHashtags(labels []string, description string) []domain.Hashtag {
	var tags []domain.Hashtag
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		if !strings.HasPrefix(raw, "#") {
			raw = "#" + raw
		}
		h, err := domain.NewHashtag(raw)
		if err != nil {
			return
		}
		for _, t := range tags {
			if t == h {
				return
			}
		}
		tags = append(tags, h)
	}

	for _, label := range labels {
		add(label)
	}
	for _, match := range hashTagTagRe.FindAllStringSubmatch(description, -1) {
		for _, raw := range strings.Split(match[1], ",") {
			add(raw)
		}
	}
	return tags
}

// stripTags removes bracket tags from a body, leaving the prose.
func stripTags(body string) string {
	body = hashTagTagRe.ReplaceAllString(body, "")
	return strings.TrimSpace(body)
}

// sanitizeUsername squeezes a Jira account name into a valid board
// username: alphanumerics only, 3 to 20 characters.
func sanitizeUsername(name string) domain.Username {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) < 3 {
		cleaned = "jira" + cleaned
	}
	if len(cleaned) > 20 {
		cleaned = cleaned[:20]
	}
	username, err := domain.NewUsername(cleaned)
	if err != nil {
		return domain.MustUsername("jirauser")
	}
	return username
}

// derivedUserID hashes a Jira account name into a stable UUID-shaped id.
func derivedUserID(name string) domain.UserID {
	return domain.MustUserID(deriveUUID("jira-user:" + name))
}

// derivedPostID hashes an issue key into a stable UUID-shaped id.
func derivedPostID(issueKey string) domain.PostID {
	return domain.MustPostID(deriveUUID("jira-post:" + issueKey))
}

// deriveUUID hashes seed into a UUID with v4 version and variant bits.
func deriveUUID(seed string) string {
	sum := sha1.Sum([]byte(seed))
	var b [16]byte
	copy(b[:], sum[:16])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, _ := uuid.FromBytes(b[:])
	return id.String()
}

// firstRunes returns at most n runes of s.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
