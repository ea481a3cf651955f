package scraper

import (
	"crypto/sha1"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hckaye/noice-board/internal/domain"

	"github.com/google/uuid"
)

// Bracket tags embedded in page and comment bodies.
var (
	noiceLimitTagRe = regexp.MustCompile(`\[\[\s*NoiceLimit:\s*(\d+)\s*\]\]`)
	hashTagTagRe    = regexp.MustCompile(`\[\[\s*HashTag:\s*([^\]]+?)\s*\]\]`)
	reviewTagRe     = regexp.MustCompile(`^\[\[\s*Review:\s*([A-Za-z_]+)\s*\]\]\s*`)
)

// Page structure patterns. Fixtures and real pages keep the comment body
// free of nested divs so the non-greedy close works.
var (
	titleTextRe     = regexp.MustCompile(`(?s)id="title-text"[^>]*>(.*?)<`)
	mainContentRe   = regexp.MustCompile(`(?s)<div id="main-content"[^>]*>(.*?)</div>`)
	commentStartRe  = regexp.MustCompile(`<div class="comment( reply)?" data-comment-id="(\d+)"`)
	commentBodyRe   = regexp.MustCompile(`(?s)class="comment-body"[^>]*>(.*?)</div>`)
	commentAuthorRe = regexp.MustCompile(`class="comment-author"[^>]*data-username="([^"]+)"`)
	commentDateRe   = regexp.MustCompile(`<time[^>]*datetime="([^"]+)"`)
	likeUserRe      = regexp.MustCompile(`class="like-user"[^>]*data-username="([^"]+)"`)
)

// parseGroupHTML extracts a full group from a Confluence page: the noice
// limit from the page body, one post per page comment, and comments,
// review verdicts and likes from each post's replies.
func parseGroupHTML(html string, path domain.PostGroupPath) (domain.PostGroup, error) {
	if titleTextRe.FindStringSubmatch(html) == nil {
		return domain.PostGroup{}, ErrPageEmpty
	}

	group := domain.NewPostGroup(path.Leaf(), parseNoiceLimit(html))

	for _, post := range parsePosts(html, path) {
		group = group.AddPost(post)
	}

	return group, nil
}

// parseNoiceLimit reads the [[ NoiceLimit: n ]] tag from the page body.
// Pages without the tag get the default limit.
func parseNoiceLimit(html string) domain.NoiceLimit {
	body := mainContentRe.FindStringSubmatch(html)
	if body == nil {
		return domain.DefaultNoiceLimit()
	}
	match := noiceLimitTagRe.FindStringSubmatch(body[1])
	if match == nil {
		return domain.DefaultNoiceLimit()
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return domain.DefaultNoiceLimit()
	}
	limit, err := domain.NewNoiceLimit(value)
	if err != nil {
		return domain.DefaultNoiceLimit()
	}
	return limit
}

// commentBlock is one page comment sliced out of the HTML.
type commentBlock struct {
	id    string
	reply bool
	html  string
}

// splitComments slices the page into comment blocks in document order.
func splitComments(html string) []commentBlock {
	matches := commentStartRe.FindAllStringSubmatchIndex(html, -1)
	blocks := make([]commentBlock, 0, len(matches))
	for i, m := range matches {
		end := len(html)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, commentBlock{
			id:    html[m[4]:m[5]],
			reply: m[2] >= 0,
			html:  html[m[0]:end],
		})
	}
	return blocks
}

// parsePosts walks the comment blocks. A top-level comment opens a post;
// the replies that follow it become its comments or review verdicts.
func parsePosts(html string, path domain.PostGroupPath) []domain.Post {
	var posts []domain.Post
	var current *postBuilder

	for _, block := range splitComments(html) {
		if !block.reply {
			if current != nil {
				posts = append(posts, current.build())
			}
			current = newPostBuilder(block, path)
			continue
		}
		if current != nil {
			current.addReply(block)
		}
	}
	if current != nil {
		posts = append(posts, current.build())
	}

	out := posts[:0]
	for _, p := range posts {
		if !p.ID().IsZero() {
			out = append(out, p)
		}
	}
	return out
}

// postBuilder accumulates one post while its replies are consumed.
type postBuilder struct {
	id             domain.PostID
	title          domain.PostTitle
	content        domain.PostContent
	authorID       domain.UserID
	path           domain.PostGroupPath
	hashtags       []domain.Hashtag
	reviewStatus   domain.ReviewStatus
	reviewComments []domain.ReviewComment
	comments       []domain.Comment
	noices         []domain.Noice
	createdAt      time.Time
	valid          bool
}

func newPostBuilder(block commentBlock, path domain.PostGroupPath) *postBuilder {
	b := &postBuilder{path: path, reviewStatus: domain.ReviewPending}

	username := extractFirst(commentAuthorRe, block.html)
	text, tags := extractBody(block.html)
	if username == "" || text == "" {
		return b
	}

	content, err := domain.NewPostContent(firstRunes(text, 1000))
	if err != nil {
		return b
	}
	title, err := domain.NewPostTitle(firstRunes(text, 20))
	if err != nil {
		return b
	}

	b.id = scrapedPostID(path, block.id)
	b.title = title
	b.content = content
	b.authorID = scrapedUserID(username)
	b.hashtags = tags
	b.createdAt = extractDate(block.html)
	b.valid = true

	for _, liker := range likeUserRe.FindAllStringSubmatch(block.html, -1) {
		b.noices = append(b.noices, domain.NewNoice(
			scrapedUserID(liker[1]), b.id, domain.MustNoiceAmount(1)))
	}

	return b
}

// addReply folds a reply comment into the post. Replies opening with
// [[ Review: STATUS ]] set the review status (last one wins); any text
// after the tag is kept as a review comment. Everything else is a plain
// comment.
func (b *postBuilder) addReply(block commentBlock) {
	if !b.valid {
		return
	}

	username := extractFirst(commentAuthorRe, block.html)
	text, _ := extractBody(block.html)
	if username == "" || text == "" {
		return
	}
	authorID := scrapedUserID(username)

	if match := reviewTagRe.FindStringSubmatch(text); match != nil {
		status, err := domain.ParseReviewStatus(match[1])
		if err == nil {
			b.reviewStatus = status
			remainder := strings.TrimSpace(text[len(match[0]):])
			if remainder != "" {
				if rc, err := domain.NewReviewComment(firstRunes(remainder, 500), authorID); err == nil {
					b.reviewComments = append(b.reviewComments, rc)
				}
			}
			return
		}
	}

	if c, err := domain.NewComment(firstRunes(text, 1000), authorID); err == nil {
		b.comments = append(b.comments, c)
	}
}

func (b *postBuilder) build() domain.Post {
	if !b.valid {
		return domain.Post{}
	}
	return domain.RestorePost(
		b.id, b.title, b.content, b.authorID, b.path,
		b.hashtags, b.reviewStatus, b.reviewComments, b.comments, b.noices,
		b.createdAt, b.createdAt,
	)
}

// extractBody returns the comment's plain text with bracket tags removed,
// plus the hashtags declared by [[ HashTag: ... ]] tags.
func extractBody(blockHTML string) (string, []domain.Hashtag) {
	match := commentBodyRe.FindStringSubmatch(blockHTML)
	if match == nil {
		return "", nil
	}
	text := stripHTML(match[1])

	var tags []domain.Hashtag
	for _, tag := range hashTagTagRe.FindAllStringSubmatch(text, -1) {
		for _, raw := range strings.Split(tag[1], ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			if !strings.HasPrefix(raw, "#") {
				raw = "#" + raw
			}
			if h, err := domain.NewHashtag(raw); err == nil && !hasTag(tags, h) {
				tags = append(tags, h)
			}
		}
	}

	text = hashTagTagRe.ReplaceAllString(text, "")
	return cleanText(text), tags
}

func hasTag(tags []domain.Hashtag, h domain.Hashtag) bool {
	for _, t := range tags {
		if t == h {
			return true
		}
	}
	return false
}

// extractDate reads the comment timestamp; missing or malformed dates
// fall back to the scrape time.
func extractDate(blockHTML string) time.Time {
	raw := extractFirst(commentDateRe, blockHTML)
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func extractFirst(re *regexp.Regexp, s string) string {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// scrapedUserID derives a stable UUID-shaped id from a wiki username so
// re-scrapes attribute likes and comments to the same user.
func scrapedUserID(username string) domain.UserID {
	return domain.MustUserID(deriveUUID("confluence-user:" + username))
}

// scrapedPostID derives a stable post id from the group path and the
// page comment id, keeping re-syncs idempotent.
func scrapedPostID(path domain.PostGroupPath, commentID string) domain.PostID {
	return domain.MustPostID(deriveUUID("confluence-post:" + path.String() + ":" + commentID))
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

// cleanText removes extra whitespace and trims the text.
func cleanText(text string) string {
	re := regexp.MustCompile(`\s+`)
	text = re.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripHTML removes HTML tags from a string.
func stripHTML(html string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	text := re.ReplaceAllString(html, " ")
	return cleanText(text)
}
