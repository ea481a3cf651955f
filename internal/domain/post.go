package domain

import (
	"slices"
	"time"
)

// Post is an article on the board. Every update operation returns a fresh
// copy with updatedAt bumped; id, authorID and createdAt never change.
type Post struct {
	id             PostID
	title          PostTitle
	content        PostContent
	authorID       UserID
	groupPath      PostGroupPath
	hashtags       []Hashtag
	reviewStatus   ReviewStatus
	reviewComments []ReviewComment
	comments       []Comment
	noices         []Noice
	createdAt      time.Time
	updatedAt      time.Time
}

// PostOption customizes NewPost.
type PostOption func(*Post)

// InGroup places the new post in the given group instead of the default.
func InGroup(path PostGroupPath) PostOption {
	return func(p *Post) { p.groupPath = path }
}

// Tagged attaches hashtags to the new post, deduplicated by value.
func Tagged(tags ...Hashtag) PostOption {
	return func(p *Post) {
		for _, t := range tags {
			p.hashtags = appendHashtag(p.hashtags, t)
		}
	}
}

// NewPost creates a post in the default group with PENDING review status
// and empty comment, review-comment and noice lists.
func NewPost(title PostTitle, content PostContent, authorID UserID, opts ...PostOption) Post {
	now := time.Now().UTC()
	p := Post{
		id:           GeneratePostID(),
		title:        title,
		content:      content,
		authorID:     authorID,
		groupPath:    DefaultPostGroupPath(),
		reviewStatus: ReviewPending,
		createdAt:    now,
		updatedAt:    now,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// RestorePost rebuilds a post from stored parts. Adapters use it to
// rehydrate posts read from external backends.
func RestorePost(
	id PostID,
	title PostTitle,
	content PostContent,
	authorID UserID,
	groupPath PostGroupPath,
	hashtags []Hashtag,
	reviewStatus ReviewStatus,
	reviewComments []ReviewComment,
	comments []Comment,
	noices []Noice,
	createdAt time.Time,
	updatedAt time.Time,
) Post {
	return Post{
		id:             id,
		title:          title,
		content:        content,
		authorID:       authorID,
		groupPath:      groupPath,
		hashtags:       slices.Clone(hashtags),
		reviewStatus:   reviewStatus,
		reviewComments: slices.Clone(reviewComments),
		comments:       slices.Clone(comments),
		noices:         slices.Clone(noices),
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (p Post) ID() PostID                 { return p.id }
func (p Post) Title() PostTitle           { return p.title }
func (p Post) Content() PostContent       { return p.content }
func (p Post) AuthorID() UserID           { return p.authorID }
func (p Post) GroupPath() PostGroupPath   { return p.groupPath }
func (p Post) ReviewStatus() ReviewStatus { return p.reviewStatus }
func (p Post) CreatedAt() time.Time       { return p.createdAt }
func (p Post) UpdatedAt() time.Time       { return p.updatedAt }

// Hashtags returns a copy of the post's hashtags.
func (p Post) Hashtags() []Hashtag { return slices.Clone(p.hashtags) }

// ReviewComments returns a copy of the moderator comments, oldest first.
func (p Post) ReviewComments() []ReviewComment { return slices.Clone(p.reviewComments) }

// Comments returns a copy of the reader comments, oldest first.
func (p Post) Comments() []Comment { return slices.Clone(p.comments) }

// Noices returns a copy of the top-level reactions, oldest first.
func (p Post) Noices() []Noice { return slices.Clone(p.noices) }

// NoiceCount returns how many top-level reactions the post has.
func (p Post) NoiceCount() int { return len(p.noices) }

// CommentCount returns how many reader comments the post has.
func (p Post) CommentCount() int { return len(p.comments) }

// TotalNoiceAmount sums the recursive totals of every top-level noice.
func (p Post) TotalNoiceAmount() int {
	total := 0
	for _, n := range p.noices {
		total += n.TotalAmount()
	}
	return total
}

// NoicesByUser returns the top-level reactions sent by userID.
func (p Post) NoicesByUser(userID UserID) []Noice {
	var out []Noice
	for _, n := range p.noices {
		if n.IsFromUser(userID) {
			out = append(out, n)
		}
	}
	return out
}

// HasHashtag reports whether the post carries the given tag.
func (p Post) HasHashtag(tag Hashtag) bool { return containsHashtag(p.hashtags, tag) }

// IsAuthor reports whether userID wrote the post.
func (p Post) IsAuthor(userID UserID) bool { return p.authorID == userID }

// Equal reports identity equality by post id.
func (p Post) Equal(other Post) bool { return p.id == other.id }

// clone deep-copies the post's slice fields so copy-on-write updates
// never alias the receiver.
func (p Post) clone() Post {
	p.hashtags = slices.Clone(p.hashtags)
	p.reviewComments = slices.Clone(p.reviewComments)
	p.comments = slices.Clone(p.comments)
	p.noices = slices.Clone(p.noices)
	return p
}

func (p Post) touched() Post {
	cp := p.clone()
	cp.updatedAt = time.Now().UTC()
	return cp
}

// WithTitle returns a copy with a new title.
func (p Post) WithTitle(title PostTitle) Post {
	cp := p.touched()
	cp.title = title
	return cp
}

// WithContent returns a copy with a new body.
func (p Post) WithContent(content PostContent) Post {
	cp := p.touched()
	cp.content = content
	return cp
}

// Update returns a copy with both title and body replaced.
func (p Post) Update(title PostTitle, content PostContent) Post {
	cp := p.touched()
	cp.title = title
	cp.content = content
	return cp
}

// WithReviewStatus returns a copy moved to the given moderation state.
func (p Post) WithReviewStatus(status ReviewStatus) Post {
	cp := p.touched()
	cp.reviewStatus = status
	return cp
}

// AddReviewComment validates content and returns a copy with the
// moderator comment appended.
func (p Post) AddReviewComment(content string, reviewerID UserID) (Post, error) {
	rc, err := NewReviewComment(content, reviewerID)
	if err != nil {
		return Post{}, err
	}
	cp := p.touched()
	cp.reviewComments = append(cp.reviewComments, rc)
	return cp, nil
}

// AddComment validates content and returns a copy with the reader
// comment appended.
func (p Post) AddComment(content string, authorID UserID) (Post, error) {
	c, err := NewComment(content, authorID)
	if err != nil {
		return Post{}, err
	}
	cp := p.touched()
	cp.comments = append(cp.comments, c)
	return cp, nil
}

// AddNoice returns a copy with the reaction appended to the top-level
// list. Group quota checks are the group's concern, not the post's; see
// PostGroup.CountNoicesByUser.
func (p Post) AddNoice(n Noice) Post {
	cp := p.touched()
	cp.noices = append(cp.noices, n)
	return cp
}

// RemoveNoice returns a copy with the identified top-level reaction
// removed. Removing an absent noice is a no-op.
func (p Post) RemoveNoice(id NoiceID) Post {
	cp := p.touched()
	cp.noices = slices.DeleteFunc(cp.noices, func(n Noice) bool { return n.id == id })
	return cp
}

// AddNoiceTo appends child to the reaction identified by parentID
// anywhere in the post's reaction tree and returns the updated copy.
func (p Post) AddNoiceTo(parentID NoiceID, child Noice) (Post, error) {
	cp := p.touched()
	updated, ok := addNoiceToTree(cp.noices, parentID, child)
	if !ok {
		return Post{}, ErrNoiceNotFound
	}
	cp.noices = updated
	return cp, nil
}

// addNoiceToTree rebuilds the branch containing parentID with child
// appended. Untouched siblings are shared, the mutated path is copied.
func addNoiceToTree(noices []Noice, parentID NoiceID, child Noice) ([]Noice, bool) {
	for i, n := range noices {
		if n.id == parentID {
			out := slices.Clone(noices)
			out[i] = n.AddNoice(child)
			return out, true
		}
		if nested, ok := addNoiceToTree(n.noices, parentID, child); ok {
			out := slices.Clone(noices)
			n.noices = nested
			out[i] = n
			return out, true
		}
	}
	return nil, false
}

// AddHashtag validates raw and returns a copy with the tag appended,
// skipping duplicates.
func (p Post) AddHashtag(raw string) (Post, error) {
	h, err := NewHashtag(raw)
	if err != nil {
		return Post{}, err
	}
	cp := p.touched()
	cp.hashtags = appendHashtag(cp.hashtags, h)
	return cp, nil
}

// RemoveHashtag validates raw and returns a copy with the tag removed.
func (p Post) RemoveHashtag(raw string) (Post, error) {
	h, err := NewHashtag(raw)
	if err != nil {
		return Post{}, err
	}
	cp := p.touched()
	cp.hashtags = slices.DeleteFunc(cp.hashtags, func(t Hashtag) bool { return t == h })
	return cp, nil
}

// ReplaceHashtags returns a copy with the tag list swapped for the given
// one, deduplicated by value.
func (p Post) ReplaceHashtags(tags []Hashtag) Post {
	cp := p.touched()
	cp.hashtags = nil
	for _, t := range tags {
		cp.hashtags = appendHashtag(cp.hashtags, t)
	}
	return cp
}
