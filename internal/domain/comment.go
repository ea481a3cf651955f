package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Comment is a reader's note on a post: 1-1000 characters, immutable once
// created.
type Comment struct {
	id        string
	content   string
	authorID  UserID
	createdAt time.Time
}

// NewComment validates content and returns a Comment stamped with the
// current time.
func NewComment(content string, authorID UserID) (Comment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Comment{}, invalid("comment", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 1000 {
		return Comment{}, invalid("comment", "must be at most 1000 characters")
	}
	return Comment{
		id:        uuid.NewString(),
		content:   trimmed,
		authorID:  authorID,
		createdAt: time.Now().UTC(),
	}, nil
}

func (c Comment) ID() string           { return c.id }
func (c Comment) Content() string      { return c.content }
func (c Comment) AuthorID() UserID     { return c.authorID }
func (c Comment) CreatedAt() time.Time { return c.createdAt }
