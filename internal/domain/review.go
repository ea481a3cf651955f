package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state of a post.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "PENDING"
	ReviewScheduled ReviewStatus = "SCHEDULED"
	ReviewAsIs      ReviewStatus = "AS_IS"
	ReviewCompleted ReviewStatus = "COMPLETED"
)

// ParseReviewStatus converts a raw string into a ReviewStatus, rejecting
// anything outside the closed set.
func ParseReviewStatus(raw string) (ReviewStatus, error) {
	s := ReviewStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", invalidf("reviewStatus", "unknown status %q", raw)
	}
	return s, nil
}

// Valid reports whether the status is one of the known values.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewScheduled, ReviewAsIs, ReviewCompleted:
		return true
	}
	return false
}

func (s ReviewStatus) String() string { return string(s) }

// ReviewComment is a moderator's note on a post: 1-500 characters,
// immutable once created.
type ReviewComment struct {
	id         string
	content    string
	reviewerID UserID
	createdAt  time.Time
}

// NewReviewComment validates content and returns a ReviewComment stamped
// with the current time.
func NewReviewComment(content string, reviewerID UserID) (ReviewComment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ReviewComment{}, invalid("reviewComment", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 500 {
		return ReviewComment{}, invalid("reviewComment", "must be at most 500 characters")
	}
	return ReviewComment{
		id:         uuid.NewString(),
		content:    trimmed,
		reviewerID: reviewerID,
		createdAt:  time.Now().UTC(),
	}, nil
}

func (c ReviewComment) ID() string           { return c.id }
func (c ReviewComment) Content() string      { return c.content }
func (c ReviewComment) ReviewerID() UserID   { return c.reviewerID }
func (c ReviewComment) CreatedAt() time.Time { return c.createdAt }
