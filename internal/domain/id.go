package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// uuidPattern matches UUID v4 strings.
var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func parseUUID(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid(field, "must not be empty")
	}
	if !uuidPattern.MatchString(strings.ToLower(trimmed)) {
		return "", invalid(field, "must be a UUID v4")
	}
	return trimmed, nil
}

// UserID identifies a user.
type UserID struct {
	value string
}

// NewUserID validates raw as a UUID v4 and returns a UserID.
func NewUserID(raw string) (UserID, error) {
	v, err := parseUUID("userId", raw)
	if err != nil {
		return UserID{}, err
	}
	return UserID{value: v}, nil
}

// MustUserID is like NewUserID but panics on invalid input.
func MustUserID(raw string) UserID {
	id, err := NewUserID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateUserID returns a fresh random UserID.
func GenerateUserID() UserID {
	return UserID{value: uuid.NewString()}
}

func (id UserID) String() string { return id.value }

// IsZero reports whether the id is the uninitialized zero value.
func (id UserID) IsZero() bool { return id.value == "" }

// PostID identifies a post.
type PostID struct {
	value string
}

// NewPostID validates raw as a UUID v4 and returns a PostID.
func NewPostID(raw string) (PostID, error) {
	v, err := parseUUID("postId", raw)
	if err != nil {
		return PostID{}, err
	}
	return PostID{value: v}, nil
}

// MustPostID is like NewPostID but panics on invalid input.
func MustPostID(raw string) PostID {
	id, err := NewPostID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// GeneratePostID returns a fresh random PostID.
func GeneratePostID() PostID {
	return PostID{value: uuid.NewString()}
}

func (id PostID) String() string { return id.value }

// IsZero reports whether the id is the uninitialized zero value.
func (id PostID) IsZero() bool { return id.value == "" }

// NoiceID identifies a single noice reaction.
type NoiceID struct {
	value string
}

// NewNoiceID validates raw as a UUID v4 and returns a NoiceID.
func NewNoiceID(raw string) (NoiceID, error) {
	v, err := parseUUID("noiceId", raw)
	if err != nil {
		return NoiceID{}, err
	}
	return NoiceID{value: v}, nil
}

// MustNoiceID is like NewNoiceID but panics on invalid input.
func MustNoiceID(raw string) NoiceID {
	id, err := NewNoiceID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateNoiceID returns a fresh random NoiceID.
func GenerateNoiceID() NoiceID {
	return NoiceID{value: uuid.NewString()}
}

func (id NoiceID) String() string { return id.value }
