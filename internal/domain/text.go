package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Username is a login name: 3-20 alphanumeric characters.
type Username struct {
	value string
}

// NewUsername validates and returns a Username. Input is trimmed first.
func NewUsername(raw string) (Username, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Username{}, invalid("username", "must not be empty")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < 3 || n > 20 {
		return Username{}, invalid("username", "must be 3-20 characters")
	}
	if !alphanumericPattern.MatchString(trimmed) {
		return Username{}, invalid("username", "must contain only alphanumeric characters")
	}
	return Username{value: trimmed}, nil
}

// MustUsername is like NewUsername but panics on invalid input.
func MustUsername(raw string) Username {
	u, err := NewUsername(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Username) String() string { return u.value }

// UserDisplayName is a user's presentation name: 1-100 characters.
type UserDisplayName struct {
	value string
}

// NewUserDisplayName validates and returns a UserDisplayName.
func NewUserDisplayName(raw string) (UserDisplayName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UserDisplayName{}, invalid("displayName", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		return UserDisplayName{}, invalid("displayName", "must be at most 100 characters")
	}
	return UserDisplayName{value: trimmed}, nil
}

// MustUserDisplayName is like NewUserDisplayName but panics on invalid input.
func MustUserDisplayName(raw string) UserDisplayName {
	d, err := NewUserDisplayName(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d UserDisplayName) String() string { return d.value }

// PostTitle is a post headline: 1-100 characters after trimming.
type PostTitle struct {
	value string
}

// NewPostTitle validates and returns a PostTitle.
func NewPostTitle(raw string) (PostTitle, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PostTitle{}, invalid("title", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		return PostTitle{}, invalid("title", "must be at most 100 characters")
	}
	return PostTitle{value: trimmed}, nil
}

// MustPostTitle is like NewPostTitle but panics on invalid input.
func MustPostTitle(raw string) PostTitle {
	t, err := NewPostTitle(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t PostTitle) String() string { return t.value }

// PostContent is a post body: 1-1000 characters after trimming.
type PostContent struct {
	value string
}

// NewPostContent validates and returns a PostContent.
func NewPostContent(raw string) (PostContent, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PostContent{}, invalid("content", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > 1000 {
		return PostContent{}, invalid("content", "must be at most 1000 characters")
	}
	return PostContent{value: trimmed}, nil
}

// MustPostContent is like NewPostContent but panics on invalid input.
func MustPostContent(raw string) PostContent {
	c, err := NewPostContent(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c PostContent) String() string { return c.value }
