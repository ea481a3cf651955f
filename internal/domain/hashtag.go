package domain

import (
	"regexp"
	"unicode/utf8"
)

// hashtagPattern: "#" followed by alphanumerics, hiragana, katakana,
// kanji, hyphens or underscores.
var hashtagPattern = regexp.MustCompile(`^#[a-zA-Z0-9\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}_-]+$`)

// Hashtag is a "#"-prefixed topic tag, at most 50 characters.
type Hashtag struct {
	value string
}

// NewHashtag validates and returns a Hashtag.
func NewHashtag(raw string) (Hashtag, error) {
	if raw == "" {
		return Hashtag{}, invalid("hashtag", "must not be empty")
	}
	if utf8.RuneCountInString(raw) > 50 {
		return Hashtag{}, invalid("hashtag", "must be at most 50 characters")
	}
	if !hashtagPattern.MatchString(raw) {
		return Hashtag{}, invalid("hashtag", "must start with # followed by alphanumerics, Japanese characters, hyphens or underscores")
	}
	return Hashtag{value: raw}, nil
}

// MustHashtag is like NewHashtag but panics on invalid input.
func MustHashtag(raw string) Hashtag {
	h, err := NewHashtag(raw)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hashtag) String() string { return h.value }

// NewHashtagList validates every raw tag and returns the deduplicated
// list, preserving first-seen order.
func NewHashtagList(raw []string) ([]Hashtag, error) {
	tags := make([]Hashtag, 0, len(raw))
	for _, r := range raw {
		h, err := NewHashtag(r)
		if err != nil {
			return nil, err
		}
		tags = appendHashtag(tags, h)
	}
	return tags, nil
}

// appendHashtag appends h unless it is already present.
func appendHashtag(tags []Hashtag, h Hashtag) []Hashtag {
	if containsHashtag(tags, h) {
		return tags
	}
	return append(tags, h)
}

func containsHashtag(tags []Hashtag, h Hashtag) bool {
	for _, t := range tags {
		if t == h {
			return true
		}
	}
	return false
}
