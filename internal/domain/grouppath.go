package domain

import (
	"strings"
	"unicode/utf8"
)

// DefaultGroupName is the group that posts land in when no group is given.
const DefaultGroupName = "general"

// GroupName is one segment of a group path: 1-50 characters, alphanumeric
// with single internal hyphens or underscores. Separators may not lead,
// trail, or repeat.
type GroupName struct {
	value string
}

// NewGroupName validates and returns a GroupName.
func NewGroupName(raw string) (GroupName, error) {
	if raw == "" {
		return GroupName{}, invalid("groupName", "must not be empty")
	}
	if utf8.RuneCountInString(raw) > 50 {
		return GroupName{}, invalid("groupName", "must be at most 50 characters")
	}
	if !validGroupName(raw) {
		return GroupName{}, invalid("groupName", "must be alphanumeric with single internal hyphens or underscores")
	}
	return GroupName{value: raw}, nil
}

// MustGroupName is like NewGroupName but panics on invalid input.
func MustGroupName(raw string) GroupName {
	n, err := NewGroupName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

func (n GroupName) String() string { return n.value }

func validGroupName(s string) bool {
	prevSep := false
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			prevSep = false
		case r == '-' || r == '_':
			// Separators must be internal and non-consecutive.
			if i == 0 || prevSep {
				return false
			}
			prevSep = true
		default:
			return false
		}
	}
	return !prevSep
}

// PostGroupPath locates a group in the hierarchy as slash-joined group
// names, e.g. "tech/frontend".
type PostGroupPath struct {
	value string
}

// NewPostGroupPath validates and returns a PostGroupPath. Every segment
// must be a valid GroupName; leading, trailing and doubled slashes are
// rejected.
func NewPostGroupPath(raw string) (PostGroupPath, error) {
	if raw == "" {
		return PostGroupPath{}, invalid("groupPath", "must not be empty")
	}
	if strings.HasPrefix(raw, "/") || strings.HasSuffix(raw, "/") {
		return PostGroupPath{}, invalid("groupPath", "must not start or end with a slash")
	}
	if strings.Contains(raw, "//") {
		return PostGroupPath{}, invalid("groupPath", "must not contain consecutive slashes")
	}
	for _, segment := range strings.Split(raw, "/") {
		if _, err := NewGroupName(segment); err != nil {
			return PostGroupPath{}, invalidf("groupPath", "segment %q is invalid", segment)
		}
	}
	return PostGroupPath{value: raw}, nil
}

// MustPostGroupPath is like NewPostGroupPath but panics on invalid input.
func MustPostGroupPath(raw string) PostGroupPath {
	p, err := NewPostGroupPath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPostGroupPath returns the path of the default group.
func DefaultPostGroupPath() PostGroupPath {
	return PostGroupPath{value: DefaultGroupName}
}

func (p PostGroupPath) String() string { return p.value }

// IsZero reports whether the path is the uninitialized zero value.
func (p PostGroupPath) IsZero() bool { return p.value == "" }

// Segments returns the path split into its group names.
func (p PostGroupPath) Segments() []string {
	return strings.Split(p.value, "/")
}

// Child returns the path extended by one group name.
func (p PostGroupPath) Child(name GroupName) PostGroupPath {
	return PostGroupPath{value: p.value + "/" + name.String()}
}

// Leaf returns the last group name in the path.
func (p PostGroupPath) Leaf() GroupName {
	segments := p.Segments()
	return GroupName{value: segments[len(segments)-1]}
}
