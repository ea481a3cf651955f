package domain

import "slices"

// PostGroup is a named, hierarchical container of posts. Each group caps
// how many noice reactions one user may place across its posts, and a
// child group's cap may never exceed its parent's.
type PostGroup struct {
	name       GroupName
	noiceLimit NoiceLimit
	posts      []Post
	children   []PostGroup
}

// NewPostGroup creates an empty group with the given per-user noice cap.
func NewPostGroup(name GroupName, limit NoiceLimit) PostGroup {
	return PostGroup{name: name, noiceLimit: limit}
}

func (g PostGroup) Name() GroupName        { return g.name }
func (g PostGroup) NoiceLimit() NoiceLimit { return g.noiceLimit }

// Posts returns a copy of the posts directly held by this group.
func (g PostGroup) Posts() []Post { return slices.Clone(g.posts) }

// Children returns a copy of the direct child groups.
func (g PostGroup) Children() []PostGroup { return slices.Clone(g.children) }

// PostCount returns how many posts the group directly holds.
func (g PostGroup) PostCount() int { return len(g.posts) }

// AddPost returns a copy of the group with the post appended.
func (g PostGroup) AddPost(p Post) PostGroup {
	posts := make([]Post, 0, len(g.posts)+1)
	posts = append(posts, g.posts...)
	posts = append(posts, p)
	g.posts = posts
	g.children = slices.Clone(g.children)
	return g
}

// AddChild attaches a subgroup. It fails with ErrChildLimitExceedsParent
// when the child's noice limit is higher than this group's. The rule is
// checked once at attach time; groups are immutable afterwards, so no
// retroactive re-check is needed.
func (g PostGroup) AddChild(child PostGroup) (PostGroup, error) {
	if child.noiceLimit.Value() > g.noiceLimit.Value() {
		return PostGroup{}, ErrChildLimitExceedsParent
	}
	children := make([]PostGroup, 0, len(g.children)+1)
	children = append(children, g.children...)
	children = append(children, child)
	g.children = children
	g.posts = slices.Clone(g.posts)
	return g, nil
}

// CountNoicesByUser counts the top-level noices userID has placed across
// the posts directly in this group. Child groups are not scanned; each
// level of the hierarchy enforces its own quota. Callers compare the
// count against NoiceLimit before adding a new noice.
func (g PostGroup) CountNoicesByUser(userID UserID) int {
	count := 0
	for _, p := range g.posts {
		for _, n := range p.noices {
			if n.IsFromUser(userID) {
				count++
			}
		}
	}
	return count
}
