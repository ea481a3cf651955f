package web

import (
	"time"

	"github.com/hckaye/noice-board/internal/domain"
)

// JSON shapes served by the API. Built from domain accessors only.

type userDTO struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	NoiceAmount int       `json:"noiceAmount"`
	RupeeAmount int       `json:"rupeeAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type noiceDTO struct {
	ID          string     `json:"id"`
	FromUserID  string     `json:"fromUserId"`
	Amount      int        `json:"amount"`
	Comment     string     `json:"comment,omitempty"`
	TotalAmount int        `json:"totalAmount"`
	Noices      []noiceDTO `json:"noices,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type commentDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type reviewCommentDTO struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	ReviewerID string    `json:"reviewerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type postDTO struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Content          string             `json:"content"`
	AuthorID         string             `json:"authorId"`
	GroupPath        string             `json:"groupPath"`
	Hashtags         []string           `json:"hashtags"`
	ReviewStatus     string             `json:"reviewStatus"`
	TotalNoiceAmount int                `json:"totalNoiceAmount"`
	Noices           []noiceDTO         `json:"noices"`
	Comments         []commentDTO       `json:"comments"`
	ReviewComments   []reviewCommentDTO `json:"reviewComments"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

type groupDTO struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	NoiceLimit int        `json:"noiceLimit"`
	Posts      []postDTO  `json:"posts"`
	Children   []groupDTO `json:"children"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{
		ID:          u.ID().String(),
		Username:    u.Username().String(),
		DisplayName: u.DisplayName().String(),
		NoiceAmount: u.NoiceAmount().Value(),
		RupeeAmount: u.RupeeAmount().Value(),
		CreatedAt:   u.CreatedAt(),
	}
}

func toNoiceDTO(n domain.Noice) noiceDTO {
	children := n.Noices()
	nested := make([]noiceDTO, 0, len(children))
	for _, child := range children {
		nested = append(nested, toNoiceDTO(child))
	}
	return noiceDTO{
		ID:          n.ID().String(),
		FromUserID:  n.FromUserID().String(),
		Amount:      n.Amount().Value(),
		Comment:     n.Comment(),
		TotalAmount: n.TotalAmount(),
		Noices:      nested,
		CreatedAt:   n.CreatedAt(),
	}
}

func toPostDTO(p domain.Post) postDTO {
	hashtags := make([]string, 0, len(p.Hashtags()))
	for _, h := range p.Hashtags() {
		hashtags = append(hashtags, h.String())
	}
	noices := make([]noiceDTO, 0, p.NoiceCount())
	for _, n := range p.Noices() {
		noices = append(noices, toNoiceDTO(n))
	}
	comments := make([]commentDTO, 0, p.CommentCount())
	for _, c := range p.Comments() {
		comments = append(comments, commentDTO{
			ID:        c.ID(),
			Content:   c.Content(),
			AuthorID:  c.AuthorID().String(),
			CreatedAt: c.CreatedAt(),
		})
	}
	reviews := make([]reviewCommentDTO, 0, len(p.ReviewComments()))
	for _, rc := range p.ReviewComments() {
		reviews = append(reviews, reviewCommentDTO{
			ID:         rc.ID(),
			Content:    rc.Content(),
			ReviewerID: rc.ReviewerID().String(),
			CreatedAt:  rc.CreatedAt(),
		})
	}
	return postDTO{
		ID:               p.ID().String(),
		Title:            p.Title().String(),
		Content:          p.Content().String(),
		AuthorID:         p.AuthorID().String(),
		GroupPath:        p.GroupPath().String(),
		Hashtags:         hashtags,
		ReviewStatus:     p.ReviewStatus().String(),
		TotalNoiceAmount: p.TotalNoiceAmount(),
		Noices:           noices,
		Comments:         comments,
		ReviewComments:   reviews,
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

// toGroupDTO renders a group under its parent path; the path field is
// reconstructed on the way down because groups only know their own name.
func toGroupDTO(g domain.PostGroup, parentPath string) groupDTO {
	path := g.Name().String()
	if parentPath != "" {
		path = parentPath + "/" + path
	}

	posts := make([]postDTO, 0, g.PostCount())
	for _, p := range g.Posts() {
		posts = append(posts, toPostDTO(p))
	}
	children := make([]groupDTO, 0, len(g.Children()))
	for _, child := range g.Children() {
		children = append(children, toGroupDTO(child, path))
	}
	return groupDTO{
		Name:       g.Name().String(),
		Path:       path,
		NoiceLimit: g.NoiceLimit().Value(),
		Posts:      posts,
		Children:   children,
	}
}
