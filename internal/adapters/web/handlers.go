// Package web serves the board as a JSON API over Fiber.
package web

import (
	"context"
	"errors"
	"time"

	"github.com/hckaye/noice-board/internal/adapters/scraper"
	"github.com/hckaye/noice-board/internal/domain"
	"github.com/hckaye/noice-board/internal/usecases"
	"github.com/hckaye/noice-board/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// syncTimeout bounds a single scrape-backed group sync.
const syncTimeout = 30 * time.Second

// Handlers contains the HTTP handlers for the board API.
type Handlers struct {
	board   *usecases.GetBoardUseCase
	create  *usecases.CreatePostUseCase
	give    *usecases.GiveNoiceUseCase
	react   *usecases.ReactToNoiceUseCase
	comment *usecases.CommentPostUseCase
	review  *usecases.ReviewPostUseCase
	profile *usecases.UpdateProfileUseCase
	sync    *usecases.SyncGroupUseCase // nil when no scraper is configured

	store   usecases.BoardStore
	limiter *RateLimiter
}

// NewHandlers creates a new Handlers instance. sync may be nil.
func NewHandlers(
	board *usecases.GetBoardUseCase,
	create *usecases.CreatePostUseCase,
	give *usecases.GiveNoiceUseCase,
	react *usecases.ReactToNoiceUseCase,
	comment *usecases.CommentPostUseCase,
	review *usecases.ReviewPostUseCase,
	profile *usecases.UpdateProfileUseCase,
	sync *usecases.SyncGroupUseCase,
	store usecases.BoardStore,
	limiter *RateLimiter,
) *Handlers {
	return &Handlers{
		board:   board,
		create:  create,
		give:    give,
		react:   react,
		comment: comment,
		review:  review,
		profile: profile,
		sync:    sync,
		store:   store,
		limiter: limiter,
	}
}

// fail maps domain and store failures onto HTTP status codes.
func fail(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Message,
			"field": verr.Field,
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecases.ErrNoiceLimitReached),
		errors.Is(err, domain.ErrInsufficientNoice),
		errors.Is(err, domain.ErrChildLimitExceedsParent):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrNoiceNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, scraper.ErrScrapeFailed), errors.Is(err, scraper.ErrPageEmpty):
		status = fiber.StatusBadGateway
	default:
		switch usecases.CodeOf(err) {
		case usecases.CodeNotFound:
			status = fiber.StatusNotFound
		case usecases.CodeInvalidData:
			status = fiber.StatusBadRequest
		case usecases.CodeNotImplemented:
			status = fiber.StatusNotImplemented
		}
	}

	if status == fiber.StatusInternalServerError {
		log.GlobalErrorCtx(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parsePostID(c *fiber.Ctx) (domain.PostID, error) {
	return domain.NewPostID(c.Params("id"))
}

// ListGroups serves the root groups with their nested children.
func (h *Handlers) ListGroups(c *fiber.Ctx) error {
	groups, err := h.board.ListGroups(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	out := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupDTO(g, ""))
	}
	return c.JSON(fiber.Map{"groups": out})
}

// GetGroup serves one group addressed by its slash path.
func (h *Handlers) GetGroup(c *fiber.Ctx) error {
	path, err := domain.NewPostGroupPath(c.Params("+"))
	if err != nil {
		return fail(c, err)
	}
	group, err := h.board.GetGroup(c.UserContext(), path)
	if err != nil {
		return fail(c, err)
	}
	parent := ""
	if segments := path.Segments(); len(segments) > 1 {
		parent = path.String()[:len(path.String())-len(segments[len(segments)-1])-1]
	}
	return c.JSON(toGroupDTO(group, parent))
}

// ListGroupPosts serves the posts filed under a group path, newest first.
func (h *Handlers) ListGroupPosts(c *fiber.Ctx) error {
	path, err := domain.NewPostGroupPath(c.Params("+"))
	if err != nil {
		return fail(c, err)
	}
	posts, err := h.board.ListPosts(c.UserContext(), path)
	if err != nil {
		return fail(c, err)
	}
	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return c.JSON(fiber.Map{"posts": out})
}

// SyncGroup re-reads a group from its external page. Rate limited per IP
// because each miss costs a browser tab.
func (h *Handlers) SyncGroup(c *fiber.Ctx) error {
	if h.sync == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "no scraper backend configured",
		})
	}
	if !h.limiter.Allow(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many sync requests, slow down",
		})
	}

	path, err := domain.NewPostGroupPath(c.Params("+"))
	if err != nil {
		return fail(c, err)
	}

	h.limiter.Record(c.IP())
	ctx, cancel := context.WithTimeout(c.UserContext(), syncTimeout)
	defer cancel()

	group, err := h.sync.Execute(ctx, path)
	if err != nil {
		return fail(c, err)
	}
	parent := ""
	if segments := path.Segments(); len(segments) > 1 {
		parent = path.String()[:len(path.String())-len(segments[len(segments)-1])-1]
	}
	return c.JSON(toGroupDTO(group, parent))
}

type createPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	AuthorID  string   `json:"authorId"`
	GroupPath string   `json:"groupPath"`
	Hashtags  []string `json:"hashtags"`
}

// CreatePost files a new post.
func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	authorID, err := domain.NewUserID(req.AuthorID)
	if err != nil {
		return fail(c, err)
	}

	post, err := h.create.Execute(c.UserContext(), usecases.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		GroupPath: req.GroupPath,
		Hashtags:  req.Hashtags,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostDTO(post))
}

// GetPost serves one post by id.
func (h *Handlers) GetPost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	post, err := h.board.GetPost(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toPostDTO(post))
}

type updatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePost replaces a post's title and content.
func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	title, err := domain.NewPostTitle(req.Title)
	if err != nil {
		return fail(c, err)
	}
	content, err := domain.NewPostContent(req.Content)
	if err != nil {
		return fail(c, err)
	}

	post, err := h.board.GetPost(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	updated := post.Update(title, content)
	if err := h.store.UpdatePost(c.UserContext(), updated); err != nil {
		return fail(c, err)
	}
	return c.JSON(toPostDTO(updated))
}

// DeletePost removes a post.
func (h *Handlers) DeletePost(c *fiber.Ctx) error {
	id, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.store.DeletePost(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type giveNoiceRequest struct {
	UserID   string `json:"userId"`
	Amount   int    `json:"amount"`
	Comment  string `json:"comment"`
	ParentID string `json:"parentNoiceId"`
}

// GiveNoice places a noice on a post, or on another noice when
// parentNoiceId is set.
func (h *Handlers) GiveNoice(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	var req giveNoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	userID, err := domain.NewUserID(req.UserID)
	if err != nil {
		return fail(c, err)
	}
	amount, err := domain.NewNoiceAmount(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	var post domain.Post
	if req.ParentID != "" {
		parentID, err := domain.NewNoiceID(req.ParentID)
		if err != nil {
			return fail(c, err)
		}
		post, err = h.react.Execute(c.UserContext(), usecases.ReactToNoiceInput{
			PostID:   postID,
			ParentID: parentID,
			UserID:   userID,
			Amount:   amount,
			Comment:  req.Comment,
		})
		if err != nil {
			return fail(c, err)
		}
	} else {
		post, err = h.give.Execute(c.UserContext(), usecases.GiveNoiceInput{
			PostID:  postID,
			UserID:  userID,
			Amount:  amount,
			Comment: req.Comment,
		})
		if err != nil {
			return fail(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toPostDTO(post))
}

// RemoveNoice withdraws the caller's most recent noice from a post. The
// user is named by the userId query parameter.
func (h *Handlers) RemoveNoice(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	userID, err := domain.NewUserID(c.Query("userId"))
	if err != nil {
		return fail(c, err)
	}
	if err := h.store.RemoveNoice(c.UserContext(), postID, userID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NoiceCount serves the number of top-level noices on a post.
func (h *Handlers) NoiceCount(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	count, err := h.store.NoiceCount(c.UserContext(), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

type commentRequest struct {
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}

// CommentPost appends a comment to a post.
func (h *Handlers) CommentPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	authorID, err := domain.NewUserID(req.AuthorID)
	if err != nil {
		return fail(c, err)
	}
	post, err := h.comment.Execute(c.UserContext(), postID, authorID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostDTO(post))
}

type reviewRequest struct {
	ReviewerID string `json:"reviewerId"`
	Status     string `json:"status"`
	Comment    string `json:"comment"`
}

// ReviewPost applies a review verdict and/or comment to a post.
func (h *Handlers) ReviewPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return fail(c, err)
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	reviewerID, err := domain.NewUserID(req.ReviewerID)
	if err != nil {
		return fail(c, err)
	}
	post, err := h.review.Execute(c.UserContext(), usecases.ReviewPostInput{
		PostID:     postID,
		ReviewerID: reviewerID,
		Status:     req.Status,
		Comment:    req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toPostDTO(post))
}

// userRegistry is the optional account-creation surface. Read-only
// backends do not implement it.
type userRegistry interface {
	CreateUser(ctx context.Context, user domain.User) error
}

type registerUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// RegisterUser creates an account on backends that support it.
func (h *Handlers) RegisterUser(c *fiber.Ctx) error {
	registry, ok := h.store.(userRegistry)
	if !ok {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "this backend does not support account registration",
		})
	}
	var req registerUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	username, err := domain.NewUsername(req.Username)
	if err != nil {
		return fail(c, err)
	}
	displayName, err := domain.NewUserDisplayName(req.DisplayName)
	if err != nil {
		return fail(c, err)
	}

	user := domain.NewUser(username, displayName)
	if err := registry.CreateUser(c.UserContext(), user); err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserDTO(user))
}

// ListUsers serves every known user.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return c.JSON(fiber.Map{"users": out})
}

// GetUser serves one user by id.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id, err := domain.NewUserID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	user, err := h.store.GetUser(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toUserDTO(user))
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
}

// UpdateProfile changes a user's display name.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	id, err := domain.NewUserID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, domain.NewValidationError("body", "must be valid JSON"))
	}
	user, err := h.profile.Execute(c.UserContext(), id, req.DisplayName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toUserDTO(user))
}
