// Package usecases orchestrates the domain core against the board store
// port. Each use case is a small struct with an Execute method; ports are
// declared here as the interfaces the use cases need.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/hckaye/noice-board/internal/domain"
)

// Store error codes. Every adapter failure carries exactly one of these.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidData    = "INVALID_DATA"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeUnexpected     = "UNEXPECTED_ERROR"
)

// StoreError is the failure shape of every BoardStore call.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound builds a NOT_FOUND store error.
func NotFound(format string, args ...any) *StoreError {
	return &StoreError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidData builds an INVALID_DATA store error.
func InvalidData(format string, args ...any) *StoreError {
	return &StoreError{Code: CodeInvalidData, Message: fmt.Sprintf(format, args...)}
}

// NotImplemented builds a NOT_IMPLEMENTED store error.
func NotImplemented(operation string) *StoreError {
	return &StoreError{Code: CodeNotImplemented, Message: operation + " is not supported by this backend"}
}

// Unexpected builds an UNEXPECTED_ERROR store error.
func Unexpected(err error) *StoreError {
	return &StoreError{Code: CodeUnexpected, Message: err.Error()}
}

// CodeOf extracts the store error code from err, or CodeUnexpected when
// err is not a StoreError.
func CodeOf(err error) string {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUnexpected
}

// BoardStore is the single port through which the core reaches external
// data sources: the in-memory mock store, the Jira reader, or anything
// else that can produce valid domain entities.
type BoardStore interface {
	GetPostGroup(ctx context.Context, path domain.PostGroupPath) (domain.PostGroup, error)
	ListPostGroups(ctx context.Context) ([]domain.PostGroup, error)

	GetPost(ctx context.Context, id domain.PostID) (domain.Post, error)
	ListPosts(ctx context.Context, groupPath domain.PostGroupPath) ([]domain.Post, error)
	CreatePost(ctx context.Context, post domain.Post) error
	UpdatePost(ctx context.Context, post domain.Post) error
	DeletePost(ctx context.Context, id domain.PostID) error

	AddNoice(ctx context.Context, postID domain.PostID, userID domain.UserID) error
	RemoveNoice(ctx context.Context, postID domain.PostID, userID domain.UserID) error
	NoiceCount(ctx context.Context, postID domain.PostID) (int, error)

	GetUser(ctx context.Context, id domain.UserID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	UpdateUser(ctx context.Context, user domain.User) error
}
