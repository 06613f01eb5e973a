package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses; everything else surfaces as a 500.
var (
	ErrNameInUse       = errors.New("username already in use")
	ErrEmailInUse      = errors.New("email already in use")
	ErrInvalidCode     = errors.New("invalid confirmation code")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidToken    = errors.New("invalid token")

	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	ErrSlugInUse    = errors.New("slug already in use")
	ErrReviewExists = errors.New("review by this author already exists for this title")
	ErrInvalidScore = errors.New("score must be between 1 and 10")
	ErrFutureYear   = errors.New("year must not exceed the current year")
)
