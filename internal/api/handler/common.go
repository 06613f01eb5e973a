package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// authorize runs a policy predicate for the current request. Anonymous
// denials are 401, authenticated ones 403.
func authorize(c *gin.Context, allowed func(policy.Actor, string) bool) (policy.Actor, bool) {
	actor := middleware.ActorFromContext(c)
	if allowed(actor, c.Request.Method) {
		return actor, true
	}
	if !actor.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	}
	c.Abort()
	return actor, false
}

// forbid writes the object-level denial.
func forbid(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
}

// respondServiceError maps service sentinels onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrSlugInUse),
		errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrFutureYear),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
