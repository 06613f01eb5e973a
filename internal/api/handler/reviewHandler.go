package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes nested under a title.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", h.Create)
		reviews.GET("/:review_id", h.Get)
		reviews.PATCH("/:review_id", h.Patch)
		reviews.DELETE("/:review_id", h.Delete)
	}
}

// List returns a title's reviews, most recent first
// GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	reviews, total, err := h.reviewService.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.ReviewListResponse{
		Data:       make([]dto.ReviewResponse, 0, len(reviews)),
		Pagination: dto.NewPagination(total, page, pageSize),
	}
	for i := range reviews {
		resp.Data = append(resp.Data, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single review
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

// Create posts a review as the acting user
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := authorize(c, policy.FeedbackAccess)
	if !ok {
		return
	}

	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), actor.ID, titleID, req.Text, req.Score)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

// Patch updates a review; only the author or staff may
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Patch(c *gin.Context) {
	actor, ok := authorize(c, policy.FeedbackAccess)
	if !ok {
		return
	}

	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !policy.FeedbackObjectAccess(actor, c.Request.Method, review.AuthorID) {
		forbid(c)
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, req.Text, req.Score)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(updated))
}

// Delete removes a review; only the author or staff may
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	actor, ok := authorize(c, policy.FeedbackAccess)
	if !ok {
		return
	}

	titleID, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !policy.FeedbackObjectAccess(actor, c.Request.Method, review.AuthorID) {
		forbid(c)
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
