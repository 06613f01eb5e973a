package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService *service.GenreService
}

func NewGenreHandler(genreService *service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", h.Create)
	router.DELETE("/:slug", h.Delete)
}

// List returns genres, filterable by exact name
// GET /api/v1/genres?name=Fantasy
func (h *GenreHandler) List(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	page, pageSize := parsePagination(c)
	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("name"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.GenreListResponse{
		Data:       make([]dto.GenreResponse, 0, len(genres)),
		Pagination: dto.NewPagination(total, page, pageSize),
	}
	for i := range genres {
		resp.Data = append(resp.Data, *dto.FromModelToGenreResponse(&genres[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGenreResponse(genre))
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
