package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes; the group must carry
// OptionalAuth so reads stay public.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", h.Create)
	router.DELETE("/:slug", h.Delete)
}

// List returns categories, filterable by name prefix
// GET /api/v1/categories?search=fic
func (h *CategoryHandler) List(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	page, pageSize := parsePagination(c)
	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.CategoryListResponse{
		Data:       make([]dto.CategoryResponse, 0, len(categories)),
		Pagination: dto.NewPagination(total, page, pageSize),
	}
	for i := range categories {
		resp.Data = append(resp.Data, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCategoryResponse(category))
}

// Delete removes a category by slug; titles referencing it keep
// existing with a nulled category
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
