package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService *service.TitleService
}

func NewTitleHandler(titleService *service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", h.Create)
	router.GET("/:title_id", h.Get)
	router.PATCH("/:title_id", h.Patch)
	router.DELETE("/:title_id", h.Delete)
}

// List returns titles with computed ratings, filterable by category,
// genre, name and year
// GET /api/v1/titles?category=books&genre=fantasy&name=ring&year=1954
func (h *TitleHandler) List(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	page, pageSize := parsePagination(c)
	titles, total, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.TitleListResponse{
		Data:       make([]dto.TitleResponse, 0, len(titles)),
		Pagination: dto.NewPagination(total, page, pageSize),
	}
	for i := range titles {
		resp.Data = append(resp.Data, *dto.FromModelToTitleResponse(&titles[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single title with its computed rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// Create adds a title; a year past the current one is rejected
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), service.CreateTitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		respondTitleWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(title))
}

// Patch partially updates a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Patch(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, service.UpdateTitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		respondTitleWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

// Delete removes a title; its reviews cascade away
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	if _, ok := authorize(c, policy.CatalogAccess); !ok {
		return
	}

	id, ok := parseIDParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondTitleWriteError treats unknown category/genre slugs in the
// request body as validation failures, not missing resources.
func respondTitleWriteError(c *gin.Context, err error) {
	switch err {
	case service.ErrCategoryNotFound, service.ErrGenreNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		respondServiceError(c, err)
	}
}
