package dto

import "reviewhub/internal/api/models"

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=100"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) *CategoryResponse {
	return &CategoryResponse{Name: c.Name, Slug: c.Slug}
}

type CategoryListResponse struct {
	Data []CategoryResponse `json:"data"`
	Pagination
}
