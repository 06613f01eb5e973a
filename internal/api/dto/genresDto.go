package dto

import "reviewhub/internal/api/models"

type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=100"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(g *models.Genre) *GenreResponse {
	return &GenreResponse{Name: g.Name, Slug: g.Slug}
}

type GenreListResponse struct {
	Data []GenreResponse `json:"data"`
	Pagination
}
