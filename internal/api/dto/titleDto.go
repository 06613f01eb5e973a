package dto

import "reviewhub/internal/api/models"

type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Year        *int     `json:"year"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

type UpdateTitleDTO struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Year        *int     `json:"year"`
	Description *string  `json:"description" binding:"omitempty,max=200"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleResponse carries the live rating: null with zero reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

func FromModelToTitleResponse(t *models.Title) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	if t.Category != nil {
		resp.Category = FromModelToCategoryResponse(t.Category)
	}
	for i := range t.Genres {
		resp.Genre = append(resp.Genre, *FromModelToGenreResponse(&t.Genres[i]))
	}
	return resp
}

type TitleListResponse struct {
	Data []TitleResponse `json:"data"`
	Pagination
}
