package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type GenreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) *GenreService {
	return &GenreService{repo: repo}
}

func (s *GenreService) List(ctx context.Context, name string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, name, page, pageSize)
}

func (s *GenreService) Create(ctx context.Context, name, slug string) (*models.Genre, error) {
	g := &models.Genre{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	return g, nil
}

func (s *GenreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
