package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

// CreateTitleInput is the write payload for a title.
type CreateTitleInput struct {
	Name         string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// UpdateTitleInput is a partial update; nil fields are left untouched.
// GenreSlugs replaces the whole association when present.
type UpdateTitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

type TitleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) *TitleService {
	return &TitleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *TitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *TitleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *TitleService) Create(ctx context.Context, input CreateTitleInput) (*models.Title, error) {
	if err := s.validateYear(input.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if input.CategorySlug != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return title, nil
}

func (s *TitleService) Update(ctx context.Context, id int64, input UpdateTitleInput) (*models.Title, error) {
	if err := s.validateYear(input.Year); err != nil {
		return nil, err
	}

	title, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *input.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	// every slug in the body must resolve before anything is written;
	// a patch never half-applies
	var genres []models.Genre
	if input.GenreSlugs != nil {
		genres, err = s.resolveGenres(ctx, input.GenreSlugs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if input.GenreSlugs != nil {
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	return title, nil
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

// validateYear rejects years after the current calendar year. There is
// no lower bound beyond what the column type holds.
func (s *TitleService) validateYear(year *int) error {
	if year != nil && *year > s.now().Year() {
		return ErrFutureYear
	}
	return nil
}

// resolveGenres maps slugs to genre rows; an unknown slug is a
// validation failure, not a silent skip. Repeated slugs count once.
func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}
