package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context, name string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func TestCreateGenre_SlugTaken(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	genreService := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Genre")).
		Return(repository.ErrDuplicate)

	genre, err := genreService.Create(context.Background(), "Fantasy", "fantasy")

	assert.Equal(t, ErrSlugInUse, err)
	assert.Nil(t, genre)
	mockGenreRepo.AssertExpectations(t)
}

func TestDeleteGenre_NotFound(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	genreService := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("DeleteBySlug", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := genreService.Delete(context.Background(), "ghost")

	assert.Equal(t, ErrGenreNotFound, err)
	mockGenreRepo.AssertExpectations(t)
}
