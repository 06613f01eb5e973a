package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testTitleService(titleRepo *MockTitleRepository) *TitleService {
	return &TitleService{
		titleRepo: titleRepo,
		now: func() time.Time {
			return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		},
	}
}

func testTitleServiceWithLookups(titleRepo *MockTitleRepository, categoryRepo *MockCategoryRepository, genreRepo *MockGenreRepository) *TitleService {
	s := testTitleService(titleRepo)
	s.categoryRepo = categoryRepo
	s.genreRepo = genreRepo
	return s
}

func TestCreateTitle_Success(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Return(nil)

	year := 1954
	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name: "The Lord of the Rings",
		Year: &year,
	})

	assert.NoError(t, err)
	assert.Equal(t, "The Lord of the Rings", title.Name)
	assert.Equal(t, 1954, *title.Year)
	mockTitleRepo.AssertExpectations(t)
}

func TestCreateTitle_FutureYear(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	year := 2026
	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name: "Not Yet Released",
		Year: &year,
	})

	assert.Equal(t, ErrFutureYear, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_CurrentYearAllowed(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Return(nil)

	year := 2025
	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name: "Fresh Release",
		Year: &year,
	})

	assert.NoError(t, err)
	assert.NotNil(t, title)
	mockTitleRepo.AssertExpectations(t)
}

func TestCreateTitle_UnknownCategorySlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	mockCategoryRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	slug := "ghost"
	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name:         "Orphaned",
		CategorySlug: &slug,
	})

	assert.Equal(t, ErrCategoryNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownGenreSlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	mockGenreRepo.On("GetBySlugs", mock.Anything, []string{"fantasy", "ghost"}).
		Return([]models.Genre{{ID: 1, Name: "Fantasy", Slug: "fantasy"}}, nil)

	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name:       "Half Tagged",
		GenreSlugs: []string{"fantasy", "ghost"},
	})

	assert.Equal(t, ErrGenreNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_RepeatedGenreSlugs(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	mockGenreRepo.On("GetBySlugs", mock.Anything, []string{"fantasy"}).
		Return([]models.Genre{{ID: 1, Name: "Fantasy", Slug: "fantasy"}}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Return(nil)

	title, err := titleService.Create(context.Background(), CreateTitleInput{
		Name:       "Double Tagged",
		GenreSlugs: []string{"fantasy", "fantasy"},
	})

	assert.NoError(t, err)
	assert.Len(t, title.Genres, 1)
	mockGenreRepo.AssertExpectations(t)
	mockTitleRepo.AssertExpectations(t)
}

func TestGetTitle_NotFound(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	title, err := titleService.GetByID(context.Background(), 42)

	assert.Equal(t, ErrTitleNotFound, err)
	assert.Nil(t, title)
}

func TestUpdateTitle_FutureYear(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	year := 3000
	title, err := titleService.Update(context.Background(), 1, UpdateTitleInput{Year: &year})

	assert.Equal(t, ErrFutureYear, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateTitle_PartialFields(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	oldYear := 1954
	existing := &models.Title{ID: 1, Name: "Old Name", Year: &oldYear}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	mockTitleRepo.On("Update", mock.Anything, existing).Return(nil)

	newName := "New Name"
	title, err := titleService.Update(context.Background(), 1, UpdateTitleInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", title.Name)
	assert.Equal(t, 1954, *title.Year)
	mockTitleRepo.AssertExpectations(t)
}

func TestUpdateTitle_UnknownGenreSlugWritesNothing(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	existing := &models.Title{ID: 1, Name: "Old Name"}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	mockGenreRepo.On("GetBySlugs", mock.Anything, []string{"ghost"}).
		Return([]models.Genre{}, nil)

	newName := "New Name"
	title, err := titleService.Update(context.Background(), 1, UpdateTitleInput{
		Name:       &newName,
		GenreSlugs: []string{"ghost"},
	})

	assert.Equal(t, ErrGenreNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockTitleRepo.AssertNotCalled(t, "ReplaceGenres", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitle_UnknownCategorySlugWritesNothing(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	existing := &models.Title{ID: 1, Name: "Old Name"}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	mockCategoryRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	slug := "ghost"
	title, err := titleService.Update(context.Background(), 1, UpdateTitleInput{CategorySlug: &slug})

	assert.Equal(t, ErrCategoryNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateTitle_ReplacesGenres(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	titleService := testTitleServiceWithLookups(mockTitleRepo, mockCategoryRepo, mockGenreRepo)

	existing := &models.Title{ID: 1, Name: "Old Name", Genres: []models.Genre{{ID: 9, Slug: "horror"}}}
	fantasy := []models.Genre{{ID: 1, Name: "Fantasy", Slug: "fantasy"}}
	mockTitleRepo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	mockGenreRepo.On("GetBySlugs", mock.Anything, []string{"fantasy"}).Return(fantasy, nil)
	mockTitleRepo.On("Update", mock.Anything, existing).Return(nil)
	mockTitleRepo.On("ReplaceGenres", mock.Anything, existing, fantasy).Return(nil)

	title, err := titleService.Update(context.Background(), 1, UpdateTitleInput{
		GenreSlugs: []string{"fantasy"},
	})

	assert.NoError(t, err)
	assert.Equal(t, fantasy, title.Genres)
	mockTitleRepo.AssertExpectations(t)
	mockGenreRepo.AssertExpectations(t)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	titleService := testTitleService(mockTitleRepo)

	mockTitleRepo.On("Delete", mock.Anything, int64(42)).Return(gorm.ErrRecordNotFound)

	err := titleService.Delete(context.Background(), 42)

	assert.Equal(t, ErrTitleNotFound, err)
	mockTitleRepo.AssertExpectations(t)
}
