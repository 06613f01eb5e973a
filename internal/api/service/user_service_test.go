package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestCreateUser_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Nil(t, user.Password)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_WithRoleAndPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     models.RoleModerator,
		Password: "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	assert.NotNil(t, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte("secret-password")))
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "testuser",
		Email:    "test@example.com",
		Role:     "owner",
	})

	assert.Equal(t, ErrInvalidRole, err)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_ReservedUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, ErrInvalidUsername, err)
	assert.Nil(t, user)
}

func TestCreateUser_Duplicate(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(repository.ErrDuplicate)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "taken",
		Email:    "taken@example.com",
	})

	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(repository.ErrDuplicateEmail)

	user, err := userService.Create(context.Background(), CreateUserInput{
		Username: "newuser",
		Email:    "taken@example.com",
	})

	assert.Equal(t, ErrEmailInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateProfile_RoleIgnoredForPlainUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(existing, nil)
	mockUserRepo.On("Update", mock.Anything, existing).Return(nil)

	adminRole := models.RoleAdmin
	bio := "about me"
	user, err := userService.UpdateProfile(context.Background(), "user-id", UpdateUserInput{
		Role: &adminRole,
		Bio:  &bio,
	}, false)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "about me", user.Bio)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateProfile_RoleAppliedForAdmin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(existing, nil)
	mockUserRepo.On("Update", mock.Anything, existing).Return(nil)

	modRole := models.RoleModerator
	user, err := userService.UpdateProfile(context.Background(), "user-id", UpdateUserInput{
		Role: &modRole,
	}, true)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUpdateByUsername_InvalidRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-id", Username: "testuser", Role: models.RoleUser}
	mockUserRepo.On("FindByUsername", mock.Anything, "testuser").Return(existing, nil)

	badRole := "root"
	user, err := userService.UpdateByUsername(context.Background(), "testuser", UpdateUserInput{
		Role: &badRole,
	})

	assert.Equal(t, ErrInvalidRole, err)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	existing := &models.User{ID: "user-id", Username: "testuser", Email: "old@example.com"}
	mockUserRepo.On("FindByID", mock.Anything, "user-id").Return(existing, nil)
	mockUserRepo.On("Update", mock.Anything, existing).Return(repository.ErrDuplicate)

	email := "taken@example.com"
	user, err := userService.UpdateProfile(context.Background(), "user-id", UpdateUserInput{
		Email: &email,
	}, false)

	assert.Equal(t, ErrEmailInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("DeleteByUsername", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	err := userService.DeleteByUsername(context.Background(), "ghost")

	assert.Equal(t, ErrUserNotFound, err)
	mockUserRepo.AssertExpectations(t)
}
