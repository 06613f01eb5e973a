package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUserInput is the admin-side user creation payload.
type CreateUserInput struct {
	Username  string
	Email     string
	Role      string
	Bio       string
	FirstName string
	LastName  string
	// Password is optional; only admin-created accounts carry one
	Password string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email     *string
	Role      *string
	Bio       *string
	FirstName *string
	LastName  *string
}

type UserService interface {
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateByUsername(ctx context.Context, username string, input UpdateUserInput) (*models.User, error)
	DeleteByUsername(ctx context.Context, username string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateUserInput, allowRoleChange bool) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Username == "me" || !usernameRe.MatchString(input.Username) {
		return nil, ErrInvalidUsername
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		Bio:       input.Bio,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hashed)
		user.Password = &h
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, input, true)
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile patches the acting user's own record. Plain users
// cannot promote themselves: the role field only applies when the
// caller passed the admin object check.
func (s *userService) UpdateProfile(ctx context.Context, userID string, input UpdateUserInput, allowRoleChange bool) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, input, allowRoleChange)
}

func (s *userService) apply(ctx context.Context, user *models.User, input UpdateUserInput, allowRoleChange bool) (*models.User, error) {
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil && allowRoleChange {
		if !models.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		// email is the only unique column an update can touch
		if errors.Is(err, repository.ErrDuplicate) || errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}
