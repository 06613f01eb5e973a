package dto

import "reviewhub/internal/api/models"

type CreateUserDTO struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Bio       string `json:"bio"`
	FirstName string `json:"first_name" binding:"max=30"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password,omitempty"`
}

type UpdateUserDTO struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Bio       *string `json:"bio"`
	FirstName *string `json:"first_name" binding:"omitempty,max=30"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

type UserListResponse struct {
	Data []UserResponse `json:"data"`
	Pagination
}
