package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/policy"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user administration and self-service
// routes; the group must carry RequireAuth.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Me)
	router.PATCH("/me", h.PatchMe)

	router.GET("", h.List)
	router.POST("", h.Create)
	router.GET("/:username", h.Get)
	router.PATCH("/:username", h.Patch)
	router.DELETE("/:username", h.Delete)
}

// Me returns the acting user's own profile
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := authorize(c, policy.ProfileAccess)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// PatchMe partially updates the acting user's own profile. The role
// field is ignored unless the actor is an admin.
// PATCH /api/v1/users/me
func (h *UserHandler) PatchMe(c *gin.Context) {
	actor, ok := authorize(c, policy.ProfileAccess)
	if !ok {
		return
	}
	if !policy.ProfileObjectAccess(actor, actor.ID) {
		forbid(c)
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor.ID, toUpdateUserInput(req), actor.IsAdmin())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// List returns all users
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	if _, ok := authorize(c, adminOnly); !ok {
		return
	}

	page, pageSize := parsePagination(c)
	users, total, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.UserListResponse{
		Data:       make([]dto.UserResponse, 0, len(users)),
		Pagination: dto.NewPagination(total, page, pageSize),
	}
	for i := range users {
		resp.Data = append(resp.Data, *dto.FromModelToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create adds a user record
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if _, ok := authorize(c, adminOnly); !ok {
		return
	}

	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), service.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Role:      req.Role,
		Bio:       req.Bio,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// Get returns a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	if _, ok := authorize(c, adminOnly); !ok {
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Patch partially updates a user by username
// PATCH /api/v1/users/:username
func (h *UserHandler) Patch(c *gin.Context) {
	actor, ok := authorize(c, adminOnly)
	if !ok {
		return
	}
	if !policy.UserAdminObjectAccess(actor) {
		forbid(c)
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateByUsername(c.Request.Context(), c.Param("username"), toUpdateUserInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// Delete removes a user by username
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := authorize(c, adminOnly)
	if !ok {
		return
	}
	if !policy.UserAdminObjectAccess(actor) {
		forbid(c)
		return
	}

	if err := h.userService.DeleteByUsername(c.Request.Context(), c.Param("username")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// adminOnly adapts UserAdminAccess to the authorize helper signature.
func adminOnly(actor policy.Actor, _ string) bool {
	return policy.UserAdminAccess(actor)
}

func toUpdateUserInput(req dto.UpdateUserDTO) service.UpdateUserInput {
	return service.UpdateUserInput{
		Email:     req.Email,
		Role:      req.Role,
		Bio:       req.Bio,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}
