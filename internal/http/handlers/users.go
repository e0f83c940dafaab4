package handlers

import (
	"net/http"

	"paperstore/internal/auth"
	"paperstore/internal/repo"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler handles staff user management endpoints
type UserHandler struct {
	userRepo        *repo.UserRepository
	authService     *auth.Service
	activityService *services.ActivityService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo *repo.UserRepository, authService *auth.Service, activityService *services.ActivityService) *UserHandler {
	return &UserHandler{
		userRepo:        userRepo,
		authService:     authService,
		activityService: activityService,
	}
}

// List godoc
// @Summary List staff users
// @Description List staff users with pagination
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	users, total, err := h.userRepo.List(limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list users"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  users,
		"total": total,
	})
}

// GetByID godoc
// @Summary Get staff user
// @Description Get a staff user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	user, err := h.userRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create staff user
// @Description Create a new staff user with a role
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	hashed, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: true,
	}
	if err := h.userRepo.Create(user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to create user"})
	}

	h.activityService.Record(staffActor(c), models.ActionCreated, "user", &user.ID, user.Email)

	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update staff user
// @Description Update a staff user's details, role and active flag
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.User true "User data"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	user, err := h.userRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	var req struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone"`
		Role     string `json:"role" validate:"required,oneof=super_admin admin finance"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role
	user.IsActive = req.IsActive

	if err := h.userRepo.Update(user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to update user"})
	}

	h.activityService.Record(staffActor(c), models.ActionUpdated, "user", &user.ID, user.Email)

	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete staff user
// @Description Soft-delete a staff user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	if self, ok := c.Get("user_id").(uuid.UUID); ok && self == id {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot delete your own account"})
	}

	if err := h.userRepo.Delete(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to delete user"})
	}

	h.activityService.Record(staffActor(c), models.ActionDeleted, "user", &id, "")

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}
