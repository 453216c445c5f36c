package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/franciscosanchezn/gin-user-directory/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController handles JSON API requests related to users
type UserController interface {
	// GetAllUsers retrieves all users
	GetAllUsers(c *gin.Context)
	// GetUserByID retrieves a user by its ID
	GetUserByID(c *gin.Context)
	// CreateUser creates a new user
	CreateUser(c *gin.Context)
	// DeleteUser deletes a user by its ID
	DeleteUser(c *gin.Context)
}

type controller struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) UserController {
	return &controller{service: service}
}

// CreateUserRequest is the body accepted by CreateUser
type CreateUserRequest struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}

// GetAllUsers godoc
// @Summary Get all users
// @Description Get every user, most recently created first
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {array} models.User
// @Failure 503 {object} models.APIError
// @Router /api/v1/users [get]
func (c *controller) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers(ctx.Request.Context())
	if err != nil {
		respondStoreFailure(ctx, "list users", err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Description Get a single user by its ID
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 503 {object} models.APIError
// @Router /api/v1/users/{id} [get]
func (c *controller) GetUserByID(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	user, err := c.service.GetUserByID(ctx.Request.Context(), &id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
			return
		}
		respondStoreFailure(ctx, "get user", err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a new user
// @Description Create a user; the email must be unique (case-insensitive)
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 400 {object} models.APIError
// @Failure 401 {object} map[string]string
// @Failure 422 {object} models.APIError
// @Failure 503 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users [post]
func (c *controller) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	user, err := c.service.CreateUser(ctx.Request.Context(), models.User{Name: req.Name, Email: req.Email})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrValidationFailed,
				"User data is invalid", map[string]interface{}{"errors": verr.Errors}))
			return
		}
		respondStoreFailure(ctx, "create user", err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Delete a user by its ID; deleting an unknown ID succeeds
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 401 {object} map[string]string
// @Failure 503 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (c *controller) DeleteUser(ctx *gin.Context) {
	id, ok := parsePathID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteUser(ctx.Request.Context(), &id); err != nil {
		respondStoreFailure(ctx, "delete user", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parsePathID(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Params.Get("id")
	if !exists {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid user ID"))
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid user ID format"))
		return 0, false
	}
	return uint(id), true
}

func respondStoreFailure(ctx *gin.Context, op string, err error) {
	log.WithError(err).WithField("operation", op).Error("User store operation failed")
	if errors.Is(err, services.ErrStoreUnavailable) {
		ctx.JSON(http.StatusServiceUnavailable, models.NewAPIError(models.ErrServiceUnavailable, "User store unavailable"))
		return
	}
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected error"))
}
