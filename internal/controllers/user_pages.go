package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/franciscosanchezn/gin-user-directory/internal/services"
	"github.com/gin-gonic/gin"
)

// UserPagesController serves the server-rendered user pages
type UserPagesController interface {
	// Index lists every user, newest first
	Index(c *gin.Context)
	// Details shows one user
	Details(c *gin.Context)
	// CreateForm shows an empty create form
	CreateForm(c *gin.Context)
	// Create handles the posted create form
	Create(c *gin.Context)
	// DeleteConfirm asks for confirmation before deleting
	DeleteConfirm(c *gin.Context)
	// Delete removes a user and returns to the list
	Delete(c *gin.Context)
}

type userPagesController struct {
	service services.UserService
}

// NewUserPagesController creates a new instance of UserPagesController
func NewUserPagesController(service services.UserService) UserPagesController {
	return &userPagesController{service: service}
}

type createUserForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

func (p *userPagesController) Index(c *gin.Context) {
	users, err := p.service.GetAllUsers(c.Request.Context())
	if err != nil {
		renderStoreFailure(c, "list users", err)
		return
	}
	renderPage(c, http.StatusOK, "users_index.html", "Users", gin.H{"Users": users})
}

func (p *userPagesController) Details(c *gin.Context) {
	user, ok := p.loadUser(c)
	if !ok {
		return
	}
	renderPage(c, http.StatusOK, "users_details.html", "Details", gin.H{"User": user})
}

func (p *userPagesController) CreateForm(c *gin.Context) {
	renderPage(c, http.StatusOK, "users_create.html", "Create User", gin.H{
		"Form":   createUserForm{},
		"Errors": map[string][]string{},
	})
}

func (p *userPagesController) Create(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission")
		return
	}

	_, err := p.service.CreateUser(c.Request.Context(), models.User{Name: form.Name, Email: form.Email})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			renderPage(c, http.StatusUnprocessableEntity, "users_create.html", "Create User", gin.H{
				"Form":   form,
				"Errors": verr.ByField(),
			})
			return
		}
		renderStoreFailure(c, "create user", err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users")
}

func (p *userPagesController) DeleteConfirm(c *gin.Context) {
	user, ok := p.loadUser(c)
	if !ok {
		return
	}
	renderPage(c, http.StatusOK, "users_delete.html", "Delete", gin.H{"User": user})
}

// Delete does not report unknown ids: deleting is idempotent.
func (p *userPagesController) Delete(c *gin.Context) {
	id := parseOptionalID(c.Query("id"))
	if err := p.service.DeleteUser(c.Request.Context(), id); err != nil {
		renderStoreFailure(c, "delete user", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/users")
}

// loadUser resolves the ?id= query for the read-only pages, rendering 404 when
// the id is absent or unknown.
func (p *userPagesController) loadUser(c *gin.Context) (models.User, bool) {
	user, err := p.service.GetUserByID(c.Request.Context(), parseOptionalID(c.Query("id")))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			renderNotFound(c, "The requested user does not exist.")
			return models.User{}, false
		}
		renderStoreFailure(c, "get user", err)
		return models.User{}, false
	}
	return user, true
}
