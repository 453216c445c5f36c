package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/middleware"
	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/franciscosanchezn/gin-user-directory/internal/services"
	"github.com/franciscosanchezn/gin-user-directory/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test-identity-secret-32-characters")

const testCookieName = "directory_identity"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	user := models.User{Name: name, Email: email, CreatedAt: time.Now().UTC(), IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// newTestRouter mounts every handler the way the application does.
func newTestRouter(t *testing.T, service services.UserService, devLogin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	templates, err := web.Templates()
	require.NoError(t, err)
	router.SetHTMLTemplate(templates)

	pagesController := NewUserPagesController(service)
	apiController := NewUserController(service)
	account := NewAccountController(AccountOptions{
		TokenSecret:     string(testSecret),
		CookieName:      testCookieName,
		DevLoginEnabled: devLogin,
	})

	pages := router.Group("/")
	pages.Use(middleware.CookieIdentity(testSecret, testCookieName))
	{
		pages.GET("/", Home)
		pages.GET("/users", pagesController.Index)
		pages.GET("/users/details", pagesController.Details)
		pages.GET("/users/create", pagesController.CreateForm)
		pages.POST("/users/create", pagesController.Create)
		pages.GET("/users/delete", pagesController.DeleteConfirm)
		pages.POST("/users/delete", pagesController.Delete)
		pages.GET("/account/login", account.Login)
		pages.POST("/account/dev-login", account.DevLogin)
		pages.POST("/account/logout", account.Logout)
		pages.GET("/account/profile", middleware.RequireIdentity("/account/login"), account.Profile)
	}

	v1 := router.Group("/api/v1")
	v1.GET("/users", apiController.GetAllUsers)
	v1.GET("/users/:id", apiController.GetUserByID)
	protected := v1.Group("", middleware.BearerAuth(testSecret))
	protected.POST("/users", apiController.CreateUser)
	protected.DELETE("/users/:id", apiController.DeleteUser)

	return router
}

func signTestToken(t *testing.T, claims models.Claims) string {
	token, err := middleware.SignIdentityToken(testSecret, claims, time.Hour)
	require.NoError(t, err)
	return token
}

func postForm(router http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// failingUserService reports err from every operation.
type failingUserService struct {
	err error
}

func (s failingUserService) GetAllUsers(context.Context) ([]models.User, error) {
	return nil, s.err
}

func (s failingUserService) GetUserByID(context.Context, *uint) (models.User, error) {
	return models.User{}, s.err
}

func (s failingUserService) CreateUser(context.Context, models.User) (models.User, error) {
	return models.User{}, s.err
}

func (s failingUserService) DeleteUser(context.Context, *uint) error {
	return s.err
}

// fakePinger implements Pinger.
type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}
