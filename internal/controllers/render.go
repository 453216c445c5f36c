package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-user-directory/internal/middleware"
	"github.com/franciscosanchezn/gin-user-directory/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the controller logger level.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// renderPage renders a page template, adding the values every page needs.
func renderPage(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["CSRFToken"] = middleware.CSRFToken(c)
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		data["CurrentUser"] = claims.First("name", "preferred_username", "email", "sub")
	}
	c.HTML(status, name, data)
}

// Home renders the landing page.
func Home(c *gin.Context) {
	renderPage(c, http.StatusOK, "home.html", "Home", nil)
}

func renderNotFound(c *gin.Context, message string) {
	renderPage(c, http.StatusNotFound, "not_found.html", "Not Found", gin.H{"Message": message})
}

// renderStoreFailure renders the generic failure page for errors other than
// validation and not-found outcomes.
func renderStoreFailure(c *gin.Context, op string, err error) {
	log.WithError(err).WithField("operation", op).Error("User store operation failed")
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrStoreUnavailable) {
		status = http.StatusServiceUnavailable
	}
	renderPage(c, status, "error.html", "Error", gin.H{
		"Message": "The user directory is temporarily unavailable. Please try again later.",
	})
}

// parseOptionalID converts an id route/query value; missing or malformed values are absent.
func parseOptionalID(raw string) *uint {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}
