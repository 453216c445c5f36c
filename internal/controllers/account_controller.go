package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/middleware"
	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identityTTL bounds how long a development sign-in lasts.
const identityTTL = 8 * time.Hour

// AccountController serves sign-in, sign-out and the claims-driven profile page
type AccountController struct {
	secret          []byte
	cookieName      string
	secureCookie    bool
	devLoginEnabled bool
}

// AccountOptions configures the AccountController
type AccountOptions struct {
	TokenSecret     string
	CookieName      string
	SecureCookie    bool
	DevLoginEnabled bool
}

// NewAccountController creates a new AccountController
func NewAccountController(opts AccountOptions) *AccountController {
	return &AccountController{
		secret:          []byte(opts.TokenSecret),
		cookieName:      opts.CookieName,
		secureCookie:    opts.SecureCookie,
		devLoginEnabled: opts.DevLoginEnabled,
	}
}

// Login renders the sign-in page.
func (a *AccountController) Login(c *gin.Context) {
	renderPage(c, http.StatusOK, "account_login.html", "Sign in", gin.H{
		"ReturnURL":       localReturnURL(c.Query("returnUrl")),
		"DevLoginEnabled": a.devLoginEnabled,
	})
}

// DevLogin signs in with the posted name and email, standing in for the
// identity provider during development.
func (a *AccountController) DevLogin(c *gin.Context) {
	if !a.devLoginEnabled {
		renderNotFound(c, "Development sign-in is disabled.")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	if name == "" || email == "" {
		c.String(http.StatusBadRequest, "name and email are required")
		return
	}

	token, err := middleware.SignIdentityToken(a.secret, models.Claims{
		"sub":                uuid.New().String(),
		"name":               name,
		"preferred_username": email,
		"email":              email,
	}, identityTTL)
	if err != nil {
		log.WithError(err).Error("Could not sign identity token")
		c.String(http.StatusInternalServerError, "Could not sign in")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, token, int(identityTTL.Seconds()), "/", "", a.secureCookie, true)
	c.Redirect(http.StatusSeeOther, localReturnURL(c.PostForm("returnUrl")))
}

// Logout clears the identity cookie.
func (a *AccountController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, "", -1, "/", "", a.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Profile renders the signed-in identity. Routes mount it behind RequireIdentity.
func (a *AccountController) Profile(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/account/login?returnUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
		return
	}
	renderPage(c, http.StatusOK, "account_profile.html", "Profile", gin.H{
		"Profile": models.NewProfile(claims),
	})
}

// localReturnURL only accepts same-site absolute paths, defaulting to "/".
func localReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return raw
}
