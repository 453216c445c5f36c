package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CSRFCookieName holds the signed anti-forgery token.
	CSRFCookieName = "directory_csrf"
	// CSRFFormField is the form field that must echo the cookie on unsafe requests.
	CSRFFormField = "csrf_token"
	// CSRFHeader is accepted in place of the form field.
	CSRFHeader = "X-CSRF-Token"

	csrfContextKey = "csrfToken"
)

// CSRF protects cookie-authenticated form posts with a signed double-submit
// token. Safe methods get the token issued; others must echo it back.
func CSRF(secret []byte, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieName)
		if err != nil || !validCSRFToken(secret, token) {
			token = newCSRFToken(secret)
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, 0, "/", "", secureCookie, true)
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFFormField)
		if submitted == "" {
			submitted = c.GetHeader(CSRFHeader)
		}
		if submitted == "" || !hmac.Equal([]byte(submitted), []byte(token)) {
			log.WithField("path", c.Request.URL.Path).Warn("CSRF validation failed")
			c.String(http.StatusForbidden, http.StatusText(http.StatusForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFToken returns the token forms on this request must carry, or "".
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func newCSRFToken(secret []byte) string {
	nonce := uuid.New().String()
	return nonce + "." + signCSRFNonce(secret, nonce)
}

func validCSRFToken(secret []byte, token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(signCSRFNonce(secret, nonce)))
}

func signCSRFNonce(secret []byte, nonce string) string {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write([]byte("csrf|"))
	_, _ = mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
