package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
)

type rateLimitClaimsKey struct{}

// RateLimit bounds requests per identity (or per client IP when anonymous)
// within window. Over-limit requests get 429.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := httprate.Limit(requests, window,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			log.WithField("path", r.URL.Path).Warn("Rate limit exceeded")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	return func(c *gin.Context) {
		req := c.Request
		if claims, ok := ClaimsFromContext(c); ok {
			req = req.WithContext(context.WithValue(req.Context(), rateLimitClaimsKey{}, claims))
		}

		passed := false
		limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Next()
		})).ServeHTTP(c.Writer, req)
		if !passed {
			c.Abort()
		}
	}
}

func rateLimitKey(r *http.Request) (string, error) {
	if claims, ok := r.Context().Value(rateLimitClaimsKey{}).(models.Claims); ok {
		if subject := claims.First("oid", "sub"); subject != "" {
			return "user:" + subject, nil
		}
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
