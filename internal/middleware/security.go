package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// hstsSeconds is 30 days.
const hstsSeconds = 30 * 24 * 60 * 60

// SecureHeaders sets the browser security headers. In production it also
// redirects plain HTTP to HTTPS (honoring X-Forwarded-Proto) and sends HSTS.
func SecureHeaders(production bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            hstsSeconds,
		STSIncludeSubdomains:  true,
		IsDevelopment:         !production,
	})

	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}

		// Process already wrote the redirect
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}

		c.Next()
	}
}
