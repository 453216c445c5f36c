package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// claimsContextKey is where the verified identity claims are stored in the gin context.
const claimsContextKey = "identityClaims"

// BearerAuth middleware validates the identity token carried in the Authorization header
// following RFC 6750 and RFC 7519, and exposes its claims to the handlers
func BearerAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RFC 6750: Extract Bearer token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondWithBearerError(c, http.StatusUnauthorized, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		// Validate Bearer scheme format
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondWithBearerError(c, http.StatusUnauthorized, "invalid_request",
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondWithBearerError(c, http.StatusUnauthorized, "invalid_token",
				"Bearer token is empty")
			return
		}

		claims, err := VerifyIdentityToken(tokenString, secret)
		if err != nil {
			respondWithBearerError(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// CookieIdentity loads the identity from the session cookie when present. Requests
// without a valid cookie continue anonymously.
func CookieIdentity(secret []byte, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err == nil && tokenString != "" {
			if claims, err := VerifyIdentityToken(tokenString, secret); err == nil {
				c.Set(claimsContextKey, claims)
			} else {
				log.WithError(err).Debug("Ignoring invalid identity cookie")
			}
		}
		c.Next()
	}
}

// ClaimsFromContext returns the identity claims set by BearerAuth or CookieIdentity.
func ClaimsFromContext(c *gin.Context) (models.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(models.Claims)
	return claims, ok
}

// respondWithBearerError responds with RFC 6750 compliant error format
func respondWithBearerError(c *gin.Context, status int, errorCode, description string) {
	c.Header("WWW-Authenticate", fmt.Sprintf(`Bearer error="%s"`, errorCode))
	c.JSON(status, gin.H{
		"error":             errorCode,
		"error_description": description,
	})
	c.Abort()
}

// SignIdentityToken issues an HMAC-signed identity token carrying claims, valid for ttl.
func SignIdentityToken(secret []byte, claims models.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range claims {
		switch k {
		case "iat", "exp", "nbf":
			continue
		case "auth_time":
			if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
				mapClaims[k] = ts
				continue
			}
		}
		mapClaims[k] = v
	}
	if _, ok := mapClaims["auth_time"]; !ok {
		mapClaims["auth_time"] = now.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(secret)
}

// VerifyIdentityToken validates signature and time claims and flattens the claim set.
// Tokens must carry a subject ("oid" or "sub").
func VerifyIdentityToken(tokenString string, secret []byte) (models.Claims, error) {
	mapClaims, err := parseAndValidateJWT(tokenString, secret)
	if err != nil {
		return nil, err
	}

	claims := flattenClaims(mapClaims)
	if claims.First("oid", "sub") == "" {
		return nil, fmt.Errorf("token missing required subject claim ('oid' or 'sub')")
	}
	return claims, nil
}

// parseJWTToken validates and parses a JWT token using HMAC signing method
// Returns the claims if valid, error otherwise
func parseJWTToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// parseAndValidateJWT parses the JWT and performs strict validation
func parseAndValidateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims, err := parseJWTToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return nil, fmt.Errorf("token missing exp claim")
	}
	if exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	// tokens issued in the future are rejected
	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// flattenClaims converts JWT claim values into strings. Arrays are space-joined;
// objects are dropped.
func flattenClaims(mapClaims jwt.MapClaims) models.Claims {
	claims := make(models.Claims, len(mapClaims))
	for k, v := range mapClaims {
		if s, ok := claimString(v); ok {
			claims[k] = s
		}
	}
	return claims
}

func claimString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " "), len(parts) > 0
	default:
		return "", false
	}
}
