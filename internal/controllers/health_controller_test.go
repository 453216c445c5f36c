package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name          string
		pingErr       error
		expected      int
		expectedStore string
	}{
		{"store reachable", nil, http.StatusOK, "up"},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable, "down"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/health", HealthCheck(fakePinger{err: tc.pingErr}))

			w := get(router, "/health")

			assert.Equal(t, tc.expected, w.Code)
			assert.Contains(t, w.Body.String(), `"store":"`+tc.expectedStore+`"`)
		})
	}
}
