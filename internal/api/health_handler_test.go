package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func TestHealthHandler_HealthCheckAlwaysHealthy(t *testing.T) {
	handler := NewHealthHandler(nil, logger.New("error"))
	router := gin.New()
	router.GET("/health", handler.HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHealthHandler_ReadinessWithoutCacheReportsUnconfigured(t *testing.T) {
	handler := NewHealthHandler(nil, logger.New("error"))
	router := gin.New()
	router.GET("/ready", handler.ReadinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "unconfigured")
}
