package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodreview/internal/config"
	"foodreview/internal/microservices/http-api/handler"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type tokenTable map[string]*service.Claims

func (t tokenTable) ValidateToken(token string) (*service.Claims, error) {
	if c, ok := t[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		GoEnv:             "test",
		CORSOrigins:       []string{"http://localhost:3000"},
		PrometheusEnabled: true,
	}
	// Services stay nil: every request below is settled by middleware.
	h := Handlers{
		Reviews:    handler.NewFoodReviewHandler(nil, nil, nil, nil),
		Complaints: handler.NewComplaintHandler(nil),
		Auth:       handler.NewAuthHandler(nil),
		Admin:      handler.NewAdminHandler(nil, nil),
	}
	tokens := tokenTable{
		"user-token": {UserID: "u1", Username: "sam", Role: "user"},
	}
	return NewRouter(cfg, h, tokens, middleware.NewRateLimiter(100, 100))
}

func TestRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Metrics(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminGuard(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set(middleware.UserIDHeader, "u1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "header identity is not enough for admin routes")

	req = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/foodreviews", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/foodreviews", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
