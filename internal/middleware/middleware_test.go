package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	return r
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	logger := zap.NewNop()

	t.Run("should render an attached app error", func(t *testing.T) {
		r := newRouter(ErrorHandler(logger))
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(types.NewNotFound("Recipe not found"))
		})

		w := perform(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Recipe not found","code":"NOT_FOUND"}`, w.Body.String())
	})

	t.Run("should hide unknown errors behind a 500", func(t *testing.T) {
		r := newRouter(ErrorHandler(logger))
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("connection refused"))
		})

		w := perform(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
	})

	t.Run("should keep a response the handler already wrote", func(t *testing.T) {
		r := newRouter(ErrorHandler(logger))
		r.GET("/", func(c *gin.Context) {
			AbortWithError(c, types.NewInvalidRequest("bad input", nil))
		})

		w := perform(r, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"bad input","code":"INVALID_REQUEST"}`, w.Body.String())
	})
}

func TestRecovery(t *testing.T) {
	r := newRouter(requestid.New(), Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		panic("boom")
	})

	w := perform(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
}

func TestLogger(t *testing.T) {
	r := newRouter(requestid.New(), Logger(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	t.Run("should allow any origin with a wildcard", func(t *testing.T) {
		r := newRouter(CORS([]string{"*"}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "http://example.com"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should only echo listed origins", func(t *testing.T) {
		r := newRouter(CORS([]string{"http://localhost:3000"}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodGet, "/", map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

		w = perform(r, http.MethodGet, "/", map[string]string{"Origin": "http://evil.example"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should answer preflight requests", func(t *testing.T) {
		r := newRouter(CORS(nil))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodOptions, "/", map[string]string{
			"Origin":                        "http://example.com",
			"Access-Control-Request-Method": "POST",
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewLocalLimiter(RateLimitConfig{Window: time.Hour, Limit: 2})

	first, err := limiter.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, _ := limiter.Allow(ctx, "a")
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, _ := limiter.Allow(ctx, "a")
	assert.False(t, third.Allowed)
	assert.True(t, third.Reset.After(time.Now()))

	other, _ := limiter.Allow(ctx, "b")
	assert.True(t, other.Allowed)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (RateLimitResult, error) {
	return RateLimitResult{}, errors.New("redis down")
}

func (failingLimiter) Config() RateLimitConfig {
	return RateLimitConfig{Window: time.Minute, Limit: 1}
}

func TestRateLimit(t *testing.T) {
	logger := zap.NewNop()

	t.Run("should reject requests over the limit per session", func(t *testing.T) {
		r := newRouter(RateLimit(NewLocalLimiter(RateLimitConfig{Window: time.Hour, Limit: 1}), logger))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		session := map[string]string{SessionHeader: "session-1"}
		w := perform(r, http.MethodPost, "/", session)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

		w = perform(r, http.MethodPost, "/", session)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))

		w = perform(r, http.MethodPost, "/", map[string]string{SessionHeader: "session-2"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should let requests through when the limiter fails", func(t *testing.T) {
		r := newRouter(RateLimit(failingLimiter{}, logger))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(r, http.MethodPost, "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	})
}

func TestMetrics(t *testing.T) {
	r := newRouter(Metrics())
	r.GET("/recipes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/recipes/abc", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
