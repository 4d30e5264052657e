// Package integration exercises the full HTTP stack against real storage.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/cache"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/matching"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
	"github.com/pageza/pantry-chef/backend/internal/mocks"
	"github.com/pageza/pantry-chef/backend/internal/server"
	"github.com/pageza/pantry-chef/backend/internal/service"
)

type stack struct {
	handler http.Handler
	db      *gorm.DB
	llm     *mocks.MockLLM
}

type stackOptions struct {
	cache   cache.Cache
	limiter middleware.Limiter
}

// newStack wires the real services over db with a mocked language model
func newStack(t *testing.T, db *gorm.DB, opts stackOptions) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	_, err := database.SeedRecipes(context.Background(), db, logger)
	require.NoError(t, err)

	resultCache := opts.cache
	if resultCache == nil {
		memoryCache := cache.NewMemoryCache(time.Minute)
		t.Cleanup(memoryCache.Close)
		resultCache = memoryCache
	}

	llm := new(mocks.MockLLM)
	recipes := service.NewRecipeService(db, matching.NewEngine(30, 10), logger)

	deps := api.Dependencies{
		Recipes:      recipes,
		Generator:    service.NewRecipeGenerator(llm, recipes, resultCache, time.Hour, logger),
		Ingredients:  service.NewIngredientRecognizer(llm, resultCache, time.Hour, logger),
		Images:       service.NewImageService(nil, recipes, 1<<20, logger),
		Preferences:  service.NewPreferenceService(db),
		SavedRecipes: service.NewSavedRecipeService(db, recipes),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	if opts.limiter != nil {
		deps.AILimit = middleware.RateLimit(opts.limiter, logger)
	}

	srv, err := server.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: "0", CORSOrigins: []string{"*"}}, deps, logger)
	require.NoError(t, err)

	return &stack{handler: srv.Handler(), db: db, llm: llm}
}

func (s *stack) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}
