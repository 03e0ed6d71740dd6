package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires the real handlers over an in-memory sqlite database.
// The schema is written by hand because the model tags carry postgres-only
// defaults. The draft cache points at an unreachable Redis: draft writes are
// best-effort and draft reads surface as 404s, both valid paths to exercise.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE user_profiles (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			username TEXT,
			email TEXT,
			dietary_tags TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE saved_recipes (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			ingredients TEXT NOT NULL DEFAULT '[]',
			instructions TEXT NOT NULL DEFAULT '[]',
			prep_time INTEGER NOT NULL DEFAULT 0,
			cook_time INTEGER NOT NULL DEFAULT 0,
			servings INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			cuisine TEXT,
			dietary_tags TEXT NOT NULL DEFAULT '[]',
			image_url TEXT
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	log := zap.NewNop()
	auth := service.NewAuthService(db, "test-secret", time.Hour)
	recipes := service.NewRecipeService(db, config.DedupConfig{
		SimilarityThreshold: 0.8,
		RecentLimit:         10,
	}, log)
	generator := service.NewRecipeGenerator(nil, rand.New(rand.NewSource(1)), log)
	profiles := service.NewProfileService(db)
	drafts := service.NewDraftService(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(auth, log).RegisterRoutes(v1)
	NewProfileHandler(profiles, auth, log).RegisterRoutes(v1)
	NewRecipeHandler(generator, recipes, drafts, auth, log).RegisterRoutes(v1)

	return router
}

// doRequest performs a JSON request against the router and returns the
// recorded response.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
		"username": "testuser",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
