package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/pkg/jwt"
	redispkg "contract-hub.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	return srv
}

func useMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := startMiniRedis(t)
	t.Cleanup(srv.Close)
	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func authedRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(CurrentUserKey, entities.CurrentUser{ID: userID, Email: "u@example.com"})
		c.Next()
	})
	r.Use(IdempotencyMiddleware())
	return r
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/contracts", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestIdempotencyMiddleware_RedisErrorPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: "127.0.0.1:0"}))

	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/contracts", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	req.Header.Set(IdempotencyHeader, "idem-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := useMiniRedis(t)
	userID := uuid.New()
	srv.Set("idempotency:"+userID.String()+":key-1", "processing")

	r := authedRouter(userID)
	r.POST("/contracts", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	useMiniRedis(t)
	userID := uuid.New()

	calls := 0
	r := authedRouter(userID)
	r.POST("/contracts", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "c-1"})
	})

	first := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	req1.Header.Set(IdempotencyHeader, "key-2")
	r.ServeHTTP(first, req1)
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/contracts", nil)
	req2.Header.Set(IdempotencyHeader, "key-2")
	r.ServeHTTP(second, req2)

	require.Equal(t, 1, calls, "handler must run once")
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	require.Contains(t, second.Body.String(), `"id":"c-1"`)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	useMiniRedis(t)
	userID := uuid.New()

	calls := 0
	r := authedRouter(userID)
	r.POST("/contracts", func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusCreated)
	})

	for i, want := range []int{http.StatusInternalServerError, http.StatusCreated} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
		req.Header.Set(IdempotencyHeader, "key-3")
		r.ServeHTTP(w, req)
		require.Equal(t, want, w.Code, "attempt %d", i+1)
	}
	require.Equal(t, 2, calls)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		require.NotEmpty(t, c.GetString(RequestIDKey))
		c.Status(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "caller-id")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "caller-id", w.Header().Get("X-Request-ID"))
	})
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/contracts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contracts/abc", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoggerMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?verbose=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", w.Body.String())
}

func TestAuthThenIdempotency_KeyIsPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	useMiniRedis(t)
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)

	calls := 0
	r := gin.New()
	r.Use(AuthMiddleware(jwtService), IdempotencyMiddleware())
	r.POST("/contracts", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"n": calls})
	})

	do := func(userID uuid.UUID) *httptest.ResponseRecorder {
		pair, err := jwtService.GenerateTokenPair(userID, "u@example.com", "U")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/contracts", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		req.Header.Set(IdempotencyHeader, "shared-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	userA := uuid.New()
	userB := uuid.New()
	require.Equal(t, http.StatusCreated, do(userA).Code)
	require.Equal(t, http.StatusCreated, do(userB).Code)
	require.Equal(t, 2, calls, "different users must not share idempotency state")
}
