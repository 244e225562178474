package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/newsletter"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/tokens"
)

func init() { gin.SetMode(gin.TestMode) }

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Environment: "test", BodyLimit: 1 << 20},
		RateLimit: config.RateLimitConfig{Enabled: true, MaxRequests: 1000, WindowSeconds: 60},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Storage:   config.StorageConfig{MaxResumeBytes: 5 << 20},
		Cache:     config.CacheConfig{StatsTTL: time.Minute},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, deps Deps) *gin.Engine {
	t.Helper()
	store := storage.NewDiskStore(afero.NewMemMapFs(), "uploads")
	return NewRouter(cfg, NewServices(cfg, MemoryRepos(), store, deps.Redis), deps)
}

func get(r http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, testConfig(), Deps{})
	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(t, testConfig(), Deps{})
	w := get(r, "/api/unknown?x=1")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route /api/unknown?x=1 not found")
}

func TestReadiness(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})

	r := newTestRouter(t, testConfig(), Deps{Redis: rdb})
	w := get(r, "/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)
	assert.Contains(t, w.Body.String(), `"mongodb":"memory"`)

	m.Close()
	w = get(r, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, testConfig(), Deps{})

	req := httptest.NewRequest(http.MethodOptions, "/api/newsletter/subscribe", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/health", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimitFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.MaxRequests = 2
	cfg.RateLimit.WindowSeconds = 3600
	r := newTestRouter(t, cfg, Deps{})

	require.Equal(t, http.StatusOK, get(r, "/health").Code)
	require.Equal(t, http.StatusOK, get(r, "/health").Code)
	w := get(r, "/health")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests from this IP, please try again later.")
}

func TestAdminVerifier(t *testing.T) {
	ver, err := AdminVerifier(context.Background(), config.AdminConfig{})
	require.NoError(t, err)
	require.Nil(t, ver)

	ver, err = AdminVerifier(context.Background(), config.AdminConfig{JWTSecret: "s3cret"})
	require.NoError(t, err)
	require.NotNil(t, ver)

	cfg := testConfig()
	r := newTestRouter(t, cfg, Deps{Admin: ver})
	require.Equal(t, http.StatusUnauthorized, get(r, "/api/partner").Code)

	token, err := tokens.GenerateAdminToken("s3cret", "ops", time.Minute)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, get(r, "/api/partner", "Authorization", "Bearer "+token).Code)
}

func TestAdminVerifierKeycloakFailuresAreErrors(t *testing.T) {
	// discovery answers 404, as a wrong URL or a realm that is still booting would
	kc := httptest.NewServer(http.NotFoundHandler())
	defer kc.Close()

	cases := map[string]config.AdminConfig{
		"unreachable realm": {Keycloak: config.KeycloakConfig{URL: kc.URL, Realm: "cohortlab", ClientID: "api"}},
		"missing client id": {Keycloak: config.KeycloakConfig{URL: kc.URL, Realm: "cohortlab"}},
		"hmac plus broken realm": {
			JWTSecret: "s3cret",
			Keycloak:  config.KeycloakConfig{URL: kc.URL, Realm: "cohortlab", ClientID: "api"},
		},
	}
	for name, admin := range cases {
		t.Run(name, func(t *testing.T) {
			ver, err := AdminVerifier(context.Background(), admin)
			require.Error(t, err)
			require.Nil(t, ver)
		})
	}

	_, err := AdminVerifier(context.Background(), cases["missing client id"])
	require.ErrorIs(t, err, ErrKeycloakClientID)
}

func TestStatsCacheWiredWithRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	rdb := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := testConfig()
	svcs := NewServices(cfg, MemoryRepos(), storage.NewDiskStore(afero.NewMemMapFs(), "uploads"), rdb)
	_, err = svcs.Newsletter.Subscribe(context.Background(), newsletter.SubscribeInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	st, err := svcs.Newsletter.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), st.Active)
	require.True(t, m.Exists("cache:stats:newsletter"))
}

func TestMemoryReposSkipIndexes(t *testing.T) {
	require.NoError(t, MemoryRepos().EnsureIndexes(context.Background()))
}
