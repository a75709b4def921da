package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irevlogix/irevlogix-console/internal/gateway"
	"github.com/irevlogix/irevlogix-console/internal/observability"
	"github.com/irevlogix/irevlogix-console/internal/permissions"
	"github.com/irevlogix/irevlogix-console/internal/platform/ratelimit"
	_ "github.com/irevlogix/irevlogix-console/testing"
)

type fixedSource struct {
	up permissions.UserPermissions
}

func (s fixedSource) Resolve(context.Context, string) permissions.UserPermissions {
	return s.up
}

func testRouter(t *testing.T, cfg *Config, upstream *httptest.Server, params RouterParams) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := gateway.New(upstream.URL, gateway.WithLogger(logger))
	require.NoError(t, gw.Register(gateway.Route{
		Name:     "shipments.list",
		Method:   http.MethodGet,
		Pattern:  "/shipments",
		Upstream: "/api/shipments",
	}))
	params.Logger = logger
	params.Config = cfg
	params.Gateway = gw
	if params.PermissionsHandler == nil {
		params.PermissionsHandler = permissions.NewHandler(fixedSource{up: permissions.New(
			[]string{"Manager"},
			[]permissions.Permission{{Module: permissions.ModuleShipments, Action: permissions.ActionRead}},
		)})
	}
	return NewRouter(params)
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Total-Count", "1")
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthz(t *testing.T) {
	h := testRouter(t, &Config{RateLimitPerMinute: 0}, newUpstream(t), RouterParams{})

	rec := serve(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouterMountsGatewayAndPermissions(t *testing.T) {
	h := testRouter(t, &Config{}, newUpstream(t), RouterParams{})

	rec := serve(h, http.MethodGet, "/api/shipments", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/shipments", "tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/auth/permissions", "tok")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"roles":["Manager"],"permissions":[{"module":"Shipments","action":"Read"}]}`, rec.Body.String())
}

func TestRouterExposesMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	h := testRouter(t, &Config{}, newUpstream(t), RouterParams{Metrics: metrics})

	serve(h, http.MethodGet, "/healthz", "")
	rec := serve(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console_http_requests_total")
}

func TestRouterRateLimitsPerIP(t *testing.T) {
	h := testRouter(t, &Config{RateLimitPerMinute: 2}, newUpstream(t), RouterParams{})

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "/healthz", "").Code)
}

func TestRouterSharesRateLimitThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &Config{RateLimitPerMinute: 2, AppRequestTimeout: time.Second}
	upstream := newUpstream(t)
	first := testRouter(t, cfg, upstream, RouterParams{LimitCounter: ratelimit.NewRedisCounter(client, "test")})
	second := testRouter(t, cfg, upstream, RouterParams{LimitCounter: ratelimit.NewRedisCounter(client, "test")})

	assert.Equal(t, http.StatusOK, serve(first, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(second, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(first, http.MethodGet, "/healthz", "").Code)
}
