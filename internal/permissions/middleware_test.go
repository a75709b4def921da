package permissions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irevlogix/irevlogix-console/internal/credential"
)

type stubSource struct {
	up     UserPermissions
	tokens []string
}

func (s *stubSource) Resolve(ctx context.Context, token string) UserPermissions {
	s.tokens = append(s.tokens, token)
	return s.up
}

func TestMiddlewareThreadsPermissionsThroughContext(t *testing.T) {
	source := &stubSource{up: New([]string{"Admin"}, []Permission{{Module: ModuleShipments, Action: ActionRead}})}
	var seen UserPermissions
	var cred credential.Credential
	handler := Middleware{Source: source}.Load(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		cred, _ = credential.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, []string{"abc"}, source.tokens)
	assert.True(t, seen.Has(ModuleShipments, ActionRead))
	assert.Equal(t, "abc", cred.Token)
}

func TestMiddlewareWithoutCredentialIsEmpty(t *testing.T) {
	source := &stubSource{up: New([]string{"Admin"}, nil)}
	var seen UserPermissions
	handler := Middleware{Source: source}.Load(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, source.tokens)
	assert.True(t, seen.IsEmpty())
}

func TestFromContextDefaultsToEmpty(t *testing.T) {
	assert.True(t, FromContext(context.Background()).IsEmpty())
}

func TestHandlerAlwaysAnswers200(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(&stubSource{up: Empty()}).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/permissions", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"roles":[],"permissions":[]}`, rr.Body.String())
}

func TestHandlerReturnsResolvedPermissions(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(&stubSource{up: New([]string{"Operator"}, []Permission{{Module: ModuleProcessing, Action: ActionUpdate}})}).MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/auth/permissions", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"roles":["Operator"],"permissions":[{"module":"Processing","action":"Update"}]}`, rr.Body.String())
}
