package resources

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irevlogix/irevlogix-console/internal/gateway"
	_ "github.com/irevlogix/irevlogix-console/testing"
)

func mount(t *testing.T, upstream string) http.Handler {
	t.Helper()
	gw := gateway.New(upstream)
	require.NoError(t, gw.Register(Routes()...))
	r := chi.NewRouter()
	r.Route("/api", gw.MountRoutes)
	return r
}

func TestRoutesRegister(t *testing.T) {
	gw := gateway.New("http://upstream")
	require.NoError(t, gw.Register(Routes()...))
	assert.Len(t, gw.Routes(), len(Routes()))
}

func TestOnlyDeclaredRoutesArePublic(t *testing.T) {
	public := map[string]bool{}
	for _, route := range Routes() {
		if route.Public {
			public[route.Name] = true
		}
	}
	assert.Equal(t, map[string]bool{
		"auth.login":           true,
		"auth.forgot_password": true,
		"contact.submit":       true,
	}, public)
}

func TestAuthenticatedRoutesRejectMissingCredential(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer upstream.Close()
	router := mount(t, upstream.URL)

	for _, route := range Routes() {
		if route.Public {
			continue
		}
		target := "/api" + strings.NewReplacer(
			"{id}", "1", "{itemId}", "2", "{documentId}", "3", "{stepId}", "4",
			"{permissionId}", "5", "{userId}", "6", "{report}", "lots",
		).Replace(route.Pattern)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(route.Method, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.Name)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestContaminationInsightsDefaults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/contamination-insights", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"MaterialTypeId": 3}`)
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/processing/contamination-insights?materialTypeId=3", nil)
	req.Header.Set("Authorization", "Bearer t")
	rr := httptest.NewRecorder()
	mount(t, upstream.URL).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"materialTypeId": 3,
		"materialTypeName": null,
		"periodWeeks": 4,
		"totalLots": 0,
		"totalWeightLbs": 0,
		"averageContaminationRate": 0,
		"commonContaminants": [],
		"weeklyTrend": [],
		"recommendations": [],
		"generatedAt": null
	}`, rr.Body.String())
}

func TestVendorScorecardsMapAsymmetricNames(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(gateway.HeaderTotalCount, "2")
		_, _ = io.WriteString(w, `[
			{"VendorID": 11, "VendorName": "Metro Metals", "KPIScore": 91.5, "ESGRating": "A", "Metrics": [{"Metric": "yield", "Value": 0.93}]},
			{"VendorID": 12}
		]`)
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/vendors/scorecards?page=1", nil)
	req.Header.Set("Authorization", "Bearer t")
	rr := httptest.NewRecorder()
	mount(t, upstream.URL).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2", rr.Header().Get(gateway.HeaderTotalCount))
	assert.JSONEq(t, `[
		{"vendorId": 11, "vendorName": "Metro Metals", "kpiScore": 91.5, "esgRating": "A", "onTimePickupPercent": 0,
		 "certificatesOnFile": [], "metrics": [{"metric": "yield", "value": 0.93, "target": null}], "periodWeeks": 4},
		{"vendorId": 12, "vendorName": "", "kpiScore": 0, "esgRating": null, "onTimePickupPercent": 0,
		 "certificatesOnFile": [], "metrics": [], "periodWeeks": 4}
	]`, rr.Body.String())
}

func TestAssignUserToRoleAcknowledgesEmptyBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/roles/2/users/9", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/roles/2/users/9", nil)
	req.Header.Set("Authorization", "Bearer t")
	rr := httptest.NewRecorder()
	mount(t, upstream.URL).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Operation completed successfully"}`, rr.Body.String())
}
