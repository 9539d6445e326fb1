package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "jobsweep/internal/errors"
	"jobsweep/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAnalytics struct {
	lastCountry  string
	lastVariable string
}

func (f *fakeAnalytics) KPI(ctx context.Context) (*store.KPIReport, error) {
	return &store.KPIReport{TotalJobs: 12345, TotalCompanies: 678, TotalCountries: 6}, nil
}

func (f *fakeAnalytics) Distribution(ctx context.Context, country, variable string) ([]store.NameCount, error) {
	f.lastCountry, f.lastVariable = country, variable
	if variable == "drop table" {
		return nil, apperrors.InvalidInput("invalid distribution variable", nil)
	}
	return []store.NameCount{{Name: "Acme", Count: 40}, {Name: "Beta", Count: 25}}, nil
}

func (f *fakeAnalytics) Trend(ctx context.Context, country string) ([]store.MonthCount, error) {
	f.lastCountry = country
	return []store.MonthCount{{Month: "2025-10", Count: 900}, {Month: "2025-11", Count: 1100}}, nil
}

func (f *fakeAnalytics) RegionComparison(ctx context.Context) ([]store.RegionCount, error) {
	return []store.RegionCount{
		{Region: "South Asia", Count: 9000},
		{Region: "South East Asia", Count: 4000},
	}, nil
}

func newTestServer(t *testing.T) (*Server, *fakeAnalytics) {
	t.Helper()
	analytics := &fakeAnalytics{}
	handler := NewHandler(analytics, zap.NewNop())
	return NewServer(":0", handler, zap.NewNop()), analytics
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestKPIEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := get(t, server, "/api/kpi")
	require.Equal(t, http.StatusOK, w.Code)

	var got store.KPIReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(12345), got.TotalJobs)
	assert.Equal(t, uint64(678), got.TotalCompanies)
	assert.Equal(t, uint64(6), got.TotalCountries)
}

func TestDistributionEndpoint(t *testing.T) {
	server, analytics := newTestServer(t)

	w := get(t, server, "/api/distribution?country=India&variable=skills")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "India", analytics.lastCountry)
	assert.Equal(t, "skills", analytics.lastVariable)

	var got []store.NameCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Name)
}

func TestDistributionDefaults(t *testing.T) {
	server, analytics := newTestServer(t)

	w := get(t, server, "/api/distribution")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All", analytics.lastCountry)
	assert.Equal(t, "company", analytics.lastVariable)
}

func TestDistributionRejectsBadVariable(t *testing.T) {
	server, _ := newTestServer(t)

	w := get(t, server, "/api/distribution?variable=drop+table")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendEndpoint(t *testing.T) {
	server, analytics := newTestServer(t)

	w := get(t, server, "/api/trend?country=Pakistan")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pakistan", analytics.lastCountry)

	var got []store.MonthCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2025-10", got[0].Month)
}

func TestRegionComparisonEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := get(t, server, "/api/region-comparison")
	require.Equal(t, http.StatusOK, w.Code)

	var got []store.RegionCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "South Asia", got[0].Region)
}

func TestCORSHeaders(t *testing.T) {
	server, _ := newTestServer(t)

	w := get(t, server, "/api/kpi")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/kpi", nil)
	w = httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
