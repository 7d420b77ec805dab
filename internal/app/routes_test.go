package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sleepboard/internal/config"
	"sleepboard/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "date,start,slept,duration_min,note\n" +
	"2024-01-02,22:00,22:45,,second\n" +
	"2024-01-01,23:50,00:10,,first\n"

// upstream serves a mutable CSV body so tests can change the sheet mid-flight.
type upstream struct {
	srv  *httptest.Server
	body string
	code int
}

func newUpstream(t *testing.T, body string) *upstream {
	t.Helper()
	u := &upstream{body: body, code: http.StatusOK}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(u.code)
		_, _ = w.Write([]byte(u.body))
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newTestApp(t *testing.T, u *upstream) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SHEET_CSV_URL", u.srv.URL)

	cfg, err := config.Load()
	require.NoError(t, err)
	a, err := New(cfg)
	require.NoError(t, err)
	return a.Router()
}

func do(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEntries(t *testing.T, w *httptest.ResponseRecorder) dto.EntriesResponse {
	t.Helper()
	var resp dto.EntriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestEntries_NormalizedAndSorted(t *testing.T) {
	r := newTestApp(t, newUpstream(t, sampleCSV))

	w := do(t, r, http.MethodGet, "/api/v1/entries")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEntries(t, w)
	require.Equal(t, 2, resp.Count)

	// Sheet order is reversed; output is sorted by converted start.
	assert.Equal(t, "first", *resp.Items[0].Note)
	assert.Equal(t, "2024-01-01 01:20 PM", *resp.Items[0].Start)
	assert.Equal(t, "2024-01-01 01:40 PM", *resp.Items[0].Slept)
	assert.Equal(t, 20, *resp.Items[0].DurationMin)
	assert.Equal(t, "ok", resp.Items[0].Tier)

	assert.Equal(t, "second", *resp.Items[1].Note)
	assert.Equal(t, 45, *resp.Items[1].DurationMin)

	assert.Equal(t, 33, resp.Metrics.AverageMin) // (20+45)/2 = 32.5 rounds up
	assert.Equal(t, 45, resp.Metrics.LatestMin)
	assert.Equal(t, 20, resp.Metrics.FastestMin)
	assert.Equal(t, 45, resp.Metrics.SlowestMin)
}

func TestEntries_MissingFieldsAreNullNotZero(t *testing.T) {
	csv := "date,start,slept,duration_min,note\nnan,none,,NaN,None\n"
	r := newTestApp(t, newUpstream(t, csv))

	w := do(t, r, http.MethodGet, "/api/v1/entries")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEntries(t, w)
	require.Equal(t, 1, resp.Count)
	assert.Nil(t, resp.Items[0].Start)
	assert.Nil(t, resp.Items[0].Slept)
	assert.Nil(t, resp.Items[0].DurationMin)
	assert.Nil(t, resp.Items[0].Note)
	assert.Equal(t, "unknown", resp.Items[0].Tier)
}

func TestEntries_EmptySheetIsNoDataState(t *testing.T) {
	r := newTestApp(t, newUpstream(t, "date,start,slept,duration_min,note\n"))

	w := do(t, r, http.MethodGet, "/api/v1/entries")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEntries(t, w)
	assert.Zero(t, resp.Count)
	assert.Zero(t, resp.Metrics.AverageMin)
	assert.Zero(t, resp.Metrics.LatestMin)
	assert.Zero(t, resp.Metrics.FastestMin)
	assert.Zero(t, resp.Metrics.SlowestMin)
}

func TestEntries_UpstreamFailureIsBadGateway(t *testing.T) {
	u := newUpstream(t, "nope")
	u.code = http.StatusInternalServerError
	r := newTestApp(t, u)

	w := do(t, r, http.MethodGet, "/api/v1/entries")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "couldn't load sheet")
}

func TestRefresh_BypassesCache(t *testing.T) {
	u := newUpstream(t, sampleCSV)
	r := newTestApp(t, u)

	w := do(t, r, http.MethodGet, "/api/v1/entries")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, decodeEntries(t, w).Count)

	u.body = sampleCSV + "2024-01-03,21:00,21:05,,third\n"

	// Within the TTL the cached snapshot is still served.
	w = do(t, r, http.MethodGet, "/api/v1/entries")
	assert.Equal(t, 2, decodeEntries(t, w).Count)

	w = do(t, r, http.MethodPost, "/api/v1/refresh")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeEntries(t, w).Count)

	// And the refreshed snapshot replaces the cached one.
	w = do(t, r, http.MethodGet, "/api/v1/entries")
	assert.Equal(t, 3, decodeEntries(t, w).Count)
}

func TestMetrics_Endpoint(t *testing.T) {
	r := newTestApp(t, newUpstream(t, sampleCSV))

	w := do(t, r, http.MethodGet, "/api/v1/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	var m dto.MetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, dto.MetricsResponse{AverageMin: 33, LatestMin: 45, FastestMin: 20, SlowestMin: 45}, m)
}

func TestDashboard_RendersTableAndCards(t *testing.T) {
	r := newTestApp(t, newUpstream(t, sampleCSV))

	w := do(t, r, http.MethodGet, "/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Sleep Persuasion Tracker")
	assert.Contains(t, body, "2024-01-01 01:20 PM")
	assert.Contains(t, body, "Average time")
	assert.Contains(t, body, "Refresh now")
	assert.Contains(t, body, `class="min y"`)
}

func TestDashboard_EmptyState(t *testing.T) {
	r := newTestApp(t, newUpstream(t, "date,start,slept,duration_min,note\n"))

	w := do(t, r, http.MethodGet, "/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No rows to display yet")
}

func TestDashboard_UpstreamFailure(t *testing.T) {
	u := newUpstream(t, "")
	u.code = http.StatusServiceUnavailable
	r := newTestApp(t, u)

	w := do(t, r, http.MethodGet, "/dashboard")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Couldn&#39;t load CSV")
}

func TestServiceEndpoints(t *testing.T) {
	r := newTestApp(t, newUpstream(t, sampleCSV))

	w := do(t, r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/version")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/dashboard")
}
