package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/news-map/app/classify"
	"github.com/lysyi3m/news-map/app/database"
	"github.com/lysyi3m/news-map/app/news"
	"github.com/lysyi3m/news-map/app/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type newsCall struct {
	regionID string
	limit    int
	force    bool
}

type mockNews struct {
	calls  []newsCall
	result *news.Result
	status news.CacheStatus
	err    error
}

func (m *mockNews) RegionNews(ctx context.Context, regionID string, limit int, force bool) (*news.Result, news.CacheStatus, error) {
	m.calls = append(m.calls, newsCall{regionID, limit, force})
	if m.err != nil {
		return nil, "", m.err
	}
	return m.result, m.status, nil
}

type mockRegions struct {
	regions []database.Region
	err     error
}

func (m *mockRegions) ListRegions(ctx context.Context) ([]database.Region, error) {
	return m.regions, m.err
}

func (m *mockRegions) GetRegionCount(ctx context.Context) (int, error) {
	return len(m.regions), m.err
}

type mockCacheHealth struct {
	status string
}

func (m *mockCacheHealth) Health(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{"status": m.status, "type": "memory"}
}

type mockReloader struct {
	err error
}

func (m *mockReloader) ReloadRegion(regionID string) ([]tasks.TaskInterface, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []tasks.TaskInterface{tasks.NewWarmRegionTask(regionID, 60, nil)}, nil
}

func sampleResult() *news.Result {
	published := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &news.Result{
		RegionID:         "kyiv",
		DominantCategory: classify.War,
		Count:            2,
		Items: []news.Item{
			{Title: "Missile strike", Link: "https://a.example/1", IsoDate: &published, Source: "A", Category: classify.War},
			{Title: "Undated", Link: "https://a.example/2", Source: "A", Category: classify.Others},
		},
	}
}

func newTestServer(newsReader NewsReader, regions RegionLister, reloader RegionReloader) http.Handler {
	handler := NewHandler(newsReader, regions, &mockCacheHealth{status: "healthy"}, reloader, 60, "test")
	return NewServer(handler)
}

func doRequest(t *testing.T, server http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetRegionNews(t *testing.T) {
	reader := &mockNews{result: sampleResult(), status: news.CacheMiss}
	server := newTestServer(reader, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodGet, "/api/news/kyiv")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Len(t, reader.calls, 1)
	assert.Equal(t, newsCall{"kyiv", 60, false}, reader.calls[0])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "kyiv", body["regionId"])
	assert.Equal(t, "war", body["dominantCategory"])
	assert.Equal(t, float64(2), body["count"])

	items := body["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "2024-03-01T10:00:00Z", first["isoDate"])
	assert.Equal(t, "Missile strike", first["title"])
	assert.Equal(t, "https://a.example/1", first["link"])
	assert.Equal(t, "A", first["source"])
	assert.Equal(t, "war", first["category"])
	second := items[1].(map[string]interface{})
	assert.Contains(t, second, "isoDate")
	assert.Nil(t, second["isoDate"])
}

func TestGetRegionNewsQueryParameters(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantForce bool
	}{
		{"explicit limit", "?limit=10", 10, false},
		{"negative limit passed through", "?limit=-3", -3, false},
		{"large limit passed through", "?limit=5000", 5000, false},
		{"force 1", "?force=1", 60, true},
		{"force true", "?force=true&limit=5", 5, true},
		{"force garbage", "?force=maybe", 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockNews{result: sampleResult(), status: news.CacheHit}
			server := newTestServer(reader, &mockRegions{}, nil)

			w := doRequest(t, server, http.MethodGet, "/api/news/kyiv"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			require.Len(t, reader.calls, 1)
			assert.Equal(t, tt.wantLimit, reader.calls[0].limit)
			assert.Equal(t, tt.wantForce, reader.calls[0].force)
		})
	}
}

func TestGetRegionNewsInvalidLimit(t *testing.T) {
	reader := &mockNews{result: sampleResult()}
	server := newTestServer(reader, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodGet, "/api/news/kyiv?limit=ten")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, reader.calls)
}

func TestGetRegionNewsNotFound(t *testing.T) {
	reader := &mockNews{err: &news.NotFoundError{RegionID: "atlantis"}}
	server := newTestServer(reader, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodGet, "/api/news/atlantis")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestGetRegionNewsInternalError(t *testing.T) {
	reader := &mockNews{err: errors.New("database is locked")}
	server := newTestServer(reader, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodGet, "/api/news/kyiv")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is locked")
}

func TestListRegions(t *testing.T) {
	regions := &mockRegions{regions: []database.Region{
		{ID: "kyiv", Name: "Kyiv", Country: "Ukraine", Lat: 50.45, Lng: 30.52,
			Feeds: []database.Feed{{URL: "https://a.example/rss", Category: "war"}}},
		{ID: "empty", Name: "Empty", Country: "Nowhere"},
	}}
	server := newTestServer(&mockNews{}, regions, nil)

	w := doRequest(t, server, http.MethodGet, "/api/regions")
	require.Equal(t, http.StatusOK, w.Code)

	var body []regionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "kyiv", body[0].ID)
	assert.Equal(t, 50.45, body[0].Lat)
	assert.Equal(t, []feedResponse{{URL: "https://a.example/rss", Category: "war"}}, body[0].Feeds)
	assert.NotNil(t, body[1].Feeds)
	assert.Contains(t, w.Body.String(), `"feeds":[]`)
}

func TestListRegionsError(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{err: errors.New("boom")}, nil)

	w := doRequest(t, server, http.MethodGet, "/api/regions")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{regions: []database.Region{{ID: "kyiv"}}}, nil)

	w := doRequest(t, server, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = doRequest(t, server, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["regions"])
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, "memory", body["cache"].(map[string]interface{})["type"])
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "go_goroutines"))
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodOptions, "/api/news/kyiv")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Cache")
}

func TestReloadRegion(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{}, &mockReloader{})

	w := doRequest(t, server, http.MethodPost, "/api/regions/kyiv/reload")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"warm_region"`)

	server = newTestServer(&mockNews{}, &mockRegions{}, &mockReloader{err: errors.New("no such file")})
	w = doRequest(t, server, http.MethodPost, "/api/regions/kyiv/reload")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReloadRegionDisabled(t *testing.T) {
	server := newTestServer(&mockNews{}, &mockRegions{}, nil)

	w := doRequest(t, server, http.MethodPost, "/api/regions/kyiv/reload")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
