package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/song-critic/internal/application/analyses"
	"github.com/bryanwahyu/song-critic/internal/application/sessions"
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	"github.com/bryanwahyu/song-critic/internal/middleware"
)

type stubAnalyzer struct {
	res *domain.Result
	err error
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ domain.Request) (*domain.Result, error) {
	if a.err != nil {
		return nil, a.err
	}
	cp := *a.res
	return &cp, nil
}

type memRepo struct {
	items []*domain.Result
}

func (r *memRepo) Save(_ context.Context, a *domain.Result) error {
	cp := *a
	r.items = append([]*domain.Result{&cp}, r.items...)
	return nil
}

func (r *memRepo) ListByOwner(_ context.Context, owner string, _ int) ([]*domain.Result, error) {
	var out []*domain.Result
	for _, it := range r.items {
		if it.OwnerID == owner {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, owner, id string) (*domain.Result, error) {
	for _, it := range r.items {
		if it.OwnerID == owner && it.ID == id {
			return it, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }

// newServer stands the router up behind the auth middleware the way main does.
func newServer(an domain.Analyzer, repo domain.Repository) http.Handler {
	svc := &analyses.Service{Analyzer: an, Repo: repo, Clock: stubClock{}}
	sess := sessions.NewService(svc)
	handler := NewRouter(svc, sess, map[string]middleware.HealthChecker{})
	users := map[string]middleware.Identity{
		"key-1": {ID: "user-1", Name: "Alice"},
	}
	return middleware.OptionalAuth(users)(handler)
}

func doJSON(t *testing.T, h http.Handler, method, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLiveness(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)
	rr := doJSON(t, h, http.MethodGet, "/live", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestExampleEndpoint(t *testing.T) {
	h := newServer(&stubAnalyzer{err: domain.ErrNotConfigured}, nil)
	rr := doJSON(t, h, http.MethodGet, "/v1/analyses/example", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Echoes in the Rain", res.Title)
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)
	rr := doJSON(t, h, http.MethodPost, "/v1/analyses", "",
		`{"title":"Echoes","lyrics":"la la la"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Echoes in the Rain", res.Title)
}

func TestAnalyzeStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		an   domain.Analyzer
		body string
		want int
	}{
		{"malformed body", &stubAnalyzer{res: domain.Example()}, `{not json`, http.StatusBadRequest},
		{"missing lyrics", &stubAnalyzer{res: domain.Example()}, `{"title":"x"}`, http.StatusBadRequest},
		{"no api key configured", domain.Disabled{}, `{"title":"x","lyrics":"y"}`, http.StatusServiceUnavailable},
		{"safety block", &stubAnalyzer{err: domain.ErrSafetyBlocked}, `{"title":"x","lyrics":"y"}`, http.StatusUnprocessableEntity},
		{"broken model reply", &stubAnalyzer{err: domain.ErrInvalidAnalysis}, `{"title":"x","lyrics":"y"}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(tt.an, nil)
			rr := doJSON(t, h, http.MethodPost, "/v1/analyses", "", tt.body)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestHistoryDisabled(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)
	rr := doJSON(t, h, http.MethodGet, "/v1/analyses", "key-1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Enabled bool             `json:"enabled"`
		Items   []*domain.Result `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Enabled)
	assert.Empty(t, body.Items)
}

func TestHistoryRequiresIdentity(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, &memRepo{})
	rr := doJSON(t, h, http.MethodGet, "/v1/analyses", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestInvalidAPIKeyRejected(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, &memRepo{})
	rr := doJSON(t, h, http.MethodGet, "/v1/analyses", "wrong-key", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAnalyzeThenHistory(t *testing.T) {
	repo := &memRepo{}
	h := newServer(&stubAnalyzer{res: domain.Example()}, repo)

	rr := doJSON(t, h, http.MethodPost, "/v1/analyses", "key-1",
		`{"title":"Echoes","lyrics":"la la la"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/v1/analyses", "key-1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Enabled bool             `json:"enabled"`
		Items   []*domain.Result `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Enabled)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "user-1", body.Items[0].OwnerID)
}

func TestGetAnalysisNotFound(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, &memRepo{})
	rr := doJSON(t, h, http.MethodGet, "/v1/analyses/nope", "key-1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExportSavedAnalysis(t *testing.T) {
	res := domain.Example()
	res.ID = "saved-1"
	res.OwnerID = "user-1"
	h := newServer(&stubAnalyzer{res: domain.Example()}, &memRepo{items: []*domain.Result{res}})

	rr := doJSON(t, h, http.MethodPost, "/v1/analyses/saved-1/export", "key-1",
		`{"format":"markdown"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "song_analysis_echoes_in_the_rain.md")
	assert.Contains(t, rr.Body.String(), "# Song Analysis Report")
}

func TestSessionFlow(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rr = doJSON(t, h, http.MethodGet, "/v1/sessions/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var v sessions.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, "input", string(v.State))

	rr = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.ID+"/analyze", "",
		`{"title":"Echoes","lyrics":"la la la"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, "report", string(v.State))

	rr = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.ID+"/reset", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, "input", string(v.State))
}

func TestSessionAnalyzeFailureRendersView(t *testing.T) {
	h := newServer(&stubAnalyzer{err: domain.ErrSafetyBlocked}, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.ID+"/analyze", "",
		`{"title":"Echoes","lyrics":"la la la"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var v sessions.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, "input", string(v.State))
	assert.NotEmpty(t, v.Error)
}

func TestSessionNotFound(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)
	rr := doJSON(t, h, http.MethodGet, "/v1/sessions/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionExportWithoutReport(t *testing.T) {
	h := newServer(&stubAnalyzer{res: domain.Example()}, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.ID+"/export", "",
		`{"format":"text"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
