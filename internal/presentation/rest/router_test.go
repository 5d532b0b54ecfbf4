package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/service"
	"github.com/clippintel/botscore/internal/infrastructure/memory"
	"github.com/clippintel/botscore/internal/infrastructure/provider"
	"github.com/clippintel/botscore/internal/presentation/rest"
	"github.com/clippintel/botscore/pkg/testutil"
)

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(repo port.AnalysisRepository, checks map[string]rest.ReadinessCheck) http.Handler {
	return newRouterWithLimiter(repo, checks, nil)
}

func newRouterWithLimiter(repo port.AnalysisRepository, checks map[string]rest.ReadinessCheck, limiter *rest.ClientRateLimiter) http.Handler {
	logger := testLogger()

	metrics := provider.NewStaticProvider()
	metrics.Add(testutil.OrganicCreator, testutil.OrganicMetrics())
	metrics.Add(testutil.BotFarmCreator, testutil.BotFarmMetrics())

	orchestrator := service.NewOrchestrator(service.NewEngine(), metrics, nil, logger,
		service.OrchestratorConfig{Sleep: func(ctx context.Context, _ time.Duration) error { return ctx.Err() }})

	return rest.NewRouter(rest.RouterConfig{
		Analyses: rest.NewAnalysisHandler(
			usecase.NewAnalyzeAccount(orchestrator, repo, nil, logger),
			usecase.NewAnalyzeBatch(orchestrator, repo, nil, logger),
			usecase.NewGetAnalysis(repo),
			usecase.NewListAnalyses(repo),
			logger,
		),
		Health:      rest.NewHealthHandler("botscore", checks, logger),
		Metrics:     http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "# metrics") }),
		RateLimiter: limiter,
		Logger:      logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out))
	return out
}

// --- Tests ---

func TestRouter_AnalyzeAccount(t *testing.T) {
	h := newRouter(memory.NewAnalysisRepository(0), nil)

	rec := do(t, h, http.MethodPost, "/v1/analyses", `{"handle":"growth_hack_2024","platform":"tiktok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[dto.AnalysisResponse](t, rec)
	assert.Equal(t, "high", resp.RiskLevel)
	assert.Equal(t, "REJECT", resp.Verdict)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	// The public contract uses camelCase keys.
	assert.Contains(t, rec.Body.String(), `"botScore"`)
	assert.Contains(t, rec.Body.String(), `"redFlags"`)
}

func TestRouter_AnalyzeAccount_Errors(t *testing.T) {
	h := newRouter(memory.NewAnalysisRepository(0), nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"malformed json", `{"handle":`, http.StatusBadRequest},
		{"unsupported platform", `{"handle":"x","platform":"vine"}`, http.StatusBadRequest},
		{"missing handle", `{"platform":"tiktok"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/analyses", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, decode[rest.ErrorResponse](t, rec).Error)
		})
	}
}

func TestRouter_AnalyzeBatch(t *testing.T) {
	h := newRouter(memory.NewAnalysisRepository(0), nil)

	rec := do(t, h, http.MethodPost, "/v1/analyses/batch", `{"accounts":[
		{"handle":"organic.creator","platform":"instagram"},
		{"handle":"growth_hack_2024","platform":"tiktok"},
		{"handle":"missing","platform":"youtube"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.BatchAnalysisResponse](t, rec)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, dto.BatchSummary{
		Total:           3,
		Completed:       2,
		Failed:          1,
		HighRisk:        1,
		AverageBotScore: resp.Summary.AverageBotScore,
	}, resp.Summary)
	assert.True(t, resp.Results[2].Degraded)

	rec = do(t, h, http.MethodPost, "/v1/analyses/batch", `{"accounts":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_StoredAnalyses(t *testing.T) {
	h := newRouter(memory.NewAnalysisRepository(0), nil)

	created := decode[dto.AnalysisResponse](t,
		do(t, h, http.MethodPost, "/v1/analyses", `{"handle":"organic.creator","platform":"instagram"}`))

	t.Run("get", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/analyses/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created.ID, decode[dto.AnalysisResponse](t, rec).ID)
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/v1/accounts/instagram/Organic.Creator/analyses?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[dto.ListAnalysesResponse](t, rec)
		require.Len(t, resp.Analyses, 1)
		assert.Equal(t, created.ID, resp.Analyses[0].ID)
	})

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"malformed id", "/v1/analyses/nope", http.StatusBadRequest},
		{"unknown id", "/v1/analyses/" + uuid.NewString(), http.StatusNotFound},
		{"bad limit", "/v1/accounts/instagram/organic.creator/analyses?limit=ten", http.StatusBadRequest},
		{"negative offset", "/v1/accounts/instagram/organic.creator/analyses?offset=-2", http.StatusBadRequest},
		{"bad platform", "/v1/accounts/orkut/organic.creator/analyses", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, do(t, h, http.MethodGet, tt.path, "").Code)
		})
	}
}

func TestRouter_StorageDisabled(t *testing.T) {
	h := newRouter(nil, nil)

	rec := do(t, h, http.MethodGet, "/v1/analyses/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Analysis itself still works.
	rec = do(t, h, http.MethodPost, "/v1/analyses", `{"handle":"organic.creator","platform":"instagram"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		rec := do(t, newRouter(nil, nil), http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[rest.HealthResponse](t, rec)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "botscore", resp.Service)
	})

	t.Run("readyz", func(t *testing.T) {
		tests := []struct {
			name       string
			checks     map[string]rest.ReadinessCheck
			wantCode   int
			wantStatus string
			wantChecks map[string]string
		}{
			{
				name:       "no dependencies",
				wantCode:   http.StatusOK,
				wantStatus: "ready",
				wantChecks: map[string]string{},
			},
			{
				name: "all healthy",
				checks: map[string]rest.ReadinessCheck{
					"database": func(context.Context) error { return nil },
					"kafka":    func(context.Context) error { return nil },
				},
				wantCode:   http.StatusOK,
				wantStatus: "ready",
				wantChecks: map[string]string{"database": "ok", "kafka": "ok"},
			},
			{
				name: "database down",
				checks: map[string]rest.ReadinessCheck{
					"database": func(context.Context) error { return errors.New("connection refused") },
					"kafka":    func(context.Context) error { return nil },
				},
				wantCode:   http.StatusServiceUnavailable,
				wantStatus: "not_ready",
				wantChecks: map[string]string{"database": "connection refused", "kafka": "ok"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := do(t, newRouter(nil, tt.checks), http.MethodGet, "/readyz", "")
				require.Equal(t, tt.wantCode, rec.Code)
				resp := decode[rest.ReadinessResponse](t, rec)
				assert.Equal(t, tt.wantStatus, resp.Status)
				assert.Equal(t, tt.wantChecks, resp.Checks)
			})
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(t, newRouter(nil, nil), http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "# metrics", rec.Body.String())
	})
}

func TestRouter_RateLimitsAPIOnly(t *testing.T) {
	h := newRouterWithLimiter(nil, nil, rest.NewClientRateLimiter(0.01, 1))

	assert.Equal(t, http.StatusOK,
		do(t, h, http.MethodPost, "/v1/analyses", `{"handle":"organic.creator","platform":"instagram"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests,
		do(t, h, http.MethodPost, "/v1/analyses", `{"handle":"organic.creator","platform":"instagram"}`).Code)

	// Probes are never limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "").Code)
}

func newPacedRouter(pacing, requestTimeout, batchTimeout time.Duration) http.Handler {
	logger := testLogger()

	metrics := provider.NewStaticProvider()
	metrics.Add(testutil.OrganicCreator, testutil.OrganicMetrics())

	orchestrator := service.NewOrchestrator(service.NewEngine(), metrics, nil, logger,
		service.OrchestratorConfig{Pacing: pacing, Sleep: service.SleepContext})
	repo := memory.NewAnalysisRepository(0)

	return rest.NewRouter(rest.RouterConfig{
		Analyses: rest.NewAnalysisHandler(
			usecase.NewAnalyzeAccount(orchestrator, repo, nil, logger),
			usecase.NewAnalyzeBatch(orchestrator, repo, nil, logger),
			usecase.NewGetAnalysis(repo),
			usecase.NewListAnalyses(repo),
			logger,
		),
		Health:         rest.NewHealthHandler("botscore", nil, logger),
		Logger:         logger,
		RequestTimeout: requestTimeout,
		BatchTimeout:   batchTimeout,
	})
}

func TestRouter_BatchOutlastsRequestTimeout(t *testing.T) {
	const (
		items          = 6
		pacing         = 100 * time.Millisecond
		requestTimeout = 250 * time.Millisecond
	)
	accounts := make([]string, items)
	for i := range accounts {
		accounts[i] = `{"handle":"organic.creator","platform":"instagram"}`
	}
	body := `{"accounts":[` + strings.Join(accounts, ",") + `]}`

	tests := []struct {
		name         string
		batchTimeout time.Duration
	}{
		{name: "sized batch timeout", batchTimeout: rest.BatchTimeout(items, pacing, 50*time.Millisecond)},
		{name: "no batch timeout", batchTimeout: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newPacedRouter(pacing, requestTimeout, tt.batchTimeout)

			rec := do(t, h, http.MethodPost, "/v1/analyses/batch", body)
			require.Equal(t, http.StatusOK, rec.Code)

			resp := decode[dto.BatchAnalysisResponse](t, rec)
			assert.Equal(t, items, resp.Summary.Total)
			assert.Equal(t, items, resp.Summary.Completed)
			assert.Zero(t, resp.Summary.Failed)
			for _, r := range resp.Results {
				assert.False(t, r.Degraded, r.RedFlags)
			}
		})
	}
}

func TestRouter_BatchTimeoutCutsLongBatches(t *testing.T) {
	h := newPacedRouter(100*time.Millisecond, time.Minute, 150*time.Millisecond)

	rec := do(t, h, http.MethodPost, "/v1/analyses/batch", `{"accounts":[
		{"handle":"organic.creator","platform":"instagram"},
		{"handle":"organic.creator","platform":"instagram"},
		{"handle":"organic.creator","platform":"instagram"},
		{"handle":"organic.creator","platform":"instagram"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.BatchAnalysisResponse](t, rec)
	assert.Equal(t, 4, resp.Summary.Total)
	assert.Positive(t, resp.Summary.Completed)
	assert.Positive(t, resp.Summary.Failed)
}

func TestBatchTimeout(t *testing.T) {
	assert.Equal(t, 1200*time.Second, rest.BatchTimeout(100, 2*time.Second, 10*time.Second))
	assert.Zero(t, rest.BatchTimeout(0, time.Second, time.Second))
}
