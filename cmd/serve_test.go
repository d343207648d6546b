package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/store"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

var testServerConfig = config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}}

type failingSink struct{}

func (failingSink) Name() string { return "failing" }

func (failingSink) Write(context.Context, *submission.Record) error {
	return errors.New("disk full")
}

func newTestEnv(t *testing.T, extra ...submission.Sink) *appEnv {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))

	sinks := append([]submission.Sink{submission.StoreSink(st)}, extra...)
	d := submission.NewDispatcher(cfg.Retry, sinks...)
	env := &appEnv{
		Store:      st,
		Dispatcher: d,
		Service:    assessment.NewService(scorer.CalibratedConfig(), assessment.WithWriter(d)),
	}
	t.Cleanup(env.Close)
	return env
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func TestHealthEndpoint(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	rr := do(t, h, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "ok", decodeBody(t, rr)["status"])
}

func TestReadyEndpoint(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	rr := do(t, h, http.MethodGet, "/readyz", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody(t, rr)["db"])
}

func TestCreateAssessment_SavesAndFetches(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	rr := do(t, h, http.MethodPost, "/v1/assessments", readTestdata(t, "budi.json"), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	report := body["report"].(map[string]any)
	assert.Equal(t, "en", report["lang"])
	assert.Len(t, body["scores"], 4)

	rr = do(t, h, http.MethodGet, "/v1/assessments/"+id, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rec := decodeBody(t, rr)
	assert.Equal(t, id, rec["id"])
	assert.Equal(t, "calibrated", rec["variant"])
	assert.Equal(t, "en", rec["locale"])
}

func TestCreateAssessment_NoSave(t *testing.T) {
	env := newTestEnv(t)
	h := newRouter(env, testServerConfig)

	rr := do(t, h, http.MethodPost, "/v1/assessments?save=false", readTestdata(t, "budi.json"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, decodeBody(t, rr), "id")

	st, err := env.Store.Stats(context.Background(), store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Count)
}

func TestCreateAssessment_BadSaveParam(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)
	rr := do(t, h, http.MethodPost, "/v1/assessments?save=maybe", readTestdata(t, "budi.json"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateAssessment_Language(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"default", "/v1/assessments?save=false", nil, "en"},
		{"query", "/v1/assessments?save=false&lang=id", nil, "id"},
		{"header", "/v1/assessments?save=false", map[string]string{"Accept-Language": "id-ID,id;q=0.9,en;q=0.5"}, "id"},
		{"query wins", "/v1/assessments?save=false&lang=en", map[string]string{"Accept-Language": "id"}, "en"},
		{"unsupported", "/v1/assessments?save=false&lang=fr", nil, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.target, readTestdata(t, "budi.json"), tt.header)
			require.Equal(t, http.StatusOK, rr.Code)
			report := decodeBody(t, rr)["report"].(map[string]any)
			assert.Equal(t, tt.want, report["lang"])
		})
	}
}

func TestCreateAssessment_MissingFields(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	data, err := json.Marshal(map[string]any{
		"personal": map[string]any{"name": "", "age": 0, "sex": "female", "height": 160, "weight": 55},
	})
	require.NoError(t, err)

	rr := do(t, h, http.MethodPost, "/v1/assessments?lang=id", data, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decodeBody(t, rr)
	assert.Contains(t, body["error"], "Harap isi bidang wajib berikut:")
	fields := body["fields"].([]any)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "age")
	assert.NotContains(t, fields, "height")
}

func TestCreateAssessment_InvalidBody(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"personal":{"nickname":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/v1/assessments", []byte(tt.body), nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "invalid request body", decodeBody(t, rr)["error"])
		})
	}
}

func TestCreateAssessment_PersistFailure(t *testing.T) {
	h := newRouter(newTestEnv(t, failingSink{}), testServerConfig)

	rr := do(t, h, http.MethodPost, "/v1/assessments", readTestdata(t, "budi.json"), nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "There was a problem saving your data. Please try again.", body["error"])
	assert.NotEmpty(t, body["id"])
}

func TestGetAssessment_NotFound(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)
	rr := do(t, h, http.MethodGet, "/v1/assessments/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestScoringEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := newRouter(env, testServerConfig)

	rr := do(t, h, http.MethodGet, "/v1/scoring", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "calibrated", body["variant"])
	assert.Equal(t, env.Service.Hash(), body["hash"])
	assert.Contains(t, body, "config")
}

func TestStatsEndpoint(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	for range 2 {
		rr := do(t, h, http.MethodPost, "/v1/assessments", readTestdata(t, "budi.json"), nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := do(t, h, http.MethodGet, "/v1/stats?variant=calibrated", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 2, decodeBody(t, rr)["count"])

	rr = do(t, h, http.MethodGet, "/v1/stats?since=yesterday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimit(t *testing.T) {
	sc := testServerConfig
	sc.RateLimit = 0.001
	sc.RateBurst = 1
	h := newRouter(newTestEnv(t), sc)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil, nil).Code)
	rr := do(t, h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	h := newRouter(newTestEnv(t), testServerConfig)

	rr := do(t, h, http.MethodOptions, "/v1/assessments", nil, map[string]string{
		"Origin":                        "https://form.example.com",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewCheckerReportsFailingSink(t *testing.T) {
	env := newTestEnv(t, failingSink{})
	h := newRouter(env, testServerConfig)

	rr := do(t, h, http.MethodPost, "/v1/assessments", readTestdata(t, "budi.json"), nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	mc := config.MonitoringConfig{Enabled: true, FailureRateThreshold: 0.2, MinWrites: 1, LookbackWindowHours: 24}
	alerts := newChecker(env, mc).Check(context.Background())

	require.Len(t, alerts, 1)
	assert.Equal(t, "sink_failure_rate", string(alerts[0].Type))
	assert.Equal(t, "failing", alerts[0].Details["sink"])
}
