package api_test

import (
	"finplan/internal/api"
	"finplan/internal/api/handler/v1handler"
	"finplan/internal/refdata"
	"finplan/internal/report"
	"finplan/pkg/domain"
	mockplanner "finplan/pkg/planner/mock"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (*mockplanner.MockClient, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mockplanner.NewMockClient(ctrl)
	v1 := v1handler.New(v1handler.Deps{
		Planner:  client,
		Loader:   refdata.NewLoader(client, nil),
		Exporter: report.NewExporter(client, nil),
	}, v1handler.Options{IdleTTL: time.Hour})

	return client, api.NewHandler(api.Deps{V1: v1}, api.Options{
		MetricsPath:    "/metrics",
		AllowedOrigins: []string{"*"},
	})
}

func TestNewHandler_Healthz(t *testing.T) {
	_, h := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestNewHandler_Spec(t *testing.T) {
	_, h := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/specs/v1.yaml", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rr.Body.String(), "openapi:"))
}

func TestNewHandler_Docs(t *testing.T) {
	_, h := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/docs/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Financial Planning Intake")
}

func TestNewHandler_Metrics(t *testing.T) {
	_, h := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNewHandler_Pprof(t *testing.T) {
	_, h := newTestHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNewHandler_V1Routes(t *testing.T) {
	client, h := newTestHandler(t)

	client.EXPECT().Countries(gomock.Any()).Return([]domain.Country{}, nil)
	client.EXPECT().Industries(gomock.Any()).Return([]domain.Industry{}, nil)
	client.EXPECT().Currencies(gomock.Any()).Return([]domain.Currency{}, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_Preflight(t *testing.T) {
	_, h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/sessions", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestNewServer_RequestTimeout(t *testing.T) {
	srv := api.NewServer(api.Deps{V1: v1handler.New(v1handler.Deps{}, v1handler.Options{})}, api.Options{
		Addr:           ":0",
		MetricsPath:    "/metrics",
		RequestTimeout: time.Second,
	})
	require.Equal(t, ":0", srv.Addr)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}
