package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newRouter(m *Metrics) http.Handler {
	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Post("/password-reset-link", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	})
	router.Post("/password-reset/{token}", func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte("{}"))
	})
	router.Method(http.MethodGet, "/metrics", m.Handler())
	return router
}

func TestRequestsCountedByRoute(t *testing.T) {
	m := New()
	router := newRouter(m)

	for _, path := range []string{"/password-reset/aaa", "/password-reset/bbb"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/password-reset-link", nil))

	require.Equal(
		t,
		2.0,
		testutil.ToFloat64(m.requests.WithLabelValues("/password-reset/{token}", http.MethodPost, "200")),
	)
	require.Equal(
		t,
		1.0,
		testutil.ToFloat64(m.requests.WithLabelValues("/password-reset-link", http.MethodPost, "404")),
	)
}

func TestUnmatchedRoute(t *testing.T) {
	m := New()
	router := newRouter(m)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/unknown", nil))

	require.Equal(
		t,
		1.0,
		testutil.ToFloat64(m.requests.WithLabelValues(unmatchedRoute, http.MethodGet, "404")),
	)
}

func TestMetricsEndpoint(t *testing.T) {
	m := New()
	router := newRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/password-reset-link", nil))

	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rw.Code)
	require.Contains(t, rw.Body.String(), "pwreset_http_requests_total")
	require.Contains(t, rw.Body.String(), "go_goroutines")
}
