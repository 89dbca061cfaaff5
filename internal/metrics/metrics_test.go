package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/days/{date}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/days/2024-03-11", "/days/2024-03-12"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, m)
	assert.Contains(t, out, `cantine_http_requests_total{method="GET",route="/days/{date}",status="404"} 2`)
	assert.Contains(t, out, `cantine_http_request_duration_seconds_count{method="GET",route="/days/{date}"} 2`)
}

func TestObserveDocumentAndDays(t *testing.T) {
	m := New()
	m.ObserveDocument("pdf", nil)
	m.ObserveDocument("pdf", errors.New("boom"))
	m.ObserveDocument("html", nil)
	m.SetDays(12)

	out := scrape(t, m)
	assert.Contains(t, out, `cantine_documents_parsed_total{format="pdf",result="ok"} 1`)
	assert.Contains(t, out, `cantine_documents_parsed_total{format="pdf",result="error"} 1`)
	assert.Contains(t, out, `cantine_documents_parsed_total{format="html",result="ok"} 1`)
	assert.Contains(t, out, "cantine_catalogue_days 12")
	assert.Contains(t, out, "go_goroutines")
}
