package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamCount(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.UpstreamCount(APISpoonacular))

	m.ObserveUpstream(APISpoonacular, OutcomeSuccess, 10*time.Millisecond)
	m.ObserveUpstream(APISpoonacular, OutcomeStatus, 10*time.Millisecond)
	m.ObserveUpstream(APIGemini, OutcomeSuccess, time.Second)

	assert.Equal(t, 2, m.UpstreamCount(APISpoonacular))
	assert.Equal(t, 1, m.UpstreamCount(APIGemini))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("GET", "/", 200, time.Millisecond)
	m.ObserveUpstream(APIGemini, OutcomeSuccess, time.Millisecond)
	assert.Equal(t, 0, m.UpstreamCount(APIGemini))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTP("POST", "/api/recipe-generator", 200, 50*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `scavengr_http_requests_total{method="POST",path="/api/recipe-generator",status="200"} 1`)
}
