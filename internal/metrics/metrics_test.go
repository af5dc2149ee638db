package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Biskuitttt/Suratt/internal/services/access"
)

var _ access.Metrics = (*Metrics)(nil)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCountersExposed(t *testing.T) {
	m := New()
	m.AccessResolved(access.OutcomeFound)
	m.AccessResolved(access.OutcomeFound)
	m.AccessResolved(access.OutcomeGuessed)
	m.PhotoResolved(access.TierConventional.String())
	m.LookupDegraded("accessCodes")

	body := scrape(t, m)
	assert.Contains(t, body, `surat_access_resolutions_total{outcome="found"} 2`)
	assert.Contains(t, body, `surat_access_resolutions_total{outcome="guessed"} 1`)
	assert.Contains(t, body, `surat_photo_resolutions_total{tier="conventional"} 1`)
	assert.Contains(t, body, `surat_degraded_lookups_total{collection="accessCodes"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.AccessResolved(access.OutcomeFound)

	assert.NotContains(t, scrape(t, b), `surat_access_resolutions_total{outcome="found"}`)
}
