package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/metrics"
)

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.ConsentOutcome("granted")
	m.ConsentOutcome("granted")
	m.ConsentOutcome("expired")
	m.Booking("ok")
	m.Login(false)

	expected := `
# HELP clinic_consent_outcomes_total Finished consent requests by outcome
# TYPE clinic_consent_outcomes_total counter
clinic_consent_outcomes_total{outcome="expired"} 1
clinic_consent_outcomes_total{outcome="granted"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "clinic_consent_outcomes_total"))

	n, err := testutil.GatherAndCount(m.Registry(), "clinic_bookings_total", "clinic_logins_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUnaryInterceptor(t *testing.T) {
	m := metrics.New()
	ic := m.UnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/clinic.v1.ClinicService/Login"}

	_, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "no")
	})
	assert.Error(t, err)

	n, err := testutil.GatherAndCount(m.Registry(), "clinic_rpc_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandlerServesText(t *testing.T) {
	m := metrics.New()
	m.Login(true)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `clinic_logins_total{result="success"} 1`)
}
