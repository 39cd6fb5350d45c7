package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type MetricsTestSuite struct {
	suite.Suite
	provider *Provider
	ctx      context.Context
}

func (s *MetricsTestSuite) SetupTest() {
	var err error
	s.provider, err = NewProvider()
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *MetricsTestSuite) scrape() string {
	w := httptest.NewRecorder()
	s.provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Require().Equal(http.StatusOK, w.Code)
	return w.Body.String()
}

func (s *MetricsTestSuite) TestNewProvider() {
	s.Assert().NotNil(s.provider.RequestsTotal)
	s.Assert().NotNil(s.provider.RequestDuration)
	s.Assert().NotNil(s.provider.RequestsInFlight)
	s.Assert().NotNil(s.provider.ValidationFailures)
	s.Assert().NotNil(s.provider.Exports)

	other, err := NewProvider()
	s.Require().NoError(err)
	s.Assert().NotSame(s.provider.registry, other.registry)
}

func (s *MetricsTestSuite) TestHTTPInstruments() {
	attrs := metric.WithAttributes(attribute.String("method", "GET"), attribute.String("status", "200"))
	s.provider.RequestsTotal.Add(s.ctx, 1, attrs)
	s.provider.RequestDuration.Record(s.ctx, 0.2, attrs)
	s.provider.RequestsInFlight.Add(s.ctx, 1)
	s.provider.RequestsInFlight.Add(s.ctx, -1)

	body := s.scrape()

	s.Assert().Contains(body, "http_requests_total")
	s.Assert().Contains(body, "http_request_duration_seconds")
	s.Assert().Contains(body, "http_requests_in_flight")
}

func (s *MetricsTestSuite) TestDomainCounters() {
	s.provider.RecordValidationFailure(s.ctx, "perfil", "matricula")
	s.provider.RecordValidationFailure(s.ctx, "perfil", "senha")
	s.provider.RecordExport(s.ctx, "avaliacoes")

	body := s.scrape()

	s.Assert().Contains(body, "form_validation_failures_total")
	s.Assert().Contains(body, `field="matricula"`)
	s.Assert().Contains(body, "csv_exports_total")
	s.Assert().Contains(body, `kind="avaliacoes"`)
}

func (s *MetricsTestSuite) TestNilProviderIsSafe() {
	var p *Provider

	s.Assert().NotPanics(func() {
		p.RecordValidationFailure(s.ctx, "perfil", "email")
		p.RecordExport(s.ctx, "usuarios")
	})
}

func (s *MetricsTestSuite) TestConcurrentRecording() {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.provider.RecordValidationFailure(s.ctx, "perfil", "nome")
			}
		}()
	}
	wg.Wait()

	s.Assert().Contains(s.scrape(), "form_validation_failures_total")
}

func TestMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}
