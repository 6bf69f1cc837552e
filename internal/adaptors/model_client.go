package adaptors

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewInstrumentedTransport wraps base with the outbound request metrics. It
// is shared by the REST clients and the SDK-backed providers.
func NewInstrumentedTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(metrics.HTTPClientInFlight,
		promhttp.InstrumentRoundTripperDuration(metrics.HTTPClientRequestDuration,
			promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, base)))
}

// NewInstrumentedHTTPClient returns an http.Client with the given timeout and
// the instrumented default transport.
func NewInstrumentedHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewInstrumentedTransport(nil),
	}
}

// ModelClient posts JSON payloads to model provider REST endpoints.
type ModelClient struct {
	client *http.Client
	log    *log.Logger
}

func NewModelClient(timeout time.Duration, log *log.Logger) *ModelClient {
	return &ModelClient{
		client: NewInstrumentedHTTPClient(timeout),
		log:    log,
	}
}

// PostJSON sends payload as JSON and returns the raw body and status code.
// Non-2xx statuses are not errors here; the caller decides.
func (m *ModelClient) PostJSON(ctx context.Context, url string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, errors.Wrap(err, `failed to marshal request payload`)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		m.log.WithError(err).Error(`failed to create request`)
		return nil, 0, errors.Wrap(err, `failed to create request`)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.WithError(err).Error(`model request failed`)
		return nil, 0, errors.Wrap(err, `model request failed`)
	}
	defer resp.Body.Close()

	bodyByte, err := io.ReadAll(resp.Body)
	if err != nil {
		m.log.Errorf(`failed to read response body. error: %v`, err)
		return nil, 0, errors.Wrap(err, `failed to read response body`)
	}

	return bodyByte, resp.StatusCode, nil
}
