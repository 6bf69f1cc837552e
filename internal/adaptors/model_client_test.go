package adaptors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RoundTripFunc lets us mock http.RoundTripper easily.
type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubModelClient(fn RoundTripFunc) *ModelClient {
	return &ModelClient{
		client: &http.Client{
			Timeout:   1 * time.Second,
			Transport: fn,
		},
		log: log.New(),
	}
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestModelClient_PostJSON(t *testing.T) {
	ctx := context.Background()
	const testURL = "http://example.com/v1/models/m:generateContent"

	cases := []struct {
		name     string
		client   *ModelClient
		wantBody string
		wantCode int
		wantErr  bool
	}{
		{
			name: "success",
			client: stubModelClient(func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
				assert.Equal(t, "secret", req.Header.Get("x-goog-api-key"))

				var got map[string]string
				require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
				assert.Equal(t, map[string]string{"hello": "world"}, got)
				return jsonResponse(200, `{"ok":true}`), nil
			}),
			wantBody: `{"ok":true}`,
			wantCode: 200,
		},
		{
			name: "error status is returned, not failed",
			client: stubModelClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(429, `{"error":{"message":"quota"}}`), nil
			}),
			wantBody: `{"error":{"message":"quota"}}`,
			wantCode: 429,
		},
		{
			name: "network error",
			client: stubModelClient(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("network failure")
			}),
			wantErr: true,
		},
		{
			name: "read body error",
			client: stubModelClient(func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: 200, Body: errReadCloser{}, Header: make(http.Header)}, nil
			}),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, code, err := tc.client.PostJSON(ctx, testURL, map[string]string{"x-goog-api-key": "secret"}, map[string]string{"hello": "world"})
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, body)
				assert.Zero(t, code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBody, string(body))
			assert.Equal(t, tc.wantCode, code)
		})
	}
}

func TestModelClient_PostJSONInvalidURL(t *testing.T) {
	c := NewModelClient(time.Second, log.New())
	_, _, err := c.PostJSON(context.Background(), "://bad", nil, struct{}{})
	assert.Error(t, err)
}

// errReadCloser is an io.ReadCloser that always errors on Read.
type errReadCloser struct{}

func (e errReadCloser) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}
func (e errReadCloser) Close() error {
	return nil
}
