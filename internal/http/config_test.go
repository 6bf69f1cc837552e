package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServerConfigDefaults(t *testing.T) {
	for _, env := range []string{
		"HTTP_SERVER_HOST",
		"HTTP_APP_READ_TIMEOUT_DURATION",
		"HTTP_APP_READ_HEADER_TIMEOUT_DURATION",
		"HTTP_APP_WRITE_TIMEOUT_DURATION",
		"HTTP_APP_IDLE_TIMEOUT_DURATION",
		"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION",
	} {
		t.Setenv(env, "")
	}

	cfg, err := NewHTTPServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Host)
	assert.Equal(t, 90*time.Second, cfg.Timeouts.Write)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.ShutdownWait)
}

func TestNewHTTPServerConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_SERVER_HOST", "127.0.0.1:9000")
	t.Setenv("HTTP_APP_READ_TIMEOUT_DURATION", "3s")

	cfg, err := NewHTTPServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Host)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Read)

	t.Setenv("HTTP_APP_IDLE_TIMEOUT_DURATION", "forever")
	_, err = NewHTTPServerConfig()
	assert.ErrorContains(t, err, "HTTP_APP_IDLE_TIMEOUT_DURATION")
}
