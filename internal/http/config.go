package http

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

// NewHTTPServerConfig reads the api server settings from the environment.
// config.env is loaded by the app config beforehand.
func NewHTTPServerConfig() (*HTTPServerConfig, error) {
	var errors []string
	cfg := &HTTPServerConfig{}

	cfg.Host = os.Getenv("HTTP_SERVER_HOST")
	if cfg.Host == "" {
		cfg.Host = ":8080"
	}

	parseDuration := func(envVar string, fallback time.Duration) (time.Duration, error) {
		value := os.Getenv(envVar)
		if value == "" {
			return fallback, nil
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid duration format: %w", envVar, err)
		}
		return duration, nil
	}

	// Write covers a full tool call, which waits on the vision model.
	timeouts := []struct {
		env      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"HTTP_APP_READ_TIMEOUT_DURATION", 30 * time.Second, &cfg.Timeouts.Read},
		{"HTTP_APP_READ_HEADER_TIMEOUT_DURATION", 5 * time.Second, &cfg.Timeouts.ReadHeader},
		{"HTTP_APP_WRITE_TIMEOUT_DURATION", 90 * time.Second, &cfg.Timeouts.Write},
		{"HTTP_APP_IDLE_TIMEOUT_DURATION", 120 * time.Second, &cfg.Timeouts.Idle},
		{"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", 10 * time.Second, &cfg.Timeouts.ShutdownWait},
	}
	for _, t := range timeouts {
		dur, err := parseDuration(t.env, t.fallback)
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}
		*t.dst = dur
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return cfg, nil
}
