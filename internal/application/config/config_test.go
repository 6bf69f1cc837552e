package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_LOG_LEVEL", "APP_ENABLE_DEBUG", "HTTP_APP_PPROF_HOST", "GEMINI_API_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "VISION_PROVIDER", "VISION_MODEL",
		"VISION_MAX_IMAGE_DIMENSION", "MODEL_CLIENT_TIMEOUT_DURATION", "SEARCH_BACKEND", "SEARCH_MODEL",
		"SERPAPI_API_KEY", "SEARCH_MAX_RESULTS", "ARTIFACT_MAX_BYTES",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HTTP_APP_METRICS_HOST", ":9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestFromEnvDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":6060", cfg.PprofHost)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiBaseURL)
	assert.Equal(t, ProviderGemini, cfg.VisionProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.VisionModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.SearchModel)
	assert.Equal(t, uint(2048), cfg.VisionMaxDimension)
	assert.Equal(t, 60*time.Second, cfg.ModelClientTimeout)
	assert.Equal(t, SearchBackendGemini, cfg.SearchBackend)
	assert.Equal(t, 10, cfg.SearchMaxResults)
	assert.Equal(t, int64(20<<20), cfg.ArtifactMaxBytes)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing api key",
			env:     map[string]string{"GEMINI_API_KEY": ""},
			wantErr: "GEMINI_API_KEY is required",
		},
		{
			name:    "claude without key",
			env:     map[string]string{"VISION_PROVIDER": "claude"},
			wantErr: "ANTHROPIC_API_KEY is required",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"VISION_PROVIDER": "llama"},
			wantErr: `unknown vision provider "llama"`,
		},
		{
			name:    "serpapi without key",
			env:     map[string]string{"SEARCH_BACKEND": "serpapi"},
			wantErr: "SERPAPI_API_KEY is required",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"MODEL_CLIENT_TIMEOUT_DURATION": "soon"},
			wantErr: "MODEL_CLIENT_TIMEOUT_DURATION",
		},
		{
			name:    "non positive results",
			env:     map[string]string{"SEARCH_MAX_RESULTS": "0"},
			wantErr: "SEARCH_MAX_RESULTS must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := fromEnv()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnvOpenAIProvider(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("VISION_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VISION_MODEL", "gpt-4o")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.VisionProvider)
	assert.Equal(t, "gpt-4o", cfg.VisionModel)
}

func TestFromEnvProviderDefaultModel(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("VISION_PROVIDER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.VisionModel)
}

func TestFromEnvOnlyAPIKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_APP_METRICS_HOST", "")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.MetricsHost)

	err = cfg.ValidateServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics host is empty")
}

func TestValidateServer(t *testing.T) {
	setBaseEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateServer())

	cfg.PprofHost = ""
	assert.ErrorContains(t, cfg.ValidateServer(), "pprof host is empty")
}
