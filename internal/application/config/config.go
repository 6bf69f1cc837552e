package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"

	SearchBackendGemini  = "gemini"
	SearchBackendSerpAPI = "serpapi"
)

const defaultLogLevel = "info"

var defaultVisionModels = map[string]string{
	ProviderGemini: "gemini-2.0-flash",
	ProviderClaude: "claude-sonnet-4-20250514",
	ProviderOpenAI: "gpt-4o",
}

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string
	PprofHost   string

	GeminiAPIKey    string
	GeminiBaseURL   string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	VisionProvider     string
	VisionModel        string
	SearchModel        string
	VisionMaxDimension uint
	ModelClientTimeout time.Duration
	SearchBackend      string
	SerpAPIKey         string
	SearchMaxResults   int
	ArtifactMaxBytes   int64
}

// NewAppConfig reads config.env when present and then the process
// environment. GEMINI_API_KEY is mandatory.
func NewAppConfig() (*AppConfig, error) {
	if err := godotenv.Load(`config.env`); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	var errMsg []string

	cfg := AppConfig{}
	cfg.LogLevel = envOr("APP_LOG_LEVEL", defaultLogLevel)
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = os.Getenv("HTTP_APP_METRICS_HOST")
	cfg.PprofHost = envOr("HTTP_APP_PPROF_HOST", ":6060")

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiBaseURL = strings.TrimRight(envOr("GEMINI_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"), "/")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	cfg.VisionProvider = strings.ToLower(envOr("VISION_PROVIDER", ProviderGemini))
	cfg.VisionModel = envOr("VISION_MODEL", defaultVisionModels[cfg.VisionProvider])
	cfg.SearchModel = envOr("SEARCH_MODEL", "gemini-2.0-flash")
	cfg.SearchBackend = strings.ToLower(envOr("SEARCH_BACKEND", SearchBackendGemini))
	cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")

	if v, err := strconv.ParseUint(envOr("VISION_MAX_IMAGE_DIMENSION", "2048"), 10, 32); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`VISION_MAX_IMAGE_DIMENSION: %v`, err))
	} else {
		cfg.VisionMaxDimension = uint(v)
	}

	if d, err := time.ParseDuration(envOr("MODEL_CLIENT_TIMEOUT_DURATION", "60s")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`MODEL_CLIENT_TIMEOUT_DURATION: %v`, err))
	} else {
		cfg.ModelClientTimeout = d
	}

	if n, err := strconv.Atoi(envOr("SEARCH_MAX_RESULTS", "10")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`SEARCH_MAX_RESULTS: %v`, err))
	} else {
		cfg.SearchMaxResults = n
	}

	if n, err := strconv.ParseInt(envOr("ARTIFACT_MAX_BYTES", strconv.Itoa(20<<20)), 10, 64); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`ARTIFACT_MAX_BYTES: %v`, err))
	} else {
		cfg.ArtifactMaxBytes = n
	}

	errMsg = append(errMsg, validate(&cfg)...)
	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) []string {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	}

	if cfg.GeminiAPIKey == "" {
		errMsg = append(errMsg, `GEMINI_API_KEY is required`)
	}

	switch cfg.VisionProvider {
	case ProviderGemini:
	case ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			errMsg = append(errMsg, `ANTHROPIC_API_KEY is required for the claude vision provider`)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			errMsg = append(errMsg, `OPENAI_API_KEY is required for the openai vision provider`)
		}
	default:
		errMsg = append(errMsg, fmt.Sprintf(`unknown vision provider %q (supported: gemini, claude, openai)`, cfg.VisionProvider))
	}

	switch cfg.SearchBackend {
	case SearchBackendGemini:
	case SearchBackendSerpAPI:
		if cfg.SerpAPIKey == "" {
			errMsg = append(errMsg, `SERPAPI_API_KEY is required for the serpapi search backend`)
		}
	default:
		errMsg = append(errMsg, fmt.Sprintf(`unknown search backend %q (supported: gemini, serpapi)`, cfg.SearchBackend))
	}

	if cfg.SearchMaxResults <= 0 {
		errMsg = append(errMsg, `SEARCH_MAX_RESULTS must be positive`)
	}

	if cfg.ArtifactMaxBytes <= 0 {
		errMsg = append(errMsg, `ARTIFACT_MAX_BYTES must be positive`)
	}

	return errMsg
}

// ValidateServer checks the settings only the HTTP host needs. The CLI loads
// the same config without them.
func (c *AppConfig) ValidateServer() error {
	var errMsg []string
	if c.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty (HTTP_APP_METRICS_HOST)`)
	}
	if c.PprofHost == "" {
		errMsg = append(errMsg, `pprof host is empty (HTTP_APP_PPROF_HOST)`)
	}
	if len(errMsg) != 0 {
		return fmt.Errorf(`server validation failed: %s`, strings.Join(errMsg, "\n"))
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
