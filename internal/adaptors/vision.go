package adaptors

import (
	"screen_navigator/internal/application/config"
	domain "screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// NewVisionModel picks the provider named in the config.
func NewVisionModel(cfg *config.AppConfig, log *log.Logger) (domain.VisionModel, error) {
	switch cfg.VisionProvider {
	case config.ProviderGemini:
		return NewGemini(NewModelClient(cfg.ModelClientTimeout, log), cfg.GeminiBaseURL, cfg.GeminiAPIKey, log), nil
	case config.ProviderClaude:
		return NewClaudeVision(cfg.AnthropicAPIKey, NewInstrumentedHTTPClient(cfg.ModelClientTimeout), log), nil
	case config.ProviderOpenAI:
		return NewOpenAIVision(cfg.OpenAIAPIKey, "", NewInstrumentedHTTPClient(cfg.ModelClientTimeout), log), nil
	default:
		return nil, errors.Errorf(`unknown vision provider: %s (supported: gemini, claude, openai)`, cfg.VisionProvider)
	}
}

// NewSearcher picks the search backend named in the config.
func NewSearcher(cfg *config.AppConfig, log *log.Logger) (domain.Searcher, error) {
	switch cfg.SearchBackend {
	case config.SearchBackendGemini:
		gemini := NewGemini(NewModelClient(cfg.ModelClientTimeout, log), cfg.GeminiBaseURL, cfg.GeminiAPIKey, log)
		return NewGeminiSearch(gemini, cfg.SearchModel, cfg.SearchMaxResults), nil
	case config.SearchBackendSerpAPI:
		return NewSerpAPISearch(cfg.SerpAPIKey, cfg.SearchMaxResults, log), nil
	default:
		return nil, errors.Errorf(`unknown search backend: %s (supported: gemini, serpapi)`, cfg.SearchBackend)
	}
}
