package service

import (
	"context"

	"screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// ScreenshotAnalyzer resolves the user's screenshot from the session's
// artifacts and asks a vision model to describe it.
type ScreenshotAnalyzer struct {
	log          *log.Logger
	vision       adaptors.VisionModel
	model        string
	maxDimension uint
	strategies   []ResolutionStrategy
}

// NewScreenshotAnalyzer uses DefaultStrategies when strategies is empty.
func NewScreenshotAnalyzer(log *log.Logger, vision adaptors.VisionModel, model string, maxDimension uint, strategies ...ResolutionStrategy) *ScreenshotAnalyzer {
	if len(strategies) == 0 {
		strategies = DefaultStrategies(log)
	}
	return &ScreenshotAnalyzer{
		log:          log,
		vision:       vision,
		model:        model,
		maxDimension: maxDimension,
		strategies:   strategies,
	}
}

// Analyze never fails for a missing screenshot or an unparsable answer; both
// come back as ScreenAnalysis kinds. Store and model faults are returned.
func (a *ScreenshotAnalyzer) Analyze(ctx context.Context, store adaptors.ArtifactStore) (*models.ScreenAnalysis, error) {
	a.log.WithContext(ctx).Debug(`analyze screenshot started...`)

	artifact, strategy, err := a.resolve(ctx, store)
	if err != nil {
		a.log.WithContext(ctx).WithError(err).Error(`failed to resolve screenshot`)
		return nil, errors.Wrap(err, `failed to resolve screenshot`)
	}

	if artifact == nil {
		a.log.WithContext(ctx).Info(`no screenshot attached`)
		metrics.AnalyzerOutcomesTotal.WithLabelValues(string(models.AnalysisNoArtifact)).Inc()
		return models.NewNoArtifactAnalysis(), nil
	}

	metrics.AnalyzerResolutionsTotal.WithLabelValues(strategy).Inc()
	entry := a.log.WithContext(ctx).WithFields(log.Fields{
		`artifact`: artifact.Name,
		`strategy`: strategy,
		`model`:    a.model,
	})
	entry.Debug(`screenshot resolved`)

	image, scaled := downscale(artifact, a.maxDimension)
	if scaled {
		entry.Debugf(`screenshot downscaled to fit %dpx`, a.maxDimension)
	}

	response, err := a.vision.GenerateContent(ctx, a.model, image, AnalysisPrompt)
	if err != nil {
		entry.WithError(err).Error(`vision model call failed`)
		return nil, errors.Wrap(err, `vision model call failed`)
	}

	result := normalizeResponse(artifact.Name, response)
	if result.Kind == models.AnalysisRawFallback {
		entry.Warn(`vision response is not a JSON object, returning raw text`)
	}
	metrics.AnalyzerOutcomesTotal.WithLabelValues(string(result.Kind)).Inc()

	a.log.WithContext(ctx).Debug(`analyze screenshot ended...`)
	return result, nil
}

func (a *ScreenshotAnalyzer) resolve(ctx context.Context, store adaptors.ArtifactStore) (*models.Artifact, string, error) {
	for _, s := range a.strategies {
		artifact, err := s.Resolve(ctx, store)
		if err != nil {
			return nil, s.Name(), err
		}
		if artifact != nil {
			return artifact, s.Name(), nil
		}
	}
	return nil, "", nil
}
