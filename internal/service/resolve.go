package service

import (
	"context"
	"strings"

	"screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

// ConventionalScreenshotNames are probed in this order before any listing.
var ConventionalScreenshotNames = []string{"screenshot.png", "screenshot.jpg", "screenshot.jpeg", "screen.png"}

// ImageExtensions are the suffixes the listing fallback accepts.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// ResolutionStrategy finds a screenshot in an artifact store. A nil artifact
// with a nil error is a miss and the next strategy runs.
type ResolutionStrategy interface {
	Name() string
	Resolve(ctx context.Context, store adaptors.ArtifactStore) (*models.Artifact, error)
}

// DefaultStrategies returns the conventional-name probe followed by the
// latest-image listing fallback.
func DefaultStrategies(log *log.Logger) []ResolutionStrategy {
	return []ResolutionStrategy{
		NewConventionalNames(ConventionalScreenshotNames),
		NewLatestImageListing(ImageExtensions, log),
	}
}

type conventionalNames struct {
	names []string
}

func NewConventionalNames(names []string) ResolutionStrategy {
	return &conventionalNames{names: names}
}

func (c *conventionalNames) Name() string { return "conventional_name" }

func (c *conventionalNames) Resolve(ctx context.Context, store adaptors.ArtifactStore) (*models.Artifact, error) {
	for _, name := range c.names {
		artifact, err := store.Load(ctx, name)
		if err != nil {
			return nil, errors.Wrap(err, `failed to load artifact `+name)
		}
		if artifact != nil {
			if artifact.Name == "" {
				artifact.Name = name
			}
			return artifact, nil
		}
	}
	return nil, nil
}

// latestImageListing lists every artifact and takes the last one with an
// image extension. The host lists in attachment order, so last is newest.
// Any failure here is logged and reported as a miss.
type latestImageListing struct {
	extensions []string
	log        *log.Logger
}

func NewLatestImageListing(extensions []string, log *log.Logger) ResolutionStrategy {
	return &latestImageListing{extensions: extensions, log: log}
}

func (l *latestImageListing) Name() string { return "latest_image_listing" }

func (l *latestImageListing) Resolve(ctx context.Context, store adaptors.ArtifactStore) (*models.Artifact, error) {
	names, err := store.List(ctx)
	if err != nil {
		l.log.WithContext(ctx).WithError(err).Warn(`could not list artifacts`)
		return nil, nil
	}

	images := filterImageNames(names, l.extensions)
	if len(images) == 0 {
		return nil, nil
	}

	name := images[len(images)-1]
	artifact, err := store.Load(ctx, name)
	if err != nil {
		l.log.WithContext(ctx).WithError(err).Warnf(`could not load listed artifact %s`, name)
		return nil, nil
	}
	if artifact != nil && artifact.Name == "" {
		artifact.Name = name
	}
	return artifact, nil
}

func filterImageNames(names []string, extensions []string) []string {
	var images []string
	for _, n := range names {
		lower := strings.ToLower(n)
		for _, ext := range extensions {
			if strings.HasSuffix(lower, ext) {
				images = append(images, n)
				break
			}
		}
	}
	return images
}
