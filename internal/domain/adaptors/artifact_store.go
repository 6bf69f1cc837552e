package adaptors

import (
	"context"

	"screen_navigator/internal/domain/models"
)

// ArtifactStore is the per-session artifact capability supplied by the host.
// Load returns nil, nil when no artifact has that name.
type ArtifactStore interface {
	Load(ctx context.Context, name string) (*models.Artifact, error)
	List(ctx context.Context) ([]string, error)
}
