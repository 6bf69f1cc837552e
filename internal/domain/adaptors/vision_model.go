package adaptors

import (
	"context"

	"screen_navigator/internal/domain/models"
)

// VisionModel sends one image followed by one text prompt and returns the
// model's text answer.
type VisionModel interface {
	GenerateContent(ctx context.Context, model string, image *models.Artifact, prompt string) (string, error)
}
