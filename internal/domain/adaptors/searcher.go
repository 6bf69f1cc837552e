package adaptors

import (
	"context"

	"screen_navigator/internal/domain/models"
)

type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}
