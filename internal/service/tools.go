package service

import (
	"context"
	"fmt"
	"strings"

	"screen_navigator/internal/domain/adaptors"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"
	"screen_navigator/internal/pkg/worker_pool"

	log "github.com/sirupsen/logrus"
)

// ToolDeclaration is what a host hands to the model for function calling.
type ToolDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolContext is the per-call state a host passes to a tool.
type ToolContext struct {
	Session   string
	Artifacts adaptors.ArtifactStore
}

type Tool interface {
	Declaration() ToolDeclaration
	Call(ctx context.Context, tc ToolContext, args map[string]any) (any, error)
}

// ScreenshotTool exposes the analyzer as analyze_screenshot. It takes no
// arguments; the screenshot comes from the session's artifacts.
type ScreenshotTool struct {
	analyzer *ScreenshotAnalyzer
}

func NewScreenshotTool(analyzer *ScreenshotAnalyzer) *ScreenshotTool {
	return &ScreenshotTool{analyzer: analyzer}
}

func (t *ScreenshotTool) Declaration() ToolDeclaration {
	return ToolDeclaration{
		Name: AnalyzeScreenshotToolName,
		Description: "Analyzes the most recently uploaded screenshot of the user's browser or screen. " +
			"Uses multimodal vision to interpret visible UI elements and page content. " +
			"The user must first attach a screenshot (.png/.jpg) in the chat.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (t *ScreenshotTool) Call(ctx context.Context, tc ToolContext, _ map[string]any) (any, error) {
	return t.analyzer.Analyze(ctx, tc.Artifacts)
}

// SearchTool exposes the configured Searcher as google_search. Several
// queries in one call run concurrently on a worker pool.
type SearchTool struct {
	searcher adaptors.Searcher
	workers  int
	log      *log.Logger
}

func NewSearchTool(searcher adaptors.Searcher, workers int, log *log.Logger) *SearchTool {
	return &SearchTool{searcher: searcher, workers: workers, log: log}
}

func (t *SearchTool) Declaration() ToolDeclaration {
	return ToolDeclaration{
		Name:        GoogleSearchToolName,
		Description: "Searches the web with Google and returns a short answer with its sources.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
				"queries": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Several independent search queries.",
				},
			},
		},
	}
}

type SearchToolResult struct {
	Searches []*models.SearchResponse `json:"searches"`
}

func (t *SearchTool) Call(ctx context.Context, _ ToolContext, args map[string]any) (any, error) {
	queries, err := searchQueries(args)
	if err != nil {
		return nil, err
	}

	if len(queries) == 1 {
		resp, err := t.searcher.Search(ctx, queries[0])
		if err != nil {
			return nil, errors.Wrap(err, `search failed`)
		}
		return resp, nil
	}

	pool := worker_pool.NewWorkerPool(ctx, t.workers, true, t.log)
	defer pool.Stop()

	tasks := make([]worker_pool.Task, 0, len(queries))
	for i, q := range queries {
		q := q
		tasks = append(tasks, worker_pool.Task{
			ID: fmt.Sprintf("search-%d", i),
			Fn: func(ctx context.Context) (any, error) {
				return t.searcher.Search(ctx, q)
			},
		})
	}

	results := pool.RunAll(tasks)
	if i := failedSearch(results); i >= 0 {
		return nil, errors.Wrap(results[i].Err, fmt.Sprintf(`search %q failed`, queries[i]))
	}

	out := &SearchToolResult{Searches: make([]*models.SearchResponse, 0, len(queries))}
	for _, res := range results {
		out.Searches = append(out.Searches, res.Result.(*models.SearchResponse))
	}
	return out, nil
}

// failedSearch returns the index of the result to report, or -1 when every
// search succeeded. A backend failure wins over the cancellations it caused
// in the other tasks.
func failedSearch(results []worker_pool.TaskResult) int {
	first := -1
	for i, res := range results {
		if res.Err == nil {
			continue
		}
		if !errors.Is(res.Err, worker_pool.ErrPoolCanceled) && !errors.Is(res.Err, context.Canceled) {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

func searchQueries(args map[string]any) ([]string, error) {
	var queries []string
	if q, ok := args["query"].(string); ok && strings.TrimSpace(q) != "" {
		queries = append(queries, strings.TrimSpace(q))
	}
	if list, ok := args["queries"].([]any); ok {
		for _, item := range list {
			q, ok := item.(string)
			if !ok {
				return nil, errors.Errorf(`queries must be strings, got %T`, item)
			}
			if q = strings.TrimSpace(q); q != "" {
				queries = append(queries, q)
			}
		}
	}
	if len(queries) == 0 {
		return nil, errors.ErrEmptyQuery
	}
	return queries, nil
}
