package adaptors

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Text       *string           `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

// Gemini talks to the generateContent REST endpoint. It serves both as the
// vision model and as the grounding search backend.
type Gemini struct {
	client  *ModelClient
	baseURL string
	apiKey  string
	log     *log.Logger
}

func NewGemini(client *ModelClient, baseURL, apiKey string, log *log.Logger) *Gemini {
	return &Gemini{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
	}
}

func (g *Gemini) GenerateContent(ctx context.Context, model string, image *models.Artifact, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: imageMimeType(image),
					Data:     base64.StdEncoding.EncodeToString(image.Data),
				}},
				{Text: &prompt},
			},
		}},
	}

	body, err := g.generate(ctx, model, req)
	if err != nil {
		return "", err
	}
	return candidateText(body)
}

// GeminiSearch answers queries with a grounded generateContent call that
// enables the google_search tool.
type GeminiSearch struct {
	gemini     *Gemini
	model      string
	maxResults int
}

func NewGeminiSearch(gemini *Gemini, model string, maxResults int) *GeminiSearch {
	return &GeminiSearch{gemini: gemini, model: model, maxResults: maxResults}
}

func (s *GeminiSearch) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: &query}},
		}},
		Tools: []geminiTool{{GoogleSearch: &struct{}{}}},
	}

	body, err := s.gemini.generate(ctx, s.model, req)
	if err != nil {
		return nil, err
	}

	answer, err := candidateText(body)
	if err != nil {
		return nil, err
	}

	resp := &models.SearchResponse{
		Query:   query,
		Answer:  answer,
		Results: []models.SearchResult{},
	}
	seen := map[string]bool{}
	gjson.GetBytes(body, "candidates.0.groundingMetadata.groundingChunks.#.web").ForEach(func(_, web gjson.Result) bool {
		uri := web.Get("uri").String()
		if uri == "" || seen[uri] {
			return true
		}
		seen[uri] = true
		resp.Results = append(resp.Results, models.SearchResult{
			Title: web.Get("title").String(),
			URL:   uri,
		})
		return len(resp.Results) < s.maxResults
	})
	return resp, nil
}

func (g *Gemini) generate(ctx context.Context, model string, req geminiRequest) ([]byte, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, model)
	body, code, err := g.client.PostJSON(ctx, url, map[string]string{"x-goog-api-key": g.apiKey}, req)
	if err != nil {
		return nil, errors.Wrap(err, `gemini request failed`)
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(code)
		}
		g.log.WithContext(ctx).WithField(`status`, code).Errorf(`gemini returned an error: %s`, msg)
		return nil, errors.Errorf(`gemini API error (status %d): %s`, code, msg)
	}
	return body, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(body []byte) (string, error) {
	candidate := gjson.GetBytes(body, "candidates.0")
	if !candidate.Exists() {
		reason := gjson.GetBytes(body, "promptFeedback.blockReason").String()
		if reason != "" {
			return "", errors.Errorf(`gemini returned no candidates: blocked (%s)`, reason)
		}
		return "", errors.New(`gemini returned no candidates`)
	}

	var sb strings.Builder
	found := false
	candidate.Get("content.parts.#.text").ForEach(func(_, text gjson.Result) bool {
		sb.WriteString(text.String())
		found = true
		return true
	})
	if !found {
		return "", errors.Errorf(`gemini candidate has no text (finish reason %s)`, candidate.Get("finishReason").String())
	}
	return sb.String(), nil
}
