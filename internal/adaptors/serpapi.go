package adaptors

import (
	"context"
	"strconv"
	"strings"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	g "github.com/serpapi/google-search-results-golang"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type serpFetchFunc func(params map[string]string, apiKey string) (map[string]interface{}, error)

func fetchSerpAPI(params map[string]string, apiKey string) (map[string]interface{}, error) {
	search := g.NewGoogleSearch(params, apiKey)
	return search.GetJSON()
}

// SerpAPISearch is the alternative search backend for deployments that do
// not use Gemini grounding.
type SerpAPISearch struct {
	apiKey     string
	maxResults int
	fetch      serpFetchFunc
	log        *log.Logger
}

func NewSerpAPISearch(apiKey string, maxResults int, log *log.Logger) *SerpAPISearch {
	return &SerpAPISearch{
		apiKey:     apiKey,
		maxResults: maxResults,
		fetch:      fetchSerpAPI,
		log:        log,
	}
}

type serpOutcome struct {
	data map[string]interface{}
	err  error
}

func (s *SerpAPISearch) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	params := map[string]string{
		"q":             query,
		"google_domain": "google.com",
		"hl":            "en",
		"start":         "0",
		"num":           strconv.Itoa(s.maxResults),
	}

	// the client library has no context support
	done := make(chan serpOutcome, 1)
	go func() {
		data, err := s.fetch(params, s.apiKey)
		done <- serpOutcome{data: data, err: err}
	}()

	var out serpOutcome
	select {
	case out = <-done:
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), `serpapi search canceled`)
	}
	if out.err != nil {
		s.log.WithContext(ctx).WithError(out.err).Errorf(`serpapi search failed for query: %s`, query)
		return nil, errors.Wrap(out.err, `serpapi search failed`)
	}

	return parseSerpResults(query, out.data, s.maxResults), nil
}

func parseSerpResults(query string, data map[string]interface{}, maxResults int) *models.SearchResponse {
	resp := &models.SearchResponse{
		Query:   query,
		Results: []models.SearchResult{},
	}

	if box, ok := data["answer_box"].(map[string]interface{}); ok {
		for _, key := range []string{"answer", "snippet", "answerBody"} {
			if v, ok := box[key].(string); ok && v != "" {
				resp.Answer = plainText(v)
				break
			}
		}
	}

	organic, _ := data["organic_results"].([]interface{})
	for _, item := range organic {
		if len(resp.Results) >= maxResults {
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		link, _ := entry["link"].(string)
		title, _ := entry["title"].(string)
		if link == "" || title == "" {
			continue
		}
		snippet, _ := entry["snippet"].(string)
		resp.Results = append(resp.Results, models.SearchResult{
			Title:   plainText(title),
			URL:     link,
			Snippet: plainText(snippet),
		})
	}
	return resp
}

// plainText drops markup (SerpAPI highlights matches with <b>) and decodes
// entities.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return s
	}
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	for _, n := range nodes {
		traverse(n)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
