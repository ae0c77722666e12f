package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIProvider searches NewsAPI's /v2/everything index. Keyword-based:
// it takes a prepared query string, not a ticker.
type NewsAPIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

// NewNewsAPIProvider returns nil when no API key is configured so callers can
// treat the provider as unavailable.
func NewNewsAPIProvider(apiKey string, tracer trace.Tracer) *NewsAPIProvider {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	return &NewsAPIProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: newsAPIBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// Search runs an English-language everything query from the given date,
// sorted by publish time. Articles without a title are dropped and the result
// is capped at maxItems, newest first.
func (p *NewsAPIProvider) Search(ctx context.Context, query string, from time.Time, maxItems int) ([]domain.Article, error) {
	_, span := p.tracer.Start(ctx, "newsapi.search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if maxItems <= 0 {
		maxItems = domain.MaxMaxArticles
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from.UTC().Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", maxItems))

	endpoint := p.baseURL + "/everything?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Status       string `json:"status"`
		Code         string `json:"code"`
		Message      string `json:"message"`
		TotalResults int    `json:"totalResults"`
		Articles     []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse newsapi response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi status %q (%s): %s", payload.Status, payload.Code, payload.Message)
	}

	articles := make([]domain.Article, 0, min(maxItems, len(payload.Articles)))
	for _, row := range payload.Articles {
		title := strings.TrimSpace(row.Title)
		if title == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       title,
			Description: strings.TrimSpace(row.Description),
			URL:         strings.TrimSpace(row.URL),
			PublishedAt: parsePublishedAt(row.PublishedAt),
			SourceName:  strings.TrimSpace(row.Source.Name),
		})
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	if len(articles) > maxItems {
		articles = articles[:maxItems]
	}
	return articles, nil
}

func parsePublishedAt(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05Z0700"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
