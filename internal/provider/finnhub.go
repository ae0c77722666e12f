package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

// SymbolCandidate is one row from Finnhub symbol search, in provider order.
type SymbolCandidate struct {
	Symbol        string
	DisplaySymbol string
	Description   string
	Type          string
}

// FinnhubProvider fetches symbol lookups and company news from the Finnhub
// free API. Symbol-based: callers must resolve a ticker before asking for news.
type FinnhubProvider struct {
	client  *http.Client
	baseURL string
	token   string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewFinnhubProvider creates a provider with built-in rate limiting
// (free tier allows 60 calls per minute). Returns nil when no API token is
// configured so callers can treat the provider as unavailable.
func NewFinnhubProvider(token string, tracer trace.Tracer) *FinnhubProvider {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return &FinnhubProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: finnhubBaseURL,
		token:   token,
		tracer:  tracer,
		limiter: NewRateLimiter(60, time.Second),
	}
}

// SymbolLookup searches Finnhub for ticker candidates matching a free-text
// company name. Candidates are returned in provider order.
func (p *FinnhubProvider) SymbolLookup(ctx context.Context, query string) ([]SymbolCandidate, error) {
	_, span := p.tracer.Start(ctx, "finnhub.symbol-lookup")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("lookup query is required")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&token=%s", p.baseURL, url.QueryEscape(query), p.token)
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("symbol lookup for %q: %w", query, err)
	}

	var payload struct {
		Count  int `json:"count"`
		Result []struct {
			Description   string `json:"description"`
			DisplaySymbol string `json:"displaySymbol"`
			Symbol        string `json:"symbol"`
			Type          string `json:"type"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse symbol lookup response: %w", err)
	}

	candidates := make([]SymbolCandidate, 0, len(payload.Result))
	for _, row := range payload.Result {
		candidates = append(candidates, SymbolCandidate{
			Symbol:        strings.TrimSpace(row.Symbol),
			DisplaySymbol: strings.TrimSpace(row.DisplaySymbol),
			Description:   strings.TrimSpace(row.Description),
			Type:          strings.TrimSpace(row.Type),
		})
	}
	return candidates, nil
}

// CompanyNews fetches articles for a resolved symbol within [from, to].
// Finnhub requires dates as YYYY-MM-DD strings. Entries with an empty headline
// are dropped; at most maxItems articles are returned in provider order
// (newest first).
func (p *FinnhubProvider) CompanyNews(ctx context.Context, symbol string, from, to time.Time, maxItems int) ([]domain.Article, error) {
	_, span := p.tracer.Start(ctx, "finnhub.company-news")
	defer span.End()

	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if maxItems <= 0 {
		maxItems = domain.MaxMaxArticles
	}

	endpoint := fmt.Sprintf("%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		p.baseURL, url.QueryEscape(symbol), from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"), p.token)
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("company news for %s: %w", symbol, err)
	}

	var rows []struct {
		Category string `json:"category"`
		Datetime int64  `json:"datetime"`
		Headline string `json:"headline"`
		Source   string `json:"source"`
		Summary  string `json:"summary"`
		URL      string `json:"url"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parse company news response: %w", err)
	}

	articles := make([]domain.Article, 0, min(maxItems, len(rows)))
	for _, row := range rows {
		if len(articles) >= maxItems {
			break
		}
		title := strings.TrimSpace(row.Headline)
		if title == "" {
			continue
		}
		source := strings.TrimSpace(row.Source)
		if source == "" {
			source = "Finnhub"
		}
		articles = append(articles, domain.Article{
			Title:       title,
			Description: strings.TrimSpace(row.Summary),
			URL:         strings.TrimSpace(row.URL),
			PublishedAt: time.Unix(row.Datetime, 0).UTC(),
			SourceName:  source,
		})
	}
	return articles, nil
}

func (p *FinnhubProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("finnhub API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
