package domain

import (
	"fmt"
	"strings"
	"time"
)

// SentimentLabel is the canonical three-class sentiment enum. Every classifier
// backend must map its native output into exactly one of these values.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

func (l SentimentLabel) IsValid() bool {
	return l == SentimentPositive || l == SentimentNegative || l == SentimentNeutral
}

// Provider identifies a news source backend.
type Provider string

const (
	// ProviderFinnhub is symbol-based: it needs a resolved ticker.
	ProviderFinnhub Provider = "finnhub"
	// ProviderNewsAPI is keyword-based: it searches free text.
	ProviderNewsAPI Provider = "newsapi"
)

func (p Provider) IsValid() bool {
	return p == ProviderFinnhub || p == ProviderNewsAPI
}

// ParseProvider accepts the wire spelling of a provider name.
func ParseProvider(v string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "finnhub":
		return ProviderFinnhub, nil
	case "newsapi":
		return ProviderNewsAPI, nil
	default:
		return "", fmt.Errorf("unknown provider: %q", v)
	}
}

// Article is a normalized news record. Immutable once fetched; records with an
// empty title never reach the classifier.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	SourceName  string    `json:"source_name"`
}

// ClassifiedArticle is an Article plus the classifier's verdict for its headline.
type ClassifiedArticle struct {
	Article
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// AggregateResult is the directional verdict over one batch of classified
// headlines. Recomputed fresh per query, never mutated in place.
type AggregateResult struct {
	DominantLabel     SentimentLabel     `json:"dominant_label"`
	AverageConfidence float64            `json:"average_confidence"`
	Counts            SentimentCounts    `json:"counts"`
	Total             int                `json:"total"`
	TopPositive       *ClassifiedArticle `json:"top_positive,omitempty"`
	TopNegative       *ClassifiedArticle `json:"top_negative,omitempty"`
}

// Percentage returns count/total for a label as a 0..1 fraction, 0 when the
// batch is empty.
func (r AggregateResult) Percentage(label SentimentLabel) float64 {
	if r.Total == 0 {
		return 0
	}
	var count int
	switch label {
	case SentimentPositive:
		count = r.Counts.Positive
	case SentimentNegative:
		count = r.Counts.Negative
	case SentimentNeutral:
		count = r.Counts.Neutral
	}
	return float64(count) / float64(r.Total)
}

// FetchRequest bounds. Out-of-range values are rejected by Validate, not clamped.
const (
	MinMaxArticles  = 5
	MaxMaxArticles  = 50
	MinLookbackDays = 1
	MaxLookbackDays = 30
)

// FetchRequest describes one analysis run: which company, through which
// provider, and how much news to consider.
type FetchRequest struct {
	Company      string   `json:"company"`
	Provider     Provider `json:"provider"`
	MaxArticles  int      `json:"max_articles"`
	LookbackDays int      `json:"lookback_days"`
}

func (r FetchRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return fmt.Errorf("company is required")
	}
	if !r.Provider.IsValid() {
		return fmt.Errorf("unknown provider: %q", r.Provider)
	}
	if r.MaxArticles < MinMaxArticles || r.MaxArticles > MaxMaxArticles {
		return fmt.Errorf("max_articles must be between %d and %d, got %d", MinMaxArticles, MaxMaxArticles, r.MaxArticles)
	}
	if r.LookbackDays < MinLookbackDays || r.LookbackDays > MaxLookbackDays {
		return fmt.Errorf("lookback_days must be between %d and %d, got %d", MinLookbackDays, MaxLookbackDays, r.LookbackDays)
	}
	return nil
}

// ReasonCode explains an empty or degraded result to the caller. Callers
// distinguish "no news" from "provider down" only through this code.
type ReasonCode string

const (
	ReasonOK                  ReasonCode = "OK"
	ReasonSymbolUnresolved    ReasonCode = "SYMBOL_UNRESOLVED"
	ReasonProviderUnavailable ReasonCode = "PROVIDER_UNAVAILABLE"
	ReasonProviderError       ReasonCode = "PROVIDER_ERROR"
	ReasonNoResults           ReasonCode = "NO_RESULTS"
	ReasonInvalidRequest      ReasonCode = "INVALID_REQUEST"
)

// PipelineState tracks where a run is, or where it stopped.
type PipelineState string

const (
	StateIdle        PipelineState = "idle"
	StateResolving   PipelineState = "resolving"
	StateFetching    PipelineState = "fetching"
	StateClassifying PipelineState = "classifying"
	StateAggregating PipelineState = "aggregating"
	StateDone        PipelineState = "done"
	StateFailed      PipelineState = "failed"
)

// Report is the full outcome of one pipeline run: the aggregate verdict plus
// the per-article evidence front ends render.
type Report struct {
	Request     FetchRequest        `json:"request"`
	Symbol      string              `json:"symbol,omitempty"`
	Result      AggregateResult     `json:"result"`
	Articles    []ClassifiedArticle `json:"articles,omitempty"`
	Reason      ReasonCode          `json:"reason"`
	State       PipelineState       `json:"state"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at"`
}

// ClassificationError marks a classifier contract violation: the model emitted
// a label outside the closed set. Fatal for the request, never coerced.
type ClassificationError struct {
	Label string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classifier returned unrecognized label %q", e.Label)
}
