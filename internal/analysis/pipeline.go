package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/classifier"
	"github.com/Shamanth-8/stocksenti/internal/domain"
	"github.com/Shamanth-8/stocksenti/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// SymbolSearcher is the symbol-search capability of a symbol-based provider.
type SymbolSearcher interface {
	SymbolLookup(ctx context.Context, query string) ([]provider.SymbolCandidate, error)
}

// CompanyNewsSource fetches news for a resolved ticker.
type CompanyNewsSource interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time, maxItems int) ([]domain.Article, error)
}

// KeywordNewsSource searches news by free-text query.
type KeywordNewsSource interface {
	Search(ctx context.Context, query string, from time.Time, maxItems int) ([]domain.Article, error)
}

// Pipeline runs one analysis end to end: resolve, fetch, classify, aggregate.
// It never switches providers on its own; when the preferred provider's
// prerequisite fails the report carries a reason code and the caller decides
// what to try next. Pipelines are stateless across runs and safe for
// concurrent use.
type Pipeline struct {
	tracer      trace.Tracer
	symbols     SymbolSearcher
	companyNews CompanyNewsSource
	keywordNews KeywordNewsSource
	model       classifier.Classifier
	regions     *RegionTable
}

// NewPipeline wires the pipeline's collaborators. Any news source may be nil
// (no credential configured); runs preferring that provider then report
// PROVIDER_UNAVAILABLE instead of calling out. A nil regions table falls back
// to the curated default.
func NewPipeline(
	tracer trace.Tracer,
	symbols SymbolSearcher,
	companyNews CompanyNewsSource,
	keywordNews KeywordNewsSource,
	model classifier.Classifier,
	regions *RegionTable,
) *Pipeline {
	if regions == nil {
		regions = NewRegionTable(nil)
	}
	return &Pipeline{
		tracer:      tracer,
		symbols:     symbols,
		companyNews: companyNews,
		keywordNews: keywordNews,
		model:       model,
		regions:     regions,
	}
}

// Run executes the pipeline for one request. Routing misses and provider
// failures come back as a zero-article report with a reason code, never as an
// error; errors are reserved for invalid requests and classifier contract
// violations.
func (p *Pipeline) Run(ctx context.Context, req domain.FetchRequest, now time.Time) (domain.Report, error) {
	ctx, span := p.tracer.Start(ctx, "analysis.run")
	defer span.End()

	now = now.UTC()
	report := domain.Report{
		Request:   req,
		State:     domain.StateIdle,
		Reason:    domain.ReasonOK,
		StartedAt: now,
	}

	if err := req.Validate(); err != nil {
		report.State = domain.StateFailed
		report.Reason = domain.ReasonInvalidRequest
		report.CompletedAt = now
		return report, fmt.Errorf("invalid fetch request: %w", err)
	}

	articles, reason := p.fetch(ctx, &report, req, now)
	if reason != domain.ReasonOK {
		return finishEmpty(report, reason), nil
	}
	if len(articles) == 0 {
		return finishEmpty(report, domain.ReasonNoResults), nil
	}

	report.State = domain.StateClassifying
	classified, err := p.classify(ctx, articles)
	if err != nil {
		report.State = domain.StateFailed
		report.CompletedAt = time.Now().UTC()
		return report, err
	}

	report.State = domain.StateAggregating
	report.Result = Aggregate(classified)
	report.Articles = classified
	report.State = domain.StateDone
	report.CompletedAt = time.Now().UTC()
	return report, nil
}

// fetch runs the provider-specific strategy and returns the articles plus a
// reason code; any reason other than OK means the run short-circuits with an
// empty result.
func (p *Pipeline) fetch(ctx context.Context, report *domain.Report, req domain.FetchRequest, now time.Time) ([]domain.Article, domain.ReasonCode) {
	from := now.AddDate(0, 0, -req.LookbackDays)

	switch req.Provider {
	case domain.ProviderFinnhub:
		if p.symbols == nil || p.companyNews == nil {
			return nil, domain.ReasonProviderUnavailable
		}

		report.State = domain.StateResolving
		candidates, err := p.symbols.SymbolLookup(ctx, req.Company)
		if err != nil {
			// A failed lookup is a routing signal, not a fault.
			log.Printf("symbol lookup for %q failed: %v", req.Company, err)
			return nil, domain.ReasonSymbolUnresolved
		}
		symbol, ok := ResolveSymbol(candidates)
		if !ok {
			return nil, domain.ReasonSymbolUnresolved
		}
		report.Symbol = symbol

		report.State = domain.StateFetching
		articles, err := p.companyNews.CompanyNews(ctx, symbol, from, now, req.MaxArticles)
		if err != nil {
			log.Printf("company news fetch for %s failed: %v", symbol, err)
			return nil, domain.ReasonProviderError
		}
		return articles, domain.ReasonOK

	case domain.ProviderNewsAPI:
		if p.keywordNews == nil {
			return nil, domain.ReasonProviderUnavailable
		}

		report.State = domain.StateFetching
		query := buildSearchQuery(req.Company, p.regions)
		articles, err := p.keywordNews.Search(ctx, query, from, req.MaxArticles)
		if err != nil {
			log.Printf("news search for %q failed: %v", req.Company, err)
			return nil, domain.ReasonProviderError
		}
		return articles, domain.ReasonOK

	default:
		return nil, domain.ReasonInvalidRequest
	}
}

func (p *Pipeline) classify(ctx context.Context, articles []domain.Article) ([]domain.ClassifiedArticle, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no sentiment classifier configured")
	}

	headlines := make([]string, len(articles))
	for i, article := range articles {
		headlines[i] = article.Title
	}

	predictions, err := p.model.Classify(ctx, headlines)
	if err != nil {
		return nil, err
	}
	if len(predictions) != len(articles) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d headlines", len(predictions), len(articles))
	}

	classified := make([]domain.ClassifiedArticle, len(articles))
	for i, article := range articles {
		classified[i] = domain.ClassifiedArticle{
			Article:    article,
			Label:      predictions[i].Label,
			Confidence: predictions[i].Confidence,
		}
	}
	return classified, nil
}

func finishEmpty(report domain.Report, reason domain.ReasonCode) domain.Report {
	report.Result = Aggregate(nil)
	report.Reason = reason
	report.State = domain.StateDone
	report.CompletedAt = time.Now().UTC()
	return report
}
