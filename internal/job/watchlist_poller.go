package job

import (
	"context"
	"log"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// WatchlistAnalyzer is the slice of the analysis service the poller needs.
type WatchlistAnalyzer interface {
	Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error)
}

// WatchlistPoller periodically re-analyzes a fixed set of companies so report
// history accumulates without anyone asking. One company per tick, round-robin,
// to stay well inside provider rate limits.
type WatchlistPoller struct {
	tracer       trace.Tracer
	analyzer     WatchlistAnalyzer
	companies    []string
	provider     domain.Provider
	maxArticles  int
	lookbackDays int
	pollInterval time.Duration
}

func NewWatchlistPoller(
	tracer trace.Tracer,
	analyzer WatchlistAnalyzer,
	companies []string,
	provider domain.Provider,
	maxArticles, lookbackDays, pollIntervalSecs int,
) *WatchlistPoller {
	return &WatchlistPoller{
		tracer:       tracer,
		analyzer:     analyzer,
		companies:    companies,
		provider:     provider,
		maxArticles:  maxArticles,
		lookbackDays: lookbackDays,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start blocks until ctx is cancelled. An empty watchlist returns immediately.
func (p *WatchlistPoller) Start(ctx context.Context) {
	if len(p.companies) == 0 {
		log.Println("Watchlist empty, poller not starting")
		return
	}
	log.Printf("Watchlist poller starting for %d companies (every %v)", len(p.companies), p.pollInterval)

	index := 0
	p.analyzeNext(ctx, &index)

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Watchlist poller stopped")
			return
		case <-ticker.C:
			p.analyzeNext(ctx, &index)
		}
	}
}

func (p *WatchlistPoller) analyzeNext(ctx context.Context, index *int) {
	company := p.companies[*index%len(p.companies)]
	*index++

	ctx, span := p.tracer.Start(ctx, "watchlist-poller.analyze")
	defer span.End()

	report, err := p.analyzer.Analyze(ctx, domain.FetchRequest{
		Company:      company,
		Provider:     p.provider,
		MaxArticles:  p.maxArticles,
		LookbackDays: p.lookbackDays,
	})
	if err != nil {
		log.Printf("watchlist analysis error for %s: %v", company, err)
		return
	}
	if report.Reason != domain.ReasonOK {
		log.Printf("watchlist analysis for %s degraded: %s", company, report.Reason)
		return
	}
	log.Printf("watchlist analysis for %s: %s over %d articles",
		company, report.Result.DominantLabel, report.Result.Total)
}
