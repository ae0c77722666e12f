package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"
	"github.com/Shamanth-8/stocksenti/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const defaultReportCacheTTL = 10 * time.Minute

// PipelineRunner runs one analysis end to end.
type PipelineRunner interface {
	Run(ctx context.Context, req domain.FetchRequest, now time.Time) (domain.Report, error)
}

// ReportStore persists completed reports and serves stored history.
type ReportStore interface {
	SaveReports(ctx context.Context, reports []*domain.Report) error
	ListReports(ctx context.Context, company string, limit int) ([]*repository.ReportSummary, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// AnalysisService fronts the pipeline with a short-lived report cache and
// report persistence. Cache and store failures degrade to a direct run; they
// never fail the request.
type AnalysisService struct {
	tracer   trace.Tracer
	pipeline PipelineRunner
	store    ReportStore
	redis    RedisClient
	cacheTTL time.Duration
}

func NewAnalysisService(
	tracer trace.Tracer,
	pipeline PipelineRunner,
	store ReportStore,
	redisClient RedisClient,
	cacheTTL time.Duration,
) *AnalysisService {
	if cacheTTL <= 0 {
		cacheTTL = defaultReportCacheTTL
	}
	return &AnalysisService{
		tracer:   tracer,
		pipeline: pipeline,
		store:    store,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// Analyze returns the sentiment report for a request, reusing a cached report
// for identical requests within the TTL. Only fully successful runs are cached
// and persisted; degraded reports (empty with a reason code) always re-run.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	key := reportCacheKey(req)
	if s.redis != nil {
		cached, err := s.getReportCache(ctx, key)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	report, err := s.pipeline.Run(ctx, req, time.Now().UTC())
	if err != nil {
		return report, err
	}

	if report.Reason == domain.ReasonOK && report.State == domain.StateDone {
		if s.redis != nil {
			if err := s.setReportCache(ctx, key, report); err != nil {
				log.Printf("redis cache write error: %v", err)
			}
		}
		if s.store != nil {
			if err := s.store.SaveReports(ctx, []*domain.Report{&report}); err != nil {
				log.Printf("report persist error for %s: %v", req.Company, err)
			}
		}
	}
	return report, nil
}

// History returns stored verdicts for a company, newest first.
func (s *AnalysisService) History(ctx context.Context, company string, limit int) ([]*repository.ReportSummary, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.history")
	defer span.End()

	if s.store == nil {
		return nil, fmt.Errorf("report history is not configured")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListReports(ctx, company, limit)
}

func reportCacheKey(req domain.FetchRequest) string {
	return fmt.Sprintf("report:%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(req.Company)),
		req.Provider, req.MaxArticles, req.LookbackDays)
}

func (s *AnalysisService) setReportCache(ctx context.Context, key string, report domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, s.cacheTTL).Err()
}

func (s *AnalysisService) getReportCache(ctx context.Context, key string) (*domain.Report, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
