package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createReportsTable = `
CREATE TABLE IF NOT EXISTS sentiment_reports (
    id             BIGSERIAL   PRIMARY KEY,
    company        TEXT        NOT NULL,
    provider       TEXT        NOT NULL,
    symbol         TEXT        NOT NULL DEFAULT '',
    dominant_label TEXT        NOT NULL,
    avg_confidence DOUBLE PRECISION NOT NULL,
    positive       INT         NOT NULL,
    negative       INT         NOT NULL,
    neutral        INT         NOT NULL,
    total          INT         NOT NULL,
    reason         TEXT        NOT NULL,
    state          TEXT        NOT NULL,
    articles       JSONB       NOT NULL DEFAULT '[]',
    started_at     TIMESTAMPTZ NOT NULL,
    completed_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sentiment_reports_company_time
    ON sentiment_reports (LOWER(company), completed_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ReportRepository persists completed analysis reports so front ends can show
// how a company's sentiment moved over time.
type ReportRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewReportRepository(pool PgxPool, tracer trace.Tracer) *ReportRepository {
	return &ReportRepository{pool: pool, tracer: tracer}
}

func (r *ReportRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "report-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createReportsTable)
	return err
}

// SaveReports stores completed reports in one batch. Articles ride along as a
// JSON document; queries over history only touch the scalar verdict columns.
func (r *ReportRepository) SaveReports(ctx context.Context, reports []*domain.Report) error {
	if len(reports) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "report-repo.save-reports")
	defer span.End()

	batch := &pgx.Batch{}
	for _, report := range reports {
		articles, err := json.Marshal(report.Articles)
		if err != nil {
			return fmt.Errorf("marshal articles for %s: %w", report.Request.Company, err)
		}
		batch.Queue(
			`INSERT INTO sentiment_reports
			 (company, provider, symbol, dominant_label, avg_confidence,
			  positive, negative, neutral, total, reason, state, articles,
			  started_at, completed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			report.Request.Company, string(report.Request.Provider), report.Symbol,
			string(report.Result.DominantLabel), report.Result.AverageConfidence,
			report.Result.Counts.Positive, report.Result.Counts.Negative,
			report.Result.Counts.Neutral, report.Result.Total,
			string(report.Reason), string(report.State), articles,
			report.StartedAt, report.CompletedAt,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range reports {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ReportSummary is one row of stored history, without the article payload.
type ReportSummary struct {
	Company           string                 `json:"company"`
	Provider          domain.Provider        `json:"provider"`
	Symbol            string                 `json:"symbol,omitempty"`
	DominantLabel     domain.SentimentLabel  `json:"dominant_label"`
	AverageConfidence float64                `json:"average_confidence"`
	Counts            domain.SentimentCounts `json:"counts"`
	Total             int                    `json:"total"`
	Reason            domain.ReasonCode      `json:"reason"`
	CompletedAt       time.Time              `json:"completed_at"`
}

// ListReports returns the most recent stored verdicts for a company, newest
// first. The company match is case-insensitive.
func (r *ReportRepository) ListReports(ctx context.Context, company string, limit int) ([]*ReportSummary, error) {
	_, span := r.tracer.Start(ctx, "report-repo.list-reports")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT company, provider, symbol, dominant_label, avg_confidence,
		        positive, negative, neutral, total, reason, completed_at
		 FROM sentiment_reports
		 WHERE LOWER(company) = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		strings.ToLower(strings.TrimSpace(company)), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*ReportSummary
	for rows.Next() {
		s := &ReportSummary{}
		var provider, label, reason string
		if err := rows.Scan(&s.Company, &provider, &s.Symbol, &label, &s.AverageConfidence,
			&s.Counts.Positive, &s.Counts.Negative, &s.Counts.Neutral, &s.Total,
			&reason, &s.CompletedAt); err != nil {
			return nil, err
		}
		s.Provider = domain.Provider(provider)
		s.DominantLabel = domain.SentimentLabel(label)
		s.Reason = domain.ReasonCode(reason)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
