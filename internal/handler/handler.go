package handler

import (
	"context"

	"github.com/Shamanth-8/stocksenti/internal/domain"
	"github.com/Shamanth-8/stocksenti/internal/repository"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Analyzer is the slice of the analysis service the HTTP layer needs.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error)
	History(ctx context.Context, company string, limit int) ([]*repository.ReportSummary, error)
}

type Handler struct {
	tracer   trace.Tracer
	analysis Analyzer

	defaultMaxArticles  int
	defaultLookbackDays int
}

func New(tracer trace.Tracer, analysis Analyzer, defaultMaxArticles, defaultLookbackDays int) *Handler {
	return &Handler{
		tracer:              tracer,
		analysis:            analysis,
		defaultMaxArticles:  defaultMaxArticles,
		defaultLookbackDays: defaultLookbackDays,
	}
}

// RegisterRoutes mounts the API. The health probe stays unauthenticated; an
// empty apiKey disables auth on the rest as well.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.POST("/analyze", h.Analyze)
	api.GET("/reports/:company", h.GetReportHistory)
}
