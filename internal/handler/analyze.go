package handler

import (
	"errors"
	"net/http"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Company      string `json:"company"`
	Provider     string `json:"provider"`
	MaxArticles  int    `json:"max_articles"`
	LookbackDays int    `json:"lookback_days"`
}

// Analyze godoc
// @Summary      Run a sentiment analysis for a company
// @Description  Fetches recent headlines through the chosen provider, classifies them, and returns the aggregate verdict
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      analyzeRequest  true  "analysis request"
// @Success      200      {object}  domain.Report
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	provider, err := domain.ParseProvider(body.Provider)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := domain.FetchRequest{
		Company:      body.Company,
		Provider:     provider,
		MaxArticles:  body.MaxArticles,
		LookbackDays: body.LookbackDays,
	}
	if req.MaxArticles == 0 {
		req.MaxArticles = h.defaultMaxArticles
	}
	if req.LookbackDays == 0 {
		req.LookbackDays = h.defaultLookbackDays
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.analysis.Analyze(ctx, req)
	if err != nil {
		var cerr *domain.ClassificationError
		if errors.As(err, &cerr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
