package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetReportHistory godoc
// @Summary      Stored sentiment history for a company
// @Description  Returns the most recent stored verdicts, newest first
// @Tags         analysis
// @Produce      json
// @Param        company  path      string  true   "company name"
// @Param        limit    query     int     false  "max rows (default 20)"
// @Success      200      {array}   repository.ReportSummary
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/reports/{company} [get]
func (h *Handler) GetReportHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-report-history")
	defer span.End()

	company := strings.TrimSpace(c.Param("company"))
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is required"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	summaries, err := h.analysis.History(ctx, company, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if summaries == nil {
		c.JSON(http.StatusOK, gin.H{"company": company, "reports": []any{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company, "reports": summaries})
}
