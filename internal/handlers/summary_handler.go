package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"numbers/internal/config"
	"numbers/internal/money"
	"numbers/internal/services"
)

// SummaryHandler serves the period spending summaries shown by the
// category-summary widget and the dashboard.
type SummaryHandler struct {
	summary services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summary services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summary: summary}
}

// GetPeriodSummary returns the net outflow since the period's start
// boundary. Period is one of today, weekly, monthly.
func (h *SummaryHandler) GetPeriodSummary(c *gin.Context) {
	period := services.SummaryPeriod(c.Param("period"))

	total, err := h.summary.PeriodSummary(period, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  period,
		"total":   total,
		"display": money.Format(total, config.Get().CurrencySymbol),
	})
}
