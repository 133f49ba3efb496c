package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/core/threshold"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type thresholdHandler struct {
	thresholdService portssvc.ThresholdSvcFacade
	now              func() time.Time
}

// getReport godoc
// @Summary Revenue threshold report
// @Description Returns 12 monthly revenue buckets for the window ending at asOf, their running total and whether the configured limit was exceeded
// @Tags thresholds
// @Produce  json
// @Param   window query string true "Window" Enums(calendar-year, rolling-365-day)
// @Param   asOf query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ThresholdReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build threshold report"
// @Security BearerAuth
// @Router /thresholds [get]
func (h *thresholdHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var q dto.ThresholdQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for threshold report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := h.now()
	if q.AsOf != "" {
		parsed, err := time.Parse(time.DateOnly, q.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	report, err := h.thresholdService.Report(c.Request.Context(), tenantID, threshold.Window(q.Window), asOf)
	if err != nil {
		respondWithError(c, err, "Failed to build threshold report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// RegisterThresholdRoutes registers the revenue threshold report route.
func RegisterThresholdRoutes(group *gin.RouterGroup, thresholdService portssvc.ThresholdSvcFacade) {
	h := &thresholdHandler{
		thresholdService: thresholdService,
		now:              func() time.Time { return time.Now().UTC() },
	}
	group.GET("/thresholds", h.getReport)
}
