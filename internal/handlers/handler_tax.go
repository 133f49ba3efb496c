package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

// calculateLine godoc
// @Summary Calculate the amounts of one document line
// @Description Picks the tax formula from the classification code and derives line total, tax, total with tax and the non-deductible part. Results are not rounded.
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   line body dto.CalculateLineRequest true "Line inputs"
// @Success 200 {object} dto.LineAmountsResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tax/lines/calculate [post]
func (h *taxHandler) calculateLine(c *gin.Context) {
	var req dto.CalculateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for CalculateLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.taxService.CalculateLine(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to calculate line")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// calculateDocument godoc
// @Summary Calculate the totals of a document
// @Description Sums all lines, rounds the totals to 2 places and returns a breakdown per classification and rate
// @Tags tax
// @Accept  json
// @Produce  json
// @Param   document body dto.CalculateDocumentRequest true "Document lines"
// @Success 200 {object} dto.DocumentTotalsResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tax/documents/calculate [post]
func (h *taxHandler) calculateDocument(c *gin.Context) {
	var req dto.CalculateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for CalculateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.taxService.CalculateDocument(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to calculate document")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterTaxRoutes registers the tax calculator routes.
func RegisterTaxRoutes(group *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := &taxHandler{taxService: taxService}

	tax := group.Group("/tax")
	tax.POST("/lines/calculate", h.calculateLine)
	tax.POST("/documents/calculate", h.calculateDocument)
}
