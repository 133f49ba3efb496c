package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for journal entries and fiscal periods.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Resolves account codes, assigns the next entry number and commits the entry with its lines. Draft entries skip the balance check until they are posted.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostEntryRequest true "Journal entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request, unbalanced lines, unknown account or closed period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Entry number already used"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.PostEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to post entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_number", entry.EntryNumber), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry and its lines by entry number
// @Tags ledger
// @Produce  json
// @Param   entryNumber path string true "Entry number"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /ledger/entries/{entryNumber} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	entryNumber := c.Param("entryNumber")

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), tenantID, entryNumber)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first. Pass the returned nextToken to fetch the following page.
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// postDraft godoc
// @Summary Post a draft entry
// @Description Moves a draft entry to posted after re-checking its balance and period
// @Tags ledger
// @Produce  json
// @Param   entryNumber path string true "Entry number"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unbalanced draft or closed period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already posted"
// @Failure 500 {object} map[string]string "Failed to post draft"
// @Security BearerAuth
// @Router /ledger/entries/{entryNumber}/post [post]
func (h *ledgerHandler) postDraft(c *gin.Context) {
	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	entryNumber := c.Param("entryNumber")

	entry, err := h.ledgerService.PostDraft(c.Request.Context(), tenantID, entryNumber, userID)
	if err != nil {
		respondWithError(c, err, "Failed to post draft")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft entry posted", slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Closed periods reject new postings
// @Tags ledger
// @Produce  json
// @Param   periodID path string true "Fiscal period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /ledger/periods/{periodID}/close [post]
func (h *ledgerHandler) closePeriod(c *gin.Context) {
	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	period, err := h.ledgerService.ClosePeriod(c.Request.Context(), tenantID, c.Param("periodID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to close period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// openPeriod godoc
// @Summary Reopen a fiscal period
// @Tags ledger
// @Produce  json
// @Param   periodID path string true "Fiscal period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to open period"
// @Security BearerAuth
// @Router /ledger/periods/{periodID}/open [post]
func (h *ledgerHandler) openPeriod(c *gin.Context) {
	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	period, err := h.ledgerService.OpenPeriod(c.Request.Context(), tenantID, c.Param("periodID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to open period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// RegisterLedgerRoutes registers the journal entry and fiscal period routes.
func RegisterLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := group.Group("/ledger")
	{
		entries := ledger.Group("/entries")
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryNumber", h.getEntry)
		entries.POST("/:entryNumber/post", h.postDraft)

		periods := ledger.Group("/periods")
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/open", h.openPeriod)
	}
}
