package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
)

// TaxFilingHandler handles the multi-step tax preparation form
type TaxFilingHandler struct {
	taxFilingUsecase *usecases.TaxFilingUsecase
}

// NewTaxFilingHandler creates a new tax filing handler
func NewTaxFilingHandler(taxFilingUsecase *usecases.TaxFilingUsecase) *TaxFilingHandler {
	return &TaxFilingHandler{taxFilingUsecase: taxFilingUsecase}
}

// SaveDraft caches the current form state
// PUT /api/v1/tax-filings/draft
func (h *TaxFilingHandler) SaveDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var draft entities.TaxFilingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.taxFilingUsecase.SaveDraft(c.Request.Context(), userID, &draft); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Draft saved"})
}

// GetDraft returns the cached form state
// GET /api/v1/tax-filings/draft
func (h *TaxFilingHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	draft, err := h.taxFilingUsecase.GetDraft(c.Request.Context(), userID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("No draft in progress"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, draft)
}

// ClearDraft discards the cached form state
// DELETE /api/v1/tax-filings/draft
func (h *TaxFilingHandler) ClearDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.taxFilingUsecase.ClearDraft(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Draft cleared"})
}

// Estimate computes the review-step summary for the submitted form
// POST /api/v1/tax-filings/estimate
func (h *TaxFilingHandler) Estimate(c *gin.Context) {
	var draft entities.TaxFilingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	summary, err := h.taxFilingUsecase.Estimate(&draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Submit converts the cached draft into a pending service request
// POST /api/v1/tax-filings/submit
func (h *TaxFilingHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	request, summary, err := h.taxFilingUsecase.Submit(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"request": request,
		"summary": summary,
	})
}
