package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
)

// AdminHandler handles admin console endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// Stats returns the dashboard overview numbers
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// ListClients lists client profiles with optional search
// GET /api/v1/admin/clients
func (h *AdminHandler) ListClients(c *gin.Context) {
	clients, err := h.adminUsecase.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"clients": clients})
}

// GetClient returns one client profile
// GET /api/v1/admin/clients/:id
func (h *AdminHandler) GetClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid client ID"))
		return
	}

	client, err := h.adminUsecase.GetClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, client)
}

// SetVerification updates a client's verification badge
// PATCH /api/v1/admin/clients/:id/verification
func (h *AdminHandler) SetVerification(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid client ID"))
		return
	}

	var input struct {
		Status entities.VerificationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	switch input.Status {
	case entities.VerificationUnverified, entities.VerificationPending, entities.VerificationVerified:
	default:
		response.Error(c, domainerrors.BadRequest("Unknown verification status"))
		return
	}

	client, err := h.adminUsecase.SetVerificationStatus(c.Request.Context(), clientID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, client)
}

// RecentActivity returns the latest feed rows across all users
// GET /api/v1/admin/activity
func (h *AdminHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activity, err := h.adminUsecase.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"activity": activity})
}

// ExportTransactions streams the filtered payment list as CSV
// GET /api/v1/admin/transactions/export
func (h *AdminHandler) ExportTransactions(c *gin.Context) {
	filter := entities.PaymentFilter{
		Status: entities.PaymentStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	fileName := fmt.Sprintf("transactions_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "text/csv")

	if err := h.adminUsecase.ExportTransactionsCSV(c.Request.Context(), c.Writer, filter); err != nil {
		response.Error(c, err)
		return
	}
}
