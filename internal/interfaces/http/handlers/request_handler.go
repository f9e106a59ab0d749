package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
)

// RequestHandler handles service request endpoints
type RequestHandler struct {
	requestUsecase *usecases.RequestUsecase
}

// NewRequestHandler creates a new service request handler
func NewRequestHandler(requestUsecase *usecases.RequestUsecase) *RequestHandler {
	return &RequestHandler{requestUsecase: requestUsecase}
}

// Create submits a new service request
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.requestUsecase.CreateRequest(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// List lists the caller's own requests
// GET /api/v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	requests, err := h.requestUsecase.ListByClient(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Get returns one of the caller's requests
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request ID"))
		return
	}

	request, err := h.requestUsecase.GetForClient(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// ListAll lists requests for the admin console
// GET /api/v1/admin/requests
func (h *RequestHandler) ListAll(c *gin.Context) {
	status := entities.RequestStatus(c.Query("status"))

	requests, err := h.requestUsecase.ListAll(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// UpdateStatus applies an admin status override
// PATCH /api/v1/admin/requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request ID"))
		return
	}

	var input entities.UpdateRequestStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.requestUsecase.OverrideStatus(c.Request.Context(), requestID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Status updated"})
}
