package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
)

// ActivityHandler serves the dashboard activity feed
type ActivityHandler struct {
	activityUsecase *usecases.ActivityUsecase
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityUsecase *usecases.ActivityUsecase) *ActivityHandler {
	return &ActivityHandler{activityUsecase: activityUsecase}
}

// List returns the caller's latest activity
// GET /api/v1/activity
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	activity, err := h.activityUsecase.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"activity": activity})
}
