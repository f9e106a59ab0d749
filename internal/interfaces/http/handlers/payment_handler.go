package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
	"tax-portal.backend/pkg/utils"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
	maxUploadSize  int64
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase, maxUploadSize int64) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		maxUploadSize:  maxUploadSize,
	}
}

// Methods lists the supported providers and receiving accounts
// GET /api/v1/payments/methods
func (h *PaymentHandler) Methods(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"methods": h.paymentUsecase.Methods()})
}

// Submit reports a completed mobile-money transfer with its receipt
// POST /api/v1/payments (multipart/form-data)
func (h *PaymentHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.SubmitPaymentInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Receipt image is required"))
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		response.Error(c, domainerrors.BadRequest("Receipt exceeds the maximum upload size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	payment, err := h.paymentUsecase.SubmitPayment(c.Request.Context(), userID, &input, &usecases.ReceiptUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// List lists the caller's own payments
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	payments, err := h.paymentUsecase.ListByClient(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// Receipt streams a payment's receipt image
// GET /api/v1/payments/:id/receipt
func (h *PaymentHandler) Receipt(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	_, data, err := h.paymentUsecase.OpenReceipt(c.Request.Context(), userID, middleware.IsAdmin(c), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// ListAll lists payments for the admin console
// GET /api/v1/admin/payments
func (h *PaymentHandler) ListAll(c *gin.Context) {
	filter := entities.PaymentFilter{
		Status: entities.PaymentStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	payments, meta, err := h.paymentUsecase.List(c.Request.Context(), filter, utils.NormalizePagination(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": meta,
	})
}

// Verify marks a payment verified
// POST /api/v1/admin/payments/:id/verify
func (h *PaymentHandler) Verify(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	if err := h.paymentUsecase.Verify(c.Request.Context(), paymentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Payment verified"})
}

// Reject marks a payment rejected with a reason
// POST /api/v1/admin/payments/:id/reject
func (h *PaymentHandler) Reject(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	var input entities.RejectPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Rejection reason is required"))
		return
	}

	if err := h.paymentUsecase.Reject(c.Request.Context(), paymentID, input.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Payment rejected"})
}
