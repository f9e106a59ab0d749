package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/interfaces/http/middleware"
	"tax-portal.backend/internal/interfaces/http/response"
	"tax-portal.backend/internal/usecases"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
	maxUploadSize   int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		maxUploadSize:   maxUploadSize,
	}
}

// Upload stores an uploaded file, optionally linked to a request
// POST /api/v1/documents (multipart/form-data)
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("File is required"))
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		response.Error(c, domainerrors.BadRequest("File exceeds the maximum upload size"))
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

	upload := &usecases.DocumentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
	if requestIDStr := c.PostForm("requestId"); requestIDStr != "" {
		requestID, err := uuid.Parse(requestIDStr)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid request ID"))
			return
		}
		upload.RequestID = &requestID
	}

	doc, err := h.documentUsecase.Upload(c.Request.Context(), userID, upload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// List lists the caller's documents
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	docs, err := h.documentUsecase.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

// Download streams a document's content
// GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid document ID"))
		return
	}

	doc, data, err := h.documentUsecase.Download(c.Request.Context(), userID, middleware.IsAdmin(c), docID)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, contentType, data)
}

// Delete removes a document
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid document ID"))
		return
	}

	if err := h.documentUsecase.Delete(c.Request.Context(), userID, middleware.IsAdmin(c), docID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"})
}
