package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// DocumentHandler exposes slot-bound document upload endpoints.
type DocumentHandler struct {
	service *service.DocumentService
	metrics *service.MetricsService
}

// NewDocumentHandler creates a new handler.
func NewDocumentHandler(svc *service.DocumentService, metrics *service.MetricsService) *DocumentHandler {
	return &DocumentHandler{service: svc, metrics: metrics}
}

// Slots godoc
// @Summary List document slots
// @Description Fixed document slots with the session's upload state
// @Tags Documents
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Router /apply/documents [get]
func (h *DocumentHandler) Slots(c *gin.Context) {
	slots := h.service.Slots(c.Request.Context(), sessionFromContext(c))
	response.JSON(c, http.StatusOK, slots, nil)
}

// Upload godoc
// @Summary Upload a document
// @Description Store a file for the given slot, replacing any prior upload
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Param slot path string true "Document slot"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /apply/documents/{slot} [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	slot := models.DocumentSlot(c.Param("slot"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.metrics.RecordUpload(string(slot), false)
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.metrics.RecordUpload(string(slot), false)
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	mimeType := fileHeader.Header.Get("Content-Type")
	doc, err := h.service.Upload(c.Request.Context(), sessionFromContext(c), slot, fileHeader.Filename, mimeType, fileHeader.Size, file)
	h.metrics.RecordUpload(string(slot), err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

// Remove godoc
// @Summary Remove a document
// @Description Unbind the slot's upload and delete its payload
// @Tags Documents
// @Param X-Session-ID header string true "Applicant session id"
// @Param slot path string true "Document slot"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /apply/documents/{slot} [delete]
func (h *DocumentHandler) Remove(c *gin.Context) {
	slot := models.DocumentSlot(c.Param("slot"))
	if err := h.service.Remove(c.Request.Context(), sessionFromContext(c), slot); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
