package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// ApplicationHandler serves the public receipt lookup and the admin review surface.
type ApplicationHandler struct {
	service *service.ApplicationService
}

// NewApplicationHandler creates a new handler.
func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: svc}
}

// Get godoc
// @Summary Look up a submitted application
// @Description Public acknowledgement view by application id
// @Tags Applications
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// List godoc
// @Summary List applications
// @Description Admin view with status filter, search and pagination
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search id, name or email"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/applications [get]
// @Security BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := filterFromQuery(c)
	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// UpdateStatus godoc
// @Summary Update review status
// @Description Transition an application between submitted, reviewed, approved and rejected
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Application id"
// @Param payload body models.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id}/status [patch]
// @Security BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	id := c.Param("id")
	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Stats godoc
// @Summary Application statistics
// @Description Per-status totals for the admin dashboard
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/applications/stats [get]
// @Security BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ExportCSV godoc
// @Summary Export applications
// @Description Download applications matching the filter as CSV
// @Tags Admin
// @Produce text/csv
// @Param status query string false "Filter by status"
// @Param search query string false "Search id, name or email"
// @Success 200 {file} file
// @Router /admin/applications/export [get]
// @Security BearerAuth
func (h *ApplicationHandler) ExportCSV(c *gin.Context) {
	payload, filename, err := h.service.ExportCSV(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// Receipt godoc
// @Summary Application receipt PDF
// @Description Render the acknowledgement receipt for an application
// @Tags Admin
// @Produce application/pdf
// @Param id path string true "Application id"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id}/receipt [get]
// @Security BearerAuth
func (h *ApplicationHandler) Receipt(c *gin.Context) {
	payload, filename, err := h.service.ReceiptPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// DocumentURL godoc
// @Summary Signed document link
// @Description Issue an expiring download token for an uploaded document
// @Tags Admin
// @Produce json
// @Param id path string true "Application id"
// @Param slot path string true "Document slot"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id}/documents/{slot} [get]
// @Security BearerAuth
func (h *ApplicationHandler) DocumentURL(c *gin.Context) {
	slot := models.DocumentSlot(c.Param("slot"))
	token, expiresAt, err := h.service.DocumentURL(c.Request.Context(), c.Param("id"), slot)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":        fmt.Sprintf("/files/%s", token),
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}, nil)
}

// Download godoc
// @Summary Download a document
// @Description Stream a document payload referenced by a signed token
// @Tags Files
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /files/{token} [get]
func (h *ApplicationHandler) Download(c *gin.Context) {
	file, doc, err := h.service.ResolveDocument(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Header("Content-Type", doc.MimeType)
	c.File(file.Name())
}

func filterFromQuery(c *gin.Context) models.ApplicationFilter {
	filter := models.ApplicationFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			filter.PageSize = size
		}
	}
	return filter
}
