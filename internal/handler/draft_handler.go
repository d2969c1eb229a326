package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/internal/validation"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// DraftHandler exposes the draft read/update/reset endpoints plus the
// per-field validation probe used for inline form feedback.
type DraftHandler struct {
	service *service.DraftService
}

// NewDraftHandler creates a new handler.
func NewDraftHandler(svc *service.DraftService) *DraftHandler {
	return &DraftHandler{service: svc}
}

// Get godoc
// @Summary Load draft
// @Description Return the session's in-progress application, or the default draft
// @Tags Draft
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Router /apply/draft [get]
func (h *DraftHandler) Get(c *gin.Context) {
	draft := h.service.Load(c.Request.Context(), sessionFromContext(c))
	response.JSON(c, http.StatusOK, draft, nil)
}

// Update godoc
// @Summary Update draft
// @Description Apply a partial, section-wise update to the session's draft
// @Tags Draft
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Param payload body models.UpdateDraftRequest true "Sections to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /apply/draft [patch]
func (h *DraftHandler) Update(c *gin.Context) {
	var req models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}

	draft, err := h.service.Update(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft, nil)
}

// Reset godoc
// @Summary Reset draft
// @Description Discard the session's draft and wizard position
// @Tags Draft
// @Param X-Session-ID header string true "Applicant session id"
// @Success 204 "No Content"
// @Router /apply/draft [delete]
func (h *DraftHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), sessionFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ValidateField godoc
// @Summary Validate one field
// @Description Run the step's validation rule for a single field value
// @Tags Draft
// @Accept json
// @Produce json
// @Param payload body object true "Step, field and value"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /apply/fields/validate [post]
func (h *DraftHandler) ValidateField(c *gin.Context) {
	var req struct {
		Step  models.Step      `json:"step" binding:"required"`
		Field validation.Field `json:"field" binding:"required"`
		Value string           `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}

	message, err := validation.Validate(req.Step, req.Field, req.Value)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}

	response.JSON(c, http.StatusOK, models.FieldValidationResult{
		Field: string(req.Field),
		Valid: message == "",
		Error: message,
	}, nil)
}
