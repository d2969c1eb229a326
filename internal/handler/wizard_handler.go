package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// WizardHandler exposes the step navigation and submission endpoints.
type WizardHandler struct {
	wizard     *service.WizardService
	submission *service.SubmissionService
	metrics    *service.MetricsService
}

// NewWizardHandler creates a new handler.
func NewWizardHandler(wizard *service.WizardService, submission *service.SubmissionService, metrics *service.MetricsService) *WizardHandler {
	return &WizardHandler{wizard: wizard, submission: submission, metrics: metrics}
}

// State godoc
// @Summary Wizard state
// @Description Current step, per-step completeness and submit readiness for the session
// @Tags Wizard
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /apply/state [get]
func (h *WizardHandler) State(c *gin.Context) {
	state, err := h.wizard.State(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Advance godoc
// @Summary Advance one step
// @Description Move the session forward if the current step's gate passes
// @Tags Wizard
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /apply/advance [post]
func (h *WizardHandler) Advance(c *gin.Context) {
	state, err := h.wizard.Advance(c.Request.Context(), sessionFromContext(c))
	h.metrics.RecordStepTransition("forward", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Retreat godoc
// @Summary Go back one step
// @Description Move the session backward; always allowed, a no-op at the first step
// @Tags Wizard
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Router /apply/retreat [post]
func (h *WizardHandler) Retreat(c *gin.Context) {
	state, err := h.wizard.Retreat(c.Request.Context(), sessionFromContext(c))
	h.metrics.RecordStepTransition("backward", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Submit godoc
// @Summary Submit the application
// @Description Finalize the completed draft into the applications ledger
// @Tags Wizard
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /apply/submit [post]
func (h *WizardHandler) Submit(c *gin.Context) {
	receipt, err := h.submission.Finalize(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSubmission()
	response.Created(c, receipt)
}
