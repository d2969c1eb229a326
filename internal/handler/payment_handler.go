package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scholarship-portal-api/internal/service"
	"github.com/noah-isme/scholarship-portal-api/pkg/response"
)

// PaymentHandler exposes the simulated fee payment endpoints.
type PaymentHandler struct {
	service *service.PaymentService
	metrics *service.MetricsService
}

// NewPaymentHandler creates a new handler.
func NewPaymentHandler(svc *service.PaymentService, metrics *service.MetricsService) *PaymentHandler {
	return &PaymentHandler{service: svc, metrics: metrics}
}

// Initiate godoc
// @Summary Pay the application fee
// @Description Kick off the simulated payment; completes asynchronously
// @Tags Payment
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /apply/payment [post]
func (h *PaymentHandler) Initiate(c *gin.Context) {
	state, err := h.service.Initiate(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		h.metrics.RecordPayment("rejected")
		response.Error(c, err)
		return
	}
	h.metrics.RecordPayment("initiated")
	response.JSON(c, http.StatusAccepted, state, nil)
}

// Status godoc
// @Summary Payment status
// @Description Current simulated payment state for the session
// @Tags Payment
// @Produce json
// @Param X-Session-ID header string true "Applicant session id"
// @Success 200 {object} response.Envelope
// @Router /apply/payment [get]
func (h *PaymentHandler) Status(c *gin.Context) {
	state, err := h.service.Status(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}
