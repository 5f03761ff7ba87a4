package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcourier-backend/internal/domains/payment/model"
	"bookcourier-backend/internal/domains/payment/service"
	"bookcourier-backend/internal/shared/middleware"
	"bookcourier-backend/internal/shared/response"
)

// =====================================================
// PAYMENT HANDLER
// =====================================================
type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateCheckoutSession starts a hosted checkout for a pending order and
// returns the redirect URL.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req model.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.paymentService.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// PaymentSuccess reconciles a session reference reported by the client after
// the provider redirect. Safe to call repeatedly for the same session.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	var req model.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.paymentService.Reconcile(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// MyInvoices lists the caller's payments, newest first.
func (h *PaymentHandler) MyInvoices(c *gin.Context) {
	email := middleware.CallerEmail(c)
	if email == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	payments, err := h.paymentService.ListInvoices(c.Request.Context(), model.ListInvoicesRequest{Email: email})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}
