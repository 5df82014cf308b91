package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/handler"
	"github.com/vetcarepro/clinic-api/internal/service"
)

type Handler struct {
	payments *service.PaymentService
}

func NewHandler(payments *service.PaymentService) *Handler {
	return &Handler{payments: payments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("/session", h.CreateSession)
		payments.POST("/confirm", h.Confirm)
	}
}

// RegisterRefundRoutes mounts the back-office refund separately so it can sit
// behind the billing capability gate.
func (h *Handler) RegisterRefundRoutes(r *gin.RouterGroup) {
	r.POST("/payments/refund", h.Refund)
}

type createSessionRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
}

type confirmRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type refundRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	session, err := h.payments.CreateSession(c.Request.Context(), req.AppointmentID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessMessageResponse("checkout session created", session))
}

func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	inv, err := h.payments.Confirm(c.Request.Context(), req.SessionID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessMessageResponse("payment confirmed", inv))
}

func (h *Handler) Refund(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	pay, err := h.payments.Refund(c.Request.Context(), req.InvoiceID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessMessageResponse("payment refunded", pay))
}
