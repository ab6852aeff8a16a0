package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
)

// PaymentHandler hands checkout over to the payment provider.
type PaymentHandler struct {
	checkout *payment.Checkout
}

func NewPaymentHandler(checkout *payment.Checkout) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

type CreateIntentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentID int `json:"paymentId"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		httperr.Respond(c, errInvalidID)
		return
	}

	pref, err := h.checkout.CreateIntent(c.Request.Context(), p, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, pref)
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.checkout.Confirm(c.Request.Context(), req.PaymentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, st)
}
