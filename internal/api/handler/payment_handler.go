package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// PaymentHandler proxies the payment verification screen.
type PaymentHandler struct {
	payments ports.PaymentClient
	audit    ports.AuditRecorder
}

func NewPaymentHandler(payments ports.PaymentClient, audit ports.AuditRecorder) *PaymentHandler {
	return &PaymentHandler{payments: payments, audit: audit}
}

// Remarks and reason are forwarded opaquely; the settlement dialog submits
// them even when left blank.
type verifyPaymentRequest struct {
	Remarks string `json:"remarks"`
}

type rejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// List handles GET /admin/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Pending handles GET /admin/payments/pending.
func (h *PaymentHandler) Pending(c echo.Context) error {
	payments, err := h.payments.Pending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Verify handles POST /admin/payments/:id/verify.
func (h *PaymentHandler) Verify(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.payments.Verify(c.Request().Context(), id, req.Remarks)
	if err != nil {
		return err
	}

	h.record(c, domain.AuditVerify, id, req.Remarks)
	return c.JSON(http.StatusOK, payment)
}

// Reject handles POST /admin/payments/:id/reject.
func (h *PaymentHandler) Reject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req rejectPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.payments.Reject(c.Request().Context(), id, req.Reason)
	if err != nil {
		return err
	}

	h.record(c, domain.AuditReject, id, req.Reason)
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) record(c echo.Context, action domain.AuditAction, id int64, detail string) {
	if session, err := ctxSession(c); err == nil {
		h.audit.RecordAction(session.Email, action, "payment", id, detail, time.Now().UTC())
	}
}
