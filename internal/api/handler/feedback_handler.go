package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// FeedbackHandler proxies the feedback resolution screen.
type FeedbackHandler struct {
	feedbacks ports.FeedbackClient
	audit     ports.AuditRecorder
}

func NewFeedbackHandler(feedbacks ports.FeedbackClient, audit ports.AuditRecorder) *FeedbackHandler {
	return &FeedbackHandler{feedbacks: feedbacks, audit: audit}
}

// The response text is forwarded opaquely; a blank resolution is allowed.
type resolveFeedbackRequest struct {
	Response string `json:"response"`
}

// List handles GET /admin/feedbacks.
func (h *FeedbackHandler) List(c echo.Context) error {
	feedbacks, err := h.feedbacks.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbacks)
}

// Pending handles GET /admin/feedbacks/pending.
func (h *FeedbackHandler) Pending(c echo.Context) error {
	feedbacks, err := h.feedbacks.Pending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbacks)
}

// Resolve handles POST /admin/feedbacks/:id/resolve.
func (h *FeedbackHandler) Resolve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req resolveFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	feedback, err := h.feedbacks.Resolve(c.Request().Context(), id, req.Response)
	if err != nil {
		return err
	}

	if session, serr := ctxSession(c); serr == nil {
		h.audit.RecordAction(session.Email, domain.AuditResolve, "feedback", id, req.Response, time.Now().UTC())
	}
	return c.JSON(http.StatusOK, feedback)
}
