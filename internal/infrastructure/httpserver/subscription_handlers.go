package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/taskplanner/task-planner/internal/core/domain/subscription"
)

// Subscription handlers (JSON API)

func (s *Server) createSubscription(c echo.Context) error {
	var req subscription.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email address is required")
	}

	if err := s.subscriptionSvc.Subscribe(c.Request().Context(), email); err != nil {
		switch {
		case errors.Is(err, subscription.ErrAlreadyVerified), errors.Is(err, subscription.ErrAlreadyPending):
			return echo.NewHTTPError(http.StatusConflict, "email is already subscribed or awaiting verification")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to process subscription")
		}
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "verification email sent"})
}

func (s *Server) verifySubscription(c echo.Context) error {
	var req subscription.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.subscriptionSvc.Verify(c.Request().Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, subscription.ErrInvalidCode) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid verification code or email")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify subscription")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "subscription verified"})
}

func (s *Server) deleteSubscription(c echo.Context) error {
	email := c.Param("email")
	if !validEmail(email) {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email address is required")
	}

	if err := s.subscriptionSvc.Unsubscribe(c.Request().Context(), email); err != nil {
		if errors.Is(err, subscription.ErrNotSubscribed) {
			return echo.NewHTTPError(http.StatusNotFound, "email is not subscribed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to unsubscribe")
	}
	return c.NoContent(http.StatusNoContent)
}
