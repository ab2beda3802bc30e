package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FocusResponse is the response body for the focus session endpoints.
// Seconds is the countdown the frontend timer should display.
type FocusResponse struct {
	Status  string `json:"status"`
	Seconds int    `json:"seconds"`
}

// handleFocusStart begins a new focus session for the identity. Any
// previous running session is finished first, so at most one session is
// running per identity.
func (s *Server) handleFocusStart(c echo.Context) error {
	ident := identity(c)
	session, err := s.store.StartSession(c.Request().Context(), ident, s.config.Focus.DurationSec)
	if err != nil {
		return httpError(err)
	}

	s.logger.Info("focus session started",
		zap.String("identity", ident),
		zap.String("session_id", session.ID),
	)
	return c.JSON(http.StatusOK, FocusResponse{
		Status:  session.Status,
		Seconds: session.DurationSeconds,
	})
}

// handleFocusReset finishes any running or paused sessions for the
// identity and reports the default duration without creating a record.
func (s *Server) handleFocusReset(c echo.Context) error {
	if err := s.store.ResetSessions(c.Request().Context(), identity(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, FocusResponse{
		Status:  "ready",
		Seconds: s.config.Focus.DurationSec,
	})
}
