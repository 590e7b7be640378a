package common

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/pipeline"
)

// ErrorBody is the uniform failure shape of every JSON endpoint.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrBadRequest returns a 400 Bad Request error.
func ErrBadRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// ErrInternal returns a 500 Internal Server Error.
func ErrInternal(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, msg)
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindConfiguration:
		return http.StatusForbidden
	case apperror.KindUpstream, apperror.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Describe converts any handler error into a status and body.
func Describe(err error) (int, ErrorBody) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return he.Code, ErrorBody{Error: msg}
	case errors.Is(err, pipeline.ErrStageUnavailable), errors.Is(err, pipeline.ErrAbandoned):
		return http.StatusConflict, ErrorBody{Error: err.Error()}
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads this.
		return 499, ErrorBody{Error: "request cancelled"}
	}

	ae := apperror.Ensure(err, "an unexpected error occurred")
	if ae.Kind == apperror.KindInternal {
		return http.StatusInternalServerError, ErrorBody{Error: ae.Message}
	}
	return StatusOf(ae.Kind), ErrorBody{Error: ae.Message, Details: ae.Detail}
}

// HTTPErrorHandler writes every error as an ErrorBody.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := Describe(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
