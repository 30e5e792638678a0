package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps a domain sentinel to a status code. An empty message
// means the wrapped error text is safe to show to the caller.
type errorStatus struct {
	target error
	code   int
	msg    string
}

// Order matters: ErrUnknownClient wraps ErrInvalidInput and must win.
var errorStatuses = []errorStatus{
	{domain.ErrUnknownClient, http.StatusBadRequest, "client not found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ""},
	{domain.ErrOrderNotFound, http.StatusNotFound, "order not found"},
	{domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
}

// NewHTTPErrorHandler renders every error returned by a handler as
// {"error": "..."}. Errors it cannot classify are logged and reported as 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := classify(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, errorResponse{Error: msg})
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, s := range errorStatuses {
		if errors.Is(err, s.target) {
			if s.msg == "" {
				return s.code, err.Error()
			}
			return s.code, s.msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
