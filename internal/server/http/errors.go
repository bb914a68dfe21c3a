package http

import (
	"errors"
	"net/http"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/netx"
	"github.com/agrodash/agroadmin/internal/server/validation"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error          string                  `json:"error"`
	Fields         []validation.FieldError `json:"fields,omitempty"`
	UpstreamStatus int                     `json:"upstream_status,omitempty"`
}

// mapError turns a service error into an HTTP status and response body.
func mapError(err error) (int, errorBody) {
	var (
		verr    *validation.Error
		httpErr *echo.HTTPError
		stErr   *netx.StatusError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: verr.Fields}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, errorBody{Error: msg}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, errorBody{Error: "not found"}
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, errorBody{Error: "token expired"}
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, errorBody{Error: "unauthorized"}
	case errors.Is(err, common.ErrInvalidTransition):
		return http.StatusConflict, errorBody{Error: err.Error()}
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, errorBody{Error: "conflict"}
	case errors.As(err, &stErr):
		return http.StatusBadGateway, errorBody{Error: "upstream error", UpstreamStatus: stErr.StatusCode}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal error"}
	}
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error(ctx, "cannot write error response", "error", err)
	}
}
