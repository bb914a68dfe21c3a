package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/logging"
	"github.com/agrodash/agroadmin/internal/server/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// session attaches the bearer session to the request context. Requests
// without an Authorization header pass through anonymously; a present but
// invalid token is rejected.
func (s *Server) session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		if header == "" || s.opts.Verifier == nil {
			return next(c)
		}

		token, ok := auth.BearerToken(header)
		if !ok {
			return common.ErrInvalidToken
		}
		sess, err := s.opts.Verifier.Verify(token)
		if err != nil {
			return err
		}

		req := c.Request()
		c.SetRequest(req.WithContext(auth.WithSession(req.Context(), sess)))
		return next(c)
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(requestIDHeader, id)
		req = req.WithContext(logging.WithRequestID(req.Context(), id))
		c.SetRequest(req)

		start := time.Now()
		err := next(c)

		s.logger.Debug(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", responseStatus(c, err),
			"duration", time.Since(start),
		)
		return err
	}
}

func (s *Server) metrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		s.opts.Metrics.ObserveHTTP(c.Request().Method, route, strconv.Itoa(responseStatus(c, err)), time.Since(start).Seconds())
		return err
	}
}

// responseStatus is the status the client will see once err, if any, has
// gone through the error handler.
func responseStatus(c echo.Context, err error) int {
	if err != nil {
		status, _ := mapError(err)
		return status
	}
	if st := c.Response().Status; st != 0 {
		return st
	}
	return http.StatusOK
}
