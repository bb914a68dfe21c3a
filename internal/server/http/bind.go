package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agrodash/agroadmin/internal/server/attachments"
	"github.com/labstack/echo/v4"
)

const (
	imageField = "image"
	dataField  = "data"
)

func bindJSON(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindWithImage decodes v and the optional image of a request. JSON bodies
// carry no image. Multipart bodies carry v as JSON in the "data" field and
// the image in the "image" field. The returned cleanup closes the image.
func bindWithImage(c echo.Context, v any) (*attachments.File, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, bindJSON(c, v)
	}

	if err := json.Unmarshal([]byte(c.FormValue(dataField)), v); err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid data field")
	}

	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid image field")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open upload: %w", err)
	}
	file := &attachments.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	return file, func() { _ = f.Close() }, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return n, nil
}

// queryTime accepts RFC 3339 timestamps and plain dates.
func queryTime(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
}
