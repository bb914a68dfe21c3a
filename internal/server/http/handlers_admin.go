package http

import (
	"errors"
	"net/http"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/settings"
	"github.com/labstack/echo/v4"
)

func (s *Server) listFeed(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}
	out, err := s.svc.Feed.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createPost(c echo.Context) error {
	var in models.FeedPostInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Feed.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) deletePost(c echo.Context) error {
	if err := s.svc.Feed.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) recentActivity(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	out, err := s.svc.Activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listAuditLogs(c echo.Context) error {
	f := models.AuditLogFilter{
		ActorID: c.QueryParam("actor_id"),
		Action:  c.QueryParam("action"),
	}
	var err error
	if f.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}
	if f.Offset, err = queryInt(c, "offset"); err != nil {
		return err
	}
	out, err := s.svc.AuditLogs.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.svc.Settings.Load(c.Request().Context()))
}

func (s *Server) updateSettings(c echo.Context) error {
	var patch settings.Patch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	out, err := s.svc.Settings.Update(c.Request().Context(), patch.Apply)
	if errors.Is(err, settings.ErrInvalid) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
