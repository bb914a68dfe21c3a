package http

import (
	"net/http"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listOrders(c echo.Context) error {
	filter := models.OrderFilter{
		Status:  c.QueryParam("status"),
		BuyerID: c.QueryParam("buyer_id"),
	}
	out, err := s.svc.Orders.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) orderStats(c echo.Context) error {
	out, err := s.svc.Orders.CountByStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getOrder(c echo.Context) error {
	out, err := s.svc.Orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	var in models.OrderStatusInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Orders.UpdateStatus(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteOrder(c echo.Context) error {
	if err := s.svc.Orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func marketPriceFilter(c echo.Context) (models.MarketPriceFilter, error) {
	f := models.MarketPriceFilter{
		Crop:   c.QueryParam("crop"),
		Market: c.QueryParam("market"),
		Region: c.QueryParam("region"),
	}
	var err error
	if f.From, err = queryTime(c, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}

func (s *Server) listMarketPrices(c echo.Context) error {
	f, err := marketPriceFilter(c)
	if err != nil {
		return err
	}
	out, err := s.svc.MarketPrices.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) marketPriceStats(c echo.Context) error {
	f, err := marketPriceFilter(c)
	if err != nil {
		return err
	}
	out, err := s.svc.MarketPrices.Stats(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createMarketPrice(c echo.Context) error {
	var in models.MarketPriceInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.MarketPrices.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateMarketPrice(c echo.Context) error {
	var in models.MarketPriceInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.MarketPrices.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteMarketPrice(c echo.Context) error {
	if err := s.svc.MarketPrices.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
