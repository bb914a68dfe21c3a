package http

import (
	"net/http"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listFarmers(c echo.Context) error {
	filter := models.FarmerFilter{
		Region: c.QueryParam("region"),
		Search: c.QueryParam("search"),
	}
	out, err := s.svc.Farmers.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getFarmer(c echo.Context) error {
	out, err := s.svc.Farmers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createFarmer(c echo.Context) error {
	var in models.FarmerInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Farmers.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateFarmer(c echo.Context) error {
	var in models.FarmerInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Farmers.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) verifyFarmer(c echo.Context) error {
	out, err := s.svc.Farmers.Verify(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteFarmer(c echo.Context) error {
	if err := s.svc.Farmers.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUserAddresses(c echo.Context) error {
	out, err := s.svc.Addresses.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getDefaultAddress(c echo.Context) error {
	out, err := s.svc.Addresses.GetDefault(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getAddress(c echo.Context) error {
	out, err := s.svc.Addresses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createAddress(c echo.Context) error {
	var in models.AddressInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Addresses.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateAddress(c echo.Context) error {
	var patch models.AddressPatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	out, err := s.svc.Addresses.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) setDefaultAddress(c echo.Context) error {
	out, err := s.svc.Addresses.SetDefault(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteAddress(c echo.Context) error {
	if err := s.svc.Addresses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUsers(c echo.Context) error {
	out, err := s.svc.Users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getUser(c echo.Context) error {
	out, err := s.svc.Users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) updateUserRole(c echo.Context) error {
	var in models.RoleInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Users.UpdateRole(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) setUserActive(c echo.Context) error {
	var in struct {
		Active *bool `json:"active"`
	}
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if in.Active == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "active is required")
	}
	out, err := s.svc.Users.SetActive(c.Request().Context(), c.Param("id"), *in.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteUser(c echo.Context) error {
	if err := s.svc.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
