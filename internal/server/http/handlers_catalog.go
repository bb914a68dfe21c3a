package http

import (
	"net/http"

	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/labstack/echo/v4"
)

func (s *Server) listCategories(c echo.Context) error {
	out, err := s.svc.Categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getCategory(c echo.Context) error {
	out, err := s.svc.Categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createCategory(c echo.Context) error {
	var in models.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Categories.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateCategory(c echo.Context) error {
	var in models.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.Categories.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteCategory(c echo.Context) error {
	if err := s.svc.Categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listCrops(c echo.Context) error {
	filter := models.CropFilter{
		CategoryID: c.QueryParam("category_id"),
		Search:     c.QueryParam("search"),
	}
	out, err := s.svc.Crops.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getCrop(c echo.Context) error {
	out, err := s.svc.Crops.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createCrop(c echo.Context) error {
	var in models.CropInput
	file, done, err := bindWithImage(c, &in)
	if err != nil {
		return err
	}
	defer done()

	out, err := s.svc.Crops.Create(c.Request().Context(), in, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateCrop(c echo.Context) error {
	var in models.CropInput
	file, done, err := bindWithImage(c, &in)
	if err != nil {
		return err
	}
	defer done()

	out, err := s.svc.Crops.Update(c.Request().Context(), c.Param("id"), in, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteCrop(c echo.Context) error {
	if err := s.svc.Crops.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listProducts(c echo.Context) error {
	out, err := s.svc.Products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c echo.Context) error {
	out, err := s.svc.Products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createProduct(c echo.Context) error {
	var in models.ProductInput
	file, done, err := bindWithImage(c, &in)
	if err != nil {
		return err
	}
	defer done()

	out, err := s.svc.Products.Create(c.Request().Context(), in, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateProduct(c echo.Context) error {
	var in models.ProductInput
	file, done, err := bindWithImage(c, &in)
	if err != nil {
		return err
	}
	defer done()

	out, err := s.svc.Products.Update(c.Request().Context(), c.Param("id"), in, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteProduct(c echo.Context) error {
	if err := s.svc.Products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listAgriServices(c echo.Context) error {
	out, err := s.svc.AgriServices.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createAgriService(c echo.Context) error {
	var in models.AgriServiceInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.AgriServices.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateAgriService(c echo.Context) error {
	var in models.AgriServiceInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := s.svc.AgriServices.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteAgriService(c echo.Context) error {
	if err := s.svc.AgriServices.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
