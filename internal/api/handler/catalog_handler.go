package handler

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/specialists-api/internal/core/ports"
)

// CatalogHandler handles HTTP requests for catalog service operations.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List handles GET /services.
//
// @Summary      List all catalog services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ServiceResult
// @Failure      401  {object}  errorResponse
// @Router       /services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// Get handles GET /services/:id.
//
// @Summary      Get a catalog service by id
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Service id"
// @Success      200  {object}  ports.ServiceResult
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /services/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	svc, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// Create handles POST /add_service/ (multipart form).
//
// @Summary      Create a catalog service
// @Tags         services
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name            formData  string  true  "Service name"
// @Param        description     formData  string  true  "Description"
// @Param        price           formData  number  true  "Price"
// @Param        execution_time  formData  string  true  "Appointment duration (e.g. 00:30)"
// @Param        image           formData  file    true  "Service image"
// @Success      201  {object}  ports.ServiceResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /add_service/ [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	name := c.FormValue("name")
	description := c.FormValue("description")
	executionTime := c.FormValue("execution_time")
	if name == "" || description == "" || executionTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, description and execution_time are required")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be a positive number")
	}

	image, err := formFileBytes(c, "image")
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateServiceInput{
		Name:          name,
		Description:   description,
		Price:         price,
		ExecutionTime: executionTime,
		Image:         image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /update_service/:id.
//
// @Summary      Update a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Service id"
// @Param        body  body      updateServiceRequest  true  "Replacement fields"
// @Success      200  {object}  ports.ServiceResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /update_service/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image_base64 is not valid base64")
	}

	updated, err := h.service.Update(c.Request().Context(), id, ports.UpdateServiceInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ExecutionTime: req.ExecutionTime,
		Image:         image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /delete_service/:id.
//
// @Summary      Delete a catalog service
// @Tags         services
// @Security     BearerAuth
// @Param        id  path  int  true  "Service id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /delete_service/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
