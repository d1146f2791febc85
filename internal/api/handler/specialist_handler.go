package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/specialists-api/internal/core/ports"
)

// SpecialistHandler handles HTTP requests for specialist operations.
type SpecialistHandler struct {
	service ports.SpecialistService
}

func NewSpecialistHandler(service ports.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{service: service}
}

// List handles GET /specialists.
//
// @Summary      List all specialists
// @Tags         specialists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.SpecialistResult
// @Failure      401  {object}  errorResponse
// @Router       /specialists [get]
func (h *SpecialistHandler) List(c echo.Context) error {
	specialists, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, specialists)
}

// Get handles GET /specialists/:id.
//
// @Summary      Get a specialist by id
// @Tags         specialists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Specialist id"
// @Success      200  {object}  ports.SpecialistResult
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /specialists/{id} [get]
func (h *SpecialistHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	specialist, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, specialist)
}

// Create handles POST /add_specialist/ (multipart form).
//
// @Summary      Create a specialist
// @Tags         specialists
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        last_name   formData  string  true  "Last name"
// @Param        first_name  formData  string  true  "First name"
// @Param        avatar      formData  file    true  "Avatar image"
// @Success      201  {object}  ports.SpecialistResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /add_specialist/ [post]
func (h *SpecialistHandler) Create(c echo.Context) error {
	lastName := c.FormValue("last_name")
	firstName := c.FormValue("first_name")
	if lastName == "" || firstName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "last_name and first_name are required")
	}

	avatar, err := formFileBytes(c, "avatar")
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateSpecialistInput{
		LastName:  lastName,
		FirstName: firstName,
		Avatar:    avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /update_specialist/:id.
//
// @Summary      Update a specialist
// @Tags         specialists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Specialist id"
// @Param        body  body      updateSpecialistRequest  true  "Replacement fields"
// @Success      200  {object}  ports.SpecialistResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /update_specialist/{id} [put]
func (h *SpecialistHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateSpecialistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, err := base64.StdEncoding.DecodeString(req.AvatarBase64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar_base64 is not valid base64")
	}

	updated, err := h.service.Update(c.Request().Context(), id, ports.UpdateSpecialistInput{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Avatar:    avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /delete_specialist/:id.
//
// @Summary      Delete a specialist
// @Tags         specialists
// @Security     BearerAuth
// @Param        id  path  int  true  "Specialist id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /delete_specialist/{id} [delete]
func (h *SpecialistHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

// formFileBytes reads the full contents of a multipart file field.
func formFileBytes(c echo.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot open "+field+" file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read "+field+" file")
	}
	if len(data) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" file is empty")
	}
	return data, nil
}
