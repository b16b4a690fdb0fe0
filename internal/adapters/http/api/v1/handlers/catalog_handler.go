package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

// CatalogHandler serves the reference data: tracks, cars, parts.
type CatalogHandler struct {
	service usecase.CatalogService
}

func NewCatalogHandler(s usecase.CatalogService) *CatalogHandler { return &CatalogHandler{service: s} }

type trackRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=100"`
	Location *string  `json:"location" validate:"omitempty,max=100"`
	LengthKM *float64 `json:"length_km" validate:"omitempty,gt=0"`
	ImageURL *string  `json:"image_url" validate:"omitempty,url,max=500"`
}

type carRequest struct {
	Make     string  `json:"make" validate:"required,min=1,max=50"`
	Model    string  `json:"model" validate:"required,min=1,max=100"`
	Year     *int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Class    *string `json:"class" validate:"omitempty,max=50"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=500"`
}

type partRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Category    string  `json:"category" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (h *CatalogHandler) ListTracks(c echo.Context) error {
	tracks, err := h.service.ListTracks(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tracks)
}

func (h *CatalogHandler) GetTrack(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "track id")
	}
	track, err := h.service.GetTrack(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, track)
}

func (h *CatalogHandler) CreateTrack(c echo.Context) error {
	req := new(trackRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	track := &domain.Track{Name: req.Name, Location: req.Location, LengthKM: req.LengthKM, ImageURL: req.ImageURL}
	if err := h.service.SaveTrack(c.Request().Context(), middleware.SessionFromContext(c), track); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, track)
}

func (h *CatalogHandler) UpdateTrack(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "track id")
	}
	req := new(trackRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	track := &domain.Track{ID: id, Name: req.Name, Location: req.Location, LengthKM: req.LengthKM, ImageURL: req.ImageURL}
	if err := h.service.SaveTrack(c.Request().Context(), middleware.SessionFromContext(c), track); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, track)
}

func (h *CatalogHandler) DeleteTrack(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "track id")
	}
	if err := h.service.DeleteTrack(c.Request().Context(), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *CatalogHandler) ListCars(c echo.Context) error {
	cars, err := h.service.ListCars(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, cars)
}

func (h *CatalogHandler) GetCar(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "car id")
	}
	car, err := h.service.GetCar(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

func (h *CatalogHandler) CreateCar(c echo.Context) error {
	req := new(carRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	car := &domain.Car{Make: req.Make, Model: req.Model, Year: req.Year, Class: req.Class, ImageURL: req.ImageURL}
	if err := h.service.SaveCar(c.Request().Context(), middleware.SessionFromContext(c), car); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, car)
}

func (h *CatalogHandler) UpdateCar(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "car id")
	}
	req := new(carRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	car := &domain.Car{ID: id, Make: req.Make, Model: req.Model, Year: req.Year, Class: req.Class, ImageURL: req.ImageURL}
	if err := h.service.SaveCar(c.Request().Context(), middleware.SessionFromContext(c), car); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

func (h *CatalogHandler) DeleteCar(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "car id")
	}
	if err := h.service.DeleteCar(c.Request().Context(), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *CatalogHandler) ListParts(c echo.Context) error {
	parts, err := h.service.ListParts(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, parts)
}

func (h *CatalogHandler) GetPart(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "part id")
	}
	part, err := h.service.GetPart(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, part)
}

func (h *CatalogHandler) CreatePart(c echo.Context) error {
	req := new(partRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	part := &domain.Part{Name: req.Name, Category: req.Category, Description: req.Description}
	if err := h.service.SavePart(c.Request().Context(), middleware.SessionFromContext(c), part); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, part)
}

func (h *CatalogHandler) UpdatePart(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "part id")
	}
	req := new(partRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	part := &domain.Part{ID: id, Name: req.Name, Category: req.Category, Description: req.Description}
	if err := h.service.SavePart(c.Request().Context(), middleware.SessionFromContext(c), part); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, part)
}

func (h *CatalogHandler) DeletePart(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "part id")
	}
	if err := h.service.DeletePart(c.Request().Context(), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
