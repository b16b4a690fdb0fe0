package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

type RaceHandler struct {
	service usecase.RaceService
}

func NewRaceHandler(s usecase.RaceService) *RaceHandler { return &RaceHandler{service: s} }

type raceRequest struct {
	TrackID  uuid.UUID   `json:"track_id" validate:"required"`
	Name     string      `json:"name" validate:"required,min=1,max=100"`
	StartsAt time.Time   `json:"starts_at" validate:"required"`
	Notes    *string     `json:"notes" validate:"omitempty,max=2000"`
	CarIDs   []uuid.UUID `json:"car_ids"`
}

func (r *raceRequest) toInput() usecase.RaceInput {
	return usecase.RaceInput{
		TrackID:  r.TrackID,
		Name:     r.Name,
		StartsAt: r.StartsAt,
		Notes:    r.Notes,
		CarIDs:   r.CarIDs,
	}
}

func (h *RaceHandler) List(c echo.Context) error {
	races, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, races)
}

func (h *RaceHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "race id")
	}
	race, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) Create(c echo.Context) error {
	req := new(raceRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	race, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, race)
}

func (h *RaceHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "race id")
	}
	req := new(raceRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	race, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id, req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, race)
}

func (h *RaceHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "race id")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
