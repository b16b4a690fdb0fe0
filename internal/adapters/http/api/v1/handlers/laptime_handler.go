package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

type LapTimeHandler struct {
	service usecase.LapTimeService
}

func NewLapTimeHandler(s usecase.LapTimeService) *LapTimeHandler { return &LapTimeHandler{service: s} }

type lapTimeRequest struct {
	TrackID    uuid.UUID  `json:"track_id" validate:"required"`
	CarID      uuid.UUID  `json:"car_id" validate:"required"`
	BuildID    *uuid.UUID `json:"build_id"`
	TimeMS     int64      `json:"time_ms" validate:"required,gt=0"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// List accepts optional track_id, car_id and user_id query filters.
func (h *LapTimeHandler) List(c echo.Context) error {
	var filter repo.LapTimeFilter
	if v := c.QueryParam("track_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badID(c, "track id")
		}
		filter.TrackID = &id
	}
	if v := c.QueryParam("car_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badID(c, "car id")
		}
		filter.CarID = &id
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badID(c, "user id")
		}
		filter.UserID = &id
	}
	laps, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, laps)
}

func (h *LapTimeHandler) Create(c echo.Context) error {
	req := new(lapTimeRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	lap, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), usecase.LapTimeInput{
		TrackID:    req.TrackID,
		CarID:      req.CarID,
		BuildID:    req.BuildID,
		TimeMS:     req.TimeMS,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, lap)
}

func (h *LapTimeHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "lap time id")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
