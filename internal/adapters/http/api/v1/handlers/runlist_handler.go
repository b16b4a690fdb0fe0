package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

type RunListHandler struct {
	service usecase.RunListService
}

func NewRunListHandler(s usecase.RunListService) *RunListHandler { return &RunListHandler{service: s} }

type runListEntryRequest struct {
	TrackID uuid.UUID   `json:"track_id" validate:"required"`
	Note    *string     `json:"note" validate:"omitempty,max=500"`
	CarIDs  []uuid.UUID `json:"car_ids"`
}

type runListRequest struct {
	Name        string                `json:"name" validate:"required,min=1,max=100"`
	Description *string               `json:"description" validate:"omitempty,max=2000"`
	IsPublic    bool                  `json:"is_public"`
	Entries     []runListEntryRequest `json:"entries" validate:"dive"`
}

type reorderRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids" validate:"required,min=1"`
}

type runSessionRequest struct {
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
	Notes        *string   `json:"notes" validate:"omitempty,max=2000"`
}

type attendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=YES NO MAYBE"`
}

func (r *runListRequest) toInput() usecase.RunListInput {
	input := usecase.RunListInput{
		Name:        r.Name,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
	for _, e := range r.Entries {
		input.Entries = append(input.Entries, usecase.RunListEntryInput{
			TrackID: e.TrackID,
			Note:    e.Note,
			CarIDs:  e.CarIDs,
		})
	}
	return input
}

func (h *RunListHandler) List(c echo.Context) error {
	lists, err := h.service.List(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

func (h *RunListHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	list, err := h.service.Get(c.Request().Context(), middleware.SessionFromContext(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RunListHandler) Create(c echo.Context) error {
	req := new(runListRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	list, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *RunListHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	req := new(runListRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	list, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id, req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RunListHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *RunListHandler) Reorder(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	req := new(reorderRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	list, err := h.service.Reorder(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id, req.EntryIDs)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RunListHandler) CreateSession(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	req := new(runSessionRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	session, err := h.service.CreateSession(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id, usecase.RunSessionInput{
		ScheduledFor: req.ScheduledFor,
		Notes:        req.Notes,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *RunListHandler) ListSessions(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "run list id")
	}
	sessions, err := h.service.ListSessions(c.Request().Context(), middleware.SessionFromContext(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *RunListHandler) SetAttendance(c echo.Context) error {
	sessionID, err := uuidParam(c, "sessionId")
	if err != nil {
		return badID(c, "session id")
	}
	req := new(attendanceRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	att, err := h.service.SetAttendance(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), sessionID, domain.AttendanceStatus(req.Status))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, att)
}
