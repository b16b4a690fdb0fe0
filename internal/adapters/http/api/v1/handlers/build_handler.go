package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

type BuildHandler struct {
	service usecase.BuildService
}

func NewBuildHandler(s usecase.BuildService) *BuildHandler { return &BuildHandler{service: s} }

type buildUpgradeRequest struct {
	PartID uuid.UUID `json:"part_id" validate:"required"`
	Note   *string   `json:"note" validate:"omitempty,max=500"`
}

type buildSettingRequest struct {
	Category string `json:"category" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Value    string `json:"value" validate:"required,max=100"`
}

type buildRequest struct {
	CarID       uuid.UUID             `json:"car_id" validate:"required"`
	Name        string                `json:"name" validate:"required,min=1,max=100"`
	Description *string               `json:"description" validate:"omitempty,max=2000"`
	IsPublic    bool                  `json:"is_public"`
	OwnerID     *uuid.UUID            `json:"owner_id"`
	Upgrades    []buildUpgradeRequest `json:"upgrades" validate:"dive"`
	Settings    []buildSettingRequest `json:"settings" validate:"dive"`
}

func (r *buildRequest) toInput() usecase.BuildInput {
	input := usecase.BuildInput{
		CarID:       r.CarID,
		Name:        r.Name,
		Description: r.Description,
		IsPublic:    r.IsPublic,
		OwnerID:     r.OwnerID,
	}
	for _, u := range r.Upgrades {
		input.Upgrades = append(input.Upgrades, usecase.BuildUpgradeInput{PartID: u.PartID, Note: u.Note})
	}
	for _, st := range r.Settings {
		input.Settings = append(input.Settings, usecase.BuildSettingInput{Category: st.Category, Name: st.Name, Value: st.Value})
	}
	return input
}

func (h *BuildHandler) List(c echo.Context) error {
	builds, err := h.service.List(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, builds)
}

func (h *BuildHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "build id")
	}
	build, err := h.service.Get(c.Request().Context(), middleware.SessionFromContext(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, build)
}

func (h *BuildHandler) Create(c echo.Context) error {
	req := new(buildRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	build, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, build)
}

func (h *BuildHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "build id")
	}
	req := new(buildRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	build, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id, req.toInput())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, build)
}

func (h *BuildHandler) Clone(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "build id")
	}
	build, err := h.service.Clone(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, build)
}

func (h *BuildHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "build id")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), middleware.SessionFromContext(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
