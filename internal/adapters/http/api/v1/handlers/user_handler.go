package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

// UserHandler covers the member-facing profile endpoint and the admin user
// management surface.
type UserHandler struct {
	service usecase.UserService
}

func NewUserHandler(s usecase.UserService) *UserHandler { return &UserHandler{service: s} }

type updateProfileRequest struct {
	Gamertag *string `json:"gamertag" validate:"omitempty,min=3,max=20,gamertag"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
}

// UpdateProfile trims the gamertag before validating; setting one never
// changes the caller's role.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	s := middleware.SessionFromContext(c)
	if s == nil {
		return res.Err(c, http.StatusUnauthorized, "authentication required")
	}
	req := new(updateProfileRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Gamertag != nil {
		trimmed := strings.TrimSpace(*req.Gamertag)
		req.Gamertag = &trimmed
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), requestIDFromCtx(c), s, usecase.ProfileInput{
		Name:     req.Name,
		Gamertag: req.Gamertag,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Gamertag *string `json:"gamertag" validate:"omitempty,min=3,max=20,gamertag"`
	Role     string  `json:"role" validate:"omitempty,oneof=PENDING USER ADMIN"`
}

type updateUserRequest struct {
	Role     *string `json:"role"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Gamertag *string `json:"gamertag" validate:"omitempty,min=3,max=20,gamertag"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "user id")
	}
	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c echo.Context) error {
	req := new(createUserRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	user, err := h.service.Create(c.Request().Context(), requestIDFromCtx(c), usecase.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Gamertag: req.Gamertag,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Update is the admin set-role operation; the role value is checked against
// the three-value enum before anything is written.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "user id")
	}
	req := new(updateUserRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	input := usecase.UpdateUserInput{Name: req.Name, Gamertag: req.Gamertag}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return res.FieldErr(c, http.StatusBadRequest, "validation failed", map[string]string{
				"role": "Role must be one of PENDING, USER, ADMIN",
			})
		}
		input.Role = &role
	}
	user, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), id, input)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return badID(c, "user id")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
