package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

// writeErr maps usecase/persistence errors onto the status taxonomy. 500
// responses are always opaque; the handler's caller logs the detail.
func writeErr(c echo.Context, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return res.FieldErr(c, http.StatusBadRequest, "validation failed", verr.Fields)
	}
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return res.Err(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, usecase.ErrForbidden):
		return res.Err(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return res.Err(c, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return res.Err(c, http.StatusConflict, "already exists")
	case errors.Is(err, usecase.ErrInvalidRole):
		return res.Err(c, http.StatusBadRequest, "role must be one of PENDING, USER, ADMIN")
	case errors.Is(err, usecase.ErrOwnerNotEligible):
		return res.Err(c, http.StatusBadRequest, "owner must be an approved user")
	case errors.Is(err, usecase.ErrInvalidToken):
		return res.Err(c, http.StatusBadRequest, "invalid or expired token")
	case errors.Is(err, repo.ErrReorderMismatch):
		return res.Err(c, http.StatusBadRequest, "entry ids must match the run list's entries")
	default:
		return res.Err(c, http.StatusInternalServerError, "internal error")
	}
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest)
	}
	return id, nil
}

func badID(c echo.Context, name string) error {
	return res.Err(c, http.StatusBadRequest, "invalid "+name)
}
