package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/adapters/http/middleware"
	"github.com/fridaygt/backend/internal/usecase"
	"github.com/fridaygt/backend/internal/validate"
	res "github.com/fridaygt/backend/pkg/http"
)

type AuthHandler struct {
	cfg     *config.Config
	service usecase.AuthService
}

func NewAuthHandler(cfg *config.Config, s usecase.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, service: s}
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Login always answers 202: a magic link is issued whether or not the
// address is known.
func (h *AuthHandler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return res.Err(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return writeErr(c, err)
	}
	if err := h.service.StartLogin(c.Request().Context(), requestIDFromCtx(c), req.Email); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "check your email for a sign-in link"})
}

// Callback exchanges a valid magic-link token for the session cookie.
func (h *AuthHandler) Callback(c echo.Context) error {
	email := c.QueryParam("email")
	token := c.QueryParam("token")
	if email == "" || token == "" {
		return res.Err(c, http.StatusBadRequest, "email and token are required")
	}
	signed, expiresAt, err := h.service.VerifyMagicLink(c.Request().Context(), requestIDFromCtx(c), email, token)
	if err != nil {
		return writeErr(c, err)
	}
	h.setSessionCookie(c, signed, expiresAt)
	return c.JSON(http.StatusOK, map[string]string{"message": "signed in"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := middleware.SessionIDFromContext(c); sid != "" {
		if err := h.service.Logout(c.Request().Context(), requestIDFromCtx(c), sid); err != nil {
			return writeErr(c, err)
		}
	}
	h.setSessionCookie(c, "", time.Unix(0, 0))
	return c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

// Session reports the caller's resolved identity; an unknown email resolves
// to PENDING with no gamertag.
func (h *AuthHandler) Session(c echo.Context) error {
	s := middleware.SessionFromContext(c)
	if s == nil {
		return res.Err(c, http.StatusUnauthorized, "authentication required")
	}
	body := map[string]interface{}{
		"email":    s.Email,
		"role":     s.Role,
		"gamertag": s.Gamertag,
	}
	if id := s.UserID(); id != nil {
		body["user_id"] = id
	}
	return c.JSON(http.StatusOK, body)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.cfg.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
