package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

// Session is the resolved caller identity for one request. User is nil when
// the verified email has no application-schema row; that caller behaves as
// PENDING without a record ever being created.
type Session struct {
	Email    string       `json:"email"`
	Role     domain.Role  `json:"role"`
	Gamertag *string      `json:"gamertag"`
	User     *domain.User `json:"-"`
}

func (s *Session) UserID() *uuid.UUID {
	if s == nil || s.User == nil {
		return nil
	}
	id := s.User.ID
	return &id
}

// SessionResolver joins the auth-schema email to the app-schema user on
// every request.
type SessionResolver interface {
	Resolve(ctx context.Context, email string) Session
}

type sessionResolver struct {
	users  repo.AppUserRepository
	logger pkglog.Logger
}

func NewSessionResolver(users repo.AppUserRepository, logger pkglog.Logger) SessionResolver {
	return &sessionResolver{users: users, logger: logger}
}

// Resolve never fails: a missing row means PENDING, and a lookup error also
// means PENDING (fail closed, never open).
func (r *sessionResolver) Resolve(ctx context.Context, email string) Session {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Error().Err(err).Str("email", email).Msg("session role lookup failed, treating as PENDING")
		}
		return Session{Email: email, Role: domain.RolePending}
	}
	return Session{Email: email, Role: user.Role, Gamertag: user.Gamertag, User: user}
}
