package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/config"
	natsadapter "github.com/fridaygt/backend/internal/adapters/nats"
	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type CreateUserInput struct {
	Email    string
	Name     *string
	Gamertag *string
	Role     domain.Role
}

type UpdateUserInput struct {
	Role     *domain.Role
	Name     *string
	Gamertag *string
}

type ProfileInput struct {
	Name     *string
	Gamertag *string
}

// UserService owns the approval state machine and everything else that
// touches the application-schema user row.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, traceID string, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, traceID string, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, traceID string, id uuid.UUID) error
	UpdateProfile(ctx context.Context, traceID string, session *Session, input ProfileInput) (*domain.User, error)
}

type userService struct {
	cfg       *config.Config
	logger    pkglog.Logger
	users     repo.AppUserRepository
	lifecycle natsadapter.LifecycleClient
}

func NewUserService(cfg *config.Config, logger pkglog.Logger, users repo.AppUserRepository, lifecycle natsadapter.LifecycleClient) UserService {
	return &userService{cfg: cfg, logger: logger, users: users, lifecycle: lifecycle}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, traceID string, input CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RolePending
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	user := &domain.User{
		Email:    normalizeEmail(input.Email),
		Name:     input.Name,
		Gamertag: input.Gamertag,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID.String()).Str("role", string(role)).Msg("user created")
	return user, nil
}

// Update is the single set-role operation: PENDING→USER is approval,
// USER↔ADMIN is promotion/demotion. Name and gamertag ride along.
func (s *userService) Update(ctx context.Context, traceID string, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	previousRole := user.Role
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Name != nil {
		user.Name = input.Name
	}
	if input.Gamertag != nil {
		user.Gamertag = input.Gamertag
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, translate(err)
	}

	if user.Role != previousRole {
		event := "role_changed"
		if previousRole == domain.RolePending && user.Role.Approved() {
			event = "approved"
		}
		s.publish(ctx, event, user)
		s.logger.Info().
			Str("trace_id", traceID).
			Str("user_id", user.ID.String()).
			Str("from", string(previousRole)).
			Str("to", string(user.Role)).
			Msg("role changed")
	}
	return user, nil
}

// Delete runs the full cascade; a second delete of the same id reports
// NotFound rather than silently succeeding.
func (s *userService) Delete(ctx context.Context, traceID string, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return translate(err)
	}
	s.publish(ctx, "deleted", user)
	s.logger.Info().Str("trace_id", traceID).Str("user_id", id.String()).Msg("user deleted with cascade")
	return nil
}

// UpdateProfile lets an authenticated member set their own gamertag and
// display name. Setting a gamertag never changes the role.
func (s *userService) UpdateProfile(ctx context.Context, traceID string, session *Session, input ProfileInput) (*domain.User, error) {
	if session == nil || session.Email == "" {
		return nil, ErrUnauthorized
	}
	if session.User == nil {
		// Identity exists, application row does not: the known schema gap.
		return nil, fmt.Errorf("no member record for %s: %w", session.Email, ErrNotFound)
	}
	user, err := s.users.FindByID(ctx, session.User.ID)
	if err != nil {
		return nil, translate(err)
	}
	if input.Name != nil {
		user.Name = input.Name
	}
	if input.Gamertag != nil {
		user.Gamertag = input.Gamertag
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID.String()).Msg("profile updated")
	return user, nil
}

func (s *userService) publish(ctx context.Context, event string, user *domain.User) {
	if s.lifecycle == nil {
		return
	}
	if err := s.lifecycle.Publish(ctx, event, user.ID.String(), user.Email); err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("lifecycle publish failed")
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
