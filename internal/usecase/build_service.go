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

type BuildUpgradeInput struct {
	PartID uuid.UUID
	Note   *string
}

type BuildSettingInput struct {
	Category string
	Name     string
	Value    string
}

type BuildInput struct {
	CarID       uuid.UUID
	Name        string
	Description *string
	IsPublic    bool
	// OwnerID reassigns ownership; admin-only, even for the current owner.
	OwnerID  *uuid.UUID
	Upgrades []BuildUpgradeInput
	Settings []BuildSettingInput
}

type BuildService interface {
	List(ctx context.Context, session *Session) ([]domain.CarBuild, error)
	Get(ctx context.Context, session *Session, id uuid.UUID) (*domain.CarBuild, error)
	Create(ctx context.Context, traceID string, session *Session, input BuildInput) (*domain.CarBuild, error)
	Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input BuildInput) (*domain.CarBuild, error)
	Clone(ctx context.Context, traceID string, session *Session, id uuid.UUID) (*domain.CarBuild, error)
	Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error
}

type buildService struct {
	logger pkglog.Logger
	builds repo.BuildRepository
	users  repo.AppUserRepository
	authz  *Authorizer
}

func NewBuildService(logger pkglog.Logger, builds repo.BuildRepository, users repo.AppUserRepository, authz *Authorizer) BuildService {
	return &buildService{logger: logger, builds: builds, users: users, authz: authz}
}

func (s *buildService) List(ctx context.Context, session *Session) ([]domain.CarBuild, error) {
	var viewerID *uuid.UUID
	if session != nil {
		viewerID = session.UserID()
	}
	return s.builds.ListVisible(ctx, viewerID)
}

func (s *buildService) Get(ctx context.Context, session *Session, id uuid.UUID) (*domain.CarBuild, error) {
	build, err := s.builds.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionRead, &Resource{OwnerID: build.UserID, IsPublic: build.IsPublic}); err != nil {
		return nil, err
	}
	return build, nil
}

func (s *buildService) Create(ctx context.Context, traceID string, session *Session, input BuildInput) (*domain.CarBuild, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	build := buildFromInput(input)
	build.UserID = *session.UserID()
	if input.OwnerID != nil && *input.OwnerID != build.UserID {
		if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
			return nil, err
		}
		if err := s.ownerEligible(ctx, *input.OwnerID); err != nil {
			return nil, err
		}
		build.UserID = *input.OwnerID
	}
	if err := s.builds.Create(ctx, build); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("build_id", build.ID.String()).Msg("build created")
	return build, nil
}

func (s *buildService) Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input BuildInput) (*domain.CarBuild, error) {
	existing, err := s.builds.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.UserID, IsPublic: existing.IsPublic}); err != nil {
		return nil, err
	}
	if input.OwnerID != nil && *input.OwnerID != existing.UserID {
		if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
			return nil, err
		}
		if err := s.ownerEligible(ctx, *input.OwnerID); err != nil {
			return nil, err
		}
		existing.UserID = *input.OwnerID
	}
	updated := buildFromInput(input)
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	if err := s.builds.Update(ctx, updated); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("build_id", id.String()).Msg("build updated")
	return updated, nil
}

// Clone deep-copies a readable build, children included, under the caller's
// ownership.
func (s *buildService) Clone(ctx context.Context, traceID string, session *Session, id uuid.UUID) (*domain.CarBuild, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	source, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	clone := &domain.CarBuild{
		UserID:      *session.UserID(),
		CarID:       source.CarID,
		Name:        source.Name + " (copy)",
		Description: source.Description,
		IsPublic:    false,
	}
	for _, u := range source.Upgrades {
		clone.Upgrades = append(clone.Upgrades, domain.BuildUpgrade{PartID: u.PartID, Note: u.Note})
	}
	for _, st := range source.Settings {
		clone.Settings = append(clone.Settings, domain.BuildSetting{Category: st.Category, Name: st.Name, Value: st.Value})
	}
	if err := s.builds.Create(ctx, clone); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().
		Str("trace_id", traceID).
		Str("source_id", id.String()).
		Str("build_id", clone.ID.String()).
		Msg("build cloned")
	return clone, nil
}

func (s *buildService) Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error {
	existing, err := s.builds.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.UserID, IsPublic: existing.IsPublic}); err != nil {
		return err
	}
	if err := s.builds.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("build_id", id.String()).Msg("build deleted")
	return nil
}

// ownerEligible checks that a transfer target exists and holds an approved
// role. PENDING accounts cannot own builds.
func (s *buildService) ownerEligible(ctx context.Context, id uuid.UUID) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOwnerNotEligible
		}
		return err
	}
	if !target.Role.Approved() {
		return ErrOwnerNotEligible
	}
	return nil
}

func buildFromInput(input BuildInput) *domain.CarBuild {
	build := &domain.CarBuild{
		CarID:       input.CarID,
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}
	for _, u := range input.Upgrades {
		build.Upgrades = append(build.Upgrades, domain.BuildUpgrade{PartID: u.PartID, Note: u.Note})
	}
	for _, st := range input.Settings {
		build.Settings = append(build.Settings, domain.BuildSetting{Category: st.Category, Name: st.Name, Value: st.Value})
	}
	return build
}
