package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type RaceInput struct {
	TrackID  uuid.UUID
	Name     string
	StartsAt time.Time
	Notes    *string
	CarIDs   []uuid.UUID
}

type RaceService interface {
	List(ctx context.Context) ([]domain.Race, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Race, error)
	Create(ctx context.Context, traceID string, session *Session, input RaceInput) (*domain.Race, error)
	Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input RaceInput) (*domain.Race, error)
	Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error
}

type raceService struct {
	logger pkglog.Logger
	races  repo.RaceRepository
	authz  *Authorizer
}

func NewRaceService(logger pkglog.Logger, races repo.RaceRepository, authz *Authorizer) RaceService {
	return &raceService{logger: logger, races: races, authz: authz}
}

// Races are community-wide announcements; reads are public.
func (s *raceService) List(ctx context.Context) ([]domain.Race, error) {
	return s.races.List(ctx)
}

func (s *raceService) Get(ctx context.Context, id uuid.UUID) (*domain.Race, error) {
	race, err := s.races.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return race, nil
}

func (s *raceService) Create(ctx context.Context, traceID string, session *Session, input RaceInput) (*domain.Race, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	race := raceFromInput(input)
	race.CreatedByID = *session.UserID()
	if err := s.races.Create(ctx, race); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("race_id", race.ID.String()).Msg("race created")
	return race, nil
}

func (s *raceService) Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input RaceInput) (*domain.Race, error) {
	existing, err := s.races.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.CreatedByID, IsPublic: true}); err != nil {
		return nil, err
	}
	updated := raceFromInput(input)
	updated.ID = existing.ID
	updated.CreatedByID = existing.CreatedByID
	updated.CreatedAt = existing.CreatedAt
	if err := s.races.Update(ctx, updated); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("race_id", id.String()).Msg("race updated")
	return updated, nil
}

func (s *raceService) Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error {
	existing, err := s.races.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.CreatedByID, IsPublic: true}); err != nil {
		return err
	}
	if err := s.races.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("race_id", id.String()).Msg("race deleted")
	return nil
}

func raceFromInput(input RaceInput) *domain.Race {
	race := &domain.Race{
		TrackID:  input.TrackID,
		Name:     input.Name,
		StartsAt: input.StartsAt,
		Notes:    input.Notes,
	}
	for _, carID := range input.CarIDs {
		race.Cars = append(race.Cars, domain.RaceCar{CarID: carID})
	}
	return race
}
