package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type LapTimeInput struct {
	TrackID    uuid.UUID
	CarID      uuid.UUID
	BuildID    *uuid.UUID
	TimeMS     int64
	RecordedAt time.Time
}

type LapTimeService interface {
	List(ctx context.Context, filter repo.LapTimeFilter) ([]domain.LapTime, error)
	Create(ctx context.Context, traceID string, session *Session, input LapTimeInput) (*domain.LapTime, error)
	Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error
}

type lapTimeService struct {
	logger pkglog.Logger
	laps   repo.LapTimeRepository
	builds repo.BuildRepository
	authz  *Authorizer
}

func NewLapTimeService(logger pkglog.Logger, laps repo.LapTimeRepository, builds repo.BuildRepository, authz *Authorizer) LapTimeService {
	return &lapTimeService{logger: logger, laps: laps, builds: builds, authz: authz}
}

func (s *lapTimeService) List(ctx context.Context, filter repo.LapTimeFilter) ([]domain.LapTime, error) {
	return s.laps.List(ctx, filter)
}

// Create snapshots the referenced build's current name into the lap row so
// the leaderboard survives build renames and deletes.
func (s *lapTimeService) Create(ctx context.Context, traceID string, session *Session, input LapTimeInput) (*domain.LapTime, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	lap := &domain.LapTime{
		UserID:     *session.UserID(),
		TrackID:    input.TrackID,
		CarID:      input.CarID,
		TimeMS:     input.TimeMS,
		RecordedAt: input.RecordedAt,
	}
	if lap.RecordedAt.IsZero() {
		lap.RecordedAt = time.Now()
	}
	if input.BuildID != nil {
		build, err := s.builds.FindByID(ctx, *input.BuildID)
		if err != nil {
			return nil, translate(err)
		}
		if err := s.authz.Authorize(session, ActionRead, &Resource{OwnerID: build.UserID, IsPublic: build.IsPublic}); err != nil {
			return nil, err
		}
		name := build.Name
		lap.BuildID = input.BuildID
		lap.BuildName = &name
	}
	if err := s.laps.Create(ctx, lap); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("lap_id", lap.ID.String()).Int64("time_ms", lap.TimeMS).Msg("lap time recorded")
	return lap, nil
}

func (s *lapTimeService) Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error {
	lap, err := s.laps.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: lap.UserID}); err != nil {
		return err
	}
	if err := s.laps.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("lap_id", id.String()).Msg("lap time deleted")
	return nil
}
