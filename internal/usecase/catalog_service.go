package usecase

import (
	"context"

	"github.com/google/uuid"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

// CatalogService fronts the admin-curated reference data. Reads are public;
// writes are admin-only.
type CatalogService interface {
	ListTracks(ctx context.Context) ([]domain.Track, error)
	GetTrack(ctx context.Context, id uuid.UUID) (*domain.Track, error)
	SaveTrack(ctx context.Context, session *Session, track *domain.Track) error
	DeleteTrack(ctx context.Context, session *Session, id uuid.UUID) error

	ListCars(ctx context.Context) ([]domain.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	SaveCar(ctx context.Context, session *Session, car *domain.Car) error
	DeleteCar(ctx context.Context, session *Session, id uuid.UUID) error

	ListParts(ctx context.Context) ([]domain.Part, error)
	GetPart(ctx context.Context, id uuid.UUID) (*domain.Part, error)
	SavePart(ctx context.Context, session *Session, part *domain.Part) error
	DeletePart(ctx context.Context, session *Session, id uuid.UUID) error
}

type catalogService struct {
	logger  pkglog.Logger
	catalog repo.CatalogRepository
	authz   *Authorizer
}

func NewCatalogService(logger pkglog.Logger, catalog repo.CatalogRepository, authz *Authorizer) CatalogService {
	return &catalogService{logger: logger, catalog: catalog, authz: authz}
}

func (s *catalogService) ListTracks(ctx context.Context) ([]domain.Track, error) {
	return s.catalog.ListTracks(ctx)
}

func (s *catalogService) GetTrack(ctx context.Context, id uuid.UUID) (*domain.Track, error) {
	track, err := s.catalog.FindTrack(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return track, nil
}

func (s *catalogService) SaveTrack(ctx context.Context, session *Session, track *domain.Track) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	if track.ID == uuid.Nil {
		return translate(s.catalog.CreateTrack(ctx, track))
	}
	if _, err := s.catalog.FindTrack(ctx, track.ID); err != nil {
		return translate(err)
	}
	return translate(s.catalog.UpdateTrack(ctx, track))
}

func (s *catalogService) DeleteTrack(ctx context.Context, session *Session, id uuid.UUID) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	return translate(s.catalog.DeleteTrack(ctx, id))
}

func (s *catalogService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.catalog.ListCars(ctx)
}

func (s *catalogService) GetCar(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, err := s.catalog.FindCar(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return car, nil
}

func (s *catalogService) SaveCar(ctx context.Context, session *Session, car *domain.Car) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	if car.ID == uuid.Nil {
		return translate(s.catalog.CreateCar(ctx, car))
	}
	if _, err := s.catalog.FindCar(ctx, car.ID); err != nil {
		return translate(err)
	}
	return translate(s.catalog.UpdateCar(ctx, car))
}

func (s *catalogService) DeleteCar(ctx context.Context, session *Session, id uuid.UUID) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	return translate(s.catalog.DeleteCar(ctx, id))
}

func (s *catalogService) ListParts(ctx context.Context) ([]domain.Part, error) {
	return s.catalog.ListParts(ctx)
}

func (s *catalogService) GetPart(ctx context.Context, id uuid.UUID) (*domain.Part, error) {
	part, err := s.catalog.FindPart(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return part, nil
}

func (s *catalogService) SavePart(ctx context.Context, session *Session, part *domain.Part) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	if part.ID == uuid.Nil {
		return translate(s.catalog.CreatePart(ctx, part))
	}
	if _, err := s.catalog.FindPart(ctx, part.ID); err != nil {
		return translate(err)
	}
	return translate(s.catalog.UpdatePart(ctx, part))
}

func (s *catalogService) DeletePart(ctx context.Context, session *Session, id uuid.UUID) error {
	if err := s.authz.Authorize(session, ActionAdmin, nil); err != nil {
		return err
	}
	return translate(s.catalog.DeletePart(ctx, id))
}
