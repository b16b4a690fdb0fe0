package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/internal/domain"
)

// CatalogRepository covers the admin-curated reference data.
type CatalogRepository interface {
	ListTracks(ctx context.Context) ([]domain.Track, error)
	FindTrack(ctx context.Context, id uuid.UUID) (*domain.Track, error)
	CreateTrack(ctx context.Context, track *domain.Track) error
	UpdateTrack(ctx context.Context, track *domain.Track) error
	DeleteTrack(ctx context.Context, id uuid.UUID) error

	ListCars(ctx context.Context) ([]domain.Car, error)
	FindCar(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	CreateCar(ctx context.Context, car *domain.Car) error
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id uuid.UUID) error

	ListParts(ctx context.Context) ([]domain.Part, error)
	FindPart(ctx context.Context, id uuid.UUID) (*domain.Part, error)
	CreatePart(ctx context.Context, part *domain.Part) error
	UpdatePart(ctx context.Context, part *domain.Part) error
	DeletePart(ctx context.Context, id uuid.UUID) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) ListTracks(ctx context.Context) ([]domain.Track, error) {
	var tracks []domain.Track
	if err := r.db.WithContext(ctx).Order("name").Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *catalogRepo) FindTrack(ctx context.Context, id uuid.UUID) (*domain.Track, error) {
	var track domain.Track
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *catalogRepo) CreateTrack(ctx context.Context, track *domain.Track) error {
	return r.db.WithContext(ctx).Create(track).Error
}

func (r *catalogRepo) UpdateTrack(ctx context.Context, track *domain.Track) error {
	return r.db.WithContext(ctx).Save(track).Error
}

func (r *catalogRepo) DeleteTrack(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.Track](ctx, r.db, id)
}

func (r *catalogRepo) ListCars(ctx context.Context) ([]domain.Car, error) {
	var cars []domain.Car
	if err := r.db.WithContext(ctx).Order("make, model").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *catalogRepo) FindCar(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	var car domain.Car
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *catalogRepo) CreateCar(ctx context.Context, car *domain.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *catalogRepo) UpdateCar(ctx context.Context, car *domain.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *catalogRepo) DeleteCar(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.Car](ctx, r.db, id)
}

func (r *catalogRepo) ListParts(ctx context.Context) ([]domain.Part, error) {
	var parts []domain.Part
	if err := r.db.WithContext(ctx).Order("category, name").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *catalogRepo) FindPart(ctx context.Context, id uuid.UUID) (*domain.Part, error) {
	var part domain.Part
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *catalogRepo) CreatePart(ctx context.Context, part *domain.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *catalogRepo) UpdatePart(ctx context.Context, part *domain.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *catalogRepo) DeletePart(ctx context.Context, id uuid.UUID) error {
	return deleteByID[domain.Part](ctx, r.db, id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var model T
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
