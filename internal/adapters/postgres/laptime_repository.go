package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/internal/domain"
)

// LapTimeFilter narrows List; nil fields are ignored.
type LapTimeFilter struct {
	TrackID *uuid.UUID
	CarID   *uuid.UUID
	UserID  *uuid.UUID
}

type LapTimeRepository interface {
	List(ctx context.Context, filter LapTimeFilter) ([]domain.LapTime, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.LapTime, error)
	Create(ctx context.Context, lap *domain.LapTime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lapTimeRepo struct{ db *gorm.DB }

func NewLapTimeRepository(db *gorm.DB) LapTimeRepository { return &lapTimeRepo{db: db} }

func (r *lapTimeRepo) List(ctx context.Context, filter LapTimeFilter) ([]domain.LapTime, error) {
	q := r.db.WithContext(ctx)
	if filter.TrackID != nil {
		q = q.Where("track_id = ?", *filter.TrackID)
	}
	if filter.CarID != nil {
		q = q.Where("car_id = ?", *filter.CarID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var laps []domain.LapTime
	if err := q.Order("time_ms").Find(&laps).Error; err != nil {
		return nil, err
	}
	return laps, nil
}

func (r *lapTimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.LapTime, error) {
	var lap domain.LapTime
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lap).Error; err != nil {
		return nil, err
	}
	return &lap, nil
}

func (r *lapTimeRepo) Create(ctx context.Context, lap *domain.LapTime) error {
	return r.db.WithContext(ctx).Create(lap).Error
}

func (r *lapTimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.LapTime{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
