package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fridaygt/backend/internal/domain"
)

type RaceRepository interface {
	List(ctx context.Context) ([]domain.Race, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Race, error)
	Create(ctx context.Context, race *domain.Race) error
	// Update saves the race and replaces its car set wholesale.
	Update(ctx context.Context, race *domain.Race) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type raceRepo struct{ db *gorm.DB }

func NewRaceRepository(db *gorm.DB) RaceRepository { return &raceRepo{db: db} }

func (r *raceRepo) List(ctx context.Context) ([]domain.Race, error) {
	var races []domain.Race
	err := r.db.WithContext(ctx).Preload("Cars").Order("starts_at DESC").Find(&races).Error
	if err != nil {
		return nil, err
	}
	return races, nil
}

func (r *raceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Race, error) {
	var race domain.Race
	if err := r.db.WithContext(ctx).Preload("Cars").Where("id = ?", id).First(&race).Error; err != nil {
		return nil, err
	}
	return &race, nil
}

func (r *raceRepo) Create(ctx context.Context, race *domain.Race) error {
	return r.db.WithContext(ctx).Create(race).Error
}

func (r *raceRepo) Update(ctx context.Context, race *domain.Race) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", race.ID).Delete(&domain.RaceCar{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(race).Error; err != nil {
			return err
		}
		for i := range race.Cars {
			race.Cars[i].ID = uuid.Nil
			race.Cars[i].RaceID = race.ID
		}
		if len(race.Cars) > 0 {
			if err := tx.Create(&race.Cars).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *raceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", id).Delete(&domain.RaceCar{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Race{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
