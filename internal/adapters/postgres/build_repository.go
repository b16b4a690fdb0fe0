package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fridaygt/backend/internal/domain"
)

type BuildRepository interface {
	// ListVisible returns public builds plus, when viewerID is non-nil, the
	// viewer's own private builds.
	ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]domain.CarBuild, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CarBuild, error)
	Create(ctx context.Context, build *domain.CarBuild) error
	// Update saves the build and replaces its upgrades and settings wholesale.
	Update(ctx context.Context, build *domain.CarBuild) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type buildRepo struct{ db *gorm.DB }

func NewBuildRepository(db *gorm.DB) BuildRepository { return &buildRepo{db: db} }

func (r *buildRepo) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]domain.CarBuild, error) {
	q := r.db.WithContext(ctx).Preload("Upgrades").Preload("Settings")
	if viewerID != nil {
		q = q.Where("is_public OR user_id = ?", *viewerID)
	} else {
		q = q.Where("is_public")
	}
	var builds []domain.CarBuild
	if err := q.Order("created_at DESC").Find(&builds).Error; err != nil {
		return nil, err
	}
	return builds, nil
}

func (r *buildRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.CarBuild, error) {
	var build domain.CarBuild
	err := r.db.WithContext(ctx).
		Preload("Upgrades").
		Preload("Settings").
		Where("id = ?", id).
		First(&build).Error
	if err != nil {
		return nil, err
	}
	return &build, nil
}

func (r *buildRepo) Create(ctx context.Context, build *domain.CarBuild) error {
	return r.db.WithContext(ctx).Create(build).Error
}

func (r *buildRepo) Update(ctx context.Context, build *domain.CarBuild) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("build_id = ?", build.ID).Delete(&domain.BuildUpgrade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("build_id = ?", build.ID).Delete(&domain.BuildSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(build).Error; err != nil {
			return err
		}
		for i := range build.Upgrades {
			build.Upgrades[i].ID = uuid.Nil
			build.Upgrades[i].BuildID = build.ID
		}
		for i := range build.Settings {
			build.Settings[i].ID = uuid.Nil
			build.Settings[i].BuildID = build.ID
		}
		if len(build.Upgrades) > 0 {
			if err := tx.Create(&build.Upgrades).Error; err != nil {
				return err
			}
		}
		if len(build.Settings) > 0 {
			if err := tx.Create(&build.Settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *buildRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("build_id = ?", id).Delete(&domain.BuildUpgrade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("build_id = ?", id).Delete(&domain.BuildSetting{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.LapTime{}).Where("build_id = ?", id).Update("build_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.CarBuild{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
