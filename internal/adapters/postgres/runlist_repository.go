package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fridaygt/backend/internal/domain"
)

type RunListRepository interface {
	ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]domain.RunList, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.RunList, error)
	Create(ctx context.Context, list *domain.RunList) error
	// Update saves the list and replaces its entries and entry cars wholesale.
	Update(ctx context.Context, list *domain.RunList) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder renumbers the list's entries to match entryIDs, atomically.
	Reorder(ctx context.Context, listID uuid.UUID, entryIDs []uuid.UUID) error

	CreateSession(ctx context.Context, session *domain.RunSession) error
	ListSessions(ctx context.Context, listID uuid.UUID) ([]domain.RunSession, error)
	FindSession(ctx context.Context, id uuid.UUID) (*domain.RunSession, error)
	UpsertAttendance(ctx context.Context, att *domain.SessionAttendance) error
}

type runListRepo struct{ db *gorm.DB }

func NewRunListRepository(db *gorm.DB) RunListRepository { return &runListRepo{db: db} }

func (r *runListRepo) ListVisible(ctx context.Context, viewerID *uuid.UUID) ([]domain.RunList, error) {
	q := r.db.WithContext(ctx).Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Preload("Entries.Cars")
	if viewerID != nil {
		q = q.Where("is_public OR created_by_id = ?", *viewerID)
	} else {
		q = q.Where("is_public")
	}
	var lists []domain.RunList
	if err := q.Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *runListRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.RunList, error) {
	var list domain.RunList
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Entries.Cars").
		Where("id = ?", id).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *runListRepo) Create(ctx context.Context, list *domain.RunList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *runListRepo) Update(ctx context.Context, list *domain.RunList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entryIDs := tx.Table("run_list_entry").Select("id").Where("run_list_id = ?", list.ID)
		if err := tx.Where("entry_id IN (?)", entryIDs).Delete(&domain.RunListEntryCar{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_list_id = ?", list.ID).Delete(&domain.RunListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(list).Error; err != nil {
			return err
		}
		for i := range list.Entries {
			list.Entries[i].ID = uuid.Nil
			list.Entries[i].RunListID = list.ID
			list.Entries[i].Position = i + 1
		}
		if len(list.Entries) > 0 {
			if err := tx.Create(&list.Entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *runListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entryIDs := tx.Table("run_list_entry").Select("id").Where("run_list_id = ?", id)
		sessionIDs := tx.Table("run_session").Select("id").Where("run_list_id = ?", id)
		if err := tx.Where("entry_id IN (?)", entryIDs).Delete(&domain.RunListEntryCar{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_list_id = ?", id).Delete(&domain.RunListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id IN (?)", sessionIDs).Delete(&domain.SessionAttendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_list_id = ?", id).Delete(&domain.RunSession{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.RunList{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Reorder holds the entry rows locked for the duration of the renumber so
// two concurrent reorders cannot interleave.
func (r *runListRepo) Reorder(ctx context.Context, listID uuid.UUID, entryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []domain.RunListEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("run_list_id = ?", listID).
			Find(&current).Error
		if err != nil {
			return err
		}
		if len(current) != len(entryIDs) {
			return ErrReorderMismatch
		}
		existing := make(map[uuid.UUID]bool, len(current))
		for _, e := range current {
			existing[e.ID] = true
		}
		for _, id := range entryIDs {
			if !existing[id] {
				return ErrReorderMismatch
			}
			delete(existing, id)
		}
		for i, id := range entryIDs {
			err := tx.Model(&domain.RunListEntry{}).
				Where("id = ?", id).
				Update("position", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *runListRepo) CreateSession(ctx context.Context, session *domain.RunSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *runListRepo) ListSessions(ctx context.Context, listID uuid.UUID) ([]domain.RunSession, error) {
	var sessions []domain.RunSession
	err := r.db.WithContext(ctx).
		Preload("Attendance").
		Where("run_list_id = ?", listID).
		Order("scheduled_for").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *runListRepo) FindSession(ctx context.Context, id uuid.UUID) (*domain.RunSession, error) {
	var session domain.RunSession
	err := r.db.WithContext(ctx).Preload("Attendance").Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *runListRepo) UpsertAttendance(ctx context.Context, att *domain.SessionAttendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(att).Error
}
