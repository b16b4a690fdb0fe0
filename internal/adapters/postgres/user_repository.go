package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/internal/domain"
)

type AppUserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type appUserRepo struct{ db *gorm.DB }

func NewAppUserRepository(db *gorm.DB) AppUserRepository { return &appUserRepo{db: db} }

func (r *appUserRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *appUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *appUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appUserRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// cascadeStep is one delete (or detach) in the user removal cascade. Table
// names what the step touches so a failed step can be pinned down.
type cascadeStep struct {
	table string
	run   func(tx *gorm.DB, user *domain.User) error
}

// userCascadeSteps returns the removal order for a user and everything that
// references them. Children always come before their parent table; app_user
// is last.
func userCascadeSteps() []cascadeStep {
	buildIDs := func(tx *gorm.DB, user *domain.User) *gorm.DB {
		return tx.Table("car_build").Select("id").Where("user_id = ?", user.ID)
	}
	listIDs := func(tx *gorm.DB, user *domain.User) *gorm.DB {
		return tx.Table("run_list").Select("id").Where("created_by_id = ?", user.ID)
	}
	return []cascadeStep{
		// Lap times recorded by the user.
		{table: "lap_time", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("user_id = ?", user.ID).Delete(&domain.LapTime{}).Error
		}},
		// Other users' lap references to the user's builds are detached, not
		// deleted; the snapshot name stays.
		{table: "lap_time.build_id", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Model(&domain.LapTime{}).
				Where("build_id IN (?)", buildIDs(tx, user)).
				Update("build_id", nil).Error
		}},
		{table: "build_upgrade", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("build_id IN (?)", buildIDs(tx, user)).Delete(&domain.BuildUpgrade{}).Error
		}},
		{table: "build_setting", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("build_id IN (?)", buildIDs(tx, user)).Delete(&domain.BuildSetting{}).Error
		}},
		{table: "car_build", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("user_id = ?", user.ID).Delete(&domain.CarBuild{}).Error
		}},
		{table: "run_list_entry_car", run: func(tx *gorm.DB, user *domain.User) error {
			entryIDs := tx.Table("run_list_entry").Select("id").
				Where("run_list_id IN (?)", listIDs(tx, user))
			return tx.Where("entry_id IN (?)", entryIDs).Delete(&domain.RunListEntryCar{}).Error
		}},
		{table: "run_list_entry", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("run_list_id IN (?)", listIDs(tx, user)).Delete(&domain.RunListEntry{}).Error
		}},
		// Attendance on sessions of the user's lists, then the user's own
		// attendance on other people's sessions.
		{table: "session_attendance", run: func(tx *gorm.DB, user *domain.User) error {
			sessionIDs := tx.Table("run_session").Select("id").
				Where("run_list_id IN (?)", listIDs(tx, user))
			if err := tx.Where("session_id IN (?)", sessionIDs).Delete(&domain.SessionAttendance{}).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ?", user.ID).Delete(&domain.SessionAttendance{}).Error
		}},
		{table: "run_session", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("run_list_id IN (?)", listIDs(tx, user)).Delete(&domain.RunSession{}).Error
		}},
		{table: "run_list", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("created_by_id = ?", user.ID).Delete(&domain.RunList{}).Error
		}},
		{table: "race_car", run: func(tx *gorm.DB, user *domain.User) error {
			raceIDs := tx.Table("race").Select("id").Where("created_by_id = ?", user.ID)
			return tx.Where("race_id IN (?)", raceIDs).Delete(&domain.RaceCar{}).Error
		}},
		{table: "race", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("created_by_id = ?", user.ID).Delete(&domain.Race{}).Error
		}},
		// Auth schema rows, joined only by email.
		{table: "auth_session", run: func(tx *gorm.DB, user *domain.User) error {
			identityIDs := tx.Table("auth_identity").Select("id").Where("email = ?", user.Email)
			return tx.Where("identity_id IN (?)", identityIDs).Delete(&domain.AuthSession{}).Error
		}},
		{table: "verification_token", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("email = ?", user.Email).Delete(&domain.VerificationToken{}).Error
		}},
		{table: "auth_identity", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("email = ?", user.Email).Delete(&domain.AuthIdentity{}).Error
		}},
		{table: "app_user", run: func(tx *gorm.DB, user *domain.User) error {
			return tx.Where("id = ?", user.ID).Delete(&domain.User{}).Error
		}},
	}
}

// runCascade executes steps in order and stops at the first failure.
func runCascade(tx *gorm.DB, user *domain.User, steps []cascadeStep) error {
	for _, step := range steps {
		if err := step.run(tx, user); err != nil {
			return fmt.Errorf("cascade %s: %w", step.table, err)
		}
	}
	return nil
}

// DeleteCascade removes a user and every row that references them in a single
// transaction. A failure at any step rolls the whole operation back.
func (r *appUserRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		return runCascade(tx, &user, userCascadeSteps())
	})
}
