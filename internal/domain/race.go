package domain

import (
	"time"

	"github.com/google/uuid"
)

type Race struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;index;not null" json:"created_by_id"`
	TrackID     uuid.UUID `gorm:"type:uuid;not null" json:"track_id"`
	Name        string    `gorm:"not null" json:"name"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	Notes       *string   `json:"notes"`
	Cars        []RaceCar `gorm:"foreignKey:RaceID;constraint:OnDelete:CASCADE" json:"cars"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Race) TableName() string { return "race" }

type RaceCar struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"race_id"`
	CarID  uuid.UUID `gorm:"type:uuid;not null" json:"car_id"`
}

func (RaceCar) TableName() string { return "race_car" }

// LapTime records a lap. BuildName is a snapshot of the build's name at the
// time the lap was recorded, so later renames and deletes do not rewrite
// history.
type LapTime struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	TrackID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"track_id"`
	CarID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"car_id"`
	BuildID    *uuid.UUID `gorm:"type:uuid" json:"build_id"`
	BuildName  *string    `json:"build_name"`
	TimeMS     int64      `gorm:"not null" json:"time_ms"`
	RecordedAt time.Time  `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (LapTime) TableName() string { return "lap_time" }
