package domain

import (
	"time"

	"github.com/google/uuid"
)

// CarBuild is a user-owned combination of parts and tuning settings for a
// car. Upgrades and settings are replaced wholesale on update.
type CarBuild struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	CarID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"car_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `json:"description"`
	IsPublic    bool           `gorm:"not null;default:false" json:"is_public"`
	Upgrades    []BuildUpgrade `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE" json:"upgrades"`
	Settings    []BuildSetting `gorm:"foreignKey:BuildID;constraint:OnDelete:CASCADE" json:"settings"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CarBuild) TableName() string { return "car_build" }

type BuildUpgrade struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BuildID uuid.UUID `gorm:"type:uuid;index;not null" json:"build_id"`
	PartID  uuid.UUID `gorm:"type:uuid;not null" json:"part_id"`
	Note    *string   `json:"note"`
}

func (BuildUpgrade) TableName() string { return "build_upgrade" }

type BuildSetting struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BuildID  uuid.UUID `gorm:"type:uuid;index;not null" json:"build_id"`
	Category string    `gorm:"not null" json:"category"`
	Name     string    `gorm:"not null" json:"name"`
	Value    string    `gorm:"not null" json:"value"`
}

func (BuildSetting) TableName() string { return "build_setting" }
