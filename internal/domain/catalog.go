package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reference data curated by admins.

type Track struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Location  *string   `json:"location"`
	LengthKM  *float64  `json:"length_km"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Track) TableName() string { return "track" }

type Car struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Make      string    `gorm:"not null;uniqueIndex:idx_car_make_model_year" json:"make"`
	Model     string    `gorm:"not null;uniqueIndex:idx_car_make_model_year" json:"model"`
	Year      *int      `gorm:"uniqueIndex:idx_car_make_model_year" json:"year"`
	Class     *string   `json:"class"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Car) TableName() string { return "car" }

type Part struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_part_name_category" json:"name"`
	Category    string    `gorm:"not null;uniqueIndex:idx_part_name_category" json:"category"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Part) TableName() string { return "part" }
