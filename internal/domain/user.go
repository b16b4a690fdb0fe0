package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role gates write and admin capability. PENDING is the default for any
// identity with no matching application user.
type Role string

const (
	RolePending Role = "PENDING"
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RolePending || r == RoleUser || r == RoleAdmin
}

// Approved reports whether the role may mutate domain resources.
func (r Role) Approved() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the application-schema member record. It has no foreign key to the
// auth schema; the two are joined only by email equality.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      *string   `json:"name"`
	Gamertag  *string   `gorm:"uniqueIndex" json:"gamertag"`
	Role      Role      `gorm:"type:text;not null;default:'PENDING'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "app_user" }
