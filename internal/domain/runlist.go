package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceYes   AttendanceStatus = "YES"
	AttendanceNo    AttendanceStatus = "NO"
	AttendanceMaybe AttendanceStatus = "MAYBE"
)

func (s AttendanceStatus) Valid() bool {
	return s == AttendanceYes || s == AttendanceNo || s == AttendanceMaybe
}

// RunList is an ordered set of tracks for a race night.
type RunList struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;index;not null" json:"created_by_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description *string        `json:"description"`
	IsPublic    bool           `gorm:"not null;default:false" json:"is_public"`
	Entries     []RunListEntry `gorm:"foreignKey:RunListID;constraint:OnDelete:CASCADE" json:"entries"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RunList) TableName() string { return "run_list" }

type RunListEntry struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RunListID uuid.UUID         `gorm:"type:uuid;index;not null" json:"run_list_id"`
	Position  int               `gorm:"not null" json:"position"`
	TrackID   uuid.UUID         `gorm:"type:uuid;not null" json:"track_id"`
	Note      *string           `json:"note"`
	Cars      []RunListEntryCar `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"cars"`
}

func (RunListEntry) TableName() string { return "run_list_entry" }

type RunListEntryCar struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EntryID uuid.UUID `gorm:"type:uuid;index;not null" json:"entry_id"`
	CarID   uuid.UUID `gorm:"type:uuid;not null" json:"car_id"`
}

func (RunListEntryCar) TableName() string { return "run_list_entry_car" }

// RunSession is one scheduled running of a run list.
type RunSession struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RunListID    uuid.UUID           `gorm:"type:uuid;index;not null" json:"run_list_id"`
	ScheduledFor time.Time           `gorm:"not null" json:"scheduled_for"`
	Notes        *string             `json:"notes"`
	Attendance   []SessionAttendance `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"attendance"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

func (RunSession) TableName() string { return "run_session" }

type SessionAttendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_user" json:"session_id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_user" json:"user_id"`
	Status    AttendanceStatus `gorm:"type:text;not null" json:"status"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SessionAttendance) TableName() string { return "session_attendance" }
