package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthIdentity is the auth-schema record of a verified sign-in credential.
// It knows nothing about roles; the application user is looked up by email
// at session-resolution time.
type AuthIdentity struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthIdentity) TableName() string { return "auth_identity" }

// AuthSession is a persisted login session backing the cookie JWT.
type AuthSession struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IdentityID uuid.UUID  `gorm:"type:uuid;index;not null" json:"identity_id"`
	TokenID    string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthSession) TableName() string { return "auth_session" }

// VerificationToken is a single-use magic-link token, stored hashed.
type VerificationToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string     `gorm:"index;not null" json:"email"`
	TokenHash  string     `gorm:"not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (VerificationToken) TableName() string { return "auth_verification_token" }
