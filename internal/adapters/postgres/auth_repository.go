package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fridaygt/backend/internal/domain"
)

type AuthRepository interface {
	CreateVerificationToken(ctx context.Context, token *domain.VerificationToken) error
	ActiveTokensByEmail(ctx context.Context, email string) ([]domain.VerificationToken, error)
	ConsumeToken(ctx context.Context, token *domain.VerificationToken) error
	UpsertIdentity(ctx context.Context, email string) (*domain.AuthIdentity, error)
	CreateSession(ctx context.Context, session *domain.AuthSession) error
	FindActiveSession(ctx context.Context, tokenID string) (*domain.AuthSession, error)
	RevokeSession(ctx context.Context, tokenID string) error
}

type authRepo struct{ db *gorm.DB }

func NewAuthRepository(db *gorm.DB) AuthRepository { return &authRepo{db: db} }

func (r *authRepo) CreateVerificationToken(ctx context.Context, token *domain.VerificationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *authRepo) ActiveTokensByEmail(ctx context.Context, email string) ([]domain.VerificationToken, error) {
	var tokens []domain.VerificationToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND consumed_at IS NULL AND expires_at > ?", email, time.Now()).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *authRepo) ConsumeToken(ctx context.Context, token *domain.VerificationToken) error {
	now := time.Now()
	token.ConsumedAt = &now
	return r.db.WithContext(ctx).
		Model(&domain.VerificationToken{}).
		Where("id = ?", token.ID).
		Update("consumed_at", &now).Error
}

// UpsertIdentity creates the auth-schema identity on first verification and
// refreshes verified_at on later logins. It never touches the app schema.
func (r *authRepo) UpsertIdentity(ctx context.Context, email string) (*domain.AuthIdentity, error) {
	now := time.Now()
	identity := domain.AuthIdentity{Email: email, VerifiedAt: &now}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"verified_at": now}),
		}).
		Create(&identity).Error
	if err != nil {
		return nil, err
	}
	// The RETURNING id from the conflict path is not populated on all
	// drivers; read the row back.
	var out domain.AuthIdentity
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepo) CreateSession(ctx context.Context, session *domain.AuthSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *authRepo) FindActiveSession(ctx context.Context, tokenID string) (*domain.AuthSession, error) {
	var session domain.AuthSession
	err := r.db.WithContext(ctx).
		Where("token_id = ? AND revoked_at IS NULL AND expires_at > ?", tokenID, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *authRepo) RevokeSession(ctx context.Context, tokenID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.AuthSession{}).
		Where("token_id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", &now).Error
}
