package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fridaygt/backend/config"
	natsadapter "github.com/fridaygt/backend/internal/adapters/nats"
	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

// AuthService implements the passwordless login flow: issue a magic link,
// verify it into an auth identity plus a persisted session, and revoke on
// logout. It never writes to the application schema.
type AuthService interface {
	StartLogin(ctx context.Context, traceID, email string) error
	VerifyMagicLink(ctx context.Context, traceID, email, token string) (string, time.Time, error)
	Logout(ctx context.Context, traceID, sessionID string) error
	SessionActive(ctx context.Context, sessionID string) bool
}

type authService struct {
	cfg    *config.Config
	logger pkglog.Logger
	auth   repo.AuthRepository
	mailer natsadapter.MailerClient
	signer JWTSigner
}

func NewAuthService(cfg *config.Config, logger pkglog.Logger, auth repo.AuthRepository, mailer natsadapter.MailerClient, signer JWTSigner) AuthService {
	return &authService{cfg: cfg, logger: logger, auth: auth, mailer: mailer, signer: signer}
}

// StartLogin issues a magic link for any syntactically valid email. Unknown
// addresses get a link too; the identity only materializes on verification,
// and the uniform response avoids account enumeration.
func (s *authService) StartLogin(ctx context.Context, traceID, email string) error {
	norm := normalizeEmail(email)
	if err := validateEmail(norm); err != nil {
		return err
	}

	raw, err := randomToken()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	vt := &domain.VerificationToken{
		Email:     norm,
		TokenHash: string(hash),
		ExpiresAt: time.Now().Add(s.cfg.MagicLinkTTL),
	}
	if err := s.auth.CreateVerificationToken(ctx, vt); err != nil {
		return err
	}

	link := fmt.Sprintf("%s%s/auth/callback?email=%s&token=%s",
		s.cfg.BaseURL, s.cfg.HTTPBasePath, url.QueryEscape(norm), raw)
	if s.mailer != nil {
		if err := s.mailer.MagicLinkIssued(ctx, norm, link); err != nil {
			s.logger.Warn().Err(err).Str("trace_id", traceID).Msg("magic link publish failed")
		}
	} else {
		s.logger.Info().Str("trace_id", traceID).Str("link", link).Msg("magic link (no mailer configured)")
	}
	s.logger.Info().Str("trace_id", traceID).Str("email", norm).Msg("login started")
	return nil
}

// VerifyMagicLink consumes a valid token, upserts the auth identity and
// returns a signed session JWT for the cookie.
func (s *authService) VerifyMagicLink(ctx context.Context, traceID, email, token string) (string, time.Time, error) {
	norm := normalizeEmail(email)
	if token == "" {
		return "", time.Time{}, ErrInvalidToken
	}
	candidates, err := s.auth.ActiveTokensByEmail(ctx, norm)
	if err != nil {
		return "", time.Time{}, err
	}
	var matched *domain.VerificationToken
	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].TokenHash), []byte(token)) == nil {
			matched = &candidates[i]
			break
		}
	}
	if matched == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	if err := s.auth.ConsumeToken(ctx, matched); err != nil {
		return "", time.Time{}, err
	}

	identity, err := s.auth.UpsertIdentity(ctx, norm)
	if err != nil {
		return "", time.Time{}, err
	}

	jti, err := GenerateTokenID()
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	session := &domain.AuthSession{
		IdentityID: identity.ID,
		TokenID:    jti,
		ExpiresAt:  expiresAt,
	}
	if err := s.auth.CreateSession(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	claims := map[string]interface{}{"email": norm, "sid": jti}
	signed, err := s.signer.SignSessionToken(identity.ID.String(), claims, s.cfg.SessionTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("identity_id", identity.ID.String()).Msg("magic link verified")
	return signed, expiresAt, nil
}

func (s *authService) Logout(ctx context.Context, traceID, sessionID string) error {
	if err := s.auth.RevokeSession(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("trace_id", traceID).Msg("session revoked")
	return nil
}

func (s *authService) SessionActive(ctx context.Context, sessionID string) bool {
	_, err := s.auth.FindActiveSession(ctx, sessionID)
	return err == nil
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func validateEmail(email string) error {
	if !strings.Contains(email, "@") || len(email) > 255 {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
