package usecase

import (
	"github.com/google/uuid"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/domain"
)

// Action is what the caller wants to do to a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	ActionAdmin
)

// Resource describes the target of an authorization check. A nil Resource
// means a collection-level action (create, list).
type Resource struct {
	OwnerID  uuid.UUID
	IsPublic bool
}

// Authorizer is the single capability check every handler goes through.
// Read and write are independent: a public resource is readable by anyone
// but stays writable only by its owner or an admin.
type Authorizer struct {
	requireGamertag bool
}

func NewAuthorizer(cfg *config.Config) *Authorizer {
	return &Authorizer{requireGamertag: cfg.RequireGamertag}
}

func (a *Authorizer) Authorize(s *Session, action Action, res *Resource) error {
	if s == nil || s.Email == "" {
		if action == ActionRead && res != nil && res.IsPublic {
			return nil
		}
		return ErrUnauthorized
	}
	switch action {
	case ActionRead:
		if res == nil || res.IsPublic || s.Role == domain.RoleAdmin {
			return nil
		}
		if s.User != nil && res.OwnerID == s.User.ID {
			return nil
		}
		return ErrForbidden
	case ActionWrite:
		// Role-based uniformly: PENDING never writes, regardless of whether
		// an app-user row happens to exist.
		if !s.Role.Approved() {
			return ErrForbidden
		}
		if a.requireGamertag && s.Role == domain.RoleUser && (s.Gamertag == nil || *s.Gamertag == "") {
			return ErrForbidden
		}
		if s.Role == domain.RoleAdmin {
			return nil
		}
		if res != nil && (s.User == nil || res.OwnerID != s.User.ID) {
			return ErrForbidden
		}
		return nil
	case ActionAdmin:
		if s.Role != domain.RoleAdmin {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
