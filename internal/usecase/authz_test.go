package usecase

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/domain"
)

func sessionWithRole(role domain.Role, owner uuid.UUID, gamertag *string) *Session {
	return &Session{
		Email:    "member@example.com",
		Role:     role,
		Gamertag: gamertag,
		User:     &domain.User{ID: owner, Email: "member@example.com", Role: role, Gamertag: gamertag},
	}
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	tag := "Apex_Hunter"

	cases := []struct {
		name    string
		session *Session
		action  Action
		res     *Resource
		want    error
	}{
		{"anonymous reads public", nil, ActionRead, &Resource{OwnerID: other, IsPublic: true}, nil},
		{"anonymous cannot read private", nil, ActionRead, &Resource{OwnerID: other}, ErrUnauthorized},
		{"anonymous cannot write", nil, ActionWrite, &Resource{OwnerID: other, IsPublic: true}, ErrUnauthorized},
		{"pending reads public", sessionWithRole(domain.RolePending, owner, nil), ActionRead, &Resource{IsPublic: true}, nil},
		{"pending cannot write own", sessionWithRole(domain.RolePending, owner, &tag), ActionWrite, &Resource{OwnerID: owner}, ErrForbidden},
		{"pending cannot create", sessionWithRole(domain.RolePending, owner, &tag), ActionWrite, nil, ErrForbidden},
		{"user reads own private", sessionWithRole(domain.RoleUser, owner, &tag), ActionRead, &Resource{OwnerID: owner}, nil},
		{"user cannot read others private", sessionWithRole(domain.RoleUser, owner, &tag), ActionRead, &Resource{OwnerID: other}, ErrForbidden},
		{"user writes own", sessionWithRole(domain.RoleUser, owner, &tag), ActionWrite, &Resource{OwnerID: owner}, nil},
		{"user cannot write others", sessionWithRole(domain.RoleUser, owner, &tag), ActionWrite, &Resource{OwnerID: other}, ErrForbidden},
		{"public stays writable only by owner", sessionWithRole(domain.RoleUser, owner, &tag), ActionWrite, &Resource{OwnerID: other, IsPublic: true}, ErrForbidden},
		{"user creates", sessionWithRole(domain.RoleUser, owner, &tag), ActionWrite, nil, nil},
		{"user is not admin", sessionWithRole(domain.RoleUser, owner, &tag), ActionAdmin, nil, ErrForbidden},
		{"admin reads anything", sessionWithRole(domain.RoleAdmin, owner, nil), ActionRead, &Resource{OwnerID: other}, nil},
		{"admin writes anything", sessionWithRole(domain.RoleAdmin, owner, nil), ActionWrite, &Resource{OwnerID: other}, nil},
		{"admin is admin", sessionWithRole(domain.RoleAdmin, owner, nil), ActionAdmin, nil, nil},
	}

	authz := NewAuthorizer(&config.Config{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := authz.Authorize(tc.session, tc.action, tc.res)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAuthorizeGamertagGate(t *testing.T) {
	owner := uuid.New()
	tag := "Apex_Hunter"
	gated := NewAuthorizer(&config.Config{RequireGamertag: true})

	if err := gated.Authorize(sessionWithRole(domain.RoleUser, owner, nil), ActionWrite, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user without gamertag must not write when the gate is on, got %v", err)
	}
	if err := gated.Authorize(sessionWithRole(domain.RoleUser, owner, &tag), ActionWrite, nil); err != nil {
		t.Fatalf("user with gamertag must write: %v", err)
	}
	// admins are never gated
	if err := gated.Authorize(sessionWithRole(domain.RoleAdmin, owner, nil), ActionWrite, nil); err != nil {
		t.Fatalf("admin must write without a gamertag: %v", err)
	}

	open := NewAuthorizer(&config.Config{})
	if err := open.Authorize(sessionWithRole(domain.RoleUser, owner, nil), ActionWrite, nil); err != nil {
		t.Fatalf("gate off: user without gamertag must write: %v", err)
	}
}

func TestAuthorizeSessionWithoutUserRow(t *testing.T) {
	// Verified identity, no app-user row: behaves as PENDING.
	s := &Session{Email: "ghost@example.com", Role: domain.RolePending}
	authz := NewAuthorizer(&config.Config{})

	if err := authz.Authorize(s, ActionRead, &Resource{IsPublic: true}); err != nil {
		t.Fatalf("public read: %v", err)
	}
	if err := authz.Authorize(s, ActionWrite, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
