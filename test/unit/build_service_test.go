package unit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/config"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type mockBuildRepo struct {
	builds map[uuid.UUID]*domain.CarBuild
}

func newMockBuildRepo() *mockBuildRepo {
	return &mockBuildRepo{builds: map[uuid.UUID]*domain.CarBuild{}}
}

func (r *mockBuildRepo) ListVisible(_ context.Context, viewerID *uuid.UUID) ([]domain.CarBuild, error) {
	var out []domain.CarBuild
	for _, b := range r.builds {
		if b.IsPublic || (viewerID != nil && b.UserID == *viewerID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *mockBuildRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.CarBuild, error) {
	b, ok := r.builds[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *mockBuildRepo) Create(_ context.Context, build *domain.CarBuild) error {
	build.ID = uuid.New()
	clone := *build
	r.builds[build.ID] = &clone
	return nil
}

func (r *mockBuildRepo) Update(_ context.Context, build *domain.CarBuild) error {
	if _, ok := r.builds[build.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *build
	r.builds[build.ID] = &clone
	return nil
}

func (r *mockBuildRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.builds[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.builds, id)
	return nil
}

func approvedSession(id uuid.UUID) *usecase.Session {
	tag := "Apex_Hunter"
	return &usecase.Session{
		Email:    "member@example.com",
		Role:     domain.RoleUser,
		Gamertag: &tag,
		User:     &domain.User{ID: id, Email: "member@example.com", Role: domain.RoleUser, Gamertag: &tag},
	}
}

func adminSession(id uuid.UUID) *usecase.Session {
	return &usecase.Session{
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
		User:  &domain.User{ID: id, Email: "admin@example.com", Role: domain.RoleAdmin},
	}
}

func newTestBuildService(t *testing.T) (usecase.BuildService, *mockBuildRepo, *mockAppUserRepo) {
	t.Helper()
	builds := newMockBuildRepo()
	users := newMockAppUserRepo()
	svc := usecase.NewBuildService(pkglog.New("test"), builds, users, usecase.NewAuthorizer(&config.Config{}))
	return svc, builds, users
}

func TestBuildVisibility(t *testing.T) {
	svc, _, _ := newTestBuildService(t)
	ownerID := uuid.New()
	otherID := uuid.New()
	owner := approvedSession(ownerID)

	private, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{
		CarID: uuid.New(),
		Name:  "GT3 street tune",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{
		CarID:    uuid.New(),
		Name:     "GT3 race tune",
		IsPublic: true,
	}); err != nil {
		t.Fatalf("create public: %v", err)
	}

	// Owner sees both.
	mine, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("owner should see 2 builds, got %d", len(mine))
	}

	// A stranger sees only the public one and cannot read the private one.
	stranger := approvedSession(otherID)
	theirs, err := svc.List(context.Background(), stranger)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(theirs) != 1 {
		t.Fatalf("stranger should see 1 build, got %d", len(theirs))
	}
	if _, err := svc.Get(context.Background(), stranger, private.ID); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Anonymous callers cannot read the private one either.
	if _, err := svc.Get(context.Background(), nil, private.ID); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBuildUpdateReplacesChildren(t *testing.T) {
	svc, _, _ := newTestBuildService(t)
	ownerID := uuid.New()
	owner := approvedSession(ownerID)
	partA, partB := uuid.New(), uuid.New()

	build, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{
		CarID:    uuid.New(),
		Name:     "tune",
		Upgrades: []usecase.BuildUpgradeInput{{PartID: partA}},
		Settings: []usecase.BuildSettingInput{{Category: "suspension", Name: "ride_height", Value: "90"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "trace", owner, build.ID, usecase.BuildInput{
		CarID:    build.CarID,
		Name:     "tune v2",
		Upgrades: []usecase.BuildUpgradeInput{{PartID: partB}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Upgrades) != 1 || updated.Upgrades[0].PartID != partB {
		t.Fatalf("upgrades not replaced: %+v", updated.Upgrades)
	}
	if len(updated.Settings) != 0 {
		t.Fatalf("settings not replaced: %+v", updated.Settings)
	}
}

func TestBuildOwnershipTransferIsAdminOnly(t *testing.T) {
	svc, _, users := newTestBuildService(t)
	ownerID := uuid.New()
	owner := approvedSession(ownerID)

	target := &domain.User{Email: "target@example.com", Role: domain.RoleUser}
	if err := users.Create(context.Background(), target); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	build, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{CarID: uuid.New(), Name: "tune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), "trace", owner, build.ID, usecase.BuildInput{
		CarID:   build.CarID,
		Name:    "tune",
		OwnerID: &target.ID,
	})
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("owner must not transfer ownership, got %v", err)
	}

	admin := adminSession(uuid.New())
	updated, err := svc.Update(context.Background(), "trace", admin, build.ID, usecase.BuildInput{
		CarID:   build.CarID,
		Name:    "tune",
		OwnerID: &target.ID,
	})
	if err != nil {
		t.Fatalf("admin transfer: %v", err)
	}
	if updated.UserID != target.ID {
		t.Fatalf("ownership not transferred: %s", updated.UserID)
	}
}

func TestBuildOwnershipTransferTargetMustBeApproved(t *testing.T) {
	svc, _, users := newTestBuildService(t)
	owner := approvedSession(uuid.New())
	admin := adminSession(uuid.New())

	pending := &domain.User{Email: "pending@example.com", Role: domain.RolePending}
	if err := users.Create(context.Background(), pending); err != nil {
		t.Fatalf("seed pending: %v", err)
	}

	build, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{CarID: uuid.New(), Name: "tune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A user id with no member row behind it is not a valid owner.
	ghost := uuid.New()
	if _, err := svc.Update(context.Background(), "trace", admin, build.ID, usecase.BuildInput{
		CarID:   build.CarID,
		Name:    "tune",
		OwnerID: &ghost,
	}); !errors.Is(err, usecase.ErrOwnerNotEligible) {
		t.Fatalf("expected ErrOwnerNotEligible for unknown owner, got %v", err)
	}

	// Neither is a member still waiting on approval.
	if _, err := svc.Update(context.Background(), "trace", admin, build.ID, usecase.BuildInput{
		CarID:   build.CarID,
		Name:    "tune",
		OwnerID: &pending.ID,
	}); !errors.Is(err, usecase.ErrOwnerNotEligible) {
		t.Fatalf("expected ErrOwnerNotEligible for pending owner, got %v", err)
	}

	// The same gate applies when an admin creates a build for someone else.
	if _, err := svc.Create(context.Background(), "trace", admin, usecase.BuildInput{
		CarID:   uuid.New(),
		Name:    "handoff tune",
		OwnerID: &pending.ID,
	}); !errors.Is(err, usecase.ErrOwnerNotEligible) {
		t.Fatalf("expected ErrOwnerNotEligible on create, got %v", err)
	}

	// The build's owner is untouched after the failed transfers.
	current, err := svc.Get(context.Background(), owner, build.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.UserID != owner.User.ID {
		t.Fatalf("owner changed despite rejected transfer: %s", current.UserID)
	}
}

func TestBuildCloneCopiesChildrenUnderCaller(t *testing.T) {
	svc, _, _ := newTestBuildService(t)
	ownerID := uuid.New()
	cloner := approvedSession(uuid.New())
	owner := approvedSession(ownerID)
	part := uuid.New()

	source, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{
		CarID:    uuid.New(),
		Name:     "reference tune",
		IsPublic: true,
		Upgrades: []usecase.BuildUpgradeInput{{PartID: part}},
		Settings: []usecase.BuildSettingInput{{Category: "gearbox", Name: "final_drive", Value: "3.2"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clone, err := svc.Clone(context.Background(), "trace", cloner, source.ID)
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if clone.ID == source.ID {
		t.Fatalf("clone must be a new build")
	}
	if clone.UserID != cloner.User.ID {
		t.Fatalf("clone must belong to the caller")
	}
	if clone.Name != "reference tune (copy)" {
		t.Fatalf("unexpected clone name: %s", clone.Name)
	}
	if clone.IsPublic {
		t.Fatalf("clone must start private")
	}
	if len(clone.Upgrades) != 1 || clone.Upgrades[0].PartID != part {
		t.Fatalf("upgrades not copied: %+v", clone.Upgrades)
	}
	if len(clone.Settings) != 1 {
		t.Fatalf("settings not copied: %+v", clone.Settings)
	}
}

func TestBuildClonePrivateForbidden(t *testing.T) {
	svc, _, _ := newTestBuildService(t)
	owner := approvedSession(uuid.New())
	stranger := approvedSession(uuid.New())

	source, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{CarID: uuid.New(), Name: "secret tune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Clone(context.Background(), "trace", stranger, source.ID); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestBuildDeleteNotFoundAfterDelete(t *testing.T) {
	svc, _, _ := newTestBuildService(t)
	owner := approvedSession(uuid.New())

	build, err := svc.Create(context.Background(), "trace", owner, usecase.BuildInput{CarID: uuid.New(), Name: "tune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", owner, build.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", owner, build.ID); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
