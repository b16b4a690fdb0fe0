package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fridaygt/backend/config"
	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	"github.com/fridaygt/backend/internal/usecase"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type mockLapRepo struct {
	laps map[uuid.UUID]*domain.LapTime
}

func newMockLapRepo() *mockLapRepo {
	return &mockLapRepo{laps: map[uuid.UUID]*domain.LapTime{}}
}

func (r *mockLapRepo) List(_ context.Context, _ repo.LapTimeFilter) ([]domain.LapTime, error) {
	var out []domain.LapTime
	for _, l := range r.laps {
		out = append(out, *l)
	}
	return out, nil
}

func (r *mockLapRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.LapTime, error) {
	l, ok := r.laps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *mockLapRepo) Create(_ context.Context, lap *domain.LapTime) error {
	lap.ID = uuid.New()
	clone := *lap
	r.laps[lap.ID] = &clone
	return nil
}

func (r *mockLapRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.laps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.laps, id)
	return nil
}

func newTestLapTimeService(t *testing.T) (usecase.LapTimeService, *mockLapRepo, *mockBuildRepo) {
	t.Helper()
	laps := newMockLapRepo()
	builds := newMockBuildRepo()
	svc := usecase.NewLapTimeService(pkglog.New("test"), laps, builds, usecase.NewAuthorizer(&config.Config{}))
	return svc, laps, builds
}

func TestLapTimeSnapshotsBuildName(t *testing.T) {
	svc, _, builds := newTestLapTimeService(t)
	driver := approvedSession(uuid.New())

	build := &domain.CarBuild{UserID: driver.User.ID, CarID: uuid.New(), Name: "sprint tune"}
	if err := builds.Create(context.Background(), build); err != nil {
		t.Fatalf("seed build: %v", err)
	}

	lap, err := svc.Create(context.Background(), "trace", driver, usecase.LapTimeInput{
		TrackID: uuid.New(),
		CarID:   build.CarID,
		BuildID: &build.ID,
		TimeMS:  83417,
	})
	if err != nil {
		t.Fatalf("create lap: %v", err)
	}
	if lap.BuildName == nil || *lap.BuildName != "sprint tune" {
		t.Fatalf("build name not snapshotted: %v", lap.BuildName)
	}
	if lap.RecordedAt.IsZero() {
		t.Fatalf("recorded_at must default to now")
	}

	// Renaming the build later must not touch the recorded snapshot.
	build.Name = "sprint tune v2"
	if err := builds.Update(context.Background(), build); err != nil {
		t.Fatalf("rename build: %v", err)
	}
	if *lap.BuildName != "sprint tune" {
		t.Fatalf("snapshot changed after rename")
	}
}

func TestLapTimeUnreadableBuildForbidden(t *testing.T) {
	svc, _, builds := newTestLapTimeService(t)
	owner := approvedSession(uuid.New())
	driver := approvedSession(uuid.New())

	build := &domain.CarBuild{UserID: owner.User.ID, CarID: uuid.New(), Name: "secret tune"}
	if err := builds.Create(context.Background(), build); err != nil {
		t.Fatalf("seed build: %v", err)
	}

	_, err := svc.Create(context.Background(), "trace", driver, usecase.LapTimeInput{
		TrackID: uuid.New(),
		CarID:   build.CarID,
		BuildID: &build.ID,
		TimeMS:  83417,
	})
	if !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("lap against an unreadable build must be forbidden, got %v", err)
	}
}

func TestLapTimeMissingBuildNotFound(t *testing.T) {
	svc, _, _ := newTestLapTimeService(t)
	driver := approvedSession(uuid.New())
	missing := uuid.New()

	_, err := svc.Create(context.Background(), "trace", driver, usecase.LapTimeInput{
		TrackID: uuid.New(),
		CarID:   uuid.New(),
		BuildID: &missing,
		TimeMS:  83417,
	})
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLapTimeDeleteOwnerOrAdmin(t *testing.T) {
	svc, _, _ := newTestLapTimeService(t)
	driver := approvedSession(uuid.New())
	stranger := approvedSession(uuid.New())

	lap, err := svc.Create(context.Background(), "trace", driver, usecase.LapTimeInput{
		TrackID:    uuid.New(),
		CarID:      uuid.New(),
		TimeMS:     83417,
		RecordedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create lap: %v", err)
	}

	if err := svc.Delete(context.Background(), "trace", stranger, lap.ID); !errors.Is(err, usecase.ErrForbidden) {
		t.Fatalf("stranger delete must be forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", driver, lap.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	lap2, err := svc.Create(context.Background(), "trace", driver, usecase.LapTimeInput{
		TrackID: uuid.New(),
		CarID:   uuid.New(),
		TimeMS:  84001,
	})
	if err != nil {
		t.Fatalf("create lap: %v", err)
	}
	if err := svc.Delete(context.Background(), "trace", adminSession(uuid.New()), lap2.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
