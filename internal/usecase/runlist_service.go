package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	repo "github.com/fridaygt/backend/internal/adapters/postgres"
	"github.com/fridaygt/backend/internal/domain"
	pkglog "github.com/fridaygt/backend/pkg/log"
)

type RunListEntryInput struct {
	TrackID uuid.UUID
	Note    *string
	CarIDs  []uuid.UUID
}

type RunListInput struct {
	Name        string
	Description *string
	IsPublic    bool
	Entries     []RunListEntryInput
}

type RunSessionInput struct {
	ScheduledFor time.Time
	Notes        *string
}

type RunListService interface {
	List(ctx context.Context, session *Session) ([]domain.RunList, error)
	Get(ctx context.Context, session *Session, id uuid.UUID) (*domain.RunList, error)
	Create(ctx context.Context, traceID string, session *Session, input RunListInput) (*domain.RunList, error)
	Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input RunListInput) (*domain.RunList, error)
	Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error
	Reorder(ctx context.Context, traceID string, session *Session, id uuid.UUID, entryIDs []uuid.UUID) (*domain.RunList, error)

	CreateSession(ctx context.Context, traceID string, session *Session, listID uuid.UUID, input RunSessionInput) (*domain.RunSession, error)
	ListSessions(ctx context.Context, session *Session, listID uuid.UUID) ([]domain.RunSession, error)
	SetAttendance(ctx context.Context, traceID string, session *Session, sessionID uuid.UUID, status domain.AttendanceStatus) (*domain.SessionAttendance, error)
}

type runListService struct {
	logger pkglog.Logger
	lists  repo.RunListRepository
	authz  *Authorizer
}

func NewRunListService(logger pkglog.Logger, lists repo.RunListRepository, authz *Authorizer) RunListService {
	return &runListService{logger: logger, lists: lists, authz: authz}
}

func (s *runListService) List(ctx context.Context, session *Session) ([]domain.RunList, error) {
	var viewerID *uuid.UUID
	if session != nil {
		viewerID = session.UserID()
	}
	return s.lists.ListVisible(ctx, viewerID)
}

func (s *runListService) Get(ctx context.Context, session *Session, id uuid.UUID) (*domain.RunList, error) {
	list, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionRead, &Resource{OwnerID: list.CreatedByID, IsPublic: list.IsPublic}); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *runListService) Create(ctx context.Context, traceID string, session *Session, input RunListInput) (*domain.RunList, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	list := runListFromInput(input)
	list.CreatedByID = *session.UserID()
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("run_list_id", list.ID.String()).Msg("run list created")
	return list, nil
}

func (s *runListService) Update(ctx context.Context, traceID string, session *Session, id uuid.UUID, input RunListInput) (*domain.RunList, error) {
	existing, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.CreatedByID, IsPublic: existing.IsPublic}); err != nil {
		return nil, err
	}
	updated := runListFromInput(input)
	updated.ID = existing.ID
	updated.CreatedByID = existing.CreatedByID
	updated.CreatedAt = existing.CreatedAt
	if err := s.lists.Update(ctx, updated); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("run_list_id", id.String()).Msg("run list updated")
	return updated, nil
}

func (s *runListService) Delete(ctx context.Context, traceID string, session *Session, id uuid.UUID) error {
	existing, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.CreatedByID, IsPublic: existing.IsPublic}); err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("run_list_id", id.String()).Msg("run list deleted")
	return nil
}

// Reorder renumbers entries in one transaction; the id set must be exactly
// the list's current entries.
func (s *runListService) Reorder(ctx context.Context, traceID string, session *Session, id uuid.UUID, entryIDs []uuid.UUID) (*domain.RunList, error) {
	existing, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: existing.CreatedByID, IsPublic: existing.IsPublic}); err != nil {
		return nil, err
	}
	if err := s.lists.Reorder(ctx, id, entryIDs); err != nil {
		if errors.Is(err, repo.ErrReorderMismatch) {
			return nil, err
		}
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("run_list_id", id.String()).Msg("run list reordered")
	return s.lists.FindByID(ctx, id)
}

func (s *runListService) CreateSession(ctx context.Context, traceID string, session *Session, listID uuid.UUID, input RunSessionInput) (*domain.RunSession, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionWrite, &Resource{OwnerID: list.CreatedByID, IsPublic: list.IsPublic}); err != nil {
		return nil, err
	}
	runSession := &domain.RunSession{
		RunListID:    listID,
		ScheduledFor: input.ScheduledFor,
		Notes:        input.Notes,
	}
	if err := s.lists.CreateSession(ctx, runSession); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("session_id", runSession.ID.String()).Msg("run session scheduled")
	return runSession, nil
}

func (s *runListService) ListSessions(ctx context.Context, session *Session, listID uuid.UUID) ([]domain.RunSession, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionRead, &Resource{OwnerID: list.CreatedByID, IsPublic: list.IsPublic}); err != nil {
		return nil, err
	}
	return s.lists.ListSessions(ctx, listID)
}

// SetAttendance upserts the caller's own attendance row; any approved member
// may respond to a session they can see.
func (s *runListService) SetAttendance(ctx context.Context, traceID string, session *Session, sessionID uuid.UUID, status domain.AttendanceStatus) (*domain.SessionAttendance, error) {
	if err := s.authz.Authorize(session, ActionWrite, nil); err != nil {
		return nil, err
	}
	runSession, err := s.lists.FindSession(ctx, sessionID)
	if err != nil {
		return nil, translate(err)
	}
	list, err := s.lists.FindByID(ctx, runSession.RunListID)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.authz.Authorize(session, ActionRead, &Resource{OwnerID: list.CreatedByID, IsPublic: list.IsPublic}); err != nil {
		return nil, err
	}
	att := &domain.SessionAttendance{
		SessionID: sessionID,
		UserID:    *session.UserID(),
		Status:    status,
	}
	if err := s.lists.UpsertAttendance(ctx, att); err != nil {
		return nil, translate(err)
	}
	s.logger.Info().Str("trace_id", traceID).Str("session_id", sessionID.String()).Str("status", string(status)).Msg("attendance set")
	return att, nil
}

func runListFromInput(input RunListInput) *domain.RunList {
	list := &domain.RunList{
		Name:        input.Name,
		Description: input.Description,
		IsPublic:    input.IsPublic,
	}
	for i, e := range input.Entries {
		entry := domain.RunListEntry{Position: i + 1, TrackID: e.TrackID, Note: e.Note}
		for _, carID := range e.CarIDs {
			entry.Cars = append(entry.Cars, domain.RunListEntryCar{CarID: carID})
		}
		list.Entries = append(list.Entries, entry)
	}
	return list
}
