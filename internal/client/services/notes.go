package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/changefeed"
	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/deletions"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/notes"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/rejections"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/google/uuid"
)

// NoteService is the repository for notes. Write semantics match ChoreService.
type NoteService interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, householdID, id string) (*models.Note, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*models.Note, error)
	WatchByHousehold(ctx context.Context, householdID string) (<-chan []*models.Note, error)
	Refresh(ctx context.Context, householdID string) error
	GetUnsynced(ctx context.Context) ([]*models.Note, error)
	MarkSynced(ctx context.Context, note *models.Note) (bool, error)
}

type noteService struct {
	remote     client.DocumentStore
	notes      notes.Repository
	deletions  deletions.Repository
	rejections rejections.Repository
	feed       *changefeed.Feed
	logger     logging.Logger
	now        func() time.Time
}

func NewNoteService(remote client.DocumentStore, repos *client.Repositories, feed *changefeed.Feed, logger logging.Logger) NoteService {
	return &noteService{
		remote:     remote,
		notes:      repos.Notes,
		deletions:  repos.Deletions,
		rejections: repos.Rejections,
		feed:       feed,
		logger:     logger.With("module", "notes"),
		now:        defaultClock,
	}
}

func validateNote(n *models.Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: note title is required", common.ErrorValidation)
	}
	if n.HouseholdID == "" {
		return fmt.Errorf("%w: note needs a household", common.ErrorValidation)
	}
	return nil
}

func (s *noteService) Create(ctx context.Context, in *models.Note) (*models.Note, error) {
	n := *in
	if err := validateNote(&n); err != nil {
		return nil, err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = s.now()

	err := s.save(ctx, &n)
	if err != nil && !errors.Is(err, ErrQueuedForSync) {
		return nil, err
	}
	return &n, err
}

func (s *noteService) Update(ctx context.Context, in *models.Note) (*models.Note, error) {
	current, err := s.notes.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	n := *in
	n.HouseholdID = current.HouseholdID
	n.CreatedBy = current.CreatedBy
	n.CreatedAt = current.CreatedAt
	n.LastModified = current.LastModified
	if err := validateNote(&n); err != nil {
		return nil, err
	}

	err = s.save(ctx, &n)
	if err != nil && !errors.Is(err, ErrQueuedForSync) {
		return nil, err
	}
	return &n, err
}

func (s *noteService) save(ctx context.Context, n *models.Note) error {
	n.LastModified = nextModified(s.now, n.LastModified)

	remoteErr := s.remote.Set(ctx, models.NotePath(n.HouseholdID, n.ID), n.Document())
	n.Synced = remoteErr == nil

	if err := s.notes.Upsert(ctx, n); err != nil {
		return fmt.Errorf("failed to save note locally: %w", err)
	}
	s.clearRejection(ctx, n.ID)
	s.feed.Publish(n.HouseholdID)

	if remoteErr != nil {
		s.logger.Warn(ctx, "note queued for sync", "note", n.ID, "error", remoteErr)
		return queued(remoteErr)
	}
	return nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	n, err := s.notes.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	s.clearRejection(ctx, id)
	s.feed.Publish(n.HouseholdID)

	remoteErr := s.remote.Delete(ctx, models.NotePath(n.HouseholdID, id))
	if remoteErr == nil || errors.Is(remoteErr, client.ErrNotFound) {
		return nil
	}

	pending := &models.PendingDeletion{
		ItemID:      id,
		Kind:        models.ItemKindNote,
		HouseholdID: n.HouseholdID,
		CreatedAt:   s.now(),
	}
	if err := s.deletions.Add(ctx, pending); err != nil {
		return fmt.Errorf("failed to queue note deletion: %w", errors.Join(err, remoteErr))
	}
	s.logger.Warn(ctx, "note deletion queued for sync", "note", id, "error", remoteErr)
	return queued(remoteErr)
}

func (s *noteService) GetByID(ctx context.Context, householdID, id string) (*models.Note, error) {
	n, err := s.notes.Get(ctx, id)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	pending, err := s.deletions.ItemIDs(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if _, deleted := pending[id]; deleted {
		return nil, common.ErrorNotFound
	}

	doc, err := s.remote.Get(ctx, models.NotePath(householdID, id))
	if errors.Is(err, client.ErrNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note: %w", err)
	}
	n, err = models.NoteFromDocument(doc)
	if err != nil {
		return nil, err
	}
	n.HouseholdID = householdID
	if err := s.notes.Upsert(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to cache note: %w", err)
	}
	s.clearRejection(ctx, n.ID)
	return n, nil
}

func (s *noteService) ListByHousehold(ctx context.Context, householdID string) ([]*models.Note, error) {
	return s.notes.ListByHousehold(ctx, householdID)
}

func (s *noteService) WatchByHousehold(ctx context.Context, householdID string) (<-chan []*models.Note, error) {
	changes, unsubscribe := s.feed.Subscribe(householdID)

	if err := s.Refresh(ctx, householdID); err != nil {
		s.logger.Warn(ctx, "remote refresh failed, serving local data", "household", householdID, "error", err)
	}

	first, err := s.notes.ListByHousehold(ctx, householdID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan []*models.Note, 1)
	out <- first

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
			}
			snapshot, err := s.notes.ListByHousehold(ctx, householdID)
			if err != nil {
				s.logger.Error(ctx, "failed to read notes", "household", householdID, "error", err)
				continue
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Refresh merges the remote notes of a household into the local store with
// the same precedence rules as chores.
func (s *noteService) Refresh(ctx context.Context, householdID string) error {
	docs, err := s.remote.QueryByField(ctx, models.NotesCollection(householdID), "householdId", householdID)
	if err != nil {
		return fmt.Errorf("failed to pull notes: %w", err)
	}

	pending, err := s.deletions.ItemIDs(ctx, householdID)
	if err != nil {
		return err
	}
	local, err := s.notes.ListByHousehold(ctx, householdID)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Note, len(local))
	for _, n := range local {
		byID[n.ID] = n
	}

	changed := false
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		remote, err := models.NoteFromDocument(doc)
		if err != nil {
			s.logger.Warn(ctx, "skipping malformed note document", "error", err)
			continue
		}
		remote.HouseholdID = householdID
		seen[remote.ID] = struct{}{}

		if _, deleted := pending[remote.ID]; deleted {
			continue
		}
		if mine, ok := byID[remote.ID]; ok && !mine.Synced {
			continue
		}
		if err := s.notes.Upsert(ctx, remote); err != nil {
			return err
		}
		s.clearRejection(ctx, remote.ID)
		changed = true
	}

	for _, n := range local {
		if _, ok := seen[n.ID]; ok || !n.Synced {
			continue
		}
		if err := s.notes.Delete(ctx, n.ID); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		changed = true
	}

	if changed {
		s.feed.Publish(householdID)
	}
	return nil
}

func (s *noteService) GetUnsynced(ctx context.Context) ([]*models.Note, error) {
	return s.notes.ListUnsynced(ctx)
}

func (s *noteService) MarkSynced(ctx context.Context, n *models.Note) (bool, error) {
	return s.notes.MarkSynced(ctx, n.ID, n.LastModified)
}

// clearRejection drops any recorded refusal for id. Called whenever the local
// row is rewritten, either by a new edit or by caching the remote copy.
func (s *noteService) clearRejection(ctx context.Context, id string) {
	if err := s.rejections.Delete(ctx, models.ItemKindNote, id); err != nil {
		s.logger.Warn(ctx, "failed to clear rejection", "note", id, "error", err)
	}
}
