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
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/chores"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/deletions"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/rejections"
	"github.com/dmitrijs2005/housekeeper/internal/common"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
	"github.com/dmitrijs2005/housekeeper/internal/recurrence"
	"github.com/google/uuid"
)

// ChoreService is the repository for chores.
//
// Create, Update and SetCompleted write the remote and the local store in one
// call. When the remote write fails the chore is still stored locally with
// Synced=false and the returned error wraps ErrQueuedForSync; the returned
// chore is valid in that case.
type ChoreService interface {
	Create(ctx context.Context, chore *models.Chore) (*models.Chore, error)
	Update(ctx context.Context, chore *models.Chore) (*models.Chore, error)
	// SetCompleted toggles completion. Completing a recurring chore spawns and
	// returns its next instance.
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Chore, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, householdID, id string) (*models.Chore, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*models.Chore, error)
	// WatchByHousehold merges remote state once, then emits a snapshot of
	// the household's chores after every local change until ctx ends.
	WatchByHousehold(ctx context.Context, householdID string) (<-chan []*models.Chore, error)
	Refresh(ctx context.Context, householdID string) error
	GetUnsynced(ctx context.Context) ([]*models.Chore, error)
	MarkSynced(ctx context.Context, chore *models.Chore) (bool, error)
}

type choreService struct {
	remote     client.DocumentStore
	chores     chores.Repository
	deletions  deletions.Repository
	rejections rejections.Repository
	feed       *changefeed.Feed
	logger     logging.Logger
	now        func() time.Time
}

func NewChoreService(remote client.DocumentStore, repos *client.Repositories, feed *changefeed.Feed, logger logging.Logger) ChoreService {
	return &choreService{
		remote:     remote,
		chores:     repos.Chores,
		deletions:  repos.Deletions,
		rejections: repos.Rejections,
		feed:       feed,
		logger:     logger.With("module", "chores"),
		now:        defaultClock,
	}
}

func validateChore(c *models.Chore) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: chore title is required", common.ErrorValidation)
	}
	if c.HouseholdID == "" {
		return fmt.Errorf("%w: chore needs a household", common.ErrorValidation)
	}
	if _, err := models.ParseFrequency(string(c.Frequency)); err != nil {
		return err
	}
	return nil
}

func (s *choreService) Create(ctx context.Context, in *models.Chore) (*models.Chore, error) {
	c := *in
	if c.Frequency == "" {
		c.Frequency = models.FrequencyNone
	}
	if err := validateChore(&c); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = s.now()
	c.IsCompleted = false
	c.CompletedAt = nil

	err := s.save(ctx, &c)
	if err != nil && !errors.Is(err, ErrQueuedForSync) {
		return nil, err
	}
	return &c, err
}

func (s *choreService) Update(ctx context.Context, in *models.Chore) (*models.Chore, error) {
	current, err := s.chores.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	c := *in
	c.HouseholdID = current.HouseholdID
	c.CreatedBy = current.CreatedBy
	c.CreatedAt = current.CreatedAt
	c.LastModified = current.LastModified
	if err := validateChore(&c); err != nil {
		return nil, err
	}
	if !c.IsCompleted {
		c.CompletedAt = nil
	} else if c.CompletedAt == nil {
		now := s.now()
		c.CompletedAt = &now
	}

	err = s.save(ctx, &c)
	if err != nil && !errors.Is(err, ErrQueuedForSync) {
		return nil, err
	}
	return &c, err
}

func (s *choreService) SetCompleted(ctx context.Context, id string, completed bool) (*models.Chore, error) {
	c, err := s.chores.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	wasCompleted := c.IsCompleted

	c.IsCompleted = completed
	switch {
	case !completed:
		c.CompletedAt = nil
	case !wasCompleted:
		now := s.now()
		c.CompletedAt = &now
	}

	saveErr := s.save(ctx, c)
	if saveErr != nil && !errors.Is(saveErr, ErrQueuedForSync) {
		return nil, saveErr
	}

	if !completed || wasCompleted || !recurrence.ShouldCreateNextInstance(c.Frequency) {
		return nil, saveErr
	}
	due, ok := recurrence.NextDueDate(c.DueDate, c.Frequency)
	if !ok {
		return nil, saveErr
	}

	next := &models.Chore{
		ID:          uuid.NewString(),
		HouseholdID: c.HouseholdID,
		Title:       c.Title,
		DueDate:     due,
		AssignedTo:  c.AssignedTo,
		Frequency:   c.Frequency,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   s.now(),
	}
	nextErr := s.save(ctx, next)
	if nextErr != nil && !errors.Is(nextErr, ErrQueuedForSync) {
		return nil, fmt.Errorf("failed to create next occurrence: %w", nextErr)
	}

	s.logger.Info(ctx, "next occurrence created", "chore", c.ID, "next", next.ID, "due", next.DueDate)
	return next, errors.Join(saveErr, nextErr)
}

// save stamps the chore, writes it to the remote and then to the local store.
func (s *choreService) save(ctx context.Context, c *models.Chore) error {
	c.LastModified = nextModified(s.now, c.LastModified)

	remoteErr := s.remote.Set(ctx, models.ChorePath(c.HouseholdID, c.ID), c.Document())
	c.Synced = remoteErr == nil

	if err := s.chores.Upsert(ctx, c); err != nil {
		return fmt.Errorf("failed to save chore locally: %w", err)
	}
	s.clearRejection(ctx, c.ID)
	s.feed.Publish(c.HouseholdID)

	if remoteErr != nil {
		s.logger.Warn(ctx, "chore queued for sync", "chore", c.ID, "error", remoteErr)
		return queued(remoteErr)
	}
	return nil
}

func (s *choreService) Delete(ctx context.Context, id string) error {
	c, err := s.chores.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.chores.Delete(ctx, id); err != nil {
		return err
	}
	s.clearRejection(ctx, id)
	s.feed.Publish(c.HouseholdID)

	remoteErr := s.remote.Delete(ctx, models.ChorePath(c.HouseholdID, id))
	if remoteErr == nil || errors.Is(remoteErr, client.ErrNotFound) {
		return nil
	}

	pending := &models.PendingDeletion{
		ItemID:      id,
		Kind:        models.ItemKindChore,
		HouseholdID: c.HouseholdID,
		CreatedAt:   s.now(),
	}
	if err := s.deletions.Add(ctx, pending); err != nil {
		return fmt.Errorf("failed to queue chore deletion: %w", errors.Join(err, remoteErr))
	}
	s.logger.Warn(ctx, "chore deletion queued for sync", "chore", id, "error", remoteErr)
	return queued(remoteErr)
}

func (s *choreService) GetByID(ctx context.Context, householdID, id string) (*models.Chore, error) {
	c, err := s.chores.Get(ctx, id)
	if err == nil {
		return c, nil
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

	doc, err := s.remote.Get(ctx, models.ChorePath(householdID, id))
	if errors.Is(err, client.ErrNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chore: %w", err)
	}
	c, err = models.ChoreFromDocument(doc)
	if err != nil {
		return nil, err
	}
	c.HouseholdID = householdID
	if err := s.chores.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to cache chore: %w", err)
	}
	s.clearRejection(ctx, c.ID)
	return c, nil
}

func (s *choreService) ListByHousehold(ctx context.Context, householdID string) ([]*models.Chore, error) {
	return s.chores.ListByHousehold(ctx, householdID)
}

func (s *choreService) WatchByHousehold(ctx context.Context, householdID string) (<-chan []*models.Chore, error) {
	changes, unsubscribe := s.feed.Subscribe(householdID)

	if err := s.Refresh(ctx, householdID); err != nil {
		s.logger.Warn(ctx, "remote refresh failed, serving local data", "household", householdID, "error", err)
	}

	first, err := s.chores.ListByHousehold(ctx, householdID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan []*models.Chore, 1)
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
			snapshot, err := s.chores.ListByHousehold(ctx, householdID)
			if err != nil {
				s.logger.Error(ctx, "failed to read chores", "household", householdID, "error", err)
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

// Refresh pulls every chore of the household from the remote and merges it
// into the local store. Unsynced local edits and pending deletions win; synced
// rows that no longer exist remotely are dropped.
func (s *choreService) Refresh(ctx context.Context, householdID string) error {
	docs, err := s.remote.QueryByField(ctx, models.ChoresCollection(householdID), "householdId", householdID)
	if err != nil {
		return fmt.Errorf("failed to pull chores: %w", err)
	}

	pending, err := s.deletions.ItemIDs(ctx, householdID)
	if err != nil {
		return err
	}
	local, err := s.chores.ListByHousehold(ctx, householdID)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Chore, len(local))
	for _, c := range local {
		byID[c.ID] = c
	}

	changed := false
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		remote, err := models.ChoreFromDocument(doc)
		if err != nil {
			s.logger.Warn(ctx, "skipping malformed chore document", "error", err)
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
		if err := s.chores.Upsert(ctx, remote); err != nil {
			return err
		}
		s.clearRejection(ctx, remote.ID)
		changed = true
	}

	for _, c := range local {
		if _, ok := seen[c.ID]; ok || !c.Synced {
			continue
		}
		if err := s.chores.Delete(ctx, c.ID); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		changed = true
	}

	if changed {
		s.feed.Publish(householdID)
	}
	return nil
}

func (s *choreService) GetUnsynced(ctx context.Context) ([]*models.Chore, error) {
	return s.chores.ListUnsynced(ctx)
}

func (s *choreService) MarkSynced(ctx context.Context, c *models.Chore) (bool, error) {
	return s.chores.MarkSynced(ctx, c.ID, c.LastModified)
}

// clearRejection drops any recorded refusal for id. Called whenever the local
// row is rewritten, either by a new edit or by caching the remote copy.
func (s *choreService) clearRejection(ctx context.Context, id string) {
	if err := s.rejections.Delete(ctx, models.ItemKindChore, id); err != nil {
		s.logger.Warn(ctx, "failed to clear rejection", "chore", id, "error", err)
	}
}
