// Package syncworker drains the local outbound queues (unsynced chores and
// notes, pending deletions) against the remote store, and schedules those
// runs periodically and on demand with exponential backoff.
package syncworker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// Report summarizes one sync run.
type Report struct {
	ChoresPushed     int
	NotesPushed      int
	DeletionsApplied int
	// Skipped counts items left queued because this exact version was refused before.
	Skipped  int
	Rejected []models.Rejection
}

// Empty reports whether the run had nothing to do.
func (r Report) Empty() bool {
	return r.ChoresPushed+r.NotesPushed+r.DeletionsApplied+r.Skipped+len(r.Rejected) == 0
}

// Status is a snapshot of the outbound queues.
type Status struct {
	UnsyncedChores   int
	UnsyncedNotes    int
	PendingDeletions int
	Rejections       int
	LastSuccess      time.Time
}

// Worker runs at most one sync at a time.
type Worker struct {
	mu     sync.Mutex
	remote client.DocumentStore
	repos  *client.Repositories
	logger logging.Logger
	now    func() time.Time
}

func NewWorker(remote client.DocumentStore, repos *client.Repositories, logger logging.Logger) *Worker {
	return &Worker{
		remote: remote,
		repos:  repos,
		logger: logger.With("module", "syncworker"),
		now:    models.Now,
	}
}

// pushItem is the part of a chore or note the push loop needs.
type pushItem struct {
	kind         models.ItemKind
	id           string
	householdID  string
	lastModified time.Time
	doc          models.Document
}

type rejectionKey struct {
	kind models.ItemKind
	id   string
}

// RunSync pushes unsynced chores, then unsynced notes, then pending deletions.
// A retryable failure stops the run and is returned; work done before it
// stays done. Terminal refusals are recorded and reported instead.
func (w *Worker) RunSync(ctx context.Context) (Report, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var report Report

	refused, err := w.loadRejections(ctx)
	if err != nil {
		return report, err
	}

	chores, err := w.repos.Chores.ListUnsynced(ctx)
	if err != nil {
		return report, err
	}
	items := make([]pushItem, 0, len(chores))
	for _, c := range chores {
		items = append(items, pushItem{models.ItemKindChore, c.ID, c.HouseholdID, c.LastModified, c.Document()})
	}
	report.ChoresPushed, err = w.push(ctx, items, refused, w.repos.Chores.MarkSynced, &report)
	if err != nil {
		return report, err
	}

	notes, err := w.repos.Notes.ListUnsynced(ctx)
	if err != nil {
		return report, err
	}
	items = items[:0]
	for _, n := range notes {
		items = append(items, pushItem{models.ItemKindNote, n.ID, n.HouseholdID, n.LastModified, n.Document()})
	}
	report.NotesPushed, err = w.push(ctx, items, refused, w.repos.Notes.MarkSynced, &report)
	if err != nil {
		return report, err
	}

	report.DeletionsApplied, err = w.applyDeletions(ctx, &report)
	if err != nil {
		return report, err
	}

	if err := w.repos.Metadata.SetTime(ctx, metadata.KeyLastSync, w.now()); err != nil {
		w.logger.Warn(ctx, "failed to record sync time", "error", err)
	}
	if !report.Empty() {
		w.logger.Info(ctx, "sync finished",
			"chores", report.ChoresPushed,
			"notes", report.NotesPushed,
			"deletions", report.DeletionsApplied,
			"rejected", len(report.Rejected))
	}
	return report, nil
}

func (w *Worker) loadRejections(ctx context.Context) (map[rejectionKey]time.Time, error) {
	list, err := w.repos.Rejections.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[rejectionKey]time.Time, len(list))
	for _, r := range list {
		out[rejectionKey{r.Kind, r.ItemID}] = r.LastModified
	}
	return out, nil
}

type markFunc func(ctx context.Context, id string, lastModified time.Time) (bool, error)

func (w *Worker) push(ctx context.Context, items []pushItem, refused map[rejectionKey]time.Time, mark markFunc, report *Report) (int, error) {
	pushed := 0
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return pushed, err
		}
		key := rejectionKey{it.kind, it.id}
		if version, ok := refused[key]; ok && version.Equal(it.lastModified) {
			report.Skipped++
			continue
		}

		path, err := models.ItemPath(it.kind, it.householdID, it.id)
		if err != nil {
			return pushed, err
		}
		if err := w.remote.Set(ctx, path, it.doc); err != nil {
			if client.IsTerminal(err) {
				if err := w.reject(ctx, it.kind, it.id, it.householdID, it.lastModified, err, report); err != nil {
					return pushed, err
				}
				continue
			}
			return pushed, fmt.Errorf("push %s %s: %w", it.kind, it.id, err)
		}

		ok, err := mark(ctx, it.id, it.lastModified)
		if err != nil {
			return pushed, err
		}
		if !ok {
			w.logger.Debug(ctx, "item changed during push, left queued", "kind", it.kind, "id", it.id)
		}
		if _, was := refused[key]; was {
			if err := w.repos.Rejections.Delete(ctx, it.kind, it.id); err != nil {
				return pushed, err
			}
		}
		pushed++
	}
	return pushed, nil
}

func (w *Worker) applyDeletions(ctx context.Context, report *Report) (int, error) {
	pending, err := w.repos.Deletions.List(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, d := range pending {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		path, err := d.Path()
		if err != nil {
			return applied, err
		}

		done := true
		err = w.remote.Delete(ctx, path)
		switch {
		case err == nil, errors.Is(err, client.ErrNotFound):
		case client.IsTerminal(err):
			done = false
			if err := w.reject(ctx, d.Kind, d.ItemID, d.HouseholdID, d.CreatedAt, err, report); err != nil {
				return applied, err
			}
		default:
			return applied, fmt.Errorf("delete %s %s: %w", d.Kind, d.ItemID, err)
		}

		if err := w.repos.Deletions.Remove(ctx, d.ID); err != nil {
			return applied, err
		}
		if done {
			applied++
		}
	}
	return applied, nil
}

func (w *Worker) reject(ctx context.Context, kind models.ItemKind, id, householdID string, version time.Time, cause error, report *Report) error {
	r := models.Rejection{
		ItemID:       id,
		Kind:         kind,
		HouseholdID:  householdID,
		Reason:       cause.Error(),
		LastModified: version,
		CreatedAt:    w.now(),
	}
	if err := w.repos.Rejections.Put(ctx, &r); err != nil {
		return err
	}
	w.logger.Warn(ctx, "remote refused item", "kind", kind, "id", id, "error", cause)
	report.Rejected = append(report.Rejected, r)
	return nil
}

// Status reports the sizes of the outbound queues.
func (w *Worker) Status(ctx context.Context) (Status, error) {
	var (
		s   Status
		err error
	)
	if s.UnsyncedChores, err = w.repos.Chores.CountUnsynced(ctx); err != nil {
		return s, err
	}
	if s.UnsyncedNotes, err = w.repos.Notes.CountUnsynced(ctx); err != nil {
		return s, err
	}
	if s.PendingDeletions, err = w.repos.Deletions.Count(ctx); err != nil {
		return s, err
	}
	if s.Rejections, err = w.repos.Rejections.Count(ctx); err != nil {
		return s, err
	}
	s.LastSuccess, err = w.repos.Metadata.GetTime(ctx, metadata.KeyLastSync)
	return s, err
}
