package syncworker

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/changefeed"
	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/repotest"
	"github.com/dmitrijs2005/housekeeper/internal/client/services"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

type fakeRemote struct {
	mu      sync.Mutex
	docs    map[string]models.Document
	offline bool
	writes  int
	// failOn returns an error for the given path instead of writing.
	failOn map[string]error
	// onSet runs after a successful Set, outside the lock.
	onSet func(path string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]models.Document{}, failOn: map[string]error{}}
}

func (f *fakeRemote) setOffline(v bool) {
	f.mu.Lock()
	f.offline = v
	f.mu.Unlock()
}

func (f *fakeRemote) fail(path string, err error) {
	f.mu.Lock()
	f.failOn[path] = err
	f.mu.Unlock()
}

func (f *fakeRemote) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeRemote) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[path]
	return ok
}

func (f *fakeRemote) doc(path string) (models.Document, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[path]
	return d, ok
}

func (f *fakeRemote) check(path string) error {
	if f.offline {
		return fmt.Errorf("%w: connection refused", client.ErrUnavailable)
	}
	return f.failOn[path]
}

func (f *fakeRemote) Get(_ context.Context, path string) (models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(path); err != nil {
		return nil, err
	}
	d, ok := f.docs[path]
	if !ok {
		return nil, client.ErrNotFound
	}
	return d, nil
}

func (f *fakeRemote) Set(_ context.Context, path string, d models.Document) error {
	f.mu.Lock()
	if err := f.check(path); err != nil {
		f.mu.Unlock()
		return err
	}
	f.writes++
	f.docs[path] = d
	hook := f.onSet
	f.mu.Unlock()
	if hook != nil {
		hook(path)
	}
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(path); err != nil {
		return err
	}
	if _, ok := f.docs[path]; !ok {
		return client.ErrNotFound
	}
	f.writes++
	delete(f.docs, path)
	return nil
}

func (f *fakeRemote) QueryByField(context.Context, string, string, any) ([]models.Document, error) {
	return nil, nil
}

func (f *fakeRemote) UpdateFields(_ context.Context, path string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.check(path)
}

func (f *fakeRemote) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.check("")
}

type env struct {
	remote *fakeRemote
	repos  *client.Repositories
	chores services.ChoreService
	notes  services.NoteService
	worker *Worker
}

func newEnv(t *testing.T) *env {
	t.Helper()
	remote := newFakeRemote()
	repos := client.NewRepositories(repotest.NewDB(t))
	feed := changefeed.New()
	logger := logging.Discard()
	return &env{
		remote: remote,
		repos:  repos,
		chores: services.NewChoreService(remote, repos, feed, logger),
		notes:  services.NewNoteService(remote, repos, feed, logger),
		worker: NewWorker(remote, repos, logger),
	}
}
