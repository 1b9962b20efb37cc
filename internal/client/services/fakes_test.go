package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/changefeed"
	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/repotest"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// fakeRemote is an in-memory document store that can be switched offline.
type fakeRemote struct {
	mu      sync.Mutex
	docs    map[string]models.Document
	offline bool
	writes  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: map[string]models.Document{}}
}

func (f *fakeRemote) setOffline(v bool) {
	f.mu.Lock()
	f.offline = v
	f.mu.Unlock()
}

func (f *fakeRemote) doc(path string) (models.Document, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[path]
	return d, ok
}

func (f *fakeRemote) put(path string, d models.Document) {
	f.mu.Lock()
	f.docs[path] = d
	f.mu.Unlock()
}

func (f *fakeRemote) down() error {
	if f.offline {
		return fmt.Errorf("%w: connection refused", client.ErrUnavailable)
	}
	return nil
}

func (f *fakeRemote) Get(_ context.Context, path string) (models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return nil, err
	}
	d, ok := f.docs[path]
	if !ok {
		return nil, client.ErrNotFound
	}
	return copyDoc(d), nil
}

func (f *fakeRemote) Set(_ context.Context, path string, d models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	f.writes++
	f.docs[path] = copyDoc(d)
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	if _, ok := f.docs[path]; !ok {
		return client.ErrNotFound
	}
	f.writes++
	delete(f.docs, path)
	return nil
}

func (f *fakeRemote) QueryByField(_ context.Context, collection, field string, value any) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return nil, err
	}
	var out []models.Document
	for path, d := range f.docs {
		rest, ok := strings.CutPrefix(path, collection+"/")
		if !ok || strings.Contains(rest, "/") {
			continue
		}
		if d[field] == value {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

func (f *fakeRemote) UpdateFields(_ context.Context, path string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	d, ok := f.docs[path]
	if !ok {
		return client.ErrNotFound
	}
	f.writes++
	for k, v := range fields {
		d[k] = v
	}
	return nil
}

func (f *fakeRemote) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.down()
}

func copyDoc(d models.Document) models.Document {
	out := make(models.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// fakeClient adds the session calls on top of fakeRemote.
type fakeClient struct {
	*fakeRemote
	token    string
	loginErr error
}

func (f *fakeClient) Register(_ context.Context, email, _, displayName string) (string, error) {
	id := "user-" + email
	f.put(models.UserPath(id), (&models.User{ID: id, Email: email, DisplayName: displayName}).Document())
	return id, nil
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (string, string, error) {
	if f.loginErr != nil {
		return "", "", f.loginErr
	}
	f.token = "token-" + email
	return "user-" + email, f.token, nil
}

func (f *fakeClient) SetAccessToken(token string) { f.token = token }

func (f *fakeClient) AvatarUploadURL(context.Context) (string, string, error) {
	return "avatars/key", "http://upload", nil
}

func (f *fakeClient) AvatarDownloadURL(_ context.Context, key string) (string, error) {
	return "http://download/" + key, nil
}

func (f *fakeClient) Close() error { return nil }

type env struct {
	remote     *fakeRemote
	repos      *client.Repositories
	feed       *changefeed.Feed
	chores     ChoreService
	notes      NoteService
	users      UserService
	households HouseholdService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	remote := newFakeRemote()
	repos := client.NewRepositories(repotest.NewDB(t))
	feed := changefeed.New()
	logger := logging.Discard()

	users := NewUserService(remote, repos, logger)
	return &env{
		remote:     remote,
		repos:      repos,
		feed:       feed,
		chores:     NewChoreService(remote, repos, feed, logger),
		notes:      NewNoteService(remote, repos, feed, logger),
		users:      users,
		households: NewHouseholdService(remote, repos, users, logger),
	}
}
