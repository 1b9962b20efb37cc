package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/config"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/repotest"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

// fakeClient is an in-memory remote that can be switched offline.
type fakeClient struct {
	mu      sync.Mutex
	docs    map[string]models.Document
	offline bool
	token   string
}

func newFakeClient() *fakeClient {
	return &fakeClient{docs: map[string]models.Document{}}
}

func (f *fakeClient) setOffline(v bool) {
	f.mu.Lock()
	f.offline = v
	f.mu.Unlock()
}

func (f *fakeClient) doc(path string) (models.Document, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[path]
	return d, ok
}

func (f *fakeClient) down() error {
	if f.offline {
		return fmt.Errorf("%w: connection refused", client.ErrUnavailable)
	}
	return nil
}

func (f *fakeClient) Get(_ context.Context, path string) (models.Document, error) {
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

func (f *fakeClient) Set(_ context.Context, path string, d models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	f.docs[path] = copyDoc(d)
	return nil
}

func (f *fakeClient) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	delete(f.docs, path)
	return nil
}

func (f *fakeClient) QueryByField(_ context.Context, collection, field string, value any) ([]models.Document, error) {
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

func (f *fakeClient) UpdateFields(_ context.Context, path string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return err
	}
	d, ok := f.docs[path]
	if !ok {
		return client.ErrNotFound
	}
	for k, v := range fields {
		d[k] = v
	}
	return nil
}

func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.down()
}

func (f *fakeClient) Register(_ context.Context, email, _, displayName string) (string, error) {
	id := "user-" + email
	f.mu.Lock()
	f.docs[models.UserPath(id)] = (&models.User{ID: id, Email: email, DisplayName: displayName}).Document()
	f.mu.Unlock()
	return id, nil
}

func (f *fakeClient) Login(_ context.Context, email, _ string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.down(); err != nil {
		return "", "", err
	}
	f.token = "token-" + email
	return "user-" + email, f.token, nil
}

func (f *fakeClient) SetAccessToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeClient) AvatarUploadURL(context.Context) (string, string, error) {
	return "avatars/key", "http://upload.invalid/avatars/key", nil
}

func (f *fakeClient) AvatarDownloadURL(_ context.Context, key string) (string, error) {
	return "http://download.invalid/" + key, nil
}

func (f *fakeClient) Close() error { return nil }

func copyDoc(d models.Document) models.Document {
	out := make(models.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type testApp struct {
	*App
	remote *fakeClient
	out    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, newFakeClient())
}

// newTestAppWith gives the app its own local store on a shared remote.
func newTestAppWith(t *testing.T, remote *fakeClient) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.NotificationURL = "ws://127.0.0.1:1/ws"

	repos := client.NewRepositories(repotest.NewDB(t))
	out := &bytes.Buffer{}
	a := newApp(cfg, remote, repos, logging.Discard(), strings.NewReader(""), out)
	t.Cleanup(a.stopNotifications)

	origPassword := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { getPassword = origPassword })

	return &testApp{App: a, remote: remote, out: out}
}

// input replaces what the prompts will read.
func (ta *testApp) input(lines ...string) {
	ta.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// signIn registers and logs in alice, then creates a household.
func (ta *testApp) signIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := ta.remote.Register(ctx, "alice@example.com", "secret", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	ta.input("alice@example.com")
	if err := ta.Login(ctx); err != nil {
		t.Fatal(err)
	}
	ta.input("Home")
	if err := ta.Household(ctx, []string{"create"}); err != nil {
		t.Fatal(err)
	}
	ta.out.Reset()
}
