package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/housekeeper/internal/client/changefeed"
	"github.com/dmitrijs2005/housekeeper/internal/client/client"
	"github.com/dmitrijs2005/housekeeper/internal/client/config"
	"github.com/dmitrijs2005/housekeeper/internal/client/models"
	"github.com/dmitrijs2005/housekeeper/internal/client/notify"
	"github.com/dmitrijs2005/housekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/housekeeper/internal/client/services"
	"github.com/dmitrijs2005/housekeeper/internal/client/syncworker"
	"github.com/dmitrijs2005/housekeeper/internal/filex"
	"github.com/dmitrijs2005/housekeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	logger logging.Logger

	remote     client.Client
	repos      *client.Repositories
	auth       services.AuthService
	users      services.UserService
	households services.HouseholdService
	chores     services.ChoreService
	notes      services.NoteService
	worker     *syncworker.Worker
	scheduler  *syncworker.Scheduler
	listener   *notify.Listener

	mu           sync.RWMutex
	mode         Mode
	session      *services.Session
	stopNotify   context.CancelFunc
	reader       *bufio.Reader
	out          io.Writer
	backgroundWG sync.WaitGroup
}

// NewApp opens the local store and the server connection.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	remote, err := client.NewGRPCClient(cfg.ServerEndpointAddr)
	if err != nil {
		repos.Close()
		return nil, err
	}

	return newApp(cfg, remote, repos, logger, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, remote client.Client, repos *client.Repositories, logger logging.Logger, in io.Reader, out io.Writer) *App {
	feed := changefeed.New()
	users := services.NewUserService(remote, repos, logger)
	worker := syncworker.NewWorker(remote, repos, logger)

	a := &App{
		config:     cfg,
		logger:     logger.With("module", "cli"),
		remote:     remote,
		repos:      repos,
		auth:       services.NewAuthService(remote, repos, users, logger),
		users:      users,
		households: services.NewHouseholdService(remote, repos, users, logger),
		chores:     services.NewChoreService(remote, repos, feed, logger),
		notes:      services.NewNoteService(remote, repos, feed, logger),
		worker:     worker,
		listener:   notify.NewListener(cfg.NotificationURL, logger),
		mode:       ModeOffline,
		reader:     bufio.NewReader(in),
		out:        out,
	}
	a.scheduler = syncworker.NewScheduler("sync", worker.RunSync, remote.Ping, syncworker.SchedulerConfig{
		Interval:       cfg.SyncInterval,
		InitialBackoff: cfg.BackoffInitial,
		MaxBackoff:     cfg.BackoffMax,
	}, logger)
	return a
}

// Close stops background listeners and releases the store and connection.
func (a *App) Close() error {
	a.stopNotifications()
	return errors.Join(a.remote.Close(), a.repos.Close())
}

// Run restores a saved session, starts background work and blocks in the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Housekeeper (type 'help' for commands)")

	if s, err := a.auth.Restore(ctx); err == nil {
		a.setSession(s)
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Email)
		a.startNotifications(ctx)
	} else if !errors.Is(err, services.ErrNotSignedIn) {
		a.logger.Warn(ctx, "failed to restore session", "error", err)
	}

	bg, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.backgroundWG.Wait()
	}()

	a.goBackground(func() { a.StartOnlineStatusWatcher(bg, a.config.OnlineCheckInterval) })
	a.goBackground(func() { a.scheduler.Start(bg) })
	a.goBackground(func() { a.reportSyncResults(bg) })

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) goBackground(f func()) {
	a.backgroundWG.Add(1)
	go func() {
		defer a.backgroundWG.Done()
		f()
	}()
}

func (a *App) setSession(s *services.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
}

func (a *App) currentSession() *services.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.currentSession(); sess != nil {
		s = sess.Email + " "
	}
	s += string(a.Mode())
	return fmt.Sprintf("(%s)", s)
}

// household returns the signed-in user with a household set.
func (a *App) household(ctx context.Context) (*models.User, error) {
	return services.CurrentHousehold(ctx, a.users, a.currentSession())
}

func (a *App) accessToken(ctx context.Context) (string, error) {
	return a.repos.Metadata.GetString(ctx, metadata.KeyAccessToken)
}
