package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/client"
	"github.com/dmitrijs2005/bmic/internal/client/config"
	"github.com/dmitrijs2005/bmic/internal/client/repositories/kv"
	"github.com/dmitrijs2005/bmic/internal/client/services"
	"github.com/dmitrijs2005/bmic/internal/filex"
	"github.com/dmitrijs2005/bmic/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type avatarUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type App struct {
	config    *config.Config
	store     services.SessionStore
	persister *services.Persister
	lookup    pinger
	avatars   avatarUploader
	closeDB   func() error
	log       logging.Logger

	mu        sync.Mutex
	mode      Mode
	closeOnce sync.Once

	in  *bufio.Scanner
	out io.Writer
	now func() time.Time
}

// NewApp opens local storage, restores the saved session and wires the
// remote clients.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("error preparing storage: %w", err)
	}

	repo, closeDB, err := openStorage(ctx, c.StorageBackend, path)
	if err != nil {
		log.Error(ctx, "error initializing storage", "backend", c.StorageBackend, "path", path, "error", err)
		return nil, err
	}

	lookup := client.NewHTTPLookupClient(c.RemoteURL, c.RequestTimeout)
	store := services.NewSessionStore(lookup, log)

	p := services.NewPersister(store, repo, log)
	p.Restore(ctx)
	p.Start()

	return &App{
		config:    c,
		store:     store,
		persister: p,
		lookup:    lookup,
		avatars:   client.NewAvatarUploader(c.ServerBaseURL, c.RequestTimeout),
		closeDB:   closeDB,
		log:       log,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
	}, nil
}

func openStorage(ctx context.Context, backend, path string) (kv.Repository, func() error, error) {
	switch backend {
	case config.StorageFile:
		return kv.NewFileRepository(path), func() error { return nil }, nil
	default:
		db, err := client.InitDatabase(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewSQLiteRepository(db), db.Close, nil
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run blocks in the REPL until the user exits, then flushes the session.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close(context.Background())

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, titleStyle.Render("Welcome to BMIC CLI")+" "+subtleStyle.Render("(type 'help' for commands)"))
	runREPL(ctx, a, a.getStatus, a.in)
}

// Close stops the persister, waiting for the last snapshot, and closes the
// database. Only the first call does anything.
func (a *App) Close(ctx context.Context) {
	a.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := a.persister.Close(ctx); err != nil {
			a.log.Warn(ctx, "session not flushed", "error", err)
		}
		if a.closeDB != nil {
			if err := a.closeDB(); err != nil {
				a.log.Warn(ctx, "error closing storage", "error", err)
			}
		}
	})
}

func (a *App) isSignedIn() bool {
	return a.store.State().CurrentUser != nil
}

func (a *App) getStatus() string {
	st := a.store.State()

	s := ""
	switch {
	case st.CurrentUser != nil:
		s = st.CurrentUser.Email + " "
	case st.IsGuest:
		s = "guest "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.lookup.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
