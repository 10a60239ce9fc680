package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"storepulse/internal/client/api"
	"storepulse/internal/client/config"
	"storepulse/internal/client/services"
	"storepulse/internal/client/session"
	"storepulse/internal/client/store"
	"storepulse/internal/logging"
)

// screen identifies the view the REPL is currently on. The dispatch loop
// consults it before every guarded command, so an expired session flips the
// user back to the sign-in screen no matter what they type next.
type screen string

const (
	screenSignIn    screen = "sign-in"
	screenDashboard screen = "dashboard"
)

const defaultPeriod = "30d"

// App wires the config, services, and session store behind the REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	auth     services.AuthService
	metrics  services.MetricsService
	sessions *session.Store
	db       *store.DB

	screen screen
	period string
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the full client: local sqlite store (session persistence and
// snapshot cache), session store restored from disk, HTTP pipeline, and the
// two application services. If the local database cannot be opened the app
// still starts, with an in-memory session and no offline cache.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewDefault(os.Stderr, level)

	app := &App{
		config: cfg,
		log:    log,
		period: defaultPeriod,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	var (
		persister session.Persister
		snapshots *store.SnapshotRepo
	)
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		log.Warn(ctx, "cannot create data dir, continuing without local storage", "dir", cfg.DataDir, "error", err)
	} else {
		db, err := store.Open(ctx, cfg.DatabasePath())
		if err != nil {
			log.Warn(ctx, "cannot open local database, continuing without local storage", "error", err)
		} else {
			app.db = db
			persister = store.NewSessionPersister(db.Metadata())
			snapshots = db.Snapshots()
		}
	}
	if persister == nil {
		persister = session.NewMemPersister()
	}

	app.sessions = session.NewStore(persister, log)

	client := api.NewHTTPClient(cfg.APIBaseURL, app.sessions,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
		api.WithUnauthorizedHandler(app.sessionExpired),
	)

	var cleaner services.SnapshotCleaner
	var cache services.SnapshotCache
	if snapshots != nil {
		cleaner = snapshots
		cache = snapshots
	}
	app.auth = services.NewAuthService(client, app.sessions, cleaner, log)
	app.metrics = services.NewMetricsService(client, cache, log)

	// A restored session lands straight on the dashboard.
	if app.sessions.Authenticated() {
		app.screen = screenDashboard
	} else {
		app.screen = screenSignIn
	}

	return app, nil
}

// Close releases the local database, if one was opened.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// sessionExpired is invoked by the request pipeline after any 401. The
// session store is already cleared at that point; here we only move the UI.
func (a *App) sessionExpired() {
	if a.screen != screenSignIn {
		a.screen = screenSignIn
		printlnFn(warnStyle.Render("Session expired, please sign in again."))
	}
}

// guard re-checks authentication right before a guarded command runs.
// It never trusts the current screen: the session may have been cleared
// between dispatches.
func (a *App) guard() bool {
	if a.sessions.Authenticated() {
		return true
	}
	a.screen = screenSignIn
	printlnFn("Please sign in first (try 'login' or 'register').")
	return false
}

func (a *App) prompt() string {
	if a.screen == screenDashboard {
		name := "merchant"
		if u := a.sessions.User(); u != nil && u.Name != "" {
			name = u.Name
		}
		return name + "@" + a.period
	}
	return "sign-in"
}
