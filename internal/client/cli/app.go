package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/avdeyev/shelfkeeper/internal/client/api"
	"github.com/avdeyev/shelfkeeper/internal/client/config"
	"github.com/avdeyev/shelfkeeper/internal/client/guard"
	"github.com/avdeyev/shelfkeeper/internal/client/models"
	"github.com/avdeyev/shelfkeeper/internal/client/repositories/credentials"
	"github.com/avdeyev/shelfkeeper/internal/client/session"
	"github.com/avdeyev/shelfkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionStore is the narrow session surface the screens need. The real
// session.Store satisfies it; tests provide a fake.
type sessionStore interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, creds session.Credentials) (*session.Result, error)
	Register(ctx context.Context, reg session.Registration) (*session.Result, error)
	Logout(ctx context.Context)
	UpdateCurrentUser(ctx context.Context, patch session.UserPatch) error
	Status() session.Status
	CurrentUser() *models.User
	ConsumeExpiryNotice() bool
}

type App struct {
	config  *config.Config
	session sessionStore
	api     api.Client
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
	current string
}

// NewApp wires the client together: local database, API client, session
// store. Close must be called when the app is done.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := credentials.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, log)
	creds := credentials.NewSQLiteRepository(db)
	store := session.NewStore(apiClient, creds, log,
		session.WithVerifyTimeout(cfg.VerifyTimeout))

	return &App{
		config:  cfg,
		session: store,
		api:     apiClient,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Run restores the session, lands the user on the right screen, and
// hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ShelfKeeper (type 'help' for commands)")

	if a.session.Status() == session.StatusInitializing {
		fmt.Fprintln(a.out, "Checking stored session...")
		a.session.Initialize(ctx)
	}

	if user := a.session.CurrentUser(); user != nil {
		a.Open(ctx, session.DashboardRouteFor(user.Role))
	} else {
		a.Open(ctx, guard.LoginRoute)
	}

	a.repl(ctx)
}

// Open navigates to a route path. The guard decides what actually
// happens; redirects are followed, unauthorized access renders the
// unauthorized screen in place.
func (a *App) Open(ctx context.Context, path string) {
	// A redirect chain longer than this means a route table bug.
	const maxRedirects = 4

	for range maxRedirects {
		route, ok := findRoute(path)
		if !ok {
			fmt.Fprintf(a.out, "Unknown screen: %s\n", path)
			return
		}

		decision := guard.Evaluate(route, a.session.Status(), a.session.CurrentUser())
		switch decision.Action {
		case guard.ActionLoading:
			fmt.Fprintln(a.out, "Session check in progress, try again in a moment.")
			return
		case guard.ActionRedirect:
			path = decision.RedirectTo
			continue
		case guard.ActionUnauthorized:
			a.renderUnauthorized(path)
			return
		case guard.ActionRender:
			a.current = path
			if err := a.render(ctx, path); err != nil {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
			return
		}
	}
	fmt.Fprintf(a.out, "Too many redirects opening %s\n", path)
}

func (a *App) renderUnauthorized(path string) {
	fmt.Fprintf(a.out, "You do not have access to %s.\n", path)
	fmt.Fprintln(a.out, "Ask a librarian or administrator if you believe this is a mistake.")
}
