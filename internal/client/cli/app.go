package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmskit/dmscli/internal/client/config"
	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/session"
	"github.com/dmskit/dmscli/internal/client/store"
	"github.com/dmskit/dmscli/internal/logging"
)

// App wires the session manager, the gateway and the four entity stores
// behind the REPL commands. It is the view-binding consumer of the sync core.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Manager
	gw      *gateway.Gateway

	documents   *store.Documents
	users       *store.Users
	departments *store.Departments
	categories  *store.Categories

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(session.NewSQLiteRepository(db), log)
	if err := sess.Load(ctx); err != nil {
		db.Close()
		return nil, err
	}

	gw := gateway.New(cfg.ServerBaseURL, cfg.RequestTimeout, sess, log)
	// A 401 from any store's request ends the session for the whole
	// application; the REPL prompt then drops to the signed-out state.
	gw.OnUnauthorized(func(ctx context.Context) {
		_ = sess.SignOut(ctx)
	})

	return &App{
		config:      cfg,
		log:         log,
		session:     sess,
		gw:          gw,
		documents:   store.NewDocuments(gw, log),
		users:       store.NewUsers(gw, log),
		departments: store.NewDepartments(gw, log),
		categories:  store.NewCategories(gw, log),
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().SignedIn()
}

func (a *App) isAdmin() bool {
	s := a.session.Current()
	return s.SignedIn() && s.User.IsAdmin()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
