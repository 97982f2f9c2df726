package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/services"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/session"
	"github.com/dmitrijs2005/receiptkeeper/internal/filex"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
)

// Screen is the view the user is on. Session events move between them.
type Screen string

const (
	ScreenStart        Screen = "start"
	ScreenLogin        Screen = "login"
	ScreenTransactions Screen = "transactions"
)

const databaseFile = "receiptkeeper.db"

// tokenInfo exposes details of the stored credential.
type tokenInfo interface {
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

type deps struct {
	session      *session.Store
	tokens       tokenInfo
	auth         services.AuthService
	transactions services.TransactionService
	scans        services.ScanService
	reports      services.ReportService
	logger       logging.Logger
	in           io.Reader
	out          io.Writer
}

type App struct {
	session      *session.Store
	tokens       tokenInfo
	auth         services.AuthService
	transactions services.TransactionService
	scans        services.ScanService
	reports      services.ReportService
	logger       logging.Logger

	reader *bufio.Reader
	out    io.Writer
	screen Screen

	openFile func(name string) (io.ReadCloser, error)
	now      func() time.Time

	db          *sql.DB
	unsubscribe func()
}

var _ session.Navigator = (*App)(nil)

// NewApp opens the local database in cfg.DataDir and wires the API client,
// session store and services. Call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, databaseFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	gw := client.NewGateway(cfg.BaseURL, client.WithLogger(logger))
	api := client.NewHTTPClient(gw)
	tokens := metadata.NewTokenStore(db)
	sess := session.NewStore(tokens, api, logger)

	a := newApp(deps{
		session:      sess,
		tokens:       tokens,
		auth:         services.NewAuthService(api, sess),
		transactions: services.NewTransactionService(api, sess),
		scans:        services.NewScanService(api, sess, logger),
		reports:      services.NewReportService(api, sess),
		logger:       logger,
		in:           os.Stdin,
		out:          os.Stdout,
	})
	a.db = db
	return a, nil
}

func newApp(d deps) *App {
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	a := &App{
		session:      d.session,
		tokens:       d.tokens,
		auth:         d.auth,
		transactions: d.transactions,
		scans:        d.scans,
		reports:      d.reports,
		logger:       d.logger,
		reader:       bufio.NewReader(d.in),
		out:          d.out,
		screen:       ScreenStart,
		openFile:     func(name string) (io.ReadCloser, error) { return os.Open(name) },
		now:          time.Now,
	}
	a.unsubscribe = a.session.Subscribe(session.NavigationAdapter(a))
	return a
}

// Run restores the previous session and serves commands until the user
// exits, input ends or ctx is canceled. Only a configuration error is
// returned; everything else is reported and the loop goes on.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to receiptkeeper (type 'help' for commands)")
	if err := a.session.Hydrate(ctx); err != nil {
		if errors.Is(err, client.ErrConfiguration) {
			return err
		}
		a.logger.Warn(ctx, "session not restored", "error", err)
	}
	return runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) ToHome(ctx context.Context) {
	a.screen = ScreenTransactions
	st := a.session.State()
	if st.User != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", st.User.Username)
	}
}

func (a *App) ToLogin(ctx context.Context) {
	a.screen = ScreenLogin
	fmt.Fprintln(a.out, "Not logged in. Use 'login' or 'register'.")
}

func (a *App) sessionState() session.State {
	return a.session.State()
}

func (a *App) revalidate(ctx context.Context) bool {
	a.session.FetchUser(ctx)
	st := a.session.State()
	if !st.Authenticated() {
		return true
	}
	if st.User != nil {
		return false
	}
	a.logger.Info(ctx, "token refused by the API, logging out")
	a.session.Logout(ctx)
	return true
}

func (a *App) status() string {
	st := a.session.State()
	if st.User != nil {
		return fmt.Sprintf("(%s) %s", st.User.Username, a.screen)
	}
	return string(a.screen)
}
