package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/forms"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/session"
	"github.com/dmitrijs2005/authdemo/internal/client/tui"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// runTUI is a test seam for the full-screen view.
var runTUI = tui.Run

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	authService services.AuthService
	container   *session.Container
	loginForm   *forms.LoginForm
	resendForm  *forms.ResendForm
	reader      *bufio.Reader
}

// NewApp opens the token store at c.StorePath and builds the API client for
// c.APIBaseURL. Every request of the process goes through that one client.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StorePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, l)

	a := newApp(c, l, as, services.NewTokenStore(db))
	a.db = db
	return a, nil
}

func newApp(c *config.Config, l logging.Logger, as services.AuthService, ts services.TokenStore) *App {
	container := session.NewContainer(as, ts, l)
	return &App{
		config:      c,
		log:         l,
		authService: as,
		container:   container,
		loginForm:   forms.NewLoginForm(as, container.SignIn, l),
		resendForm:  forms.NewResendForm(as, l),
		reader:      bufio.NewReader(os.Stdin),
	}
}

// Run restores the stored session, if any, and starts the configured view.
// It returns when the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	if err := a.container.Bootstrap(ctx); err != nil {
		return err
	}

	if a.config.Interface == config.InterfaceTUI {
		return runTUI(ctx, a.container, a.loginForm, a.resendForm)
	}

	a.Root(ctx)
	return nil
}

// Close cancels in-flight submissions and releases the API client and the
// store.
func (a *App) Close(ctx context.Context) {
	a.loginForm.Reset()
	a.resendForm.Reset()

	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "close store", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.container.IsAuthenticated()
}
