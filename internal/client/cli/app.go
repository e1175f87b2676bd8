package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/scanboard/internal/client/client"
	"github.com/dmitrijs2005/scanboard/internal/client/config"
	"github.com/dmitrijs2005/scanboard/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/scanboard/internal/client/services"
	"github.com/dmitrijs2005/scanboard/internal/client/tui"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/dmitrijs2005/scanboard/internal/filex"
	"github.com/dmitrijs2005/scanboard/internal/logging"
)

// App holds the services behind every command.
type App struct {
	config *config.Config
	log    logging.Logger
	api    *client.HTTPClient

	authService       services.AuthService
	eventService      services.EventService
	ipService         services.IPService
	scanService       services.ScanService
	monitoringService services.MonitoringService
	devService        services.DevService

	reader *bufio.Reader
	out    io.Writer

	db      *sql.DB
	logFile io.Closer
}

// NewApp prepares the data directory, the log file and the local database
// and builds the API services on top of them.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	c.DataDir = dir

	logFile, err := filex.OpenAppend(c.LogPath())
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	log, err := logging.New(logFile, c.LogFormat, c.LogLevel)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath(), log)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	app := &App{
		config:  c,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
		db:      db,
		logFile: logFile,
	}

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	auth, err := services.NewAuthService(ctx, api, tokens.NewSQLiteStore(db, log), log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.api = api
	app.authService = auth
	app.eventService = services.NewEventService(api, auth)
	app.ipService = services.NewIPService(api, auth)
	app.scanService = services.NewScanService(api, auth)
	app.monitoringService = services.NewMonitoringService(api, auth)
	app.devService = services.NewDevService(api, auth)

	log.Debug(ctx, "app started", "api", api.BaseURL(), "data_dir", c.DataDir)
	return app, nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// Deps exposes the services to the dashboard.
func (a *App) Deps() tui.Deps {
	return tui.Deps{
		Auth:           a.authService,
		Events:         a.eventService,
		IPs:            a.ipService,
		Scans:          a.scanService,
		Monitoring:     a.monitoringService,
		Dev:            a.devService,
		PageSize:       a.config.PageSize,
		HealthInterval: a.config.HealthCheckInterval,
		Log:            a.log,
	}
}

// RunDashboard blocks until the user leaves the dashboard.
func (a *App) RunDashboard(ctx context.Context) error {
	a.log.Info(ctx, "dashboard started")
	defer a.log.Info(ctx, "dashboard stopped")
	return tui.Run(ctx, a.Deps())
}

// requireLogin fails fast instead of letting the server answer 401.
func (a *App) requireLogin() error {
	if !a.authService.IsAuthenticated() {
		return fmt.Errorf("%w, run `scanboard login` first", common.ErrNotLoggedIn)
	}
	return nil
}
