package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelfscan/internal/catalog"
	"github.com/five82/shelfscan/internal/config"
	"github.com/five82/shelfscan/internal/prefs"
	"github.com/five82/shelfscan/internal/scan"
	"github.com/five82/shelfscan/internal/session"
	"github.com/five82/shelfscan/internal/ui"
)

// Options configure a shelfscan session.
type Options struct {
	ConfigPath   string
	PrefsPath    string        // empty uses default ~/.config/shelfscan/prefs.toml
	APIURL       string        // overrides api_url when set
	Device       string        // overrides scan_device when set
	RefreshEvery time.Duration // background shelf refresh; zero uses default, negative disables
}

// Env holds the wired components shared by the interactive session and the
// headless commands.
type Env struct {
	Config     config.Config
	Logger     *slog.Logger
	Client     *catalog.Client
	Controller *session.Controller
	Bus        *scan.Bus

	closers []io.Closer
}

// Setup loads configuration and wires the catalog client, session controller
// and scan bus. When logOut is nil the logger writes to the configured log
// file; otherwise it writes to logOut.
func Setup(opts Options, logOut io.Writer) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.Device != "" {
		cfg.ScanDevice = opts.Device
	}

	env := &Env{Config: cfg}

	if logOut == nil {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, f)
		logOut = f
	}
	logger, err := NewLogger(logOut, cfg.LogLevel)
	if err != nil {
		_ = env.Close()
		return nil, err
	}
	env.Logger = logger

	client, err := catalog.NewClient(cfg.APIURL, catalog.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	env.Client = client
	env.Controller = session.New(client,
		session.WithLogger(logger),
		session.WithDedupeWindow(cfg.DedupeWindow),
	)
	env.Bus = scan.NewBus()
	return env, nil
}

// Close closes the bus and any files opened by Setup.
func (e *Env) Close() error {
	var errs []error
	if e.Bus != nil {
		if err := e.Bus.Close(); err != nil && !errors.Is(err, scan.ErrBusClosed) {
			errs = append(errs, err)
		}
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// StartDevice opens the configured scan device and publishes its lines on
// the bus until ctx is cancelled. It is a no-op when no device is set.
func (e *Env) StartDevice(ctx context.Context) error {
	if e.Config.ScanDevice == "" {
		return nil
	}
	f, err := scan.OpenDevice(e.Config.ScanDevice)
	if err != nil {
		return err
	}
	e.closers = append(e.closers, f)

	src := scan.NewLineSource(f, e.Config.ScanDevice)
	e.Logger.Info("Scan device attached", "device", src.Name())
	go func() {
		if err := src.Run(ctx, e.Bus); err != nil {
			e.Logger.Error("Scan device stopped", "device", src.Name(), "error", err)
			return
		}
		e.Logger.Info("Scan device closed", "device", src.Name())
	}()
	return nil
}

// Run boots the interactive session until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	slog.SetDefault(env.Logger)

	if _, err := env.Bus.Subscribe("session", env.Controller.ScanHandler(ctx)); err != nil {
		return fmt.Errorf("subscribe session: %w", err)
	}
	if err := env.StartDevice(ctx); err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	// Populate shelves before the first frame; failure is shown as offline.
	env.Controller.LoadShelves(ctx)
	StartShelfPoller(ctx, env.Controller, env.Logger, opts.RefreshEvery)

	env.Logger.Info("Session started", "api_url", env.Client.BaseURL(), "device", env.Config.ScanDevice)
	err = ui.Run(ui.Options{
		Context:         ctx,
		Controller:      env.Controller,
		Bus:             env.Bus,
		APIURL:          env.Client.BaseURL(),
		ThemeName:       userPrefs.Theme,
		ShowDescription: userPrefs.ShowDescription,
		PrefsPath:       opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	env.Logger.Info("Session ended")
	return err
}
