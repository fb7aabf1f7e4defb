package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/source"
)

// App holds what commands need beyond their flags. Zero-valued hooks fall
// back to the real implementations; tests replace them.
type App struct {
	Version   string
	Commit    string
	BuildTime string

	// Interactive is true when stdout is a terminal. It gates the spinner,
	// the search form and the status watcher.
	Interactive bool

	Now        func() time.Time
	LoadConfig func(path string) (*config.Config, error)
	OpenSource func(location string, opts source.Options) (source.Source, error)
	RunForm    func(form *huh.Form) error
	Theme      *contract.Theme

	flags  globalFlags
	cfg    *config.Config
	loc    *time.Location
	logger *slog.Logger
}

type globalFlags struct {
	cfgFile string
	json    bool
	verbose bool
	source  string
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Personal dashboards from published activity logs",
		Long: `tally reads the JSON datasets behind a personal site (flashcard reviews,
reading log, coding time, goals, forecasts, short posts and the post index)
and renders each page as terminal text or as JSON chart specs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	addGlobalFlags(root.PersistentFlags(), &app.flags)

	root.AddCommand(
		newAnkiCmd(app),
		newReadingCmd(app),
		newProgrammingCmd(app),
		newGoalsCmd(app),
		newForecastCmd(app),
		newThoughtsCmd(app),
		newSearchCmd(app),
		newStatusCmd(app),
		newOverviewCmd(app),
		newVersionCmd(app),
	)

	return root
}

// setup loads configuration and sets up logging before any subcommand runs.
func (a *App) setup(cmd *cobra.Command) error {
	load := a.LoadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load(a.flags.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" || a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	a.loc = loc

	a.logger.Debug("config loaded", "base_url", cfg.Site.BaseURL, "timezone", loc.String())
	return nil
}

func (a *App) now() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().In(a.loc)
}

func (a *App) theme() contract.Theme {
	if a.Theme != nil {
		return *a.Theme
	}
	return contract.DefaultTheme()
}

func (a *App) observer() service.UseCaseObserver {
	return service.NewLogUseCaseObserver(a.logger)
}

// source opens the dataset a subcommand reads. --source replaces the
// configured location and follows the same site-path rule.
func (a *App) source(dataset string) (source.Source, error) {
	var location string
	if a.flags.source != "" {
		location = a.cfg.Resolve(a.flags.source)
	} else {
		loc, err := a.cfg.DatasetLocation(dataset)
		if err != nil {
			return nil, err
		}
		location = loc
	}
	return a.open(location)
}

// datasetSource opens a dataset at its configured location, ignoring --source.
func (a *App) datasetSource(dataset string) (source.Source, error) {
	location, err := a.cfg.DatasetLocation(dataset)
	if err != nil {
		return nil, err
	}
	return a.open(location)
}

func (a *App) open(location string) (source.Source, error) {
	open := a.OpenSource
	if open == nil {
		open = source.Open
	}
	src, err := open(location, source.Options{
		Timeout:    a.cfg.Site.Timeout,
		Observer:   source.NewLogObserver(a.logger),
		Forecaster: a.cfg.Forecast.Forecaster,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	return src, nil
}

func (a *App) programmingOptions() service.ProgrammingOptions {
	p := a.cfg.Programming
	return service.ProgrammingOptions{
		StatExclude:   p.StatExclude,
		ManualExclude: p.ManualExclude,
		AIExclude:     p.AIExclude,
		DailyExclude:  p.DailyExclude,
	}
}
