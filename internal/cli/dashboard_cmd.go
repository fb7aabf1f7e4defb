package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/source"
)

func newAnkiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "anki",
		Short: "Flashcard review statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(config.DatasetAnki)
			if err != nil {
				return err
			}
			svc := service.NewAnkiService(src, app.theme(), app.observer())
			return showPage(cmd, app, "Loading reviews", svc.GetAnki, formatter.FormatAnki)
		},
	}
}

func newReadingCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reading",
		Short: "Books read this year, or every year with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				src, err := app.source(config.DatasetReadingAll)
				if err != nil {
					return err
				}
				svc := service.NewReadingService(nil, src, app.theme(), app.observer())
				return showPage(cmd, app, "Loading reading history", svc.GetReadingHistory, formatter.FormatReadingHistory)
			}
			src, err := app.source(config.DatasetReading)
			if err != nil {
				return err
			}
			svc := service.NewReadingService(src, nil, app.theme(), app.observer())
			return showPage(cmd, app, "Loading reading log", svc.GetReading, formatter.FormatReading)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "show every year of the reading log")
	return cmd
}

func newProgrammingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "programming",
		Short: "Tracked coding time by language and tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(config.DatasetProgramming)
			if err != nil {
				return err
			}
			svc := service.NewProgrammingService(src, app.theme(), app.programmingOptions(), app.observer())
			return showPage(cmd, app, "Loading coding time", svc.GetProgramming, formatter.FormatProgramming)
		},
	}
}

func newGoalsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Yearly goals by status and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(config.DatasetGoals)
			if err != nil {
				return err
			}
			svc := service.NewGoalsService(src, app.theme(), app.observer())
			return showPage(cmd, app, "Loading goals", svc.GetGoals, formatter.FormatGoals)
		},
	}
}

func newForecastCmd(app *App) *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecasting accuracy and calibration",
		Long: `Show forecasting accuracy and calibration. With --export, write the
aggregate stats document instead ("-" writes it to stdout).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(config.DatasetForecast)
			if err != nil {
				return err
			}
			svc := service.NewForecastService(src, app.theme(), app.observer())
			if export == "" {
				return showPage(cmd, app, "Loading predictions", svc.GetForecast, formatter.FormatForecast)
			}
			return exportForecast(cmd, app, svc, export)
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "write the stats document to `FILE`")
	return cmd
}

func exportForecast(cmd *cobra.Command, app *App, svc service.ForecastService, path string) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("creating export: %w", createErr)
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		w = f
	}

	err = app.withSpinner(cmd, "Loading predictions", func(ctx context.Context) error {
		return svc.ExportStats(ctx, w, app.now())
	})
	if err != nil {
		return err
	}
	if path != "-" {
		app.logger.Info("forecast stats exported", "path", path)
	}
	return nil
}

func newThoughtsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "thoughts",
		Short: "Short posts grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(config.DatasetThoughts)
			if err != nil {
				return err
			}
			svc := service.NewThoughtsService(src, app.observer())
			return showPage(cmd, app, "Loading thoughts", svc.GetThoughts, formatter.FormatThoughts)
		},
	}
}

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "One preview card per dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.flags.source != "" {
				return errors.New("overview reads every dataset; --source is not supported")
			}
			var srcs service.OverviewSources
			for dataset, dst := range map[string]*source.Source{
				config.DatasetProgramming: &srcs.Programming,
				config.DatasetAnki:        &srcs.Anki,
				config.DatasetReading:     &srcs.Reading,
				config.DatasetForecast:    &srcs.Forecast,
				config.DatasetGoals:       &srcs.Goals,
			} {
				src, err := app.datasetSource(dataset)
				if err != nil {
					return err
				}
				*dst = src
			}
			svc := service.NewOverviewService(srcs, app.programmingOptions(), app.theme(), app.observer())
			return showPage(cmd, app, "Loading datasets", svc.GetOverview, formatter.FormatOverview)
		},
	}
}
