package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
)

// withSpinner runs fn while a spinner draws on stderr. The spinner only shows
// on a terminal and never with --json.
func (a *App) withSpinner(cmd *cobra.Command, message string, fn func(ctx context.Context) error) error {
	if a.Interactive && !a.flags.json {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
		defer stop()
	}
	return fn(cmd.Context())
}

// render prints v as indented JSON with --json, and text() otherwise.
func (a *App) render(cmd *cobra.Command, v any, text func() string) error {
	if a.flags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text())
	return err
}

// showPage fetches and renders one dashboard.
func showPage[T any](cmd *cobra.Command, app *App, message string,
	get func(context.Context, time.Time) (*T, error), format func(*T) string) error {
	var page *T
	err := app.withSpinner(cmd, message, func(ctx context.Context) (err error) {
		page, err = get(ctx, app.now())
		return err
	})
	if err != nil {
		return err
	}
	return app.render(cmd, page, func() string { return format(page) })
}
