package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/search"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/source"
)

func newSearchCmd(app *App) *cobra.Command {
	var tag string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Search blog posts",
		Long: `Search blog posts. Every term must appear in the title, tags or content.
With no terms and no --tag the newest post and the archive are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && !app.Interactive {
				return errors.New("--interactive needs a terminal")
			}
			src, err := app.source(config.DatasetSearch)
			if err != nil {
				return err
			}

			var records []domain.Record
			err = app.withSpinner(cmd, "Loading posts", func(ctx context.Context) (err error) {
				records, err = src.Fetch(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("loading search data: %w", err)
			}

			query := strings.Join(args, " ")
			if interactive {
				tags := search.Tags(search.EntriesFromRecords(records))
				if err := app.runForm(searchForm(&query, &tag, tags)); err != nil {
					return err
				}
			}

			svc := service.NewSearchService(source.Static{Label: src.Name(), Records: records}, app.highlighter(), app.observer())
			resp, err := svc.Query(cmd.Context(), query, tag)
			if err != nil {
				return err
			}
			return app.render(cmd, resp, func() string { return formatter.FormatSearch(resp) })
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only posts with this tag")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the query and tag in a form")
	return cmd
}

// highlighter marks hits for the terminal, or as HTML spans for --json
// consumers that render on the site.
func (a *App) highlighter() search.Highlighter {
	if a.flags.json {
		return search.HTMLHighlighter()
	}
	return formatter.TerminalHighlighter()
}

func (a *App) runForm(form *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(form)
	}
	return form.Run()
}

// searchForm asks for the query and an optional tag. Both start from the
// values given on the command line.
func searchForm(query, tag *string, tags []string) *huh.Form {
	options := append([]huh.Option[string]{huh.NewOption("Any tag", "")}, huh.NewOptions(tags...)...)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Placeholder("terms, all must match").
				Value(query),
			huh.NewSelect[string]().
				Title("Tag").
				Options(options...).
				Value(tag),
		),
	).WithTheme(tallyHuhTheme()).WithShowHelp(false)
}

// tallyHuhTheme returns a huh theme matching the formatter palette.
func tallyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
