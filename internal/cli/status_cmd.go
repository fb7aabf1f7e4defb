package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/schedule"
)

func newStatusCmd(app *App) *cobra.Command {
	var watch bool
	var at time.Time

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current slot of the weekly timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := app.scheduleTable()
			if err != nil {
				return err
			}

			if watch {
				if !app.Interactive || app.flags.json {
					return errors.New("--watch needs a terminal and text output")
				}
				p := tea.NewProgram(newStatusModel(table, app.now),
					tea.WithContext(cmd.Context()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				_, err := p.Run()
				return err
			}

			when := at
			if when.IsZero() {
				when = app.now()
			}
			st := schedule.Evaluate(table, when)
			return app.render(cmd, st, func() string { return formatter.FormatScheduleStatus(st) })
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep the status line updated")
	cmd.Flags().Var(newTimeValue(&at), "at", "evaluate at this RFC 3339 time instead of now")
	cmd.MarkFlagsMutuallyExclusive("watch", "at")
	return cmd
}

// scheduleTable loads the configured timetable, or the built-in one. A
// configured zone replaces the table's own.
func (a *App) scheduleTable() (schedule.Table, error) {
	table := schedule.DefaultTable()
	if path := a.cfg.Schedule.File; path != "" {
		t, err := schedule.LoadTable(path)
		if err != nil {
			return schedule.Table{}, err
		}
		table = t
	}
	if zone := a.cfg.Schedule.Zone; zone != "" {
		table.Zone = zone
		if err := table.Validate(); err != nil {
			return schedule.Table{}, err
		}
	}
	return table, nil
}

type statusKeyMap struct {
	Quit key.Binding
}

var statusKeys = statusKeyMap{
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type tickMsg time.Time

// statusModel re-evaluates the timetable once per schedule.PollInterval.
type statusModel struct {
	table  schedule.Table
	now    func() time.Time
	at     time.Time
	status schedule.Status
}

func newStatusModel(table schedule.Table, now func() time.Time) statusModel {
	m := statusModel{table: table, now: now}
	m.evaluate()
	return m
}

func (m *statusModel) evaluate() {
	m.at = m.now()
	m.status = schedule.Evaluate(m.table, m.at)
}

func tick() tea.Cmd {
	return tea.Tick(schedule.PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m statusModel) Init() tea.Cmd {
	return tick()
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, statusKeys.Quit) {
			return m, tea.Quit
		}
	case tickMsg:
		m.evaluate()
		return m, tick()
	}
	return m, nil
}

func (m statusModel) View() string {
	help := statusKeys.Quit.Help()
	footer := fmt.Sprintf("updated %s · %s %s", m.at.Format("15:04"), help.Key, help.Desc)
	return formatter.FormatScheduleStatus(m.status) + formatter.Dim(footer) + "\n"
}
