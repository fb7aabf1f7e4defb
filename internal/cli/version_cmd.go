package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCmd(app *App) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   orUnknown(app.Version),
				Commit:    orUnknown(app.Commit),
				Built:     orUnknown(app.BuildTime),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return err
			}
			return app.render(cmd, info, func() string {
				return fmt.Sprintf("tally version %s\n  commit:     %s\n  built:      %s\n  go version: %s\n  platform:   %s\n",
					info.Version, info.Commit, info.Built, info.GoVersion, info.Platform)
			})
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version string only")
	return cmd
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
