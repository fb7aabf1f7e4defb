package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

func addGlobalFlags(fs *pflag.FlagSet, f *globalFlags) {
	fs.StringVar(&f.cfgFile, "config", "", "config file (default: ./.tally.yaml or ~/.config/tally/.tally.yaml)")
	fs.BoolVar(&f.json, "json", false, "print the page as indented JSON")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&f.source, "source", "", "read the dataset from this URL, path or sqlite: location")
}

// timeValue is an RFC 3339 timestamp flag. The zero value means unset.
type timeValue struct {
	t *time.Time
}

var _ pflag.Value = timeValue{}

func newTimeValue(p *time.Time) timeValue {
	return timeValue{t: p}
}

func (v timeValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v timeValue) Set(s string) error {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("expected RFC 3339 time such as 2026-03-10T23:30:00Z: %w", err)
	}
	*v.t = t
	return nil
}

func (timeValue) Type() string { return "time" }
