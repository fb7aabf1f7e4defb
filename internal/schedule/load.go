package schedule

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTable is returned when a timetable fails validation.
var ErrInvalidTable = errors.New("invalid timetable")

// LoadTable reads a YAML timetable. A missing zone defaults to the zone of
// DefaultTable.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading timetable: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes and validates a YAML timetable.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("%w: parsing: %v", ErrInvalidTable, err)
	}
	if t.Zone == "" {
		t.Zone = DefaultTable().Zone
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}
