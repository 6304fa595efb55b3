// Package timex holds time helpers shared by the config loaders.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDuration is returned when a config value cannot be read as a duration.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration wraps time.Duration so config files may carry either a Go duration
// string ("10s", "1m30s") or an integer number of nanoseconds.
//
// It implements json.Unmarshaler, yaml.Unmarshaler and
// encoding.TextUnmarshaler; the last is what the TOML decoder uses for string
// values.
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a quoted duration string or a bare integer.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, string(b))
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDuration, string(b))
	}
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, string(text))
	}
	d.Duration = parsed
	return nil
}

// UnmarshalYAML accepts a duration string or an integer scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidDuration, value.Line)
	}
	if value.Tag == "!!int" {
		n, err := strconv.ParseInt(value.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDuration, value.Value)
		}
		d.Duration = time.Duration(n)
		return nil
	}
	return d.UnmarshalText([]byte(value.Value))
}
