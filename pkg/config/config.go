// Package config holds the operator-tunable bounds of the visualizer:
// array size, speed range, per-step delay range and engine plumbing knobs.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Bounds is an inclusive integer range with a default inside it.
type Bounds struct {
	Min     int `mapstructure:"min" yaml:"min"`
	Max     int `mapstructure:"max" yaml:"max"`
	Default int `mapstructure:"default" yaml:"default"`
}

// Clamp forces v into [Min, Max].
func (b Bounds) Clamp(v int) int {
	return max(b.Min, min(v, b.Max))
}

func (b Bounds) validate(name string) error {
	if b.Min > b.Max {
		return fmt.Errorf("%s: min %d is greater than max %d", name, b.Min, b.Max)
	}
	if b.Default < b.Min || b.Default > b.Max {
		return fmt.Errorf("%s: default %d outside [%d, %d]", name, b.Default, b.Min, b.Max)
	}
	return nil
}

// DelayRange maps the slowest and fastest speed to a per-step delay.
type DelayRange struct {
	Min time.Duration `mapstructure:"min" yaml:"min"`
	Max time.Duration `mapstructure:"max" yaml:"max"`
}

// ValueRange is the half-open range [Min, Max) used by the array generator.
type ValueRange struct {
	Min int `mapstructure:"min" yaml:"min"`
	Max int `mapstructure:"max" yaml:"max"`
}

// Config is the full configuration. Zero values are not meaningful; start from Default.
type Config struct {
	Algorithm string     `mapstructure:"algorithm" yaml:"algorithm"`
	Size      Bounds     `mapstructure:"size" yaml:"size"`
	Speed     Bounds     `mapstructure:"speed" yaml:"speed"`
	Delay     DelayRange `mapstructure:"delay" yaml:"delay"`
	Values    ValueRange `mapstructure:"values" yaml:"values"`

	// PollInterval bounds how long a paused run sleeps between checks.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	// EventBuffer is the capacity of a run's event channel.
	EventBuffer int `mapstructure:"event_buffer" yaml:"event_buffer"`
	// FrameInterval throttles terminal redraws.
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
	// LockTTL is the lease taken on the run lock for each run.
	LockTTL time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Algorithm:     "bubble",
		Size:          Bounds{Min: 10, Max: 200, Default: 50},
		Speed:         Bounds{Min: 1, Max: 200, Default: 100},
		Delay:         DelayRange{Min: time.Millisecond, Max: 500 * time.Millisecond},
		Values:        ValueRange{Min: 5, Max: 505},
		PollInterval:  50 * time.Millisecond,
		EventBuffer:   256,
		FrameInterval: 16 * time.Millisecond,
		LockTTL:       10 * time.Minute,
	}
}

// Validate rejects inverted or empty ranges.
func (c Config) Validate() error {
	if err := c.Size.validate("size"); err != nil {
		return err
	}
	if c.Size.Min < 0 {
		return fmt.Errorf("size: min must not be negative")
	}
	if err := c.Speed.validate("speed"); err != nil {
		return err
	}
	if c.Delay.Min < 0 || c.Delay.Min > c.Delay.Max {
		return fmt.Errorf("delay: invalid range [%s, %s]", c.Delay.Min, c.Delay.Max)
	}
	if c.Values.Min >= c.Values.Max {
		return fmt.Errorf("values: empty range [%d, %d)", c.Values.Min, c.Values.Max)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("event_buffer must not be negative")
	}
	return nil
}

// Load reads a YAML file and layers it over Default.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Apply layers dotted overrides (e.g. "speed.max=300", "delay.min=0s") over c.
func (c Config) Apply(overrides map[string]string) (Config, error) {
	if len(overrides) == 0 {
		return c, nil
	}
	raw := make(map[string]any)
	for key, value := range overrides {
		parts := strings.Split(strings.TrimSpace(key), ".")
		node := raw
		for _, p := range parts[:len(parts)-1] {
			next, ok := node[p].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[p] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}
	if err := decode(raw, &c); err != nil {
		return c, fmt.Errorf("invalid override: %w", err)
	}
	return c, c.Validate()
}

// ParseOverrides splits "key=value" pairs as given on the command line.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("override %q is not key=value", pair)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

func decode(raw map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
