package cli

import (
	"fmt"
	"log/slog"

	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/pkg/config"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/generator"
)

// LoadConfig reads the config file and layers the --set overrides on top.
func LoadConfig(path string, overrides []string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	pairs, err := config.ParseOverrides(overrides)
	if err != nil {
		return cfg, err
	}
	return cfg.Apply(pairs)
}

func createLogger(level string, json bool) *slog.Logger {
	return logging.New(logging.ParseLevel(level), json)
}

// request is a resolved run: what to sort, how, and how fast.
type request struct {
	algorithm domain.Algorithm
	values    []int
	speed     int
}

func resolveRequest(cfg config.Config, opts RunOptions) (request, error) {
	name := opts.Algorithm
	if name == "" {
		name = cfg.Algorithm
	}
	algorithm, err := domain.ParseAlgorithm(name)
	if err != nil {
		return request{}, err
	}

	values := opts.Values
	if len(values) == 0 {
		size := opts.Size
		if size <= 0 {
			size = cfg.Size.Default
		}
		values = generator.New(cfg, opts.Seed).Array(size)
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = cfg.Speed.Default
	}
	if clamped := cfg.Speed.Clamp(speed); clamped != speed {
		return request{}, fmt.Errorf("speed %d outside [%d, %d]", speed, cfg.Speed.Min, cfg.Speed.Max)
	}

	return request{algorithm: algorithm, values: values, speed: speed}, nil
}
