package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdrpinto/longpath"
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/internal/config"
	"github.com/pdrpinto/longpath/internal/logging"
	"github.com/pdrpinto/longpath/internal/mapfile"
	"github.com/pdrpinto/longpath/navgrid"
)

var ErrBadArgument = errors.New("bad argument")

// environment is what every command needs: configuration, a logger, the
// passability classes and a map.
type environment struct {
	config    config.Config
	logger    *zap.Logger
	registry  *navgrid.Registry
	grid      *navgrid.Grid[navgrid.NavcellData]
	passClass navgrid.PassClass
}

func loadEnvironment(configFile, mapFile, className string) (*environment, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	env := &environment{config: cfg, logger: logger, registry: registry}
	if className != "" {
		if env.passClass, err = registry.Mask(className); err != nil {
			return nil, err
		}
	}
	if mapFile != "" {
		if env.grid, err = mapfile.Load(mapFile, registry); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func (env *environment) pathfinder(options ...longpath.Option) (*longpath.LongPathfinder, error) {
	options = append(env.config.Options(), options...)
	options = append(options, longpath.WithLogger(env.logger))
	pathfinder := longpath.New(options...)
	if err := pathfinder.Reload(env.grid); err != nil {
		return nil, err
	}
	return pathfinder, nil
}

// parseFloats parses n comma separated numbers.
func parseFloats(value string, n int) ([]float64, error) {
	fields := strings.Split(value, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%q: want %d comma separated numbers: %w", value, n, ErrBadArgument)
	}
	numbers := make([]float64, n)
	for index, field := range fields {
		number, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", value, ErrBadArgument)
		}
		numbers[index] = number
	}
	return numbers, nil
}

// parsePoint parses "x,z".
func parsePoint(value string) (fixed.Fixed, fixed.Fixed, error) {
	numbers, err := parseFloats(value, 2)
	if err != nil {
		return 0, 0, err
	}
	return fixed.FromFloat(numbers[0]), fixed.FromFloat(numbers[1]), nil
}
