// Package config loads the YAML configuration shared by the command line
// tools.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/longpath"
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/navgrid"
)

var ErrNoClasses = errors.New("config: no passability classes")

type Config struct {
	Pathfinder PathfinderConfig `yaml:"pathfinder"`
	Log        LogConfig        `yaml:"log"`
	Classes    []ClassConfig    `yaml:"passability_classes"`
}

type PathfinderConfig struct {
	UseJumpPointCache bool `yaml:"use_jump_point_cache"`
	// Workers defaults to the number of CPUs when zero.
	Workers          int  `yaml:"workers"`
	MaxSameTurnMoves int  `yaml:"max_same_turn_moves"`
	DebugOverlay     bool `yaml:"debug_overlay"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ClassConfig describes a passability class. Omitted bounds are unbounded.
type ClassConfig struct {
	Name             string   `yaml:"name"`
	Clearance        float64  `yaml:"clearance"`
	Obstructions     string   `yaml:"obstructions"`
	MinWaterDepth    *float64 `yaml:"min_water_depth"`
	MaxWaterDepth    *float64 `yaml:"max_water_depth"`
	MaxTerrainSlope  *float64 `yaml:"max_terrain_slope"`
	MinShoreDistance *float64 `yaml:"min_shore_distance"`
	MaxShoreDistance *float64 `yaml:"max_shore_distance"`
}

func float(v float64) *float64 { return &v }

// Default mirrors navgrid.DefaultRegistry with the jump point cache on.
func Default() Config {
	return Config{
		Pathfinder: PathfinderConfig{
			UseJumpPointCache: true,
			MaxSameTurnMoves:  64,
		},
		Log: LogConfig{Level: "info"},
		Classes: []ClassConfig{
			{
				Name:            "default",
				Clearance:       0.8,
				Obstructions:    "pathfinding",
				MaxWaterDepth:   float(2),
				MaxTerrainSlope: float(1),
			},
			{
				Name:          "ship",
				Clearance:     4,
				Obstructions:  "pathfinding",
				MinWaterDepth: float(1),
			},
		},
	}
}

// Load reads filename over the defaults. An empty filename returns Default().
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	if len(cfg.Classes) == 0 {
		return Config{}, fmt.Errorf("config: %s: %w", filename, ErrNoClasses)
	}
	return cfg, nil
}

// Registry registers the configured classes in order.
func (c Config) Registry() (*navgrid.Registry, error) {
	registry := navgrid.NewRegistry()
	for _, class := range c.Classes {
		passability, err := class.passability()
		if err != nil {
			return nil, err
		}
		if _, err := registry.Register(passability); err != nil {
			return nil, fmt.Errorf("config: class %q: %w", class.Name, err)
		}
	}
	return registry, nil
}

func (c ClassConfig) passability() (navgrid.Passability, error) {
	passability := navgrid.NewPassability(c.Name)
	obstructions, err := navgrid.ParseObstructionHandling(c.Obstructions)
	if err != nil {
		return passability, fmt.Errorf("config: class %q: %w", c.Name, err)
	}
	passability.Obstructions = obstructions
	passability.Clearance = fixed.FromFloat(c.Clearance)

	for _, bound := range []struct {
		value *float64
		field *fixed.Fixed
	}{
		{c.MinWaterDepth, &passability.MinWaterDepth},
		{c.MaxWaterDepth, &passability.MaxWaterDepth},
		{c.MaxTerrainSlope, &passability.MaxTerrainSlope},
		{c.MinShoreDistance, &passability.MinShoreDistance},
		{c.MaxShoreDistance, &passability.MaxShoreDistance},
	} {
		if bound.value != nil {
			*bound.field = fixed.FromFloat(*bound.value)
		}
	}
	return passability, nil
}

// Options converts the pathfinder section to pathfinder options.
func (c Config) Options() []longpath.Option {
	options := []longpath.Option{
		longpath.WithJumpPointCache(c.Pathfinder.UseJumpPointCache),
		longpath.WithDebugOverlay(c.Pathfinder.DebugOverlay),
		longpath.WithMaxSameTurnMoves(c.Pathfinder.MaxSameTurnMoves),
	}
	if c.Pathfinder.Workers > 0 {
		options = append(options, longpath.WithWorkers(c.Pathfinder.Workers))
	}
	return options
}
