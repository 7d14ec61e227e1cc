package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/longpath"
	"github.com/pdrpinto/longpath/fixed"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal/reach"
)

type goalFlags struct {
	to      string
	circle  float64
	square  string
	inverse bool
	maxDist float64
}

func (f goalFlags) goal() (goal.Goal, error) {
	x, z, err := parsePoint(f.to)
	if err != nil {
		return goal.Goal{}, err
	}

	var g goal.Goal
	switch {
	case f.circle > 0 && f.square != "":
		return goal.Goal{}, fmt.Errorf("--circle and --square: %w", ErrBadArgument)
	case f.circle > 0 && f.inverse:
		g, err = goal.NewInverseCircle(x, z, fixed.FromFloat(f.circle))
	case f.circle > 0:
		g, err = goal.NewCircle(x, z, fixed.FromFloat(f.circle))
	case f.square != "":
		var extents []float64
		if extents, err = parseFloats(f.square, 2); err != nil {
			return goal.Goal{}, err
		}
		axis := fixed.NewVector(fixed.FromInt(1), fixed.Zero)
		hw, hh := fixed.FromFloat(extents[0]), fixed.FromFloat(extents[1])
		if f.inverse {
			g, err = goal.NewInverseSquare(x, z, axis, hw, hh)
		} else {
			g, err = goal.NewSquare(x, z, axis, hw, hh)
		}
	default:
		g = goal.NewPoint(x, z)
	}
	if err != nil {
		return goal.Goal{}, err
	}
	return g.WithMaxDist(fixed.FromFloat(f.maxDist)), nil
}

func SolveCmd() *cobra.Command {
	var (
		configFile string
		mapFile    string
		className  string
		from       string
		excludes   []string
		noCache    bool
		goalArgs   goalFlags
	)
	c := &cobra.Command{
		Use:   "solve",
		Short: "compute one long path and print its waypoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(configFile, mapFile, className)
			if err != nil {
				return err
			}
			defer env.logger.Sync()

			x0, z0, err := parsePoint(from)
			if err != nil {
				return err
			}
			target, err := goalArgs.goal()
			if err != nil {
				return err
			}
			var excluded []longpath.CircularRegion
			for _, exclude := range excludes {
				numbers, err := parseFloats(exclude, 3)
				if err != nil {
					return err
				}
				excluded = append(excluded, longpath.CircularRegion{
					X: fixed.FromFloat(numbers[0]),
					Z: fixed.FromFloat(numbers[1]),
					R: fixed.FromFloat(numbers[2]),
				})
			}

			var options []longpath.Option
			if noCache {
				options = append(options, longpath.WithJumpPointCache(false))
			}
			pathfinder, err := env.pathfinder(options...)
			if err != nil {
				return err
			}
			regions := reach.New(env.grid, env.logger)

			var path longpath.WaypointPath
			if len(excluded) > 0 {
				path, err = pathfinder.ComputePathExcluding(regions, x0, z0, target, env.passClass, excluded)
			} else {
				path, err = pathfinder.ComputePath(regions, x0, z0, target, env.passClass)
			}
			if err != nil {
				return err
			}
			printPath(cmd.OutOrStdout(), path)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	c.Flags().StringVar(&mapFile, "map", "", "map file (.txt for ascii)")
	c.Flags().StringVar(&className, "class", "default", "passability class")
	c.Flags().StringVar(&from, "from", "", "start position x,z")
	c.Flags().StringVar(&goalArgs.to, "to", "", "goal position x,z")
	c.Flags().Float64Var(&goalArgs.circle, "circle", 0, "circle goal radius")
	c.Flags().StringVar(&goalArgs.square, "square", "", "square goal half extents hw,hh")
	c.Flags().BoolVar(&goalArgs.inverse, "inverse", false, "reach the outside of the circle or square")
	c.Flags().Float64Var(&goalArgs.maxDist, "max-dist", 0, "maximum distance between waypoints")
	c.Flags().StringArrayVar(&excludes, "exclude", nil, "excluded region x,z,r (repeatable)")
	c.Flags().BoolVar(&noCache, "no-cache", false, "scan linearly instead of using the jump point cache")
	_ = c.MarkFlagRequired("map")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

func printPath(out io.Writer, path longpath.WaypointPath) {
	fmt.Fprintf(out, "reached: %t\n", path.Reached)
	fmt.Fprintf(out, "cost: %s\n", path.Cost)
	fmt.Fprintln(out, "waypoints (goal first):")
	for _, waypoint := range path.Waypoints {
		fmt.Fprintf(out, "  %s, %s\n", waypoint.X, waypoint.Z)
	}
}
