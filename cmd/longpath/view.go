package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/longpath"
	"github.com/pdrpinto/longpath/goal"
	"github.com/pdrpinto/longpath/internal/reach"
	"github.com/pdrpinto/longpath/navgrid"
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleOpen    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleClosed  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// viewer draws one navcell per terminal cell, row j on line j.
type viewer struct {
	screen     tcell.Screen
	pathfinder *longpath.LongPathfinder
	regions    *reach.Regions
	grid       *navgrid.Grid[navgrid.NavcellData]
	passClass  navgrid.PassClass

	cursorI, cursorJ int
	start, target    *[2]int

	stepper  *longpath.Stepper
	snapshot longpath.StepSnapshot
	path     *longpath.WaypointPath
	message  string
}

func newViewer(screen tcell.Screen, pathfinder *longpath.LongPathfinder, regions *reach.Regions, passClass navgrid.PassClass) *viewer {
	grid := pathfinder.Grid()
	return &viewer{
		screen:     screen,
		pathfinder: pathfinder,
		regions:    regions,
		grid:       grid,
		passClass:  passClass,
		cursorI:    grid.Width() / 2,
		cursorJ:    grid.Height() / 2,
	}
}

func (v *viewer) goal() goal.Goal {
	x, z := navgrid.NavcellCenter(v.target[0], v.target[1])
	return goal.NewPoint(x, z)
}

func (v *viewer) reset() {
	v.stepper = nil
	v.snapshot = longpath.StepSnapshot{}
	v.path = nil
}

// solve computes the whole path at once.
func (v *viewer) solve() {
	if v.start == nil || v.target == nil {
		v.message = "set a start (s) and a goal (g) first"
		return
	}
	v.reset()
	x0, z0 := navgrid.NavcellCenter(v.start[0], v.start[1])
	stepper, err := v.pathfinder.NewStepper(v.regions, x0, z0, v.goal(), v.passClass)
	if err != nil {
		v.message = err.Error()
		return
	}
	v.stepper = stepper
	v.snapshot = stepper.Run()
	v.finish()
}

// step advances an animated search by one expansion, starting one if needed.
func (v *viewer) step() {
	if v.start == nil || v.target == nil {
		v.message = "set a start (s) and a goal (g) first"
		return
	}
	if v.stepper == nil || v.snapshot.Done {
		v.reset()
		x0, z0 := navgrid.NavcellCenter(v.start[0], v.start[1])
		stepper, err := v.pathfinder.NewStepper(v.regions, x0, z0, v.goal(), v.passClass)
		if err != nil {
			v.message = err.Error()
			return
		}
		v.stepper = stepper
	}
	v.snapshot = v.stepper.Step()
	if v.snapshot.Done {
		v.finish()
	} else {
		v.message = fmt.Sprintf("step %d, %d open", v.snapshot.StepIndex, len(v.snapshot.Open))
	}
}

func (v *viewer) finish() {
	path := v.snapshot.Path
	v.path = &path
	v.message = fmt.Sprintf("reached %t, cost %s, %d waypoints", path.Reached, path.Cost, len(path.Waypoints))
}

// handle applies a key and reports whether the viewer should quit.
func (v *viewer) handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.cursorI = max(v.cursorI-1, 0)
	case tcell.KeyRight:
		v.cursorI = min(v.cursorI+1, v.grid.Width()-1)
	case tcell.KeyUp:
		v.cursorJ = max(v.cursorJ-1, 0)
	case tcell.KeyDown:
		v.cursorJ = min(v.cursorJ+1, v.grid.Height()-1)
	case tcell.KeyEnter:
		v.solve()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 's':
			v.start = &[2]int{v.cursorI, v.cursorJ}
			v.reset()
		case 'g':
			v.target = &[2]int{v.cursorI, v.cursorJ}
			v.reset()
		case 'n':
			v.step()
		case 'c':
			enabled := !v.pathfinder.UsesJumpPointCache()
			v.pathfinder.SetJumpPointCache(enabled)
			v.message = fmt.Sprintf("jump point cache %t", enabled)
		}
	}
	return false
}

func (v *viewer) draw() {
	v.screen.Clear()
	for j := 0; j < v.grid.Height(); j++ {
		for i := 0; i < v.grid.Width(); i++ {
			if navgrid.IsPassable(v.grid.Get(i, j), v.passClass) {
				v.screen.SetContent(i, j, '.', nil, styleFloor)
			} else {
				v.screen.SetContent(i, j, '#', nil, styleWall)
			}
		}
	}
	for _, id := range v.snapshot.Closed {
		v.screen.SetContent(int(id.I), int(id.J), 'x', nil, styleClosed)
	}
	for _, id := range v.snapshot.Open {
		v.screen.SetContent(int(id.I), int(id.J), 'o', nil, styleOpen)
	}
	if v.path != nil {
		for _, waypoint := range v.path.Waypoints {
			i, j := navgrid.NearestNavcell(waypoint.X, waypoint.Z, v.grid.Width(), v.grid.Height())
			v.screen.SetContent(i, j, '*', nil, stylePath)
		}
	}
	if v.start != nil {
		v.screen.SetContent(v.start[0], v.start[1], 'S', nil, styleMarker)
	}
	if v.target != nil {
		v.screen.SetContent(v.target[0], v.target[1], 'G', nil, styleMarker)
	}
	mainc, _, style, _ := v.screen.GetContent(v.cursorI, v.cursorJ)
	v.screen.SetContent(v.cursorI, v.cursorJ, mainc, nil, style.Reverse(true))

	status := fmt.Sprintf("(%d,%d) cache=%t  arrows move  s start  g goal  enter solve  n step  c cache  q quit",
		v.cursorI, v.cursorJ, v.pathfinder.UsesJumpPointCache())
	v.drawText(0, v.grid.Height()+1, status, styleStatus)
	v.drawText(0, v.grid.Height()+2, v.message, styleMessage)
	v.screen.Show()
}

func (v *viewer) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *viewer) run() {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if v.handle(ev) {
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case nil:
			return
		}
		v.draw()
	}
}

func ViewCmd() *cobra.Command {
	var configFile, mapFile, className string
	c := &cobra.Command{
		Use:   "view",
		Short: "explore searches on a map in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(configFile, mapFile, className)
			if err != nil {
				return err
			}
			defer env.logger.Sync()

			pathfinder, err := env.pathfinder()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			newViewer(screen, pathfinder, reach.New(env.grid, env.logger), env.passClass).run()
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	c.Flags().StringVar(&mapFile, "map", "", "map file (.txt for ascii)")
	c.Flags().StringVar(&className, "class", "default", "passability class")
	_ = c.MarkFlagRequired("map")
	return c
}
