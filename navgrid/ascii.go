package navgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdrpinto/longpath/fixed"
)

// ErrBadASCII is returned for malformed ASCII maps.
var ErrBadASCII = errors.New("navgrid: malformed ascii map")

// Terrain legend of the ASCII map format. Line k of the text is row j = k.
var asciiTerrain = map[rune]TerrainSample{
	'.': {},
	'~': {WaterDepth: fixed.FromInt(1)},
	'=': {WaterDepth: fixed.FromInt(4)},
	'^': {Slope: fixed.FromInt(4)},
	'#': {Obstructed: true, Edge: true},
}

// ParseASCII reads a rectangular ASCII map and classifies every character with
// the registry. Blank lines are ignored.
func ParseASCII(reader io.Reader, registry *Registry) (*Grid[NavcellData], error) {
	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \r\t")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty map: %w", ErrBadASCII)
	}

	width := len([]rune(lines[0]))
	if width > 0xFFFF || len(lines) > 0xFFFF {
		return nil, fmt.Errorf("map of %dx%d is too large: %w", width, len(lines), ErrBadASCII)
	}
	grid := New[NavcellData](uint16(width), uint16(len(lines)))
	for j, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("line %d has %d cells, want %d: %w", j+1, len(runes), width, ErrBadASCII)
		}
		for i, character := range runes {
			sample, ok := asciiTerrain[character]
			if !ok {
				return nil, fmt.Errorf("line %d: unknown cell %q: %w", j+1, character, ErrBadASCII)
			}
			grid.Set(i, j, registry.Classify(sample))
		}
	}
	return grid, nil
}

// MustParseASCII is ParseASCII for fixed inputs such as test fixtures.
func MustParseASCII(text string, registry *Registry) *Grid[NavcellData] {
	grid, err := ParseASCII(strings.NewReader(text), registry)
	if err != nil {
		panic(err)
	}
	return grid
}

// RenderASCII draws the grid for one class: '#' impassable, '.' passable.
func RenderASCII(grid *Grid[NavcellData], mask PassClass) string {
	var builder strings.Builder
	for j := 0; j < grid.Height(); j++ {
		for i := 0; i < grid.Width(); i++ {
			if IsPassable(grid.Get(i, j), mask) {
				builder.WriteByte('.')
			} else {
				builder.WriteByte('#')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
