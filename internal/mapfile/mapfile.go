// Package mapfile reads and writes navigation grids. Files ending in .txt
// hold ASCII maps; anything else is a msgpack header followed by the
// run-length encoded grid.
package mapfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pdrpinto/longpath/navgrid"
)

const Version = 1

var (
	ErrUnsupportedVersion = errors.New("mapfile: unsupported version")
	ErrClassMismatch      = errors.New("mapfile: passability classes differ from the registry")
	ErrASCIIOutput        = errors.New("mapfile: ascii maps cannot be written")
)

type header struct {
	Version int      `msgpack:"version"`
	Classes []string `msgpack:"classes"`
}

func IsASCII(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".txt")
}

// Load reads a map. The class names stored in a binary map must match the
// registry's, in order, since they define the mask bits.
func Load(filename string, registry *navgrid.Registry) (*navgrid.Grid[navgrid.NavcellData], error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("mapfile: load %s: %w", filename, err)
	}
	if IsASCII(filename) {
		grid, err := navgrid.ParseASCII(bytes.NewReader(data), registry)
		if err != nil {
			return nil, fmt.Errorf("mapfile: parse %s: %w", filename, err)
		}
		return grid, nil
	}
	return decode(data, registry)
}

func decode(data []byte, registry *navgrid.Registry) (*navgrid.Grid[navgrid.NavcellData], error) {
	decoder := msgpack.NewDecoder(bytes.NewReader(data))

	var fileHeader header
	if err := decoder.Decode(&fileHeader); err != nil {
		return nil, fmt.Errorf("mapfile: decode header: %w", err)
	}
	if fileHeader.Version != Version {
		return nil, fmt.Errorf("mapfile: version %d: %w", fileHeader.Version, ErrUnsupportedVersion)
	}
	if names := classNames(registry); !slices.Equal(fileHeader.Classes, names) {
		return nil, fmt.Errorf("mapfile: %v, registry has %v: %w", fileHeader.Classes, names, ErrClassMismatch)
	}

	grid := &navgrid.Grid[navgrid.NavcellData]{}
	if err := decoder.Decode(grid); err != nil {
		return nil, fmt.Errorf("mapfile: decode grid: %w", err)
	}
	return grid, nil
}

// Save writes grid in the binary format.
func Save(filename string, grid *navgrid.Grid[navgrid.NavcellData], registry *navgrid.Registry) error {
	if IsASCII(filename) {
		return fmt.Errorf("mapfile: save %s: %w", filename, ErrASCIIOutput)
	}
	data, err := encode(grid, registry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("mapfile: save %s: %w", filename, err)
	}
	return nil
}

func encode(grid *navgrid.Grid[navgrid.NavcellData], registry *navgrid.Registry) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := msgpack.NewEncoder(&buffer)
	if err := encoder.Encode(header{Version: Version, Classes: classNames(registry)}); err != nil {
		return nil, fmt.Errorf("mapfile: encode header: %w", err)
	}
	if err := encoder.Encode(grid); err != nil {
		return nil, fmt.Errorf("mapfile: encode grid: %w", err)
	}
	return buffer.Bytes(), nil
}

func classNames(registry *navgrid.Registry) []string {
	classes := registry.Classes()
	names := make([]string, len(classes))
	for index, class := range classes {
		names[index] = class.Name
	}
	return names
}
