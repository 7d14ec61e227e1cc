package navgrid

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/longpath/fixed"
)

var (
	ErrTooManyClasses = errors.New("navgrid: too many passability classes")
	ErrDuplicateClass = errors.New("navgrid: duplicate passability class")
	ErrUnknownClass   = errors.New("navgrid: unknown passability class")
)

// MaxClasses is the number of real classes a grid can hold; the top bit is
// reserved for SpecialPassClass.
const MaxClasses = PassClassBits - 1

// ObstructionHandling selects which obstruction shapes are rasterized into a
// class.
type ObstructionHandling int

const (
	ObstructionsNone ObstructionHandling = iota
	ObstructionsPathfinding
	ObstructionsFoundation
)

func ParseObstructionHandling(name string) (ObstructionHandling, error) {
	switch name {
	case "", "none":
		return ObstructionsNone, nil
	case "pathfinding":
		return ObstructionsPathfinding, nil
	case "foundation":
		return ObstructionsFoundation, nil
	}
	return ObstructionsNone, fmt.Errorf("navgrid: unknown obstruction handling %q", name)
}

// Passability describes one movement class.
type Passability struct {
	Name         string
	Mask         PassClass
	Clearance    fixed.Fixed
	Obstructions ObstructionHandling

	MinWaterDepth    fixed.Fixed
	MaxWaterDepth    fixed.Fixed
	MaxTerrainSlope  fixed.Fixed
	MinShoreDistance fixed.Fixed
	MaxShoreDistance fixed.Fixed
}

// NewPassability returns a class with unbounded terrain ranges and no
// clearance.
func NewPassability(name string) Passability {
	return Passability{
		Name:             name,
		MinWaterDepth:    fixed.Min,
		MaxWaterDepth:    fixed.Max,
		MaxTerrainSlope:  fixed.Max,
		MinShoreDistance: fixed.Min,
		MaxShoreDistance: fixed.Max,
	}
}

// IsPassable reports whether terrain with the given properties is passable.
// The slope bound is exclusive.
func (p Passability) IsPassable(waterDepth, slope, shoreDistance fixed.Fixed) bool {
	return p.MinWaterDepth <= waterDepth && waterDepth <= p.MaxWaterDepth &&
		slope < p.MaxTerrainSlope &&
		p.MinShoreDistance <= shoreDistance && shoreDistance <= p.MaxShoreDistance
}

// TerrainSample is what is known about the ground under one navcell.
type TerrainSample struct {
	WaterDepth    fixed.Fixed
	Slope         fixed.Fixed
	ShoreDistance fixed.Fixed
	// Obstructed marks a static obstruction covering the navcell.
	Obstructed bool
	// Edge marks navcells on the map border; they are impassable for all
	// classes.
	Edge bool
}

// Registry assigns mask bits to passability classes.
type Registry struct {
	classes []Passability
	byName  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a class and returns its mask.
func (r *Registry) Register(class Passability) (PassClass, error) {
	if _, exists := r.byName[class.Name]; exists {
		return 0, fmt.Errorf("%q: %w", class.Name, ErrDuplicateClass)
	}
	if len(r.classes) >= MaxClasses {
		return 0, fmt.Errorf("%q: %w (max %d)", class.Name, ErrTooManyClasses, MaxClasses)
	}
	class.Mask = MaskFromIndex(len(r.classes))
	r.byName[class.Name] = len(r.classes)
	r.classes = append(r.classes, class)
	return class.Mask, nil
}

func (r *Registry) Mask(name string) (PassClass, error) {
	index, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownClass)
	}
	return r.classes[index].Mask, nil
}

func (r *Registry) Class(name string) (Passability, bool) {
	index, ok := r.byName[name]
	if !ok {
		return Passability{}, false
	}
	return r.classes[index], true
}

func (r *Registry) Classes() []Passability {
	return append([]Passability(nil), r.classes...)
}

// AllMask returns the union of every registered class.
func (r *Registry) AllMask() PassClass {
	var mask PassClass
	for _, class := range r.classes {
		mask |= class.Mask
	}
	return mask
}

// Clearance returns the clearance of the first class in mask.
func (r *Registry) Clearance(mask PassClass) fixed.Fixed {
	for _, class := range r.classes {
		if class.Mask&mask != 0 {
			return class.Clearance
		}
	}
	return fixed.Zero
}

// MaximumClearance returns the largest clearance of any class plus
// ClearanceExtensionRadius.
func (r *Registry) MaximumClearance() fixed.Fixed {
	largest := fixed.Zero
	for _, class := range r.classes {
		largest = fixed.Max2(largest, class.Clearance)
	}
	return largest.Add(ClearanceExtensionRadius)
}

// Classify returns the navcell bits for a terrain sample.
func (r *Registry) Classify(sample TerrainSample) NavcellData {
	var cell NavcellData
	for _, class := range r.classes {
		impassable := sample.Edge ||
			!class.IsPassable(sample.WaterDepth, sample.Slope, sample.ShoreDistance) ||
			(sample.Obstructed && class.Obstructions != ObstructionsNone)
		if impassable {
			cell |= class.Mask
		}
	}
	return cell
}

// DefaultRegistry returns a registry with a land class "default" (bit 0) and
// a water class "ship" (bit 1).
func DefaultRegistry() *Registry {
	registry := NewRegistry()

	land := NewPassability("default")
	land.Clearance = fixed.FromFloat(0.8)
	land.MaxWaterDepth = fixed.FromInt(2)
	land.MaxTerrainSlope = fixed.FromInt(1)
	land.Obstructions = ObstructionsPathfinding

	ship := NewPassability("ship")
	ship.Clearance = fixed.FromInt(4)
	ship.MinWaterDepth = fixed.FromInt(1)
	ship.Obstructions = ObstructionsPathfinding

	for _, class := range []Passability{land, ship} {
		if _, err := registry.Register(class); err != nil {
			panic(err)
		}
	}
	return registry
}
