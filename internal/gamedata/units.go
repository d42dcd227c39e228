package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridclash/internal/unit"
)

// UnitDef defines a unit archetype loaded from JSON.
type UnitDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "warden")
	Name        string `json:"name"`        // Display name (e.g., "Warden")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#4488FF")
	Pattern     string `json:"pattern"`     // Movement pattern name (see unit.ParsePattern)
	Health      int    `json:"health"`      // Base hit points
	Attack      int    `json:"attack"`      // Base attack power
	Defense     int    `json:"defense"`     // Base defense value
	MoveRange   int    `json:"moveRange"`   // Maximum movement distance per step
	AttackRange int    `json:"attackRange"` // Maximum attack reach
	Energy      int    `json:"energy"`      // Base ability energy
	Initiative  int    `json:"initiative"`  // Turn-order stat, higher acts first
	Sight       int    `json:"sight"`       // Visibility radius
	SpawnWeight int    `json:"spawnWeight"` // Relative weight for random skirmish fill
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *UnitDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return rune(d.Glyph[0])
}

// TCellColor returns the archetype color as a tcell.Color, falling back to
// white for malformed values.
func (d *UnitDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// ParsedPattern returns the archetype's movement pattern.
func (d *UnitDef) ParsedPattern() (unit.Pattern, error) {
	return unit.ParsePattern(d.Pattern)
}

// Build constructs a fresh unit from the archetype for the given faction.
// The unit has no id until it is added to a roster.
func (d *UnitDef) Build(faction unit.Faction) (*unit.Unit, error) {
	pattern, err := d.ParsedPattern()
	if err != nil {
		return nil, fmt.Errorf("archetype %s: %w", d.ID, err)
	}
	return &unit.Unit{
		Name:    d.Name,
		Glyph:   d.GlyphRune(),
		Color:   d.TCellColor(),
		Faction: faction,
		Pattern: pattern,
		Stats: unit.Stats{
			Health:      d.Health,
			MaxHealth:   d.Health,
			Attack:      d.Attack,
			Defense:     d.Defense,
			MoveRange:   d.MoveRange,
			AttackRange: d.AttackRange,
			Energy:      d.Energy,
			MaxEnergy:   d.Energy,
			Initiative:  d.Initiative,
			Sight:       d.Sight,
		},
	}, nil
}

// UnitsFile represents the structure of units.json.
type UnitsFile struct {
	Units []UnitDef `json:"units"`
}

// LoadUnits loads unit archetype definitions from the embedded units.json.
func LoadUnits() ([]UnitDef, error) {
	file, err := Load[UnitsFile]("units.json")
	if err != nil {
		return nil, err
	}
	return file.Units, nil
}

// UnitRegistry holds loaded unit archetypes and provides lookup and weighted
// random selection for skirmish fill.
type UnitRegistry struct {
	defs        []UnitDef
	byID        map[string]*UnitDef
	totalWeight int
}

// NewUnitRegistry creates a registry from loaded archetype definitions.
func NewUnitRegistry(defs []UnitDef) *UnitRegistry {
	r := &UnitRegistry{
		defs: defs,
		byID: make(map[string]*UnitDef),
	}
	for i := range defs {
		r.byID[defs[i].ID] = &defs[i]
		r.totalWeight += defs[i].SpawnWeight
	}
	return r
}

// LoadUnitRegistry loads and creates a registry from the embedded units.json.
func LoadUnitRegistry() (*UnitRegistry, error) {
	defs, err := LoadUnits()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no unit archetypes loaded from units.json")
	}
	return NewUnitRegistry(defs), nil
}

// MustLoadUnitRegistry loads a registry, panicking on error.
func MustLoadUnitRegistry() *UnitRegistry {
	registry, err := LoadUnitRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the archetype with the given id, or nil if not found.
func (r *UnitRegistry) GetByID(id string) *UnitDef {
	return r.byID[id]
}

// PickRandom selects an archetype using weighted probability; higher
// spawnWeight values are more likely.
func (r *UnitRegistry) PickRandom(rng *rand.Rand) *UnitDef {
	if r.totalWeight <= 0 || len(r.defs) == 0 {
		return nil
	}
	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.defs {
		cumulative += r.defs[i].SpawnWeight
		if roll < cumulative {
			return &r.defs[i]
		}
	}
	return &r.defs[0]
}

// All returns all archetype definitions.
func (r *UnitRegistry) All() []UnitDef {
	return r.defs
}

// Count returns the number of archetypes in the registry.
func (r *UnitRegistry) Count() int {
	return len(r.defs)
}

// ParseHexColor converts a hex color string (e.g., "#FF0000") to a
// tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var rgb [3]uint64
	for i := range rgb {
		component, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid component in %s: %w", hex, err)
		}
		rgb[i] = component
	}

	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2])), nil
}
