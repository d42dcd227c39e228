// Package scenario loads skirmish definitions: grid dimensions, terrain rows,
// and initial unit placements.
package scenario

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/gridclash/internal/grid"
)

// Placement is one unit's starting position in a scenario.
type Placement struct {
	Archetype string `yaml:"archetype"`
	Faction   string `yaml:"faction"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
}

// Fill requests a number of randomly picked archetypes for a faction,
// weighted by spawnWeight and placed on free cells when the match is built.
type Fill struct {
	Faction string `yaml:"faction"`
	Count   int    `yaml:"count"`
}

// Scenario describes a skirmish setup. Terrain rows are strings of terrain
// runes, one row per grid row, top to bottom.
type Scenario struct {
	Name            string      `yaml:"name"`
	Width           int         `yaml:"width"`
	Height          int         `yaml:"height"`
	MaxActionPoints int         `yaml:"maxActionPoints"`
	Terrain         []string    `yaml:"terrain"`
	Units           []Placement `yaml:"units"`
	Fill            []Fill      `yaml:"fill"`
}

// Load parses a scenario from the given filesystem path.
func Load(path string) (*Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return parse(path, content)
}

// LoadFS parses a scenario from an embedded filesystem.
func LoadFS(fsys fs.FS, path string) (*Scenario, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scenario %s: %w", path, err)
	}
	return parse(path, content)
}

// parse unmarshals and validates scenario YAML.
func parse(path string, content []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// validate checks the structural invariants of a scenario.
func (s *Scenario) validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("grid dimensions %dx%d out of range", s.Width, s.Height)
	}
	if len(s.Terrain) > 0 && len(s.Terrain) != s.Height {
		return fmt.Errorf("terrain has %d rows, want %d", len(s.Terrain), s.Height)
	}
	for i, row := range s.Terrain {
		if len([]rune(row)) != s.Width {
			return fmt.Errorf("terrain row %d has %d cells, want %d", i+1, len([]rune(row)), s.Width)
		}
	}
	for i, p := range s.Units {
		if p.X < 1 || p.X > s.Width || p.Y < 1 || p.Y > s.Height {
			return fmt.Errorf("unit %d placed at (%d,%d), outside [1,%d]x[1,%d]",
				i+1, p.X, p.Y, s.Width, s.Height)
		}
	}
	for i, f := range s.Fill {
		if f.Count < 0 {
			return fmt.Errorf("fill %d has negative count %d", i+1, f.Count)
		}
	}
	if s.MaxActionPoints == 0 {
		s.MaxActionPoints = 3
	}
	return nil
}

// BuildGrid constructs a grid from the scenario terrain. Unknown terrain
// runes default to floor.
func (s *Scenario) BuildGrid() *grid.Grid {
	g := grid.New(s.Width, s.Height)
	for rowIdx, row := range s.Terrain {
		for colIdx, r := range []rune(row) {
			switch kind := grid.TerrainKind(r); kind {
			case grid.TerrainWall, grid.TerrainForest, grid.TerrainWater:
				g.SetTerrain(colIdx+1, rowIdx+1, kind)
			}
		}
	}
	return g
}
