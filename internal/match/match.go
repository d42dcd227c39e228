// Package match provides the per-match session object that owns the roster,
// grid, scheduler, and resolver, and exposes the command surface used by
// player input and AI alike.
package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridclash/internal/combat"
	"github.com/samdwyer/gridclash/internal/effects"
	"github.com/samdwyer/gridclash/internal/gamedata"
	"github.com/samdwyer/gridclash/internal/grid"
	"github.com/samdwyer/gridclash/internal/rules"
	"github.com/samdwyer/gridclash/internal/scenario"
	"github.com/samdwyer/gridclash/internal/telemetry"
	"github.com/samdwyer/gridclash/internal/turn"
	"github.com/samdwyer/gridclash/internal/unit"
)

// Command validation failures. All fail closed: no state changes.
var (
	ErrNotStarted     = errors.New("match: game has not started")
	ErrGameOver       = errors.New("match: game is over")
	ErrUnknownUnit    = errors.New("match: unknown unit id")
	ErrNotYourTurn    = errors.New("match: unit is not the active unit")
	ErrNoActionPoints = errors.New("match: insufficient action points")
	ErrAlreadyMoved   = errors.New("match: unit has already moved this turn")
	ErrIllegalMove    = errors.New("match: destination is not a legal move")
	ErrIllegalTarget  = errors.New("match: cell is not a legal attack target")
)

// Config tunes a match. Zero values fall back to defaults.
type Config struct {
	Combat          combat.Config
	MaxActionPoints int
	MoveCost        int
	AttackCost      int
	LogLimit        int
}

// DefaultConfig returns the standard match tuning: 3 AP per turn, 1 AP per
// move or attack.
func DefaultConfig() Config {
	return Config{
		Combat:          combat.DefaultConfig(),
		MaxActionPoints: 3,
		MoveCost:        1,
		AttackCost:      1,
		LogLimit:        50,
	}
}

// Match is one running skirmish. All mutation happens synchronously inside
// the command that triggers it; there is no internal queuing.
type Match struct {
	cfg       Config
	grid      *grid.Grid
	roster    *unit.Roster
	scheduler *turn.Scheduler
	resolver  *combat.Resolver
	effects   *effects.Tracker
	rng       *rand.Rand

	log        []string
	lastResult combat.Result
	hasResult  bool
}

// New builds a match from a scenario, spawning units from the archetype
// registry and wiring the turn-boundary collaborators.
func New(ctx context.Context, scn *scenario.Scenario, registry *gamedata.UnitRegistry, cfg Config, rng *rand.Rand) (*Match, error) {
	if scn == nil || registry == nil || rng == nil {
		return nil, errors.New("match: scenario, registry, and rng are required")
	}
	if cfg.MaxActionPoints <= 0 {
		cfg.MaxActionPoints = scn.MaxActionPoints
	}
	if cfg.MoveCost <= 0 {
		cfg.MoveCost = 1
	}
	if cfg.AttackCost <= 0 {
		cfg.AttackCost = 1
	}
	if cfg.LogLimit <= 0 {
		cfg.LogLimit = 50
	}

	tracer := telemetry.Tracer("match")
	_, span := tracer.Start(ctx, "match.init")
	defer span.End()

	m := &Match{
		cfg:    cfg,
		grid:   scn.BuildGrid(),
		roster: unit.NewRoster(),
		rng:    rng,
	}
	m.effects = effects.NewTracker(rng)
	m.resolver = combat.NewResolver(cfg.Combat, rng, m.effects)
	m.scheduler = turn.NewScheduler(m.roster, cfg.MaxActionPoints)

	for _, p := range scn.Units {
		def := registry.GetByID(p.Archetype)
		if def == nil {
			return nil, fmt.Errorf("match: scenario references unknown archetype %q", p.Archetype)
		}
		faction, err := unit.ParseFaction(p.Faction)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		u, err := def.Build(faction)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		m.roster.Add(u)
		if !m.grid.Place(u, p.X, p.Y) {
			return nil, fmt.Errorf("match: cannot place %s at (%d,%d)", u.Name, p.X, p.Y)
		}
	}

	if err := m.spawnFill(scn, registry); err != nil {
		return nil, err
	}

	m.wireSchedulerEvents()

	span.SetAttributes(
		attribute.String("scenario", scn.Name),
		attribute.Int("grid.width", m.grid.Width),
		attribute.Int("grid.height", m.grid.Height),
		attribute.Int("units", m.roster.Count()),
	)

	return m, nil
}

// spawnFill spawns the scenario's randomly picked reinforcements, weighted by
// archetype spawnWeight, on free cells.
func (m *Match) spawnFill(scn *scenario.Scenario, registry *gamedata.UnitRegistry) error {
	for _, f := range scn.Fill {
		faction, err := unit.ParseFaction(f.Faction)
		if err != nil {
			return fmt.Errorf("match: %w", err)
		}
		for i := 0; i < f.Count; i++ {
			def := registry.PickRandom(m.rng)
			if def == nil {
				return errors.New("match: archetype registry has no spawnable entries")
			}
			u, err := def.Build(faction)
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			coord, ok := m.randomFreeCell()
			if !ok {
				return fmt.Errorf("match: no free cell left for fill unit %s", u.Name)
			}
			m.roster.Add(u)
			m.grid.Place(u, coord.X, coord.Y)
		}
	}
	return nil
}

// randomFreeCell picks a uniformly random walkable, unoccupied cell.
func (m *Match) randomFreeCell() (grid.Coord, bool) {
	var free []grid.Coord
	for y := 1; y <= m.grid.Height; y++ {
		for x := 1; x <= m.grid.Width; x++ {
			cell, _ := m.grid.Tile(x, y)
			if cell.IsWalkable() && !cell.IsOccupied() {
				free = append(free, grid.Coord{X: x, Y: y})
			}
		}
	}
	if len(free) == 0 {
		return grid.Coord{}, false
	}
	return free[m.rng.Intn(len(free))], true
}

// wireSchedulerEvents subscribes the status-effect collaborator and the
// visibility recompute to the scheduler's turn-boundary events.
func (m *Match) wireSchedulerEvents() {
	m.scheduler.OnRoundStart(func(round int) {
		m.logf("Round %d begins.", round)
	})
	m.scheduler.OnTurnStart(func(u *unit.Unit) {
		m.effects.Trigger(u, combat.TimingTurnStart)
		for _, tick := range m.effects.LastTicks {
			if tick.Damage > 0 {
				m.logf("%s suffers %d %s damage.", u.Name, tick.Damage, tick.Name)
			}
		}
		if !u.IsAlive() {
			m.logf("%s succumbs.", u.Name)
			m.grid.Remove(u)
			m.scheduler.CheckGameOver()
		}
		m.refreshVisibility()
	})
	m.scheduler.OnTurnEnd(func(u *unit.Unit) {
		m.effects.Trigger(u, combat.TimingTurnEnd)
		for _, tick := range m.effects.LastTicks {
			if tick.Ended {
				m.logf("%s is no longer %s.", u.Name, tick.Name)
			}
		}
	})
}

// Start begins the match: round 1, first unit in initiative order.
func (m *Match) Start() {
	m.scheduler.StartGame()
	m.refreshVisibility()
}

// Grid exposes the spatial state for read-only consumers.
func (m *Match) Grid() *grid.Grid { return m.grid }

// Roster exposes the unit registry for read-only consumers.
func (m *Match) Roster() *unit.Roster { return m.roster }

// Scheduler exposes the turn state for read-only consumers.
func (m *Match) Scheduler() *turn.Scheduler { return m.scheduler }

// Log returns the combat log, oldest first.
func (m *Match) Log() []string { return m.log }

// LastResult returns the most recent combat result, if any.
func (m *Match) LastResult() (combat.Result, bool) {
	return m.lastResult, m.hasResult
}

// ValidMoves returns the legal destinations for the given unit.
func (m *Match) ValidMoves(unitID string) (rules.CoordSet, error) {
	u := m.roster.Get(unitID)
	if u == nil {
		return nil, ErrUnknownUnit
	}
	return rules.ValidMovesFor(u, m.grid), nil
}

// ValidAttacks returns the legal attack targets for the given unit.
func (m *Match) ValidAttacks(unitID string) (rules.TargetSet, error) {
	u := m.roster.Get(unitID)
	if u == nil {
		return nil, ErrUnknownUnit
	}
	return rules.ValidAttacksFor(u, m.grid, m.roster), nil
}

// Move commits a move for the active unit. The destination must be a member
// of the unit's valid-move set.
func (m *Match) Move(unitID string, x, y int) error {
	u, err := m.requireActive(unitID)
	if err != nil {
		return err
	}
	if u.Flags.HasMoved {
		return ErrAlreadyMoved
	}
	if m.scheduler.ActionPoints() < m.cfg.MoveCost {
		return ErrNoActionPoints
	}
	moves := rules.ValidMovesFor(u, m.grid)
	if !moves[grid.Coord{X: x, Y: y}] {
		return ErrIllegalMove
	}
	if !m.grid.Move(u, x, y) {
		return ErrIllegalMove
	}
	u.Flags.HasMoved = true
	m.scheduler.UseActionPoints(m.cfg.MoveCost)
	m.logf("%s moves to (%d,%d).", u.Name, x, y)
	m.refreshVisibility()
	m.finishActionIfSpent()
	return nil
}

// Attack commits an attack from the active unit against the unit at (x,y).
// The target cell must be a member of the attacker's valid-attack set.
func (m *Match) Attack(ctx context.Context, unitID string, x, y int) (combat.Result, error) {
	u, err := m.requireActive(unitID)
	if err != nil {
		return combat.Result{}, err
	}
	if m.scheduler.ActionPoints() < m.cfg.AttackCost {
		return combat.Result{}, ErrNoActionPoints
	}
	targets := rules.ValidAttacksFor(u, m.grid, m.roster)
	targetID, ok := targets[grid.Coord{X: x, Y: y}]
	if !ok {
		return combat.Result{}, ErrIllegalTarget
	}
	defender := m.roster.Get(targetID)

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.attack")
	span.SetAttributes(
		attribute.String("attacker", u.Name),
		attribute.String("defender", defender.Name),
		attribute.Int("round", m.scheduler.Round()),
	)
	defer span.End()

	result, err := m.resolver.Attack(u, defender)
	if err != nil {
		span.SetAttributes(attribute.Bool("rejected", true))
		return combat.Result{}, err
	}
	m.scheduler.UseActionPoints(m.cfg.AttackCost)
	m.lastResult = result
	m.hasResult = true

	span.SetAttributes(
		attribute.Int("damage", result.Damage),
		attribute.Bool("critical", result.Critical),
		attribute.Bool("missed", result.Missed),
		attribute.Bool("defeated", result.Defeated),
	)

	switch {
	case result.Missed:
		m.logf("%s misses %s.", u.Name, defender.Name)
	case result.Critical:
		m.logf("%s crits %s for %d damage!", u.Name, defender.Name, result.Damage)
	default:
		m.logf("%s hits %s for %d damage.", u.Name, defender.Name, result.Damage)
	}

	if result.Defeated {
		m.logf("%s is defeated.", defender.Name)
		m.grid.Remove(defender)
		if m.scheduler.CheckGameOver() {
			if winner, ok := m.scheduler.Winner(); ok {
				m.logf("The %s faction is victorious!", winner)
			}
			return result, nil
		}
	}

	m.finishActionIfSpent()
	return result, nil
}

// EndTurn explicitly ends the active unit's turn.
func (m *Match) EndTurn(unitID string) error {
	if _, err := m.requireActive(unitID); err != nil {
		return err
	}
	m.scheduler.EndTurn()
	return nil
}

// requireActive validates that the game is running and the given unit is the
// one whose turn it is.
func (m *Match) requireActive(unitID string) (*unit.Unit, error) {
	switch m.scheduler.Phase() {
	case turn.PhaseNotStarted:
		return nil, ErrNotStarted
	case turn.PhaseGameOver:
		return nil, ErrGameOver
	}
	if m.roster.Get(unitID) == nil {
		return nil, ErrUnknownUnit
	}
	active, ok := m.scheduler.ActiveUnit()
	if !ok || active.ID != unitID {
		return nil, ErrNotYourTurn
	}
	return active, nil
}

// finishActionIfSpent advances to the next unit once the action-point budget
// is exhausted.
func (m *Match) finishActionIfSpent() {
	if m.scheduler.Phase() == turn.PhaseAction && m.scheduler.ActionPoints() == 0 {
		m.scheduler.NextUnit()
	}
}

// refreshVisibility recomputes fog of war from the player's living units.
func (m *Match) refreshVisibility() {
	var sources []grid.Source
	for _, u := range m.roster.Living() {
		if u.Faction != unit.FactionPlayer {
			continue
		}
		sources = append(sources, grid.Source{X: u.X, Y: u.Y, Sight: u.Stats.Sight})
	}
	m.grid.UpdateVisibility(sources)
}

// logf appends a formatted line to the bounded combat log.
func (m *Match) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
	if len(m.log) > m.cfg.LogLimit {
		m.log = m.log[len(m.log)-m.cfg.LogLimit:]
	}
}
