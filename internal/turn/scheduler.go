// Package turn provides the round/initiative/action-point state machine that
// decides whose turn it is.
package turn

import (
	"sort"

	"github.com/samdwyer/gridclash/internal/unit"
)

// Phase is the scheduler's current position in the turn state machine.
type Phase int

const (
	// PhaseNotStarted - StartGame has not been called yet.
	PhaseNotStarted Phase = iota
	// PhaseRoundStart - a new round has begun, no unit is active yet.
	PhaseRoundStart
	// PhaseTurnStart - the active unit's turn is beginning.
	PhaseTurnStart
	// PhaseAction - the active unit may spend action points.
	PhaseAction
	// PhaseTurnEnd - the active unit's turn is ending.
	PhaseTurnEnd
	// PhaseRoundEnd - the initiative queue is exhausted.
	PhaseRoundEnd
	// PhaseGameOver - terminal; a winner has been decided.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRoundStart:
		return "round_start"
	case PhaseTurnStart:
		return "turn_start"
	case PhaseAction:
		return "action"
	case PhaseTurnEnd:
		return "turn_end"
	case PhaseRoundEnd:
		return "round_end"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// listeners holds the registered event callbacks. Each event keeps a list so
// multiple collaborators (AI, UI, status effects) can subscribe without
// silently replacing one another.
type listeners struct {
	roundStart []func(round int)
	roundEnd   []func(round int)
	turnStart  []func(u *unit.Unit)
	turnEnd    []func(u *unit.Unit)
	apChanged  []func(old, new int)
}

// Scheduler orchestrates rounds, the per-round initiative queue, and the
// active unit's action-point budget. It mutates no unit state besides the
// per-turn flags; turn-boundary effects belong to the subscribed listeners.
type Scheduler struct {
	roster *unit.Roster

	round     int
	queue     []string // unit ids, rebuilt each round
	index     int
	phase     Phase
	actionPts int
	maxAP     int

	winner    unit.Faction
	hasWinner bool

	events listeners
}

// NewScheduler creates a scheduler over the given roster with the given
// per-turn action-point maximum.
func NewScheduler(roster *unit.Roster, maxActionPoints int) *Scheduler {
	return &Scheduler{
		roster: roster,
		phase:  PhaseNotStarted,
		maxAP:  maxActionPoints,
	}
}

// OnRoundStart registers a listener fired when a round begins.
func (s *Scheduler) OnRoundStart(fn func(round int)) {
	s.events.roundStart = append(s.events.roundStart, fn)
}

// OnRoundEnd registers a listener fired when a round ends.
func (s *Scheduler) OnRoundEnd(fn func(round int)) {
	s.events.roundEnd = append(s.events.roundEnd, fn)
}

// OnTurnStart registers a listener fired when a unit's turn begins.
func (s *Scheduler) OnTurnStart(fn func(u *unit.Unit)) {
	s.events.turnStart = append(s.events.turnStart, fn)
}

// OnTurnEnd registers a listener fired when a unit's turn ends.
func (s *Scheduler) OnTurnEnd(fn func(u *unit.Unit)) {
	s.events.turnEnd = append(s.events.turnEnd, fn)
}

// OnActionPointsChanged registers a listener fired whenever the active unit's
// action points change.
func (s *Scheduler) OnActionPointsChanged(fn func(old, new int)) {
	s.events.apChanged = append(s.events.apChanged, fn)
}

// Round returns the current round number, starting at 1.
func (s *Scheduler) Round() int { return s.round }

// Phase returns the scheduler's current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// ActionPoints returns the active unit's remaining action points.
func (s *Scheduler) ActionPoints() int { return s.actionPts }

// MaxActionPoints returns the per-turn action-point budget.
func (s *Scheduler) MaxActionPoints() int { return s.maxAP }

// Queue returns a copy of the current initiative queue.
func (s *Scheduler) Queue() []string {
	q := make([]string, len(s.queue))
	copy(q, s.queue)
	return q
}

// Winner returns the winning faction once the game is over.
func (s *Scheduler) Winner() (unit.Faction, bool) {
	return s.winner, s.hasWinner
}

// ActiveUnit returns the unit whose turn it is, or (nil, false) when no unit
// is active (before the game starts or after it ends).
func (s *Scheduler) ActiveUnit() (*unit.Unit, bool) {
	if s.phase == PhaseNotStarted || s.phase == PhaseGameOver {
		return nil, false
	}
	if s.index < 0 || s.index >= len(s.queue) {
		return nil, false
	}
	u := s.roster.Get(s.queue[s.index])
	if u == nil {
		return nil, false
	}
	return u, true
}

// IsPlayerTurn reports whether the active unit belongs to the player faction.
func (s *Scheduler) IsPlayerTurn() bool {
	u, ok := s.ActiveUnit()
	return ok && u.Faction == unit.FactionPlayer
}

// StartGame builds the initial initiative queue and begins round 1 with the
// first unit's turn. Calling it twice is a no-op.
func (s *Scheduler) StartGame() {
	if s.phase != PhaseNotStarted {
		return
	}
	s.round = 1
	s.beginRound()
}

// beginRound rebuilds the queue from living units and enters the first turn.
func (s *Scheduler) beginRound() {
	s.phase = PhaseRoundStart
	s.queue = s.buildQueue()
	s.index = -1
	for _, fn := range s.events.roundStart {
		fn(s.round)
	}
	s.advance()
}

// buildQueue returns the ids of every living player and enemy unit sorted by
// initiative descending. Ties keep roster insertion order. Neutral units
// never take turns; they only hold ground.
func (s *Scheduler) buildQueue() []string {
	living := s.roster.Living()
	combatants := make([]*unit.Unit, 0, len(living))
	for _, u := range living {
		if u.Faction == unit.FactionNeutral {
			continue
		}
		combatants = append(combatants, u)
	}
	sort.SliceStable(combatants, func(i, j int) bool {
		return combatants[i].Stats.Initiative > combatants[j].Stats.Initiative
	})
	ids := make([]string, len(combatants))
	for i, u := range combatants {
		ids[i] = u.ID
	}
	return ids
}

// NextUnit ends the active unit's turn and advances to the next living unit,
// rolling into the next round when the queue is exhausted. Defeated units
// still present in the queue are skipped.
func (s *Scheduler) NextUnit() {
	if s.phase == PhaseNotStarted || s.phase == PhaseGameOver {
		return
	}
	if u, ok := s.ActiveUnit(); ok {
		s.phase = PhaseTurnEnd
		for _, fn := range s.events.turnEnd {
			fn(u)
		}
	}
	if s.phase == PhaseGameOver {
		// A turn-end listener may have ended the game.
		return
	}
	s.advance()
}

// EndTurn forces the active unit's turn to end regardless of remaining
// action points.
func (s *Scheduler) EndTurn() {
	s.NextUnit()
}

// advance moves the queue pointer to the next living unit and starts its
// turn, beginning a new round when the queue runs out.
func (s *Scheduler) advance() {
	for {
		s.index++
		if s.index >= len(s.queue) {
			s.phase = PhaseRoundEnd
			for _, fn := range s.events.roundEnd {
				fn(s.round)
			}
			if s.phase == PhaseGameOver {
				return
			}
			schedulable := s.roster.LivingByFaction(unit.FactionPlayer) +
				s.roster.LivingByFaction(unit.FactionEnemy)
			if schedulable == 0 {
				// Nothing left to schedule; stay at round end.
				return
			}
			s.round++
			s.beginRound()
			return
		}

		u := s.roster.Get(s.queue[s.index])
		if u == nil || !u.IsAlive() {
			continue // pruned mid-round; skip without fault
		}

		s.phase = PhaseTurnStart
		u.ResetTurnFlags()
		s.setActionPoints(s.maxAP)
		for _, fn := range s.events.turnStart {
			fn(u)
		}
		if s.phase == PhaseGameOver {
			return
		}
		// A turn-start listener (poison tick) may have killed the unit.
		if !u.IsAlive() {
			continue
		}
		s.phase = PhaseAction
		return
	}
}

// UseActionPoints deducts cost from the active unit's budget. It fails, with
// no mutation, when the cost exceeds the remaining points or no unit is in
// its action phase.
func (s *Scheduler) UseActionPoints(cost int) bool {
	if s.phase != PhaseAction {
		return false
	}
	if cost < 0 || cost > s.actionPts {
		return false
	}
	s.setActionPoints(s.actionPts - cost)
	return true
}

// setActionPoints updates the budget and notifies listeners.
func (s *Scheduler) setActionPoints(points int) {
	old := s.actionPts
	s.actionPts = points
	if old == points {
		return
	}
	for _, fn := range s.events.apChanged {
		fn(old, points)
	}
}

// CheckGameOver reports whether one side has no living units left, entering
// the terminal phase and recording the winner when it has. Neutral units do
// not count toward either side.
func (s *Scheduler) CheckGameOver() bool {
	if s.phase == PhaseGameOver {
		return true
	}
	playerAlive := s.roster.LivingByFaction(unit.FactionPlayer)
	enemyAlive := s.roster.LivingByFaction(unit.FactionEnemy)

	switch {
	case playerAlive == 0:
		s.winner = unit.FactionEnemy
	case enemyAlive == 0:
		s.winner = unit.FactionPlayer
	default:
		return false
	}
	s.hasWinner = true
	s.phase = PhaseGameOver
	return true
}
