package effects

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/gridclash/internal/combat"
	"github.com/samdwyer/gridclash/internal/unit"
)

func newVictim(health int) *unit.Unit {
	return &unit.Unit{Stats: unit.Stats{Health: health, MaxHealth: health}}
}

func TestPoisonTicksAtTurnStart(t *testing.T) {
	tr := NewTracker(rand.New(rand.NewSource(1)))
	u := newVictim(10)
	tr.Apply(u, Poisoned, 3, 2)

	tr.Trigger(u, combat.TimingTurnStart)
	if u.Stats.Health != 8 {
		t.Errorf("health after poison tick = %d, want 8", u.Stats.Health)
	}
	if len(tr.LastTicks) != 1 {
		t.Fatalf("LastTicks = %d entries, want 1", len(tr.LastTicks))
	}
	tick := tr.LastTicks[0]
	if tick.Name != Poisoned || tick.Damage != 2 || tick.Ended {
		t.Errorf("unexpected tick: %+v", tick)
	}
	// Duration is untouched at turn start.
	if u.Statuses[0].RemainingTurns != 3 {
		t.Errorf("remaining turns = %d, want 3", u.Statuses[0].RemainingTurns)
	}
}

func TestDurationsExpireAtTurnEnd(t *testing.T) {
	tr := NewTracker(rand.New(rand.NewSource(1)))
	u := newVictim(10)
	tr.Apply(u, Shielded, 1, 0)
	tr.Apply(u, Weakened, 2, 2)

	tr.Trigger(u, combat.TimingTurnEnd)

	if u.HasStatus(Shielded) {
		t.Error("shielded should expire after its single turn")
	}
	if !u.HasStatus(Weakened) {
		t.Error("weakened still has a turn remaining")
	}
	if len(tr.LastTicks) != 1 || !tr.LastTicks[0].Ended || tr.LastTicks[0].Name != Shielded {
		t.Errorf("expiry tick not reported: %+v", tr.LastTicks)
	}

	tr.Trigger(u, combat.TimingTurnEnd)
	if u.HasStatus(Weakened) {
		t.Error("weakened should expire on its second turn end")
	}
	if len(u.Statuses) != 0 {
		t.Errorf("statuses remaining = %d, want 0", len(u.Statuses))
	}
}

func TestPoisonCanKill(t *testing.T) {
	tr := NewTracker(rand.New(rand.NewSource(1)))
	u := newVictim(2)
	tr.Apply(u, Poisoned, 3, 5)

	tr.Trigger(u, combat.TimingTurnStart)
	if u.IsAlive() {
		t.Error("poison should be lethal at low health")
	}
	// Clamped to remaining health.
	if tr.LastTicks[0].Damage != 2 {
		t.Errorf("tick damage = %d, want 2", tr.LastTicks[0].Damage)
	}
}

func TestRequestRandomAppliesNegativeEffect(t *testing.T) {
	tr := NewTracker(rand.New(rand.NewSource(1)))
	u := newVictim(10)

	tr.RequestRandom(u)
	if len(u.Statuses) != 1 {
		t.Fatalf("statuses = %d, want 1", len(u.Statuses))
	}
	name := u.Statuses[0].Name
	if name != Poisoned && name != Weakened && name != Slowed {
		t.Errorf("applied %q, want one of the negative effects", name)
	}
	if name == Shielded {
		t.Error("RequestRandom must never grant a positive effect")
	}
}

func TestHasMirrorsUnitStatuses(t *testing.T) {
	tr := NewTracker(rand.New(rand.NewSource(1)))
	u := newVictim(10)

	if tr.Has(u, Shielded) {
		t.Error("fresh unit should have no statuses")
	}
	tr.Apply(u, Shielded, 2, 0)
	if !tr.Has(u, Shielded) {
		t.Error("applied status not reported")
	}
}
