package unit

import "testing"

func TestParseFaction(t *testing.T) {
	for _, name := range []string{"player", "enemy", "neutral"} {
		f, err := ParseFaction(name)
		if err != nil {
			t.Errorf("ParseFaction(%q) error: %v", name, err)
		}
		if f.String() != name {
			t.Errorf("round-trip %q = %q", name, f.String())
		}
	}
	if _, err := ParseFaction("bandits"); err == nil {
		t.Error("unknown faction should error")
	}
}

func TestParsePattern(t *testing.T) {
	for _, name := range []string{"orthogonal", "diagonal", "knight", "queen", "king", "pawn"} {
		p, err := ParsePattern(name)
		if err != nil {
			t.Errorf("ParsePattern(%q) error: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round-trip %q = %q", name, p.String())
		}
	}
	if _, err := ParsePattern("rook"); err == nil {
		t.Error("unknown pattern should error")
	}
}

func TestHostile(t *testing.T) {
	if FactionPlayer.Hostile(FactionPlayer) {
		t.Error("a faction is never hostile to itself")
	}
	if !FactionPlayer.Hostile(FactionEnemy) {
		t.Error("player should be hostile to enemy")
	}
	if !FactionEnemy.Hostile(FactionNeutral) {
		t.Error("neutral units are legal targets for the enemy")
	}
	if !FactionPlayer.Hostile(FactionNeutral) {
		t.Error("neutral units are legal targets for the player")
	}
}

func TestTakeDamageClampsAtZero(t *testing.T) {
	u := &Unit{Stats: Stats{Health: 5, MaxHealth: 10}}

	if got := u.TakeDamage(3); got != 3 {
		t.Errorf("TakeDamage(3) = %d, want 3", got)
	}
	if u.Stats.Health != 2 {
		t.Errorf("health = %d, want 2", u.Stats.Health)
	}

	// Overkill only applies the remaining health.
	if got := u.TakeDamage(10); got != 2 {
		t.Errorf("TakeDamage(10) = %d, want 2", got)
	}
	if u.Stats.Health != 0 {
		t.Errorf("health = %d, want 0", u.Stats.Health)
	}
	if u.IsAlive() {
		t.Error("unit at zero health should be dead")
	}

	if got := u.TakeDamage(-4); got != 0 {
		t.Errorf("negative damage applied %d, want 0", got)
	}
}

func TestHealCapsAtMax(t *testing.T) {
	u := &Unit{Stats: Stats{Health: 7, MaxHealth: 10}}

	if got := u.Heal(5); got != 3 {
		t.Errorf("Heal(5) = %d, want 3", got)
	}
	if u.Stats.Health != 10 {
		t.Errorf("health = %d, want 10", u.Stats.Health)
	}
	if got := u.Heal(1); got != 0 {
		t.Errorf("Heal at full health = %d, want 0", got)
	}
}

func TestSpendEnergy(t *testing.T) {
	u := &Unit{Stats: Stats{Energy: 3, MaxEnergy: 5}}

	if !u.SpendEnergy(2) {
		t.Error("spending within budget should succeed")
	}
	if u.SpendEnergy(2) {
		t.Error("overspending should fail")
	}
	if u.Stats.Energy != 1 {
		t.Errorf("energy = %d, want 1", u.Stats.Energy)
	}
}

func TestStatusReplaceNotStack(t *testing.T) {
	u := &Unit{}

	u.AddStatus(Status{Name: "poisoned", RemainingTurns: 2, Power: 1})
	u.AddStatus(Status{Name: "poisoned", RemainingTurns: 3, Power: 2})

	if len(u.Statuses) != 1 {
		t.Fatalf("statuses = %d, want 1 (same-name replaces)", len(u.Statuses))
	}
	if u.Statuses[0].RemainingTurns != 3 || u.Statuses[0].Power != 2 {
		t.Errorf("status not replaced: %+v", u.Statuses[0])
	}

	u.AddStatus(Status{Name: "shielded", RemainingTurns: 1})
	if !u.HasStatus("shielded") || !u.HasStatus("poisoned") {
		t.Error("distinct statuses should coexist")
	}

	u.RemoveStatus("poisoned")
	if u.HasStatus("poisoned") {
		t.Error("removed status still present")
	}
	if !u.HasStatus("shielded") {
		t.Error("unrelated status removed")
	}
	u.RemoveStatus("never-applied")
}

func TestResetTurnFlags(t *testing.T) {
	u := &Unit{Flags: Flags{HasMoved: true, HasAttacked: true, HasUsedAbility: true}}
	u.ResetTurnFlags()
	if u.Flags != (Flags{}) {
		t.Errorf("flags not cleared: %+v", u.Flags)
	}
}

func TestRosterOrderAndLookup(t *testing.T) {
	r := NewRoster()

	a := &Unit{Name: "a", Faction: FactionPlayer, Stats: Stats{Health: 1}}
	b := &Unit{ID: "fixed-id", Name: "b", Faction: FactionEnemy, Stats: Stats{Health: 1}}
	c := &Unit{Name: "c", Faction: FactionEnemy, Stats: Stats{Health: 1}}

	idA := r.Add(a)
	idB := r.Add(b)
	r.Add(c)

	if idA == "" {
		t.Error("Add should assign an id when missing")
	}
	if idB != "fixed-id" {
		t.Errorf("Add replaced a provided id: %q", idB)
	}
	if r.Get(idA) != a || r.Get("fixed-id") != b {
		t.Error("Get does not resolve registered units")
	}
	if r.Get("nope") != nil {
		t.Error("unknown id should resolve to nil")
	}

	all := r.All()
	if len(all) != 3 || all[0] != a || all[1] != b || all[2] != c {
		t.Error("All should preserve insertion order")
	}

	// Re-adding the same unit does not duplicate it.
	r.Add(b)
	if r.Count() != 3 {
		t.Errorf("Count after re-add = %d, want 3", r.Count())
	}
}

func TestRosterLivingFilters(t *testing.T) {
	r := NewRoster()
	alive := &Unit{Name: "alive", Faction: FactionPlayer, Stats: Stats{Health: 5}}
	dead := &Unit{Name: "dead", Faction: FactionPlayer, Stats: Stats{Health: 0}}
	foe := &Unit{Name: "foe", Faction: FactionEnemy, Stats: Stats{Health: 5}}
	r.Add(alive)
	r.Add(dead)
	r.Add(foe)

	living := r.Living()
	if len(living) != 2 {
		t.Fatalf("Living = %d units, want 2", len(living))
	}
	if living[0] != alive || living[1] != foe {
		t.Error("Living should preserve insertion order")
	}

	if got := r.LivingByFaction(FactionPlayer); got != 1 {
		t.Errorf("LivingByFaction(player) = %d, want 1", got)
	}
	if got := r.LivingByFaction(FactionEnemy); got != 1 {
		t.Errorf("LivingByFaction(enemy) = %d, want 1", got)
	}
	if got := r.LivingByFaction(FactionNeutral); got != 0 {
		t.Errorf("LivingByFaction(neutral) = %d, want 0", got)
	}
}
