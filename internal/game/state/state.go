// Package state holds the mutable game state the shell's command handlers
// read and write: resources, corruption, and the necromancer's minions.
package state

import (
	"fmt"

	"github.com/google/uuid"
)

// MinionType identifies a raisable minion kind.
type MinionType string

const (
	MinionZombie   MinionType = "zombie"
	MinionSkeleton MinionType = "skeleton"
	MinionWraith   MinionType = "wraith"
)

// minionStats is the per-type cost and power table.
var minionStats = map[MinionType]struct {
	ManaCost int
	Power    int
}{
	MinionZombie:   {ManaCost: 10, Power: 2},
	MinionSkeleton: {ManaCost: 15, Power: 3},
	MinionWraith:   {ManaCost: 40, Power: 8},
}

// ValidMinionType reports whether t names a raisable minion kind.
func ValidMinionType(t MinionType) bool {
	_, ok := minionStats[t]
	return ok
}

// Minion is one raised servant.
type Minion struct {
	// ID uniquely identifies the minion for bind/banish targeting.
	ID string
	// Name is the player-given or generated display name.
	Name string
	// Type is the minion kind.
	Type MinionType
	// Power is the minion's combat strength.
	Power int
	// Loyalty ranges 0-100; freshly raised minions start at 50.
	Loyalty int
}

// Resources tracks the necromancer's expendables.
type Resources struct {
	// Mana fuels rituals and raising.
	Mana int
	// SoulEnergy is the currency harvested from the dead.
	SoulEnergy int
	// Corruption accumulates from dark acts; it only ever rises.
	Corruption float64
	// Day is the in-game day counter.
	Day int
}

// GameState is the single mutable game-state object. It is constructed once
// and passed explicitly to every handler; there are no package-level
// globals. Not safe for concurrent use; the session model is
// single-threaded.
type GameState struct {
	Resources Resources
	Minions   []*Minion
}

// New creates a GameState with the given starting resources.
//
// Precondition: mana and souls must be >= 0.
func New(mana, souls int) *GameState {
	return &GameState{
		Resources: Resources{Mana: mana, SoulEnergy: souls, Day: 1},
	}
}

// RaiseMinion raises a new minion of the given type, spending mana.
// An empty name gets a generated one.
//
// Postcondition: On success the minion is appended and mana reduced; on
// failure the state is unchanged.
func (g *GameState) RaiseMinion(t MinionType, name string) (*Minion, error) {
	stats, ok := minionStats[t]
	if !ok {
		return nil, fmt.Errorf("unknown minion type %q", t)
	}
	if g.Resources.Mana < stats.ManaCost {
		return nil, fmt.Errorf("raising a %s requires %d mana, have %d", t, stats.ManaCost, g.Resources.Mana)
	}

	id := uuid.NewString()
	if name == "" {
		name = fmt.Sprintf("%s-%s", t, id[:8])
	}

	m := &Minion{
		ID:      id,
		Name:    name,
		Type:    t,
		Power:   stats.Power,
		Loyalty: 50,
	}
	g.Resources.Mana -= stats.ManaCost
	g.Minions = append(g.Minions, m)
	return m, nil
}

// FindMinion locates a minion by ID or name.
func (g *GameState) FindMinion(key string) (*Minion, bool) {
	for _, m := range g.Minions {
		if m.ID == key || m.Name == key {
			return m, true
		}
	}
	return nil, false
}

// BanishMinion removes a minion by ID or name.
//
// Postcondition: Returns false iff no such minion exists.
func (g *GameState) BanishMinion(key string) bool {
	for i, m := range g.Minions {
		if m.ID == key || m.Name == key {
			g.Minions = append(g.Minions[:i], g.Minions[i+1:]...)
			return true
		}
	}
	return false
}

// soulsPerHarvest is the energy yielded by one harvested grave.
const soulsPerHarvest = 5

// corruptionPerHarvest is the corruption cost of each harvested grave.
const corruptionPerHarvest = 0.1

// Harvest tears soul energy from count graves, accruing corruption.
//
// Precondition: count must be >= 1.
// Postcondition: Returns the soul energy gained.
func (g *GameState) Harvest(count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("harvest count must be >= 1, got %d", count)
	}
	gained := count * soulsPerHarvest
	g.Resources.SoulEnergy += gained
	g.Resources.Corruption += float64(count) * corruptionPerHarvest
	return gained, nil
}

// AddCorruption raises corruption directly. Negative amounts are ignored;
// corruption never decreases.
func (g *GameState) AddCorruption(amount float64) {
	if amount > 0 {
		g.Resources.Corruption += amount
	}
}

// AdvanceDay moves to the next day and regenerates a little mana.
func (g *GameState) AdvanceDay() {
	g.Resources.Day++
	g.Resources.Mana += 5
}
