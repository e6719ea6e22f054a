// Package combat implements turn-based encounters: the action catalog,
// combatants, the boss phase machine, and round resolution.
package combat

// Source is the randomness an encounter draws from. engine.RNG satisfies it;
// tests substitute fixed sources for deterministic replay.
type Source interface {
	Intn(n int) int
	Float64() float64
	Uniform(lo, hi float64) float64
}

// PlayerMaxHealth is the player's health cap in every encounter.
const PlayerMaxHealth = 100

// Actor is the shared shape of every combatant.
// Invariant: 0 <= Health <= MaxHealth, and Health == 0 means defeated.
type Actor struct {
	Name      string
	Health    int
	MaxHealth int
}

// NewActor creates an actor at full health.
func NewActor(name string, maxHealth int) *Actor {
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Actor{Name: name, Health: maxHealth, MaxHealth: maxHealth}
}

// Alive reports whether the actor still has health left.
func (a *Actor) Alive() bool {
	return a.Health > 0
}

// Fraction returns current health as a fraction of maximum.
func (a *Actor) Fraction() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return float64(a.Health) / float64(a.MaxHealth)
}

// TakeDamage lowers health by amount, never below zero.
// Returns the health actually lost.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := a.Health
	a.Health -= amount
	if a.Health < 0 {
		a.Health = 0
	}
	return before - a.Health
}

// Heal raises health by amount, never above MaxHealth.
// Returns the health actually restored.
func (a *Actor) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := a.Health
	a.Health += amount
	if a.Health > a.MaxHealth {
		a.Health = a.MaxHealth
	}
	return a.Health - before
}
