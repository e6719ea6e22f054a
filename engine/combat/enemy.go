package combat

import "github.com/nathoo/skoolach/types"

const (
	// BossName is the display name of the final enemy.
	BossName = "SKOOLACH"
	// BossMaxHealth is the boss's starting and maximum health.
	BossMaxHealth = 150

	bossDescription = "A massive, writhing mass of corrupted code and malicious algorithms."

	// Phase 3 only picks actions at least this strong.
	finalFormMinDamage = 20
	// Phase 2 considers healing below this health fraction.
	regenerateBelow  = 0.4
	regenerateChance = 0.3
)

// PhasePolicy chooses an enemy's next action. A nil policy means the
// enemy picks uniformly from its whole table.
type PhasePolicy func(e *Enemy, rng Source) types.CombatAction

// Enemy is a combatant driven by an action table and an optional policy.
type Enemy struct {
	Actor
	Description string
	Actions     []types.CombatAction
	Policy      PhasePolicy

	// Phases is set for enemies with phase-driven behavior.
	Phases *PhaseTracker
}

// NewEnemy creates a generic enemy at full health.
func NewEnemy(name, description string, maxHealth int, actions []types.CombatAction) *Enemy {
	return &Enemy{
		Actor:       *NewActor(name, maxHealth),
		Description: description,
		Actions:     actions,
	}
}

// NewBoss creates SKOOLACH in phase 1.
func NewBoss() *Enemy {
	e := NewEnemy(BossName, bossDescription, BossMaxHealth, BossActions())
	e.Policy = BossPolicy
	e.Phases = NewPhaseTracker()
	return e
}

// ChooseAction picks the enemy's next action.
func (e *Enemy) ChooseAction(rng Source) types.CombatAction {
	if e.Policy != nil {
		return e.Policy(e, rng)
	}
	return pick(e.Actions, e.Actions, rng)
}

// Phase returns the current phase, or 0 for enemies without phases.
func (e *Enemy) Phase() int {
	if e.Phases == nil {
		return 0
	}
	return e.Phases.Phase()
}

// PhaseMessage returns the narrative line for the current phase.
func (e *Enemy) PhaseMessage() string {
	p := e.Phase()
	if p <= 0 || p >= len(phaseMessages) {
		return ""
	}
	return phaseMessages[p]
}

// BossPolicy advances the phase by at most one step from the current
// health fraction, then chooses from that phase's pool.
func BossPolicy(e *Enemy, rng Source) types.CombatAction {
	if e.Phases == nil {
		e.Phases = NewPhaseTracker()
	}
	fraction := e.Fraction()
	phase := e.Phases.Assess(fraction)

	switch phase {
	case 3:
		return pick(filter(e.Actions, func(a types.CombatAction) bool {
			return a.Damage >= finalFormMinDamage
		}), e.Actions, rng)
	case 2:
		if fraction < regenerateBelow && rng.Float64() < regenerateChance {
			if heal, ok := firstHeal(e.Actions); ok {
				return heal
			}
		}
		return pick(e.Actions, e.Actions, rng)
	default:
		strongest := strongestDamage(e.Actions)
		return pick(filter(e.Actions, func(a types.CombatAction) bool {
			return a.Damage > 0 && a.Damage < strongest
		}), e.Actions, rng)
	}
}

// pick chooses uniformly from pool, falling back to the whole table when
// the pool is empty and to Struggle when the table is empty too.
func pick(pool, table []types.CombatAction, rng Source) types.CombatAction {
	if len(pool) == 0 {
		pool = table
	}
	if len(pool) == 0 {
		return Struggle
	}
	return pool[rng.Intn(len(pool))]
}

func filter(actions []types.CombatAction, keep func(types.CombatAction) bool) []types.CombatAction {
	var out []types.CombatAction
	for _, a := range actions {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func firstHeal(actions []types.CombatAction) (types.CombatAction, bool) {
	for _, a := range actions {
		if a.Heal > 0 {
			return a, true
		}
	}
	return types.CombatAction{}, false
}

func strongestDamage(actions []types.CombatAction) int {
	best := 0
	for _, a := range actions {
		if a.Damage > best {
			best = a.Damage
		}
	}
	return best
}
