package combat

import (
	"fmt"
	"strings"

	"github.com/nathoo/skoolach/types"
)

// Damage variance applied to every hit.
const (
	rollLow  = 0.9
	rollHigh = 1.1
)

// Encounter is one fight between the player and a single enemy. It owns
// both actors for its lifetime; the caller copies the player's health back
// when the encounter ends or is abandoned.
type Encounter struct {
	Player *Actor
	Enemy  *Enemy

	rng     Source
	actions []types.CombatAction
	rounds  int
}

// RoundResult is the outcome of one PlayRound call.
type RoundResult struct {
	// Output holds the player half and, if it ran, the enemy half.
	Output      []string
	Over        bool
	Winner      types.Winner
	PhaseBefore int
	PhaseAfter  int
}

// PhaseChanged reports whether the enemy's phase advanced during the round.
func (r RoundResult) PhaseChanged() bool {
	return r.PhaseAfter != r.PhaseBefore
}

// NewEncounter starts a fight. The player's action set is derived once
// from tags and stays fixed for the encounter.
func NewEncounter(player *Actor, tags []string, enemy *Enemy, rng Source) *Encounter {
	return &Encounter{
		Player:  player,
		Enemy:   enemy,
		rng:     rng,
		actions: PlayerActions(tags),
	}
}

// AvailableActions returns the player's actions in menu order.
func (c *Encounter) AvailableActions() []types.CombatAction {
	out := make([]types.CombatAction, len(c.actions))
	copy(out, c.actions)
	return out
}

// Rounds returns the number of full rounds played.
func (c *Encounter) Rounds() int {
	return c.rounds
}

func (c *Encounter) roll(base int) int {
	return int(float64(base) * c.rng.Uniform(rollLow, rollHigh))
}

// PlayerAttack resolves the player's half-turn.
func (c *Encounter) PlayerAttack(a types.CombatAction) string {
	lines := []string{
		fmt.Sprintf("You use %s!", a.Name),
		a.Description,
	}
	if a.Damage > 0 {
		dealt := c.roll(a.Damage)
		c.Enemy.TakeDamage(dealt)
		if !c.Enemy.Alive() {
			lines = append(lines, fmt.Sprintf("%s has been defeated!", c.Enemy.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s takes %d damage! (%d/%d HP remaining)",
				c.Enemy.Name, dealt, c.Enemy.Health, c.Enemy.MaxHealth))
		}
	}
	if a.Heal > 0 {
		healed := c.Player.Heal(a.Heal)
		lines = append(lines, fmt.Sprintf("You restore %d health! (%d/%d HP)",
			healed, c.Player.Health, c.Player.MaxHealth))
	}
	return strings.Join(lines, "\n")
}

// EnemyAttack resolves the enemy's half-turn.
func (c *Encounter) EnemyAttack() string {
	a := c.Enemy.ChooseAction(c.rng)
	lines := []string{
		fmt.Sprintf("%s uses %s!", c.Enemy.Name, a.Name),
		a.Description,
	}
	if a.Damage > 0 {
		dealt := c.roll(a.Damage)
		c.Player.TakeDamage(dealt)
		lines = append(lines, fmt.Sprintf("You take %d damage! (%d/%d HP)",
			dealt, c.Player.Health, c.Player.MaxHealth))
	}
	if a.Heal > 0 {
		healed := c.Enemy.Heal(a.Heal)
		lines = append(lines, fmt.Sprintf("%s restores %d health! (%d/%d HP)",
			c.Enemy.Name, healed, c.Enemy.Health, c.Enemy.MaxHealth))
	}
	return strings.Join(lines, "\n")
}

// IsOver reports whether the fight has ended. Enemy defeat is checked
// first, so a simultaneous knockout goes to the player.
func (c *Encounter) IsOver() (bool, types.Winner) {
	if !c.Enemy.Alive() {
		return true, types.WinnerPlayer
	}
	if !c.Player.Alive() {
		return true, types.WinnerEnemy
	}
	return false, types.WinnerNone
}

// PlayRound runs one round: the player's action, a check, the enemy's
// action, and a second check. The enemy does not act if the player's
// action ended the fight.
func (c *Encounter) PlayRound(a types.CombatAction) RoundResult {
	res := RoundResult{PhaseBefore: c.Enemy.Phase()}
	res.Output = append(res.Output, c.PlayerAttack(a))

	if over, winner := c.IsOver(); over {
		res.Over, res.Winner = true, winner
		res.PhaseAfter = c.Enemy.Phase()
		return res
	}

	res.Output = append(res.Output, c.EnemyAttack())
	c.rounds++
	res.PhaseAfter = c.Enemy.Phase()
	res.Over, res.Winner = c.IsOver()
	return res
}

// Status is the one-line health summary shown between rounds.
func (c *Encounter) Status() string {
	return fmt.Sprintf("YOUR HP: %d/%d | %s HP: %d/%d",
		c.Player.Health, c.Player.MaxHealth,
		c.Enemy.Name, c.Enemy.Health, c.Enemy.MaxHealth)
}

// VictoryMessage returns the closing text for a player win.
func (c *Encounter) VictoryMessage() string {
	return victoryMessage
}

// DefeatMessage returns the closing text for a player loss.
func (c *Encounter) DefeatMessage() string {
	return defeatMessage
}
