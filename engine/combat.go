package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nathoo/skoolach/engine/combat"
	"github.com/nathoo/skoolach/telemetry"
	"github.com/nathoo/skoolach/types"
)

// MinComponents is the number of components needed to engage the boss.
const MinComponents = 3

var rule = strings.Repeat("─", 70)

// fight is the encounter in progress, if any.
type fight struct {
	id      string
	enc     *combat.Encounter
	started time.Time
}

// InCombat reports whether an encounter is in progress.
func (e *Engine) InCombat() bool {
	return e.fight != nil
}

// CombatStatus returns the encounter's health line, or "" outside combat.
func (e *Engine) CombatStatus() string {
	if e.fight == nil {
		return ""
	}
	return e.fight.enc.Status()
}

// CombatActions returns the player's numbered actions, or nil outside combat.
func (e *Engine) CombatActions() []types.CombatAction {
	if e.fight == nil {
		return nil
	}
	return e.fight.enc.AvailableActions()
}

func (e *Engine) handleAttack(ctx context.Context, args []string, result *types.Result) {
	if len(args) == 0 {
		result.Output = append(result.Output, "Attack what?")
		return
	}
	target := strings.ToLower(strings.Join(args, " "))
	room := e.Defs.Rooms[e.State.Player.Location]

	// Naming SKOOLACH engages it from anywhere; in its lair any target does.
	if !room.Lair && !strings.Contains(target, "skoolach") {
		result.Output = append(result.Output, "There's nothing to attack here.")
		return
	}
	if e.State.Won {
		result.Output = append(result.Output, "SKOOLACH has already been defeated. Only fragments of corrupted code remain.")
		return
	}
	e.startCombat(ctx, result)
}

func (e *Engine) startCombat(ctx context.Context, result *types.Result) {
	n := len(e.State.Capabilities)
	if n < MinComponents {
		result.Output = append(result.Output,
			"You attempt to engage SKOOLACH, but you're too weak!",
			"",
			fmt.Sprintf("You've only collected %d AI components. You need at least %d "+
				"to have a fighting chance against the virus.", n, MinComponents),
			"",
			"SKOOLACH laughs: 'Come back when you're stronger, little coder...'")
		return
	}

	player := &combat.Actor{
		Name:      e.State.Player.Name,
		Health:    e.State.Player.Health,
		MaxHealth: e.State.Player.MaxHealth,
	}
	boss := combat.NewBoss()
	e.fight = &fight{
		id:      uuid.NewString(),
		enc:     combat.NewEncounter(player, e.State.Capabilities, boss, e.RNG),
		started: e.Now(),
	}

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("encounter.id", e.fight.id),
		attribute.String("enemy", boss.Name),
		attribute.Int("components", n),
		attribute.Int("player.health", player.Health),
	)
	span.End()

	result.Output = append(result.Output,
		strings.Repeat("═", 70),
		"                    COMBAT INITIATED!",
		strings.Repeat("═", 70),
		"",
		boss.Description,
		"",
		fmt.Sprintf("You have collected %d AI components.", n),
		"They resonate with power, ready to aid you in battle!",
		"",
		e.fight.enc.Status(),
		"",
		"Choose your action:")
	result.Output = append(result.Output, e.actionLines()...)
	result.Events = append(result.Events, types.Event{
		Type: "combat_started",
		Data: map[string]any{"enemy": boss.Name, "encounter": e.fight.id},
	})
}

// stepCombat handles input while an encounter is in progress: help, or an
// action number. Anything else is refused without changing state.
func (e *Engine) stepCombat(ctx context.Context, input string, result *types.Result) {
	text := strings.ToLower(strings.TrimSpace(input))
	actions := e.fight.enc.AvailableActions()

	if text == "help" || text == "?" {
		result.Output = append(result.Output, "Available actions:")
		result.Output = append(result.Output, e.actionLines()...)
		result.Output = append(result.Output, "", "Type the number of the action you want to use.")
		return
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		result.Output = append(result.Output, "Enter the number of the action you want to use, or 'help' for options.")
		return
	}
	if n < 1 || n > len(actions) {
		result.Output = append(result.Output, fmt.Sprintf("Invalid action number. Choose 1-%d.", len(actions)))
		return
	}
	e.playRound(ctx, actions[n-1], result)
}

func (e *Engine) playRound(ctx context.Context, action types.CombatAction, result *types.Result) {
	f := e.fight
	ctx, span := telemetry.Tracer("combat").Start(ctx, "combat.round")
	defer span.End()

	res := f.enc.PlayRound(action)
	e.State.Player.Health = f.enc.Player.Health

	span.SetAttributes(
		attribute.String("encounter.id", f.id),
		attribute.String("action", action.Name),
		attribute.Int("player.health", f.enc.Player.Health),
		attribute.Int("enemy.health", f.enc.Enemy.Health),
		attribute.Int("phase", res.PhaseAfter),
	)

	result.Output = append(result.Output, rule, res.Output[0], "")
	if len(res.Output) > 1 {
		result.Output = append(result.Output, "", res.Output[1], "")
	}

	if res.Over {
		span.SetAttributes(attribute.String("winner", string(res.Winner)))
		e.endCombat(ctx, res.Winner, result)
		return
	}

	result.Output = append(result.Output, rule, f.enc.Status())
	if res.PhaseChanged() {
		result.Output = append(result.Output, "", f.enc.Enemy.PhaseMessage())
	}
	result.Output = append(result.Output, "", "Choose your next action:")
	result.Output = append(result.Output, e.actionLines()...)
}

func (e *Engine) endCombat(ctx context.Context, winner types.Winner, result *types.Result) {
	f := e.fight
	e.fight = nil

	outcome := "defeat"
	if winner == types.WinnerPlayer {
		outcome = "victory"
		e.State.Won = true
		result.Output = append(result.Output, "", f.enc.VictoryMessage())
		if outro := e.Defs.Game.Outro; outro != "" {
			result.Output = append(result.Output, "", outro)
		}
	} else {
		e.State.Running = false
		result.Output = append(result.Output, "", f.enc.DefeatMessage())
	}

	result.Events = append(result.Events, types.Event{
		Type: "combat_ended",
		Data: map[string]any{"winner": string(winner), "enemy": f.enc.Enemy.Name, "encounter": f.id},
	})
	e.record(ctx, f, outcome, result)
}

// Abandon discards an encounter in progress, recording it as abandoned.
// The player keeps their current health.
func (e *Engine) Abandon(ctx context.Context) types.Result {
	var result types.Result
	f := e.fight
	if f == nil {
		return result
	}
	e.fight = nil
	e.State.Player.Health = f.enc.Player.Health
	e.record(ctx, f, "abandoned", &result)
	return result
}

func (e *Engine) record(ctx context.Context, f *fight, outcome string, result *types.Result) {
	ctx, span := telemetry.Tracer("combat").Start(ctx, "combat.end")
	defer span.End()
	span.SetAttributes(
		attribute.String("encounter.id", f.id),
		attribute.String("outcome", outcome),
		attribute.Int("rounds", f.enc.Rounds()),
	)

	if e.Recorder == nil {
		return
	}
	rec := types.EncounterRecord{
		ID:           f.id,
		Enemy:        f.enc.Enemy.Name,
		Outcome:      outcome,
		Rounds:       f.enc.Rounds(),
		Capabilities: append([]string(nil), e.State.Capabilities...),
		PlayerHealth: f.enc.Player.Health,
		EnemyHealth:  f.enc.Enemy.Health,
		FinalPhase:   f.enc.Enemy.Phase(),
		StartedAt:    f.started.Unix(),
		EndedAt:      e.Now().Unix(),
	}
	if err := e.Recorder.RecordEncounter(ctx, rec); err != nil {
		span.RecordError(err)
		result.Events = append(result.Events, types.Event{
			Type: "record_failed",
			Data: map[string]any{"encounter": f.id, "error": err.Error()},
		})
	}
}

// actionLines formats the numbered action menu.
func (e *Engine) actionLines() []string {
	var lines []string
	for i, a := range e.fight.enc.AvailableActions() {
		var info string
		if a.Damage > 0 {
			info += fmt.Sprintf("[DMG: %d]", a.Damage)
		}
		if a.Heal > 0 {
			info += fmt.Sprintf("[HEAL: %d]", a.Heal)
		}
		lines = append(lines,
			fmt.Sprintf("  %d. %s %s", i+1, a.Name, info),
			"     "+a.Description)
	}
	return lines
}
