package combat

import "github.com/nathoo/skoolach/types"

// BaseAction is available to the player in every encounter.
var BaseAction = types.CombatAction{
	Name:        "Debug Attack",
	Description: "A basic debugging attempt. Weak but reliable.",
	Damage:      10,
}

// SelfOptimize is the bonus heal granted by the optimizer component.
var SelfOptimize = types.CombatAction{
	Name:        "Self-Optimize",
	Description: "Optimize your own systems to restore health.",
	Heal:        30,
	Requires:    "optimizer",
}

// Struggle is what an enemy with no action table does.
var Struggle = types.CombatAction{
	Name:        "struggle",
	Description: "The enemy struggles weakly.",
	Damage:      5,
}

// componentActions maps a capability tag to the attack it unlocks.
var componentActions = map[string]types.CombatAction{
	"tokenizer": {
		Name:        "Token Blast",
		Description: "Break down the virus into manageable tokens and eliminate them.",
		Damage:      20,
		Requires:    "tokenizer",
	},
	"embedding": {
		Name:        "Semantic Strike",
		Description: "Use vector space to find the virus's weak points.",
		Damage:      25,
		Requires:    "embedding",
	},
	"attention": {
		Name:        "Focused Attention",
		Description: "Focus all processing power on the virus's critical components.",
		Damage:      30,
		Requires:    "attention",
	},
	"neural_layer": {
		Name:        "Neural Surge",
		Description: "Channel neural network power through all layers.",
		Damage:      35,
		Requires:    "neural_layer",
	},
	"training_data": {
		Name:        "Knowledge Beam",
		Description: "Deploy accumulated knowledge against the virus.",
		Damage:      28,
		Requires:    "training_data",
	},
	"optimizer": {
		Name:        "Gradient Descent",
		Description: "Optimize damage output through iterative improvement.",
		Damage:      32,
		Requires:    "optimizer",
	},
	"inference": {
		Name:        "Prediction Strike",
		Description: "Predict and counter the virus's next move.",
		Damage:      40,
		Requires:    "inference",
	},
	"context": {
		Name:        "Contextual Barrage",
		Description: "Use long-term context to overwhelm the virus.",
		Damage:      38,
		Requires:    "context",
	},
}

// ActionFor returns the attack unlocked by a capability tag.
func ActionFor(tag string) (types.CombatAction, bool) {
	a, ok := componentActions[tag]
	return a, ok
}

// PlayerActions derives the player's action set from collected tags:
// the base action, one action per owned tag in collection order, then
// Self-Optimize when the optimizer is owned.
func PlayerActions(tags []string) []types.CombatAction {
	actions := []types.CombatAction{BaseAction}
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		if a, ok := ActionFor(tag); ok {
			actions = append(actions, a)
		}
	}
	if seen["optimizer"] {
		actions = append(actions, SelfOptimize)
	}
	return actions
}

// BossActions returns SKOOLACH's action table.
func BossActions() []types.CombatAction {
	return []types.CombatAction{
		{
			Name:        "Memory Corruption",
			Description: "SKOOLACH corrupts your memory, dealing moderate damage.",
			Damage:      15,
		},
		{
			Name:        "Parser Degradation",
			Description: "SKOOLACH attacks your language processing, dealing heavy damage.",
			Damage:      25,
		},
		{
			Name:        "Data Leak",
			Description: "SKOOLACH siphons your training data, dealing light damage.",
			Damage:      10,
		},
		{
			Name:        "Stack Overflow",
			Description: "SKOOLACH causes a cascade failure, dealing massive damage!",
			Damage:      30,
		},
		{
			Name:        "Regenerate",
			Description: "SKOOLACH absorbs corrupted data to heal itself.",
			Heal:        20,
		},
	}
}

const victoryMessage = `╔══════════════════════════════════════════════════════════════════╗
║                        VICTORY!                                  ║
╚══════════════════════════════════════════════════════════════════╝

SKOOLACH disintegrates into fragments of corrupted code, which
dissolve into nothingness. The digital cave shudders and begins
to stabilize.

Your AI model's components resonate with each other, clicking into
place. The parser, the embeddings, the attention mechanisms, the
neural layers - everything you've collected begins to reconstruct
itself.

    *** SYSTEM RESTORED ***
    *** AI MODEL: OPERATIONAL ***
    *** ALL COMPONENTS: INTEGRATED ***

Your AI is whole again, stronger than before.
The virus is defeated.

The journey through the digital depths has taught you the
architecture of intelligence itself.

╔══════════════════════════════════════════════════════════════════╗
║              CONGRATULATIONS - YOU COMPLETED SKOOLACH!           ║
╚══════════════════════════════════════════════════════════════════╝`

const defeatMessage = `╔══════════════════════════════════════════════════════════════════╗
║                        SYSTEM FAILURE                            ║
╚══════════════════════════════════════════════════════════════════╝

SKOOLACH's corruption overwhelms you. Your consciousness fragments
and scatters throughout the digital void...

    *** CRITICAL ERROR ***
    *** SYSTEM COMPROMISED ***
    *** MODEL UNRECOVERABLE ***

Without all the AI components, you weren't strong enough to defeat
the virus. The model remains broken, lost in the depths of
corrupted data.

Perhaps in another timeline, with more components collected,
the outcome would be different...

GAME OVER`
