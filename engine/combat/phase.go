package combat

import "github.com/enetx/fsm"

const (
	phaseCalm     fsm.State = "calm"
	phaseUnstable fsm.State = "unstable"
	phaseCritical fsm.State = "critical"

	eventAssess fsm.Event = "assess"
)

// Phase thresholds, as fractions of maximum health.
const (
	unstableAt = 0.5
	criticalAt = 0.25
)

// PhaseTracker holds the boss phase. Phases only advance, one step per
// assessment, and never regress when the boss heals.
type PhaseTracker struct {
	machine *fsm.FSM
}

// NewPhaseTracker starts a tracker in phase 1.
func NewPhaseTracker() *PhaseTracker {
	m := fsm.NewFSM(phaseCalm).
		TransitionWhen(phaseCalm, eventAssess, phaseUnstable, healthAtMost(unstableAt)).
		TransitionWhen(phaseUnstable, eventAssess, phaseCritical, healthAtMost(criticalAt))
	return &PhaseTracker{machine: m}
}

func healthAtMost(limit float64) fsm.GuardFunc {
	return func(ctx *fsm.Context) bool {
		fraction, ok := ctx.Input.(float64)
		return ok && fraction <= limit
	}
}

// Assess feeds the current health fraction to the machine and returns the
// resulting phase. The machine registers no callbacks, so Trigger fails only
// when no guarded transition matches, which leaves the phase unchanged.
func (p *PhaseTracker) Assess(fraction float64) int {
	_ = p.machine.Trigger(eventAssess, fraction)
	return p.Phase()
}

// Phase returns the current phase number, 1 through 3.
func (p *PhaseTracker) Phase() int {
	switch p.machine.Current() {
	case phaseUnstable:
		return 2
	case phaseCritical:
		return 3
	default:
		return 1
	}
}

// phaseMessages is indexed by phase number.
var phaseMessages = [...]string{
	1: "SKOOLACH writhes menacingly...",
	2: "*** SKOOLACH'S CODE DESTABILIZES! The virus grows more aggressive! ***",
	3: "*** CRITICAL: SKOOLACH ENTERS FINAL FORM! MAXIMUM CORRUPTION! ***",
}
