package bio

import (
	"fmt"
	"math/rand/v2"
)

type StepResult struct {
	Advanced           bool
	GenerationComplete bool
	Yielded            int
	Collected          int
	Note               string
}

// Step runs one tick of the box according to its mode.
func (e Engine) Step(b *Box, rng *rand.Rand) StepResult {
	switch b.Mode {
	case ModeBloom:
		if !e.Advance(b, rng) {
			return StepResult{}
		}
		res := StepResult{Advanced: true}
		if b.BudgetSpent() {
			res.GenerationComplete = true
			res.Note = fmt.Sprintf("biobox %s finished %d generations", b.ID, b.Generations)
		}
		return res
	case ModeGrow:
		yielded, fit := e.Grow(b)
		if !fit {
			return StepResult{Note: fmt.Sprintf("biobox %s is unfit to grow", b.ID)}
		}
		res := StepResult{Yielded: yielded}
		if yielded > 0 {
			res.Note = fmt.Sprintf("biobox %s yielded %d %s", b.ID, yielded, b.Option)
		}
		return res
	case ModeCollect:
		n := b.Collect()
		if n == 0 {
			return StepResult{}
		}
		return StepResult{Collected: n, Note: fmt.Sprintf("biobox %s collected %d %s", b.ID, n, b.Option)}
	default:
		return StepResult{}
	}
}
